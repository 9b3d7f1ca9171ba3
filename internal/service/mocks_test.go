package service

import (
	"FileKeeper/internal/model"
	"FileKeeper/internal/repo"
	"FileKeeper/internal/storage"
	"FileKeeper/internal/thumbnail"
	"context"

	"github.com/stretchr/testify/mock"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// мок для repo.FileRepository
type mockFileRepo struct{ mock.Mock }

func (m *mockFileRepo) Create(ctx context.Context, f *model.File) error {
	return m.Called(ctx, f).Error(0)
}

func (m *mockFileRepo) FindByID(ctx context.Context, id string) (*model.File, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).(*model.File); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileRepo) FindOwnedByID(ctx context.Context, ownerID int64, id string) (*model.File, error) {
	args := m.Called(ctx, ownerID, id)
	if f, ok := args.Get(0).(*model.File); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileRepo) FindVisible(ctx context.Context, callerID *int64, id string) (*model.File, error) {
	args := m.Called(ctx, callerID, id)
	if f, ok := args.Get(0).(*model.File); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileRepo) ListChildren(ctx context.Context, ownerID int64, parent model.ParentRef, page int) ([]model.File, error) {
	args := m.Called(ctx, ownerID, parent, page)
	if v, ok := args.Get(0).([]model.File); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileRepo) SetVisibility(ctx context.Context, ownerID int64, id string, isPublic bool) (*model.File, error) {
	args := m.Called(ctx, ownerID, id, isPublic)
	if f, ok := args.Get(0).(*model.File); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.FileRepository = (*mockFileRepo)(nil)

// мок очереди миниатюр
type mockQueue struct{ mock.Mock }

func (m *mockQueue) Enqueue(ctx context.Context, job thumbnail.Job) error {
	return m.Called(ctx, job).Error(0)
}

var _ thumbnail.Queue = (*mockQueue)(nil)

// мок хранилища сессий
type mockSessions struct{ mock.Mock }

func (m *mockSessions) Create(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockSessions) Resolve(ctx context.Context, token string) (int64, bool) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Bool(1)
}

func (m *mockSessions) Destroy(ctx context.Context, token string) bool {
	return m.Called(ctx, token).Bool(0)
}

var _ SessionStore = (*mockSessions)(nil)

// spyContents — настоящий диск с подсчётом записей и инъекцией ошибок.
type spyContents struct {
	*storage.Disk
	writes    int
	failRoot  error
	failWrite error
}

func (s *spyContents) EnsureRoot() error {
	if s.failRoot != nil {
		return s.failRoot
	}
	return s.Disk.EnsureRoot()
}

func (s *spyContents) Write(data []byte) (string, error) {
	s.writes++
	if s.failWrite != nil {
		return "", s.failWrite
	}
	return s.Disk.Write(data)
}

var _ ContentStore = (*spyContents)(nil)

// pinger с заданным результатом
type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubCounter uint64

func (c stubCounter) Rejected() uint64 { return uint64(c) }
