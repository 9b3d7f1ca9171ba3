package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAppService_Status(t *testing.T) {
	ctx := context.Background()

	svc := NewAppService(stubPinger{}, stubPinger{}, nil, nil, nil)
	assert.Equal(t, Status{Cache: true, DB: true}, svc.Status(ctx))

	svc = NewAppService(stubPinger{err: errors.New("down")}, stubPinger{}, nil, nil, nil)
	assert.Equal(t, Status{Cache: false, DB: true}, svc.Status(ctx))
}

func TestAppService_Stats(t *testing.T) {
	ctx := context.Background()
	users, files := new(mockUserRepo), new(mockFileRepo)
	users.On("Count", mock.Anything).Return(int64(4), nil)
	files.On("Count", mock.Anything).Return(int64(30), nil)

	st, err := NewAppService(stubPinger{}, stubPinger{}, users, files, stubCounter(2)).Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Users: 4, Files: 30, ThumbnailRejected: 2}, st)

	broken := new(mockFileRepo)
	broken.On("Count", mock.Anything).Return(int64(0), errors.New("db down"))
	_, err = NewAppService(stubPinger{}, stubPinger{}, users, broken, nil).Stats(ctx)
	assert.Error(t, err)
}
