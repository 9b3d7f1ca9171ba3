package service

import (
	"FileKeeper/internal/repo"
	"context"
)

// Pinger проверка доступности зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RejectionCounter число отклонённых заданий на миниатюры.
type RejectionCounter interface {
	Rejected() uint64
}

// AppService сигналы состояния сервиса для операторов.
type AppService struct {
	cache    Pinger
	db       Pinger
	users    repo.UserRepository
	files    repo.FileRepository
	rejected RejectionCounter
}

func NewAppService(cache, db Pinger, users repo.UserRepository, files repo.FileRepository, rejected RejectionCounter) *AppService {
	return &AppService{cache: cache, db: db, users: users, files: files, rejected: rejected}
}

// Status живость зависимостей.
type Status struct {
	Cache bool `json:"cache"`
	DB    bool `json:"db"`
}

// Stats счётчики.
type Stats struct {
	Users             int64  `json:"users"`
	Files             int64  `json:"files"`
	ThumbnailRejected uint64 `json:"thumbnailRejected"`
}

func (s *AppService) Status(ctx context.Context) Status {
	return Status{
		Cache: s.cache.Ping(ctx) == nil,
		DB:    s.db.Ping(ctx) == nil,
	}
}

func (s *AppService) Stats(ctx context.Context) (Stats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	files, err := s.files.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Users: users, Files: files}
	if s.rejected != nil {
		st.ThumbnailRejected = s.rejected.Rejected()
	}
	return st, nil
}
