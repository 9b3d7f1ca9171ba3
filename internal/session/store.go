// Package session хранит соответствие токен → пользователь с ограниченным временем жизни.
package session

import (
	"FileKeeper/internal/cache"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTTL время жизни сессии с момента логина. Продления при использовании нет.
const DefaultTTL = 24 * time.Hour

const keyPrefix = "auth_"

// Store сессии поверх внешнего кэша. Любая ошибка кэша трактуется как «сессии нет».
type Store struct {
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// NewStore создаёт хранилище сессий. ttl <= 0 означает DefaultTTL.
func NewStore(c cache.Cache, ttl time.Duration, logger *zap.SugaredLogger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{cache: c, ttl: ttl, logger: logger}
}

func key(token string) string {
	return keyPrefix + token
}

// Create выпускает новый токен для пользователя.
func (s *Store) Create(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	if err := s.cache.Set(ctx, key(token), strconv.FormatInt(userID, 10), s.ttl); err != nil {
		s.logger.Errorw("session: failed to store token", "user_id", userID, "error", err)
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Resolve возвращает пользователя по токену. TTL не продлевается.
func (s *Store) Resolve(ctx context.Context, token string) (int64, bool) {
	if token == "" {
		return 0, false
	}
	raw, err := s.cache.Get(ctx, key(token))
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Errorw("session: cache lookup failed", "error", err)
		}
		return 0, false
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.logger.Warnw("session: malformed session value", "error", err)
		return 0, false
	}
	return userID, true
}

// Destroy удаляет сессию и сообщает, существовала ли она.
func (s *Store) Destroy(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	existed, err := s.cache.Del(ctx, key(token))
	if err != nil {
		s.logger.Errorw("session: cache delete failed", "error", err)
		return false
	}
	return existed
}
