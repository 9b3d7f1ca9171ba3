package service

import (
	"FileKeeper/internal/model"
	"FileKeeper/internal/repo"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SessionStore токены сессий (см. session.Store).
type SessionStore interface {
	Create(ctx context.Context, userID int64) (string, error)
	Resolve(ctx context.Context, token string) (int64, bool)
	Destroy(ctx context.Context, token string) bool
}

// AuthService определяет пользователя по Basic-заголовку при логине
// и по токену сессии во всех остальных вызовах.
type AuthService struct {
	users    repo.UserRepository
	sessions SessionStore
	logger   *zap.SugaredLogger
}

func NewAuthService(users repo.UserRepository, sessions SessionStore, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{users: users, sessions: sessions, logger: logger}
}

// DecodeBasicCredentials разбирает заголовок "Basic base64(email:password)".
// Любой дефект заголовка — ok=false, частичных данных не бывает.
func DecodeBasicCredentials(header string) (email, password string, ok bool) {
	scheme, payload, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Basic") {
		return "", "", false
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return "", "", false
	}
	email, password, found = strings.Cut(string(raw), ":")
	if !found || email == "" || password == "" {
		return "", "", false
	}
	return email, password, true
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// equalizeHash тратит на неизвестный email столько же, сколько на сравнение пароля.
func equalizeHash(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("filekeeper"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// Authenticate проверяет пару email/пароль. Неизвестный email и неверный пароль
// неразличимы: в обоих случаях ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil || u == nil {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Errorw("auth: user lookup failed", "error", err)
		}
		equalizeHash(password)
		return nil, ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrUnauthorized
	}
	return u, nil
}

// Login выпускает токен сессии по Basic-заголовку.
func (s *AuthService) Login(ctx context.Context, header string) (string, error) {
	email, password, ok := DecodeBasicCredentials(header)
	if !ok {
		return "", ErrUnauthorized
	}
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}
	token, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		// кэш недоступен — вход не состоялся
		return "", ErrUnauthorized
	}
	return token, nil
}

// Logout уничтожает сессию. Недействительный токен — ErrUnauthorized.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" || !s.sessions.Destroy(ctx, token) {
		return ErrUnauthorized
	}
	return nil
}

// ResolveCaller возвращает пользователя по токену сессии.
func (s *AuthService) ResolveCaller(ctx context.Context, token string) (*model.User, bool) {
	userID, ok := s.sessions.Resolve(ctx, token)
	if !ok {
		return nil, false
	}
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil || u == nil {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Errorw("auth: user lookup by id failed", "user_id", userID, "error", err)
		}
		return nil, false
	}
	return u, true
}
