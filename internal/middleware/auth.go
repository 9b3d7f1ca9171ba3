package middleware

import (
	"FileKeeper/internal/model"
	"context"
	"encoding/json"
	"net/http"
)

// TokenHeader заголовок с токеном сессии.
const TokenHeader = "X-Token"

type ctxKey int

const (
	userKey ctxKey = iota
	tokenKey
)

// CallerResolver определяет пользователя по токену сессии.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, token string) (*model.User, bool)
}

// WithAuth кладёт в контекст пользователя, если X-Token действителен.
// Запрос без токена или с мёртвым токеном проходит дальше анонимным.
func WithAuth(resolver CallerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			u, ok := resolver.ResolveCaller(r.Context(), token)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, u)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth отвечает 401, если WithAuth не нашёл пользователя.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey).(*model.User)
	return u, ok && u != nil
}

// GetUserIDFromContext id пользователя или ok=false для анонима.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	u, ok := GetUserFromContext(ctx)
	if !ok {
		return 0, false
	}
	return u.ID, true
}

// GetTokenFromContext действительный токен текущего запроса.
func GetTokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey).(string)
	return t, ok && t != ""
}
