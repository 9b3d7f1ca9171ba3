package handlers

import (
	"FileKeeper/internal/middleware"
	"FileKeeper/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// AuthHandler вход по Basic и выход по X-Token.
type AuthHandler struct {
	AuthService *service.AuthService
	Logger      *zap.SugaredLogger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{AuthService: authService, Logger: logger}
}

// Connect выдаёт токен сессии
func (h *AuthHandler) Connect(w http.ResponseWriter, r *http.Request) {
	token, err := h.AuthService.Login(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Disconnect уничтожает сессию
func (h *AuthHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetTokenFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := h.AuthService.Logout(r.Context(), token); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
