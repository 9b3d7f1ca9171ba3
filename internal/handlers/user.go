package handlers

import (
	"FileKeeper/internal/middleware"
	"FileKeeper/internal/service"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler регистрация и текущий пользователь.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register создаёт пользователя
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}

	h.Logger.Infow("user registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, user.View())
}

// Me возвращает пользователя по X-Token
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, user.View())
}
