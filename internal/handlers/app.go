package handlers

import (
	"FileKeeper/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// AppHandler состояние сервиса.
type AppHandler struct {
	AppService *service.AppService
	Logger     *zap.SugaredLogger
}

func NewAppHandler(appService *service.AppService, logger *zap.SugaredLogger) *AppHandler {
	return &AppHandler{AppService: appService, Logger: logger}
}

// Status отвечает всегда 200: живость зависимостей — в теле.
func (h *AppHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.AppService.Status(r.Context()))
}

func (h *AppHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.AppService.Stats(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
