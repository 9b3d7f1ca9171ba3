package handlers

import (
	"FileKeeper/internal/config"
	"FileKeeper/internal/middleware"
	"FileKeeper/internal/model"
	"FileKeeper/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FileHandler файлы и папки пользователя.
type FileHandler struct {
	FileService *service.FileService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewFileHandler(fileService *service.FileService, logger *zap.SugaredLogger, cfg *config.Config) *FileHandler {
	return &FileHandler{FileService: fileService, Logger: logger, Config: cfg}
}

type createFileRequest struct {
	Name     string          `json:"name"`
	Type     model.FileType  `json:"type"`
	ParentID model.ParentRef `json:"parentId"`
	IsPublic bool            `json:"isPublic"`
	Data     string          `json:"data"`
}

// Create создаёт файл, изображение или папку
func (h *FileHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Config.MaxUploadBytes())
	var req createFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	view, err := h.FileService.Create(r.Context(), userID, service.CreateFileRequest{
		Name:     req.Name,
		Type:     req.Type,
		Parent:   req.ParentID,
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}

	h.Logger.Infow("file created", "user_id", userID, "file_id", view.ID, "type", view.Type)
	writeJSON(w, http.StatusCreated, view)
}

// Show метаданные своего файла
func (h *FileHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	view, err := h.FileService.Show(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// List страница дочерних записей (?parentId=&page=)
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	parent := model.NoParent()
	if p := r.URL.Query().Get("parentId"); p != "" {
		parent = model.ParentOf(p)
	}
	page := service.ParsePage(r.URL.Query().Get("page"))

	views, err := h.FileService.List(r.Context(), userID, parent, page)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *FileHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.setVisibility(w, r, true)
}

func (h *FileHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	h.setVisibility(w, r, false)
}

func (h *FileHandler) setVisibility(w http.ResponseWriter, r *http.Request, isPublic bool) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	view, err := h.FileService.SetVisibility(r.Context(), userID, chi.URLParam(r, "id"), isPublic)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Data отдаёт содержимое файла или его миниатюру (?size=500|250|100)
func (h *FileHandler) Data(w http.ResponseWriter, r *http.Request) {
	var callerID *int64
	if id, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		callerID = &id
	}

	content, err := h.FileService.Content(r.Context(), callerID, chi.URLParam(r, "id"), r.URL.Query().Get("size"))
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}

	w.Header().Set("Content-Type", content.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(content.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content.Data)
}
