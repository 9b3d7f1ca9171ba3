package handlers

import (
	"FileKeeper/internal/config"
	"FileKeeper/internal/middleware"
	"FileKeeper/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	authService *service.AuthService,
	fileService *service.FileService,
	appService *service.AppService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(authService))

	// Handlers
	appHandler := NewAppHandler(appService, logger)
	userHandler := NewUserHandler(userService, logger)
	authHandler := NewAuthHandler(authService, logger)
	fileHandler := NewFileHandler(fileService, logger, config)

	// Открытые маршруты
	r.Get("/status", appHandler.Status)
	r.Get("/stats", appHandler.Stats)
	r.Post("/users", userHandler.Register)
	r.Get("/connect", authHandler.Connect)
	// токен необязателен: публичные файлы отдаются анонимно
	r.Get("/files/{id}/data", fileHandler.Data)

	// Маршруты с X-Token
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/disconnect", authHandler.Disconnect)
		r.Get("/users/me", userHandler.Me)

		r.Post("/files", fileHandler.Create)
		r.Get("/files", fileHandler.List)
		r.Get("/files/{id}", fileHandler.Show)
		r.Put("/files/{id}/publish", fileHandler.Publish)
		r.Put("/files/{id}/unpublish", fileHandler.Unpublish)
	})

	return &Handler{Router: r}
}
