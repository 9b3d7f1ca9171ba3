package main

import (
	"FileKeeper/internal/cache"
	"FileKeeper/internal/config"
	"FileKeeper/internal/handlers"
	"FileKeeper/internal/middleware"
	"FileKeeper/internal/repo"
	"FileKeeper/internal/service"
	"FileKeeper/internal/session"
	"FileKeeper/internal/storage"
	"FileKeeper/internal/thumbnail"
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	if err := cfg.Validate(); err != nil {
		sugar.Fatalw("invalid configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	defer func() {
		if err := repo.CloseDB(gormDB); err != nil {
			sugar.Errorw("failed to close database", "error", err)
		}
	}()

	sessionCache, err := cache.NewBadger(cfg.CachePath)
	if err != nil {
		sugar.Fatalw("failed to open session cache", "error", err)
	}
	defer func() {
		if err := sessionCache.Close(); err != nil {
			sugar.Errorw("failed to close session cache", "error", err)
		}
	}()

	disk := storage.NewDisk(cfg.StoragePath)
	if err := disk.EnsureRoot(); err != nil {
		// каталог ещё попробуем создать при первой записи
		sugar.Warnw("storage root unavailable", "path", cfg.StoragePath, "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	fileRepo := repo.NewFileRepository(gormDB, disk)

	queue := thumbnail.NewChannelQueue(cfg.ThumbnailQueueSize, sugar)
	renderer := thumbnail.NewRenderer(fileRepo, disk, sugar)
	queue.Start(ctx, cfg.ThumbnailWorkers, renderer.Handle)
	defer queue.Close()

	sessions := session.NewStore(sessionCache, cfg.SessionTTL, sugar)

	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo, sessions, sugar)
	fileService := service.NewFileService(fileRepo, disk, queue, sugar)
	appService := service.NewAppService(sessionCache, repo.NewHealth(gormDB), userRepo, fileRepo, queue)

	h := handlers.NewHandler(userService, authService, fileService, appService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"StoragePath", cfg.StoragePath,
		"CachePath", cfg.CachePath,
		"SessionTTL", cfg.SessionTTL,
		"ThumbnailWorkers", cfg.ThumbnailWorkers,
	)

	srv := &http.Server{Addr: addr, Handler: h.Router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Server shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Errorw("Server failed", "error", err)
	}
	sugar.Infow("Server stopped")
}
