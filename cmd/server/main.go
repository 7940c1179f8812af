package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/homepage/api/handler"
	"github.com/fastygo/homepage/domain"
	"github.com/fastygo/homepage/internal/config"
	"github.com/fastygo/homepage/internal/infrastructure/history"
	"github.com/fastygo/homepage/internal/infrastructure/monitor"
	"github.com/fastygo/homepage/internal/middleware"
	"github.com/fastygo/homepage/internal/router"
	"github.com/fastygo/homepage/internal/services"
	"github.com/fastygo/homepage/internal/services/lifecycle"
	"github.com/fastygo/homepage/pkg/httpcontext"
	"github.com/fastygo/homepage/pkg/logger"
	"github.com/fastygo/homepage/repository/deadline"
	"github.com/fastygo/homepage/repository/meta"
	"github.com/fastygo/homepage/repository/todofile"
	dashboardUC "github.com/fastygo/homepage/usecase/dashboard"
	todoUC "github.com/fastygo/homepage/usecase/todo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	historyStore, err := history.Open(domain.ExpandHome(cfg.History.Path), "history")
	if err != nil {
		zapLogger.Fatal("failed to open history store", zap.Error(err))
	}
	manager.Register("history", func(ctx context.Context) error {
		return historyStore.Close()
	})

	metaRepo := meta.NewMetaRepository(cfg.Files.MetaPath)
	deadlineRepo := deadline.NewDeadlineRepository(cfg.Files.DeadlinesPath, zapLogger)
	todoRepo := todofile.NewTodoRepository(todofile.NewBackups(cfg.Files.BackupDir), zapLogger)

	mon := monitor.New(metaRepo, historyStore, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.RegisterStop("monitor", mon.Stop)

	recorder := services.NewHistoryRecorder(metaRepo, historyStore, zapLogger, services.RecorderConfig{
		Interval: cfg.History.SnapshotInterval,
	})
	recorder.Start()
	manager.Register("history_recorder", func(ctx context.Context) error {
		recorder.Stop(ctx)
		return nil
	})

	dashboardUseCase := dashboardUC.New(metaRepo, todoRepo, deadlineRepo, historyStore, zapLogger)
	todoUseCase := todoUC.New(metaRepo, todoRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Dashboard: apiHandler.NewDashboardHandler(dashboardUseCase, ctxAdapter, zapLogger),
		Todo:      apiHandler.NewTodoHandler(todoUseCase, ctxAdapter, zapLogger),
		Health:    apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	if cfg.JWT.Secret == "" {
		zapLogger.Warn("JWT_SECRET is empty, mutating routes are not authenticated")
	}
	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("meta", cfg.Files.MetaPath))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
