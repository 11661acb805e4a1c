package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/eventdesk/backend/api/handler"
	"github.com/eventdesk/backend/internal/config"
	"github.com/eventdesk/backend/internal/infrastructure/buffer"
	"github.com/eventdesk/backend/internal/infrastructure/monitor"
	pgInfra "github.com/eventdesk/backend/internal/infrastructure/postgres"
	redisInfra "github.com/eventdesk/backend/internal/infrastructure/redis"
	"github.com/eventdesk/backend/internal/middleware"
	"github.com/eventdesk/backend/internal/router"
	"github.com/eventdesk/backend/internal/services"
	"github.com/eventdesk/backend/internal/services/lifecycle"
	"github.com/eventdesk/backend/pkg/httpcontext"
	"github.com/eventdesk/backend/pkg/logger"
	"github.com/eventdesk/backend/repository/postgres"
	redisRepo "github.com/eventdesk/backend/repository/redis"
	adminUC "github.com/eventdesk/backend/usecase/admin"
	authUC "github.com/eventdesk/backend/usecase/auth"
	eventsUC "github.com/eventdesk/backend/usecase/events"
	tasksUC "github.com/eventdesk/backend/usecase/tasks"
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

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "appends")
	if err != nil {
		zapLogger.Fatal("failed to open append buffer", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	eventRepo := postgres.NewEventRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Auth.SessionTTL)

	appendProcessor := services.NewAppendProcessor(
		bufferStore,
		mon,
		taskRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	appendProcessor.Start()
	manager.Register("append_processor", func(ctx context.Context) error {
		appendProcessor.Stop(ctx)
		return nil
	})

	appendBridge := services.NewAppendBridge(appendProcessor)

	authUseCase := authUC.New(userRepo, sessionRepo, authUC.Config{
		JWTSecret:  cfg.Auth.JWTSecret,
		JWTIssuer:  cfg.Auth.JWTIssuer,
		SessionTTL: cfg.Auth.SessionTTL,
	}, zapLogger)
	adminUseCase := adminUC.New(userRepo, cfg.Admin.RootEmail, zapLogger)
	eventsUseCase := eventsUC.New(eventRepo, zapLogger)
	boardRegistry := tasksUC.NewRegistry(taskRepo, appendBridge, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:   apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Task:   apiHandler.NewTaskHandler(boardRegistry, eventsUseCase, ctxAdapter, zapLogger),
		Event:  apiHandler.NewEventHandler(eventsUseCase, ctxAdapter, zapLogger),
		Admin:  apiHandler.NewAdminHandler(adminUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.Auth.JWTSecret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
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
