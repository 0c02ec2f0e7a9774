package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskgrid/backend/api/handler"
	"github.com/taskgrid/backend/internal/config"
	"github.com/taskgrid/backend/internal/infrastructure/activity"
	"github.com/taskgrid/backend/internal/infrastructure/monitor"
	pgInfra "github.com/taskgrid/backend/internal/infrastructure/postgres"
	redisInfra "github.com/taskgrid/backend/internal/infrastructure/redis"
	"github.com/taskgrid/backend/internal/middleware"
	"github.com/taskgrid/backend/internal/router"
	"github.com/taskgrid/backend/internal/services"
	"github.com/taskgrid/backend/internal/services/lifecycle"
	"github.com/taskgrid/backend/pkg/httpcontext"
	"github.com/taskgrid/backend/pkg/logger"
	"github.com/taskgrid/backend/repository/postgres"
	redisRepo "github.com/taskgrid/backend/repository/redis"
	authUC "github.com/taskgrid/backend/usecase/auth"
	dashboardUC "github.com/taskgrid/backend/usecase/dashboard"
	reportUC "github.com/taskgrid/backend/usecase/report"
	taskUC "github.com/taskgrid/backend/usecase/task"
	userUC "github.com/taskgrid/backend/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		AppName:  cfg.AppName,
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
	manager.RegisterCloser("redis", redisClient)

	activityStore, err := activity.Open(cfg.Activity.Path, "activity")
	if err != nil {
		zapLogger.Fatal("failed to open activity store", zap.Error(err))
	}
	manager.RegisterCloser("activity_store", activityStore)

	mon := monitor.New(pool, redisClient, activityStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Auth.TokenTTL)

	activityLog := services.NewActivityLog(activityStore, zapLogger)

	sweeper := services.NewRetentionSweeper(activityStore, zapLogger, services.RetentionConfig{
		Interval:  cfg.Activity.SweepInterval,
		Retention: cfg.Activity.Retention,
	})
	sweeper.Start()
	manager.Register("retention_sweeper", func(ctx context.Context) error {
		sweeper.Stop(ctx)
		return nil
	})

	authUseCase := authUC.New(userRepo, sessionRepo, authUC.Config{
		JWTSecret:        cfg.Auth.JWTSecret,
		Issuer:           cfg.Auth.Issuer,
		TokenTTL:         cfg.Auth.TokenTTL,
		AdminInviteToken: cfg.Auth.AdminInviteToken,
	}, zapLogger)
	taskUseCase := taskUC.New(taskRepo, userRepo, activityLog, zapLogger)
	dashboardUseCase := dashboardUC.New(taskRepo, zapLogger)
	userUseCase := userUC.New(userRepo, taskRepo, zapLogger)
	reportUseCase := reportUC.New(taskRepo, userRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		User:     apiHandler.NewUserHandler(userUseCase, ctxAdapter, zapLogger),
		Task:     apiHandler.NewTaskHandler(taskUseCase, dashboardUseCase, ctxAdapter, zapLogger),
		Report:   apiHandler.NewReportHandler(reportUseCase, ctxAdapter, zapLogger),
		Activity: apiHandler.NewActivityHandler(activityLog, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.Auth.JWTSecret, sessionRepo, zapLogger)
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
