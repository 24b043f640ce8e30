package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/lead-intake/internal/api/http"
	"github.com/spec-kit/lead-intake/internal/api/http/handlers"
	"github.com/spec-kit/lead-intake/internal/auth"
	"github.com/spec-kit/lead-intake/internal/config"
	"github.com/spec-kit/lead-intake/internal/events"
	"github.com/spec-kit/lead-intake/internal/notify"
	"github.com/spec-kit/lead-intake/internal/observability"
	"github.com/spec-kit/lead-intake/internal/persistence"
	"github.com/spec-kit/lead-intake/internal/repository"
	"github.com/spec-kit/lead-intake/internal/service"
	"github.com/spec-kit/lead-intake/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	repos := repository.NewMemoryRepositories()
	if pg.Configured() {
		repos = repository.NewPostgresRepositories(pg.PoolHandle())
	}

	metrics := observability.NewMetrics()

	sender, err := notify.NewSender(cfg.Notification, logger)
	if err != nil {
		logger.Fatal("failed to init email sender", zap.Error(err))
	}
	notifier := notify.NewNotifier(sender, notify.SettingsFromConfig(cfg.Notification), logger, metrics)

	dispatcher := events.NewAsyncDispatcher(cfg.Events.BufferSize, logger)
	worker.NewActivityWorker(cfg.Notification.WebhookURL, cfg.Notification.Timeout(), logger).Register(dispatcher)
	dispatcher.Start()

	validator := service.NewValidator()
	contactService := service.NewContactService(service.ContactDependencies{
		ContactRepo: repos.Contacts,
		Notifier:    notifier,
		Validator:   validator,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	demoService := service.NewDemoService(service.DemoDependencies{
		DemoRepo:   repos.Demos,
		Notifier:   notifier,
		Validator:  validator,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	meetingService := service.NewMeetingService(service.MeetingDependencies{
		MeetingRepo: repos.Meetings,
		Validator:   validator,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:  repos.Users,
		Validator: validator,
		Logger:    logger,
	})
	if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminName, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		logger.Fatal("failed to bootstrap admin", zap.Error(err))
	}
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), repos.Users)

	mwCfg := httptransport.MiddlewareConfig{
		Logger:  logger,
		Metrics: metrics,
		App:     cfg.App,
		HTTP:    cfg.HTTP,
	}
	if redis.Configured() {
		mwCfg.LimiterStorage = persistence.NewLimiterStorage(redis.Client)
	}

	app := httptransport.NewApp(mwCfg)
	httptransport.RegisterMiddlewares(app, mwCfg)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Env, cfg.App.Version, pg, redis, metrics),
		Contacts:       handlers.NewContactHandler(contactService),
		Demos:          handlers.NewDemoHandler(demoService),
		Meetings:       handlers.NewMeetingHandler(meetingService),
		Services:       handlers.NewServicesHandler(service.NewStatisticsService(repos.Contacts, repos.Demos)),
		Users:          handlers.NewUsersHandler(service.NewUserService(repos.Users, validator)),
		Auth:           handlers.NewAuthHandler(authService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		logger.Info("http server starting",
			zap.String("addr", cfg.App.Addr()),
			zap.String("env", cfg.App.Env),
			zap.Bool("postgres", pg.Configured()),
			zap.Bool("redis", redis.Configured()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	shutdown(app, dispatcher, logger)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

func shutdown(app *fiber.App, dispatcher *events.AsyncDispatcher, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(ctx); err != nil {
		logger.Warn("event dispatcher shutdown", zap.Error(err))
	}
}
