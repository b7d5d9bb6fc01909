package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/lawfirm-api/internal/api/http"
	"github.com/spec-kit/lawfirm-api/internal/api/http/handlers"
	"github.com/spec-kit/lawfirm-api/internal/auth"
	"github.com/spec-kit/lawfirm-api/internal/config"
	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/events"
	"github.com/spec-kit/lawfirm-api/internal/observability"
	"github.com/spec-kit/lawfirm-api/internal/persistence"
	"github.com/spec-kit/lawfirm-api/internal/repository"
	"github.com/spec-kit/lawfirm-api/internal/security"
	"github.com/spec-kit/lawfirm-api/internal/service"
	"github.com/spec-kit/lawfirm-api/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
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
		if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	rdb, err := persistence.NewRedis(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Fatal("failed to connect redis", zap.Error(err))
	}
	defer rdb.Close()

	var (
		rateStore   security.WindowStore = security.NewMemoryStore()
		redisPinger handlers.Pinger
	)
	if rdb != nil {
		rateStore = security.NewRedisStore(rdb.Client, cfg.App.Name+":ratelimit")
		redisPinger = rdb
	}

	metrics := observability.NewMetrics()
	securityLog := observability.NewSecurityLog(logger, metrics)

	pool := pg.Pool
	userRepo := repository.NewUserRepository(pool)
	clientRepo := repository.NewClientRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notifications := worker.StartNotificationWorker(
		service.NewNotificationService(dispatcher, logger, cfg.Notification), logger, cfg.Notification.QueueSize)
	defer notifications.Stop()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   userRepo,
		Tokens:     tokens,
		BcryptCost: cfg.Auth.BcryptCost,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	clientService := service.NewClientService(clientRepo)
	caseService := service.NewCaseService(service.CaseDependencies{
		CaseRepo:   repository.NewCaseRepository(pool),
		ClientRepo: clientRepo,
		UserRepo:   userRepo,
	})
	appointmentService := service.NewAppointmentService(service.AppointmentDependencies{
		AppointmentRepo: repository.NewAppointmentRepository(pool),
		ClientRepo:      clientRepo,
		UserRepo:        userRepo,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	blogService := service.NewBlogService(repository.NewBlogRepository(pool))
	contactService := service.NewContactService(repository.NewContactRepository(pool), dispatcher, logger)
	contentService := service.NewContentService(repository.NewContentRepository(pool))
	uploadService := service.NewUploadService(cfg.Upload)

	csrf, err := security.NewCSRFGuard(cfg.Security.CSRFSecret, cfg.Security.CSRFEnabled, securityLog)
	if err != nil {
		logger.Fatal("failed to init csrf guard", zap.Error(err))
	}

	app := httptransport.NewApp(httptransport.Options{
		AppName:        cfg.App.Name,
		Production:     cfg.App.IsProduction(),
		CORSOrigin:     cfg.Security.CORSOrigin,
		BodyLimit:      cfg.App.BodyLimitBytes,
		RequestTimeout: cfg.App.RequestTimeout(),
		GlobalLimit: security.RateLimitConfig{
			Name:   "global",
			Limit:  cfg.Security.GlobalRateLimit,
			Window: cfg.Security.GlobalRateWindow,
		},
		AuthLimit: security.RateLimitConfig{
			Name:   "auth",
			Limit:  cfg.Security.AuthRateLimit,
			Window: cfg.Security.AuthRateWindow,
		},
	}, httptransport.RouteConfig{
		Logger:         logger,
		Metrics:        metrics,
		Security:       securityLog,
		RateStore:      rateStore,
		CSRF:           csrf,
		AuthMiddleware: auth.NewAuthMiddleware(tokens, userRepo, cfg.Auth.SessionCookieName, securityLog),
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redisPinger, metrics),
		Auth:           handlers.NewAuthHandler(authService, auth.NewSessionCookie(cfg.Auth.SessionCookieName, cfg.Auth.CookieTTL), securityLog),
		Clients:        handlers.NewClientsHandler(clientService),
		Cases:          handlers.NewCasesHandler(caseService),
		Appointments:   handlers.NewAppointmentsHandler(appointmentService),
		Blog:           handlers.NewBlogHandler(blogService, uploadService),
		Contacts:       handlers.NewContactsHandler(contactService),
		PracticeAreas:  handlers.NewContentHandler(domain.ContentPracticeArea, "practiceArea", "practiceAreas", contentService, uploadService),
		Team:           handlers.NewContentHandler(domain.ContentTeamMember, "teamMember", "teamMembers", contentService, uploadService),
		HomeCards:      handlers.NewContentHandler(domain.ContentHomeCard, "homeCard", "homeCards", contentService, uploadService),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("graceful shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
