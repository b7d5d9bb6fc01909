package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/lawfirm-api/internal/auth"
	"github.com/spec-kit/lawfirm-api/internal/config"
	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/observability"
	"github.com/spec-kit/lawfirm-api/internal/persistence"
	"github.com/spec-kit/lawfirm-api/internal/repository"
	"github.com/spec-kit/lawfirm-api/internal/service"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

// seed creates the first admin account from SEED_ADMIN_NAME,
// SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD. Running it twice is harmless.
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

	name := os.Getenv("SEED_ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || len(password) < 8 {
		logger.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD (8+ chars) are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
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

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   repository.NewUserRepository(pg.Pool),
		Tokens:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		BcryptCost: cfg.Auth.BcryptCost,
		Logger:     logger,
	})

	user, err := authService.CreateUser(ctx, name, email, password, domain.RoleAdmin)
	if err != nil {
		if errors.Is(err, apperrors.NewConflict("", nil)) {
			logger.Info("admin already exists", zap.String("email", email))
			return
		}
		logger.Fatal("failed to create admin", zap.Error(err))
	}
	logger.Info("admin created", zap.String("id", user.ID), zap.String("email", user.Email))
}
