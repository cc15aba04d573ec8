package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/phrazzld/pomodoro-api/internal/config"
	"github.com/phrazzld/pomodoro-api/internal/platform/postgres"
	"github.com/phrazzld/pomodoro-api/internal/platform/redis"
	"github.com/phrazzld/pomodoro-api/internal/service/auth"
	"github.com/phrazzld/pomodoro-api/internal/service/task"
	"github.com/phrazzld/pomodoro-api/internal/store"
)

// application holds the shared application dependencies so wiring happens in
// one place and cleanup can release everything on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	db    *sql.DB
	cache *goredis.Client

	userStore     store.UserStore
	taskStore     store.TaskStore
	categoryStore store.CategoryStore

	jwtService  auth.JWTService
	authService *auth.AuthService
	taskService *task.Service
}

// newApplication connects to postgres and redis, runs migrations and builds
// the service graph.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.db, err = setupDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, app.db, logger); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	app.cache, err = setupRedis(ctx, cfg.Redis, logger)
	if err != nil {
		return nil, err
	}

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT service initialized",
		"access_token_lifetime_minutes", cfg.Auth.AccessTokenLifetimeMinutes,
		"refresh_token_lifetime_days", cfg.Auth.RefreshTokenLifetimeDays)

	app.userStore = postgres.NewPostgresUserStore(app.db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(app.db, logger)
	app.categoryStore = postgres.NewPostgresCategoryStore(app.db, logger)

	taskCache := redis.NewTaskCache(
		app.cache,
		time.Duration(cfg.Cache.TaskTTLSeconds)*time.Second,
		logger,
	)

	app.authService = auth.NewAuthService(
		app.userStore,
		app.jwtService,
		auth.NewBcryptHasher(),
		auth.NewBcryptVerifier(),
		logger,
	)
	app.taskService = task.NewService(app.taskStore, taskCache, logger)

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until the context is cancelled.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases pooled connections. Safe to call on a partially
// initialized application.
func (app *application) cleanup() {
	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
