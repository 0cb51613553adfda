// Command portal serves the onboarding portal: the server-rendered UI and the
// JSON API on one listener.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/target/onboarding-portal/config"
	"github.com/target/onboarding-portal/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "portal stopped", "error", err)
		os.Exit(1) //nolint:forbidigo // non-zero exit tells the supervisor to restart
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	bootstrap.SetLogLevel(cfg.Log.SlogLevel())
	logger.InfoContext(ctx, "starting onboarding portal", startupAttrs(&cfg)...)

	var cleanup cleanupStack
	defer cleanup.run(ctx, logger)

	db, err := bootstrap.ConnectDB(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	cleanup.push("database", db.Close)

	redisClient, err := bootstrap.ConnectRedis(ctx, cfg.Redis, logger)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		cleanup.push("redis", redisClient.Close)
	}

	if cfg.Postgres.RunMigrationsOnStart {
		if err := bootstrap.RunMigrations(ctx, db, logger); err != nil {
			return err
		}
	} else {
		logger.InfoContext(ctx, "migrations on start disabled")
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cfg,
		DB:          db,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("build services: %w", err)
	}

	return bootstrap.RunServicesWithShutdown(ctx, &bootstrap.ServiceOrchestrationConfig{
		Config:   &cfg,
		Services: services,
		DB:       db,
		Redis:    redisClient,
		Logger:   logger,
	})
}

func startupAttrs(cfg *config.AppConfig) []any {
	return []any{
		"addr", cfg.HTTP.Addr,
		"db", fmt.Sprintf("%s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.Name),
		"redis", cfg.Redis.Enabled,
		"session_ttl", cfg.Auth.SessionTTL,
		"quiz_pass_percent", cfg.Quiz.PassPercent,
		"dev", cfg.IsDev,
	}
}

// cleanupStack closes resources in reverse order of acquisition.
type cleanupStack []namedCloser

type namedCloser struct {
	name  string
	close func() error
}

func (s *cleanupStack) push(name string, fn func() error) {
	*s = append(*s, namedCloser{name: name, close: fn})
}

func (s *cleanupStack) run(ctx context.Context, logger *slog.Logger) {
	for i := len(*s) - 1; i >= 0; i-- {
		c := (*s)[i]
		if err := c.close(); err != nil {
			logger.ErrorContext(ctx, "close "+c.name, "error", err)
		}
	}
	*s = nil
}
