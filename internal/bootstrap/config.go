package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/target/onboarding-portal/config"
)

// logLevel backs every logger from InitLogger so the level can be raised
// or lowered once configuration is known.
//
//nolint:gochecknoglobals // process-wide log level
var logLevel slog.LevelVar

// InitLogger installs a JSON logger on stdout as the slog default. It logs
// at info until SetLogLevel is called.
func InitLogger() *slog.Logger {
	logger := newJSONLogger(os.Stdout)
	slog.SetDefault(logger)
	return logger
}

func newJSONLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: &logLevel}))
}

// SetLogLevel changes the level of every logger created by InitLogger.
func SetLogLevel(level slog.Level) { logLevel.Set(level) }

// LoadConfig is ParseConfig followed by Validate. The server uses it.
func LoadConfig() (config.AppConfig, error) {
	cfg, err := ParseConfig()
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ParseConfig reads an optional .env file, then the environment, and
// sanitizes the result. Operator commands that never sign sessions use it
// directly so they run without SESSION_SECRET.
func ParseConfig() (config.AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.AppConfig{}, fmt.Errorf("load .env: %w", err)
	}
	cfg, err := env.ParseAs[config.AppConfig]()
	if err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	cfg.Sanitize()
	return cfg, nil
}
