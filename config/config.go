// Package config declares the portal's environment-driven settings. Values
// are read with github.com/caarlos0/env; each group lives in its own file
// with its own Sanitize and, where something can be fatally wrong, Validate.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// AppConfig is the full runtime configuration. It is loaded once at start-up
// and passed by value afterwards.
type AppConfig struct {
	// IsDev serves templates and assets from disk and renders template
	// errors inline. NODE_ENV=development also enables it.
	IsDev       bool   `env:"DEV" envDefault:"false"`
	Environment string `env:"NODE_ENV"`

	Auth     AuthConfig
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`
	HTTP     HTTPConfig
	Quiz     QuizConfig
	Log      LogConfig
}

type sanitizer interface{ Sanitize() }

// Sanitize clamps every group into its supported range.
func (c *AppConfig) Sanitize() {
	for _, s := range []sanitizer{&c.HTTP, &c.Postgres, &c.Redis, &c.Auth, &c.Quiz, &c.Log} {
		s.Sanitize()
	}
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "development", "dev":
		c.IsDev = true
	}
}

// Validate reports settings the server cannot start with.
func (c *AppConfig) Validate() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"auth", c.Auth.Validate},
		{"postgres", c.Postgres.Validate},
	}
	var errs []error
	for _, chk := range checks {
		if err := chk.fn(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", chk.name, err))
		}
	}
	return errors.Join(errs...)
}
