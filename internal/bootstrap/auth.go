package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/target/onboarding-portal/config"
	"github.com/target/onboarding-portal/internal/adapters/bcrypthash"
	"github.com/target/onboarding-portal/internal/adapters/jwtsession"
	redisadapter "github.com/target/onboarding-portal/internal/adapters/redis"
	"github.com/target/onboarding-portal/internal/service"
)

// AuthConfig contains configuration for the credential and session adapters.
type AuthConfig struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthSecurity creates the password hasher, session issuer and, when a
// Redis client is available, the revocation store.
func BuildAuthSecurity(cfg AuthConfig) (service.AuthSecurity, error) {
	if cfg.Auth.SessionSecret == "" {
		return service.AuthSecurity{}, errors.New("session secret is required")
	}

	hasher, err := bcrypthash.New(cfg.Auth.BcryptCost)
	if err != nil {
		return service.AuthSecurity{}, fmt.Errorf("create password hasher: %w", err)
	}

	issuer, err := jwtsession.New(jwtsession.Config{
		Secret: []byte(cfg.Auth.SessionSecret),
		Issuer: cfg.Auth.SessionIssuer,
		TTL:    cfg.Auth.SessionTTL,
	})
	if err != nil {
		return service.AuthSecurity{}, fmt.Errorf("create session issuer: %w", err)
	}

	sec := service.AuthSecurity{Hasher: hasher, Sessions: issuer}
	if cfg.RedisClient != nil {
		sec.Revocations = redisadapter.NewSessionRevocations(cfg.RedisClient, cfg.Auth.SessionTTL)
	} else if cfg.Logger != nil {
		cfg.Logger.Warn("session revocation disabled: redis client not configured",
			"session_ttl", cfg.Auth.SessionTTL)
	}
	return sec, nil
}
