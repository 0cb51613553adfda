package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	minSessionSecretLen = 32
	minBcryptCost       = 4
	maxBcryptCost       = 31
	defaultBcryptCost   = 10
	minSessionTTL       = time.Minute
	maxSessionTTL       = 24 * time.Hour
)

// AuthConfig groups session signing and credential hashing configuration.
type AuthConfig struct {
	// SessionSecret signs session tokens. Rotating it signs everyone out.
	SessionSecret string `env:"SESSION_SECRET"`

	// SessionTTL bounds how long a role claim can be stale.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"15m"`

	// SessionCookieName is the cookie carrying the session token.
	SessionCookieName string `env:"SESSION_COOKIE_NAME" envDefault:"portal_session"`

	// SessionIssuer is the iss claim written to and required on tokens.
	SessionIssuer string `env:"SESSION_ISSUER" envDefault:"onboarding-portal"`

	// BcryptCost is the work factor for new password hashes.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

// Sanitize clamps values into supported ranges.
func (a *AuthConfig) Sanitize() {
	a.SessionSecret = strings.TrimSpace(a.SessionSecret)
	a.SessionCookieName = strings.TrimSpace(a.SessionCookieName)
	if a.SessionCookieName == "" {
		a.SessionCookieName = "portal_session"
	}
	if a.SessionTTL < minSessionTTL {
		a.SessionTTL = minSessionTTL
	}
	if a.SessionTTL > maxSessionTTL {
		a.SessionTTL = maxSessionTTL
	}
	if a.BcryptCost == 0 {
		a.BcryptCost = defaultBcryptCost
	}
	if a.BcryptCost < minBcryptCost {
		a.BcryptCost = minBcryptCost
	}
	if a.BcryptCost > maxBcryptCost {
		a.BcryptCost = maxBcryptCost
	}
}

// Validate requires a signing secret long enough for HS256.
func (a *AuthConfig) Validate() error {
	if a.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if len(a.SessionSecret) < minSessionSecretLen {
		return fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSessionSecretLen)
	}
	return nil
}
