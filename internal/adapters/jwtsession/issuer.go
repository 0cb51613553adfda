// Package jwtsession implements ports.SessionIssuer with HS256-signed JWTs.
package jwtsession

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
)

// MinSecretLen is the shortest signing key accepted.
const MinSecretLen = 32

// Config holds the immutable signing parameters.
type Config struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

type tokenClaims struct {
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// New validates cfg and returns an Issuer. The secret is copied.
func New(cfg Config) (*Issuer, error) {
	if len(cfg.Secret) < MinSecretLen {
		return nil, fmt.Errorf("session secret must be at least %d bytes", MinSecretLen)
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("session TTL must be positive")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Issuer{
		secret: append([]byte(nil), cfg.Secret...),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		now:    now,
	}, nil
}

// TTL returns the lifetime of issued tokens.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs a token carrying the identity's id and current role.
func (i *Issuer) Issue(identity domainauth.Identity) (domainauth.Session, error) {
	if identity.ID <= 0 {
		return domainauth.Session{}, errors.New("identity id is required")
	}
	if !identity.Role.Valid() {
		return domainauth.Session{}, fmt.Errorf("identity has invalid role %q", identity.Role)
	}

	now := i.now().UTC().Truncate(time.Second)
	exp := now.Add(i.ttl)
	claims := tokenClaims{
		Role: string(identity.Role),
		Name: identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.ID, 10),
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("sign session token: %w", err)
	}
	return domainauth.Session{
		Token: signed,
		Claims: domainauth.Claims{
			Subject:   identity.ID,
			Role:      identity.Role,
			Name:      identity.Name,
			TokenID:   claims.ID,
			IssuedAt:  now,
			ExpiresAt: exp,
		},
	}, nil
}

// Validate verifies the signature, algorithm, issuer and lifetime of token.
func (i *Issuer) Validate(token string) (domainauth.Claims, error) {
	if token == "" {
		return domainauth.Claims{}, domainauth.ErrSessionMalformed
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(i.now),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}

	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(*jwt.Token) (any, error) {
		return i.secret, nil
	}, opts...)
	if err != nil {
		return domainauth.Claims{}, mapParseError(err)
	}
	if !parsed.Valid {
		return domainauth.Claims{}, domainauth.ErrSessionMalformed
	}

	sub, err := strconv.ParseInt(tc.Subject, 10, 64)
	if err != nil || sub <= 0 {
		return domainauth.Claims{}, fmt.Errorf("%w: bad subject", domainauth.ErrSessionMalformed)
	}
	role, err := domainauth.ParseRole(tc.Role)
	if err != nil {
		return domainauth.Claims{}, fmt.Errorf("%w: %w", domainauth.ErrSessionMalformed, err)
	}

	out := domainauth.Claims{
		Subject: sub,
		Role:    role,
		Name:    tc.Name,
		TokenID: tc.ID,
	}
	if tc.IssuedAt != nil {
		out.IssuedAt = tc.IssuedAt.Time
	}
	if tc.ExpiresAt != nil {
		out.ExpiresAt = tc.ExpiresAt.Time
	}
	return out, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", domainauth.ErrSessionExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", domainauth.ErrSessionBadSignature, err)
	default:
		return fmt.Errorf("%w: %w", domainauth.ErrSessionMalformed, err)
	}
}
