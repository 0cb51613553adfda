package httpx

import (
	"context"
	"log/slog"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
)

// claimsKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type claimsKey struct{}

// loggerKey carries the request-scoped logger installed by Logging.
type loggerKey struct{}

// SetClaimsInContext returns a child context that carries the verified session claims.
// If claims is nil, the original ctx is returned unchanged.
func SetClaimsInContext(ctx context.Context, claims *domainauth.Claims) context.Context {
	if claims == nil {
		return ctx
	}
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaimsFromContext returns the session claims and whether the request is signed in.
func GetClaimsFromContext(ctx context.Context) (*domainauth.Claims, bool) {
	if c, ok := ctx.Value(claimsKey{}).(*domainauth.Claims); ok && c != nil {
		return c, true
	}
	return nil, false
}

// ClaimsFrom returns the session claims or nil for anonymous requests.
func ClaimsFrom(ctx context.Context) *domainauth.Claims {
	c, _ := GetClaimsFromContext(ctx)
	return c
}

func withLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}
