// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.
package ports

import (
	"context"
	"time"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
)

// PasswordHasher produces and verifies salted one-way password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil on match and domainauth.ErrInvalidCredentials on mismatch.
	Compare(hash, password string) error
	// CompareDummy burns the same work as Compare against a fixed hash; used when
	// no identity exists so response timing does not reveal registered emails.
	CompareDummy(password string)
}

// SessionIssuer signs and verifies stateless session tokens.
type SessionIssuer interface {
	Issue(identity domainauth.Identity) (domainauth.Session, error)
	// Validate returns the verified claims or one of the domainauth.ErrSession* errors.
	Validate(token string) (domainauth.Claims, error)
	TTL() time.Duration
}

// SessionRevocations tracks which otherwise valid tokens must be refused:
// tokens signed out explicitly and tokens issued before the holder's role changed.
type SessionRevocations interface {
	// RevokeToken refuses tokenID until expiresAt.
	RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error
	// IsTokenRevoked reports whether tokenID was revoked.
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
	// MarkRoleChanged records the role userID now holds and when it was assigned.
	MarkRoleChanged(ctx context.Context, userID int64, change domainauth.RoleChange) error
	// LastRoleChange returns the last recorded role change for userID, if any.
	LastRoleChange(ctx context.Context, userID int64) (domainauth.RoleChange, bool, error)
}
