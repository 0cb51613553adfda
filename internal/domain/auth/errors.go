package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for both unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthenticated means the caller has no valid session.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden means the caller's role does not permit the operation.
	ErrForbidden = errors.New("insufficient role")

	ErrSessionExpired      = errors.New("session expired")
	ErrSessionMalformed    = errors.New("session token malformed")
	ErrSessionBadSignature = errors.New("session token signature invalid")

	// ErrSessionRevoked means the token was signed out or predates a role change.
	ErrSessionRevoked = errors.New("session revoked")
)

// IsSessionInvalid reports whether err describes a token that must not be honored.
func IsSessionInvalid(err error) bool {
	return errors.Is(err, ErrSessionExpired) ||
		errors.Is(err, ErrSessionMalformed) ||
		errors.Is(err, ErrSessionBadSignature) ||
		errors.Is(err, ErrSessionRevoked)
}

// Require returns ErrUnauthenticated when claims is nil and ErrForbidden when
// the claims' role is outside required.
func Require(claims *Claims, required RoleSet) error {
	if claims == nil {
		return ErrUnauthenticated
	}
	if !claims.Role.Can(required) {
		return ErrForbidden
	}
	return nil
}
