package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/target/onboarding-portal/internal/core"
	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/domain/model"
	apperrors "github.com/target/onboarding-portal/internal/errors"
	"github.com/target/onboarding-portal/internal/ports"
)

// AuthSecurity groups the credential and session ports AuthService drives.
type AuthSecurity struct {
	Hasher   ports.PasswordHasher
	Sessions ports.SessionIssuer
	// Revocations is optional; without it sign-out only clears the cookie and
	// stale roles are bounded by the session TTL alone.
	Revocations ports.SessionRevocations
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users    core.UserRepository
	Security AuthSecurity
	Logger   *slog.Logger
}

// AuthService verifies credentials and issues, resolves and revokes sessions.
type AuthService struct {
	users       core.UserRepository
	hasher      ports.PasswordHasher
	sessions    ports.SessionIssuer
	revocations ports.SessionRevocations
	logger      *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Users == nil {
		panic("UserRepository is required")
	}
	if opts.Security.Hasher == nil || opts.Security.Sessions == nil {
		panic("password hasher and session issuer are required")
	}
	return &AuthService{
		users:       opts.Users,
		hasher:      opts.Security.Hasher,
		sessions:    opts.Security.Sessions,
		revocations: opts.Security.Revocations,
		logger:      loggerOrDefault(opts.Logger).With("component", "auth"),
	}
}

// LoginResult is a verified identity together with its freshly issued session.
type LoginResult struct {
	Identity *domainauth.Identity
	Session  domainauth.Session
}

// Register creates a pending identity from a self-service sign-up.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*domainauth.Identity, error) {
	return s.Provision(ctx, req, domainauth.RolePending)
}

// Provision creates an identity with an explicit role. Operators use it from the
// admin CLI and dev seeding; self-service registration always passes RolePending.
func (s *AuthService) Provision(
	ctx context.Context,
	req model.RegisterRequest,
	role domainauth.Role,
) (*domainauth.Identity, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, apperrors.ValidationField("role", "invalid role")
	}
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "could not secure password")
	}
	identity, err := s.users.Create(ctx, model.NewUser{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.InfoContext(ctx, "identity registered", "user_id", identity.ID, "role", identity.Role)
	return identity, nil
}

// Authenticate verifies an email/password pair. Unknown emails and wrong
// passwords fail identically, and both run a bcrypt comparison.
func (s *AuthService) Authenticate(ctx context.Context, req model.LoginRequest) (*domainauth.Identity, error) {
	email := model.NormalizeEmail(req.Email)
	if email == "" {
		return nil, apperrors.ValidationField("email", "email is required")
	}
	if req.Password == "" {
		return nil, apperrors.ValidationField("password", "password is required")
	}

	identity, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.hasher.CompareDummy(req.Password)
			return nil, invalidCredentials()
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if cmpErr := s.hasher.Compare(identity.PasswordHash, req.Password); cmpErr != nil {
		if errors.Is(cmpErr, domainauth.ErrInvalidCredentials) {
			return nil, invalidCredentials()
		}
		return nil, apperrors.Wrap(cmpErr, apperrors.ErrCodeInternal, "could not verify password")
	}
	return identity, nil
}

// Login authenticates and issues a session carrying the identity's current role.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*LoginResult, error) {
	identity, err := s.Authenticate(ctx, req)
	if err != nil {
		return nil, err
	}
	sess, err := s.IssueSession(*identity)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "signed in", "user_id", identity.ID, "role", identity.Role)
	return &LoginResult{Identity: identity, Session: sess}, nil
}

// IssueSession signs a session for identity.
func (s *AuthService) IssueSession(identity domainauth.Identity) (domainauth.Session, error) {
	sess, err := s.sessions.Issue(identity)
	if err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "could not issue session")
	}
	return sess, nil
}

// ResolveSession verifies token and applies revocation checks. The returned
// error wraps one of the domainauth session errors when the token must be ignored.
// Revocation store failures are logged and the token is accepted; the session
// TTL still bounds its lifetime.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*domainauth.Claims, error) {
	if token == "" {
		return nil, domainauth.ErrUnauthenticated
	}
	claims, err := s.sessions.Validate(token)
	if err != nil {
		return nil, err
	}
	if s.revocations == nil {
		return &claims, nil
	}

	revoked, err := s.revocations.IsTokenRevoked(ctx, claims.TokenID)
	switch {
	case err != nil:
		s.logger.WarnContext(ctx, "revocation lookup failed; accepting token", "error", err)
	case revoked:
		return nil, domainauth.ErrSessionRevoked
	}

	change, ok, err := s.revocations.LastRoleChange(ctx, claims.Subject)
	switch {
	case err != nil:
		s.logger.WarnContext(ctx, "role watermark lookup failed; accepting token", "error", err, "user_id", claims.Subject)
	case ok && change.Supersedes(claims):
		return nil, fmt.Errorf("%w: role changed after issuance", domainauth.ErrSessionRevoked)
	}
	return &claims, nil
}

// Logout revokes the session's token id until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *domainauth.Claims) error {
	if claims == nil || s.revocations == nil || claims.TokenID == "" {
		return nil
	}
	if err := s.revocations.RevokeToken(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "could not revoke session")
	}
	s.logger.InfoContext(ctx, "signed out", "user_id", claims.Subject)
	return nil
}

// CurrentIdentity loads the stored identity behind claims.
func (s *AuthService) CurrentIdentity(ctx context.Context, claims *domainauth.Claims) (*domainauth.Identity, error) {
	if claims == nil {
		return nil, apperrors.Wrap(domainauth.ErrUnauthenticated, apperrors.ErrCodeUnauthorized, errSignInNeeded)
	}
	identity, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("load current user: %w", err)
	}
	return identity, nil
}

// SessionTTL is the lifetime of issued sessions.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessions.TTL()
}

func invalidCredentials() error {
	return apperrors.Wrap(domainauth.ErrInvalidCredentials, apperrors.ErrCodeUnauthorized, "invalid email or password")
}
