package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/onboarding-portal/internal/adapters/jwtsession"
	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/domain/model"
	apperrors "github.com/target/onboarding-portal/internal/errors"
	"github.com/target/onboarding-portal/internal/mocks"
	authmocks "github.com/target/onboarding-portal/internal/mocks/auth"
)

type authFixture struct {
	users       *mocks.MockUserRepository
	issuer      *mocks.MockSessionIssuer
	hasher      *authmocks.PlainHasher
	revocations *authmocks.MemorySessionRevocations
	svc         *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &authFixture{
		users:       mocks.NewMockUserRepository(ctrl),
		issuer:      mocks.NewMockSessionIssuer(ctrl),
		hasher:      &authmocks.PlainHasher{},
		revocations: authmocks.NewMemorySessionRevocations(),
	}
	f.svc = NewAuthService(AuthServiceOptions{
		Users: f.users,
		Security: AuthSecurity{
			Hasher:      f.hasher,
			Sessions:    f.issuer,
			Revocations: f.revocations,
		},
	})
	return f
}

func identityFixture(role domainauth.Role) *domainauth.Identity {
	return &domainauth.Identity{
		ID:           42,
		Email:        "jane@company.com",
		Name:         "Jane",
		Role:         role,
		PasswordHash: "plain:correct-horse",
	}
}

func TestNewAuthService_RequiresDependencies(t *testing.T) {
	assert.Panics(t, func() { NewAuthService(AuthServiceOptions{}) })
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending identity with hashed password", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.EXPECT().Create(gomock.Any(), model.NewUser{
			Email:        "jane@company.com",
			Name:         "Jane",
			PasswordHash: "plain:correct-horse",
			Role:         domainauth.RolePending,
		}).Return(identityFixture(domainauth.RolePending), nil)

		got, err := f.svc.Register(ctx, model.RegisterRequest{
			Email: " Jane@Company.com ", Name: "Jane", Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.Equal(t, domainauth.RolePending, got.Role)
	})

	t.Run("duplicate email surfaces conflict", func(t *testing.T) {
		f := newAuthFixture(t)
		taken := apperrors.ConflictField("email", "an account with this email already exists")
		f.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, taken)

		_, err := f.svc.Register(ctx, model.RegisterRequest{
			Email: "jane@company.com", Name: "Jane", Password: "correct-horse",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.ErrorIs(t, err, taken)
	})

	t.Run("invalid payload never reaches the store", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.Register(ctx, model.RegisterRequest{Email: "jane@company.com", Name: "Jane", Password: "short"})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, "password", apperrors.GetField(err))
	})

	t.Run("hash failure is internal", func(t *testing.T) {
		f := newAuthFixture(t)
		f.hasher.HashErr = errors.New("rng exhausted")
		_, err := f.svc.Register(ctx, model.RegisterRequest{
			Email: "jane@company.com", Name: "Jane", Password: "correct-horse",
		})
		assert.True(t, apperrors.IsInternal(err))
	})
}

func TestAuthService_Provision_RejectsUnknownRole(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.Provision(context.Background(), model.RegisterRequest{
		Email: "ops@company.com", Name: "Ops", Password: "correct-horse",
	}, domainauth.Role("root"))
	assert.True(t, apperrors.IsValidation(err))
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.EXPECT().GetByEmail(gomock.Any(), "jane@company.com").Return(identityFixture(domainauth.RoleEmployee), nil)

		got, err := f.svc.Authenticate(ctx, model.LoginRequest{Email: "JANE@company.com", Password: "correct-horse"})
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.EXPECT().GetByEmail(gomock.Any(), "jane@company.com").Return(identityFixture(domainauth.RoleEmployee), nil)

		_, err := f.svc.Authenticate(ctx, model.LoginRequest{Email: "jane@company.com", Password: "nope-nope"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domainauth.ErrInvalidCredentials)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))
	})

	t.Run("unknown email runs dummy comparison and fails the same way", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.EXPECT().GetByEmail(gomock.Any(), "ghost@company.com").Return(nil, apperrors.NotFound("user not found"))

		_, err := f.svc.Authenticate(ctx, model.LoginRequest{Email: "ghost@company.com", Password: "whatever1"})
		assert.ErrorIs(t, err, domainauth.ErrInvalidCredentials)
		assert.Equal(t, 1, f.hasher.DummyCalls)
	})

	t.Run("missing fields are validation errors", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.Authenticate(ctx, model.LoginRequest{Email: "", Password: "x"})
		assert.True(t, apperrors.IsValidation(err))
		_, err = f.svc.Authenticate(ctx, model.LoginRequest{Email: "a@b.co", Password: ""})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("store failure is not reported as bad credentials", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, apperrors.Internal("db down"))
		_, err := f.svc.Authenticate(ctx, model.LoginRequest{Email: "jane@company.com", Password: "correct-horse"})
		assert.True(t, apperrors.IsInternal(err))
		assert.NotErrorIs(t, err, domainauth.ErrInvalidCredentials)
	})
}

func TestAuthService_Login_IssuesSessionWithCurrentRole(t *testing.T) {
	f := newAuthFixture(t)
	id := identityFixture(domainauth.RoleManager)
	f.users.EXPECT().GetByEmail(gomock.Any(), "jane@company.com").Return(id, nil)
	f.issuer.EXPECT().Issue(*id).Return(domainauth.Session{
		Token:  "signed",
		Claims: domainauth.Claims{Subject: 42, Role: domainauth.RoleManager},
	}, nil)

	res, err := f.svc.Login(context.Background(), model.LoginRequest{Email: "jane@company.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "signed", res.Session.Token)
	assert.Equal(t, domainauth.RoleManager, res.Session.Claims.Role)
}

func TestAuthService_ResolveSession(t *testing.T) {
	ctx := context.Background()
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	claims := domainauth.Claims{
		Subject:   42,
		Role:      domainauth.RoleEmployee,
		TokenID:   "jti-1",
		IssuedAt:  issued,
		ExpiresAt: issued.Add(15 * time.Minute),
	}

	t.Run("empty token is unauthenticated", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.ResolveSession(ctx, "")
		assert.ErrorIs(t, err, domainauth.ErrUnauthenticated)
	})

	t.Run("invalid token error passes through", func(t *testing.T) {
		f := newAuthFixture(t)
		f.issuer.EXPECT().Validate("tampered").Return(domainauth.Claims{}, domainauth.ErrSessionBadSignature)
		_, err := f.svc.ResolveSession(ctx, "tampered")
		assert.True(t, domainauth.IsSessionInvalid(err))
	})

	t.Run("valid token", func(t *testing.T) {
		f := newAuthFixture(t)
		f.issuer.EXPECT().Validate("tok").Return(claims, nil)
		got, err := f.svc.ResolveSession(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.Subject)
	})

	t.Run("revoked token", func(t *testing.T) {
		f := newAuthFixture(t)
		require.NoError(t, f.revocations.RevokeToken(ctx, "jti-1", claims.ExpiresAt))
		f.issuer.EXPECT().Validate("tok").Return(claims, nil)
		_, err := f.svc.ResolveSession(ctx, "tok")
		assert.ErrorIs(t, err, domainauth.ErrSessionRevoked)
	})

	t.Run("token minted under a replaced role is stale", func(t *testing.T) {
		f := newAuthFixture(t)
		change := domainauth.RoleChange{Role: domainauth.RoleManager, At: issued}
		require.NoError(t, f.revocations.MarkRoleChanged(ctx, 42, change))
		f.issuer.EXPECT().Validate("tok").Return(claims, nil)
		_, err := f.svc.ResolveSession(ctx, "tok")
		assert.ErrorIs(t, err, domainauth.ErrSessionRevoked)
	})

	t.Run("token issued after a role change is fresh", func(t *testing.T) {
		f := newAuthFixture(t)
		change := domainauth.RoleChange{Role: domainauth.RoleManager, At: issued.Add(-time.Second)}
		require.NoError(t, f.revocations.MarkRoleChanged(ctx, 42, change))
		f.issuer.EXPECT().Validate("tok").Return(claims, nil)
		_, err := f.svc.ResolveSession(ctx, "tok")
		assert.NoError(t, err)
	})

	t.Run("revocation store failure fails open", func(t *testing.T) {
		f := newAuthFixture(t)
		f.revocations.Err = errors.New("redis down")
		f.issuer.EXPECT().Validate("tok").Return(claims, nil)
		got, err := f.svc.ResolveSession(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, "jti-1", got.TokenID)
	})
}

func TestAuthService_ResolveSession_SignInDuringRoleChangeSecond(t *testing.T) {
	ctx := context.Background()
	changedAt := time.Date(2024, 1, 1, 12, 0, 0, 300*int(time.Millisecond), time.UTC)
	now := changedAt
	issuer, err := jwtsession.New(jwtsession.Config{
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		Issuer: "portal-test",
		TTL:    15 * time.Minute,
		Now:    func() time.Time { return now },
	})
	require.NoError(t, err)

	revocations := authmocks.NewMemorySessionRevocations()
	svc := NewAuthService(AuthServiceOptions{
		Users: mocks.NewMockUserRepository(gomock.NewController(t)),
		Security: AuthSecurity{
			Hasher:      &authmocks.PlainHasher{},
			Sessions:    issuer,
			Revocations: revocations,
		},
	})

	now = changedAt.Add(-200 * time.Millisecond)
	stale, err := svc.IssueSession(*identityFixture(domainauth.RolePending))
	require.NoError(t, err)

	change := domainauth.RoleChange{Role: domainauth.RoleEmployee, At: changedAt}
	require.NoError(t, revocations.MarkRoleChanged(ctx, 42, change))

	now = changedAt.Add(400 * time.Millisecond)
	fresh, err := svc.IssueSession(*identityFixture(domainauth.RoleEmployee))
	require.NoError(t, err)
	require.False(t, fresh.Claims.IssuedAt.After(changedAt), "both tokens share the change's second")

	got, err := svc.ResolveSession(ctx, fresh.Token)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleEmployee, got.Role)

	_, err = svc.ResolveSession(ctx, stale.Token)
	assert.ErrorIs(t, err, domainauth.ErrSessionRevoked)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	claims := &domainauth.Claims{Subject: 42, TokenID: "jti-9", ExpiresAt: time.Now().Add(time.Minute)}

	require.NoError(t, f.svc.Logout(ctx, claims))
	revoked, err := f.revocations.IsTokenRevoked(ctx, "jti-9")
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.NoError(t, f.svc.Logout(ctx, nil))

	f.revocations.Err = errors.New("redis down")
	assert.True(t, apperrors.IsInternal(f.svc.Logout(ctx, claims)))
}

func TestAuthService_CurrentIdentity(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, err := f.svc.CurrentIdentity(ctx, nil)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))

	f.users.EXPECT().GetByID(gomock.Any(), int64(42)).Return(identityFixture(domainauth.RoleAdmin), nil)
	got, err := f.svc.CurrentIdentity(ctx, &domainauth.Claims{Subject: 42})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, got.Role)
}
