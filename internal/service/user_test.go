package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/domain/model"
	apperrors "github.com/target/onboarding-portal/internal/errors"
	"github.com/target/onboarding-portal/internal/mocks"
	authmocks "github.com/target/onboarding-portal/internal/mocks/auth"
)

func claimsFor(id int64, role domainauth.Role) *domainauth.Claims {
	return &domainauth.Claims{Subject: id, Role: role, TokenID: "jti"}
}

func newUserFixture(t *testing.T) (*UserService, *mocks.MockUserRepository, *authmocks.MemorySessionRevocations) {
	t.Helper()
	users := mocks.NewMockUserRepository(gomock.NewController(t))
	rev := authmocks.NewMemorySessionRevocations()
	svc := NewUserService(UserServiceOptions{Users: users, Revocations: rev})
	svc.now = func() time.Time { return time.Unix(1700000000, 0) }
	return svc, users, rev
}

func TestUserService_ListPending(t *testing.T) {
	ctx := context.Background()

	for _, role := range []domainauth.Role{domainauth.RoleManager, domainauth.RoleAdmin} {
		t.Run(string(role)+" may list", func(t *testing.T) {
			svc, users, _ := newUserFixture(t)
			users.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, opts model.UsersListOptions) ([]*domainauth.Identity, error) {
					require.NotNil(t, opts.Role)
					assert.Equal(t, domainauth.RolePending, *opts.Role)
					return []*domainauth.Identity{{ID: 7, Role: domainauth.RolePending}}, nil
				})
			got, err := svc.ListPending(ctx, claimsFor(1, role))
			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}

	t.Run("reads every page of a long queue", func(t *testing.T) {
		svc, users, _ := newUserFixture(t)
		var offsets []int
		users.EXPECT().List(gomock.Any(), gomock.Any()).Times(3).DoAndReturn(
			func(_ context.Context, opts model.UsersListOptions) ([]*domainauth.Identity, error) {
				offsets = append(offsets, opts.Offset)
				assert.Equal(t, pendingPageSize, opts.Limit)
				n := pendingPageSize
				if opts.Offset == 2*pendingPageSize {
					n = 3
				}
				page := make([]*domainauth.Identity, n)
				for i := range page {
					page[i] = &domainauth.Identity{ID: int64(opts.Offset + i + 1), Role: domainauth.RolePending}
				}
				return page, nil
			})
		got, err := svc.ListPending(ctx, claimsFor(1, domainauth.RoleManager))
		require.NoError(t, err)
		assert.Len(t, got, 2*pendingPageSize+3)
		assert.Equal(t, []int{0, pendingPageSize, 2 * pendingPageSize}, offsets)
		assert.Equal(t, int64(2*pendingPageSize+3), got[len(got)-1].ID)
	})

	t.Run("employee is forbidden", func(t *testing.T) {
		svc, _, _ := newUserFixture(t)
		_, err := svc.ListPending(ctx, claimsFor(1, domainauth.RoleEmployee))
		assert.Equal(t, apperrors.ErrCodeForbidden, apperrors.GetCode(err))
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		svc, _, _ := newUserFixture(t)
		_, err := svc.ListPending(ctx, nil)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))
	})
}

func TestUserService_Approve(t *testing.T) {
	ctx := context.Background()
	manager := claimsFor(1, domainauth.RoleManager)

	t.Run("pending becomes employee and old sessions go stale", func(t *testing.T) {
		svc, users, rev := newUserFixture(t)
		users.EXPECT().ApprovePending(gomock.Any(), int64(7)).
			Return(&domainauth.Identity{ID: 7, Role: domainauth.RoleEmployee}, true, nil)

		got, err := svc.Approve(ctx, manager, 7)
		require.NoError(t, err)
		assert.Equal(t, domainauth.RoleEmployee, got.Role)

		change, ok, err := rev.LastRoleChange(ctx, 7)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, domainauth.RoleEmployee, change.Role)
		assert.Equal(t, int64(1700000000), change.At.Unix())
	})

	t.Run("second approval is a no-op", func(t *testing.T) {
		svc, users, rev := newUserFixture(t)
		users.EXPECT().ApprovePending(gomock.Any(), int64(7)).
			Return(&domainauth.Identity{ID: 7, Role: domainauth.RoleEmployee}, false, nil)

		got, err := svc.Approve(ctx, manager, 7)
		require.NoError(t, err)
		assert.Equal(t, domainauth.RoleEmployee, got.Role)
		_, ok, _ := rev.LastRoleChange(ctx, 7)
		assert.False(t, ok)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		svc, users, _ := newUserFixture(t)
		users.EXPECT().ApprovePending(gomock.Any(), int64(99)).Return(nil, false, apperrors.NotFound("user not found"))
		_, err := svc.Approve(ctx, manager, 99)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("missing id is a validation error", func(t *testing.T) {
		svc, _, _ := newUserFixture(t)
		_, err := svc.Approve(ctx, manager, 0)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("pending and employee cannot approve", func(t *testing.T) {
		svc, _, _ := newUserFixture(t)
		for _, role := range []domainauth.Role{domainauth.RolePending, domainauth.RoleEmployee} {
			_, err := svc.Approve(ctx, claimsFor(1, role), 7)
			assert.Equal(t, apperrors.ErrCodeForbidden, apperrors.GetCode(err), role)
		}
	})
}

func TestUserService_SetRole(t *testing.T) {
	ctx := context.Background()
	admin := claimsFor(1, domainauth.RoleAdmin)

	t.Run("promotes and marks role change", func(t *testing.T) {
		svc, users, rev := newUserFixture(t)
		gomock.InOrder(
			users.EXPECT().GetByID(gomock.Any(), int64(5)).Return(&domainauth.Identity{ID: 5, Role: domainauth.RoleEmployee}, nil),
			users.EXPECT().SetRole(gomock.Any(), int64(5), domainauth.RoleManager).
				Return(&domainauth.Identity{ID: 5, Role: domainauth.RoleManager}, nil),
		)
		got, err := svc.SetRole(ctx, admin, 5, model.SetRoleRequest{Role: "manager"})
		require.NoError(t, err)
		assert.Equal(t, domainauth.RoleManager, got.Role)
		change, ok, _ := rev.LastRoleChange(ctx, 5)
		assert.True(t, ok)
		assert.Equal(t, domainauth.RoleManager, change.Role)
	})

	t.Run("unchanged role skips the write", func(t *testing.T) {
		svc, users, rev := newUserFixture(t)
		users.EXPECT().GetByID(gomock.Any(), int64(5)).Return(&domainauth.Identity{ID: 5, Role: domainauth.RoleManager}, nil)
		_, err := svc.SetRole(ctx, admin, 5, model.SetRoleRequest{Role: "manager"})
		require.NoError(t, err)
		_, ok, _ := rev.LastRoleChange(ctx, 5)
		assert.False(t, ok)
	})

	t.Run("own role is off limits", func(t *testing.T) {
		svc, _, _ := newUserFixture(t)
		_, err := svc.SetRole(ctx, admin, 1, model.SetRoleRequest{Role: "employee"})
		assert.Equal(t, apperrors.ErrCodeForbidden, apperrors.GetCode(err))
	})

	t.Run("unknown role", func(t *testing.T) {
		svc, _, _ := newUserFixture(t)
		_, err := svc.SetRole(ctx, admin, 5, model.SetRoleRequest{Role: "superuser"})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("manager cannot set roles", func(t *testing.T) {
		svc, _, _ := newUserFixture(t)
		_, err := svc.SetRole(ctx, claimsFor(2, domainauth.RoleManager), 5, model.SetRoleRequest{Role: "admin"})
		assert.Equal(t, apperrors.ErrCodeForbidden, apperrors.GetCode(err))
	})
}

func TestUserService_ListUsers_AdminOnly(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newUserFixture(t)

	_, err := svc.ListUsers(ctx, claimsFor(2, domainauth.RoleManager), model.UsersListOptions{})
	assert.Equal(t, apperrors.ErrCodeForbidden, apperrors.GetCode(err))

	users.EXPECT().List(gomock.Any(), model.UsersListOptions{Limit: 10}).Return([]*domainauth.Identity{{ID: 1}}, nil)
	got, err := svc.ListUsers(ctx, claimsFor(1, domainauth.RoleAdmin), model.UsersListOptions{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
