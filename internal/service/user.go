package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/target/onboarding-portal/internal/core"
	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/domain/model"
	apperrors "github.com/target/onboarding-portal/internal/errors"
	"github.com/target/onboarding-portal/internal/ports"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Users       core.UserRepository
	Revocations ports.SessionRevocations // optional
	Logger      *slog.Logger
}

// UserService covers approval of pending identities and admin role management.
type UserService struct {
	users       core.UserRepository
	revocations ports.SessionRevocations
	logger      *slog.Logger
	now         func() time.Time
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	if opts.Users == nil {
		panic("UserRepository is required")
	}
	return &UserService{
		users:       opts.Users,
		revocations: opts.Revocations,
		logger:      loggerOrDefault(opts.Logger).With("component", "users"),
		now:         time.Now,
	}
}

// pendingPageSize bounds each read of the approval queue.
const pendingPageSize = 200

// ListPending returns every identity awaiting approval, oldest first. The
// queue is read a page at a time until a short page ends it.
func (s *UserService) ListPending(ctx context.Context, actor *domainauth.Claims) ([]*domainauth.Identity, error) {
	if err := authorize(actor, managerOrAdmin); err != nil {
		return nil, err
	}
	pending := domainauth.RolePending
	var all []*domainauth.Identity
	for offset := 0; ; offset += pendingPageSize {
		page, err := s.users.List(ctx, model.UsersListOptions{Role: &pending, Limit: pendingPageSize, Offset: offset})
		if err != nil {
			return nil, fmt.Errorf("list pending users: %w", err)
		}
		all = append(all, page...)
		if len(page) < pendingPageSize {
			return all, nil
		}
	}
}

// Approve moves a pending identity to employee. Approving an identity that is
// no longer pending succeeds without changing it.
func (s *UserService) Approve(ctx context.Context, actor *domainauth.Claims, userID int64) (*domainauth.Identity, error) {
	if err := authorize(actor, managerOrAdmin); err != nil {
		return nil, err
	}
	if userID <= 0 {
		return nil, apperrors.ValidationField("userId", "userId is required")
	}

	identity, changed, err := s.users.ApprovePending(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("approve user: %w", err)
	}
	if changed {
		s.markRoleChanged(ctx, userID, identity.Role)
		s.logger.InfoContext(ctx, "user approved", "user_id", userID, "approved_by", actor.Subject)
	}
	return identity, nil
}

// ListUsers returns every identity for the admin dashboard.
func (s *UserService) ListUsers(
	ctx context.Context,
	actor *domainauth.Claims,
	opts model.UsersListOptions,
) ([]*domainauth.Identity, error) {
	if err := authorize(actor, adminOnly); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SetRole assigns a role directly. Admins cannot change their own role, which
// keeps at least one admin able to undo mistakes.
func (s *UserService) SetRole(
	ctx context.Context,
	actor *domainauth.Claims,
	userID int64,
	req model.SetRoleRequest,
) (*domainauth.Identity, error) {
	if err := authorize(actor, adminOnly); err != nil {
		return nil, err
	}
	role, err := req.Validate()
	if err != nil {
		return nil, err
	}
	if userID == actor.Subject {
		return nil, apperrors.Forbidden("you cannot change your own role")
	}

	current, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if current.Role == role {
		return current, nil
	}

	updated, err := s.users.SetRole(ctx, userID, role)
	if err != nil {
		return nil, fmt.Errorf("set role: %w", err)
	}
	s.markRoleChanged(ctx, userID, updated.Role)
	s.logger.InfoContext(ctx, "role changed",
		"user_id", userID, "from", current.Role, "to", role, "changed_by", actor.Subject)
	return updated, nil
}

// markRoleChanged invalidates sessions issued under an earlier role. Failure
// only widens the stale window to the session TTL, so it is logged rather
// than returned.
func (s *UserService) markRoleChanged(ctx context.Context, userID int64, role domainauth.Role) {
	if s.revocations == nil {
		return
	}
	change := domainauth.RoleChange{Role: role, At: s.now()}
	if err := s.revocations.MarkRoleChanged(ctx, userID, change); err != nil {
		s.logger.WarnContext(ctx, "failed to record role change", "user_id", userID, "error", err)
	}
}
