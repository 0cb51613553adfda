package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/target/onboarding-portal/internal/data/pgxutil"
	"github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/domain/model"
	apperrors "github.com/target/onboarding-portal/internal/errors"
)

const userColumns = `id, email, name, role, password_hash, created_at, updated_at`

const (
	userInsertQuery = `
		INSERT INTO users (email, name, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING ` + userColumns

	userGetByIDQuery    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	userGetByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	userListQuery = `
		SELECT ` + userColumns + ` FROM users
		WHERE ($1::text IS NULL OR role = $1)
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3`

	userApproveQuery = `
		UPDATE users SET role = 'employee', updated_at = $2
		WHERE id = $1 AND role = 'pending'
		RETURNING ` + userColumns

	userSetRoleQuery = `
		UPDATE users SET role = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + userColumns
)

// UserRepo provides database operations for portal identities.
type UserRepo struct {
	DB    *sql.DB
	clock Clock
}

// NewUserRepo creates a new UserRepo instance with the given database connection.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, clock: SystemClock{}}
}

// NewUserRepoWithClock returns a UserRepo that stamps rows with clock.
func NewUserRepoWithClock(db *sql.DB, clock Clock) *UserRepo {
	return &UserRepo{DB: db, clock: clock}
}

// Create inserts a new identity. A taken email yields ErrEmailTaken.
func (r *UserRepo) Create(ctx context.Context, u model.NewUser) (*auth.Identity, error) {
	if !u.Role.Valid() {
		return nil, apperrors.ValidationField("role", "invalid role")
	}
	out, err := r.queryOne(ctx, userInsertQuery,
		model.NormalizeEmail(u.Email), u.Name, u.PasswordHash, u.Role, r.clock.Now())
	if err != nil {
		if apperrors.IsUniqueViolation(err, constraintUsersEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// GetByID retrieves an identity by id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*auth.Identity, error) {
	return r.getOne(ctx, "failed to get user by ID", userGetByIDQuery, id)
}

// GetByEmail retrieves an identity by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.Identity, error) {
	return r.getOne(ctx, "failed to get user by email", userGetByEmailQuery, model.NormalizeEmail(email))
}

// List returns identities oldest first, optionally filtered by role.
func (r *UserRepo) List(ctx context.Context, opts model.UsersListOptions) ([]*auth.Identity, error) {
	limit, offset := clampPage(opts.Limit, opts.Offset)

	var role *string
	if opts.Role != nil {
		s := opts.Role.String()
		role = &s
	}

	users, err := pgxutil.QueryAll[auth.Identity](ctx, r.DB, userListQuery, role, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", apperrors.MapDBError(err))
	}
	return users, nil
}

// ApprovePending promotes a pending identity to employee with a conditional
// update, so concurrent approvals transition the row at most once.
func (r *UserRepo) ApprovePending(ctx context.Context, id int64) (*auth.Identity, bool, error) {
	out, err := r.queryOne(ctx, userApproveQuery, id, r.clock.Now())
	if err == nil {
		return out, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to approve user: %w", apperrors.MapDBError(err))
	}

	current, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return nil, false, getErr
	}
	return current, false, nil
}

// SetRole overwrites the role of an identity.
func (r *UserRepo) SetRole(ctx context.Context, id int64, role auth.Role) (*auth.Identity, error) {
	if !role.Valid() {
		return nil, apperrors.ValidationField("role", "invalid role")
	}
	out, err := r.queryOne(ctx, userSetRoleQuery, id, role, r.clock.Now())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to set user role: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

func (r *UserRepo) getOne(ctx context.Context, errMsg, q string, args ...any) (*auth.Identity, error) {
	out, err := r.queryOne(ctx, q, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, apperrors.MapDBError(err))
	}
	return out, nil
}

// queryOne runs q and collects exactly one identity row. pgx.ErrNoRows is returned unwrapped.
func (r *UserRepo) queryOne(ctx context.Context, q string, args ...any) (*auth.Identity, error) {
	return pgxutil.QueryOne[auth.Identity](ctx, r.DB, q, args...)
}
