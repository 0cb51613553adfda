package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/target/onboarding-portal/internal/data/pgxutil"
	"github.com/target/onboarding-portal/internal/domain/model"
	apperrors "github.com/target/onboarding-portal/internal/errors"
)

const moduleColumns = `id, title, description, content, sort_order, created_at, updated_at`

const (
	moduleInsertQuery = `
		INSERT INTO onboarding_modules (title, description, content, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING ` + moduleColumns

	moduleGetByIDQuery = `SELECT ` + moduleColumns + ` FROM onboarding_modules WHERE id = $1`
	moduleListQuery    = `SELECT ` + moduleColumns + ` FROM onboarding_modules ORDER BY sort_order ASC, id ASC`

	moduleUpdateQuery = `
		UPDATE onboarding_modules
		SET title = $2, description = $3, content = $4, sort_order = $5, updated_at = $6
		WHERE id = $1
		RETURNING ` + moduleColumns

	moduleDeleteQuery = `DELETE FROM onboarding_modules WHERE id = $1`
)

// ModuleRepo provides database operations for onboarding modules.
type ModuleRepo struct {
	DB    *sql.DB
	clock Clock
}

// NewModuleRepo creates a new ModuleRepo instance with the given database connection.
func NewModuleRepo(db *sql.DB) *ModuleRepo {
	return &ModuleRepo{DB: db, clock: SystemClock{}}
}

// NewModuleRepoWithClock returns a ModuleRepo that stamps rows with clock.
func NewModuleRepoWithClock(db *sql.DB, clock Clock) *ModuleRepo {
	return &ModuleRepo{DB: db, clock: clock}
}

// Create validates and inserts a module.
func (r *ModuleRepo) Create(ctx context.Context, req *model.ModuleRequest) (*model.Module, error) {
	if req == nil {
		return nil, apperrors.Validation("module request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	out, err := r.queryOne(ctx, moduleInsertQuery,
		req.Title, req.Description, req.Content, *req.Order, r.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to create module: %w", mapModuleWriteErr(err))
	}
	return out, nil
}

// GetByID retrieves a module by id.
func (r *ModuleRepo) GetByID(ctx context.Context, id int64) (*model.Module, error) {
	out, err := r.queryOne(ctx, moduleGetByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrModuleNotFound
		}
		return nil, fmt.Errorf("failed to get module by ID: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// List returns every module in display order.
func (r *ModuleRepo) List(ctx context.Context) ([]*model.Module, error) {
	modules, err := pgxutil.QueryAll[model.Module](ctx, r.DB, moduleListQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", apperrors.MapDBError(err))
	}
	return modules, nil
}

// Update replaces every mutable field of a module.
func (r *ModuleRepo) Update(ctx context.Context, id int64, req *model.ModuleRequest) (*model.Module, error) {
	if req == nil {
		return nil, apperrors.Validation("module request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	out, err := r.queryOne(ctx, moduleUpdateQuery,
		id, req.Title, req.Description, req.Content, *req.Order, r.clock.Now())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrModuleNotFound
		}
		return nil, fmt.Errorf("failed to update module: %w", mapModuleWriteErr(err))
	}
	return out, nil
}

// Delete removes a module; progress rows referencing it cascade.
func (r *ModuleRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, moduleDeleteQuery, id)
	if err != nil {
		return fmt.Errorf("failed to delete module: %w", apperrors.MapDBError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return ErrModuleNotFound
	}
	return nil
}

func (r *ModuleRepo) queryOne(ctx context.Context, q string, args ...any) (*model.Module, error) {
	return pgxutil.QueryOne[model.Module](ctx, r.DB, q, args...)
}

func mapModuleWriteErr(err error) error {
	if apperrors.IsUniqueViolation(err, constraintModuleOrder) {
		return ErrModuleOrderTaken
	}
	return apperrors.MapDBError(err)
}
