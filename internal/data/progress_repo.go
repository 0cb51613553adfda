package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/target/onboarding-portal/internal/data/pgxutil"
	"github.com/target/onboarding-portal/internal/domain/model"
	apperrors "github.com/target/onboarding-portal/internal/errors"
)

const progressColumns = `id, user_id, module_id, completed, completed_at`

const (
	progressInsertQuery = `
		INSERT INTO onboarding_progress (user_id, module_id, completed, completed_at)
		VALUES ($1, $2, true, $3)
		ON CONFLICT ON CONSTRAINT onboarding_progress_user_module_key DO NOTHING
		RETURNING ` + progressColumns

	progressGetQuery = `
		SELECT ` + progressColumns + ` FROM onboarding_progress
		WHERE user_id = $1 AND module_id = $2`

	progressCompletedIDsQuery = `
		SELECT module_id FROM onboarding_progress
		WHERE user_id = $1 AND completed
		ORDER BY module_id ASC`
)

// ProgressRepo provides database operations for module completion records.
type ProgressRepo struct {
	DB    *sql.DB
	clock Clock
}

// NewProgressRepo creates a new ProgressRepo instance with the given database connection.
func NewProgressRepo(db *sql.DB) *ProgressRepo {
	return &ProgressRepo{DB: db, clock: SystemClock{}}
}

// NewProgressRepoWithClock returns a ProgressRepo that stamps rows with clock.
func NewProgressRepoWithClock(db *sql.DB, clock Clock) *ProgressRepo {
	return &ProgressRepo{DB: db, clock: clock}
}

// Complete records completion of moduleID by userID. Repeat calls return the
// first record with created=false. An unknown module yields ErrModuleNotFound.
func (r *ProgressRepo) Complete(ctx context.Context, userID, moduleID int64) (*model.Progress, bool, error) {
	var (
		out     model.Progress
		created bool
	)
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, progressInsertQuery, userID, moduleID, r.clock.Now())
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Progress])
		if err == nil {
			created = true
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		rows, err = conn.Query(ctx, progressGetQuery, userID, moduleID)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Progress])
		return err
	})
	if err != nil {
		if isModuleReference(err) {
			return nil, false, ErrModuleNotFound
		}
		return nil, false, fmt.Errorf("failed to complete module: %w", apperrors.MapDBError(err))
	}
	return &out, created, nil
}

// ListCompletedModuleIDs returns the ids of modules userID has completed.
func (r *ProgressRepo) ListCompletedModuleIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids, err := pgxutil.QueryColumn[int64](ctx, r.DB, progressCompletedIDsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed modules: %w", apperrors.MapDBError(err))
	}
	return ids, nil
}

func isModuleReference(err error) bool {
	var pgErr *pgconn.PgError
	return apperrors.IsForeignKeyViolation(err) &&
		errors.As(err, &pgErr) && strings.Contains(pgErr.ConstraintName, "module")
}
