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

const quizResultColumns = `id, user_id, score, passed, completed_at`

const (
	quizResultInsertQuery = `
		INSERT INTO quiz_results (user_id, score, passed, completed_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + quizResultColumns

	// id breaks ties between attempts recorded in the same microsecond.
	quizResultLatestQuery = `
		SELECT ` + quizResultColumns + ` FROM quiz_results
		WHERE user_id = $1
		ORDER BY completed_at DESC, id DESC
		LIMIT 1`

	quizResultHistoryQuery = `
		SELECT ` + quizResultColumns + ` FROM quiz_results
		WHERE user_id = $1
		ORDER BY completed_at DESC, id DESC
		LIMIT $2`

	quizScoresQuery = `
		SELECT r.id, r.user_id, u.name AS user_name, u.email AS user_email,
		       r.score, r.passed, r.completed_at
		FROM quiz_results r
		JOIN users u ON u.id = r.user_id
		ORDER BY r.completed_at DESC, r.id DESC
		LIMIT $1 OFFSET $2`
)

// QuizResultRepo provides database operations for graded quiz attempts.
type QuizResultRepo struct {
	DB    *sql.DB
	clock Clock
}

// NewQuizResultRepo creates a new QuizResultRepo instance with the given database connection.
func NewQuizResultRepo(db *sql.DB) *QuizResultRepo {
	return &QuizResultRepo{DB: db, clock: SystemClock{}}
}

// NewQuizResultRepoWithClock returns a QuizResultRepo that stamps rows with clock.
func NewQuizResultRepoWithClock(db *sql.DB, clock Clock) *QuizResultRepo {
	return &QuizResultRepo{DB: db, clock: clock}
}

// Create appends a result. Earlier attempts are kept.
func (r *QuizResultRepo) Create(ctx context.Context, in model.NewQuizResult) (*model.QuizResult, error) {
	if in.Score < 0 || in.Score > 100 {
		return nil, apperrors.ValidationField("score", "score must be between 0 and 100")
	}
	out, err := pgxutil.QueryOne[model.QuizResult](ctx, r.DB, quizResultInsertQuery,
		in.UserID, in.Score, in.Passed, r.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to record quiz result: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// Latest returns the most recent attempt or ErrQuizResultNotFound.
func (r *QuizResultRepo) Latest(ctx context.Context, userID int64) (*model.QuizResult, error) {
	out, err := pgxutil.QueryOne[model.QuizResult](ctx, r.DB, quizResultLatestQuery, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrQuizResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest quiz result: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// History returns up to limit attempts, newest first.
func (r *QuizResultRepo) History(ctx context.Context, userID int64, limit int) ([]*model.QuizResult, error) {
	limit, _ = clampPage(limit, 0)

	results, err := pgxutil.QueryAll[model.QuizResult](ctx, r.DB, quizResultHistoryQuery, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz history: %w", apperrors.MapDBError(err))
	}
	return results, nil
}

// ListScores returns every recorded attempt joined with the identity, newest first.
func (r *QuizResultRepo) ListScores(ctx context.Context, opts model.ScoresListOptions) ([]*model.ScoreEntry, error) {
	limit, offset := clampPage(opts.Limit, opts.Offset)

	entries, err := pgxutil.QueryAll[model.ScoreEntry](ctx, r.DB, quizScoresQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz scores: %w", apperrors.MapDBError(err))
	}
	return entries, nil
}
