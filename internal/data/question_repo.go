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

const questionColumns = `id, prompt, options, correct_answer, created_at, updated_at`

const (
	questionInsertQuery = `
		INSERT INTO quiz_questions (prompt, options, correct_answer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING ` + questionColumns

	questionGetByIDQuery = `SELECT ` + questionColumns + ` FROM quiz_questions WHERE id = $1`
	questionListQuery    = `SELECT ` + questionColumns + ` FROM quiz_questions ORDER BY id ASC`

	questionUpdateQuery = `
		UPDATE quiz_questions
		SET prompt = $2, options = $3, correct_answer = $4, updated_at = $5
		WHERE id = $1
		RETURNING ` + questionColumns

	questionDeleteQuery = `DELETE FROM quiz_questions WHERE id = $1`
)

// QuestionRepo provides database operations for quiz questions.
type QuestionRepo struct {
	DB    *sql.DB
	clock Clock
}

// NewQuestionRepo creates a new QuestionRepo instance with the given database connection.
func NewQuestionRepo(db *sql.DB) *QuestionRepo {
	return &QuestionRepo{DB: db, clock: SystemClock{}}
}

// Create validates and inserts a question.
func (r *QuestionRepo) Create(ctx context.Context, req *model.QuestionRequest) (*model.Question, error) {
	if req == nil {
		return nil, apperrors.Validation("question request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	out, err := r.queryOne(ctx, questionInsertQuery, req.Prompt, req.Options, req.CorrectAnswer, r.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// GetByID retrieves a question by id.
func (r *QuestionRepo) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	out, err := r.queryOne(ctx, questionGetByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question by ID: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// List returns every question in creation order.
func (r *QuestionRepo) List(ctx context.Context) ([]*model.Question, error) {
	questions, err := pgxutil.QueryAll[model.Question](ctx, r.DB, questionListQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", apperrors.MapDBError(err))
	}
	return questions, nil
}

// Update replaces every mutable field of a question.
func (r *QuestionRepo) Update(ctx context.Context, id int64, req *model.QuestionRequest) (*model.Question, error) {
	if req == nil {
		return nil, apperrors.Validation("question request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	out, err := r.queryOne(ctx, questionUpdateQuery, id, req.Prompt, req.Options, req.CorrectAnswer, r.clock.Now())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to update question: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// Delete removes a question. Stored quiz results are unaffected.
func (r *QuestionRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, questionDeleteQuery, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", apperrors.MapDBError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func (r *QuestionRepo) queryOne(ctx context.Context, q string, args ...any) (*model.Question, error) {
	return pgxutil.QueryOne[model.Question](ctx, r.DB, q, args...)
}
