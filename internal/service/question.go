package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/target/onboarding-portal/internal/core"
	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/domain/model"
	apperrors "github.com/target/onboarding-portal/internal/errors"
)

// QuestionServiceOptions groups dependencies for QuestionService.
type QuestionServiceOptions struct {
	Questions core.QuestionRepository
	Logger    *slog.Logger
}

// QuestionService manages quiz questions. Every operation requires an admin
// actor since questions carry their correct answers.
type QuestionService struct {
	questions core.QuestionRepository
	logger    *slog.Logger
}

// NewQuestionService constructs a new QuestionService.
func NewQuestionService(opts QuestionServiceOptions) *QuestionService {
	if opts.Questions == nil {
		panic("QuestionRepository is required")
	}
	return &QuestionService{
		questions: opts.Questions,
		logger:    loggerOrDefault(opts.Logger).With("component", "questions"),
	}
}

// List returns every question including its correct answer. Admin only.
func (s *QuestionService) List(ctx context.Context, actor *domainauth.Claims) ([]*model.Question, error) {
	if err := authorize(actor, adminOnly); err != nil {
		return nil, err
	}
	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// Get returns one question including its correct answer. Admin only.
func (s *QuestionService) Get(ctx context.Context, actor *domainauth.Claims, id int64) (*model.Question, error) {
	if err := authorize(actor, adminOnly); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperrors.ValidationField("id", "question id is required")
	}
	return s.questions.GetByID(ctx, id)
}

// Create adds a question.
func (s *QuestionService) Create(
	ctx context.Context,
	actor *domainauth.Claims,
	req *model.QuestionRequest,
) (*model.Question, error) {
	if err := authorize(actor, adminOnly); err != nil {
		return nil, err
	}
	q, err := s.questions.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	s.logger.InfoContext(ctx, "question created", "question_id", q.ID, "actor", actor.Subject)
	return q, nil
}

// Update replaces a question's fields.
func (s *QuestionService) Update(
	ctx context.Context,
	actor *domainauth.Claims,
	id int64,
	req *model.QuestionRequest,
) (*model.Question, error) {
	if err := authorize(actor, adminOnly); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperrors.ValidationField("id", "question id is required")
	}
	q, err := s.questions.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}
	s.logger.InfoContext(ctx, "question updated", "question_id", id, "actor", actor.Subject)
	return q, nil
}

// Delete removes a question. Recorded quiz results keep their scores.
func (s *QuestionService) Delete(ctx context.Context, actor *domainauth.Claims, id int64) error {
	if err := authorize(actor, adminOnly); err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.ValidationField("id", "question id is required")
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	s.logger.InfoContext(ctx, "question deleted", "question_id", id, "actor", actor.Subject)
	return nil
}
