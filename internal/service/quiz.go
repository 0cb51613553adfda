package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/target/onboarding-portal/internal/core"
	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/domain/model"
	"github.com/target/onboarding-portal/internal/domain/quiz"
	apperrors "github.com/target/onboarding-portal/internal/errors"
)

const defaultHistoryLimit = 20

// QuizRepos groups the stores QuizService reads and writes.
type QuizRepos struct {
	Questions core.QuestionRepository
	Results   core.QuizResultRepository
}

// QuizServiceOptions groups dependencies for QuizService.
type QuizServiceOptions struct {
	Repos  QuizRepos
	Engine quiz.Engine
	Logger *slog.Logger
}

// QuizService grades submissions server-side and records results.
type QuizService struct {
	questions core.QuestionRepository
	results   core.QuizResultRepository
	engine    quiz.Engine
	logger    *slog.Logger
}

// NewQuizService constructs a new QuizService.
func NewQuizService(opts QuizServiceOptions) *QuizService {
	if opts.Repos.Questions == nil || opts.Repos.Results == nil {
		panic("question and quiz result repositories are required")
	}
	return &QuizService{
		questions: opts.Repos.Questions,
		results:   opts.Repos.Results,
		engine:    opts.Engine,
		logger:    loggerOrDefault(opts.Logger).With("component", "quiz"),
	}
}

// SubmitResult is a recorded attempt plus the raw counts it was graded from.
type SubmitResult struct {
	Result      *model.QuizResult `json:"result"`
	Correct     int               `json:"correct"`
	Total       int               `json:"total"`
	PassPercent int               `json:"passPercent"`
}

// PassPercent is the inclusive threshold submissions are graded against.
func (s *QuizService) PassPercent() int { return s.engine.PassPercent() }

// Submit grades an employee's answers against the stored questions and appends
// the result. Client-supplied scores are never trusted.
func (s *QuizService) Submit(
	ctx context.Context,
	actor *domainauth.Claims,
	sub model.QuizSubmission,
) (*SubmitResult, error) {
	if err := authorize(actor, employeeOnly); err != nil {
		return nil, err
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, apperrors.NotFound("the quiz is not available yet")
	}

	latest, err := s.latest(ctx, actor.Subject)
	if err != nil {
		return nil, err
	}
	if latest != nil && latest.Passed {
		return nil, apperrors.Conflict("you have already passed the quiz")
	}

	grading := make([]quiz.Question, len(questions))
	for i, q := range questions {
		grading[i] = q.Grading()
	}
	graded, err := s.engine.Score(grading, sub.Answers)
	if err != nil {
		return nil, submissionError(err)
	}

	recorded, err := s.results.Create(ctx, model.NewQuizResult{
		UserID: actor.Subject,
		Score:  graded.Rounded(),
		Passed: graded.Passed,
	})
	if err != nil {
		return nil, fmt.Errorf("record quiz result: %w", err)
	}
	s.logger.InfoContext(ctx, "quiz graded",
		"user_id", actor.Subject, "score", recorded.Score, "passed", recorded.Passed,
		"correct", graded.Correct, "total", graded.Total)

	return &SubmitResult{
		Result:      recorded,
		Correct:     graded.Correct,
		Total:       graded.Total,
		PassPercent: s.engine.PassPercent(),
	}, nil
}

// Latest returns the actor's most recent result, or nil when there is none.
func (s *QuizService) Latest(ctx context.Context, actor *domainauth.Claims) (*model.QuizResult, error) {
	if err := authorize(actor, employeeOnly); err != nil {
		return nil, err
	}
	return s.latest(ctx, actor.Subject)
}

// History returns the actor's attempts, newest first.
func (s *QuizService) History(ctx context.Context, actor *domainauth.Claims, limit int) ([]*model.QuizResult, error) {
	if err := authorize(actor, employeeOnly); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	history, err := s.results.History(ctx, actor.Subject, limit)
	if err != nil {
		return nil, fmt.Errorf("load quiz history: %w", err)
	}
	return history, nil
}

// Scores lists every recorded attempt with the identity that made it. Admin only.
func (s *QuizService) Scores(
	ctx context.Context,
	actor *domainauth.Claims,
	opts model.ScoresListOptions,
) ([]*model.ScoreEntry, error) {
	if err := authorize(actor, adminOnly); err != nil {
		return nil, err
	}
	scores, err := s.results.ListScores(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	return scores, nil
}

func (s *QuizService) latest(ctx context.Context, userID int64) (*model.QuizResult, error) {
	r, err := s.results.Latest(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load latest quiz result: %w", err)
	}
	return r, nil
}

func submissionError(err error) error {
	switch {
	case errors.Is(err, quiz.ErrUnknownQuestion):
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, "an answer references a question that is not part of the quiz")
	case errors.Is(err, quiz.ErrDuplicateAnswer):
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, "each question can only be answered once")
	case errors.Is(err, quiz.ErrMissingAnswer):
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, "every question must be answered")
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, "submission could not be graded")
	}
}
