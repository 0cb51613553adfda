package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/target/onboarding-portal/internal/core"
	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/domain/model"
	"github.com/target/onboarding-portal/internal/domain/quiz"
	apperrors "github.com/target/onboarding-portal/internal/errors"
)

// OnboardingContent groups the catalog an employee works through.
type OnboardingContent struct {
	Modules   core.ModuleRepository
	Questions core.QuestionRepository
}

// OnboardingRecords groups the per-employee records.
type OnboardingRecords struct {
	Progress core.ProgressRepository
	Results  core.QuizResultRepository
}

// OnboardingServiceOptions groups dependencies for OnboardingService.
type OnboardingServiceOptions struct {
	Content OnboardingContent
	Records OnboardingRecords
	Logger  *slog.Logger
}

// OnboardingService assembles an employee's onboarding view and records module completion.
type OnboardingService struct {
	modules     core.ModuleRepository
	questions   core.QuestionRepository
	progress    core.ProgressRepository
	results     core.QuizResultRepository
	passPercent int
	logger      *slog.Logger
}

// NewOnboardingService constructs a new OnboardingService.
func NewOnboardingService(opts OnboardingServiceOptions) *OnboardingService {
	if opts.Content.Modules == nil || opts.Content.Questions == nil ||
		opts.Records.Progress == nil || opts.Records.Results == nil {
		panic("onboarding repositories are required")
	}
	return &OnboardingService{
		modules:     opts.Content.Modules,
		questions:   opts.Content.Questions,
		progress:    opts.Records.Progress,
		results:     opts.Records.Results,
		passPercent: quiz.DefaultPassPercent,
		logger:      loggerOrDefault(opts.Logger).With("component", "onboarding"),
	}
}

// WithPassPercent sets the threshold reported in overviews.
func (s *OnboardingService) WithPassPercent(p int) *OnboardingService {
	if p > 0 {
		s.passPercent = p
	}
	return s
}

// Overview loads modules, answer-free questions, completed module ids and the
// latest quiz result for the actor. The four reads run concurrently.
func (s *OnboardingService) Overview(ctx context.Context, actor *domainauth.Claims) (*model.OnboardingOverview, error) {
	if err := authorize(actor, employeeOnly); err != nil {
		return nil, err
	}

	var (
		modules   []*model.Module
		questions []*model.Question
		completed []int64
		latest    *model.QuizResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if modules, err = s.modules.List(gctx); err != nil {
			return fmt.Errorf("list modules: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if questions, err = s.questions.List(gctx); err != nil {
			return fmt.Errorf("list questions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if completed, err = s.progress.ListCompletedModuleIDs(gctx, actor.Subject); err != nil {
			return fmt.Errorf("list progress: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		r, err := s.results.Latest(gctx, actor.Subject)
		switch {
		case err == nil:
			latest = r
		case apperrors.IsNotFound(err):
		default:
			return fmt.Errorf("load latest quiz result: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &model.OnboardingOverview{
		Modules:          make([]model.Module, 0, len(modules)),
		Questions:        make([]model.QuestionView, 0, len(questions)),
		CompletedModules: completed,
		LatestResult:     latest,
		PassPercent:      s.passPercent,
	}
	if out.CompletedModules == nil {
		out.CompletedModules = []int64{}
	}
	for _, m := range modules {
		out.Modules = append(out.Modules, *m)
	}
	for _, q := range questions {
		out.Questions = append(out.Questions, q.View())
	}
	return out, nil
}

// CompleteModule records that the actor finished moduleID. Repeat calls are no-ops.
func (s *OnboardingService) CompleteModule(
	ctx context.Context,
	actor *domainauth.Claims,
	moduleID int64,
) (*model.Progress, error) {
	if err := authorize(actor, employeeOnly); err != nil {
		return nil, err
	}
	if moduleID <= 0 {
		return nil, apperrors.ValidationField("moduleId", "moduleId is required")
	}
	p, created, err := s.progress.Complete(ctx, actor.Subject, moduleID)
	if err != nil {
		return nil, fmt.Errorf("complete module: %w", err)
	}
	if created {
		s.logger.InfoContext(ctx, "module completed", "user_id", actor.Subject, "module_id", moduleID)
	}
	return p, nil
}
