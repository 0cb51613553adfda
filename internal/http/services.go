package httpx

import (
	"context"
	"time"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/domain/model"
	"github.com/target/onboarding-portal/internal/service"
)

// AuthService is the slice of authentication the HTTP layer needs.
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*domainauth.Identity, error)
	Login(ctx context.Context, req model.LoginRequest) (*service.LoginResult, error)
	ResolveSession(ctx context.Context, token string) (*domainauth.Claims, error)
	Logout(ctx context.Context, claims *domainauth.Claims) error
	CurrentIdentity(ctx context.Context, claims *domainauth.Claims) (*domainauth.Identity, error)
	SessionTTL() time.Duration
}

// UsersService covers approvals and role administration.
type UsersService interface {
	ListPending(ctx context.Context, actor *domainauth.Claims) ([]*domainauth.Identity, error)
	Approve(ctx context.Context, actor *domainauth.Claims, id int64) (*domainauth.Identity, error)
	ListUsers(ctx context.Context, actor *domainauth.Claims, opts model.UsersListOptions) ([]*domainauth.Identity, error)
	SetRole(ctx context.Context, actor *domainauth.Claims, id int64, req model.SetRoleRequest) (*domainauth.Identity, error)
}

// ModulesService manages onboarding modules.
type ModulesService interface {
	List(ctx context.Context, actor *domainauth.Claims) ([]*model.Module, error)
	Get(ctx context.Context, actor *domainauth.Claims, id int64) (*model.Module, error)
	Create(ctx context.Context, actor *domainauth.Claims, req *model.ModuleRequest) (*model.Module, error)
	Update(ctx context.Context, actor *domainauth.Claims, id int64, req *model.ModuleRequest) (*model.Module, error)
	Delete(ctx context.Context, actor *domainauth.Claims, id int64) error
}

// QuestionsService manages quiz questions.
type QuestionsService interface {
	List(ctx context.Context, actor *domainauth.Claims) ([]*model.Question, error)
	Get(ctx context.Context, actor *domainauth.Claims, id int64) (*model.Question, error)
	Create(ctx context.Context, actor *domainauth.Claims, req *model.QuestionRequest) (*model.Question, error)
	Update(ctx context.Context, actor *domainauth.Claims, id int64, req *model.QuestionRequest) (*model.Question, error)
	Delete(ctx context.Context, actor *domainauth.Claims, id int64) error
}

// QuizService grades submissions and reports results.
type QuizService interface {
	Submit(ctx context.Context, actor *domainauth.Claims, sub model.QuizSubmission) (*service.SubmitResult, error)
	Latest(ctx context.Context, actor *domainauth.Claims) (*model.QuizResult, error)
	History(ctx context.Context, actor *domainauth.Claims, limit int) ([]*model.QuizResult, error)
	Scores(ctx context.Context, actor *domainauth.Claims, opts model.ScoresListOptions) ([]*model.ScoreEntry, error)
}

// OnboardingService assembles the employee view.
type OnboardingService interface {
	Overview(ctx context.Context, actor *domainauth.Claims) (*model.OnboardingOverview, error)
	CompleteModule(ctx context.Context, actor *domainauth.Claims, moduleID int64) (*model.Progress, error)
}

// Compile-time interface assertions to ensure concrete services satisfy their HTTP interfaces.
var (
	_ AuthService       = (*service.AuthService)(nil)
	_ UsersService      = (*service.UserService)(nil)
	_ ModulesService    = (*service.ModuleService)(nil)
	_ QuestionsService  = (*service.QuestionService)(nil)
	_ QuizService       = (*service.QuizService)(nil)
	_ OnboardingService = (*service.OnboardingService)(nil)
)
