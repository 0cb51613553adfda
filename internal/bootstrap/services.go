package bootstrap

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/target/onboarding-portal/config"
	"github.com/target/onboarding-portal/internal/data"
	"github.com/target/onboarding-portal/internal/domain/quiz"
	httpx "github.com/target/onboarding-portal/internal/http"
	"github.com/target/onboarding-portal/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth       *service.AuthService
	Users      *service.UserService
	Modules    *service.ModuleService
	Questions  *service.QuestionService
	Quiz       *service.QuizService
	Onboarding *service.OnboardingService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Users     *data.UserRepo
	Modules   *data.ModuleRepo
	Questions *data.QuestionRepo
	Results   *data.QuizResultRepo
	Progress  *data.ProgressRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		Users:     data.NewUserRepo(db),
		Modules:   data.NewModuleRepo(db),
		Questions: data.NewQuestionRepo(db),
		Results:   data.NewQuizResultRepo(db),
		Progress:  data.NewProgressRepo(db),
	}
}

// NewServices wires repositories, auth adapters and domain services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil || deps.DB == nil {
		return ServiceContainer{}, errors.New("config and database are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sec, err := BuildAuthSecurity(AuthConfig{
		Auth:        deps.Config.Auth,
		RedisClient: deps.RedisClient,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, err
	}

	return buildDomainServices(buildRepositories(deps.DB), sec, deps.Config.Quiz, logger), nil
}

func buildDomainServices(
	repos *serviceRepositories,
	sec service.AuthSecurity,
	quizCfg config.QuizConfig,
	logger *slog.Logger,
) ServiceContainer {
	return ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Users:    repos.Users,
			Security: sec,
			Logger:   logger,
		}),
		Users: service.NewUserService(service.UserServiceOptions{
			Users:       repos.Users,
			Revocations: sec.Revocations,
			Logger:      logger,
		}),
		Modules: service.NewModuleService(service.ModuleServiceOptions{
			Modules: repos.Modules,
			Logger:  logger,
		}),
		Questions: service.NewQuestionService(service.QuestionServiceOptions{
			Questions: repos.Questions,
			Logger:    logger,
		}),
		Quiz: service.NewQuizService(service.QuizServiceOptions{
			Repos:  service.QuizRepos{Questions: repos.Questions, Results: repos.Results},
			Engine: quiz.NewEngine(quizCfg.PassPercent),
			Logger: logger,
		}),
		Onboarding: service.NewOnboardingService(service.OnboardingServiceOptions{
			Content: service.OnboardingContent{Modules: repos.Modules, Questions: repos.Questions},
			Records: service.OnboardingRecords{Progress: repos.Progress, Results: repos.Results},
			Logger:  logger,
		}).WithPassPercent(quizCfg.PassPercent),
	}
}

// ServiceOrchestrationConfig contains everything needed to run the portal.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	DB       *sql.DB
	Redis    redis.UniversalClient
	Logger   *slog.Logger
}

// HealthChecks probes Postgres and, when configured, Redis.
func HealthChecks(db *sql.DB, rdb redis.UniversalClient) []httpx.HealthCheck {
	var checks []httpx.HealthCheck
	if db != nil {
		checks = append(checks, httpx.HealthCheck{Name: "postgres", Check: db.PingContext})
	}
	if rdb != nil {
		checks = append(checks, httpx.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}
	return checks
}

// RunServicesWithShutdown serves HTTP until SIGINT, SIGTERM, ctx
// cancellation or a listener failure.
func RunServicesWithShutdown(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config is required")
	}
	logger := cmp.Or(cfg.Logger, slog.Default())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := NewHTTPServer(HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Health:   HealthChecks(cfg.DB, cfg.Redis),
		Logger:   logger,
	})
	return Serve(ctx, srv, cfg.Config.HTTP.ShutdownTimeout, logger)
}
