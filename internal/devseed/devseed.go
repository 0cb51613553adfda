// Package devseed loads development data: the onboarding catalog, the quiz
// and the operator accounts used to approve and administer employees.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/target/onboarding-portal/internal/core"
	"github.com/target/onboarding-portal/internal/data"
	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/domain/model"
	apperrors "github.com/target/onboarding-portal/internal/errors"
	"github.com/target/onboarding-portal/internal/ports"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	Users     core.UserRepository
	Modules   core.ModuleRepository
	Questions core.QuestionRepository
	Hasher    ports.PasswordHasher
}

// NewServices constructs the repositories used for seeding against db.
func NewServices(db *sql.DB, hasher ports.PasswordHasher) Services {
	return Services{
		Users:     data.NewUserRepo(db),
		Modules:   data.NewModuleRepo(db),
		Questions: data.NewQuestionRepo(db),
		Hasher:    hasher,
	}
}

// Account is a seeded operator login.
type Account struct {
	Email    string
	Password string
	Name     string
	Role     domainauth.Role
}

// DefaultAccounts are the operator logins created by Run.
func DefaultAccounts() []Account {
	return []Account{
		{Email: "manager@company.com", Password: "manager123", Name: "John Manager", Role: domainauth.RoleManager},
		{Email: "admin@company.com", Password: "admin123", Name: "Alice Admin", Role: domainauth.RoleAdmin},
	}
}

// Run seeds modules, questions and accounts. Existing rows (matched by module
// title, question text or email) are left untouched so Run can be repeated.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if svcs.Users == nil || svcs.Modules == nil || svcs.Questions == nil || svcs.Hasher == nil {
		return errors.New("seed services are incomplete")
	}

	if err := seedModules(ctx, svcs.Modules, logger); err != nil {
		return err
	}
	if err := seedQuestions(ctx, svcs.Questions, logger); err != nil {
		return err
	}
	for _, acct := range DefaultAccounts() {
		if err := seedAccount(ctx, svcs, acct, logger); err != nil {
			return err
		}
	}
	return nil
}

func seedModules(ctx context.Context, repo core.ModuleRepository, logger *slog.Logger) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list modules: %w", err)
	}
	titles := make(map[string]bool, len(existing))
	for _, m := range existing {
		titles[strings.ToLower(m.Title)] = true
	}

	for _, req := range defaultModules() {
		if titles[strings.ToLower(req.Title)] {
			logger.InfoContext(ctx, "module already present", "title", req.Title)
			continue
		}
		if err := req.Validate(); err != nil {
			return fmt.Errorf("module %q: %w", req.Title, err)
		}
		m, err := repo.Create(ctx, req)
		if err != nil {
			return fmt.Errorf("create module %q: %w", req.Title, err)
		}
		logger.InfoContext(ctx, "created module", "id", m.ID, "title", m.Title, "order", m.Order)
	}
	return nil
}

func seedQuestions(ctx context.Context, repo core.QuestionRepository, logger *slog.Logger) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}
	prompts := make(map[string]bool, len(existing))
	for _, q := range existing {
		prompts[q.Prompt] = true
	}

	for _, req := range defaultQuestions() {
		if prompts[req.Prompt] {
			continue
		}
		if err := req.Validate(); err != nil {
			return fmt.Errorf("question %q: %w", req.Prompt, err)
		}
		q, err := repo.Create(ctx, req)
		if err != nil {
			return fmt.Errorf("create question: %w", err)
		}
		logger.InfoContext(ctx, "created question", "id", q.ID)
	}
	return nil
}

func seedAccount(ctx context.Context, svcs Services, acct Account, logger *slog.Logger) error {
	req := model.RegisterRequest{Email: acct.Email, Password: acct.Password, Name: acct.Name}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("account %s: %w", acct.Email, err)
	}

	existing, err := svcs.Users.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		logger.InfoContext(ctx, "account already present", "email", existing.Email, "role", existing.Role)
		return nil
	case !apperrors.IsNotFound(err):
		return fmt.Errorf("lookup account %s: %w", acct.Email, err)
	}

	hash, err := svcs.Hasher.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("hash password for %s: %w", acct.Email, err)
	}
	identity, err := svcs.Users.Create(ctx, model.NewUser{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         acct.Role,
	})
	if err != nil {
		return fmt.Errorf("create account %s: %w", acct.Email, err)
	}
	logger.InfoContext(ctx, "created account", "id", identity.ID, "email", identity.Email, "role", identity.Role)
	return nil
}

func intPtr(i int) *int { return &i }

func defaultModules() []*model.ModuleRequest {
	return []*model.ModuleRequest{
		{
			Title:       "Welcome to Our Company",
			Description: "Learn about our company culture, values, and mission.",
			Content: model.ModuleContent{
				VideoURL: "https://example.com/welcome-video.mp4",
				ReadingMaterial: "# Welcome to Our Company!\n\n" +
					"We're excited to have you join our team. This module will introduce you to our:\n" +
					"- Company History\n- Core Values\n- Mission Statement\n- Company Culture\n\n" +
					"Please watch the welcome video and read through the materials carefully.",
			},
			Order: intPtr(1),
		},
		{
			Title:       "Health and Safety Guidelines",
			Description: "Essential health and safety protocols for all employees.",
			Content: model.ModuleContent{
				VideoURL: "https://example.com/safety-video.mp4",
				ReadingMaterial: "# Health and Safety Guidelines\n\n" +
					"Your safety is our top priority. This module covers:\n" +
					"- Workplace Safety Protocols\n- Emergency Procedures\n- First Aid Locations\n" +
					"- Reporting Incidents",
			},
			Order: intPtr(2),
		},
		{
			Title:       "IT Systems and Security",
			Description: "Introduction to our IT systems and security policies.",
			Content: model.ModuleContent{
				VideoURL: "https://example.com/it-security-video.mp4",
				ReadingMaterial: "# IT Systems and Security\n\n" +
					"Learn about our:\n- Email Systems\n- Internal Software\n- Security Protocols\n" +
					"- Password Policies\n- Data Protection Guidelines",
			},
			Order: intPtr(3),
		},
	}
}

func defaultQuestions() []*model.QuestionRequest {
	return []*model.QuestionRequest{
		{
			Prompt: "What are our company's core values?",
			Options: []string{
				"Innovation, Integrity, Teamwork",
				"Profit, Growth, Sales",
				"Marketing, Sales, Support",
				"Products, Services, Solutions",
			},
			CorrectAnswer: "Innovation, Integrity, Teamwork",
		},
		{
			Prompt: "What should you do in case of a workplace emergency?",
			Options: []string{
				"Continue working",
				"Call your manager",
				"Follow the emergency evacuation procedure",
				"Check your email",
			},
			CorrectAnswer: "Follow the emergency evacuation procedure",
		},
		{
			Prompt:        "How often should you change your password?",
			Options:       []string{"Never", "Every 90 days", "Once a year", "When someone asks you to"},
			CorrectAnswer: "Every 90 days",
		},
		{
			Prompt: "Where should you report a security incident?",
			Options: []string{
				"To your friends",
				"On social media",
				"To the IT security team immediately",
				"Wait until next week",
			},
			CorrectAnswer: "To the IT security team immediately",
		},
		{
			Prompt: "What is the proper way to handle confidential information?",
			Options: []string{
				"Share it with everyone",
				"Store it on your personal device",
				"Follow the data protection guidelines",
				"Email it to yourself",
			},
			CorrectAnswer: "Follow the data protection guidelines",
		},
	}
}
