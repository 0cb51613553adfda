package core

import (
	"context"

	"github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// Services depend on these; internal/data provides the Postgres implementations.

// UserRepository defines persistence for portal identities.
type UserRepository interface {
	Create(ctx context.Context, u model.NewUser) (*auth.Identity, error)
	GetByID(ctx context.Context, id int64) (*auth.Identity, error)
	// GetByEmail expects an already normalized address.
	GetByEmail(ctx context.Context, email string) (*auth.Identity, error)
	List(ctx context.Context, opts model.UsersListOptions) ([]*auth.Identity, error)
	// ApprovePending moves a pending identity to employee. The bool reports whether
	// a transition happened; a non-pending identity is returned unchanged.
	ApprovePending(ctx context.Context, id int64) (*auth.Identity, bool, error)
	SetRole(ctx context.Context, id int64, role auth.Role) (*auth.Identity, error)
}

// ModuleRepository defines persistence for onboarding modules.
type ModuleRepository interface {
	Create(ctx context.Context, req *model.ModuleRequest) (*model.Module, error)
	GetByID(ctx context.Context, id int64) (*model.Module, error)
	// List returns every module ordered by sort order.
	List(ctx context.Context) ([]*model.Module, error)
	Update(ctx context.Context, id int64, req *model.ModuleRequest) (*model.Module, error)
	Delete(ctx context.Context, id int64) error
}

// QuestionRepository defines persistence for quiz questions.
type QuestionRepository interface {
	Create(ctx context.Context, req *model.QuestionRequest) (*model.Question, error)
	GetByID(ctx context.Context, id int64) (*model.Question, error)
	List(ctx context.Context) ([]*model.Question, error)
	Update(ctx context.Context, id int64, req *model.QuestionRequest) (*model.Question, error)
	Delete(ctx context.Context, id int64) error
}

// QuizResultRepository defines persistence for graded quiz attempts. Results are append-only.
type QuizResultRepository interface {
	Create(ctx context.Context, r model.NewQuizResult) (*model.QuizResult, error)
	// Latest returns the most recent attempt for userID.
	Latest(ctx context.Context, userID int64) (*model.QuizResult, error)
	History(ctx context.Context, userID int64, limit int) ([]*model.QuizResult, error)
	ListScores(ctx context.Context, opts model.ScoresListOptions) ([]*model.ScoreEntry, error)
}

// ProgressRepository defines persistence for module completion.
type ProgressRepository interface {
	// Complete records completion once; repeated calls return the original record with created=false.
	Complete(ctx context.Context, userID, moduleID int64) (p *model.Progress, created bool, err error)
	ListCompletedModuleIDs(ctx context.Context, userID int64) ([]int64, error)
}
