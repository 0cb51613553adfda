package data

import apperrors "github.com/target/onboarding-portal/internal/errors"

// Shared sentinel errors for data-layer repositories. They are AppErrors so the
// HTTP boundary can map them without knowing about the data package; compare
// them with errors.Is.
var (
	// User repository sentinels.
	ErrUserNotFound = apperrors.NotFound("user not found")
	ErrEmailTaken   = apperrors.ConflictField("email", "an account with this email already exists")

	// Module repository sentinels.
	ErrModuleNotFound   = apperrors.NotFound("module not found")
	ErrModuleOrderTaken = apperrors.ConflictField("order", "another module already uses this order")

	// Quiz repository sentinels.
	ErrQuestionNotFound   = apperrors.NotFound("question not found")
	ErrQuizResultNotFound = apperrors.NotFound("no quiz result recorded")
)

const (
	constraintUsersEmail  = "users_email_key"
	constraintModuleOrder = "onboarding_modules_sort_order_key"

	defaultListLimit = 50
	maxListLimit     = 500
)

// clampPage normalizes limit/offset for list queries.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
