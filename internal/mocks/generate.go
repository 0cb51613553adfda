// Package mocks provides gomock implementations of the portal's repository and auth ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	users := mocks.NewMockUserRepository(ctrl)
//	users.EXPECT().GetByEmail(gomock.Any(), "a@b.co").Return(identity, nil)
package mocks

// Repository ports from internal/core.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go github.com/target/onboarding-portal/internal/core UserRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=module_repository_mock.go github.com/target/onboarding-portal/internal/core ModuleRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=question_repository_mock.go github.com/target/onboarding-portal/internal/core QuestionRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=quiz_result_repository_mock.go github.com/target/onboarding-portal/internal/core QuizResultRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=progress_repository_mock.go github.com/target/onboarding-portal/internal/core ProgressRepository

// Auth ports from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=password_hasher_mock.go github.com/target/onboarding-portal/internal/ports PasswordHasher
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_issuer_mock.go github.com/target/onboarding-portal/internal/ports SessionIssuer
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_revocations_mock.go github.com/target/onboarding-portal/internal/ports SessionRevocations
