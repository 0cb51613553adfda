package service

import (
	"errors"
	"log/slog"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	apperrors "github.com/target/onboarding-portal/internal/errors"
)

const errSignInNeeded = "sign in required"

var (
	adminOnly      = domainauth.AtLeast(domainauth.RoleAdmin)
	managerOrAdmin = domainauth.AtLeast(domainauth.RoleManager)
	employeeOnly   = domainauth.Only(domainauth.RoleEmployee)
)

// authorize maps a failed role check onto the HTTP-facing error taxonomy.
func authorize(actor *domainauth.Claims, required domainauth.RoleSet) error {
	err := domainauth.Require(actor, required)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domainauth.ErrUnauthenticated):
		return apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, errSignInNeeded)
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeForbidden, "your role does not permit this action")
	}
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
