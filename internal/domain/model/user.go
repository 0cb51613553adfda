//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/target/onboarding-portal/internal/domain/auth"
	apperrors "github.com/target/onboarding-portal/internal/errors"
)

const (
	maxNameLen     = 200
	maxEmailLen    = 254
	minPasswordLen = 8
	// bcrypt ignores input past 72 bytes, so longer passwords are rejected outright.
	maxPasswordBytes = 72
)

// NormalizeEmail is the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterRequest is the self-service registration payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Validate normalizes and validates the registration payload.
func (r *RegisterRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	r.Name = strings.TrimSpace(r.Name)

	if r.Email == "" {
		return apperrors.ValidationField("email", "email is required")
	}
	if len(r.Email) > maxEmailLen {
		return apperrors.ValidationField("email", "email is too long")
	}
	if addr, err := mail.ParseAddress(r.Email); err != nil || addr.Address != r.Email {
		return apperrors.ValidationField("email", "email is not valid")
	}
	if r.Name == "" {
		return apperrors.ValidationField("name", "name is required")
	}
	if utf8.RuneCountInString(r.Name) > maxNameLen {
		return apperrors.ValidationField("name", "name cannot exceed 200 characters")
	}
	if len(r.Password) < minPasswordLen {
		return apperrors.ValidationField("password", "password must be at least 8 characters")
	}
	if len(r.Password) > maxPasswordBytes {
		return apperrors.ValidationField("password", "password cannot exceed 72 bytes")
	}
	return nil
}

// LoginRequest is the sign-in payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewUser is what the user repository persists on registration.
type NewUser struct {
	Email        string
	Name         string
	PasswordHash string
	Role         auth.Role
}

// ApproveRequest names the pending identity a manager approves.
type ApproveRequest struct {
	UserID int64 `json:"userId"`
}

// SetRoleRequest is an admin's direct role edit.
type SetRoleRequest struct {
	Role string `json:"role"`
}

// Validate parses the role.
func (r *SetRoleRequest) Validate() (auth.Role, error) {
	role, err := auth.ParseRole(r.Role)
	if err != nil {
		return "", apperrors.ValidationField("role", "role must be one of pending, employee, manager, admin")
	}
	return role, nil
}

// UsersListOptions filters the user listing.
type UsersListOptions struct {
	Role   *auth.Role
	Limit  int
	Offset int
}
