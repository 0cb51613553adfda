// Package auth contains domain-level types for authentication, sessions and
// role-based authorization. It is pure and free of framework/adapter concerns.
package auth

import (
	"strconv"
	"time"
)

// Identity is a registered portal account as seen by the auth layer.
// PasswordHash is never serialized.
type Identity struct {
	ID           int64     `json:"id"        db:"id"`
	Email        string    `json:"email"     db:"email"`
	Name         string    `json:"name"      db:"name"`
	Role         Role      `json:"role"      db:"role"`
	PasswordHash string    `json:"-"         db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Claims are the verified contents of a session token.
// They reflect the identity's role at issuance time.
type Claims struct {
	Subject   int64     `json:"sub"`
	Role      Role      `json:"role"`
	Name      string    `json:"name"`
	TokenID   string    `json:"jti"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// SubjectString returns the subject id in the string form used inside tokens.
func (c Claims) SubjectString() string { return strconv.FormatInt(c.Subject, 10) }

// IsPending reports whether the session belongs to an identity awaiting approval.
func (c Claims) IsPending() bool { return c.Role == RolePending }

// Session is an issued token together with the claims it encodes.
type Session struct {
	Token  string
	Claims Claims
}

// RoleChange is the latest role assigned to an identity and when it happened.
type RoleChange struct {
	Role Role
	At   time.Time
}

// Supersedes reports whether c was minted under a role this change replaced.
// Token times are whole seconds, so a token stamped in the same second as the
// change is stale only when its role differs from the assigned one.
func (rc RoleChange) Supersedes(c Claims) bool {
	return !c.IssuedAt.After(rc.At) && c.Role != rc.Role
}
