package auth

import (
	"fmt"
	"sort"
	"strings"
)

// Role represents an application's authorization role.
// The string form is what gets persisted and embedded in session tokens.
type Role string

const (
	RolePending  Role = "pending"
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// privilege is the single ordered-privilege table for the portal.
// Everything that needs to compare roles (route gate, service checks,
// navigation) derives from it.
var privilege = map[Role]struct {
	rank    int
	landing string
	label   string
}{
	RolePending:  {rank: 0, landing: "/auth/pending-approval", label: "Pending approval"},
	RoleEmployee: {rank: 1, landing: "/onboarding", label: "Employee"},
	RoleManager:  {rank: 2, landing: "/manager/pending-approvals", label: "Manager"},
	RoleAdmin:    {rank: 3, landing: "/admin/dashboard", label: "Administrator"},
}

// AllRoles returns every role ordered from least to most privileged.
func AllRoles() []Role {
	out := make([]Role, 0, len(privilege))
	for r := range privilege {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return privilege[out[i]].rank < privilege[out[j]].rank })
	return out
}

// ParseRole converts a string into a Role, rejecting anything outside the enum.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := privilege[r]
	return ok
}

// Rank returns the role's privilege rank, or -1 for unknown roles.
func (r Role) Rank() int {
	p, ok := privilege[r]
	if !ok {
		return -1
	}
	return p.rank
}

// LandingPath is where a freshly signed-in identity with this role is sent.
func (r Role) LandingPath() string {
	if p, ok := privilege[r]; ok {
		return p.landing
	}
	return "/"
}

// Label is the human readable role name used by templates.
func (r Role) Label() string {
	if p, ok := privilege[r]; ok {
		return p.label
	}
	return string(r)
}

func (r Role) String() string { return string(r) }

// RoleSet is a set of roles allowed to perform something.
type RoleSet map[Role]struct{}

// AtLeast returns every role whose rank is greater than or equal to min.
func AtLeast(minRole Role) RoleSet {
	set := RoleSet{}
	for r, p := range privilege {
		if p.rank >= minRole.Rank() && minRole.Valid() {
			set[r] = struct{}{}
		}
	}
	return set
}

// Only returns a set containing exactly the given roles.
func Only(roles ...Role) RoleSet {
	set := RoleSet{}
	for _, r := range roles {
		if r.Valid() {
			set[r] = struct{}{}
		}
	}
	return set
}

// Allows reports whether r is a member of the set.
func (s RoleSet) Allows(r Role) bool {
	_, ok := s[r]
	return ok
}

// Roles returns the set members ordered by privilege.
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, len(s))
	for _, r := range AllRoles() {
		if s.Allows(r) {
			out = append(out, r)
		}
	}
	return out
}

// Can reports whether the role satisfies the given role set.
// It is the check services use to re-verify authorization.
func (r Role) Can(required RoleSet) bool { return required.Allows(r) }
