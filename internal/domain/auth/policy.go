package auth

import (
	pathpkg "path"
	"strings"
)

// Decision is the outcome of evaluating a route against the session claims.
type Decision int

const (
	Allow Decision = iota
	// DenyUnauthenticated means the path is protected and no valid claims were presented.
	DenyUnauthenticated
	// DenyForbidden means the claims are valid but the role is not permitted.
	DenyForbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "deny_unauthenticated"
	case DenyForbidden:
		return "deny_forbidden"
	default:
		return "unknown"
	}
}

// RouteRule binds a path prefix to the roles allowed beneath it.
type RouteRule struct {
	Prefix string
	Roles  RoleSet
}

// RoutePolicy is an immutable prefix table. Longest matching prefix wins;
// a path with no matching rule is public.
type RoutePolicy struct {
	rules []RouteRule
}

// NewRoutePolicy builds a policy from rules. Prefixes are normalized to have
// a leading slash and no trailing slash.
func NewRoutePolicy(rules ...RouteRule) *RoutePolicy {
	p := &RoutePolicy{rules: make([]RouteRule, 0, len(rules))}
	for _, r := range rules {
		r.Prefix = normalizePath(r.Prefix)
		p.rules = append(p.rules, r)
	}
	return p
}

// DefaultRoutePolicy is the portal's route table. Page routes and their
// JSON API counterparts share the same requirement.
func DefaultRoutePolicy() *RoutePolicy {
	return NewRoutePolicy(
		RouteRule{Prefix: "/admin", Roles: AtLeast(RoleAdmin)},
		RouteRule{Prefix: "/api/admin", Roles: AtLeast(RoleAdmin)},
		RouteRule{Prefix: "/manager", Roles: AtLeast(RoleManager)},
		RouteRule{Prefix: "/api/manager", Roles: AtLeast(RoleManager)},
		RouteRule{Prefix: "/onboarding", Roles: Only(RoleEmployee)},
		RouteRule{Prefix: "/api/onboarding", Roles: Only(RoleEmployee)},
	)
}

// Match returns the rule governing path, if any.
func (p *RoutePolicy) Match(path string) (RouteRule, bool) {
	path = normalizePath(path)
	var (
		best  RouteRule
		found bool
	)
	for _, r := range p.rules {
		if !hasSegmentPrefix(path, r.Prefix) {
			continue
		}
		if !found || len(r.Prefix) > len(best.Prefix) {
			best, found = r, true
		}
	}
	return best, found
}

// Authorize decides whether claims may reach path. A nil claims pointer
// means the request carried no valid session.
func (p *RoutePolicy) Authorize(path string, claims *Claims) Decision {
	rule, ok := p.Match(path)
	if !ok {
		return Allow
	}
	if claims == nil || !claims.Role.Valid() {
		return DenyUnauthenticated
	}
	if !rule.Roles.Allows(claims.Role) {
		return DenyForbidden
	}
	return Allow
}

// hasSegmentPrefix matches whole path segments so /admin does not cover /administrator.
func hasSegmentPrefix(path, prefix string) bool {
	if prefix == "/" {
		return true
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	// Clean collapses // and dot segments so they cannot slip past the table.
	return pathpkg.Clean(path)
}
