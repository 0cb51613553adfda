package httpx

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
)

// DefaultSessionCookieName is used when SessionCookieConfig.Name is empty.
const DefaultSessionCookieName = "portal_session"

// SessionCookieConfig describes the cookie carrying the signed session token.
type SessionCookieConfig struct {
	Name   string
	Domain string
	TTL    time.Duration
	// Secure forces the Secure attribute. Without it the attribute follows
	// the request scheme, including X-Forwarded-Proto.
	Secure bool
}

func (c SessionCookieConfig) secure(r *http.Request) bool {
	return c.Secure || isSecureRequest(r)
}

func (c SessionCookieConfig) name() string {
	if c.Name == "" {
		return DefaultSessionCookieName
	}
	return c.Name
}

// sessionToken returns the raw token from the session cookie, or "".
func (c SessionCookieConfig) sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(c.name())
	if err != nil {
		return ""
	}
	return cookie.Value
}

// set writes the session cookie for s.
func (c SessionCookieConfig) set(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	maxAge := int(c.TTL.Seconds())
	if !s.Claims.ExpiresAt.IsZero() {
		maxAge = int(time.Until(s.Claims.ExpiresAt).Seconds())
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    s.Token,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.secure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// clear expires the session cookie.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when setting the cookie
// to maximize compatibility across browsers during deletion.
func (c SessionCookieConfig) clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.secure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || isForwardedHTTPS(r)
}

// isForwardedHTTPS checks if the request was forwarded over HTTPS.
// Handles comma-separated values in X-Forwarded-Proto header.
func isForwardedHTTPS(r *http.Request) bool {
	xfProto := r.Header.Get("X-Forwarded-Proto")
	if xfProto == "" {
		return false
	}
	for _, proto := range strings.Split(xfProto, ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return ""
	}
	// Backslashes are treated as slashes by some browsers ("/\evil.com").
	if strings.Contains(candidate, `\`) {
		return ""
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return ""
	}
	if strings.HasPrefix(candidate, "//") {
		return ""
	}
	return candidate
}
