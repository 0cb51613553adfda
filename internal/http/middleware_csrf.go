package httpx

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultCSRFCookieName names the double-submit cookie and the hidden form field.
	DefaultCSRFCookieName = "csrf_token"
	// DefaultCSRFHeaderName is the header app.js copies the token into for htmx requests.
	DefaultCSRFHeaderName = "X-Csrf-Token"

	csrfTokenBytes  = 32
	defaultCSRFLife = 12 * time.Hour
)

// CSRFConfig configures CSRFProtection. Zero values fall back to the defaults above.
type CSRFConfig struct {
	CookieName   string
	HeaderName   string
	FieldName    string
	CookieDomain string
	CookieTTL    time.Duration
	// Exempt skips token checks for matching requests.
	Exempt func(r *http.Request) bool
}

func (c CSRFConfig) withDefaults() CSRFConfig {
	if c.CookieName == "" {
		c.CookieName = DefaultCSRFCookieName
	}
	if c.HeaderName == "" {
		c.HeaderName = DefaultCSRFHeaderName
	}
	if c.FieldName == "" {
		c.FieldName = c.CookieName
	}
	if c.CookieTTL <= 0 {
		c.CookieTTL = defaultCSRFLife
	}
	return c
}

// ExemptAPI skips CSRF checks for the JSON API, which only accepts
// application/json bodies and SameSite session cookies.
func ExemptAPI(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// CSRFProtection guards the server-rendered UI with a double-submit token.
// Every page gets the token on its context so templates can emit it in the
// csrf meta tag and hidden form fields. Unsafe methods must echo the cookie
// value in the header or the form field.
func CSRFProtection(cfg CSRFConfig) func(http.Handler) http.Handler {
	g := csrfGuard{cfg: cfg.withDefaults()}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if g.cfg.Exempt != nil && g.cfg.Exempt(r) {
				next.ServeHTTP(w, r)
				return
			}

			token, err := g.ensureToken(w, r)
			if err != nil {
				loggerFrom(r).ErrorContext(r.Context(), "csrf token unavailable", "error", err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			r = r.WithContext(context.WithValue(r.Context(), csrfTokenKey{}, token))

			if isUnsafeMethod(r.Method) && !g.submitted(r, token) {
				g.reject(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type csrfGuard struct {
	cfg CSRFConfig
}

// ensureToken returns the cookie token, minting and setting a new one when absent.
func (g csrfGuard) ensureToken(w http.ResponseWriter, r *http.Request) (string, error) {
	if c, err := r.Cookie(g.cfg.CookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}
	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)
	http.SetCookie(w, &http.Cookie{
		Name:     g.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Domain:   g.cfg.CookieDomain,
		MaxAge:   int(g.cfg.CookieTTL.Seconds()),
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteStrictMode,
		// app.js falls back to the cookie when the meta tag is missing.
		HttpOnly: false,
	})
	return token, nil
}

// submitted reports whether the request echoes token. The header wins over
// the form field; JSON bodies are never parsed for a token.
func (g csrfGuard) submitted(r *http.Request, token string) bool {
	if sent := r.Header.Get(g.cfg.HeaderName); sent != "" {
		return tokensEqual(sent, token)
	}
	if !hasFormBody(r) {
		return false
	}
	if err := r.ParseForm(); err != nil {
		return false
	}
	return tokensEqual(r.PostFormValue(g.cfg.FieldName), token)
}

func (g csrfGuard) reject(w http.ResponseWriter, r *http.Request) {
	loggerFrom(r).WarnContext(r.Context(), "csrf check failed",
		"method", r.Method, "path", r.URL.Path, "htmx", IsHTMX(r))
	if IsHTMX(r) {
		triggerToast(w, "Your form expired. Reload the page and try again.", "error")
	}
	http.Error(w, "forbidden", http.StatusForbidden)
}

func tokensEqual(sent, want string) bool {
	return sent != "" && subtle.ConstantTimeCompare([]byte(sent), []byte(want)) == 1
}

func hasFormBody(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/x-www-form-urlencoded" || mt == "multipart/form-data"
}

func isUnsafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	}
	return true
}

type csrfTokenKey struct{}

// GetCSRFToken returns the token CSRFProtection attached to the request.
func GetCSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenKey{}).(string)
	return token
}
