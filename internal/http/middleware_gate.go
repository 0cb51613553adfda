package httpx

import (
	"context"
	"net/http"
	"net/url"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	apperrors "github.com/target/onboarding-portal/internal/errors"
)

const (
	signInPath          = "/auth/signin"
	pendingApprovalPath = "/auth/pending-approval"
)

// SessionResolver verifies a raw session token.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*domainauth.Claims, error)
}

// GateConfig wires RoleGate. Sessions is required; Policy defaults to
// domainauth.DefaultRoutePolicy.
type GateConfig struct {
	Sessions SessionResolver
	Policy   *domainauth.RoutePolicy
	Cookie   SessionCookieConfig
}

// RoleGate authorizes every request against the route policy before it is
// routed, and puts verified claims in the context.
//
// Denials depend on the caller. API clients get 401 or 403 JSON. Browsers
// without a session go to sign in with redirect_uri set, pending accounts go
// to the waiting page, and other roles are handed to forbidden.
func RoleGate(cfg GateConfig, forbidden http.Handler) func(http.Handler) http.Handler {
	if cfg.Sessions == nil {
		panic("RoleGate: nil SessionResolver") //nolint:forbidigo // setup error
	}
	if cfg.Policy == nil {
		cfg.Policy = domainauth.DefaultRoutePolicy()
	}
	if forbidden == nil {
		forbidden = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := cfg.claims(w, r)
			r = r.WithContext(SetClaimsInContext(r.Context(), claims))

			decision := cfg.Policy.Authorize(r.URL.Path, claims)
			browser := IsBrowserRequest(r)
			switch {
			case decision == domainauth.Allow:
				next.ServeHTTP(w, r)
			case !browser && decision == domainauth.DenyUnauthenticated:
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: string(apperrors.ErrCodeUnauthorized),
					Err:     domainauth.ErrUnauthenticated,
				})
			case !browser:
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: string(apperrors.ErrCodeForbidden),
					Err:     errRoleDenied,
				})
			case decision == domainauth.DenyUnauthenticated:
				sendToSignIn(w, r)
			case claims.IsPending():
				redirectBrowser(w, r, pendingApprovalPath)
			default:
				forbidden.ServeHTTP(w, r)
			}
		})
	}
}

var errRoleDenied = apperrors.Forbidden("your role does not permit access to this resource")

// claims verifies the session cookie, if any. A token the resolver calls
// invalid is cleared so the browser stops sending it.
func (cfg GateConfig) claims(w http.ResponseWriter, r *http.Request) *domainauth.Claims {
	token := cfg.Cookie.sessionToken(r)
	if token == "" {
		return nil
	}
	claims, err := cfg.Sessions.ResolveSession(r.Context(), token)
	if err == nil {
		return claims
	}
	loggerFrom(r).DebugContext(r.Context(), "session rejected", "error", err)
	if domainauth.IsSessionInvalid(err) {
		cfg.Cookie.clear(w, r)
	}
	return nil
}

// sendToSignIn redirects to the sign-in page, carrying where the user was
// headed. htmx gets HX-Redirect with 200 so the swap is skipped.
func sendToSignIn(w http.ResponseWriter, r *http.Request) {
	target := signInURL(returnPath(r))
	if IsHTMX(r) {
		hxRedirect(w, target, http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func signInURL(redirect string) string {
	if redirect == "" || redirect == "/" {
		return signInPath
	}
	return signInPath + "?" + url.Values{"redirect_uri": {redirect}}.Encode()
}

// redirectBrowser sends a 302, or HX-Redirect with 204 for htmx.
func redirectBrowser(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r) {
		hxRedirect(w, target, http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// seeOther finishes a successful form POST with 303, or HX-Redirect for htmx.
func seeOther(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r) {
		hxRedirect(w, target, http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// returnPath picks the local path to come back to after signing in. htmx
// requests prefer the page the user is on; other non-GET requests use the
// Referer, since their own URL is a form action.
func returnPath(r *http.Request) string {
	var candidates []string
	if IsHTMX(r) {
		candidates = append(candidates, r.Header.Get(hxCurrentURLHeader), r.Header.Get("Referer"))
	}
	formPost := r.Method != http.MethodGet && r.Method != http.MethodHead
	if formPost {
		candidates = append(candidates, r.Header.Get("Referer"))
	}
	for _, c := range candidates {
		if p := localPath(c); p != "" {
			return p
		}
	}
	if formPost {
		return "/"
	}
	return safeRedirectPath(r.URL.RequestURI())
}

// localPath reduces an absolute or root-relative URL to a safe local path.
// Scheme-relative references yield "".
func localPath(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	switch {
	case err != nil:
		return ""
	case u.IsAbs():
		return safeRedirectPath(u.RequestURI())
	case u.Host != "":
		return ""
	}
	return safeRedirectPath(raw)
}
