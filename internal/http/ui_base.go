package httpx

import (
	"html"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	apperrors "github.com/target/onboarding-portal/internal/errors"
	"github.com/target/onboarding-portal/internal/http/ui/viewmodel"
	"github.com/target/onboarding-portal/internal/http/uiutil"
)

const (
	appName        = "Onboarding Portal"
	errMsgFixBelow = "Please fix the errors below."
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T          *TemplateRenderer
	Auth       AuthService
	Users      UsersService
	Modules    ModulesService
	Questions  QuestionsService
	Quiz       QuizService
	Onboarding OnboardingService
	Policy     *domainauth.RoutePolicy
	Cookie     SessionCookieConfig
	IsDev      bool // Development mode flag for enhanced error reporting
	Logger     *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *UIHandlers) policy() *domainauth.RoutePolicy {
	if h.Policy == nil {
		h.Policy = domainauth.DefaultRoutePolicy()
	}
	return h.Policy
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

func pageMeta(title, page string) PageMeta {
	return PageMeta{Title: title + " - " + appName, PageTitle: title, CurrentPage: page}
}

// navFor builds the navigation visible to role.
func navFor(role domainauth.Role) []viewmodel.NavItem {
	switch role {
	case domainauth.RoleEmployee:
		return []viewmodel.NavItem{{Label: "My onboarding", Href: "/onboarding", Page: PageOnboarding}}
	case domainauth.RoleManager:
		return []viewmodel.NavItem{{Label: "Pending approvals", Href: "/manager/pending-approvals", Page: PageApprovals}}
	case domainauth.RoleAdmin:
		return []viewmodel.NavItem{
			{Label: "Dashboard", Href: "/admin/dashboard", Page: PageAdminDashboard},
			{Label: "Pending approvals", Href: "/manager/pending-approvals", Page: PageApprovals},
		}
	default:
		return nil
	}
}

// buildLayout constructs shared layout metadata from the request/session context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
	}

	if claims := ClaimsFrom(r.Context()); claims != nil {
		layout.IsAuthenticated = true
		layout.User = &viewmodel.User{
			ID:        claims.Subject,
			Name:      claims.Name,
			Initials:  uiutil.Initials(claims.Name),
			Role:      string(claims.Role),
			RoleLabel: claims.Role.Label(),
		}
		layout.Nav = navFor(claims.Role)
	}

	return layout
}

// renderPage renders a page with proper HTMX partial support.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if !WantsPartial(r) {
		if err := h.T.Render(w, viewFull, 0, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	// For HTMX requests, render the content plus an out-of-band header title.
	w.Header().Set("Content-Type", htmlContentType)
	AddHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})

	layout := layoutFromMap(data)
	if _, err := w.Write([]byte(`<title>` + html.EscapeString(layout.Title) + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}
	safeTitle := html.EscapeString(layout.PageTitle)
	if _, err := w.Write([]byte(`<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` + safeTitle + `</h1>`)); err != nil {
		h.logger().Error("failed to write partial header title", "error", err)
		return
	}
	if err := h.T.Render(w, viewContent, 0, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
	}
}

// renderPageStatus renders a page with a non-200 status. HTMX requests keep
// 200 so the swap still happens.
func (h *UIHandlers) renderPageStatus(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
	if status != http.StatusOK && !IsHTMX(r) {
		w.WriteHeader(status)
	}
	h.renderPage(w, r, data)
}

func layoutFromMap(m map[string]any) viewmodel.Layout {
	layout := viewmodel.Layout{}
	if v, ok := m["Title"].(string); ok {
		layout.Title = v
	}
	if v, ok := m["PageTitle"].(string); ok {
		layout.PageTitle = v
	}
	if v, ok := m["CurrentPage"].(string); ok {
		layout.CurrentPage = v
	}
	return layout
}

// renderErrorPage renders the standalone error page with status.
func (h *UIHandlers) renderErrorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	claims := ClaimsFrom(r.Context())
	data := map[string]any{
		"Title":           http.StatusText(status) + " - " + appName,
		"Code":            status,
		"Message":         message,
		"IsAuthenticated": claims != nil,
		"ShowLogin":       claims == nil,
		"RedirectURI":     safeRedirectPath(r.URL.RequestURI()),
	}
	if claims != nil {
		data["HomePath"] = claims.Role.LandingPath()
	} else {
		data["HomePath"] = "/"
	}

	if h.T == nil {
		http.Error(w, message, status)
		return
	}
	if err := h.T.Render(w, viewError, status, data); err != nil {
		http.Error(w, message, status)
	}
}

// NotFound answers unmatched routes: the error page for browsers, JSON otherwise.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: string(apperrors.ErrCodeNotFound)})
		return
	}
	h.renderErrorPage(w, r, http.StatusNotFound, "The page you're looking for doesn't exist.")
}

// Forbidden is the gate's response for a signed-in role outside the path's allow list.
func (h *UIHandlers) Forbidden(w http.ResponseWriter, r *http.Request) {
	h.renderErrorPage(w, r, http.StatusForbidden, "Your account does not have access to this page.")
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", htmlContentType)
		w.WriteHeader(http.StatusInternalServerError)
		if _, writeErr := w.Write([]byte(`<div class="dev-error"><h2>Template Rendering Error</h2>` +
			`<p><strong>Context:</strong> ` + html.EscapeString(context) + `</p>` +
			`<p><strong>Path:</strong> ` + html.EscapeString(r.URL.Path) + `</p>` +
			`<pre>` + html.EscapeString(err.Error()) + `</pre></div>`)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// withNotice appends ?notice=key to a local path.
func withNotice(path, key string) string {
	if strings.Contains(path, "?") {
		return path + "&notice=" + key
	}
	return path + "?notice=" + key
}
