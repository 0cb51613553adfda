package httpx

import (
	"net/http"
	"strings"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/domain/model"
	"github.com/target/onboarding-portal/internal/http/validation"
)

const (
	maxNameLen       = 200
	minPasswordBytes = 8
	maxPasswordBytes = 72
)

// signInForm is the submitted sign-in form, minus the password.
type signInForm struct {
	Email       string
	RedirectURI string
}

// signUpForm is the submitted registration form, minus the passwords.
type signUpForm struct {
	Name  string
	Email string
}

// Home serves GET /. Signed-in visitors go straight to their landing page.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	if claims := ClaimsFrom(r.Context()); claims != nil {
		redirectBrowser(w, r, claims.Role.LandingPath())
		return
	}
	h.renderPage(w, r, newPageData(r, pageMeta("Welcome", PageHome)))
}

// SignInPage serves GET /auth/signin.
func (h *UIHandlers) SignInPage(w http.ResponseWriter, r *http.Request) {
	if claims := ClaimsFrom(r.Context()); claims != nil {
		redirectBrowser(w, r, claims.Role.LandingPath())
		return
	}
	data := newPageData(r, pageMeta("Sign in", PageSignIn)).
		set("FormData", signInForm{RedirectURI: safeRedirectPath(r.URL.Query().Get("redirect_uri"))})
	h.renderPage(w, r, data)
}

// SignIn handles POST /auth/signin.
func (h *UIHandlers) SignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := signInForm{
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		RedirectURI: safeRedirectPath(r.PostFormValue("redirect_uri")),
	}
	password := r.PostFormValue("password")

	meta := pageMeta("Sign in", PageSignIn)
	fv := validation.New().
		Validate("email", form.Email, validation.Required("Email", 254)).
		Check(password != "", "password", "Password is required.")
	if !fv.Valid() {
		RenderError(ErrorOpts{W: w, R: r, FieldErrors: fv.Errors(), Renderer: h.renderPage, PageMeta: meta,
			Data: map[string]any{"FormData": form}})
		return
	}

	res, err := h.Auth.Login(r.Context(), model.LoginRequest{Email: form.Email, Password: password})
	if err != nil {
		h.logger().Info("browser sign-in rejected", "error", err)
		RenderError(ErrorOpts{W: w, R: r, Err: err, Renderer: h.renderPage, PageMeta: meta,
			Data: map[string]any{"FormData": form}})
		return
	}

	h.Cookie.set(w, r, res.Session)
	seeOther(w, r, h.postSignInPath(form.RedirectURI, &res.Session.Claims))
}

// postSignInPath honours a requested destination only when the new session
// may actually open it.
func (h *UIHandlers) postSignInPath(requested string, claims *domainauth.Claims) string {
	if requested != "" && requested != "/" {
		path := requested
		if i := strings.IndexAny(path, "?#"); i >= 0 {
			path = path[:i]
		}
		if h.policy().Authorize(path, claims) == domainauth.Allow {
			return requested
		}
	}
	return claims.Role.LandingPath()
}

// SignUpPage serves GET /auth/signup.
func (h *UIHandlers) SignUpPage(w http.ResponseWriter, r *http.Request) {
	if claims := ClaimsFrom(r.Context()); claims != nil {
		redirectBrowser(w, r, claims.Role.LandingPath())
		return
	}
	data := newPageData(r, pageMeta("Create account", PageSignUp)).
		set("FormData", signUpForm{})
	h.renderPage(w, r, data)
}

// SignUp handles POST /auth/signup. New identities start pending until a
// manager approves them.
func (h *UIHandlers) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := signUpForm{
		Name:  strings.TrimSpace(r.PostFormValue("name")),
		Email: strings.TrimSpace(r.PostFormValue("email")),
	}
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("confirm_password")

	fv := validation.New().
		Validate("name", form.Name, validation.Required("Name", maxNameLen)).
		Validate("email", form.Email, validation.Email("Email")).
		Validate("password", password, validation.MinBytes("Password", minPasswordBytes, maxPasswordBytes)).
		Check(password == confirm, "confirm_password", "Passwords do not match.")

	meta := pageMeta("Create account", PageSignUp)
	if !fv.Valid() {
		RenderError(ErrorOpts{W: w, R: r, FieldErrors: fv.Errors(), Renderer: h.renderPage, PageMeta: meta,
			Data: map[string]any{"FormData": form}})
		return
	}

	_, err := h.Auth.Register(r.Context(), model.RegisterRequest{Email: form.Email, Password: password, Name: form.Name})
	if err != nil {
		RenderError(ErrorOpts{W: w, R: r, Err: err, Renderer: h.renderPage, PageMeta: meta,
			Data: map[string]any{"FormData": form}})
		return
	}

	seeOther(w, r, withNotice(signInPath, "registered"))
}

// SignOut handles POST /auth/signout. The cookie is cleared even when
// revocation fails.
func (h *UIHandlers) SignOut(w http.ResponseWriter, r *http.Request) {
	if claims := ClaimsFrom(r.Context()); claims != nil {
		if err := h.Auth.Logout(r.Context(), claims); err != nil {
			h.logger().Warn("session revocation failed", "error", err, "user_id", claims.Subject)
		}
	}
	h.Cookie.clear(w, r)
	seeOther(w, r, withNotice(signInPath, "signed-out"))
}

// PendingApproval serves GET /auth/pending-approval.
func (h *UIHandlers) PendingApproval(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	if claims == nil {
		sendToSignIn(w, r)
		return
	}
	if !claims.IsPending() {
		redirectBrowser(w, r, claims.Role.LandingPath())
		return
	}
	h.renderPage(w, r, newPageData(r, pageMeta("Awaiting approval", PagePendingApproval)))
}
