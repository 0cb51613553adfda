package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/domain/model"
	apperrors "github.com/target/onboarding-portal/internal/errors"
)

// AuthHandlers provides the JSON authentication endpoints.
type AuthHandlers struct {
	Svc    AuthService
	Cookie SessionCookieConfig
	Logger *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// sessionResponse is returned after a successful sign-in.
type sessionResponse struct {
	User     *domainauth.Identity `json:"user"`
	Redirect string               `json:"redirect"`
}

// Register handles POST /api/auth/register. New identities start pending.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	identity, err := h.Svc.Register(r.Context(), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{
		"user":    identity,
		"message": "Registration received. An administrator or manager must approve your account.",
	})
}

// Login handles POST /api/auth/login and sets the session cookie.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.Svc.Login(r.Context(), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	h.Cookie.set(w, r, res.Session)
	WriteJSON(w, http.StatusOK, sessionResponse{
		User:     res.Identity,
		Redirect: res.Identity.Role.LandingPath(),
	})
}

// Logout handles POST /api/auth/logout. It always clears the cookie.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Logout(r.Context(), ClaimsFrom(r.Context())); err != nil {
		h.logger().WarnContext(r.Context(), "session revocation failed", "error", err)
	}
	h.Cookie.clear(w, r)
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/auth/me.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	if claims == nil {
		WriteServiceError(w, r, apperrors.Unauthorized("sign in required"))
		return
	}

	identity, err := h.Svc.CurrentIdentity(r.Context(), claims)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"user":      identity,
		"roleLabel": identity.Role.Label(),
		"expiresAt": claims.ExpiresAt,
	})
}
