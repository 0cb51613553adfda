package httpx

import (
	"net/http"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/domain/model"
	apperrors "github.com/target/onboarding-portal/internal/errors"
)

const (
	defaultAdminListLimit = 50
	maxAdminListLimit     = 200
)

// ModuleHandlers provides admin CRUD for onboarding modules.
type ModuleHandlers struct {
	Svc ModulesService
}

// Create handles POST /api/admin/modules.
func (h *ModuleHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ModuleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	m, err := h.Svc.Create(r.Context(), ClaimsFrom(r.Context()), &req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, m)
}

// List handles GET /api/admin/modules.
func (h *ModuleHandlers) List(w http.ResponseWriter, r *http.Request) {
	modules, err := h.Svc.List(r.Context(), ClaimsFrom(r.Context()))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"modules": modules})
}

// GetByID handles GET /api/admin/modules/{id}.
func (h *ModuleHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	m, err := h.Svc.Get(r.Context(), ClaimsFrom(r.Context()), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, m)
}

// Update handles PUT /api/admin/modules/{id}. The body replaces every field.
func (h *ModuleHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	var req model.ModuleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	m, err := h.Svc.Update(r.Context(), ClaimsFrom(r.Context()), id, &req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, m)
}

// Delete handles DELETE /api/admin/modules/{id}.
func (h *ModuleHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), ClaimsFrom(r.Context()), id); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// QuestionHandlers provides admin CRUD for quiz questions.
type QuestionHandlers struct {
	Svc QuestionsService
}

// Create handles POST /api/admin/questions.
func (h *QuestionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.QuestionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	q, err := h.Svc.Create(r.Context(), ClaimsFrom(r.Context()), &req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, q)
}

// List handles GET /api/admin/questions. Admin views include the answer.
func (h *QuestionHandlers) List(w http.ResponseWriter, r *http.Request) {
	questions, err := h.Svc.List(r.Context(), ClaimsFrom(r.Context()))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

// GetByID handles GET /api/admin/questions/{id}.
func (h *QuestionHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	q, err := h.Svc.Get(r.Context(), ClaimsFrom(r.Context()), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, q)
}

// Update handles PUT /api/admin/questions/{id}.
func (h *QuestionHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	var req model.QuestionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	q, err := h.Svc.Update(r.Context(), ClaimsFrom(r.Context()), id, &req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, q)
}

// Delete handles DELETE /api/admin/questions/{id}.
func (h *QuestionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), ClaimsFrom(r.Context()), id); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminHandlers serves the admin-only reporting and user endpoints.
type AdminHandlers struct {
	Users UsersService
	Quiz  QuizService
}

// Scores handles GET /api/admin/scores.
func (h *AdminHandlers) Scores(w http.ResponseWriter, r *http.Request) {
	p := pageFromQuery(r, defaultAdminListLimit, maxAdminListLimit)
	scores, err := h.Quiz.Scores(r.Context(), ClaimsFrom(r.Context()), model.ScoresListOptions{Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"scores": scores,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// ListUsers handles GET /api/admin/users?role=&limit=&offset=.
func (h *AdminHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	p := pageFromQuery(r, defaultAdminListLimit, maxAdminListLimit)
	opts := model.UsersListOptions{Limit: p.Limit, Offset: p.Offset}
	if raw := r.URL.Query().Get("role"); raw != "" {
		role, err := domainauth.ParseRole(raw)
		if err != nil {
			WriteServiceError(w, r, apperrors.ValidationField("role", "role must be one of pending, employee, manager, admin"))
			return
		}
		opts.Role = &role
	}

	users, err := h.Users.ListUsers(r.Context(), ClaimsFrom(r.Context()), opts)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"users":  users,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// SetRole handles PUT /api/admin/users/{id}/role.
func (h *AdminHandlers) SetRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	var req model.SetRoleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	identity, err := h.Users.SetRole(r.Context(), ClaimsFrom(r.Context()), id, req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"user": identity})
}
