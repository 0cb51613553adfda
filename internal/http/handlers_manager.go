package httpx

import (
	"net/http"

	"github.com/target/onboarding-portal/internal/domain/model"
)

// ManagerHandlers serves the approval JSON endpoints.
type ManagerHandlers struct {
	Users UsersService
}

// Pending handles GET /api/manager/pending.
func (h *ManagerHandlers) Pending(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListPending(r.Context(), ClaimsFrom(r.Context()))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}

// Approve handles POST /api/manager/approve. Approving an already approved
// identity succeeds without changing it.
func (h *ManagerHandlers) Approve(w http.ResponseWriter, r *http.Request) {
	var req model.ApproveRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	identity, err := h.Users.Approve(r.Context(), ClaimsFrom(r.Context()), req.UserID)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"user": identity})
}
