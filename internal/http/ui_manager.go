package httpx

import (
	"net/http"
)

// Approvals serves GET /manager/pending-approvals.
func (h *UIHandlers) Approvals(w http.ResponseWriter, r *http.Request) {
	pending, err := h.Users.ListPending(r.Context(), ClaimsFrom(r.Context()))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	data := newPageData(r, pageMeta("Pending approvals", PageApprovals)).
		set("Pending", pending)
	h.renderPage(w, r, data)
}

// Approve handles POST /manager/pending-approvals/{id}/approve.
func (h *UIHandlers) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	claims := ClaimsFrom(r.Context())
	identity, err := h.Users.Approve(r.Context(), claims, id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.logger().Info("user approved", "user_id", identity.ID, "approved_by", claims.Subject)
	if IsHTMX(r) {
		triggerToast(w, noticeFor("approved"), "success")
	}
	seeOther(w, r, withNotice("/manager/pending-approvals", "approved"))
}
