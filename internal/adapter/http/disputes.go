package httpadapter

import (
	"net/http"

	"adserve/internal/core/domain"
	"adserve/internal/core/port"
)

type createDisputeRequest struct {
	CampaignID  *int64 `json:"campaign_id" validate:"omitempty,gt=0"`
	Subject     string `json:"subject" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}

type advanceDisputeRequest struct {
	Status        string `json:"status" validate:"required,oneof=investigation resolved closed"`
	AdminResponse string `json:"admin_response"`
}

func (h *Handler) handleCreateDispute(w http.ResponseWriter, r *http.Request) {
	var req createDisputeRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	d, err := h.svc.Disputes.Create(r.Context(), actorOf(r), port.NewDispute{
		CampaignID:  req.CampaignID,
		Subject:     req.Subject,
		Description: req.Description,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.created(w, d)
}

func (h *Handler) handleListDisputes(w http.ResponseWriter, r *http.Request) {
	disputes, err := h.svc.Disputes.List(r.Context(), actorOf(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, nonNil(disputes))
}

func (h *Handler) handleGetDispute(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	d, err := h.svc.Disputes.Get(r.Context(), actorOf(r), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, d)
}

// handleAdvanceDispute moves a dispute one step forward. Resolving and
// closing need an admin response.
func (h *Handler) handleAdvanceDispute(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req advanceDisputeRequest
	if err = h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	d, err := h.svc.Disputes.Advance(r.Context(), actorOf(r), id, domain.DisputeStatus(req.Status), req.AdminResponse)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, d)
}
