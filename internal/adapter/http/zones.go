package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"adserve/internal/core/domain"
)

type createZoneRequest struct {
	Code         string `json:"code" validate:"required,max=63"`
	Type         string `json:"type" validate:"required,max=64"`
	PricePerView int64  `json:"price_per_view" validate:"required,gt=0"`
	Status       string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type zonePriceRequest struct {
	PricePerView int64 `json:"price_per_view" validate:"required,gt=0"`
}

type zoneStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

func (h *Handler) handleListZones(w http.ResponseWriter, r *http.Request) {
	zones, err := h.svc.Zones.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, nonNil(zones))
}

func (h *Handler) handleActiveZones(w http.ResponseWriter, r *http.Request) {
	zones, err := h.svc.Zones.ListActive(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, nonNil(zones))
}

// handleAffordableZones lists active zones whose price fits the requested
// impressions into budget.
func (h *Handler) handleAffordableZones(w http.ResponseWriter, r *http.Request) {
	budget, err := queryInt64(r, "budget")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	impressions, err := queryInt64(r, "impressions")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	zones, err := h.svc.Zones.WithinBudget(r.Context(), budget, impressions)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, nonNil(zones))
}

func (h *Handler) handleCreateZone(w http.ResponseWriter, r *http.Request) {
	var req createZoneRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	z, err := h.svc.Zones.Create(r.Context(), actorOf(r), domain.Zone{
		Code:         req.Code,
		Type:         req.Type,
		PricePerView: req.PricePerView,
		Status:       domain.ZoneStatus(req.Status),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.created(w, z)
}

func (h *Handler) handleSetZonePrice(w http.ResponseWriter, r *http.Request) {
	var req zonePriceRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	z, err := h.svc.Zones.SetPrice(r.Context(), actorOf(r), chi.URLParam(r, "code"), req.PricePerView)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, z)
}

func (h *Handler) handleSetZoneStatus(w http.ResponseWriter, r *http.Request) {
	var req zoneStatusRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	z, err := h.svc.Zones.SetStatus(r.Context(), actorOf(r), chi.URLParam(r, "code"), domain.ZoneStatus(req.Status))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, z)
}

// nonNil makes empty listings encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
