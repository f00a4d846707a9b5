package httpadapter

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"adserve/internal/core/domain"
)

type createCampaignRequest struct {
	Name              string    `json:"name" validate:"required,max=255"`
	Budget            int64     `json:"budget" validate:"required,gt=0"`
	DailyBudget       *int64    `json:"daily_budget" validate:"omitempty,gt=0"`
	TargetImpressions *int64    `json:"target_impressions" validate:"omitempty,gt=0"`
	StartDate         time.Time `json:"start_date" validate:"required"`
	EndDate           time.Time `json:"end_date" validate:"required"`
}

type updateCampaignRequest struct {
	Name              *string    `json:"name" validate:"omitempty,min=1,max=255"`
	Budget            *int64     `json:"budget" validate:"omitempty,gt=0"`
	DailyBudget       *int64     `json:"daily_budget" validate:"omitempty,gt=0"`
	TargetImpressions *int64     `json:"target_impressions" validate:"omitempty,gt=0"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
}

func (req updateCampaignRequest) patch() domain.CampaignPatch {
	return domain.CampaignPatch{
		Name:              req.Name,
		Budget:            req.Budget,
		DailyBudget:       req.DailyBudget,
		TargetImpressions: req.TargetImpressions,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
	}
}

type campaignStatsResponse struct {
	CampaignID  int64   `json:"campaign_id"`
	Status      string  `json:"status"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Views       int64   `json:"views"`
	Spent       int64   `json:"spent"`
	Remaining   int64   `json:"remaining"`
	CTR         float64 `json:"ctr"`
}

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.svc.Campaigns.Create(r.Context(), actorOf(r), domain.NewCampaign{
		Name:              req.Name,
		Budget:            req.Budget,
		DailyBudget:       req.DailyBudget,
		TargetImpressions: req.TargetImpressions,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.created(w, c)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.svc.Campaigns.Get(r.Context(), actorOf(r), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, c)
}

func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req updateCampaignRequest
	if err = h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.svc.Campaigns.Update(r.Context(), actorOf(r), id, req.patch())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, c)
}

func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err = h.svc.Campaigns.Delete(r.Context(), actorOf(r), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// campaignAction adapts a lifecycle operation on the {id} campaign.
func (h *Handler) campaignAction(
	action func(ctx context.Context, actor domain.Actor, id int64) (*domain.Campaign, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		c, err := action(r.Context(), actorOf(r), id)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.ok(w, c)
	}
}

func (h *Handler) handleActiveCampaigns(w http.ResponseWriter, r *http.Request) {
	h.listCampaigns(w, r, h.svc.Campaigns.Active)
}

func (h *Handler) handlePendingCampaigns(w http.ResponseWriter, r *http.Request) {
	h.listCampaigns(w, r, h.svc.Campaigns.Pending)
}

func (h *Handler) handleExpiredCampaigns(w http.ResponseWriter, r *http.Request) {
	h.listCampaigns(w, r, h.svc.Campaigns.Expired)
}

// listCampaigns restricts advertisers to their own campaigns. Admins see
// everything, or one advertiser's campaigns with ?advertiser_id=.
func (h *Handler) listCampaigns(
	w http.ResponseWriter,
	r *http.Request,
	list func(ctx context.Context, advertiserID *uuid.UUID) ([]domain.Campaign, error),
) {
	actor := actorOf(r)
	var owner *uuid.UUID
	switch {
	case !actor.IsAdmin():
		owner = &actor.ID
	case r.URL.Query().Get("advertiser_id") != "":
		id, err := uuid.Parse(r.URL.Query().Get("advertiser_id"))
		if err != nil {
			h.writeError(w, r, domain.NewValidationDetails("invalid query", map[string]string{
				"advertiser_id": "must be a UUID",
			}))
			return
		}
		owner = &id
	}
	campaigns, err := list(r.Context(), owner)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, nonNil(campaigns))
}
