package httpadapter

import (
	"net/http"
	"strconv"
	"time"

	"adserve/internal/core/domain"
)

type createCreativeRequest struct {
	CampaignID     int64   `json:"campaign_id" validate:"required,gt=0"`
	Zone           string  `json:"zone" validate:"required"`
	Type           string  `json:"type" validate:"required,oneof=image video"`
	Format         string  `json:"format" validate:"required"`
	URL            string  `json:"url" validate:"required,url"`
	DestinationURL *string `json:"destination_url" validate:"omitempty,url"`
	Width          int     `json:"width" validate:"gte=0"`
	Height         int     `json:"height" validate:"gte=0"`
}

type updateCreativeRequest struct {
	Zone           *string `json:"zone" validate:"omitempty,min=1"`
	Type           *string `json:"type" validate:"omitempty,oneof=image video"`
	Format         *string `json:"format" validate:"omitempty,min=1"`
	URL            *string `json:"url" validate:"omitempty,url"`
	DestinationURL *string `json:"destination_url" validate:"omitempty,url"`
	Width          *int    `json:"width" validate:"omitempty,gte=0"`
	Height         *int    `json:"height" validate:"omitempty,gte=0"`
	ResetViews     bool    `json:"reset_views"`
}

func (req updateCreativeRequest) patch() domain.CreativePatch {
	p := domain.CreativePatch{
		ZoneCode:       req.Zone,
		Format:         req.Format,
		URL:            req.URL,
		DestinationURL: req.DestinationURL,
		Width:          req.Width,
		Height:         req.Height,
		ResetViews:     req.ResetViews,
	}
	if req.Type != nil {
		t := domain.CreativeType(*req.Type)
		p.Type = &t
	}
	return p
}

func (h *Handler) handleCreateCreative(w http.ResponseWriter, r *http.Request) {
	var req createCreativeRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	cr, err := h.svc.Creatives.Create(r.Context(), actorOf(r), domain.NewCreative{
		CampaignID:     req.CampaignID,
		ZoneCode:       req.Zone,
		Type:           domain.CreativeType(req.Type),
		Format:         req.Format,
		URL:            req.URL,
		DestinationURL: req.DestinationURL,
		Width:          req.Width,
		Height:         req.Height,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.created(w, cr)
}

func (h *Handler) handleGetCreative(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	cr, err := h.svc.Creatives.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, cr)
}

func (h *Handler) handleUpdateCreative(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req updateCreativeRequest
	if err = h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	cr, err := h.svc.Creatives.Update(r.Context(), actorOf(r), id, req.patch())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, cr)
}

func (h *Handler) handleDeleteCreative(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err = h.svc.Creatives.Delete(r.Context(), actorOf(r), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListCreatives lists creatives filtered by the campaign_id, zone, q,
// width, height, active and top query parameters. Filters combine.
func (h *Handler) handleListCreatives(w http.ResponseWriter, r *http.Request) {
	f, err := creativeFilter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	creatives, err := h.svc.Creatives.List(r.Context(), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, nonNil(creatives))
}

func creativeFilter(r *http.Request) (domain.CreativeFilter, error) {
	q := r.URL.Query()
	f := domain.CreativeFilter{
		ZoneCode: q.Get("zone"),
		Query:    q.Get("q"),
	}
	var err error
	if f.CampaignID, err = queryInt64(r, "campaign_id"); err != nil {
		return f, err
	}
	width, err := queryInt64(r, "width")
	if err != nil {
		return f, err
	}
	height, err := queryInt64(r, "height")
	if err != nil {
		return f, err
	}
	top, err := queryInt64(r, "top")
	if err != nil {
		return f, err
	}
	f.Width, f.Height, f.TopN = int(width), int(height), int(top)

	if raw := q.Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return f, domain.NewValidationDetails("invalid query", map[string]string{
				"active": "must be true or false",
			})
		}
		if active {
			now := time.Now().UTC()
			f.ActiveAt = &now
		}
	}
	return f, nil
}
