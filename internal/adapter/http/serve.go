package httpadapter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"adserve/internal/core/port"
)

type servedAdResponse struct {
	CreativeID     int64   `json:"creative_id"`
	CampaignID     int64   `json:"campaign_id"`
	Zone           string  `json:"zone"`
	Type           string  `json:"type"`
	Format         string  `json:"format"`
	URL            string  `json:"url"`
	DestinationURL *string `json:"destination_url,omitempty"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	ClickURL       string  `json:"click_url"`
}

func newServedAdResponse(ad *port.ServedAd) servedAdResponse {
	return servedAdResponse{
		CreativeID:     ad.CreativeID,
		CampaignID:     ad.CampaignID,
		Zone:           ad.Zone,
		Type:           string(ad.Type),
		Format:         ad.Format,
		URL:            ad.URL,
		DestinationURL: ad.DestinationURL,
		Width:          ad.Width,
		Height:         ad.Height,
		ClickURL:       ad.ClickURL,
	}
}

// handleServe selects a creative for the {zone} path parameter and debits
// its campaign. It returns HTTP 204 when nothing can be served, including
// when the serve runs out of time, and HTTP 404 for an unknown zone.
//
// A timeout seen before the debit charges nothing. If the deadline fires
// while the debit statement is in flight, the store may have committed it
// and the impression stays charged even though the response is 204.
func (h *Handler) handleServe(w http.ResponseWriter, r *http.Request) {
	zone := chi.URLParam(r, "zone")

	ctx := r.Context()
	if h.opts.ServeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.ServeTimeout)
		defer cancel()
	}

	ad, err := h.svc.Ads.Serve(ctx, zone)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			h.logger.Warn("serve timed out", slog.String("zone", zone))
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.writeError(w, r, err)
		return
	}
	if ad == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.ok(w, newServedAdResponse(ad))
}

// handleTrack records a click on the {id} creative and redirects to its
// destination. Tracking never fails the request: without a destination the
// click is acknowledged with HTTP 200.
func (h *Handler) handleTrack(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.ok(w, map[string]bool{"tracked": false})
		return
	}
	destination, ok := h.svc.Ads.TrackClick(r.Context(), id)
	if ok {
		http.Redirect(w, r, destination, http.StatusFound)
		return
	}
	h.ok(w, map[string]bool{"tracked": true})
}
