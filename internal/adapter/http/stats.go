package httpadapter

import "net/http"

// handleCampaignStats returns the delivery counters of the {id} campaign:
// impressions, clicks, views, spend and click-through rate.
func (h *Handler) handleCampaignStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	stats, err := h.svc.Campaigns.Stats(r.Context(), actorOf(r), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, campaignStatsResponse{
		CampaignID:  stats.CampaignID,
		Status:      string(stats.Status),
		Impressions: stats.Impressions,
		Clicks:      stats.Clicks,
		Views:       stats.Views,
		Spent:       stats.Spent,
		Remaining:   stats.Remaining,
		CTR:         stats.CTR,
	})
}
