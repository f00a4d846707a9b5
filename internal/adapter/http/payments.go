package httpadapter

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type initializePaymentRequest struct {
	CampaignID int64 `json:"campaign_id" validate:"required,gt=0"`
	Amount     int64 `json:"amount" validate:"required,gt=0"`
	// Email is used when the caller's token carries none.
	Email string `json:"email" validate:"omitempty,email"`
}

type paymentInitResponse struct {
	Reference   string `json:"reference"`
	RedirectURL string `json:"redirect_url"`
	AccessCode  string `json:"access_code"`
	Amount      int64  `json:"amount"`
}

func (h *Handler) handleInitializePayment(w http.ResponseWriter, r *http.Request) {
	var req initializePaymentRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	actor := actorOf(r)
	if actor.Email == "" {
		actor.Email = req.Email
	}
	started, err := h.svc.Payments.Initialize(r.Context(), actor, req.CampaignID, req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.created(w, paymentInitResponse{
		Reference:   started.Reference,
		RedirectURL: started.RedirectURL,
		AccessCode:  started.AccessCode,
		Amount:      started.Amount,
	})
}

func (h *Handler) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Payments.Verify(r.Context(), actorOf(r), chi.URLParam(r, "reference"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, p)
}

// handleWebhook passes the raw body and its signature to the payment use
// case. The body must not be re-encoded before verification.
func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.badRequest(w, "unreadable body")
		return
	}
	if err = h.svc.Payments.HandleWebhook(r.Context(), payload, r.Header.Get(h.opts.SignatureHeader)); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, map[string]bool{"received": true})
}

func (h *Handler) handleListPayments(w http.ResponseWriter, r *http.Request) {
	campaignID, err := queryInt64(r, "campaign_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	payments, err := h.svc.Payments.List(r.Context(), actorOf(r), campaignID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, nonNil(payments))
}
