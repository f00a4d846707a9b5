package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"adserve/internal/core/domain"
	"adserve/internal/core/port"
	"adserve/internal/metrics"
)

// Gateway webhook events.
const (
	eventChargeSuccess = "charge.success"
	eventChargeFailed  = "charge.failed"
)

// Webhook outcomes reported to metrics.
const (
	webhookApplied   = "applied"
	webhookDuplicate = "duplicate"
	webhookFailed    = "failed"
	webhookIgnored   = "ignored"
	webhookRejected  = "rejected"
	webhookError     = "error"
)

// PaymentUseCase reconciles gateway payments with campaign funding. The
// webhook and the verify poll share one apply path; the repository's
// pending guard makes sure a payment funds its campaign once.
type PaymentUseCase struct {
	payments  port.PaymentRepository
	campaigns port.CampaignRepository
	gateway   port.PaymentGateway
	verifier  port.SignatureVerifier
	logger    *slog.Logger
	now       func() time.Time
}

func NewPaymentUseCase(
	payments port.PaymentRepository,
	campaigns port.CampaignRepository,
	gateway port.PaymentGateway,
	verifier port.SignatureVerifier,
	logger *slog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		payments:  payments,
		campaigns: campaigns,
		gateway:   gateway,
		verifier:  verifier,
		logger:    logger,
		now:       utcNow,
	}
}

// Initialize starts funding a campaign. amount must equal the outstanding
// funding requirement, budget minus what was already paid. A DRAFT
// campaign is submitted on the way.
func (u *PaymentUseCase) Initialize(ctx context.Context, actor domain.Actor, campaignID, amount int64) (*port.PaymentInit, error) {
	if amount <= 0 {
		return nil, domain.NewValidationDetails("invalid payment", map[string]string{
			"amount": "amount must be greater than zero",
		})
	}
	if actor.Email == "" {
		return nil, domain.NewValidationDetails("invalid payment", map[string]string{
			"email": "caller email is required to start a payment",
		})
	}
	c, err := u.campaigns.Get(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err = authorize(actor, c.AdvertiserID, "campaign"); err != nil {
		return nil, err
	}
	if c.Status != domain.CampaignDraft && c.Status != domain.CampaignPendingPayment {
		return nil, domain.NewConflictError("NOT_AWAITING_PAYMENT",
			fmt.Sprintf("campaign %d is %s", c.ID, c.Status), nil)
	}
	now := u.now()
	if now.After(c.EndDate) {
		return nil, domain.NewConflictError("WINDOW_ENDED",
			fmt.Sprintf("campaign %d ended at %s", c.ID, c.EndDate.Format(time.RFC3339)), nil)
	}

	paid, err := u.payments.SumSuccessful(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	outstanding := c.Budget - paid
	if outstanding <= 0 {
		return nil, domain.NewConflictError("ALREADY_FUNDED", fmt.Sprintf("campaign %d is fully funded", c.ID), nil)
	}
	if amount != outstanding {
		return nil, domain.NewValidationDetails("invalid payment", map[string]string{
			"amount": fmt.Sprintf("amount must equal the outstanding funding requirement of %d", outstanding),
		})
	}

	if c.Status == domain.CampaignDraft {
		if _, err = u.campaigns.Transition(ctx, c.ID, domain.SourcesFor(domain.EventSubmit), domain.CampaignPendingPayment, now); err != nil {
			return nil, err
		}
		metrics.Transition(string(domain.CampaignPendingPayment))
	}

	p := domain.Payment{
		Reference:    domain.NewPaymentReference(),
		AdvertiserID: c.AdvertiserID,
		CampaignID:   c.ID,
		Amount:       amount,
		Status:       domain.PaymentPending,
		Type:         domain.PaymentAdvertisement,
	}
	if err = u.payments.Create(ctx, &p); err != nil {
		return nil, err
	}

	auth, err := u.gateway.Initialize(ctx, port.InitializeRequest{
		Email:     actor.Email,
		Amount:    amount,
		Reference: p.Reference,
		Metadata: map[string]string{
			"campaign_id":   strconv.FormatInt(c.ID, 10),
			"advertiser_id": c.AdvertiserID.String(),
			"payment_type":  string(domain.PaymentAdvertisement),
		},
	})
	if err != nil {
		u.logger.Error("gateway initialize failed",
			slog.String("reference", p.Reference),
			slog.Int64("campaign_id", c.ID),
			slog.Any("error", err),
		)
		if _, _, mErr := u.payments.MarkFailed(ctx, p.Reference, nil, u.now()); mErr != nil {
			u.logger.Error("failed to mark payment failed", slog.String("reference", p.Reference), slog.Any("error", mErr))
		}
		return nil, fmt.Errorf("initialize payment %s: %w", p.Reference, err)
	}

	u.logger.Info("payment initialized",
		slog.String("reference", p.Reference),
		slog.Int64("campaign_id", c.ID),
		slog.Int64("amount", amount),
	)
	return &port.PaymentInit{
		Reference:   p.Reference,
		RedirectURL: auth.AuthorizationURL,
		AccessCode:  auth.AccessCode,
		Amount:      amount,
	}, nil
}

type webhookEvent struct {
	Event string      `json:"event"`
	Data  webhookData `json:"data"`
}

type webhookData struct {
	ID        json.Number `json:"id"`
	Reference string      `json:"reference"`
	Status    string      `json:"status"`
	Amount    int64       `json:"amount"`
}

// HandleWebhook authenticates payload with its signature before reading
// it. Events other than charge outcomes are acknowledged and ignored.
func (u *PaymentUseCase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if signature == "" || !u.verifier.VerifySignature(payload, signature) {
		metrics.Webhook(webhookRejected)
		u.logger.Warn("webhook signature rejected", slog.Int("payload_bytes", len(payload)))
		return domain.NewAuthenticationError("invalid webhook signature", domain.ErrInvalidSignature)
	}

	var ev webhookEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		metrics.Webhook(webhookError)
		return domain.NewValidationError("INVALID_PAYLOAD", "webhook payload is not valid JSON")
	}
	if ev.Data.Reference == "" {
		metrics.Webhook(webhookError)
		return domain.NewValidationError("INVALID_PAYLOAD", "webhook payload has no reference")
	}
	providerRef := providerReference(ev.Data.ID.String())

	switch {
	case ev.Event == eventChargeSuccess:
		p, err := u.payments.GetByReference(ctx, ev.Data.Reference)
		if err != nil {
			metrics.Webhook(webhookError)
			return err
		}
		if ev.Data.Amount != p.Amount {
			metrics.Webhook(webhookError)
			u.logger.Error("webhook amount mismatch",
				slog.String("reference", p.Reference),
				slog.Int64("expected", p.Amount),
				slog.Int64("received", ev.Data.Amount),
			)
			return domain.NewValidationError("AMOUNT_MISMATCH", "paid amount does not match the payment")
		}
		_, err = u.confirm(ctx, p.Reference, providerRef, "webhook")
		return err
	case ev.Event == eventChargeFailed || ev.Data.Status == string(port.GatewayFailed) || ev.Data.Status == string(port.GatewayAbandoned):
		_, err := u.fail(ctx, ev.Data.Reference, providerRef, "webhook")
		return err
	default:
		metrics.Webhook(webhookIgnored)
		u.logger.Debug("webhook event ignored", slog.String("event", ev.Event), slog.String("reference", ev.Data.Reference))
		return nil
	}
}

// Verify asks the gateway for the state of a pending payment and applies
// it. A settled payment is returned as stored.
func (u *PaymentUseCase) Verify(ctx context.Context, actor domain.Actor, reference string) (*domain.Payment, error) {
	p, err := u.payments.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if err = authorize(actor, p.AdvertiserID, "payment"); err != nil {
		return nil, err
	}
	if p.Settled() {
		return p, nil
	}

	v, err := u.gateway.Verify(ctx, reference)
	if err != nil {
		u.logger.Error("gateway verify failed", slog.String("reference", reference), slog.Any("error", err))
		return nil, fmt.Errorf("verify payment %s: %w", reference, err)
	}
	providerRef := providerReference(v.ProviderReference)

	switch v.Status {
	case port.GatewaySuccess:
		if v.Amount != p.Amount {
			u.logger.Error("verified amount mismatch",
				slog.String("reference", reference),
				slog.Int64("expected", p.Amount),
				slog.Int64("received", v.Amount),
			)
			return nil, domain.NewValidationError("AMOUNT_MISMATCH", "paid amount does not match the payment")
		}
		res, err := u.confirm(ctx, reference, providerRef, "verify")
		if err != nil {
			return nil, err
		}
		return &res.Payment, nil
	case port.GatewayFailed, port.GatewayAbandoned:
		return u.fail(ctx, reference, providerRef, "verify")
	default:
		return p, nil
	}
}

func (u *PaymentUseCase) List(ctx context.Context, actor domain.Actor, campaignID int64) ([]domain.Payment, error) {
	if campaignID != 0 {
		c, err := u.campaigns.Get(ctx, campaignID)
		if err != nil {
			return nil, err
		}
		if err = authorize(actor, c.AdvertiserID, "campaign"); err != nil {
			return nil, err
		}
	}
	return u.payments.List(ctx, port.PaymentFilter{AdvertiserID: scope(actor), CampaignID: campaignID})
}

func (u *PaymentUseCase) confirm(ctx context.Context, reference string, providerRef *string, source string) (port.FundingResult, error) {
	res, err := u.payments.ConfirmFunding(ctx, port.ConfirmFundingParams{
		Reference:         reference,
		ProviderReference: providerRef,
		VerifiedAt:        u.now(),
	})
	if err != nil {
		metrics.Webhook(webhookError)
		u.logger.Error("payment confirmation failed",
			slog.String("reference", reference),
			slog.String("source", source),
			slog.Any("error", err),
		)
		return res, err
	}
	if !res.Applied {
		metrics.Webhook(webhookDuplicate)
		u.logger.Info("payment already settled",
			slog.String("reference", reference),
			slog.String("status", string(res.Payment.Status)),
			slog.String("source", source),
		)
		return res, nil
	}

	metrics.Webhook(webhookApplied)
	attrs := []any{
		slog.String("reference", reference),
		slog.Int64("campaign_id", res.Payment.CampaignID),
		slog.String("source", source),
	}
	if res.Campaign != nil {
		attrs = append(attrs, slog.String("campaign_status", string(res.Campaign.Status)))
		if res.CampaignTransitioned {
			metrics.Transition(string(res.Campaign.Status))
		}
	}
	u.logger.Info("payment confirmed", attrs...)
	return res, nil
}

func (u *PaymentUseCase) fail(ctx context.Context, reference string, providerRef *string, source string) (*domain.Payment, error) {
	p, changed, err := u.payments.MarkFailed(ctx, reference, providerRef, u.now())
	if err != nil {
		metrics.Webhook(webhookError)
		return nil, err
	}
	if changed {
		metrics.Webhook(webhookFailed)
		u.logger.Info("payment failed",
			slog.String("reference", reference),
			slog.Int64("campaign_id", p.CampaignID),
			slog.String("source", source),
		)
	} else {
		metrics.Webhook(webhookDuplicate)
	}
	return p, nil
}

func providerReference(s string) *string {
	if s == "" || s == "0" {
		return nil
	}
	return &s
}
