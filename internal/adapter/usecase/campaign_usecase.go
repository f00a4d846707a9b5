package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"adserve/internal/core/domain"
	"adserve/internal/core/port"
	"adserve/internal/metrics"
)

// CampaignUseCase is the campaign ledger: lifecycle transitions, metering
// and the query surface used by controllers.
type CampaignUseCase struct {
	campaigns port.CampaignRepository
	creatives port.CreativeRepository
	logger    *slog.Logger
	now       func() time.Time
}

func NewCampaignUseCase(campaigns port.CampaignRepository, creatives port.CreativeRepository, logger *slog.Logger) *CampaignUseCase {
	return &CampaignUseCase{campaigns: campaigns, creatives: creatives, logger: logger, now: utcNow}
}

// Create stores a new DRAFT campaign owned by actor. Status and counters
// are never taken from input.
func (u *CampaignUseCase) Create(ctx context.Context, actor domain.Actor, n domain.NewCampaign) (*domain.Campaign, error) {
	if actor.ID == uuid.Nil {
		return nil, domain.NewForbiddenError("caller identity required")
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	c := domain.Campaign{
		AdvertiserID:      actor.ID,
		Name:              n.Name,
		Budget:            n.Budget,
		DailyBudget:       n.DailyBudget,
		TargetImpressions: n.TargetImpressions,
		StartDate:         n.StartDate.UTC(),
		EndDate:           n.EndDate.UTC(),
	}
	if err := u.campaigns.Create(ctx, &c); err != nil {
		return nil, err
	}
	u.logger.Info("campaign created",
		slog.Int64("campaign_id", c.ID),
		slog.String("advertiser_id", c.AdvertiserID.String()),
		slog.Int64("budget", c.Budget),
	)
	return &c, nil
}

func (u *CampaignUseCase) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Campaign, error) {
	c, err := u.campaigns.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = authorize(actor, c.AdvertiserID, "campaign"); err != nil {
		return nil, err
	}
	return c, nil
}

// Update applies patch to a DRAFT campaign.
func (u *CampaignUseCase) Update(ctx context.Context, actor domain.Actor, id int64, patch domain.CampaignPatch) (*domain.Campaign, error) {
	c, err := u.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !c.Editable() {
		return nil, domain.NewConflictError("CAMPAIGN_LOCKED",
			fmt.Sprintf("campaign %d can only be edited in %s", id, domain.CampaignDraft), nil)
	}
	updated, err := patch.Apply(*c)
	if err != nil {
		return nil, err
	}
	if err = u.campaigns.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a DRAFT campaign and its creatives. Campaigns referenced
// by payments are kept.
func (u *CampaignUseCase) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if _, err := u.Get(ctx, actor, id); err != nil {
		return err
	}
	if err := u.campaigns.Delete(ctx, id); err != nil {
		return err
	}
	u.logger.Info("campaign deleted", slog.Int64("campaign_id", id))
	return nil
}

// transition applies event to the campaign. check, when set, vetoes the
// move with its own error after the table allowed it.
func (u *CampaignUseCase) transition(ctx context.Context, c *domain.Campaign, event domain.CampaignEvent, check func(*domain.Campaign, time.Time) error) (*domain.Campaign, error) {
	now := u.now()
	to, err := domain.NextCampaignStatus(c.Status, event)
	if err != nil {
		return nil, err
	}
	if check != nil {
		if err = check(c, now); err != nil {
			return nil, err
		}
	}
	updated, err := u.campaigns.Transition(ctx, c.ID, domain.SourcesFor(event), to, now)
	if err != nil {
		return nil, err
	}
	metrics.Transition(string(to))
	u.logger.Info("campaign transitioned",
		slog.Int64("campaign_id", c.ID),
		slog.String("event", string(event)),
		slog.String("from", string(c.Status)),
		slog.String("to", string(to)),
	)
	return updated, nil
}

// Submit moves a DRAFT campaign to PENDING_PAYMENT.
func (u *CampaignUseCase) Submit(ctx context.Context, actor domain.Actor, id int64) (*domain.Campaign, error) {
	c, err := u.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return u.transition(ctx, c, domain.EventSubmit, func(c *domain.Campaign, now time.Time) error {
		if now.After(c.EndDate) {
			return domain.NewConflictError("WINDOW_ENDED",
				fmt.Sprintf("campaign %d ended at %s", c.ID, c.EndDate.Format(time.RFC3339)), nil)
		}
		return nil
	})
}

func (u *CampaignUseCase) Pause(ctx context.Context, actor domain.Actor, id int64) (*domain.Campaign, error) {
	c, err := u.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return u.transition(ctx, c, domain.EventPause, nil)
}

// Resume reactivates a PAUSED campaign that is still in window and has
// budget and target left.
func (u *CampaignUseCase) Resume(ctx context.Context, actor domain.Actor, id int64) (*domain.Campaign, error) {
	c, err := u.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return u.transition(ctx, c, domain.EventResume, func(c *domain.Campaign, now time.Time) error {
		if !c.CanResume(now) {
			return domain.NewConflictError("CANNOT_RESUME",
				fmt.Sprintf("campaign %d is out of window or has nothing left to deliver", c.ID), nil)
		}
		return nil
	})
}

// Reject is a moderation decision on a campaign awaiting payment.
func (u *CampaignUseCase) Reject(ctx context.Context, actor domain.Actor, id int64) (*domain.Campaign, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	c, err := u.campaigns.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.transition(ctx, c, domain.EventReject, nil)
}

func (u *CampaignUseCase) Reconcile(ctx context.Context, actor domain.Actor, id int64) (*domain.Campaign, error) {
	c, err := u.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !u.now().After(c.EndDate) || !slices.Contains(domain.SourcesFor(domain.EventExpire), c.Status) {
		return c, nil
	}
	updated, err := u.transition(ctx, c, domain.EventExpire, nil)
	if domain.IsConflict(err) {
		// moved by a concurrent debit or sweep; report what is stored now
		return u.campaigns.Get(ctx, id)
	}
	return updated, err
}

// ConsumeImpression debits one impression. On exhaustion the repository has
// already completed the campaign.
func (u *CampaignUseCase) ConsumeImpression(ctx context.Context, campaignID, price int64) (domain.CampaignStatus, error) {
	c, err := u.campaigns.ConsumeImpression(ctx, campaignID, price, u.now())
	if err != nil {
		if domain.IsBudgetExhausted(err) {
			metrics.BudgetExhausted()
			metrics.Transition(string(domain.CampaignCompleted))
			u.logger.Info("campaign exhausted", slog.Int64("campaign_id", campaignID), slog.Int64("price", price))
			return domain.CampaignCompleted, err
		}
		return "", err
	}
	if c.Status == domain.CampaignCompleted {
		metrics.Transition(string(domain.CampaignCompleted))
		u.logger.Info("campaign completed", slog.Int64("campaign_id", campaignID), slog.Int64("spent", c.Spent))
	}
	return c.Status, nil
}

func (u *CampaignUseCase) RecordClick(ctx context.Context, campaignID int64) error {
	return u.campaigns.RecordClick(ctx, campaignID)
}

// EligibleForZone returns the serving candidates of zoneCode at now.
// Budget is not checked here: the debit decides, and a campaign whose
// remainder cannot pay is completed by the debit that fails.
func (u *CampaignUseCase) EligibleForZone(ctx context.Context, zoneCode string, now time.Time) ([]port.CreativeCandidate, error) {
	return u.creatives.EligibleForZone(ctx, zoneCode, now)
}

func (u *CampaignUseCase) Active(ctx context.Context, advertiserID *uuid.UUID) ([]domain.Campaign, error) {
	return u.campaigns.List(ctx, port.CampaignFilter{
		AdvertiserID: advertiserID,
		Statuses:     []domain.CampaignStatus{domain.CampaignActive},
	})
}

func (u *CampaignUseCase) Pending(ctx context.Context, advertiserID *uuid.UUID) ([]domain.Campaign, error) {
	return u.campaigns.List(ctx, port.CampaignFilter{
		AdvertiserID: advertiserID,
		Statuses:     []domain.CampaignStatus{domain.CampaignDraft, domain.CampaignPendingPayment},
	})
}

func (u *CampaignUseCase) Expired(ctx context.Context, advertiserID *uuid.UUID) ([]domain.Campaign, error) {
	now := u.now()
	return u.campaigns.List(ctx, port.CampaignFilter{
		AdvertiserID: advertiserID,
		EndedBefore:  &now,
	})
}

// Stats returns the delivery counters of a campaign.
func (u *CampaignUseCase) Stats(ctx context.Context, actor domain.Actor, id int64) (*port.CampaignStats, error) {
	c, err := u.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	stats := &port.CampaignStats{
		CampaignID:  c.ID,
		Status:      c.Status,
		Impressions: c.CurrentImpressions,
		Clicks:      c.CurrentClicks,
		Views:       c.ViewsDelivered,
		Spent:       c.Spent,
		Remaining:   c.RemainingBudget(),
	}
	if c.CurrentImpressions > 0 {
		stats.CTR = float64(c.CurrentClicks) / float64(c.CurrentImpressions)
	}
	return stats, nil
}

// isRetryable reports whether a failed debit should make serving try
// another campaign instead of failing the request.
func isRetryable(err error) bool {
	return domain.IsBudgetExhausted(err) ||
		errors.Is(err, domain.ErrDailyCapReached) ||
		errors.Is(err, domain.ErrCampaignNotServable) ||
		domain.IsNotFound(err)
}
