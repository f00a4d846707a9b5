package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"adserve/internal/core/domain"
	"adserve/internal/core/port"
)

type DisputeUseCase struct {
	disputes  port.DisputeRepository
	campaigns port.CampaignRepository
	logger    *slog.Logger
	now       func() time.Time
}

func NewDisputeUseCase(disputes port.DisputeRepository, campaigns port.CampaignRepository, logger *slog.Logger) *DisputeUseCase {
	return &DisputeUseCase{disputes: disputes, campaigns: campaigns, logger: logger, now: utcNow}
}

// Create opens a dispute for actor. The campaign, when given, must belong
// to the actor.
func (u *DisputeUseCase) Create(ctx context.Context, actor domain.Actor, n port.NewDispute) (*domain.Dispute, error) {
	details := map[string]string{}
	subject, description := strings.TrimSpace(n.Subject), strings.TrimSpace(n.Description)
	if subject == "" {
		details["subject"] = "subject is required"
	}
	if description == "" {
		details["description"] = "description is required"
	}
	if len(details) > 0 {
		return nil, domain.NewValidationDetails("invalid dispute", details)
	}
	if n.CampaignID != nil {
		c, err := u.campaigns.Get(ctx, *n.CampaignID)
		if err != nil {
			return nil, err
		}
		if err = authorize(actor, c.AdvertiserID, "campaign"); err != nil {
			return nil, err
		}
	}

	d := domain.Dispute{
		AdvertiserID: actor.ID,
		CampaignID:   n.CampaignID,
		Subject:      subject,
		Description:  description,
		Status:       domain.DisputeOpen,
	}
	if err := u.disputes.Create(ctx, &d); err != nil {
		return nil, err
	}
	u.logger.Info("dispute opened", slog.Int64("dispute_id", d.ID), slog.String("advertiser_id", d.AdvertiserID.String()))
	return &d, nil
}

func (u *DisputeUseCase) List(ctx context.Context, actor domain.Actor) ([]domain.Dispute, error) {
	return u.disputes.List(ctx, scope(actor))
}

func (u *DisputeUseCase) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Dispute, error) {
	d, err := u.disputes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = authorize(actor, d.AdvertiserID, "dispute"); err != nil {
		return nil, err
	}
	return d, nil
}

// Advance moves a dispute one step forward on behalf of an admin.
func (u *DisputeUseCase) Advance(ctx context.Context, actor domain.Actor, id int64, to domain.DisputeStatus, response string) (*domain.Dispute, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	d, err := u.disputes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = d.Advance(to, response); err != nil {
		return nil, err
	}
	var resp *string
	if r := strings.TrimSpace(response); r != "" {
		resp = &r
	}
	updated, err := u.disputes.Advance(ctx, id, d.Status, to, resp, actor.ID, u.now())
	if err != nil {
		return nil, err
	}
	u.logger.Info("dispute advanced",
		slog.Int64("dispute_id", id),
		slog.String("from", string(d.Status)),
		slog.String("to", string(to)),
	)
	return updated, nil
}
