package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"adserve/internal/core/domain"
	"adserve/internal/core/port"
)

// CreativeUseCase manages creatives on behalf of their campaign owner.
type CreativeUseCase struct {
	creatives port.CreativeRepository
	campaigns port.CampaignRepository
	logger    *slog.Logger
}

func NewCreativeUseCase(creatives port.CreativeRepository, campaigns port.CampaignRepository, logger *slog.Logger) *CreativeUseCase {
	return &CreativeUseCase{creatives: creatives, campaigns: campaigns, logger: logger}
}

func (u *CreativeUseCase) ownedCampaign(ctx context.Context, actor domain.Actor, campaignID int64) (*domain.Campaign, error) {
	c, err := u.campaigns.Get(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err = authorize(actor, c.AdvertiserID, "campaign"); err != nil {
		return nil, err
	}
	return c, nil
}

// Create validates n, including its type/format pair, and binds it to its
// zone at the zone's current price.
func (u *CreativeUseCase) Create(ctx context.Context, actor domain.Actor, n domain.NewCreative) (*domain.Creative, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	c, err := u.ownedCampaign(ctx, actor, n.CampaignID)
	if err != nil {
		return nil, err
	}
	if c.Status.Terminal() {
		return nil, domain.NewConflictError("CAMPAIGN_CLOSED",
			fmt.Sprintf("campaign %d is %s", c.ID, c.Status), nil)
	}
	cr := domain.Creative{
		CampaignID:     n.CampaignID,
		ZoneCode:       n.ZoneCode,
		Type:           n.Type,
		Format:         n.Format,
		URL:            n.URL,
		DestinationURL: n.DestinationURL,
		Width:          n.Width,
		Height:         n.Height,
	}
	if err = u.creatives.Create(ctx, &cr); err != nil {
		return nil, err
	}
	u.logger.Info("creative created",
		slog.Int64("creative_id", cr.ID),
		slog.Int64("campaign_id", cr.CampaignID),
		slog.String("zone", cr.ZoneCode),
		slog.Int64("price_per_view", cr.PricePerView),
	)
	return &cr, nil
}

func (u *CreativeUseCase) Get(ctx context.Context, id int64) (*domain.Creative, error) {
	return u.creatives.Get(ctx, id)
}

// Update applies patch. Moving the creative to another zone re-locks the
// price from that zone.
func (u *CreativeUseCase) Update(ctx context.Context, actor domain.Actor, id int64, patch domain.CreativePatch) (*domain.Creative, error) {
	cr, err := u.creatives.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err = u.ownedCampaign(ctx, actor, cr.CampaignID); err != nil {
		return nil, err
	}
	updated, err := patch.Apply(*cr)
	if err != nil {
		return nil, err
	}
	write := port.CreativeWrite{
		Rebind:     updated.ZoneCode != cr.ZoneCode,
		ResetViews: patch.ResetViews,
	}
	if err = u.creatives.Update(ctx, &updated, write); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (u *CreativeUseCase) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	cr, err := u.creatives.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err = u.ownedCampaign(ctx, actor, cr.CampaignID); err != nil {
		return err
	}
	return u.creatives.Delete(ctx, id)
}

func (u *CreativeUseCase) List(ctx context.Context, f domain.CreativeFilter) ([]domain.Creative, error) {
	if f.TopN < 0 {
		return nil, domain.NewValidationError("INVALID_LIMIT", "top must not be negative")
	}
	return u.creatives.List(ctx, f)
}

func (u *CreativeUseCase) IncrementViews(ctx context.Context, id int64, by int64) error {
	if by <= 0 {
		return domain.NewValidationError("INVALID_INCREMENT", "increment must be greater than zero")
	}
	return u.creatives.IncrementViews(ctx, id, by)
}
