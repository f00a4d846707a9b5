package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"adserve/internal/core/domain"
)

// CampaignFilter narrows campaign listings. Zero fields do not filter.
type CampaignFilter struct {
	AdvertiserID *uuid.UUID
	Statuses     []domain.CampaignStatus
	// EndedBefore selects campaigns whose end date is before the given time,
	// regardless of status.
	EndedBefore *time.Time
}

// CampaignRepository is the authoritative store of campaign state and
// counters. It is an outbound port; implementations must be
// concurrency-safe and apply every counter change atomically.
type CampaignRepository interface {
	// Create stores c in DRAFT and fills its ID and timestamps.
	Create(ctx context.Context, c *domain.Campaign) error
	// Get returns a campaign or a not-found error.
	Get(ctx context.Context, id int64) (*domain.Campaign, error)
	// Update persists the commercial fields of a DRAFT campaign. A campaign
	// that left DRAFT yields a conflict error.
	Update(ctx context.Context, c *domain.Campaign) error
	// Delete removes a DRAFT campaign no payment references, cascading to
	// its creatives.
	Delete(ctx context.Context, id int64) error
	// List returns campaigns matching f ordered by id.
	List(ctx context.Context, f CampaignFilter) ([]domain.Campaign, error)

	// Transition moves the campaign to `to` only if its current status is one
	// of from. It returns the updated campaign, or a conflict error when the
	// status no longer matches.
	Transition(ctx context.Context, id int64, from []domain.CampaignStatus, to domain.CampaignStatus, now time.Time) (*domain.Campaign, error)

	// ConsumeImpression debits one impression at price as a single atomic
	// check-and-update. It returns the campaign after the debit. Failures:
	// domain.ErrBudgetExhausted (the campaign was moved to COMPLETED in the
	// same step), domain.ErrDailyCapReached, domain.ErrCampaignNotServable,
	// or a not-found error. A failed call never applies a partial debit.
	ConsumeImpression(ctx context.Context, id int64, price int64, now time.Time) (*domain.Campaign, error)

	// RecordClick increments the click counter.
	RecordClick(ctx context.Context, id int64) error

	// ExpireOverdue moves every campaign in a status that admits the expire
	// event and whose end date is before now to EXPIRED. It returns the ids
	// that were expired.
	ExpireOverdue(ctx context.Context, now time.Time) ([]int64, error)
}
