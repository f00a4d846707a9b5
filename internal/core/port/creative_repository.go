package port

import (
	"context"
	"time"

	"adserve/internal/core/domain"
)

// CreativeCandidate is a creative eligible to be served together with a
// snapshot of its campaign.
type CreativeCandidate struct {
	Creative domain.Creative
	Campaign domain.Campaign
}

// CreativeWrite selects the derived columns an update recomputes.
type CreativeWrite struct {
	// Rebind re-locks the price from the creative's (new) zone.
	Rebind bool
	// ResetViews zeroes the creative's view counter.
	ResetViews bool
}

// CreativeRepository stores creatives.
type CreativeRepository interface {
	// Create stores c, locking the zone's current price into
	// c.PricePerView. Unknown campaign or zone yields a not-found error.
	Create(ctx context.Context, c *domain.Creative) error
	Get(ctx context.Context, id int64) (*domain.Creative, error)
	// Update persists the editable fields of c and refreshes c from the
	// stored row. The view counter is never written from c, so concurrent
	// IncrementViews calls are kept.
	Update(ctx context.Context, c *domain.Creative, w CreativeWrite) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f domain.CreativeFilter) ([]domain.Creative, error)

	// IncrementViews adds by to the creative's view counter and to its
	// campaign's delivered views.
	IncrementViews(ctx context.Context, id int64, by int64) error

	// EligibleForZone returns creatives bound to an active zone whose
	// campaign is ACTIVE with startDate <= now <= endDate.
	EligibleForZone(ctx context.Context, zoneCode string, now time.Time) ([]CreativeCandidate, error)
}
