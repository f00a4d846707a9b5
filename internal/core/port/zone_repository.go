package port

import (
	"context"
	"time"

	"adserve/internal/core/domain"
)

// ZoneRepository stores the placement catalog.
type ZoneRepository interface {
	// Create stores a new zone. A duplicate code yields a conflict error.
	Create(ctx context.Context, z *domain.Zone) error
	Get(ctx context.Context, code string) (*domain.Zone, error)
	// List returns every zone ordered by code.
	List(ctx context.Context) ([]domain.Zone, error)
	// ListActive returns active zones ordered by price ascending.
	ListActive(ctx context.Context) ([]domain.Zone, error)
	SetPrice(ctx context.Context, code string, price int64, now time.Time) (*domain.Zone, error)
	SetStatus(ctx context.Context, code string, status domain.ZoneStatus, now time.Time) (*domain.Zone, error)
}

// ZoneCache caches the active zone listing. A miss is reported with ok
// false and a nil error.
type ZoneCache interface {
	GetActive(ctx context.Context) (zones []domain.Zone, ok bool, err error)
	SetActive(ctx context.Context, zones []domain.Zone) error
	Invalidate(ctx context.Context) error
}
