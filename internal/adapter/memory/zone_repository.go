package memory

import (
	"context"
	"sort"
	"time"

	"adserve/internal/core/domain"
)

// ZoneRepository implements port.ZoneRepository on a Store.
type ZoneRepository struct {
	s *Store
}

func (r *ZoneRepository) Create(_ context.Context, z *domain.Zone) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.zones[z.Code]; ok {
		return domain.NewConflictError("ZONE_EXISTS", "zone "+z.Code+" already exists", nil)
	}
	now := time.Now().UTC()
	if z.Status == "" {
		z.Status = domain.ZoneActive
	}
	z.CreatedAt, z.UpdatedAt = now, now
	stored := *z
	r.s.zones[z.Code] = &stored
	return nil
}

func (r *ZoneRepository) Get(_ context.Context, code string) (*domain.Zone, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	z, ok := r.s.zones[code]
	if !ok {
		return nil, domain.NewNotFoundError("zone", code)
	}
	return clonePtr(z), nil
}

func (r *ZoneRepository) List(_ context.Context) ([]domain.Zone, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Zone, 0, len(r.s.zones))
	for _, z := range r.s.zones {
		out = append(out, *z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *ZoneRepository) ListActive(_ context.Context) ([]domain.Zone, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Zone, 0, len(r.s.zones))
	for _, z := range r.s.zones {
		if z.Status == domain.ZoneActive {
			out = append(out, *z)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PricePerView != out[j].PricePerView {
			return out[i].PricePerView < out[j].PricePerView
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

func (r *ZoneRepository) SetPrice(_ context.Context, code string, price int64, now time.Time) (*domain.Zone, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	z, ok := r.s.zones[code]
	if !ok {
		return nil, domain.NewNotFoundError("zone", code)
	}
	z.PricePerView = price
	z.UpdatedAt = now
	return clonePtr(z), nil
}

func (r *ZoneRepository) SetStatus(_ context.Context, code string, status domain.ZoneStatus, now time.Time) (*domain.Zone, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	z, ok := r.s.zones[code]
	if !ok {
		return nil, domain.NewNotFoundError("zone", code)
	}
	z.Status = status
	z.UpdatedAt = now
	return clonePtr(z), nil
}
