package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"adserve/internal/core/domain"
	"adserve/internal/core/port"
)

// CreativeRepository implements port.CreativeRepository on a Store.
type CreativeRepository struct {
	s *Store
}

func (r *CreativeRepository) Create(_ context.Context, c *domain.Creative) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.campaigns[c.CampaignID]; !ok {
		return domain.NewNotFoundError("campaign", c.CampaignID)
	}
	z, ok := r.s.zones[c.ZoneCode]
	if !ok {
		return domain.NewNotFoundError("zone", c.ZoneCode)
	}
	now := time.Now().UTC()
	r.s.creativeSeq++
	c.ID = r.s.creativeSeq
	c.Format = strings.ToLower(c.Format)
	c.PricePerView = z.PricePerView
	c.NumberOfViews = 0
	c.CreatedAt, c.UpdatedAt = now, now
	stored := *c
	r.s.creatives[c.ID] = &stored
	return nil
}

func (r *CreativeRepository) Get(_ context.Context, id int64) (*domain.Creative, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.creatives[id]
	if !ok {
		return nil, domain.NewNotFoundError("creative", id)
	}
	return clonePtr(c), nil
}

func (r *CreativeRepository) Update(_ context.Context, c *domain.Creative, w port.CreativeWrite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.creatives[c.ID]
	if !ok {
		return domain.NewNotFoundError("creative", c.ID)
	}
	c.NumberOfViews = current.NumberOfViews
	if w.ResetViews {
		c.NumberOfViews = 0
	}
	c.PricePerView = current.PricePerView
	if w.Rebind {
		z, ok := r.s.zones[c.ZoneCode]
		if !ok {
			return domain.NewNotFoundError("zone", c.ZoneCode)
		}
		c.PricePerView = z.PricePerView
	}
	c.UpdatedAt = time.Now().UTC()
	stored := *c
	r.s.creatives[c.ID] = &stored
	return nil
}

func (r *CreativeRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.creatives[id]; !ok {
		return domain.NewNotFoundError("creative", id)
	}
	delete(r.s.creatives, id)
	return nil
}

func (r *CreativeRepository) List(_ context.Context, f domain.CreativeFilter) ([]domain.Creative, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]domain.Creative, 0)
	for _, c := range r.s.creatives {
		if f.CampaignID != 0 && c.CampaignID != f.CampaignID {
			continue
		}
		if f.ZoneCode != "" && c.ZoneCode != f.ZoneCode {
			continue
		}
		if f.Width != 0 && c.Width != f.Width {
			continue
		}
		if f.Height != 0 && c.Height != f.Height {
			continue
		}
		if q != "" && !matchesQuery(c, q) {
			continue
		}
		if f.ActiveAt != nil {
			row, ok := r.s.campaigns[c.CampaignID]
			if !ok {
				continue
			}
			camp := row.snapshot()
			if !camp.Servable(*f.ActiveAt) {
				continue
			}
		}
		out = append(out, *c)
	}
	if f.TopN > 0 {
		sort.Slice(out, func(i, j int) bool {
			if out[i].NumberOfViews != out[j].NumberOfViews {
				return out[i].NumberOfViews > out[j].NumberOfViews
			}
			return out[i].ID < out[j].ID
		})
		if len(out) > f.TopN {
			out = out[:f.TopN]
		}
		return out, nil
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func matchesQuery(c *domain.Creative, q string) bool {
	fields := []string{c.URL, c.ZoneCode, c.Format, string(c.Type)}
	if c.DestinationURL != nil {
		fields = append(fields, *c.DestinationURL)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func (r *CreativeRepository) IncrementViews(_ context.Context, id int64, by int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.creatives[id]
	if !ok {
		return domain.NewNotFoundError("creative", id)
	}
	c.NumberOfViews += by
	if row, ok := r.s.campaigns[c.CampaignID]; ok {
		row.mu.Lock()
		row.c.ViewsDelivered += by
		row.mu.Unlock()
	}
	return nil
}

func (r *CreativeRepository) EligibleForZone(_ context.Context, zoneCode string, now time.Time) ([]port.CreativeCandidate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	z, ok := r.s.zones[zoneCode]
	if !ok || z.Status != domain.ZoneActive {
		return nil, nil
	}
	var out []port.CreativeCandidate
	for _, c := range r.s.creatives {
		if c.ZoneCode != zoneCode {
			continue
		}
		row, ok := r.s.campaigns[c.CampaignID]
		if !ok {
			continue
		}
		camp := row.snapshot()
		if !camp.Servable(now) {
			continue
		}
		out = append(out, port.CreativeCandidate{Creative: *c, Campaign: camp})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Creative.ID < out[j].Creative.ID })
	return out, nil
}
