package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"adserve/internal/core/domain"
	"adserve/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository on a Store.
type CampaignRepository struct {
	s *Store
}

func (r *CampaignRepository) Create(_ context.Context, c *domain.Campaign) error {
	now := time.Now().UTC()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.campaignSeq++
	c.ID = r.s.campaignSeq
	c.Status = domain.CampaignDraft
	c.CurrentImpressions, c.CurrentClicks, c.ViewsDelivered = 0, 0, 0
	c.Spent, c.SpentToday = 0, 0
	c.SpentDay = domain.UTCDay(now)
	c.FundedAt = nil
	c.CreatedAt, c.UpdatedAt = now, now
	r.s.campaigns[c.ID] = &campaignRow{c: *c}
	return nil
}

func (r *CampaignRepository) Get(_ context.Context, id int64) (*domain.Campaign, error) {
	row, ok := r.s.row(id)
	if !ok {
		return nil, domain.NewNotFoundError("campaign", id)
	}
	c := row.snapshot()
	return &c, nil
}

func (r *CampaignRepository) Update(_ context.Context, c *domain.Campaign) error {
	row, ok := r.s.row(c.ID)
	if !ok {
		return domain.NewNotFoundError("campaign", c.ID)
	}
	row.mu.Lock()
	defer row.mu.Unlock()
	if !row.c.Editable() {
		return domain.NewConflictError("CAMPAIGN_LOCKED",
			fmt.Sprintf("campaign %d can only be edited in %s", c.ID, domain.CampaignDraft), nil)
	}
	row.c.Name = c.Name
	row.c.Budget = c.Budget
	row.c.DailyBudget = c.DailyBudget
	row.c.TargetImpressions = c.TargetImpressions
	row.c.StartDate = c.StartDate
	row.c.EndDate = c.EndDate
	row.c.UpdatedAt = time.Now().UTC()
	*c = row.c
	return nil
}

func (r *CampaignRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.campaigns[id]
	if !ok {
		return domain.NewNotFoundError("campaign", id)
	}
	row.mu.Lock()
	defer row.mu.Unlock()
	if !row.c.Editable() {
		return domain.NewConflictError("CAMPAIGN_LOCKED",
			fmt.Sprintf("campaign %d can only be deleted in %s", id, domain.CampaignDraft), nil)
	}
	for _, p := range r.s.payments {
		if p.CampaignID == id {
			return domain.NewConflictError("CAMPAIGN_HAS_PAYMENTS",
				fmt.Sprintf("campaign %d is referenced by payments", id), nil)
		}
	}
	for cid, cr := range r.s.creatives {
		if cr.CampaignID == id {
			delete(r.s.creatives, cid)
		}
	}
	for _, d := range r.s.disputes {
		if d.CampaignID != nil && *d.CampaignID == id {
			d.CampaignID = nil
		}
	}
	delete(r.s.campaigns, id)
	return nil
}

func (r *CampaignRepository) List(_ context.Context, f port.CampaignFilter) ([]domain.Campaign, error) {
	r.s.mu.RLock()
	rows := make([]*campaignRow, 0, len(r.s.campaigns))
	for _, row := range r.s.campaigns {
		rows = append(rows, row)
	}
	r.s.mu.RUnlock()

	out := make([]domain.Campaign, 0, len(rows))
	for _, row := range rows {
		c := row.snapshot()
		if f.AdvertiserID != nil && c.AdvertiserID != *f.AdvertiserID {
			continue
		}
		if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, c.Status) {
			continue
		}
		if f.EndedBefore != nil && !c.EndDate.Before(*f.EndedBefore) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CampaignRepository) Transition(_ context.Context, id int64, from []domain.CampaignStatus, to domain.CampaignStatus, now time.Time) (*domain.Campaign, error) {
	row, ok := r.s.row(id)
	if !ok {
		return nil, domain.NewNotFoundError("campaign", id)
	}
	row.mu.Lock()
	defer row.mu.Unlock()
	if !slices.Contains(from, row.c.Status) {
		return nil, domain.NewConflictError(
			"ILLEGAL_TRANSITION",
			fmt.Sprintf("campaign %d is %s, cannot move to %s", id, row.c.Status, to),
			domain.ErrIllegalTransition,
		)
	}
	row.c.Status = to
	row.c.UpdatedAt = now
	c := row.c
	return &c, nil
}

func (r *CampaignRepository) ConsumeImpression(_ context.Context, id int64, price int64, now time.Time) (*domain.Campaign, error) {
	row, ok := r.s.row(id)
	if !ok {
		return nil, domain.NewNotFoundError("campaign", id)
	}
	row.mu.Lock()
	defer row.mu.Unlock()
	if err := row.c.Debit(price, now); err != nil {
		if errors.Is(err, domain.ErrBudgetExhausted) {
			return nil, domain.NewBudgetExhaustedError(id)
		}
		return nil, err
	}
	c := row.c
	return &c, nil
}

func (r *CampaignRepository) RecordClick(_ context.Context, id int64) error {
	row, ok := r.s.row(id)
	if !ok {
		return domain.NewNotFoundError("campaign", id)
	}
	row.mu.Lock()
	row.c.CurrentClicks++
	row.mu.Unlock()
	return nil
}

func (r *CampaignRepository) ExpireOverdue(_ context.Context, now time.Time) ([]int64, error) {
	sources := domain.SourcesFor(domain.EventExpire)

	r.s.mu.RLock()
	rows := make([]*campaignRow, 0, len(r.s.campaigns))
	for _, row := range r.s.campaigns {
		rows = append(rows, row)
	}
	r.s.mu.RUnlock()

	var expired []int64
	for _, row := range rows {
		row.mu.Lock()
		if slices.Contains(sources, row.c.Status) && now.After(row.c.EndDate) {
			row.c.Status = domain.CampaignExpired
			row.c.UpdatedAt = now
			expired = append(expired, row.c.ID)
		}
		row.mu.Unlock()
	}
	slices.Sort(expired)
	return expired, nil
}
