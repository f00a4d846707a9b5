package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"adserve/internal/core/domain"
)

// DisputeRepository implements port.DisputeRepository on a Store.
type DisputeRepository struct {
	s *Store
}

func (r *DisputeRepository) Create(_ context.Context, d *domain.Dispute) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d.CampaignID != nil {
		if _, ok := r.s.campaigns[*d.CampaignID]; !ok {
			return domain.NewNotFoundError("campaign", *d.CampaignID)
		}
	}
	now := time.Now().UTC()
	r.s.disputeSeq++
	d.ID = r.s.disputeSeq
	d.Status = domain.DisputeOpen
	d.AdminResponse, d.HandledBy = nil, nil
	d.CreatedAt, d.UpdatedAt = now, now
	stored := *d
	r.s.disputes[d.ID] = &stored
	return nil
}

func (r *DisputeRepository) Get(_ context.Context, id int64) (*domain.Dispute, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.disputes[id]
	if !ok {
		return nil, domain.NewNotFoundError("dispute", id)
	}
	return clonePtr(d), nil
}

func (r *DisputeRepository) List(_ context.Context, advertiserID *uuid.UUID) ([]domain.Dispute, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Dispute, 0)
	for _, d := range r.s.disputes {
		if advertiserID != nil && d.AdvertiserID != *advertiserID {
			continue
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *DisputeRepository) Advance(_ context.Context, id int64, from, to domain.DisputeStatus, response *string, handledBy uuid.UUID, now time.Time) (*domain.Dispute, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.disputes[id]
	if !ok {
		return nil, domain.NewNotFoundError("dispute", id)
	}
	if d.Status != from {
		return nil, domain.NewConflictError(
			"ILLEGAL_TRANSITION",
			fmt.Sprintf("dispute %d is %s, not %s", id, d.Status, from),
			domain.ErrIllegalTransition,
		)
	}
	d.Status = to
	if response != nil {
		d.AdminResponse = clonePtr(response)
	}
	d.HandledBy = &handledBy
	d.UpdatedAt = now
	return clonePtr(d), nil
}
