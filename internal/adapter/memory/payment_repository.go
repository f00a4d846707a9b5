package memory

import (
	"context"
	"sort"
	"time"

	"adserve/internal/core/domain"
	"adserve/internal/core/port"
)

// PaymentRepository implements port.PaymentRepository on a Store.
type PaymentRepository struct {
	s *Store
}

func (r *PaymentRepository) Create(_ context.Context, p *domain.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.payments[p.Reference]; ok {
		return domain.NewConflictError("DUPLICATE_REFERENCE", "payment reference already exists", nil)
	}
	if _, ok := r.s.campaigns[p.CampaignID]; !ok && p.Type == domain.PaymentAdvertisement {
		return domain.NewNotFoundError("campaign", p.CampaignID)
	}
	now := time.Now().UTC()
	r.s.paymentSeq++
	p.ID = r.s.paymentSeq
	p.Status = domain.PaymentPending
	p.CreatedAt, p.UpdatedAt = now, now
	stored := *p
	r.s.payments[p.Reference] = &stored
	return nil
}

func (r *PaymentRepository) GetByReference(_ context.Context, reference string) (*domain.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.payments[reference]
	if !ok {
		return nil, domain.NewNotFoundError("payment", reference)
	}
	return clonePtr(p), nil
}

func (r *PaymentRepository) List(_ context.Context, f port.PaymentFilter) ([]domain.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Payment, 0)
	for _, p := range r.s.payments {
		if f.AdvertiserID != nil && p.AdvertiserID != *f.AdvertiserID {
			continue
		}
		if f.CampaignID != 0 && p.CampaignID != f.CampaignID {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PaymentRepository) SumSuccessful(_ context.Context, campaignID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var sum int64
	for _, p := range r.s.payments {
		if p.CampaignID == campaignID && p.Status == domain.PaymentSuccessful {
			sum += p.Amount
		}
	}
	return sum, nil
}

// ConfirmFunding holds the store write lock for the whole confirmation, so
// the pending check, the payment flip and the campaign transition are one
// step for every other caller.
func (r *PaymentRepository) ConfirmFunding(_ context.Context, params port.ConfirmFundingParams) (port.FundingResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[params.Reference]
	if !ok {
		return port.FundingResult{}, domain.NewNotFoundError("payment", params.Reference)
	}
	if p.Settled() {
		return port.FundingResult{Payment: *p}, nil
	}
	if err := r.checkProviderReference(p.Reference, params.ProviderReference); err != nil {
		return port.FundingResult{}, err
	}

	now := params.VerifiedAt
	p.Status = domain.PaymentSuccessful
	if params.ProviderReference != nil {
		p.ProviderReference = clonePtr(params.ProviderReference)
	}
	p.VerifiedAt = &now
	p.UpdatedAt = now
	res := port.FundingResult{Payment: *p, Applied: true}

	row, ok := r.s.campaigns[p.CampaignID]
	if !ok {
		return res, nil
	}
	row.mu.Lock()
	defer row.mu.Unlock()
	if to, ok := row.c.FundedStatus(now); ok {
		row.c.Status = to
		if to == domain.CampaignActive {
			row.c.FundedAt = &now
		}
		row.c.UpdatedAt = now
		res.CampaignTransitioned = true
	}
	c := row.c
	res.Campaign = &c
	return res, nil
}

func (r *PaymentRepository) MarkFailed(_ context.Context, reference string, providerReference *string, now time.Time) (*domain.Payment, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[reference]
	if !ok {
		return nil, false, domain.NewNotFoundError("payment", reference)
	}
	if p.Settled() {
		return clonePtr(p), false, nil
	}
	if err := r.checkProviderReference(p.Reference, providerReference); err != nil {
		return nil, false, err
	}
	p.Status = domain.PaymentFailed
	if providerReference != nil {
		p.ProviderReference = clonePtr(providerReference)
	}
	p.UpdatedAt = now
	return clonePtr(p), true, nil
}

// checkProviderReference enforces uniqueness of gateway references. Callers
// hold the write lock.
func (r *PaymentRepository) checkProviderReference(own string, providerReference *string) error {
	if providerReference == nil {
		return nil
	}
	for ref, other := range r.s.payments {
		if ref != own && other.ProviderReference != nil && *other.ProviderReference == *providerReference {
			return domain.NewConflictError("DUPLICATE_PROVIDER_REFERENCE", "provider reference already used", nil)
		}
	}
	return nil
}
