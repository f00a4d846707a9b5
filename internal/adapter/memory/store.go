// Package memory keeps all engine state in process. Campaign rows carry
// their own mutex so debits on different campaigns never contend; the store
// lock only guards the maps and the advisory creative counters.
//
// Lock order is always Store.mu before campaignRow.mu.
package memory

import (
	"sync"

	"adserve/internal/core/domain"
)

type campaignRow struct {
	mu sync.Mutex
	c  domain.Campaign
}

func (r *campaignRow) snapshot() domain.Campaign {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.c
}

// Store is the shared state behind the memory repositories.
type Store struct {
	mu        sync.RWMutex
	zones     map[string]*domain.Zone
	campaigns map[int64]*campaignRow
	creatives map[int64]*domain.Creative
	payments  map[string]*domain.Payment
	disputes  map[int64]*domain.Dispute

	campaignSeq int64
	creativeSeq int64
	paymentSeq  int64
	disputeSeq  int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		zones:     make(map[string]*domain.Zone),
		campaigns: make(map[int64]*campaignRow),
		creatives: make(map[int64]*domain.Creative),
		payments:  make(map[string]*domain.Payment),
		disputes:  make(map[int64]*domain.Dispute),
	}
}

func (s *Store) Zones() *ZoneRepository         { return &ZoneRepository{s: s} }
func (s *Store) Campaigns() *CampaignRepository { return &CampaignRepository{s: s} }
func (s *Store) Creatives() *CreativeRepository { return &CreativeRepository{s: s} }
func (s *Store) Payments() *PaymentRepository   { return &PaymentRepository{s: s} }
func (s *Store) Disputes() *DisputeRepository   { return &DisputeRepository{s: s} }

// row returns the campaign row for id. It takes the read lock itself.
func (s *Store) row(id int64) (*campaignRow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.campaigns[id]
	return r, ok
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
