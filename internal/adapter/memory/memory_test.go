package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adserve/internal/core/domain"
	"adserve/internal/core/port"
)

var now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func seedActive(t *testing.T, s *Store, budget int64) *domain.Campaign {
	t.Helper()
	ctx := context.Background()
	c := &domain.Campaign{
		AdvertiserID: uuid.New(),
		Name:         "c",
		Budget:       budget,
		StartDate:    now.Add(-time.Hour),
		EndDate:      now.Add(24 * time.Hour),
	}
	require.NoError(t, s.Campaigns().Create(ctx, c))
	activated, err := s.Campaigns().Transition(ctx, c.ID, domain.AllCampaignStatuses, domain.CampaignActive, now)
	require.NoError(t, err)
	return activated
}

func TestConsumeImpressionNeverOverspends(t *testing.T) {
	s := NewStore()
	c := seedActive(t, s, 1000)
	repo := s.Campaigns()

	var ok, exhausted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.ConsumeImpression(context.Background(), c.ID, 30, now)
			switch {
			case err == nil:
				ok.Add(1)
			case domain.IsBudgetExhausted(err):
				exhausted.Add(1)
			default:
				assert.ErrorIs(t, err, domain.ErrCampaignNotServable)
			}
		}()
	}
	wg.Wait()

	got, err := repo.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(33), ok.Load())
	assert.Equal(t, int64(990), got.Spent)
	assert.Equal(t, got.Spent, got.CurrentImpressions*30)
	assert.Equal(t, domain.CampaignCompleted, got.Status)
	assert.LessOrEqual(t, got.Spent, got.Budget)
}

func TestTransitionGuardsSourceStatus(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	c := &domain.Campaign{AdvertiserID: uuid.New(), Name: "x", Budget: 10, StartDate: now, EndDate: now.Add(time.Hour)}
	require.NoError(t, s.Campaigns().Create(ctx, c))
	assert.Equal(t, domain.CampaignDraft, c.Status)

	_, err := s.Campaigns().Transition(ctx, c.ID, []domain.CampaignStatus{domain.CampaignPaused}, domain.CampaignActive, now)
	assert.True(t, domain.IsConflict(err))

	_, err = s.Campaigns().Transition(ctx, 999, []domain.CampaignStatus{domain.CampaignDraft}, domain.CampaignActive, now)
	assert.True(t, domain.IsNotFound(err))
}

func TestDeleteCascadesCreatives(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Zones().Create(ctx, &domain.Zone{Code: "sidebar", Type: "banner", PricePerView: 100}))

	c := &domain.Campaign{AdvertiserID: uuid.New(), Name: "x", Budget: 10, StartDate: now, EndDate: now.Add(time.Hour)}
	require.NoError(t, s.Campaigns().Create(ctx, c))
	cr := &domain.Creative{CampaignID: c.ID, ZoneCode: "sidebar", Type: domain.CreativeImage, Format: "PNG", URL: "u"}
	require.NoError(t, s.Creatives().Create(ctx, cr))
	assert.Equal(t, int64(100), cr.PricePerView)
	assert.Equal(t, "png", cr.Format)

	d := &domain.Dispute{AdvertiserID: c.AdvertiserID, CampaignID: &c.ID, Subject: "s", Description: "d"}
	require.NoError(t, s.Disputes().Create(ctx, d))

	require.NoError(t, s.Campaigns().Delete(ctx, c.ID))
	_, err := s.Creatives().Get(ctx, cr.ID)
	assert.True(t, domain.IsNotFound(err))
	kept, err := s.Disputes().Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.CampaignID)
}

func TestDeleteRefusesReferencedCampaign(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	c := &domain.Campaign{AdvertiserID: uuid.New(), Name: "x", Budget: 10, StartDate: now, EndDate: now.Add(time.Hour)}
	require.NoError(t, s.Campaigns().Create(ctx, c))
	require.NoError(t, s.Payments().Create(ctx, &domain.Payment{
		Reference: "r1", CampaignID: c.ID, Amount: 10, Type: domain.PaymentAdvertisement,
	}))
	assert.True(t, domain.IsConflict(s.Campaigns().Delete(ctx, c.ID)))
}

func TestPriceLockSurvivesZonePriceChange(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Zones().Create(ctx, &domain.Zone{Code: "sidebar", Type: "banner", PricePerView: 100}))
	c := seedActive(t, s, 1000)

	cr := &domain.Creative{CampaignID: c.ID, ZoneCode: "sidebar", Type: domain.CreativeImage, Format: "png", URL: "u"}
	require.NoError(t, s.Creatives().Create(ctx, cr))
	_, err := s.Zones().SetPrice(ctx, "sidebar", 400, now)
	require.NoError(t, err)

	stored, err := s.Creatives().Get(ctx, cr.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), stored.PricePerView)

	require.NoError(t, s.Creatives().Update(ctx, stored, port.CreativeWrite{Rebind: true}))
	assert.Equal(t, int64(400), stored.PricePerView)
}

func TestEligibleForZone(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Zones().Create(ctx, &domain.Zone{Code: "sidebar", Type: "banner", PricePerView: 100}))

	live := seedActive(t, s, 1000)
	ended := seedActive(t, s, 1000)
	row, _ := s.row(ended.ID)
	row.c.EndDate = now.Add(-time.Minute)

	for _, id := range []int64{live.ID, ended.ID} {
		require.NoError(t, s.Creatives().Create(ctx, &domain.Creative{
			CampaignID: id, ZoneCode: "sidebar", Type: domain.CreativeImage, Format: "png", URL: "u",
		}))
	}

	got, err := s.Creatives().EligibleForZone(ctx, "sidebar", now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, live.ID, got[0].Campaign.ID)

	_, err = s.Zones().SetStatus(ctx, "sidebar", domain.ZoneInactive, now)
	require.NoError(t, err)
	got, err = s.Creatives().EligibleForZone(ctx, "sidebar", now)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestConfirmFundingAppliesOnce(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	c := &domain.Campaign{AdvertiserID: uuid.New(), Name: "x", Budget: 500, StartDate: now, EndDate: now.Add(time.Hour)}
	require.NoError(t, s.Campaigns().Create(ctx, c))
	_, err := s.Campaigns().Transition(ctx, c.ID, []domain.CampaignStatus{domain.CampaignDraft}, domain.CampaignPendingPayment, now)
	require.NoError(t, err)
	require.NoError(t, s.Payments().Create(ctx, &domain.Payment{
		Reference: "ref", AdvertiserID: c.AdvertiserID, CampaignID: c.ID, Amount: 500, Type: domain.PaymentAdvertisement,
	}))

	var applied atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.Payments().ConfirmFunding(ctx, port.ConfirmFundingParams{Reference: "ref", VerifiedAt: now})
			assert.NoError(t, err)
			if res.Applied {
				applied.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), applied.Load())
	got, err := s.Campaigns().Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignActive, got.Status)
	require.NotNil(t, got.FundedAt)

	sum, err := s.Payments().SumSuccessful(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), sum)

	p, changed, err := s.Payments().MarkFailed(ctx, "ref", nil, now)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, domain.PaymentSuccessful, p.Status)
}

func TestExpireOverdue(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	live := seedActive(t, s, 100)
	overdue := seedActive(t, s, 100)
	paused := seedActive(t, s, 100)
	for _, id := range []int64{overdue.ID, paused.ID} {
		row, _ := s.row(id)
		row.c.EndDate = now.Add(-time.Hour)
	}
	_, err := s.Campaigns().Transition(ctx, paused.ID, []domain.CampaignStatus{domain.CampaignActive}, domain.CampaignPaused, now)
	require.NoError(t, err)

	ids, err := s.Campaigns().ExpireOverdue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []int64{overdue.ID}, ids)

	got, _ := s.Campaigns().Get(ctx, live.ID)
	assert.Equal(t, domain.CampaignActive, got.Status)
	got, _ = s.Campaigns().Get(ctx, paused.ID)
	assert.Equal(t, domain.CampaignPaused, got.Status)
}

func TestDailyCapLeavesCampaignActive(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	c := seedActive(t, s, 1000)
	row, _ := s.row(c.ID)
	daily := int64(200)
	row.c.DailyBudget = &daily
	repo := s.Campaigns()

	for i := 0; i < 2; i++ {
		_, err := repo.ConsumeImpression(ctx, c.ID, 100, now)
		require.NoError(t, err)
	}
	_, err := repo.ConsumeImpression(ctx, c.ID, 100, now)
	assert.ErrorIs(t, err, domain.ErrDailyCapReached)

	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignActive, got.Status)
	assert.Equal(t, int64(200), got.Spent)

	// 01:00 UTC the next day, still inside the window.
	_, err = repo.ConsumeImpression(ctx, c.ID, 100, now.Add(13*time.Hour))
	require.NoError(t, err)
	got, err = repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(300), got.Spent)
	assert.Equal(t, int64(100), got.SpentToday)
}

func TestCreativeListFilters(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Zones().Create(ctx, &domain.Zone{Code: "sidebar", Type: "banner", PricePerView: 100}))
	require.NoError(t, s.Zones().Create(ctx, &domain.Zone{Code: "header", Type: "banner", PricePerView: 50}))

	live := seedActive(t, s, 1000)
	ended := seedActive(t, s, 1000)
	row, _ := s.row(ended.ID)
	row.c.EndDate = now.Add(-time.Minute)

	summer := &domain.Creative{CampaignID: live.ID, ZoneCode: "sidebar", Type: domain.CreativeImage, Format: "png",
		URL: "https://cdn.example/summer.png", Width: 300, Height: 250}
	banner := &domain.Creative{CampaignID: live.ID, ZoneCode: "header", Type: domain.CreativeImage, Format: "jpg",
		URL: "https://cdn.example/banner.jpg", Width: 728, Height: 90}
	old := &domain.Creative{CampaignID: ended.ID, ZoneCode: "sidebar", Type: domain.CreativeImage, Format: "gif",
		URL: "https://cdn.example/old.gif", Width: 300, Height: 250}
	for _, cr := range []*domain.Creative{summer, banner, old} {
		require.NoError(t, s.Creatives().Create(ctx, cr))
	}
	require.NoError(t, s.Creatives().IncrementViews(ctx, summer.ID, 5))
	require.NoError(t, s.Creatives().IncrementViews(ctx, banner.ID, 9))
	require.NoError(t, s.Creatives().IncrementViews(ctx, old.ID, 1))

	ids := func(f domain.CreativeFilter) []int64 {
		t.Helper()
		got, err := s.Creatives().List(ctx, f)
		require.NoError(t, err)
		out := make([]int64, 0, len(got))
		for _, cr := range got {
			out = append(out, cr.ID)
		}
		return out
	}

	assert.Equal(t, []int64{summer.ID, banner.ID}, ids(domain.CreativeFilter{CampaignID: live.ID}))
	assert.Equal(t, []int64{summer.ID, old.ID}, ids(domain.CreativeFilter{ZoneCode: "sidebar"}))
	assert.Equal(t, []int64{summer.ID, old.ID}, ids(domain.CreativeFilter{Width: 300, Height: 250}))
	assert.Equal(t, []int64{summer.ID}, ids(domain.CreativeFilter{Query: "SUMMER"}))
	assert.Equal(t, []int64{summer.ID, banner.ID}, ids(domain.CreativeFilter{ActiveAt: &now}))
	assert.Equal(t, []int64{banner.ID, summer.ID}, ids(domain.CreativeFilter{TopN: 2}))
	assert.Equal(t, []int64{old.ID}, ids(domain.CreativeFilter{ZoneCode: "sidebar", TopN: 5, Width: 300, Query: "gif"}))
}

func TestIncrementViewsCountsOnCampaign(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Zones().Create(ctx, &domain.Zone{Code: "sidebar", Type: "banner", PricePerView: 100}))
	c := seedActive(t, s, 1000)
	cr := &domain.Creative{CampaignID: c.ID, ZoneCode: "sidebar", Type: domain.CreativeImage, Format: "png", URL: "u"}
	require.NoError(t, s.Creatives().Create(ctx, cr))

	require.NoError(t, s.Creatives().IncrementViews(ctx, cr.ID, 1))
	require.NoError(t, s.Creatives().IncrementViews(ctx, cr.ID, 2))

	stored, err := s.Creatives().Get(ctx, cr.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.NumberOfViews)
	camp, err := s.Campaigns().Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), camp.ViewsDelivered)

	assert.True(t, domain.IsNotFound(s.Creatives().IncrementViews(ctx, 999, 1)))
}

func TestUpdateCreativeDoesNotOverwriteViews(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Zones().Create(ctx, &domain.Zone{Code: "sidebar", Type: "banner", PricePerView: 100}))
	c := seedActive(t, s, 1000)
	cr := &domain.Creative{CampaignID: c.ID, ZoneCode: "sidebar", Type: domain.CreativeImage, Format: "png", URL: "u"}
	require.NoError(t, s.Creatives().Create(ctx, cr))

	read, err := s.Creatives().Get(ctx, cr.ID)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Creatives().IncrementViews(ctx, cr.ID, 1))
	}
	read.Width = 300
	require.NoError(t, s.Creatives().Update(ctx, read, port.CreativeWrite{}))
	assert.Equal(t, int64(5), read.NumberOfViews)

	stored, err := s.Creatives().Get(ctx, cr.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stored.NumberOfViews)
	assert.Equal(t, 300, stored.Width)

	require.NoError(t, s.Creatives().Update(ctx, stored, port.CreativeWrite{ResetViews: true}))
	stored, err = s.Creatives().Get(ctx, cr.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.NumberOfViews)
	camp, err := s.Campaigns().Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), camp.ViewsDelivered)
}
