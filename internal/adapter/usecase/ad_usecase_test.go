package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"adserve/internal/core/domain"
	"adserve/internal/core/port"
	"adserve/internal/core/port/mocks"
)

// TestServeExhaustsBudgetUnderConcurrency serves three requests at once
// against a campaign that can pay for two.
func TestServeExhaustsBudgetUnderConcurrency(t *testing.T) {
	e := newEnv(t)
	e.zone(t, "sidebar", 100)
	c, _ := e.active(t, 250, "sidebar")

	var served, empty atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ad, err := e.ads.Serve(context.Background(), "sidebar")
			assert.NoError(t, err)
			if ad != nil {
				served.Add(1)
			} else {
				empty.Add(1)
			}
		}()
	}
	wg.Wait()
	require.NoError(t, e.ads.Drain(context.Background()))

	assert.Equal(t, int64(2), served.Load())
	assert.Equal(t, int64(1), empty.Load())

	got, err := e.store.Campaigns().Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(200), got.Spent)
	assert.Equal(t, int64(2), got.CurrentImpressions)
	assert.Equal(t, domain.CampaignCompleted, got.Status)
}

// TestServeFanOutNeverOverspends spreads many requests over several
// campaigns sharing a zone.
func TestServeFanOutNeverOverspends(t *testing.T) {
	e := newEnv(t)
	e.zone(t, "homepage_banner", 70)
	budgets := []int64{1000, 350, 69, 700}
	ids := make([]int64, 0, len(budgets))
	for _, b := range budgets {
		c, _ := e.active(t, b, "homepage_banner")
		ids = append(ids, c.ID)
	}

	var served atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ad, err := e.ads.Serve(context.Background(), "homepage_banner")
			assert.NoError(t, err)
			if ad != nil {
				served.Add(1)
			}
		}()
	}
	wg.Wait()
	require.NoError(t, e.ads.Drain(context.Background()))

	var impressions int64
	for _, id := range ids {
		got, err := e.store.Campaigns().Get(context.Background(), id)
		require.NoError(t, err)
		assert.LessOrEqual(t, got.Spent, got.Budget)
		assert.Equal(t, got.CurrentImpressions*70, got.Spent)
		impressions += got.CurrentImpressions
	}
	assert.Equal(t, served.Load(), impressions)
	// 1000/70 + 350/70 + 0 + 700/70
	assert.LessOrEqual(t, impressions, int64(14+5+10))
}

func TestServeIgnoresCampaignPastEndDate(t *testing.T) {
	e := newEnv(t)
	e.zone(t, "sidebar", 100)
	c, _ := e.active(t, 1000, "sidebar")

	e.ads.now = func() time.Time { return c.EndDate.Add(time.Second) }
	ad, err := e.ads.Serve(context.Background(), "sidebar")
	require.NoError(t, err)
	assert.Nil(t, ad)

	got, _ := e.store.Campaigns().Get(context.Background(), c.ID)
	assert.Zero(t, got.Spent)
}

func TestServeZoneStates(t *testing.T) {
	e := newEnv(t)
	e.zone(t, "sidebar", 100)
	e.active(t, 1000, "sidebar")

	_, err := e.ads.Serve(context.Background(), "nowhere")
	assert.True(t, domain.IsNotFound(err))

	_, err = e.zones.SetStatus(context.Background(), e.admin, "sidebar", domain.ZoneInactive)
	require.NoError(t, err)
	ad, err := e.ads.Serve(context.Background(), "sidebar")
	require.NoError(t, err)
	assert.Nil(t, ad)
}

func TestServeDoesNotChargeAfterDeadline(t *testing.T) {
	e := newEnv(t)
	e.zone(t, "sidebar", 100)
	c, _ := e.active(t, 1000, "sidebar")

	ledger := mocks.NewMockLedger(t)
	svc := NewAdUseCase(e.store.Zones(), e.store.Creatives(), ledger, nil, testLogger)
	svc.now = fixedNow

	ctx, cancel := context.WithCancel(context.Background())
	ledger.EXPECT().EligibleForZone(mock.Anything, "sidebar", testNow).
		RunAndReturn(func(ctx context.Context, zone string, now time.Time) ([]port.CreativeCandidate, error) {
			candidates, err := e.campaigns.EligibleForZone(ctx, zone, now)
			cancel()
			return candidates, err
		}).Once()

	ad, err := svc.Serve(ctx, "sidebar")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, ad)

	got, _ := e.store.Campaigns().Get(context.Background(), c.ID)
	assert.Zero(t, got.Spent)
	assert.Zero(t, got.CurrentImpressions)
}

// serveSeries returns the zone labels of ads_serve_total that match keep.
func serveSeries(t *testing.T, keep func(zone string) bool) []string {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	var zones []string
	for _, mf := range families {
		if mf.GetName() != "ads_serve_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "zone" && keep(l.GetValue()) {
					zones = append(zones, l.GetValue())
				}
			}
		}
	}
	return zones
}

func TestServeUnknownZonesShareOneSeries(t *testing.T) {
	e := newEnv(t)
	for i := 0; i < 200; i++ {
		_, err := e.ads.Serve(context.Background(), "bogus-"+strconv.Itoa(i))
		require.True(t, domain.IsNotFound(err))
	}

	assert.Empty(t, serveSeries(t, func(zone string) bool { return strings.HasPrefix(zone, "bogus-") }))
	assert.Len(t, serveSeries(t, func(zone string) bool { return zone == "unknown" }), 1)
}

func TestServeChargesLockedPrice(t *testing.T) {
	e := newEnv(t)
	e.zone(t, "sidebar", 100)
	c, cr := e.active(t, 1000, "sidebar")

	_, err := e.zones.SetPrice(context.Background(), e.admin, "sidebar", 300)
	require.NoError(t, err)

	ad, err := e.ads.Serve(context.Background(), "sidebar")
	require.NoError(t, err)
	require.NotNil(t, ad)
	assert.Equal(t, cr.ID, ad.CreativeID)
	assert.Equal(t, "/ads/track/"+strconv.FormatInt(cr.ID, 10), ad.ClickURL)

	got, _ := e.store.Campaigns().Get(context.Background(), c.ID)
	assert.Equal(t, int64(100), got.Spent)
}

func TestServeRetriesAnotherCampaign(t *testing.T) {
	e := newEnv(t)
	e.zone(t, "sidebar", 100)
	first, _ := e.active(t, 1000, "sidebar")
	second, _ := e.active(t, 1000, "sidebar")

	ledger := mocks.NewMockLedger(t)
	selector := mocks.NewMockSelector(t)
	svc := NewAdUseCase(e.store.Zones(), e.store.Creatives(), ledger, selector, testLogger)
	svc.now = fixedNow
	ledger.EXPECT().EligibleForZone(mock.Anything, "sidebar", testNow).RunAndReturn(e.campaigns.EligibleForZone)

	selector.EXPECT().Pick(mock.Anything).Return(0).Twice()
	ledger.EXPECT().
		ConsumeImpression(mock.Anything, first.ID, int64(100)).
		Return(domain.CampaignCompleted, domain.NewBudgetExhaustedError(first.ID)).
		Once()
	ledger.EXPECT().
		ConsumeImpression(mock.Anything, second.ID, int64(100)).
		Return(domain.CampaignActive, nil).
		Once()

	ad, err := svc.Serve(context.Background(), "sidebar")
	require.NoError(t, err)
	require.NotNil(t, ad)
	assert.Equal(t, second.ID, ad.CampaignID)
	require.NoError(t, svc.Drain(context.Background()))
}

func TestServeRetriesOnlyOnce(t *testing.T) {
	e := newEnv(t)
	e.zone(t, "sidebar", 100)
	for i := 0; i < 3; i++ {
		e.active(t, 1000, "sidebar")
	}

	ledger := mocks.NewMockLedger(t)
	svc := NewAdUseCase(e.store.Zones(), e.store.Creatives(), ledger, nil, testLogger)
	svc.now = fixedNow
	ledger.EXPECT().EligibleForZone(mock.Anything, "sidebar", testNow).RunAndReturn(e.campaigns.EligibleForZone)

	ledger.EXPECT().
		ConsumeImpression(mock.Anything, mock.Anything, int64(100)).
		Return(domain.CampaignActive, domain.ErrDailyCapReached).
		Twice()

	ad, err := svc.Serve(context.Background(), "sidebar")
	require.NoError(t, err)
	assert.Nil(t, ad)
}

func TestServeSurfacesStoreFailure(t *testing.T) {
	e := newEnv(t)
	e.zone(t, "sidebar", 100)
	e.active(t, 1000, "sidebar")

	ledger := mocks.NewMockLedger(t)
	svc := NewAdUseCase(e.store.Zones(), e.store.Creatives(), ledger, nil, testLogger)
	svc.now = fixedNow
	ledger.EXPECT().EligibleForZone(mock.Anything, "sidebar", testNow).RunAndReturn(e.campaigns.EligibleForZone)

	dbErr := domain.NewDatabaseError("consume impression", errors.New("connection reset"))
	ledger.EXPECT().ConsumeImpression(mock.Anything, mock.Anything, int64(100)).Return(domain.CampaignStatus(""), dbErr).Once()

	_, err := svc.Serve(context.Background(), "sidebar")
	assert.ErrorIs(t, err, dbErr)
}

func TestServeCountsViews(t *testing.T) {
	e := newEnv(t)
	e.zone(t, "sidebar", 10)
	c, cr := e.active(t, 1000, "sidebar")

	for i := 0; i < 5; i++ {
		ad, err := e.ads.Serve(context.Background(), "sidebar")
		require.NoError(t, err)
		require.NotNil(t, ad)
	}
	require.NoError(t, e.ads.Drain(context.Background()))

	got, err := e.store.Creatives().Get(context.Background(), cr.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.NumberOfViews)
	camp, _ := e.store.Campaigns().Get(context.Background(), c.ID)
	assert.Equal(t, int64(5), camp.ViewsDelivered)
}

func TestTrackClick(t *testing.T) {
	e := newEnv(t)
	e.zone(t, "sidebar", 10)
	c, cr := e.active(t, 1000, "sidebar")

	dest, ok := e.ads.TrackClick(context.Background(), cr.ID)
	assert.False(t, ok)
	assert.Empty(t, dest)

	target := "https://advertiser.example.com/landing"
	_, err := e.creatives.Update(context.Background(), e.owner, cr.ID, domain.CreativePatch{DestinationURL: &target})
	require.NoError(t, err)

	dest, ok = e.ads.TrackClick(context.Background(), cr.ID)
	assert.True(t, ok)
	assert.Equal(t, target, dest)

	_, ok = e.ads.TrackClick(context.Background(), 9999)
	assert.False(t, ok)

	got, _ := e.store.Campaigns().Get(context.Background(), c.ID)
	assert.Equal(t, int64(2), got.CurrentClicks)
}

func TestRandomSelectorReachesEveryCandidate(t *testing.T) {
	candidates := make([]port.CreativeCandidate, 4)
	seen := map[int]bool{}
	for i := 0; i < 1000 && len(seen) < len(candidates); i++ {
		idx := RandomSelector{}.Pick(candidates)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, len(candidates))
		seen[idx] = true
	}
	assert.Len(t, seen, len(candidates))
}
