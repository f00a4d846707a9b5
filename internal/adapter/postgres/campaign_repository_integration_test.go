//go:build integration

package postgres

import (
	"context"
	"errors"
	"net/url"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adserve/internal/config/configs"
	"adserve/internal/core/domain"
	"adserve/internal/core/port"
	"adserve/internal/db"
)

// openPool connects to PSQL_TEST_ADDRESS and migrates it. Tests create
// their own rows and never truncate, so a shared database is fine.
func openPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	addr := os.Getenv("PSQL_TEST_ADDRESS")
	if addr == "" {
		t.Skip("PSQL_TEST_ADDRESS not set")
	}
	u, err := url.Parse(addr)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(addr))

	pool, err := db.NewPostgresPool(context.Background(), configs.Postgres{Addr: *u, MaxConns: 16})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func activeCampaign(t *testing.T, repo *CampaignRepository, budget int64, daily *int64, now time.Time) *domain.Campaign {
	t.Helper()
	ctx := context.Background()
	c := &domain.Campaign{
		AdvertiserID: uuid.New(),
		Name:         "integration",
		Budget:       budget,
		DailyBudget:  daily,
		StartDate:    now.Add(-time.Hour),
		EndDate:      now.Add(24 * time.Hour),
	}
	require.NoError(t, repo.Create(ctx, c))
	activated, err := repo.Transition(ctx, c.ID, domain.AllCampaignStatuses, domain.CampaignActive, now)
	require.NoError(t, err)
	return activated
}

func TestConsumeImpressionConcurrentDebits(t *testing.T) {
	repo := NewCampaignRepository(openPool(t))
	now := time.Now().UTC()
	c := activeCampaign(t, repo, 1000, nil, now)

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
	assert.Equal(t, int64(33), got.CurrentImpressions)
	assert.Equal(t, domain.CampaignCompleted, got.Status)
	assert.Equal(t, int64(1), exhausted.Load())
}

// TestConsumeImpressionMatchesDebit replays the same debits against the
// statement and against domain.Campaign.Debit and compares the outcomes.
func TestConsumeImpressionMatchesDebit(t *testing.T) {
	repo := NewCampaignRepository(openPool(t))
	now := time.Now().UTC()
	daily := int64(300)

	cases := []struct {
		name   string
		budget int64
		daily  *int64
		prices []int64
	}{
		{name: "exact exhaustion completes on the last debit", budget: 200, prices: []int64{100, 100, 100}},
		{name: "remainder too small completes on the failing debit", budget: 250, prices: []int64{100, 100, 100, 100}},
		{name: "daily cap keeps the campaign active", budget: 1000, daily: &daily, prices: []int64{100, 100, 100, 100}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stored := activeCampaign(t, repo, tc.budget, tc.daily, now)
			model := *stored

			for i, price := range tc.prices {
				_, gotErr := repo.ConsumeImpression(context.Background(), stored.ID, price, now)
				wantErr := model.Debit(price, now)
				switch {
				case wantErr == nil:
					assert.NoError(t, gotErr, "debit %d", i)
				case errors.Is(wantErr, domain.ErrBudgetExhausted):
					assert.True(t, domain.IsBudgetExhausted(gotErr), "debit %d: %v", i, gotErr)
				default:
					assert.ErrorIs(t, gotErr, wantErr, "debit %d", i)
				}
			}

			got, err := repo.Get(context.Background(), stored.ID)
			require.NoError(t, err)
			assert.Equal(t, model.Status, got.Status)
			assert.Equal(t, model.Spent, got.Spent)
			assert.Equal(t, model.CurrentImpressions, got.CurrentImpressions)
			assert.Equal(t, model.SpentToday, got.SpentToday)
		})
	}
}

func TestCreativeUpdateKeepsViews(t *testing.T) {
	pool := openPool(t)
	ctx := context.Background()
	now := time.Now().UTC()
	campaigns := NewCampaignRepository(pool)
	creatives := NewCreativeRepository(pool)

	zone := &domain.Zone{Code: "it_" + uuid.NewString()[:8], Type: "banner", PricePerView: 100}
	require.NoError(t, NewZoneRepository(pool).Create(ctx, zone))
	c := activeCampaign(t, campaigns, 1000, nil, now)
	cr := &domain.Creative{CampaignID: c.ID, ZoneCode: zone.Code, Type: domain.CreativeImage, Format: "png", URL: "https://cdn.example/a.png"}
	require.NoError(t, creatives.Create(ctx, cr))

	read, err := creatives.Get(ctx, cr.ID)
	require.NoError(t, err)
	require.NoError(t, creatives.IncrementViews(ctx, cr.ID, 5))
	read.Width = 300
	require.NoError(t, creatives.Update(ctx, read, port.CreativeWrite{}))
	assert.Equal(t, int64(5), read.NumberOfViews)
	assert.Equal(t, 300, read.Width)

	require.NoError(t, creatives.Update(ctx, read, port.CreativeWrite{ResetViews: true}))
	assert.Zero(t, read.NumberOfViews)
}
