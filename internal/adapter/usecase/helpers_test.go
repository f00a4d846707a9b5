package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"adserve/internal/adapter/memory"
	"adserve/internal/core/domain"
)

var (
	testNow    = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func fixedNow() time.Time { return testNow }

type env struct {
	store     *memory.Store
	zones     *ZoneUseCase
	creatives *CreativeUseCase
	campaigns *CampaignUseCase
	ads       *AdUseCase
	disputes  *DisputeUseCase
	owner     domain.Actor
	admin     domain.Actor
}

func newEnv(t *testing.T) *env {
	t.Helper()
	s := memory.NewStore()
	e := &env{
		store:     s,
		zones:     NewZoneUseCase(s.Zones(), nil, testLogger),
		creatives: NewCreativeUseCase(s.Creatives(), s.Campaigns(), testLogger),
		campaigns: NewCampaignUseCase(s.Campaigns(), s.Creatives(), testLogger),
		disputes:  NewDisputeUseCase(s.Disputes(), s.Campaigns(), testLogger),
		owner:     domain.Actor{ID: uuid.New(), Role: domain.RoleAdvertiser, Email: "owner@example.com"},
		admin:     domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin, Email: "admin@example.com"},
	}
	e.campaigns.now = fixedNow
	e.disputes.now = fixedNow
	e.ads = NewAdUseCase(s.Zones(), s.Creatives(), e.campaigns, nil, testLogger)
	e.ads.now = fixedNow
	return e
}

func (e *env) zone(t *testing.T, code string, price int64) {
	t.Helper()
	_, err := e.zones.Create(context.Background(), e.admin, domain.Zone{Code: code, Type: "banner", PricePerView: price})
	require.NoError(t, err)
}

// draft creates a DRAFT campaign owned by e.owner that is in window at
// testNow.
func (e *env) draft(t *testing.T, budget int64) *domain.Campaign {
	t.Helper()
	c, err := e.campaigns.Create(context.Background(), e.owner, domain.NewCampaign{
		Name:      "campaign",
		Budget:    budget,
		StartDate: testNow.Add(-time.Hour),
		EndDate:   testNow.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	return c
}

// active creates an ACTIVE campaign with one creative in zone.
func (e *env) active(t *testing.T, budget int64, zone string) (*domain.Campaign, *domain.Creative) {
	t.Helper()
	c := e.draft(t, budget)
	cr, err := e.creatives.Create(context.Background(), e.owner, domain.NewCreative{
		CampaignID: c.ID,
		ZoneCode:   zone,
		Type:       domain.CreativeImage,
		Format:     "png",
		URL:        "https://cdn.example.com/a.png",
	})
	require.NoError(t, err)
	c, err = e.store.Campaigns().Transition(context.Background(), c.ID, domain.AllCampaignStatuses, domain.CampaignActive, testNow)
	require.NoError(t, err)
	return c, cr
}
