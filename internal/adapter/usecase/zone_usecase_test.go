package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"adserve/internal/adapter/memory"
	"adserve/internal/core/domain"
	"adserve/internal/core/port/mocks"
)

func seedZones(t *testing.T, u *ZoneUseCase, admin domain.Actor) {
	t.Helper()
	for _, z := range []domain.Zone{
		{Code: "homepage_banner", Type: "banner", PricePerView: 500},
		{Code: "sidebar", Type: "banner", PricePerView: 100},
		{Code: "article_inline", Type: "native", PricePerView: 250},
	} {
		_, err := u.Create(context.Background(), admin, z)
		require.NoError(t, err)
	}
}

func TestWithinBudget(t *testing.T) {
	e := newEnv(t)
	seedZones(t, e.zones, e.admin)
	ctx := context.Background()

	zones, err := e.zones.WithinBudget(ctx, 30000, 100)
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, "article_inline", zones[0].Code, "most expensive affordable first")
	assert.Equal(t, "sidebar", zones[1].Code)

	_, err = e.zones.SetStatus(ctx, e.admin, "sidebar", domain.ZoneInactive)
	require.NoError(t, err)
	zones, err = e.zones.WithinBudget(ctx, 30000, 100)
	require.NoError(t, err)
	require.Len(t, zones, 1)

	zones, err = e.zones.WithinBudget(ctx, 10, 100)
	require.NoError(t, err)
	assert.Empty(t, zones)

	_, err = e.zones.WithinBudget(ctx, 0, 100)
	assert.True(t, domain.IsValidation(err))
}

func TestZoneAdminOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.zones.Create(ctx, e.owner, domain.Zone{Code: "x", Type: "banner", PricePerView: 1})
	assert.True(t, domain.IsForbidden(err))

	seedZones(t, e.zones, e.admin)
	_, err = e.zones.SetPrice(ctx, e.owner, "sidebar", 5)
	assert.True(t, domain.IsForbidden(err))
	_, err = e.zones.SetPrice(ctx, e.admin, "sidebar", 0)
	assert.True(t, domain.IsValidation(err))
	_, err = e.zones.SetPrice(ctx, e.admin, "missing", 5)
	assert.True(t, domain.IsNotFound(err))

	_, err = e.zones.Create(ctx, e.admin, domain.Zone{Code: "sidebar", Type: "banner", PricePerView: 1})
	assert.True(t, domain.IsConflict(err))
	_, err = e.zones.Create(ctx, e.admin, domain.Zone{Code: "Bad Code", Type: "banner", PricePerView: 1})
	assert.True(t, domain.IsValidation(err))
}

func TestListActiveReadsThroughCache(t *testing.T) {
	s := memory.NewStore()
	cache := mocks.NewMockZoneCache(t)
	u := NewZoneUseCase(s.Zones(), cache, testLogger)
	admin := domain.Actor{Role: domain.RoleAdmin}

	cache.EXPECT().Invalidate(mock.Anything).Return(nil).Times(3)
	seedZones(t, u, admin)

	cache.EXPECT().GetActive(mock.Anything).Return(nil, false, nil).Once()
	cache.EXPECT().SetActive(mock.Anything, mock.MatchedBy(func(zones []domain.Zone) bool {
		return len(zones) == 3
	})).Return(nil).Once()
	zones, err := u.ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, zones, 3)

	cached := []domain.Zone{{Code: "sidebar", PricePerView: 100, Status: domain.ZoneActive}}
	cache.EXPECT().GetActive(mock.Anything).Return(cached, true, nil).Once()
	zones, err = u.ListActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, zones)

	// a broken cache degrades to the store
	cache.EXPECT().GetActive(mock.Anything).Return(nil, false, errors.New("redis down")).Once()
	cache.EXPECT().SetActive(mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()
	zones, err = u.ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, zones, 3)
}
