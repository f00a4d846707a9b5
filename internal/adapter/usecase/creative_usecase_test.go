package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adserve/internal/core/domain"
	"adserve/internal/core/port"
)

func TestCreateCreative(t *testing.T) {
	e := newEnv(t)
	e.zone(t, "sidebar", 100)
	ctx := context.Background()
	c := e.draft(t, 1000)

	n := domain.NewCreative{
		CampaignID: c.ID,
		ZoneCode:   "sidebar",
		Type:       domain.CreativeVideo,
		Format:     "png",
		URL:        "https://cdn.example.com/v",
	}
	_, err := e.creatives.Create(ctx, e.owner, n)
	assert.True(t, domain.IsValidation(err), "png is not a video format")

	n.Format = "mp4"
	cr, err := e.creatives.Create(ctx, e.owner, n)
	require.NoError(t, err)
	assert.Equal(t, int64(100), cr.PricePerView)

	n.ZoneCode = "missing"
	_, err = e.creatives.Create(ctx, e.owner, n)
	assert.True(t, domain.IsNotFound(err))

	n.ZoneCode = "sidebar"
	_, err = e.creatives.Create(ctx, domain.Actor{ID: uuid.New(), Role: domain.RoleAdvertiser}, n)
	assert.True(t, domain.IsForbidden(err))
}

func TestUpdateCreativeRebindsPrice(t *testing.T) {
	e := newEnv(t)
	e.zone(t, "sidebar", 100)
	e.zone(t, "video_preroll", 800)
	ctx := context.Background()
	_, cr := e.active(t, 10000, "sidebar")

	width := 300
	updated, err := e.creatives.Update(ctx, e.owner, cr.ID, domain.CreativePatch{Width: &width})
	require.NoError(t, err)
	assert.Equal(t, int64(100), updated.PricePerView)
	assert.Equal(t, 300, updated.Width)

	zone := "video_preroll"
	updated, err = e.creatives.Update(ctx, e.owner, cr.ID, domain.CreativePatch{ZoneCode: &zone})
	require.NoError(t, err)
	assert.Equal(t, int64(800), updated.PricePerView)
}

// viewsDuringUpdate counts views on the creative after the use case has read
// it and before the write lands, as a background serve would.
type viewsDuringUpdate struct {
	port.CreativeRepository
	views int64
}

func (r *viewsDuringUpdate) Update(ctx context.Context, c *domain.Creative, w port.CreativeWrite) error {
	if err := r.CreativeRepository.IncrementViews(ctx, c.ID, r.views); err != nil {
		return err
	}
	return r.CreativeRepository.Update(ctx, c, w)
}

func TestUpdateCreativeKeepsConcurrentViews(t *testing.T) {
	e := newEnv(t)
	e.zone(t, "sidebar", 100)
	ctx := context.Background()
	c, cr := e.active(t, 10000, "sidebar")
	require.NoError(t, e.creatives.IncrementViews(ctx, cr.ID, 2))

	svc := NewCreativeUseCase(&viewsDuringUpdate{CreativeRepository: e.store.Creatives(), views: 5}, e.store.Campaigns(), testLogger)

	width := 320
	updated, err := svc.Update(ctx, e.owner, cr.ID, domain.CreativePatch{Width: &width})
	require.NoError(t, err)
	assert.Equal(t, int64(7), updated.NumberOfViews)

	stored, err := e.store.Creatives().Get(ctx, cr.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stored.NumberOfViews)
	assert.Equal(t, 320, stored.Width)
	camp, _ := e.store.Campaigns().Get(ctx, c.ID)
	assert.Equal(t, int64(7), camp.ViewsDelivered)

	updated, err = svc.Update(ctx, e.owner, cr.ID, domain.CreativePatch{ResetViews: true})
	require.NoError(t, err)
	assert.Zero(t, updated.NumberOfViews)
	stored, err = e.store.Creatives().Get(ctx, cr.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.NumberOfViews)
}

func TestListCreatives(t *testing.T) {
	e := newEnv(t)
	e.zone(t, "sidebar", 10)
	ctx := context.Background()
	_, a := e.active(t, 1000, "sidebar")
	_, b := e.active(t, 1000, "sidebar")

	require.NoError(t, e.creatives.IncrementViews(ctx, b.ID, 7))
	require.NoError(t, e.creatives.IncrementViews(ctx, a.ID, 2))
	assert.True(t, domain.IsValidation(e.creatives.IncrementViews(ctx, a.ID, 0)))

	top, err := e.creatives.List(ctx, domain.CreativeFilter{TopN: 1})
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, b.ID, top[0].ID)

	at := testNow
	active, err := e.creatives.List(ctx, domain.CreativeFilter{ActiveAt: &at, ZoneCode: "sidebar"})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	found, err := e.creatives.List(ctx, domain.CreativeFilter{Query: "CDN.EXAMPLE"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = e.creatives.List(ctx, domain.CreativeFilter{TopN: -1})
	assert.True(t, domain.IsValidation(err))

	require.NoError(t, e.creatives.Delete(ctx, e.owner, a.ID))
	_, err = e.creatives.Get(ctx, a.ID)
	assert.True(t, domain.IsNotFound(err))
}
