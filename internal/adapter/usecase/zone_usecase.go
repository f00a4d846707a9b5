package usecase

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"adserve/internal/core/domain"
	"adserve/internal/core/port"
)

// ZoneUseCase serves the zone catalog. The active listing is read through
// an optional cache; every write invalidates it.
type ZoneUseCase struct {
	repo   port.ZoneRepository
	cache  port.ZoneCache
	logger *slog.Logger
	now    func() time.Time
}

// NewZoneUseCase creates the zone service. cache may be nil.
func NewZoneUseCase(repo port.ZoneRepository, cache port.ZoneCache, logger *slog.Logger) *ZoneUseCase {
	return &ZoneUseCase{repo: repo, cache: cache, logger: logger, now: utcNow}
}

func (u *ZoneUseCase) List(ctx context.Context) ([]domain.Zone, error) {
	return u.repo.List(ctx)
}

func (u *ZoneUseCase) ListActive(ctx context.Context) ([]domain.Zone, error) {
	if u.cache != nil {
		zones, ok, err := u.cache.GetActive(ctx)
		if err != nil {
			u.logger.Warn("zone cache read failed", slog.Any("error", err))
		} else if ok {
			return zones, nil
		}
	}
	zones, err := u.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if u.cache != nil {
		if err = u.cache.SetActive(ctx, zones); err != nil {
			u.logger.Warn("zone cache write failed", slog.Any("error", err))
		}
	}
	return zones, nil
}

func (u *ZoneUseCase) WithinBudget(ctx context.Context, budget, impressions int64) ([]domain.Zone, error) {
	if budget <= 0 || impressions <= 0 {
		return nil, domain.NewValidationDetails("invalid budget query", map[string]string{
			"budget":      "budget and impressions must be greater than zero",
			"impressions": "budget and impressions must be greater than zero",
		})
	}
	maxPrice := domain.MaxAffordablePrice(budget, impressions)
	active, err := u.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Zone, 0, len(active))
	for _, z := range active {
		if z.PricePerView <= maxPrice {
			out = append(out, z)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PricePerView > out[j].PricePerView })
	return out, nil
}

func (u *ZoneUseCase) Create(ctx context.Context, actor domain.Actor, z domain.Zone) (*domain.Zone, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if z.Status == "" {
		z.Status = domain.ZoneActive
	}
	if err := z.Validate(); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, &z); err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	u.logger.Info("zone created", slog.String("zone", z.Code), slog.Int64("price_per_view", z.PricePerView))
	return &z, nil
}

// SetPrice changes the price of a zone. Creatives already bound keep the
// price they locked.
func (u *ZoneUseCase) SetPrice(ctx context.Context, actor domain.Actor, code string, price int64) (*domain.Zone, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := domain.ValidatePrice(price); err != nil {
		return nil, err
	}
	z, err := u.repo.SetPrice(ctx, code, price, u.now())
	if err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	u.logger.Info("zone price changed", slog.String("zone", code), slog.Int64("price_per_view", price))
	return z, nil
}

func (u *ZoneUseCase) SetStatus(ctx context.Context, actor domain.Actor, code string, status domain.ZoneStatus) (*domain.Zone, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.NewValidationError("INVALID_STATUS", "status must be active or inactive")
	}
	z, err := u.repo.SetStatus(ctx, code, status, u.now())
	if err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	u.logger.Info("zone status changed", slog.String("zone", code), slog.String("status", string(status)))
	return z, nil
}

func (u *ZoneUseCase) invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Invalidate(ctx); err != nil {
		u.logger.Warn("zone cache invalidation failed", slog.Any("error", err))
	}
}
