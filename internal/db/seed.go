package db

import (
	"context"
	"fmt"
	"log/slog"

	"adserve/internal/core/domain"
	"adserve/internal/core/port"
)

// DefaultZones is the placement catalog installed on a fresh deployment.
// Prices are in the smallest currency unit.
var DefaultZones = []domain.Zone{
	{Code: "homepage_banner", Type: "banner", PricePerView: 500, Status: domain.ZoneActive},
	{Code: "sidebar", Type: "sidebar", PricePerView: 100, Status: domain.ZoneActive},
	{Code: "article_inline", Type: "inline", PricePerView: 250, Status: domain.ZoneActive},
	{Code: "fixtures_footer", Type: "footer", PricePerView: 50, Status: domain.ZoneActive},
	{Code: "video_preroll", Type: "video", PricePerView: 800, Status: domain.ZoneActive},
}

// SeedZones creates every zone of zones that does not exist yet. Existing
// zones keep their current price and status.
func SeedZones(ctx context.Context, repo port.ZoneRepository, zones []domain.Zone, logger *slog.Logger) error {
	created := 0
	for i := range zones {
		z := zones[i]
		err := repo.Create(ctx, &z)
		if domain.IsConflict(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed zone %s: %w", z.Code, err)
		}
		created++
	}
	logger.Info("zones seeded", slog.Int("created", created), slog.Int("total", len(zones)))
	return nil
}
