package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"adserve/internal/core/domain"
	"adserve/internal/core/port"
	"adserve/internal/metrics"
)

const (
	// serveAttempts bounds how many campaigns one request may try to debit.
	serveAttempts = 2
	viewTimeout   = 5 * time.Second
)

// AdUseCase provides ad selection and click tracking for publisher pages.
// Candidates and debits come from the ledger; view counters are updated in
// the background so the response never waits on them.
type AdUseCase struct {
	zones     port.ZoneRepository
	creatives port.CreativeRepository
	ledger    port.Ledger
	selector  port.Selector
	logger    *slog.Logger
	now       func() time.Time

	views sync.WaitGroup
}

// NewAdUseCase creates the serve path. A nil selector picks uniformly at
// random.
func NewAdUseCase(zones port.ZoneRepository, creatives port.CreativeRepository, ledger port.Ledger, selector port.Selector, logger *slog.Logger) *AdUseCase {
	if selector == nil {
		selector = RandomSelector{}
	}
	return &AdUseCase{
		zones:     zones,
		creatives: creatives,
		ledger:    ledger,
		selector:  selector,
		logger:    logger,
		now:       utcNow,
	}
}

// Serve selects a creative for zoneCode and debits one impression from its
// campaign. It returns nil when the zone is inactive or no campaign can pay
// for the impression. When the chosen campaign turns out to be exhausted,
// capped or no longer servable, another campaign is tried once. No debit is
// issued once ctx is done.
func (u *AdUseCase) Serve(ctx context.Context, zoneCode string) (*port.ServedAd, error) {
	z, err := u.zones.Get(ctx, zoneCode)
	if err != nil {
		metrics.Serve(metrics.UnknownZone, metrics.ServeError)
		return nil, err
	}
	if z.Status != domain.ZoneActive {
		metrics.Serve(zoneCode, metrics.ServeNoContent)
		return nil, nil
	}

	excluded := make(map[int64]struct{})
	for attempt := 0; attempt < serveAttempts; attempt++ {
		candidates, err := u.ledger.EligibleForZone(ctx, zoneCode, u.now())
		if err != nil {
			metrics.Serve(zoneCode, metrics.ServeError)
			return nil, err
		}
		candidates = without(candidates, excluded)
		if len(candidates) == 0 {
			break
		}

		// A request that has already timed out must not be charged.
		if err = ctx.Err(); err != nil {
			metrics.Serve(zoneCode, metrics.ServeError)
			return nil, err
		}
		chosen := candidates[u.selector.Pick(candidates)]
		_, err = u.ledger.ConsumeImpression(ctx, chosen.Campaign.ID, chosen.Creative.PricePerView)
		if err == nil {
			u.countView(chosen.Creative.ID)
			metrics.Serve(zoneCode, metrics.ServeServed)
			return servedAd(chosen.Creative), nil
		}
		if !isRetryable(err) {
			metrics.Serve(zoneCode, metrics.ServeError)
			return nil, err
		}
		u.logger.Debug("campaign skipped",
			slog.Int64("campaign_id", chosen.Campaign.ID),
			slog.String("zone", zoneCode),
			slog.Any("reason", err),
		)
		excluded[chosen.Campaign.ID] = struct{}{}
	}

	metrics.Serve(zoneCode, metrics.ServeNoContent)
	return nil, nil
}

// TrackClick records a click against the creative's campaign and returns
// its destination.
func (u *AdUseCase) TrackClick(ctx context.Context, creativeID int64) (string, bool) {
	cr, err := u.creatives.Get(ctx, creativeID)
	if err != nil {
		u.logger.Warn("click on unknown creative", slog.Int64("creative_id", creativeID), slog.Any("error", err))
		return "", false
	}
	if err = u.ledger.RecordClick(ctx, cr.CampaignID); err != nil {
		u.logger.Warn("failed to record click",
			slog.Int64("creative_id", creativeID),
			slog.Int64("campaign_id", cr.CampaignID),
			slog.Any("error", err),
		)
	}
	if cr.DestinationURL == nil || *cr.DestinationURL == "" {
		return "", false
	}
	return *cr.DestinationURL, true
}

// Drain waits for pending view updates or until ctx is done.
func (u *AdUseCase) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		u.views.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (u *AdUseCase) countView(creativeID int64) {
	u.views.Add(1)
	go func() {
		defer u.views.Done()
		ctx, cancel := context.WithTimeout(context.Background(), viewTimeout)
		defer cancel()
		if err := u.creatives.IncrementViews(ctx, creativeID, 1); err != nil {
			u.logger.Warn("failed to count view", slog.Int64("creative_id", creativeID), slog.Any("error", err))
		}
	}()
}

func without(candidates []port.CreativeCandidate, excluded map[int64]struct{}) []port.CreativeCandidate {
	if len(excluded) == 0 {
		return candidates
	}
	out := candidates[:0:0]
	for _, c := range candidates {
		if _, ok := excluded[c.Campaign.ID]; !ok {
			out = append(out, c)
		}
	}
	return out
}

func servedAd(cr domain.Creative) *port.ServedAd {
	return &port.ServedAd{
		CreativeID:     cr.ID,
		CampaignID:     cr.CampaignID,
		Zone:           cr.ZoneCode,
		Type:           cr.Type,
		Format:         cr.Format,
		URL:            cr.URL,
		DestinationURL: cr.DestinationURL,
		Width:          cr.Width,
		Height:         cr.Height,
		ClickURL:       fmt.Sprintf("/ads/track/%d", cr.ID),
	}
}
