package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"adserve/internal/core/domain"
	"adserve/internal/core/port"
	"adserve/internal/metrics"
)

const sweepLockKey = "adserve:sweep:expiry"

// ExpiryWorker periodically expires campaigns whose end date has passed.
// With a locker, only the instance holding the sweep lease runs a pass.
type ExpiryWorker struct {
	campaigns port.CampaignRepository
	locker    port.Locker
	logger    *slog.Logger
	interval  time.Duration
	timeout   time.Duration
	lockTTL   time.Duration
	now       func() time.Time

	stopCh    chan struct{}
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewExpiryWorker creates the sweep. locker may be nil.
func NewExpiryWorker(campaigns port.CampaignRepository, locker port.Locker, logger *slog.Logger, interval, timeout, lockTTL time.Duration) *ExpiryWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if lockTTL <= 0 {
		lockTTL = interval
	}
	return &ExpiryWorker{
		campaigns: campaigns,
		locker:    locker,
		logger:    logger,
		interval:  interval,
		timeout:   timeout,
		lockTTL:   lockTTL,
		now:       utcNow,
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start launches the sweep loop. Only the first call has an effect, and a
// worker that was already stopped never starts.
func (w *ExpiryWorker) Start() {
	w.startOnce.Do(func() {
		w.logger.Info("starting expiry worker", slog.Duration("interval", w.interval))
		go w.loop()
	})
}

// Stop ends the loop and waits for a running pass to finish. It returns at
// once for a worker that was never started.
func (w *ExpiryWorker) Stop() {
	w.stopOnce.Do(func() {
		w.logger.Info("stopping expiry worker")
		close(w.stopCh)
	})
	w.startOnce.Do(func() { close(w.done) })
	<-w.done
}

func (w *ExpiryWorker) loop() {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.tick()
	for {
		select {
		case <-ticker.C:
			w.tick()
		case <-w.stopCh:
			return
		}
	}
}

func (w *ExpiryWorker) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	if _, err := w.RunOnce(ctx); err != nil {
		w.logger.Error("expiry sweep failed", slog.Any("error", err))
	}
}

// RunOnce runs a single sweep and returns the ids it expired. It returns
// nil when another instance holds the sweep lease.
func (w *ExpiryWorker) RunOnce(ctx context.Context) ([]int64, error) {
	if w.locker != nil {
		release, ok, err := w.locker.TryLock(ctx, sweepLockKey, w.lockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			w.logger.Debug("expiry sweep skipped, lease held elsewhere")
			return nil, nil
		}
		defer release()
	}

	ids, err := w.campaigns.ExpireOverdue(ctx, w.now())
	if err != nil {
		return nil, err
	}
	for range ids {
		metrics.Transition(string(domain.CampaignExpired))
	}
	if len(ids) > 0 {
		w.logger.Info("expired overdue campaigns", slog.Int("count", len(ids)), slog.Any("campaign_ids", ids))
	}
	return ids, nil
}
