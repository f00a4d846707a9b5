package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adserve/internal/adapter/auth"
	"adserve/internal/adapter/http"
	"adserve/internal/adapter/memory"
	"adserve/internal/adapter/paystack"
	"adserve/internal/adapter/postgres"
	"adserve/internal/adapter/redis"
	"adserve/internal/adapter/usecase"
	"adserve/internal/config"
	"adserve/internal/core/port"
	"adserve/internal/db"
)

const shutdownTimeout = 10 * time.Second

// repositories are the outbound storage ports selected by STORE.
type repositories struct {
	zones     port.ZoneRepository
	campaigns port.CampaignRepository
	creatives port.CreativeRepository
	payments  port.PaymentRepository
	disputes  port.DisputeRepository
}

// main is the entry point of the ad engine. It loads configuration, sets up
// storage, the optional Redis cache and the payment gateway, then starts
// the HTTP server and the expiry sweep. On receiving a termination signal
// it stops accepting requests, stops the sweep and drains background view
// updates.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}

	logger := cfg.Log.New(os.Stdout, cfg.Env)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var repos repositories
	switch cfg.Store {
	case config.StoreMemory:
		store := memory.NewStore()
		repos = repositories{
			zones:     store.Zones(),
			campaigns: store.Campaigns(),
			creatives: store.Creatives(),
			payments:  store.Payments(),
			disputes:  store.Disputes(),
		}
		if err = db.SeedZones(ctx, repos.zones, db.DefaultZones, logger); err != nil {
			logger.Error("zone seeding error", slog.Any("error", err))
			return
		}
		logger.Warn("running with in-memory store; state is lost on exit")
	default:
		// Optionally run migrations if configured. We use the Psql sub-config.
		if cfg.Psql.RunMigrations {
			if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
				logger.Error("migration error", slog.Any("error", err))
				return
			}
			logger.Info("migrations applied successfully")
		}

		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			logger.Error("database connection error", slog.Any("error", err))
			return
		}
		defer pool.Close()

		repos = repositories{
			zones:     postgres.NewZoneRepository(pool),
			campaigns: postgres.NewCampaignRepository(pool),
			creatives: postgres.NewCreativeRepository(pool),
			payments:  postgres.NewPaymentRepository(pool),
			disputes:  postgres.NewDisputeRepository(pool),
		}
		if cfg.Psql.SeedZones {
			if err = db.SeedZones(ctx, repos.zones, db.DefaultZones, logger); err != nil {
				logger.Error("zone seeding error", slog.Any("error", err))
				return
			}
		}
	}

	// Redis is optional. Interfaces stay nil without it so the use cases
	// fall back to the store.
	var (
		zoneCache port.ZoneCache
		locker    port.Locker
	)
	rc, err := redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		logger.Error("redis connection error", slog.Any("error", err))
		return
	}
	if rc != nil {
		defer rc.Close()
		zoneCache = redisadapter.NewZoneCache(rc, cfg.Redis.ZoneCacheTTL)
		locker = redisadapter.NewLocker(rc)
		logger.Info("redis enabled")
	}

	campaigns := usecase.NewCampaignUseCase(repos.campaigns, repos.creatives, logger)
	ads := usecase.NewAdUseCase(repos.zones, repos.creatives, campaigns, nil, logger)
	services := httpadapter.Services{
		Ads:       ads,
		Zones:     usecase.NewZoneUseCase(repos.zones, zoneCache, logger),
		Campaigns: campaigns,
		Creatives: usecase.NewCreativeUseCase(repos.creatives, repos.campaigns, logger),
		Payments: usecase.NewPaymentUseCase(
			repos.payments,
			repos.campaigns,
			paystack.NewClient(cfg.Paystack),
			paystack.NewSigner(cfg.Paystack.SecretKey),
			logger,
		),
		Disputes: usecase.NewDisputeUseCase(repos.disputes, repos.campaigns, logger),
	}

	sweeper := usecase.NewExpiryWorker(repos.campaigns, locker, logger, cfg.Sweep.Interval, cfg.Sweep.Timeout, cfg.Redis.LockTTL)
	sweeper.Start()

	handler := httpadapter.NewHandler(services, auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer), httpadapter.Options{
		ServeTimeout:    cfg.HTTP.ServeTimeout,
		CORSOrigins:     cfg.HTTP.CORSOrigins,
		SignatureHeader: cfg.Paystack.SignatureHeader,
	}, logger)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)), slog.String("store", string(cfg.Store)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		exitCode = 0
		logger.Info("shutdown signal received")
	case err = <-serverErr:
		logger.Error("server error", slog.Any("error", err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
	sweeper.Stop()
	if err = ads.Drain(shutdownCtx); err != nil {
		logger.Warn("pending view updates dropped", slog.Any("error", err))
	}
}
