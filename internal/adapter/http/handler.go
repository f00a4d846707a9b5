package httpadapter

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"adserve/internal/core/port"
)

// Services bundles the use cases the handler dispatches to.
type Services struct {
	Ads       port.ServeUseCase
	Zones     port.ZoneUseCase
	Campaigns port.CampaignUseCase
	Creatives port.CreativeUseCase
	Payments  port.PaymentUseCase
	Disputes  port.DisputeUseCase
}

// Options tunes the transport.
type Options struct {
	// ServeTimeout bounds a single ad serve. Zero disables the bound.
	ServeTimeout time.Duration
	CORSOrigins  []string
	// SignatureHeader carries the gateway's webhook signature.
	SignatureHeader string
}

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP: it authenticates callers, validates input and maps domain errors to
// status codes. Routes are registered on a chi.Router.
type Handler struct {
	svc      Services
	auth     port.Authenticator
	opts     Options
	validate *validator.Validate
	logger   *slog.Logger
	router   chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc Services, auth port.Authenticator, opts Options, logger *slog.Logger) *Handler {
	if opts.SignatureHeader == "" {
		opts.SignatureHeader = "X-Paystack-Signature"
	}
	h := &Handler{
		svc:      svc,
		auth:     auth,
		opts:     opts,
		validate: newValidator(),
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.instrument)
	r.Use(h.recoverer)
	r.Use(corsHandler(opts.CORSOrigins))

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/ads", func(r chi.Router) {
		r.Get("/serve/{zone}", h.handleServe)
		r.Get("/track/{id}", h.handleTrack)

		r.Route("/zones", func(r chi.Router) {
			r.Get("/", h.handleListZones)
			r.Get("/active", h.handleActiveZones)
			r.Get("/affordable", h.handleAffordableZones)
			r.Group(func(r chi.Router) {
				r.Use(h.requireActor)
				r.Post("/", h.handleCreateZone)
				r.Put("/{code}/price", h.handleSetZonePrice)
				r.Put("/{code}/status", h.handleSetZoneStatus)
			})
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Use(h.requireActor)
			r.Post("/", h.handleCreateCampaign)
			r.Get("/active", h.handleActiveCampaigns)
			r.Get("/pending", h.handlePendingCampaigns)
			r.Get("/expired", h.handleExpiredCampaigns)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGetCampaign)
				r.Put("/", h.handleUpdateCampaign)
				r.Delete("/", h.handleDeleteCampaign)
				r.Get("/stats", h.handleCampaignStats)
				r.Post("/submit", h.campaignAction(h.svc.Campaigns.Submit))
				r.Post("/pause", h.campaignAction(h.svc.Campaigns.Pause))
				r.Post("/resume", h.campaignAction(h.svc.Campaigns.Resume))
				r.Post("/reconcile", h.campaignAction(h.svc.Campaigns.Reconcile))
				r.Post("/reject", h.campaignAction(h.svc.Campaigns.Reject))
			})
		})
	})

	r.Route("/ad-creatives", func(r chi.Router) {
		r.Get("/", h.handleListCreatives)
		r.Get("/{id}", h.handleGetCreative)
		r.Group(func(r chi.Router) {
			r.Use(h.requireActor)
			r.Post("/", h.handleCreateCreative)
			r.Put("/{id}", h.handleUpdateCreative)
			r.Delete("/{id}", h.handleDeleteCreative)
		})
	})

	r.Route("/payments", func(r chi.Router) {
		r.Post("/webhook", h.handleWebhook)
		r.Group(func(r chi.Router) {
			r.Use(h.requireActor)
			r.Get("/", h.handleListPayments)
			r.Post("/initialize", h.handleInitializePayment)
			r.Post("/verify/{reference}", h.handleVerifyPayment)
		})
	})

	r.Route("/disputes", func(r chi.Router) {
		r.Use(h.requireActor)
		r.Post("/", h.handleCreateDispute)
		r.Get("/", h.handleListDisputes)
		r.Get("/{id}", h.handleGetDispute)
		r.Put("/{id}/status", h.handleAdvanceDispute)
	})

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.ok(w, map[string]string{"status": "ok"})
}
