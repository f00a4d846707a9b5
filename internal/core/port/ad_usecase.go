package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"adserve/internal/core/domain"
)

// ServeUseCase is the hot path: choosing and metering an ad for a zone.
type ServeUseCase interface {
	// Serve picks an eligible creative for zoneCode and debits its campaign.
	// It returns nil when nothing can be served; budget exhaustion never
	// surfaces as an error. An unknown zone yields a not-found error.
	Serve(ctx context.Context, zoneCode string) (*ServedAd, error)

	// TrackClick records a click for the creative's campaign and returns the
	// destination URL, if any. It never fails: lookup and store errors are
	// logged and swallowed.
	TrackClick(ctx context.Context, creativeID int64) (destination string, ok bool)
}

// ServedAd is the creative returned to the publisher page. It is a DTO used
// by the HTTP layer and does not contain domain behaviour.
type ServedAd struct {
	CreativeID     int64
	CampaignID     int64
	Zone           string
	Type           domain.CreativeType
	Format         string
	URL            string
	DestinationURL *string
	Width          int
	Height         int
	ClickURL       string
}

// Ledger is the metering surface of the campaign ledger used by serving.
type Ledger interface {
	// EligibleForZone returns the creatives of campaigns that may serve in
	// zoneCode at now: ACTIVE, in window and bound to the zone.
	EligibleForZone(ctx context.Context, zoneCode string, now time.Time) ([]CreativeCandidate, error)
	// ConsumeImpression debits price atomically and returns the campaign's
	// status after the debit. domain.IsBudgetExhausted reports exhaustion.
	ConsumeImpression(ctx context.Context, campaignID, price int64) (domain.CampaignStatus, error)
	RecordClick(ctx context.Context, campaignID int64) error
}

// CampaignUseCase manages campaign lifecycle and queries.
type CampaignUseCase interface {
	Ledger

	Create(ctx context.Context, actor domain.Actor, n domain.NewCampaign) (*domain.Campaign, error)
	Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Campaign, error)
	Update(ctx context.Context, actor domain.Actor, id int64, patch domain.CampaignPatch) (*domain.Campaign, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error

	Submit(ctx context.Context, actor domain.Actor, id int64) (*domain.Campaign, error)
	Pause(ctx context.Context, actor domain.Actor, id int64) (*domain.Campaign, error)
	Resume(ctx context.Context, actor domain.Actor, id int64) (*domain.Campaign, error)
	Reject(ctx context.Context, actor domain.Actor, id int64) (*domain.Campaign, error)
	// Reconcile expires the campaign when its end date has passed. A
	// campaign that is still in window, or whose status admits no expiry,
	// is returned unchanged.
	Reconcile(ctx context.Context, actor domain.Actor, id int64) (*domain.Campaign, error)

	// Active, Pending and Expired list campaigns, restricted to one
	// advertiser when advertiserID is set. Expired selects by end date
	// regardless of status.
	Active(ctx context.Context, advertiserID *uuid.UUID) ([]domain.Campaign, error)
	Pending(ctx context.Context, advertiserID *uuid.UUID) ([]domain.Campaign, error)
	Expired(ctx context.Context, advertiserID *uuid.UUID) ([]domain.Campaign, error)

	Stats(ctx context.Context, actor domain.Actor, id int64) (*CampaignStats, error)
}

// CampaignStats contains the delivery counters of one campaign. Spent and
// Remaining are in the smallest currency unit.
type CampaignStats struct {
	CampaignID  int64
	Status      domain.CampaignStatus
	Impressions int64
	Clicks      int64
	Views       int64
	Spent       int64
	Remaining   int64
	CTR         float64
}

// ZoneUseCase serves the zone catalog.
type ZoneUseCase interface {
	List(ctx context.Context) ([]domain.Zone, error)
	ListActive(ctx context.Context) ([]domain.Zone, error)
	// WithinBudget returns active zones priced at most budget/impressions,
	// most expensive first.
	WithinBudget(ctx context.Context, budget, impressions int64) ([]domain.Zone, error)
	Create(ctx context.Context, actor domain.Actor, z domain.Zone) (*domain.Zone, error)
	SetPrice(ctx context.Context, actor domain.Actor, code string, price int64) (*domain.Zone, error)
	SetStatus(ctx context.Context, actor domain.Actor, code string, status domain.ZoneStatus) (*domain.Zone, error)
}

// CreativeUseCase manages creatives.
type CreativeUseCase interface {
	Create(ctx context.Context, actor domain.Actor, n domain.NewCreative) (*domain.Creative, error)
	Get(ctx context.Context, id int64) (*domain.Creative, error)
	Update(ctx context.Context, actor domain.Actor, id int64, patch domain.CreativePatch) (*domain.Creative, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
	List(ctx context.Context, f domain.CreativeFilter) ([]domain.Creative, error)
	IncrementViews(ctx context.Context, id int64, by int64) error
}

// PaymentUseCase reconciles gateway payments with campaign funding.
type PaymentUseCase interface {
	Initialize(ctx context.Context, actor domain.Actor, campaignID, amount int64) (*PaymentInit, error)
	// HandleWebhook authenticates and applies a gateway callback. Repeated
	// deliveries apply once.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	// Verify polls the gateway for reference and applies the result with
	// the same apply-once guard as the webhook.
	Verify(ctx context.Context, actor domain.Actor, reference string) (*domain.Payment, error)
	List(ctx context.Context, actor domain.Actor, campaignID int64) ([]domain.Payment, error)
}

// PaymentInit is returned to the advertiser starting a payment.
type PaymentInit struct {
	Reference   string
	RedirectURL string
	AccessCode  string
	Amount      int64
}

// DisputeUseCase runs the dispute workflow.
type DisputeUseCase interface {
	Create(ctx context.Context, actor domain.Actor, n NewDispute) (*domain.Dispute, error)
	List(ctx context.Context, actor domain.Actor) ([]domain.Dispute, error)
	Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Dispute, error)
	Advance(ctx context.Context, actor domain.Actor, id int64, to domain.DisputeStatus, response string) (*domain.Dispute, error)
}

// NewDispute holds the advertiser supplied fields of a dispute.
type NewDispute struct {
	CampaignID  *int64
	Subject     string
	Description string
}
