package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"adserve/internal/core/domain"
)

// PaymentFilter narrows payment listings.
type PaymentFilter struct {
	AdvertiserID *uuid.UUID
	CampaignID   int64
}

// ConfirmFundingParams identifies a payment being confirmed as successful.
type ConfirmFundingParams struct {
	Reference         string
	ProviderReference *string
	VerifiedAt        time.Time
}

// FundingResult reports the effect of a confirmation.
type FundingResult struct {
	Payment domain.Payment
	// Applied is true only for the single call that moved the payment from
	// pending to successful.
	Applied bool
	// Campaign is the funded campaign after the confirmation, when Applied.
	Campaign *domain.Campaign
	// CampaignTransitioned is true when the campaign status changed.
	CampaignTransitioned bool
}

// PaymentRepository stores payments.
type PaymentRepository interface {
	// Create stores a pending payment. A duplicate reference yields a
	// conflict error.
	Create(ctx context.Context, p *domain.Payment) error
	GetByReference(ctx context.Context, reference string) (*domain.Payment, error)
	List(ctx context.Context, f PaymentFilter) ([]domain.Payment, error)
	// SumSuccessful returns the total successfully paid for a campaign.
	SumSuccessful(ctx context.Context, campaignID int64) (int64, error)

	// ConfirmFunding flips a pending payment to successful and applies the
	// funding transition of its campaign in one atomic unit. Calls for an
	// already settled payment return Applied false and change nothing.
	ConfirmFunding(ctx context.Context, p ConfirmFundingParams) (FundingResult, error)

	// MarkFailed flips a pending payment to failed. It returns the payment
	// and whether this call changed it.
	MarkFailed(ctx context.Context, reference string, providerReference *string, now time.Time) (*domain.Payment, bool, error)
}
