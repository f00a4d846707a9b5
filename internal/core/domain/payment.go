package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentSuccessful PaymentStatus = "successful"
	PaymentFailed     PaymentStatus = "failed"
	PaymentCancelled  PaymentStatus = "cancelled"
	PaymentRefunded   PaymentStatus = "refunded"
)

// PaymentType names what a payment funds. Only advertisement payments are
// handled by this engine.
type PaymentType string

const (
	PaymentAdvertisement PaymentType = "advertisement"
	PaymentDonation      PaymentType = "donation"
	PaymentSubscription  PaymentType = "subscription"
)

// Payment is an externally settled funding of a campaign.
type Payment struct {
	ID                int64         `json:"id"`
	Reference         string        `json:"reference"`
	ProviderReference *string       `json:"provider_reference,omitempty"`
	AdvertiserID      uuid.UUID     `json:"advertiser_id"`
	CampaignID        int64         `json:"campaign_id"`
	Amount            int64         `json:"amount"`
	Status            PaymentStatus `json:"status"`
	Type              PaymentType   `json:"type"`
	VerifiedAt        *time.Time    `json:"verified_at,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// Settled reports whether the payment has left pending.
func (p *Payment) Settled() bool {
	return p.Status != PaymentPending
}

// NewPaymentReference returns a fresh caller-side payment reference.
func NewPaymentReference() string {
	return "adv_" + uuid.NewString()
}
