package port

import (
	"context"
	"time"
)

// GatewayStatus is the settlement state reported by the payment gateway.
type GatewayStatus string

const (
	GatewaySuccess   GatewayStatus = "success"
	GatewayFailed    GatewayStatus = "failed"
	GatewayAbandoned GatewayStatus = "abandoned"
	GatewayPending   GatewayStatus = "pending"
)

// InitializeRequest starts a hosted payment on the gateway.
type InitializeRequest struct {
	Email     string
	Amount    int64
	Reference string
	Metadata  map[string]string
}

// Authorization is the gateway handle the client is redirected to.
type Authorization struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// Verification is the gateway's view of a payment.
type Verification struct {
	Reference         string
	ProviderReference string
	Status            GatewayStatus
	Amount            int64
	PaidAt            *time.Time
}

// PaymentGateway is the external payment provider. Calls leave the process
// and must never be made on the serve path.
type PaymentGateway interface {
	Initialize(ctx context.Context, req InitializeRequest) (*Authorization, error)
	Verify(ctx context.Context, reference string) (*Verification, error)
}

// SignatureVerifier authenticates webhook payloads.
type SignatureVerifier interface {
	VerifySignature(payload []byte, signature string) bool
}

// Locker grants short-lived exclusive leases across instances.
type Locker interface {
	// TryLock acquires key for ttl. ok is false when another holder has it.
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}
