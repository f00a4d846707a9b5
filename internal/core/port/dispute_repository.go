package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"adserve/internal/core/domain"
)

// DisputeRepository stores advertiser disputes.
type DisputeRepository interface {
	Create(ctx context.Context, d *domain.Dispute) error
	Get(ctx context.Context, id int64) (*domain.Dispute, error)
	// List returns disputes newest first; a nil advertiser lists all.
	List(ctx context.Context, advertiserID *uuid.UUID) ([]domain.Dispute, error)
	// Advance moves the dispute from `from` to `to`, recording the admin
	// response and handler. A dispute no longer in `from` yields a conflict
	// error.
	Advance(ctx context.Context, id int64, from, to domain.DisputeStatus, response *string, handledBy uuid.UUID, now time.Time) (*domain.Dispute, error)
}
