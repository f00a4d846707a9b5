package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"adserve/internal/core/domain"
)

var disputeFields = []string{
	"id", "advertiser_id", "campaign_id", "subject", "description", "status",
	"admin_response", "handled_by", "created_at", "updated_at",
}

func scanDispute(row pgx.Row) (domain.Dispute, error) {
	var d domain.Dispute
	err := row.Scan(
		&d.ID,
		&d.AdvertiserID,
		&d.CampaignID,
		&d.Subject,
		&d.Description,
		&d.Status,
		&d.AdminResponse,
		&d.HandledBy,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

// DisputeRepository implements port.DisputeRepository.
type DisputeRepository struct {
	pool *pgxpool.Pool
}

func NewDisputeRepository(pool *pgxpool.Pool) *DisputeRepository {
	return &DisputeRepository{pool: pool}
}

func (r *DisputeRepository) Create(ctx context.Context, d *domain.Dispute) error {
	created, err := scanDispute(r.pool.QueryRow(ctx, `
		INSERT INTO disputes (advertiser_id, campaign_id, subject, description, status)
		VALUES ($1, $2, $3, $4, 'open')
		RETURNING `+columns("", disputeFields),
		d.AdvertiserID, d.CampaignID, d.Subject, d.Description))
	if code, _ := pgCode(err); code == codeForeignKeyViolation && d.CampaignID != nil {
		return domain.NewNotFoundError("campaign", *d.CampaignID)
	}
	if err != nil {
		return wrapError("create dispute", "dispute", d.Subject, err)
	}
	*d = created
	return nil
}

func (r *DisputeRepository) Get(ctx context.Context, id int64) (*domain.Dispute, error) {
	d, err := scanDispute(r.pool.QueryRow(ctx, `SELECT `+columns("", disputeFields)+` FROM disputes WHERE id = $1`, id))
	if err != nil {
		return nil, wrapError("get dispute", "dispute", id, err)
	}
	return &d, nil
}

func (r *DisputeRepository) List(ctx context.Context, advertiserID *uuid.UUID) ([]domain.Dispute, error) {
	query := `SELECT ` + columns("", disputeFields) + ` FROM disputes`
	var args []any
	if advertiserID != nil {
		query += ` WHERE advertiser_id = $1`
		args = append(args, *advertiserID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapError("list disputes", "dispute", "", err)
	}
	disputes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Dispute, error) {
		return scanDispute(row)
	})
	if err != nil {
		return nil, wrapError("list disputes", "dispute", "", err)
	}
	return disputes, nil
}

func (r *DisputeRepository) Advance(ctx context.Context, id int64, from, to domain.DisputeStatus, response *string, handledBy uuid.UUID, now time.Time) (*domain.Dispute, error) {
	d, err := scanDispute(r.pool.QueryRow(ctx, `
		UPDATE disputes SET
			status = $3,
			admin_response = COALESCE($4, admin_response),
			handled_by = $5,
			updated_at = $6
		WHERE id = $1 AND status = $2
		RETURNING `+columns("", disputeFields),
		id, string(from), string(to), response, handledBy, now))
	if errors.Is(err, pgx.ErrNoRows) {
		cur, getErr := r.Get(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, domain.NewConflictError(
			"ILLEGAL_TRANSITION",
			fmt.Sprintf("dispute %d is %s, not %s", id, cur.Status, from),
			domain.ErrIllegalTransition,
		)
	}
	if err != nil {
		return nil, wrapError("advance dispute", "dispute", id, err)
	}
	return &d, nil
}
