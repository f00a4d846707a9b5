package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"adserve/internal/core/domain"
	"adserve/internal/core/port"
)

var paymentFields = []string{
	"id", "reference", "provider_reference", "advertiser_id", "COALESCE(campaign_id, 0)", "amount",
	"status", "type", "verified_at", "created_at", "updated_at",
}

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(
		&p.ID,
		&p.Reference,
		&p.ProviderReference,
		&p.AdvertiserID,
		&p.CampaignID,
		&p.Amount,
		&p.Status,
		&p.Type,
		&p.VerifiedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// PaymentRepository implements port.PaymentRepository.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	created, err := scanPayment(r.pool.QueryRow(ctx, `
		INSERT INTO payments (reference, advertiser_id, campaign_id, amount, status, type)
		VALUES ($1, $2, NULLIF($3::bigint, 0), $4, 'pending', $5)
		RETURNING `+columns("", paymentFields),
		p.Reference, p.AdvertiserID, p.CampaignID, p.Amount, string(p.Type)))
	switch code, _ := pgCode(err); code {
	case codeUniqueViolation:
		return domain.NewConflictError("DUPLICATE_REFERENCE", "payment reference already exists", err)
	case codeForeignKeyViolation:
		return domain.NewNotFoundError("campaign", p.CampaignID)
	}
	if err != nil {
		return wrapError("create payment", "payment", p.Reference, err)
	}
	*p = created
	return nil
}

func (r *PaymentRepository) GetByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	return getPayment(ctx, r.pool, reference)
}

func getPayment(ctx context.Context, q querier, reference string) (*domain.Payment, error) {
	p, err := scanPayment(q.QueryRow(ctx, `SELECT `+columns("", paymentFields)+` FROM payments WHERE reference = $1`, reference))
	if err != nil {
		return nil, wrapError("get payment", "payment", reference, err)
	}
	return &p, nil
}

func (r *PaymentRepository) List(ctx context.Context, f port.PaymentFilter) ([]domain.Payment, error) {
	var (
		where []string
		args  []any
	)
	if f.AdvertiserID != nil {
		args = append(args, *f.AdvertiserID)
		where = append(where, fmt.Sprintf("advertiser_id = $%d", len(args)))
	}
	if f.CampaignID != 0 {
		args = append(args, f.CampaignID)
		where = append(where, fmt.Sprintf("campaign_id = $%d", len(args)))
	}
	query := `SELECT ` + columns("", paymentFields) + ` FROM payments`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapError("list payments", "payment", "", err)
	}
	payments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Payment, error) {
		return scanPayment(row)
	})
	if err != nil {
		return nil, wrapError("list payments", "payment", "", err)
	}
	return payments, nil
}

func (r *PaymentRepository) SumSuccessful(ctx context.Context, campaignID int64) (int64, error) {
	var sum int64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(sum(amount), 0)::bigint FROM payments
		WHERE campaign_id = $1 AND status = 'successful'`, campaignID).Scan(&sum)
	if err != nil {
		return 0, wrapError("sum payments", "campaign", campaignID, err)
	}
	return sum, nil
}

// ConfirmFunding flips the payment with a status guard and applies the
// campaign transition under a row lock, in one transaction. Only the caller
// whose guarded update hits the row sees Applied.
func (r *PaymentRepository) ConfirmFunding(ctx context.Context, params port.ConfirmFundingParams) (res port.FundingResult, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return res, wrapError("begin funding", "payment", params.Reference, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
			if err != nil {
				err = wrapError("commit funding", "payment", params.Reference, err)
			}
		}
	}()

	now := params.VerifiedAt
	p, err := scanPayment(tx.QueryRow(ctx, `
		UPDATE payments SET
			status = 'successful',
			provider_reference = COALESCE($2, provider_reference),
			verified_at = $3,
			updated_at = $3
		WHERE reference = $1 AND status = 'pending'
		RETURNING `+columns("", paymentFields),
		params.Reference, params.ProviderReference, now))
	if errors.Is(err, pgx.ErrNoRows) {
		cur, getErr := getPayment(ctx, tx, params.Reference)
		if getErr != nil {
			err = getErr
			return res, err
		}
		res.Payment = *cur
		err = nil
		return res, nil
	}
	if code, _ := pgCode(err); code == codeUniqueViolation {
		err = domain.NewConflictError("DUPLICATE_PROVIDER_REFERENCE", "provider reference already used", err)
		return res, err
	}
	if err != nil {
		err = wrapError("confirm payment", "payment", params.Reference, err)
		return res, err
	}
	res.Payment = p
	res.Applied = true
	if p.CampaignID == 0 {
		return res, nil
	}

	c, err := getCampaign(ctx, tx, p.CampaignID, true)
	if err != nil {
		return res, err
	}
	to, ok := c.FundedStatus(now)
	if !ok {
		res.Campaign = c
		return res, nil
	}
	updated, err := scanCampaign(tx.QueryRow(ctx, `
		UPDATE campaigns SET
			status = $2,
			funded_at = CASE WHEN $2 = 'ACTIVE' THEN $3 ELSE funded_at END,
			updated_at = $3
		WHERE id = $1
		RETURNING `+columns("", campaignFields),
		c.ID, string(to), now))
	if err != nil {
		err = wrapError("fund campaign", "campaign", c.ID, err)
		return res, err
	}
	res.Campaign = &updated
	res.CampaignTransitioned = true
	return res, nil
}

func (r *PaymentRepository) MarkFailed(ctx context.Context, reference string, providerReference *string, now time.Time) (*domain.Payment, bool, error) {
	p, err := scanPayment(r.pool.QueryRow(ctx, `
		UPDATE payments SET
			status = 'failed',
			provider_reference = COALESCE($2, provider_reference),
			updated_at = $3
		WHERE reference = $1 AND status = 'pending'
		RETURNING `+columns("", paymentFields),
		reference, providerReference, now))
	if errors.Is(err, pgx.ErrNoRows) {
		cur, err := r.GetByReference(ctx, reference)
		if err != nil {
			return nil, false, err
		}
		return cur, false, nil
	}
	if code, _ := pgCode(err); code == codeUniqueViolation {
		return nil, false, domain.NewConflictError("DUPLICATE_PROVIDER_REFERENCE", "provider reference already used", err)
	}
	if err != nil {
		return nil, false, wrapError("fail payment", "payment", reference, err)
	}
	return &p, true, nil
}
