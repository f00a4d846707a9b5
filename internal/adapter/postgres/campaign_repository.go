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

var campaignFields = []string{
	"id", "advertiser_id", "name", "budget", "daily_budget", "target_impressions",
	"current_impressions", "current_clicks", "views_delivered", "spent", "spent_today", "spent_day",
	"start_date", "end_date", "status", "funded_at", "created_at", "updated_at",
}

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID,
		&c.AdvertiserID,
		&c.Name,
		&c.Budget,
		&c.DailyBudget,
		&c.TargetImpressions,
		&c.CurrentImpressions,
		&c.CurrentClicks,
		&c.ViewsDelivered,
		&c.Spent,
		&c.SpentToday,
		&c.SpentDay,
		&c.StartDate,
		&c.EndDate,
		&c.Status,
		&c.FundedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// CampaignRepository implements port.CampaignRepository using pgxpool.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	created, err := scanCampaign(r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (advertiser_id, name, budget, daily_budget, target_impressions, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'DRAFT')
		RETURNING `+columns("", campaignFields),
		c.AdvertiserID, c.Name, c.Budget, c.DailyBudget, c.TargetImpressions, c.StartDate, c.EndDate))
	if err != nil {
		return wrapError("create campaign", "campaign", c.Name, err)
	}
	*c = created
	return nil
}

func (r *CampaignRepository) Get(ctx context.Context, id int64) (*domain.Campaign, error) {
	return getCampaign(ctx, r.pool, id, false)
}

func getCampaign(ctx context.Context, q querier, id int64, forUpdate bool) (*domain.Campaign, error) {
	query := `SELECT ` + columns("", campaignFields) + ` FROM campaigns WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	c, err := scanCampaign(q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, wrapError("get campaign", "campaign", id, err)
	}
	return &c, nil
}

// notUpdated resolves a guarded statement that matched no row into either
// not-found or the conflict produced by conflict.
func (r *CampaignRepository) notUpdated(ctx context.Context, id int64, conflict func(*domain.Campaign) error) error {
	c, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	return conflict(c)
}

func (r *CampaignRepository) Update(ctx context.Context, c *domain.Campaign) error {
	updated, err := scanCampaign(r.pool.QueryRow(ctx, `
		UPDATE campaigns
		SET name = $2, budget = $3, daily_budget = $4, target_impressions = $5,
		    start_date = $6, end_date = $7, updated_at = now()
		WHERE id = $1 AND status = 'DRAFT'
		RETURNING `+columns("", campaignFields),
		c.ID, c.Name, c.Budget, c.DailyBudget, c.TargetImpressions, c.StartDate, c.EndDate))
	if errors.Is(err, pgx.ErrNoRows) {
		return r.notUpdated(ctx, c.ID, func(cur *domain.Campaign) error {
			return domain.NewConflictError("CAMPAIGN_LOCKED",
				fmt.Sprintf("campaign %d can only be edited in %s", cur.ID, domain.CampaignDraft), nil)
		})
	}
	if err != nil {
		return wrapError("update campaign", "campaign", c.ID, err)
	}
	*c = updated
	return nil
}

func (r *CampaignRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1 AND status = 'DRAFT'`, id)
	if code, _ := pgCode(err); code == codeForeignKeyViolation {
		return domain.NewConflictError("CAMPAIGN_HAS_PAYMENTS",
			fmt.Sprintf("campaign %d is referenced by payments", id), err)
	}
	if err != nil {
		return wrapError("delete campaign", "campaign", id, err)
	}
	if tag.RowsAffected() == 0 {
		return r.notUpdated(ctx, id, func(cur *domain.Campaign) error {
			return domain.NewConflictError("CAMPAIGN_LOCKED",
				fmt.Sprintf("campaign %d can only be deleted in %s", cur.ID, domain.CampaignDraft), nil)
		})
	}
	return nil
}

func (r *CampaignRepository) List(ctx context.Context, f port.CampaignFilter) ([]domain.Campaign, error) {
	var (
		where []string
		args  []any
	)
	if f.AdvertiserID != nil {
		args = append(args, *f.AdvertiserID)
		where = append(where, fmt.Sprintf("advertiser_id = $%d", len(args)))
	}
	if len(f.Statuses) > 0 {
		args = append(args, toStrings(f.Statuses))
		where = append(where, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if f.EndedBefore != nil {
		args = append(args, *f.EndedBefore)
		where = append(where, fmt.Sprintf("end_date < $%d", len(args)))
	}
	query := `SELECT ` + columns("", campaignFields) + ` FROM campaigns`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapError("list campaigns", "campaign", "", err)
	}
	campaigns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		return scanCampaign(row)
	})
	if err != nil {
		return nil, wrapError("list campaigns", "campaign", "", err)
	}
	return campaigns, nil
}

func (r *CampaignRepository) Transition(ctx context.Context, id int64, from []domain.CampaignStatus, to domain.CampaignStatus, now time.Time) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx, `
		UPDATE campaigns SET status = $2, updated_at = $3
		WHERE id = $1 AND status = ANY($4)
		RETURNING `+columns("", campaignFields),
		id, string(to), now, toStrings(from)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.notUpdated(ctx, id, func(cur *domain.Campaign) error {
			return domain.NewConflictError(
				"ILLEGAL_TRANSITION",
				fmt.Sprintf("campaign %d is %s, cannot move to %s", id, cur.Status, to),
				domain.ErrIllegalTransition,
			)
		})
	}
	if err != nil {
		return nil, wrapError("transition campaign", "campaign", id, err)
	}
	return &c, nil
}

// debitSQL charges one impression in a single statement. Postgres re-checks
// the WHERE clause against the latest row version when a concurrent debit
// committed first, so two debits can never both see the last unit. The SET
// expressions read the pre-update row.
//
// It must decide exactly like domain.Campaign.Debit: the WHERE clause holds
// the Servable, remaining budget, target and daily cap guards in that order,
// and the status CASE is the post-debit RemainingBudget() == 0 ||
// TargetReached() completion. exhaustSQL is the failing branch of the same
// decision. campaign_repository_integration_test.go runs both against a live
// database.
var debitSQL = `
	UPDATE campaigns SET
		spent = spent + $2,
		current_impressions = current_impressions + 1,
		spent_today = CASE WHEN spent_day = $4::date THEN spent_today + $2 ELSE $2 END,
		spent_day = $4::date,
		status = CASE
			WHEN budget - spent - $2 = 0 THEN 'COMPLETED'
			WHEN target_impressions IS NOT NULL AND current_impressions + 1 >= target_impressions THEN 'COMPLETED'
			ELSE status
		END,
		updated_at = $3
	WHERE id = $1
	  AND status = 'ACTIVE'
	  AND start_date <= $3 AND end_date >= $3
	  AND budget - spent >= $2
	  AND (target_impressions IS NULL OR current_impressions + 1 <= target_impressions)
	  AND (daily_budget IS NULL
	       OR (CASE WHEN spent_day = $4::date THEN spent_today ELSE 0 END) + $2 <= daily_budget)
	RETURNING ` + columns("", campaignFields)

// exhaustSQL completes a servable campaign that can no longer pay for an
// impression at $2.
const exhaustSQL = `
	UPDATE campaigns SET status = 'COMPLETED', updated_at = $3
	WHERE id = $1
	  AND status = 'ACTIVE'
	  AND start_date <= $3 AND end_date >= $3
	  AND (budget - spent < $2
	       OR (target_impressions IS NOT NULL AND current_impressions + 1 > target_impressions))`

func (r *CampaignRepository) ConsumeImpression(ctx context.Context, id int64, price int64, now time.Time) (*domain.Campaign, error) {
	day := domain.UTCDay(now)
	c, err := scanCampaign(r.pool.QueryRow(ctx, debitSQL, id, price, now, day))
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, wrapError("consume impression", "campaign", id, err)
	}

	tag, err := r.pool.Exec(ctx, exhaustSQL, id, price, now)
	if err != nil {
		return nil, wrapError("exhaust campaign", "campaign", id, err)
	}
	if tag.RowsAffected() == 1 {
		return nil, domain.NewBudgetExhaustedError(id)
	}

	cur, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur.Servable(now) && cur.DailyBudget != nil {
		return nil, domain.ErrDailyCapReached
	}
	return nil, domain.ErrCampaignNotServable
}

func (r *CampaignRepository) RecordClick(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET current_clicks = current_clicks + 1 WHERE id = $1`, id)
	if err != nil {
		return wrapError("record click", "campaign", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("campaign", id)
	}
	return nil
}

func (r *CampaignRepository) ExpireOverdue(ctx context.Context, now time.Time) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE campaigns SET status = 'EXPIRED', updated_at = $1
		WHERE status = ANY($2) AND end_date < $1
		RETURNING id`,
		now, toStrings(domain.SourcesFor(domain.EventExpire)))
	if err != nil {
		return nil, wrapError("expire campaigns", "campaign", "", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, wrapError("expire campaigns", "campaign", "", err)
	}
	return ids, nil
}
