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

var creativeFields = []string{
	"id", "campaign_id", "zone_code", "type", "format", "url", "destination_url",
	"width", "height", "price_per_view", "number_of_views", "created_at", "updated_at",
}

func creativeDest(c *domain.Creative) []any {
	return []any{
		&c.ID,
		&c.CampaignID,
		&c.ZoneCode,
		&c.Type,
		&c.Format,
		&c.URL,
		&c.DestinationURL,
		&c.Width,
		&c.Height,
		&c.PricePerView,
		&c.NumberOfViews,
		&c.CreatedAt,
		&c.UpdatedAt,
	}
}

func scanCreative(row pgx.Row) (domain.Creative, error) {
	var c domain.Creative
	err := row.Scan(creativeDest(&c)...)
	return c, err
}

// CreativeRepository implements port.CreativeRepository.
type CreativeRepository struct {
	pool *pgxpool.Pool
}

func NewCreativeRepository(pool *pgxpool.Pool) *CreativeRepository {
	return &CreativeRepository{pool: pool}
}

// Create reads the zone price in the insert itself so the locked price is
// the one current when the row is written.
func (r *CreativeRepository) Create(ctx context.Context, c *domain.Creative) error {
	created, err := scanCreative(r.pool.QueryRow(ctx, `
		INSERT INTO creatives (campaign_id, zone_code, type, format, url, destination_url, width, height, price_per_view)
		SELECT $1, z.code, $3, lower($4), $5, $6, $7, $8, z.price_per_view
		FROM zones z WHERE z.code = $2
		RETURNING `+columns("", creativeFields),
		c.CampaignID, c.ZoneCode, string(c.Type), c.Format, c.URL, c.DestinationURL, c.Width, c.Height))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewNotFoundError("zone", c.ZoneCode)
	}
	if code, _ := pgCode(err); code == codeForeignKeyViolation {
		return domain.NewNotFoundError("campaign", c.CampaignID)
	}
	if err != nil {
		return wrapError("create creative", "creative", c.URL, err)
	}
	*c = created
	return nil
}

func (r *CreativeRepository) Get(ctx context.Context, id int64) (*domain.Creative, error) {
	c, err := scanCreative(r.pool.QueryRow(ctx, `SELECT `+columns("", creativeFields)+` FROM creatives WHERE id = $1`, id))
	if err != nil {
		return nil, wrapError("get creative", "creative", id, err)
	}
	return &c, nil
}

func (r *CreativeRepository) Update(ctx context.Context, c *domain.Creative, w port.CreativeWrite) error {
	updated, err := scanCreative(r.pool.QueryRow(ctx, `
		UPDATE creatives cr SET
			zone_code = z.code, type = $3, format = lower($4), url = $5, destination_url = $6,
			width = $7, height = $8,
			number_of_views = CASE WHEN $9 THEN 0 ELSE cr.number_of_views END,
			price_per_view = CASE WHEN $10 THEN z.price_per_view ELSE cr.price_per_view END,
			updated_at = now()
		FROM zones z
		WHERE cr.id = $1 AND z.code = $2
		RETURNING `+columns("cr", creativeFields),
		c.ID, c.ZoneCode, string(c.Type), c.Format, c.URL, c.DestinationURL,
		c.Width, c.Height, w.ResetViews, w.Rebind))
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := r.Get(ctx, c.ID); getErr != nil {
			return getErr
		}
		return domain.NewNotFoundError("zone", c.ZoneCode)
	}
	if err != nil {
		return wrapError("update creative", "creative", c.ID, err)
	}
	*c = updated
	return nil
}

func (r *CreativeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM creatives WHERE id = $1`, id)
	if err != nil {
		return wrapError("delete creative", "creative", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("creative", id)
	}
	return nil
}

func (r *CreativeRepository) List(ctx context.Context, f domain.CreativeFilter) ([]domain.Creative, error) {
	var (
		where []string
		args  []any
	)
	from := `creatives cr`
	if f.CampaignID != 0 {
		args = append(args, f.CampaignID)
		where = append(where, fmt.Sprintf("cr.campaign_id = $%d", len(args)))
	}
	if f.ZoneCode != "" {
		args = append(args, f.ZoneCode)
		where = append(where, fmt.Sprintf("cr.zone_code = $%d", len(args)))
	}
	if f.Width != 0 {
		args = append(args, f.Width)
		where = append(where, fmt.Sprintf("cr.width = $%d", len(args)))
	}
	if f.Height != 0 {
		args = append(args, f.Height)
		where = append(where, fmt.Sprintf("cr.height = $%d", len(args)))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, "%"+q+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(cr.url ILIKE $%[1]d OR cr.destination_url ILIKE $%[1]d OR cr.zone_code ILIKE $%[1]d OR cr.format ILIKE $%[1]d OR cr.type ILIKE $%[1]d)", n))
	}
	if f.ActiveAt != nil {
		from += ` JOIN campaigns k ON k.id = cr.campaign_id`
		args = append(args, *f.ActiveAt)
		where = append(where, fmt.Sprintf("k.status = 'ACTIVE' AND k.start_date <= $%[1]d AND k.end_date >= $%[1]d", len(args)))
	}

	query := `SELECT ` + columns("cr", creativeFields) + ` FROM ` + from
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	if f.TopN > 0 {
		args = append(args, f.TopN)
		query += fmt.Sprintf(` ORDER BY cr.number_of_views DESC, cr.id LIMIT $%d`, len(args))
	} else {
		query += ` ORDER BY cr.id`
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapError("list creatives", "creative", "", err)
	}
	creatives, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Creative, error) {
		return scanCreative(row)
	})
	if err != nil {
		return nil, wrapError("list creatives", "creative", "", err)
	}
	return creatives, nil
}

func (r *CreativeRepository) IncrementViews(ctx context.Context, id int64, by int64) error {
	tag, err := r.pool.Exec(ctx, `
		WITH cr AS (
			UPDATE creatives SET number_of_views = number_of_views + $2
			WHERE id = $1
			RETURNING campaign_id
		)
		UPDATE campaigns SET views_delivered = views_delivered + $2
		WHERE id = (SELECT campaign_id FROM cr)`, id, by)
	if err != nil {
		return wrapError("increment views", "creative", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("creative", id)
	}
	return nil
}

// EligibleForZone returns creatives whose zone is active and whose
// campaign is ACTIVE and in window at now. The window is checked here and
// not left to the expiry sweep.
func (r *CreativeRepository) EligibleForZone(ctx context.Context, zoneCode string, now time.Time) ([]port.CreativeCandidate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+columns("cr", creativeFields)+`, `+columns("k", campaignFields)+`
		FROM creatives cr
		JOIN campaigns k ON k.id = cr.campaign_id
		JOIN zones z ON z.code = cr.zone_code
		WHERE cr.zone_code = $1
		  AND z.status = 'active'
		  AND k.status = 'ACTIVE'
		  AND k.start_date <= $2 AND k.end_date >= $2
		ORDER BY cr.id`, zoneCode, now)
	if err != nil {
		return nil, wrapError("eligible creatives", "zone", zoneCode, err)
	}
	candidates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (port.CreativeCandidate, error) {
		var cand port.CreativeCandidate
		k := &cand.Campaign
		dest := append(creativeDest(&cand.Creative),
			&k.ID, &k.AdvertiserID, &k.Name, &k.Budget, &k.DailyBudget, &k.TargetImpressions,
			&k.CurrentImpressions, &k.CurrentClicks, &k.ViewsDelivered, &k.Spent, &k.SpentToday, &k.SpentDay,
			&k.StartDate, &k.EndDate, &k.Status, &k.FundedAt, &k.CreatedAt, &k.UpdatedAt,
		)
		err := row.Scan(dest...)
		return cand, err
	})
	if err != nil {
		return nil, wrapError("eligible creatives", "zone", zoneCode, err)
	}
	return candidates, nil
}
