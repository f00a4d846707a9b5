package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"adserve/internal/core/domain"
)

var zoneFields = []string{"code", "type", "price_per_view", "status", "created_at", "updated_at"}

func scanZone(row pgx.Row) (domain.Zone, error) {
	var z domain.Zone
	err := row.Scan(&z.Code, &z.Type, &z.PricePerView, &z.Status, &z.CreatedAt, &z.UpdatedAt)
	return z, err
}

// ZoneRepository implements port.ZoneRepository.
type ZoneRepository struct {
	pool *pgxpool.Pool
}

func NewZoneRepository(pool *pgxpool.Pool) *ZoneRepository {
	return &ZoneRepository{pool: pool}
}

func (r *ZoneRepository) Create(ctx context.Context, z *domain.Zone) error {
	if z.Status == "" {
		z.Status = domain.ZoneActive
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO zones (code, type, price_per_view, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+columns("", zoneFields),
		z.Code, z.Type, z.PricePerView, string(z.Status))
	created, err := scanZone(row)
	if code, _ := pgCode(err); code == codeUniqueViolation {
		return domain.NewConflictError("ZONE_EXISTS", "zone "+z.Code+" already exists", err)
	}
	if err != nil {
		return wrapError("create zone", "zone", z.Code, err)
	}
	*z = created
	return nil
}

func (r *ZoneRepository) Get(ctx context.Context, code string) (*domain.Zone, error) {
	z, err := scanZone(r.pool.QueryRow(ctx, `SELECT `+columns("", zoneFields)+` FROM zones WHERE code = $1`, code))
	if err != nil {
		return nil, wrapError("get zone", "zone", code, err)
	}
	return &z, nil
}

func (r *ZoneRepository) List(ctx context.Context) ([]domain.Zone, error) {
	return r.list(ctx, `SELECT `+columns("", zoneFields)+` FROM zones ORDER BY code`)
}

func (r *ZoneRepository) ListActive(ctx context.Context) ([]domain.Zone, error) {
	return r.list(ctx, `SELECT `+columns("", zoneFields)+` FROM zones WHERE status = 'active' ORDER BY price_per_view, code`)
}

func (r *ZoneRepository) list(ctx context.Context, query string) ([]domain.Zone, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapError("list zones", "zone", "", err)
	}
	zones, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Zone, error) {
		return scanZone(row)
	})
	if err != nil {
		return nil, wrapError("list zones", "zone", "", err)
	}
	return zones, nil
}

func (r *ZoneRepository) SetPrice(ctx context.Context, code string, price int64, now time.Time) (*domain.Zone, error) {
	z, err := scanZone(r.pool.QueryRow(ctx, `
		UPDATE zones SET price_per_view = $2, updated_at = $3
		WHERE code = $1
		RETURNING `+columns("", zoneFields), code, price, now))
	if err != nil {
		return nil, wrapError("set zone price", "zone", code, err)
	}
	return &z, nil
}

func (r *ZoneRepository) SetStatus(ctx context.Context, code string, status domain.ZoneStatus, now time.Time) (*domain.Zone, error) {
	z, err := scanZone(r.pool.QueryRow(ctx, `
		UPDATE zones SET status = $2, updated_at = $3
		WHERE code = $1
		RETURNING `+columns("", zoneFields), code, string(status), now))
	if err != nil {
		return nil, wrapError("set zone status", "zone", code, err)
	}
	return &z, nil
}
