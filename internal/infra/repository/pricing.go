package repository

import (
	"context"

	"courtdesk/internal/domain/pricing"
	"courtdesk/internal/infra"
	"courtdesk/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pricingColumns = `id, price_per_court_per_hour, effective_date, changed_by, reason, created_at, updated_at`

type PricingRepository struct {
	pool *pgxpool.Pool
}

func NewPricingRepository(pool *pgxpool.Pool) *PricingRepository {
	return &PricingRepository{pool: pool}
}

// FindEffective returns the record governing asOf: the greatest effective
// date on or before it, ties broken by the latest audit stamp.
func (r *PricingRepository) FindEffective(ctx context.Context, asOf string) (*pricing.Record, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+pricingColumns+` FROM court_pricing
		 WHERE effective_date <= $1
		 ORDER BY effective_date DESC, created_at DESC
		 LIMIT 1`, asOf)

	rec, err := scanPricing(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("pricing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find effective pricing", err)
	}
	return rec, nil
}

func (r *PricingRepository) FindByEffectiveDate(ctx context.Context, effectiveDate string) (*pricing.Record, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+pricingColumns+` FROM court_pricing WHERE effective_date = $1`, effectiveDate)

	rec, err := scanPricing(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("pricing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find pricing by effective date", err)
	}
	return rec, nil
}

func (r *PricingRepository) FindHistory(ctx context.Context, limit int32) ([]*pricing.Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+pricingColumns+` FROM court_pricing
		 ORDER BY effective_date DESC, created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find pricing history", err)
	}
	defer rows.Close()

	var result []*pricing.Record
	for rows.Next() {
		rec, err := scanPricing(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan pricing row", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read pricing rows", err)
	}
	return result, nil
}

// Upsert creates a record, or updates in place when one already exists for
// the effective date. At most one record per effective date.
func (r *PricingRepository) Upsert(ctx context.Context, rec *pricing.Record) (*pricing.Record, bool, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO court_pricing (id, price_per_court_per_hour, effective_date, changed_by, reason)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (effective_date) DO UPDATE
		 SET price_per_court_per_hour = EXCLUDED.price_per_court_per_hour,
		     changed_by = EXCLUDED.changed_by,
		     reason = EXCLUDED.reason,
		     updated_at = now()
		 RETURNING `+pricingColumns+`, (xmax = 0) AS inserted`,
		rec.ID, rec.PricePerCourtPerHour, rec.EffectiveDate, rec.ChangedBy, rec.Reason)

	var (
		stored    pricing.Record
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
		inserted  bool
	)
	err := row.Scan(&stored.ID, &stored.PricePerCourtPerHour, &stored.EffectiveDate,
		&stored.ChangedBy, &stored.Reason, &createdAt, &updatedAt, &inserted)
	if err != nil {
		return nil, false, infra.WrapRepoErr("failed to upsert pricing", err)
	}
	stored.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	stored.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	return &stored, inserted, nil
}

func (r *PricingRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM court_pricing WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete pricing", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("pricing not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanPricing(row pgx.Row) (*pricing.Record, error) {
	var (
		rec       pricing.Record
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&rec.ID, &rec.PricePerCourtPerHour, &rec.EffectiveDate,
		&rec.ChangedBy, &rec.Reason, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	rec.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	rec.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &rec, nil
}
