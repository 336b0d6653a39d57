package repository

import (
	"context"

	"courtdesk/internal/domain/closure"
	"courtdesk/internal/domain/schedule"
	"courtdesk/internal/infra"
	"courtdesk/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const closureColumns = `id, date, start_time, court_id, kind, reason, closed_by, created_at`

type ClosureRepository struct {
	pool *pgxpool.Pool
}

func NewClosureRepository(pool *pgxpool.Pool) *ClosureRepository {
	return &ClosureRepository{pool: pool}
}

func (r *ClosureRepository) FindByID(ctx context.Context, id uuid.UUID) (*closure.Closure, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+closureColumns+` FROM court_closures WHERE id = $1`, id)

	c, err := scanClosure(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("closure not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find closure by id", err)
	}
	return c, nil
}

func (r *ClosureRepository) FindBySlot(ctx context.Context, slot schedule.Slot) (*closure.Closure, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+closureColumns+` FROM court_closures
		 WHERE date = $1 AND start_time = $2 AND court_id = $3`,
		slot.Date, slot.StartTime, slot.CourtID)

	c, err := scanClosure(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("closure not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find closure by slot", err)
	}
	return c, nil
}

func (r *ClosureRepository) FindByDate(ctx context.Context, date string) ([]*closure.Closure, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+closureColumns+` FROM court_closures
		 WHERE date = $1 ORDER BY start_time, court_id`, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find closures by date", err)
	}
	defer rows.Close()

	var result []*closure.Closure
	for rows.Next() {
		c, err := scanClosure(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan closure row", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read closure rows", err)
	}
	return result, nil
}

func (r *ClosureRepository) Insert(ctx context.Context, c *closure.Closure) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO court_closures (id, date, start_time, court_id, kind, reason, closed_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID(), c.Slot().Date, c.Slot().StartTime, c.Slot().CourtID,
		c.Kind().String(), c.Reason(), c.ClosedBy())
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("slot already closed", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert closure", err)
	}
	return nil
}

// InsertSkipExisting is the idempotent variant used by whole-day closure:
// a slot that is already closed is silently skipped.
func (r *ClosureRepository) InsertSkipExisting(ctx context.Context, c *closure.Closure) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO court_closures (id, date, start_time, court_id, kind, reason, closed_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (date, start_time, court_id) DO NOTHING`,
		c.ID(), c.Slot().Date, c.Slot().StartTime, c.Slot().CourtID,
		c.Kind().String(), c.Reason(), c.ClosedBy())
	if err != nil {
		return false, infra.WrapRepoErr("failed to upsert closure", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ClosureRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM court_closures WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete closure", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("closure not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ClosureRepository) DeleteByDate(ctx context.Context, date, courtID string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM court_closures WHERE date = $1 AND court_id = $2`, date, courtID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete closures by date", err)
	}
	return tag.RowsAffected(), nil
}

func scanClosure(row pgx.Row) (*closure.Closure, error) {
	var (
		id               uuid.UUID
		date, startTime  string
		courtID, kind    string
		reason, closedBy string
		createdAt        pgtype.Timestamptz
	)

	err := row.Scan(&id, &date, &startTime, &courtID, &kind, &reason, &closedBy, &createdAt)
	if err != nil {
		return nil, err
	}

	return closure.ReconstructClosure(
		id,
		schedule.Slot{Date: date, StartTime: startTime, CourtID: courtID},
		closure.Kind(kind),
		reason, closedBy,
		pgconv.TimeFromPgtype(createdAt),
	), nil
}
