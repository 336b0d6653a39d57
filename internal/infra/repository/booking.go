package repository

import (
	"context"
	"errors"
	"log/slog"

	"courtdesk/internal/domain/booking"
	"courtdesk/internal/domain/schedule"
	"courtdesk/internal/infra"
	"courtdesk/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgErrCodeUniqueViolation = "23505"

const bookingColumns = `id, date, start_time, end_time, court_id, customer_name, mobile_number, status, price, group_id, created_at, updated_at`

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)

	b, err := scanBooking(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by id", err)
	}
	return b, nil
}

func (r *BookingRepository) FindBySlot(ctx context.Context, slot schedule.Slot) (*booking.Booking, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE date = $1 AND start_time = $2 AND court_id = $3`,
		slot.Date, slot.StartTime, slot.CourtID)

	b, err := scanBooking(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by slot", err)
	}
	return b, nil
}

func (r *BookingRepository) FindByDate(ctx context.Context, date string) ([]*booking.Booking, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE date = $1 ORDER BY start_time, court_id`, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by date", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *BookingRepository) FindByGroup(ctx context.Context, groupID uuid.UUID) ([]*booking.Booking, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE group_id = $1 ORDER BY start_time, court_id`, groupID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by group", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// InsertBatch commits every booking of one request inside a single
// transaction. The unique index on (date, start_time, court_id) is the final
// arbiter against concurrent requests: any violation rolls the whole batch
// back and surfaces as KindDuplicateKey.
func (r *BookingRepository) InsertBatch(ctx context.Context, bookings []*booking.Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin transaction", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	for _, b := range bookings {
		_, err := tx.Exec(ctx,
			`INSERT INTO bookings (id, date, start_time, end_time, court_id, customer_name, mobile_number, status, price, group_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			b.ID(), b.Slot().Date, b.Slot().StartTime, b.EndTime(), b.Slot().CourtID,
			b.CustomerName(), b.MobileNumber(), b.Status().String(), b.Price(),
			pgconv.UUIDPtrToPgtype(b.GroupID()),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return infra.WrapRepoErr("slot already booked", err, infra.KindDuplicateKey)
			}
			return infra.WrapRepoErr("failed to insert booking", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit booking batch", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE bookings
		 SET customer_name = $2, mobile_number = $3, status = $4, updated_at = now()
		 WHERE id = $1`,
		b.ID(), b.CustomerName(), b.MobileNumber(), b.Status().String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) UpdateStatusByGroup(ctx context.Context, groupID uuid.UUID, status booking.Status) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = now() WHERE group_id = $1`,
		groupID, status.String())
	if err != nil {
		return 0, infra.WrapRepoErr("failed to update booking group status", err)
	}
	return tag.RowsAffected(), nil
}

func (r *BookingRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) DeleteByGroup(ctx context.Context, groupID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE group_id = $1`, groupID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete booking group", err)
	}
	return tag.RowsAffected(), nil
}

func (r *BookingRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to bulk delete bookings", err)
	}
	return tag.RowsAffected(), nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id                       uuid.UUID
		date, startTime, endTime string
		courtID, name, mobile    string
		status                   string
		price                    int64
		groupID                  pgtype.UUID
		createdAt, updatedAt     pgtype.Timestamptz
	)

	err := row.Scan(&id, &date, &startTime, &endTime, &courtID, &name, &mobile,
		&status, &price, &groupID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		id,
		schedule.Slot{Date: date, StartTime: startTime, CourtID: courtID},
		endTime,
		name, mobile,
		booking.Status(status),
		price,
		pgconv.UUIDPtrFromPgtype(groupID),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func collectBookings(rows pgx.Rows) ([]*booking.Booking, error) {
	var result []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return result, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation
}
