package usecase

import (
	"context"

	"courtdesk/internal/domain/closure"
	"courtdesk/internal/domain/schedule"
	"courtdesk/internal/infra"
	"courtdesk/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrClosureNotFound   = errs.New("closure not found")
	ErrSlotAlreadyClosed = errs.New("slot already closed")
	ErrSlotBooked        = errs.New("slot has a booking")
)

type ClosureRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*closure.Closure, error)
	FindBySlot(ctx context.Context, slot schedule.Slot) (*closure.Closure, error)
	FindByDate(ctx context.Context, date string) ([]*closure.Closure, error)
	Insert(ctx context.Context, c *closure.Closure) error
	InsertSkipExisting(ctx context.Context, c *closure.Closure) (bool, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteByDate(ctx context.Context, date, courtID string) (int64, error)
}

type CloseSlotParams struct {
	Date      string
	StartTime string
	CourtID   string
	Kind      string
	Reason    string
	ClosedBy  string
}

type CloseDayParams struct {
	Date     string
	CourtID  string
	Kind     string
	Reason   string
	ClosedBy string
}

type SlotStatus struct {
	IsClosed bool
	Closure  *closure.Closure
}

type CourtStatusUseCase interface {
	GetByDate(ctx context.Context, date string) ([]*closure.Closure, error)
	CloseSlot(ctx context.Context, params CloseSlotParams) ([]*closure.Closure, error)
	CloseDay(ctx context.Context, params CloseDayParams) ([]*closure.Closure, error)
	Reopen(ctx context.Context, id uuid.UUID) (*closure.Closure, error)
	ReopenDay(ctx context.Context, date, courtID string) (int64, error)
	CheckSlot(ctx context.Context, date, startTime, courtID string) (*SlotStatus, error)
}

type courtStatusUseCaseImpl struct {
	closureRepo ClosureRepository
	bookingRepo BookingRepository
}

func NewCourtStatusUseCase(closureRepo ClosureRepository, bookingRepo BookingRepository) CourtStatusUseCase {
	return &courtStatusUseCaseImpl{
		closureRepo: closureRepo,
		bookingRepo: bookingRepo,
	}
}

func (u *courtStatusUseCaseImpl) GetByDate(ctx context.Context, date string) ([]*closure.Closure, error) {
	if err := schedule.ValidateDate(date); err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	closures, err := u.closureRepo.FindByDate(ctx, date)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return closures, nil
}

// CloseSlot blocks one slot (or the same hour on both courts). Closing a
// slot that is already closed is a conflict, and so is closing a slot that
// holds a booking: a closure never overrides a committed reservation.
func (u *courtStatusUseCaseImpl) CloseSlot(ctx context.Context, params CloseSlotParams) ([]*closure.Closure, error) {
	if err := schedule.ValidateDate(params.Date); err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	if err := schedule.ValidateTime(params.StartTime); err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	kind, err := u.resolveKind(params.Kind)
	if err != nil {
		return nil, err
	}

	courts, err := schedule.ExpandCourts(params.CourtID)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	for _, court := range courts {
		slot := schedule.Slot{Date: params.Date, StartTime: params.StartTime, CourtID: court}

		if _, err := u.closureRepo.FindBySlot(ctx, slot); err == nil {
			conflict := &SlotConflictError{CourtID: court, StartTime: params.StartTime, Closed: true}
			return nil, errs.Mark(conflict, ErrSlotAlreadyClosed)
		} else if !infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if _, err := u.bookingRepo.FindBySlot(ctx, slot); err == nil {
			conflict := &SlotConflictError{CourtID: court, StartTime: params.StartTime}
			return nil, errs.Mark(conflict, ErrSlotBooked)
		} else if !infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	created := make([]*closure.Closure, 0, len(courts))
	for _, court := range courts {
		c, err := closure.NewClosure(
			schedule.Slot{Date: params.Date, StartTime: params.StartTime, CourtID: court},
			kind, params.Reason, params.ClosedBy,
		)
		if err != nil {
			return nil, errs.Mark(err, ErrValidation)
		}

		if err := u.closureRepo.Insert(ctx, c); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				conflict := &SlotConflictError{CourtID: court, StartTime: params.StartTime, Closed: true}
				return nil, errs.Mark(conflict, ErrSlotAlreadyClosed)
			}
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		created = append(created, c)
	}

	return created, nil
}

// CloseDay closes every slot of a day for the selected court(s). It is
// idempotent per slot: already-closed slots are skipped, and booked slots
// are left alone rather than failing the whole batch.
func (u *courtStatusUseCaseImpl) CloseDay(ctx context.Context, params CloseDayParams) ([]*closure.Closure, error) {
	if err := schedule.ValidateDate(params.Date); err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	kind, err := u.resolveKind(params.Kind)
	if err != nil {
		return nil, err
	}

	courts, err := schedule.ExpandCourts(params.CourtID)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	reason := params.Reason
	if reason == "" {
		reason = "Court closed for the day"
	}

	bookings, err := u.bookingRepo.FindByDate(ctx, params.Date)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	type slotKey struct {
		startTime string
		courtID   string
	}
	booked := make(map[slotKey]struct{}, len(bookings))
	for _, b := range bookings {
		booked[slotKey{b.Slot().StartTime, b.Slot().CourtID}] = struct{}{}
	}

	var created []*closure.Closure
	for _, court := range courts {
		for _, t := range schedule.TimeSlots {
			if _, ok := booked[slotKey{t, court}]; ok {
				continue
			}

			c, err := closure.NewClosure(
				schedule.Slot{Date: params.Date, StartTime: t, CourtID: court},
				kind, reason, params.ClosedBy,
			)
			if err != nil {
				return nil, errs.Mark(err, ErrValidation)
			}

			inserted, err := u.closureRepo.InsertSkipExisting(ctx, c)
			if err != nil {
				return nil, errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if inserted {
				created = append(created, c)
			}
		}
	}

	return created, nil
}

// Reopen deletes a closure. Bookings are never affected.
func (u *courtStatusUseCaseImpl) Reopen(ctx context.Context, id uuid.UUID) (*closure.Closure, error) {
	c, err := u.closureRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrClosureNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := u.closureRepo.DeleteByID(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrClosureNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return c, nil
}

func (u *courtStatusUseCaseImpl) ReopenDay(ctx context.Context, date, courtID string) (int64, error) {
	if err := schedule.ValidateDate(date); err != nil {
		return 0, errs.Mark(err, ErrValidation)
	}

	courts, err := schedule.ExpandCourts(courtID)
	if err != nil {
		return 0, errs.Mark(err, ErrValidation)
	}

	var total int64
	for _, court := range courts {
		count, err := u.closureRepo.DeleteByDate(ctx, date, court)
		if err != nil {
			return 0, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		total += count
	}
	return total, nil
}

func (u *courtStatusUseCaseImpl) CheckSlot(ctx context.Context, date, startTime, courtID string) (*SlotStatus, error) {
	if err := schedule.ValidateDate(date); err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	if err := schedule.ValidateTime(startTime); err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	if courtID != schedule.Court1 && courtID != schedule.Court2 {
		return nil, errs.Mark(schedule.ErrInvalidCourt, ErrValidation)
	}

	c, err := u.closureRepo.FindBySlot(ctx, schedule.Slot{Date: date, StartTime: startTime, CourtID: courtID})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &SlotStatus{IsClosed: false}, nil
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &SlotStatus{IsClosed: true, Closure: c}, nil
}

func (u *courtStatusUseCaseImpl) resolveKind(kind string) (closure.Kind, error) {
	if kind == "" {
		return closure.KindClosed, nil
	}
	k, err := closure.NewKind(kind)
	if err != nil {
		return "", errs.Mark(err, ErrValidation)
	}
	return k, nil
}
