package usecase

import (
	"context"
	"fmt"

	"courtdesk/internal/domain/booking"
	"courtdesk/internal/domain/closure"
	"courtdesk/internal/domain/pricing"
	"courtdesk/internal/domain/schedule"
	"courtdesk/internal/infra"
	"courtdesk/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound         = errs.New("booking not found")
	ErrSlotUnavailable         = errs.New("slot unavailable")
	ErrValidation              = errs.New("validation error")
	ErrStatusTerminal          = errs.New("booking status is terminal")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// SlotConflictError names the first blocking slot of a rejected request.
type SlotConflictError struct {
	CourtID   string
	StartTime string
	Closed    bool
}

func (e *SlotConflictError) Error() string {
	if e.Closed {
		return fmt.Sprintf("%s is closed at %s", e.CourtID, e.StartTime)
	}
	return fmt.Sprintf("%s is already booked at %s", e.CourtID, e.StartTime)
}

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindBySlot(ctx context.Context, slot schedule.Slot) (*booking.Booking, error)
	FindByDate(ctx context.Context, date string) ([]*booking.Booking, error)
	FindByGroup(ctx context.Context, groupID uuid.UUID) ([]*booking.Booking, error)
	InsertBatch(ctx context.Context, bookings []*booking.Booking) error
	Update(ctx context.Context, b *booking.Booking) error
	UpdateStatusByGroup(ctx context.Context, groupID uuid.UUID, status booking.Status) (int64, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteByGroup(ctx context.Context, groupID uuid.UUID) (int64, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// SlotView is one cell of the per-date availability grid.
type SlotView struct {
	Date         string
	StartTime    string
	EndTime      string
	CourtID      string
	IsAvailable  bool
	IsClosed     bool
	Booking      *booking.Booking
	ClosedReason *string
	Price        int64
}

type CreateBookingParams struct {
	Date         string
	StartTime    string
	EndTime      string
	CourtID      string
	CustomerName string
	MobileNumber string
	Status       string
}

type CreateBookingResult struct {
	Bookings   []*booking.Booking
	TotalPrice int64
	GroupID    *uuid.UUID
}

type UpdateBookingParams struct {
	CustomerName *string
	MobileNumber *string
	Status       *string
}

type DeleteBookingResult struct {
	DeletedCount int64
	WasGrouped   bool
}

type BookingUseCase interface {
	GetDaySlots(ctx context.Context, date string) ([]*SlotView, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	CreateBooking(ctx context.Context, params CreateBookingParams) (*CreateBookingResult, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, params UpdateBookingParams) (*booking.Booking, error)
	DeleteBooking(ctx context.Context, id uuid.UUID) (*DeleteBookingResult, error)
	BulkDeleteBookings(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type bookingUseCaseImpl struct {
	bookingRepo BookingRepository
	closureRepo ClosureRepository
	pricingRepo PricingRepository
}

func NewBookingUseCase(
	bookingRepo BookingRepository,
	closureRepo ClosureRepository,
	pricingRepo PricingRepository,
) BookingUseCase {
	return &bookingUseCaseImpl{
		bookingRepo: bookingRepo,
		closureRepo: closureRepo,
		pricingRepo: pricingRepo,
	}
}

// GetDaySlots builds the availability grid for a date: two batch reads plus
// one price resolution, never a per-slot query.
func (u *bookingUseCaseImpl) GetDaySlots(ctx context.Context, date string) ([]*SlotView, error) {
	if err := schedule.ValidateDate(date); err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	bookings, err := u.bookingRepo.FindByDate(ctx, date)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	closures, err := u.closureRepo.FindByDate(ctx, date)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	price, err := u.resolvePrice(ctx, date)
	if err != nil {
		return nil, err
	}

	type slotKey struct {
		startTime string
		courtID   string
	}

	bookingMap := make(map[slotKey]*booking.Booking, len(bookings))
	for _, b := range bookings {
		bookingMap[slotKey{b.Slot().StartTime, b.Slot().CourtID}] = b
	}
	closureMap := make(map[slotKey]*closure.Closure, len(closures))
	for _, c := range closures {
		closureMap[slotKey{c.Slot().StartTime, c.Slot().CourtID}] = c
	}

	slots := schedule.EnumerateSlots(date)
	views := make([]*SlotView, 0, len(slots))
	for _, s := range slots {
		key := slotKey{s.StartTime, s.CourtID}
		b := bookingMap[key]
		c := closureMap[key]

		view := &SlotView{
			Date:        s.Date,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime(),
			CourtID:     s.CourtID,
			IsAvailable: b == nil && c == nil,
			IsClosed:    c != nil,
			Booking:     b,
			Price:       price,
		}
		if c != nil {
			reason := c.Reason()
			view.ClosedReason = &reason
		}
		views = append(views, view)
	}

	return views, nil
}

func (u *bookingUseCaseImpl) GetBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := u.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return b, nil
}

// CreateBooking validates and commits a booking request, expanding it into
// one unit booking per (court, hour). The pre-check against both ledgers is
// advisory: it produces the precise conflict message and avoids wasted
// writes, but the store's unique index is what actually arbitrates races.
func (u *bookingUseCaseImpl) CreateBooking(ctx context.Context, params CreateBookingParams) (*CreateBookingResult, error) {
	if err := schedule.ValidateDate(params.Date); err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	if err := schedule.ValidateMobile(params.MobileNumber); err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	if params.CustomerName == "" {
		return nil, errs.Mark(booking.ErrNameRequired, ErrValidation)
	}

	statusStr := params.Status
	if statusStr == "" {
		statusStr = string(booking.StatusBooked)
	}
	status, err := booking.NewStatus(statusStr)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	courts, err := schedule.ExpandCourts(params.CourtID)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	hours, err := schedule.Duration(params.StartTime, params.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	ranges, err := schedule.SlotsForDuration(params.StartTime, hours)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	// Advisory pre-check, court-major then time-ascending so the first
	// reported conflict is deterministic.
	for _, court := range courts {
		for _, hr := range ranges {
			slot := schedule.Slot{Date: params.Date, StartTime: hr.Start, CourtID: court}
			conflict, err := u.checkSlot(ctx, slot)
			if err != nil {
				return nil, err
			}
			if conflict != nil {
				return nil, errs.Mark(conflict, ErrSlotUnavailable)
			}
		}
	}

	perHour, err := u.resolvePrice(ctx, params.Date)
	if err != nil {
		return nil, err
	}

	unitCount := len(courts) * hours
	var groupID *uuid.UUID
	if unitCount > 1 {
		id := uuid.New()
		groupID = &id
	}

	units := make([]*booking.Booking, 0, unitCount)
	for _, court := range courts {
		for _, hr := range ranges {
			b, err := booking.NewBooking(
				schedule.Slot{Date: params.Date, StartTime: hr.Start, CourtID: court},
				params.CustomerName,
				params.MobileNumber,
				status,
				perHour,
				groupID,
			)
			if err != nil {
				return nil, errs.Mark(err, ErrValidation)
			}
			units = append(units, b)
		}
	}

	if err := u.bookingRepo.InsertBatch(ctx, units); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			// Lost the race after a clean pre-check; the batch rolled back.
			conflict := &SlotConflictError{CourtID: params.CourtID, StartTime: params.StartTime}
			return nil, errs.Mark(conflict, ErrSlotUnavailable)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &CreateBookingResult{
		Bookings:   units,
		TotalPrice: pricing.Total(perHour, len(courts), hours),
		GroupID:    groupID,
	}, nil
}

// UpdateBooking applies field updates to one booking. A status change
// cascades to every member of the booking's group; name and phone never do.
func (u *bookingUseCaseImpl) UpdateBooking(ctx context.Context, id uuid.UUID, params UpdateBookingParams) (*booking.Booking, error) {
	b, err := u.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if params.CustomerName != nil {
		if err := b.Rename(*params.CustomerName); err != nil {
			return nil, errs.Mark(err, ErrValidation)
		}
	}
	if params.MobileNumber != nil {
		if err := b.ChangeMobile(*params.MobileNumber); err != nil {
			return nil, errs.Mark(err, ErrValidation)
		}
	}

	var nextStatus *booking.Status
	if params.Status != nil {
		status, err := booking.NewStatus(*params.Status)
		if err != nil {
			return nil, errs.Mark(err, ErrValidation)
		}
		if err := b.Transition(status); err != nil {
			return nil, errs.Mark(err, ErrStatusTerminal)
		}
		nextStatus = &status
	}

	if err := u.bookingRepo.Update(ctx, b); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if nextStatus != nil && b.IsGrouped() {
		if _, err := u.bookingRepo.UpdateStatusByGroup(ctx, *b.GroupID(), *nextStatus); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	return b, nil
}

// DeleteBooking removes a booking; a grouped booking takes its whole group
// with it and reports how many rows went.
func (u *bookingUseCaseImpl) DeleteBooking(ctx context.Context, id uuid.UUID) (*DeleteBookingResult, error) {
	b, err := u.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if b.IsGrouped() {
		count, err := u.bookingRepo.DeleteByGroup(ctx, *b.GroupID())
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return &DeleteBookingResult{DeletedCount: count, WasGrouped: true}, nil
	}

	if err := u.bookingRepo.DeleteByID(ctx, id); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &DeleteBookingResult{DeletedCount: 1}, nil
}

// BulkDeleteBookings deletes exactly the given ids, no group expansion.
func (u *bookingUseCaseImpl) BulkDeleteBookings(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, errs.Mark(errs.New("booking ids are required"), ErrValidation)
	}

	count, err := u.bookingRepo.DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return count, nil
}

func (u *bookingUseCaseImpl) checkSlot(ctx context.Context, slot schedule.Slot) (*SlotConflictError, error) {
	_, err := u.closureRepo.FindBySlot(ctx, slot)
	if err == nil {
		return &SlotConflictError{CourtID: slot.CourtID, StartTime: slot.StartTime, Closed: true}, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	_, err = u.bookingRepo.FindBySlot(ctx, slot)
	if err == nil {
		return &SlotConflictError{CourtID: slot.CourtID, StartTime: slot.StartTime}, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return nil, nil
}

// Pricing is captured once per request and stored on every unit booking;
// later price changes never touch committed bookings.
func (u *bookingUseCaseImpl) resolvePrice(ctx context.Context, asOf string) (int64, error) {
	rec, err := u.pricingRepo.FindEffective(ctx, asOf)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return pricing.DefaultPricePerCourtPerHour, nil
		}
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return rec.PricePerCourtPerHour, nil
}
