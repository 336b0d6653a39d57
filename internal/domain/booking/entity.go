package booking

import (
	"errors"
	"time"

	"courtdesk/internal/domain/schedule"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrInvalidTransition = errors.New("booking status is terminal")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrNameRequired      = errors.New("customer name is required")
	ErrNameTooLong       = errors.New("customer name cannot exceed 100 characters")
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusBooked    Status = "Booked"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusBooked, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Booking is one court-hour reserved by one customer. Price is captured at
// creation and never re-derived. GroupID links the unit bookings created by
// one multi-hour or both-courts request; a single-unit booking has none.
type Booking struct {
	id           uuid.UUID
	slot         schedule.Slot
	endTime      string
	customerName string
	mobileNumber string
	status       Status
	price        int64
	groupID      *uuid.UUID
	createdAt    time.Time
	updatedAt    time.Time
}

func NewBooking(
	slot schedule.Slot,
	customerName, mobileNumber string,
	status Status,
	price int64,
	groupID *uuid.UUID,
) (*Booking, error) {
	if err := schedule.ValidateDate(slot.Date); err != nil {
		return nil, err
	}
	if err := schedule.ValidateTime(slot.StartTime); err != nil {
		return nil, err
	}
	if slot.CourtID != schedule.Court1 && slot.CourtID != schedule.Court2 {
		return nil, schedule.ErrInvalidCourt
	}
	if customerName == "" {
		return nil, ErrNameRequired
	}
	if len(customerName) > 100 {
		return nil, ErrNameTooLong
	}
	if err := schedule.ValidateMobile(mobileNumber); err != nil {
		return nil, err
	}
	if _, err := NewStatus(string(status)); err != nil {
		return nil, err
	}
	if price < 0 {
		return nil, ErrNegativePrice
	}

	return &Booking{
		id:           uuid.New(),
		slot:         slot,
		endTime:      slot.EndTime(),
		customerName: customerName,
		mobileNumber: mobileNumber,
		status:       status,
		price:        price,
		groupID:      groupID,
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	slot schedule.Slot,
	endTime string,
	customerName, mobileNumber string,
	status Status,
	price int64,
	groupID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:           id,
		slot:         slot,
		endTime:      endTime,
		customerName: customerName,
		mobileNumber: mobileNumber,
		status:       status,
		price:        price,
		groupID:      groupID,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Transition moves the booking to a new status. Terminal states reject any
// further transition.
func (b *Booking) Transition(next Status) error {
	if _, err := NewStatus(string(next)); err != nil {
		return err
	}
	if b.status.IsTerminal() && next != b.status {
		return ErrInvalidTransition
	}
	b.status = next
	return nil
}

func (b *Booking) Rename(customerName string) error {
	if customerName == "" {
		return ErrNameRequired
	}
	if len(customerName) > 100 {
		return ErrNameTooLong
	}
	b.customerName = customerName
	return nil
}

func (b *Booking) ChangeMobile(mobileNumber string) error {
	if err := schedule.ValidateMobile(mobileNumber); err != nil {
		return err
	}
	b.mobileNumber = mobileNumber
	return nil
}

func (b *Booking) IsGrouped() bool {
	return b.groupID != nil
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) Slot() schedule.Slot  { return b.slot }
func (b *Booking) EndTime() string      { return b.endTime }
func (b *Booking) CustomerName() string { return b.customerName }
func (b *Booking) MobileNumber() string { return b.mobileNumber }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) Price() int64         { return b.price }
func (b *Booking) GroupID() *uuid.UUID  { return b.groupID }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
