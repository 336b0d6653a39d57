// Package closure models administrative blocks on court slots. A closure is
// independent of any booking: deleting one never touches the booking ledger.
package closure

import (
	"errors"
	"time"

	"courtdesk/internal/domain/schedule"

	"github.com/google/uuid"
)

var (
	ErrInvalidKind   = errors.New("closure kind must be Closed or Maintenance")
	ErrReasonTooLong = errors.New("reason cannot exceed 200 characters")
)

type Kind string

const (
	KindClosed      Kind = "Closed"
	KindMaintenance Kind = "Maintenance"
)

func NewKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindClosed, KindMaintenance:
		return Kind(s), nil
	default:
		return "", ErrInvalidKind
	}
}

func (k Kind) String() string {
	return string(k)
}

const DefaultReason = "Court closed by admin"

type Closure struct {
	id        uuid.UUID
	slot      schedule.Slot
	kind      Kind
	reason    string
	closedBy  string
	createdAt time.Time
}

func NewClosure(slot schedule.Slot, kind Kind, reason, closedBy string) (*Closure, error) {
	if err := schedule.ValidateDate(slot.Date); err != nil {
		return nil, err
	}
	if err := schedule.ValidateTime(slot.StartTime); err != nil {
		return nil, err
	}
	if slot.CourtID != schedule.Court1 && slot.CourtID != schedule.Court2 {
		return nil, schedule.ErrInvalidCourt
	}
	if _, err := NewKind(string(kind)); err != nil {
		return nil, err
	}
	if reason == "" {
		reason = DefaultReason
	}
	if len(reason) > 200 {
		return nil, ErrReasonTooLong
	}
	if closedBy == "" {
		closedBy = "admin"
	}

	return &Closure{
		id:       uuid.New(),
		slot:     slot,
		kind:     kind,
		reason:   reason,
		closedBy: closedBy,
	}, nil
}

func ReconstructClosure(
	id uuid.UUID,
	slot schedule.Slot,
	kind Kind,
	reason, closedBy string,
	createdAt time.Time,
) *Closure {
	return &Closure{
		id:        id,
		slot:      slot,
		kind:      kind,
		reason:    reason,
		closedBy:  closedBy,
		createdAt: createdAt,
	}
}

func (c *Closure) ID() uuid.UUID        { return c.id }
func (c *Closure) Slot() schedule.Slot  { return c.slot }
func (c *Closure) Kind() Kind           { return c.kind }
func (c *Closure) Reason() string       { return c.reason }
func (c *Closure) ClosedBy() string     { return c.closedBy }
func (c *Closure) CreatedAt() time.Time { return c.createdAt }
