// Package pricing resolves the court rate effective on a given date from a
// time-ordered price history.
package pricing

import (
	"errors"
	"time"

	"courtdesk/internal/domain/schedule"

	"github.com/google/uuid"
)

// DefaultPricePerCourtPerHour applies when no record covers the date (LKR).
const DefaultPricePerCourtPerHour int64 = 1500

var (
	ErrNegativePrice = errors.New("price cannot be negative")
	ErrReasonTooLong = errors.New("reason cannot exceed 500 characters")
)

// Record is the rate effective from EffectiveDate onward until superseded.
type Record struct {
	ID                   uuid.UUID
	PricePerCourtPerHour int64
	EffectiveDate        string
	ChangedBy            string
	Reason               string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func NewRecord(pricePerCourtPerHour int64, effectiveDate, changedBy, reason string) (*Record, error) {
	if pricePerCourtPerHour < 0 {
		return nil, ErrNegativePrice
	}
	if err := schedule.ValidateDate(effectiveDate); err != nil {
		return nil, err
	}
	if len(reason) > 500 {
		return nil, ErrReasonTooLong
	}
	if changedBy == "" {
		changedBy = "admin"
	}

	return &Record{
		ID:                   uuid.New(),
		PricePerCourtPerHour: pricePerCourtPerHour,
		EffectiveDate:        effectiveDate,
		ChangedBy:            changedBy,
		Reason:               reason,
	}, nil
}

// Resolve selects the record with the greatest effective date <= asOf, ties
// broken by the latest audit stamp. Returns nil when no record qualifies.
// Effective dates compare lexicographically because they are YYYY-MM-DD.
func Resolve(records []*Record, asOf string) *Record {
	var best *Record
	for _, r := range records {
		if r.EffectiveDate > asOf {
			continue
		}
		if best == nil ||
			r.EffectiveDate > best.EffectiveDate ||
			(r.EffectiveDate == best.EffectiveDate && r.CreatedAt.After(best.CreatedAt)) {
			best = r
		}
	}
	return best
}

// ResolvePrice is Resolve with the default fallback applied.
func ResolvePrice(records []*Record, asOf string) int64 {
	if r := Resolve(records, asOf); r != nil {
		return r.PricePerCourtPerHour
	}
	return DefaultPricePerCourtPerHour
}

// Total prices a booking request: rate x courts x hours.
func Total(pricePerCourtPerHour int64, courtCount, hours int) int64 {
	return pricePerCourtPerHour * int64(courtCount) * int64(hours)
}
