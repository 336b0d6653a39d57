//go:build unit

package booking_test

import (
	"testing"

	"courtdesk/internal/domain/booking"
	"courtdesk/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSlot() schedule.Slot {
	return schedule.Slot{Date: "2026-09-01", StartTime: "10:00", CourtID: schedule.Court1}
}

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b, err := booking.NewBooking(validSlot(), "Kasun Perera", "0771234567", booking.StatusBooked, 1500, nil)
		require.NoError(t, err)
		require.NotNil(t, b)

		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, "11:00", b.EndTime())
		assert.Equal(t, booking.StatusBooked, b.Status())
		assert.Equal(t, int64(1500), b.Price())
		assert.False(t, b.IsGrouped())
	})

	t.Run("grouped booking carries the group id", func(t *testing.T) {
		groupID := uuid.New()
		b, err := booking.NewBooking(validSlot(), "Kasun Perera", "0771234567", booking.StatusBooked, 1500, &groupID)
		require.NoError(t, err)
		assert.True(t, b.IsGrouped())
		assert.Equal(t, groupID, *b.GroupID())
	})

	tests := []struct {
		name   string
		mutate func(*schedule.Slot) (customerName, mobile string, status booking.Status, price int64)
		errIs  error
	}{
		{
			name: "bad date",
			mutate: func(s *schedule.Slot) (string, string, booking.Status, int64) {
				s.Date = "01-09-2026"
				return "Kasun", "0771234567", booking.StatusBooked, 1500
			},
			errIs: schedule.ErrInvalidDate,
		},
		{
			name: "bad time",
			mutate: func(s *schedule.Slot) (string, string, booking.Status, int64) {
				s.StartTime = "10:30"
				return "Kasun", "0771234567", booking.StatusBooked, 1500
			},
			errIs: schedule.ErrInvalidTime,
		},
		{
			name: "sentinel court is not persistable",
			mutate: func(s *schedule.Slot) (string, string, booking.Status, int64) {
				s.CourtID = schedule.CourtBoth
				return "Kasun", "0771234567", booking.StatusBooked, 1500
			},
			errIs: schedule.ErrInvalidCourt,
		},
		{
			name: "empty name",
			mutate: func(s *schedule.Slot) (string, string, booking.Status, int64) {
				return "", "0771234567", booking.StatusBooked, 1500
			},
			errIs: booking.ErrNameRequired,
		},
		{
			name: "bad mobile",
			mutate: func(s *schedule.Slot) (string, string, booking.Status, int64) {
				return "Kasun", "12345", booking.StatusBooked, 1500
			},
			errIs: schedule.ErrInvalidMobile,
		},
		{
			name: "unknown status",
			mutate: func(s *schedule.Slot) (string, string, booking.Status, int64) {
				return "Kasun", "0771234567", booking.Status("Confirmed"), 1500
			},
			errIs: booking.ErrInvalidStatus,
		},
		{
			name: "negative price",
			mutate: func(s *schedule.Slot) (string, string, booking.Status, int64) {
				return "Kasun", "0771234567", booking.StatusBooked, -1
			},
			errIs: booking.ErrNegativePrice,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := validSlot()
			name, mobile, status, price := tt.mutate(&slot)
			_, err := booking.NewBooking(slot, name, mobile, status, price, nil)
			assert.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestStatus(t *testing.T) {
	t.Run("enum membership", func(t *testing.T) {
		for _, s := range []string{"Pending", "Booked", "Completed", "Cancelled"} {
			_, err := booking.NewStatus(s)
			assert.NoError(t, err, s)
		}
		_, err := booking.NewStatus("booked")
		assert.ErrorIs(t, err, booking.ErrInvalidStatus)
	})

	t.Run("terminal detection", func(t *testing.T) {
		assert.False(t, booking.StatusPending.IsTerminal())
		assert.False(t, booking.StatusBooked.IsTerminal())
		assert.True(t, booking.StatusCompleted.IsTerminal())
		assert.True(t, booking.StatusCancelled.IsTerminal())
	})
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name  string
		from  booking.Status
		to    booking.Status
		errIs error
	}{
		{name: "pending to booked", from: booking.StatusPending, to: booking.StatusBooked},
		{name: "booked to completed", from: booking.StatusBooked, to: booking.StatusCompleted},
		{name: "booked to cancelled", from: booking.StatusBooked, to: booking.StatusCancelled},
		{name: "completed rejects change", from: booking.StatusCompleted, to: booking.StatusBooked, errIs: booking.ErrInvalidTransition},
		{name: "cancelled rejects change", from: booking.StatusCancelled, to: booking.StatusPending, errIs: booking.ErrInvalidTransition},
		{name: "terminal self-transition is a no-op", from: booking.StatusCompleted, to: booking.StatusCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := booking.NewBooking(validSlot(), "Kasun", "0771234567", tt.from, 1500, nil)
			require.NoError(t, err)

			err = b.Transition(tt.to)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				assert.Equal(t, tt.from, b.Status())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, b.Status())
		})
	}
}

func TestFieldUpdates(t *testing.T) {
	b, err := booking.NewBooking(validSlot(), "Kasun", "0771234567", booking.StatusBooked, 1500, nil)
	require.NoError(t, err)

	t.Run("rename", func(t *testing.T) {
		require.NoError(t, b.Rename("Nimal Silva"))
		assert.Equal(t, "Nimal Silva", b.CustomerName())
		assert.ErrorIs(t, b.Rename(""), booking.ErrNameRequired)
	})

	t.Run("change mobile", func(t *testing.T) {
		require.NoError(t, b.ChangeMobile("0719876543"))
		assert.Equal(t, "0719876543", b.MobileNumber())
		assert.ErrorIs(t, b.ChangeMobile("xyz"), schedule.ErrInvalidMobile)
	})
}
