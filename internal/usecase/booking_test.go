//go:build unit

package usecase_test

import (
	"sync"
	"testing"

	"courtdesk/internal/domain/booking"
	"courtdesk/internal/domain/pricing"
	"courtdesk/internal/domain/schedule"
	"courtdesk/internal/usecase"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	bookingRepo *fakeBookingRepo
	closureRepo *fakeClosureRepo
	pricingRepo *fakePricingRepo
	uc          usecase.BookingUseCase
	statusUC    usecase.CourtStatusUseCase
}

func newBookingFixture() *bookingFixture {
	bookingRepo := newFakeBookingRepo()
	closureRepo := newFakeClosureRepo()
	pricingRepo := newFakePricingRepo()
	return &bookingFixture{
		bookingRepo: bookingRepo,
		closureRepo: closureRepo,
		pricingRepo: pricingRepo,
		uc:          usecase.NewBookingUseCase(bookingRepo, closureRepo, pricingRepo),
		statusUC:    usecase.NewCourtStatusUseCase(closureRepo, bookingRepo),
	}
}

func createParams(mutate func(*usecase.CreateBookingParams)) usecase.CreateBookingParams {
	p := usecase.CreateBookingParams{
		Date:         "2026-09-01",
		StartTime:    "10:00",
		EndTime:      "11:00",
		CourtID:      schedule.Court1,
		CustomerName: "Kasun Perera",
		MobileNumber: "0771234567",
	}
	if mutate != nil {
		mutate(&p)
	}
	return p
}

func TestCreateBooking(t *testing.T) {
	t.Run("single slot booking", func(t *testing.T) {
		f := newBookingFixture()
		ctx := t.Context()

		result, err := f.uc.CreateBooking(ctx, createParams(nil))
		require.NoError(t, err)
		require.Len(t, result.Bookings, 1)

		b := result.Bookings[0]
		assert.Equal(t, booking.StatusBooked, b.Status())
		assert.Equal(t, "11:00", b.EndTime())
		assert.Nil(t, b.GroupID())
		assert.Nil(t, result.GroupID)
		assert.Equal(t, int64(1500), result.TotalPrice)
	})

	t.Run("explicit pending status is kept", func(t *testing.T) {
		f := newBookingFixture()

		result, err := f.uc.CreateBooking(t.Context(), createParams(func(p *usecase.CreateBookingParams) {
			p.Status = "Pending"
		}))
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, result.Bookings[0].Status())
	})

	t.Run("multi hour both courts creates one unit per court hour", func(t *testing.T) {
		f := newBookingFixture()

		result, err := f.uc.CreateBooking(t.Context(), createParams(func(p *usecase.CreateBookingParams) {
			p.CourtID = schedule.CourtBoth
			p.EndTime = "12:00"
		}))
		require.NoError(t, err)
		require.Len(t, result.Bookings, 4)
		require.NotNil(t, result.GroupID)

		// 2 courts x 2 hours at the 1500 default
		assert.Equal(t, int64(6000), result.TotalPrice)
		for _, b := range result.Bookings {
			require.NotNil(t, b.GroupID())
			assert.Equal(t, *result.GroupID, *b.GroupID())
		}
	})

	t.Run("booked slot reports the precise conflict", func(t *testing.T) {
		f := newBookingFixture()
		ctx := t.Context()

		_, err := f.uc.CreateBooking(ctx, createParams(nil))
		require.NoError(t, err)

		_, err = f.uc.CreateBooking(ctx, createParams(func(p *usecase.CreateBookingParams) {
			p.CustomerName = "Nimal Silva"
			p.MobileNumber = "0719876543"
		}))
		require.ErrorIs(t, err, usecase.ErrSlotUnavailable)

		var conflict *usecase.SlotConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, schedule.Court1, conflict.CourtID)
		assert.Equal(t, "10:00", conflict.StartTime)
		assert.False(t, conflict.Closed)
	})

	t.Run("closed slot reports the closure", func(t *testing.T) {
		f := newBookingFixture()
		ctx := t.Context()

		_, err := f.statusUC.CloseSlot(ctx, usecase.CloseSlotParams{
			Date: "2026-09-01", StartTime: "10:00", CourtID: schedule.Court1,
		})
		require.NoError(t, err)

		_, err = f.uc.CreateBooking(ctx, createParams(nil))
		require.ErrorIs(t, err, usecase.ErrSlotUnavailable)

		var conflict *usecase.SlotConflictError
		require.ErrorAs(t, err, &conflict)
		assert.True(t, conflict.Closed)
	})

	t.Run("multi slot request is all or nothing", func(t *testing.T) {
		f := newBookingFixture()
		ctx := t.Context()

		// Occupy the middle hour of a three hour request.
		_, err := f.uc.CreateBooking(ctx, createParams(func(p *usecase.CreateBookingParams) {
			p.StartTime = "11:00"
			p.EndTime = "12:00"
		}))
		require.NoError(t, err)
		require.Equal(t, 1, f.bookingRepo.count())

		_, err = f.uc.CreateBooking(ctx, createParams(func(p *usecase.CreateBookingParams) {
			p.CustomerName = "Nimal Silva"
			p.MobileNumber = "0719876543"
			p.EndTime = "13:00"
		}))
		require.ErrorIs(t, err, usecase.ErrSlotUnavailable)

		// Nothing from the failed request stuck.
		assert.Equal(t, 1, f.bookingRepo.count())
	})

	t.Run("concurrent requests for one slot admit exactly one", func(t *testing.T) {
		f := newBookingFixture()
		ctx := t.Context()

		const attempts = 16
		var wg sync.WaitGroup
		results := make([]error, attempts)
		for i := range attempts {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.uc.CreateBooking(ctx, createParams(nil))
				results[i] = err
			}()
		}
		wg.Wait()

		var wins int
		for _, err := range results {
			if err == nil {
				wins++
			} else {
				assert.ErrorIs(t, err, usecase.ErrSlotUnavailable)
			}
		}
		assert.Equal(t, 1, wins)
		assert.Equal(t, 1, f.bookingRepo.count())
	})

	t.Run("price is captured at creation", func(t *testing.T) {
		f := newBookingFixture()
		ctx := t.Context()

		rec, err := pricing.NewRecord(2000, "2026-08-01", "admin", "")
		require.NoError(t, err)
		_, _, err = f.pricingRepo.Upsert(ctx, rec)
		require.NoError(t, err)

		result, err := f.uc.CreateBooking(ctx, createParams(nil))
		require.NoError(t, err)
		assert.Equal(t, int64(2000), result.Bookings[0].Price())

		// A later price change never rewrites a committed booking.
		newer, err := pricing.NewRecord(5000, "2026-08-15", "admin", "")
		require.NoError(t, err)
		_, _, err = f.pricingRepo.Upsert(ctx, newer)
		require.NoError(t, err)

		got, err := f.uc.GetBooking(ctx, result.Bookings[0].ID())
		require.NoError(t, err)
		assert.Equal(t, int64(2000), got.Price())
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*usecase.CreateBookingParams)
		}{
			{name: "bad date", mutate: func(p *usecase.CreateBookingParams) { p.Date = "01/09/2026" }},
			{name: "bad mobile", mutate: func(p *usecase.CreateBookingParams) { p.MobileNumber = "123" }},
			{name: "empty name", mutate: func(p *usecase.CreateBookingParams) { p.CustomerName = "" }},
			{name: "unknown court", mutate: func(p *usecase.CreateBookingParams) { p.CourtID = "Court 9" }},
			{name: "end before start", mutate: func(p *usecase.CreateBookingParams) { p.EndTime = "09:00" }},
			{name: "unknown status", mutate: func(p *usecase.CreateBookingParams) { p.Status = "Confirmed" }},
			{name: "range past closing", mutate: func(p *usecase.CreateBookingParams) {
				p.StartTime = "22:00"
				p.EndTime = "24:00"
			}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newBookingFixture()
				_, err := f.uc.CreateBooking(t.Context(), createParams(tt.mutate))
				assert.ErrorIs(t, err, usecase.ErrValidation)
				assert.Equal(t, 0, f.bookingRepo.count())
			})
		}
	})
}

func TestGetDaySlots(t *testing.T) {
	t.Run("empty day is fully available", func(t *testing.T) {
		f := newBookingFixture()

		views, err := f.uc.GetDaySlots(t.Context(), "2026-09-01")
		require.NoError(t, err)
		require.Len(t, views, 34)

		for _, v := range views {
			assert.True(t, v.IsAvailable)
			assert.False(t, v.IsClosed)
			assert.Nil(t, v.Booking)
			assert.Equal(t, int64(1500), v.Price)
		}
	})

	t.Run("bookings and closures mark their cells", func(t *testing.T) {
		f := newBookingFixture()
		ctx := t.Context()

		result, err := f.uc.CreateBooking(ctx, createParams(nil))
		require.NoError(t, err)
		_, err = f.statusUC.CloseSlot(ctx, usecase.CloseSlotParams{
			Date: "2026-09-01", StartTime: "14:00", CourtID: schedule.Court2, Reason: "maintenance window",
		})
		require.NoError(t, err)

		views, err := f.uc.GetDaySlots(ctx, "2026-09-01")
		require.NoError(t, err)
		require.Len(t, views, 34)

		type cell struct {
			Available bool
			Closed    bool
			HasBook   bool
			Reason    string
		}
		got := make(map[string]cell)
		for _, v := range views {
			reason := ""
			if v.ClosedReason != nil {
				reason = *v.ClosedReason
			}
			got[v.StartTime+"/"+v.CourtID] = cell{
				Available: v.IsAvailable,
				Closed:    v.IsClosed,
				HasBook:   v.Booking != nil,
				Reason:    reason,
			}
		}

		want := map[string]cell{
			"10:00/" + schedule.Court1: {HasBook: true},
			"10:00/" + schedule.Court2: {Available: true},
			"14:00/" + schedule.Court2: {Closed: true, Reason: "maintenance window"},
			"14:00/" + schedule.Court1: {Available: true},
		}
		for key, w := range want {
			if diff := cmp.Diff(w, got[key]); diff != "" {
				t.Errorf("slot %s mismatch (-want +got):\n%s", key, diff)
			}
		}

		assert.Equal(t, result.Bookings[0].ID(), findView(views, "10:00", schedule.Court1).Booking.ID())
	})

	t.Run("grid order matches the catalog enumeration", func(t *testing.T) {
		f := newBookingFixture()

		views, err := f.uc.GetDaySlots(t.Context(), "2026-09-01")
		require.NoError(t, err)

		slots := schedule.EnumerateSlots("2026-09-01")
		for i, v := range views {
			assert.Equal(t, slots[i].StartTime, v.StartTime)
			assert.Equal(t, slots[i].CourtID, v.CourtID)
			assert.Equal(t, schedule.EndTime(slots[i].StartTime), v.EndTime)
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		f := newBookingFixture()
		_, err := f.uc.GetDaySlots(t.Context(), "not-a-date")
		assert.ErrorIs(t, err, usecase.ErrValidation)
	})
}

func findView(views []*usecase.SlotView, startTime, courtID string) *usecase.SlotView {
	for _, v := range views {
		if v.StartTime == startTime && v.CourtID == courtID {
			return v
		}
	}
	return nil
}

func TestUpdateBooking(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("status change cascades to the whole group", func(t *testing.T) {
		f := newBookingFixture()
		ctx := t.Context()

		result, err := f.uc.CreateBooking(ctx, createParams(func(p *usecase.CreateBookingParams) {
			p.CourtID = schedule.CourtBoth
			p.EndTime = "12:00"
		}))
		require.NoError(t, err)
		require.Len(t, result.Bookings, 4)

		_, err = f.uc.UpdateBooking(ctx, result.Bookings[0].ID(), usecase.UpdateBookingParams{
			Status: strPtr("Completed"),
		})
		require.NoError(t, err)

		members, err := f.bookingRepo.FindByGroup(ctx, *result.GroupID)
		require.NoError(t, err)
		require.Len(t, members, 4)
		for _, m := range members {
			assert.Equal(t, booking.StatusCompleted, m.Status())
		}
	})

	t.Run("name and phone stay on the addressed row", func(t *testing.T) {
		f := newBookingFixture()
		ctx := t.Context()

		result, err := f.uc.CreateBooking(ctx, createParams(func(p *usecase.CreateBookingParams) {
			p.EndTime = "12:00"
		}))
		require.NoError(t, err)
		require.Len(t, result.Bookings, 2)

		target := result.Bookings[0]
		_, err = f.uc.UpdateBooking(ctx, target.ID(), usecase.UpdateBookingParams{
			CustomerName: strPtr("Nimal Silva"),
			MobileNumber: strPtr("0719876543"),
		})
		require.NoError(t, err)

		updated, err := f.uc.GetBooking(ctx, target.ID())
		require.NoError(t, err)
		assert.Equal(t, "Nimal Silva", updated.CustomerName())

		sibling, err := f.uc.GetBooking(ctx, result.Bookings[1].ID())
		require.NoError(t, err)
		assert.Equal(t, "Kasun Perera", sibling.CustomerName())
		assert.Equal(t, "0771234567", sibling.MobileNumber())
	})

	t.Run("terminal status rejects transitions", func(t *testing.T) {
		f := newBookingFixture()
		ctx := t.Context()

		result, err := f.uc.CreateBooking(ctx, createParams(nil))
		require.NoError(t, err)
		id := result.Bookings[0].ID()

		_, err = f.uc.UpdateBooking(ctx, id, usecase.UpdateBookingParams{Status: strPtr("Cancelled")})
		require.NoError(t, err)

		_, err = f.uc.UpdateBooking(ctx, id, usecase.UpdateBookingParams{Status: strPtr("Booked")})
		assert.ErrorIs(t, err, usecase.ErrStatusTerminal)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newBookingFixture()
		_, err := f.uc.UpdateBooking(t.Context(), uuid.New(), usecase.UpdateBookingParams{Status: strPtr("Booked")})
		assert.ErrorIs(t, err, usecase.ErrBookingNotFound)
	})

	t.Run("invalid status value", func(t *testing.T) {
		f := newBookingFixture()
		ctx := t.Context()

		result, err := f.uc.CreateBooking(ctx, createParams(nil))
		require.NoError(t, err)

		_, err = f.uc.UpdateBooking(ctx, result.Bookings[0].ID(), usecase.UpdateBookingParams{Status: strPtr("Done")})
		assert.ErrorIs(t, err, usecase.ErrValidation)
	})
}

func TestDeleteBooking(t *testing.T) {
	t.Run("single booking deletes one row", func(t *testing.T) {
		f := newBookingFixture()
		ctx := t.Context()

		result, err := f.uc.CreateBooking(ctx, createParams(nil))
		require.NoError(t, err)

		res, err := f.uc.DeleteBooking(ctx, result.Bookings[0].ID())
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.DeletedCount)
		assert.False(t, res.WasGrouped)
		assert.Equal(t, 0, f.bookingRepo.count())
	})

	t.Run("grouped booking takes the whole group", func(t *testing.T) {
		f := newBookingFixture()
		ctx := t.Context()

		result, err := f.uc.CreateBooking(ctx, createParams(func(p *usecase.CreateBookingParams) {
			p.CourtID = schedule.CourtBoth
			p.EndTime = "12:00"
		}))
		require.NoError(t, err)
		require.Equal(t, 4, f.bookingRepo.count())

		res, err := f.uc.DeleteBooking(ctx, result.Bookings[2].ID())
		require.NoError(t, err)
		assert.Equal(t, int64(4), res.DeletedCount)
		assert.True(t, res.WasGrouped)
		assert.Equal(t, 0, f.bookingRepo.count())
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newBookingFixture()
		_, err := f.uc.DeleteBooking(t.Context(), uuid.New())
		assert.ErrorIs(t, err, usecase.ErrBookingNotFound)
	})
}

func TestBulkDeleteBookings(t *testing.T) {
	t.Run("deletes exactly the given ids without cascade", func(t *testing.T) {
		f := newBookingFixture()
		ctx := t.Context()

		grouped, err := f.uc.CreateBooking(ctx, createParams(func(p *usecase.CreateBookingParams) {
			p.EndTime = "12:00"
		}))
		require.NoError(t, err)
		require.Len(t, grouped.Bookings, 2)

		count, err := f.uc.BulkDeleteBookings(ctx, []uuid.UUID{grouped.Bookings[0].ID()})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		// The sibling survives even though they share a group.
		_, err = f.uc.GetBooking(ctx, grouped.Bookings[1].ID())
		assert.NoError(t, err)
	})

	t.Run("empty id list", func(t *testing.T) {
		f := newBookingFixture()
		_, err := f.uc.BulkDeleteBookings(t.Context(), nil)
		assert.ErrorIs(t, err, usecase.ErrValidation)
	})
}
