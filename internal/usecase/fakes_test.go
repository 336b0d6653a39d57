//go:build unit

package usecase_test

import (
	"context"
	"sort"
	"sync"

	"courtdesk/internal/domain/booking"
	"courtdesk/internal/domain/closure"
	"courtdesk/internal/domain/pricing"
	"courtdesk/internal/domain/schedule"
	"courtdesk/internal/infra"

	"github.com/google/uuid"
)

// fakeBookingRepo is an in-memory booking store. Like the real table it
// enforces at most one booking per (date, startTime, courtId) and makes
// InsertBatch all-or-nothing, so race-arbitration behavior is testable.
type fakeBookingRepo struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]*booking.Booking
	bySlot map[schedule.Slot]uuid.UUID
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		byID:   make(map[uuid.UUID]*booking.Booking),
		bySlot: make(map[schedule.Slot]uuid.UUID),
	}
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.byID[id]; ok {
		return b, nil
	}
	return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
}

func (r *fakeBookingRepo) FindBySlot(_ context.Context, slot schedule.Slot) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.bySlot[slot]; ok {
		return r.byID[id], nil
	}
	return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
}

func (r *fakeBookingRepo) FindByDate(_ context.Context, date string) ([]*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*booking.Booking
	for _, b := range r.byID {
		if b.Slot().Date == date {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Slot().StartTime != out[j].Slot().StartTime {
			return out[i].Slot().StartTime < out[j].Slot().StartTime
		}
		return out[i].Slot().CourtID < out[j].Slot().CourtID
	})
	return out, nil
}

func (r *fakeBookingRepo) FindByGroup(_ context.Context, groupID uuid.UUID) ([]*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*booking.Booking
	for _, b := range r.byID {
		if b.GroupID() != nil && *b.GroupID() == groupID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) InsertBatch(_ context.Context, bookings []*booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range bookings {
		if _, taken := r.bySlot[b.Slot()]; taken {
			return infra.WrapRepoErr("duplicate slot", nil, infra.KindDuplicateKey)
		}
	}
	for _, b := range bookings {
		r.byID[b.ID()] = b
		r.bySlot[b.Slot()] = b.ID()
	}
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[b.ID()]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	r.byID[b.ID()] = b
	return nil
}

func (r *fakeBookingRepo) UpdateStatusByGroup(_ context.Context, groupID uuid.UUID, status booking.Status) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, b := range r.byID {
		if b.GroupID() != nil && *b.GroupID() == groupID && b.Status() != status {
			if err := b.Transition(status); err != nil {
				continue
			}
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	delete(r.bySlot, b.Slot())
	delete(r.byID, id)
	return nil
}

func (r *fakeBookingRepo) DeleteByGroup(_ context.Context, groupID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for id, b := range r.byID {
		if b.GroupID() != nil && *b.GroupID() == groupID {
			delete(r.bySlot, b.Slot())
			delete(r.byID, id)
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) DeleteByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, id := range ids {
		if b, ok := r.byID[id]; ok {
			delete(r.bySlot, b.Slot())
			delete(r.byID, id)
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// fakeClosureRepo mirrors the closure table, including the slot uniqueness
// the ON CONFLICT paths rely on.
type fakeClosureRepo struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]*closure.Closure
	bySlot map[schedule.Slot]uuid.UUID
}

func newFakeClosureRepo() *fakeClosureRepo {
	return &fakeClosureRepo{
		byID:   make(map[uuid.UUID]*closure.Closure),
		bySlot: make(map[schedule.Slot]uuid.UUID),
	}
}

func (r *fakeClosureRepo) FindByID(_ context.Context, id uuid.UUID) (*closure.Closure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, infra.WrapRepoErr("closure not found", nil, infra.KindNotFound)
}

func (r *fakeClosureRepo) FindBySlot(_ context.Context, slot schedule.Slot) (*closure.Closure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.bySlot[slot]; ok {
		return r.byID[id], nil
	}
	return nil, infra.WrapRepoErr("closure not found", nil, infra.KindNotFound)
}

func (r *fakeClosureRepo) FindByDate(_ context.Context, date string) ([]*closure.Closure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*closure.Closure
	for _, c := range r.byID {
		if c.Slot().Date == date {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Slot().StartTime != out[j].Slot().StartTime {
			return out[i].Slot().StartTime < out[j].Slot().StartTime
		}
		return out[i].Slot().CourtID < out[j].Slot().CourtID
	})
	return out, nil
}

func (r *fakeClosureRepo) Insert(_ context.Context, c *closure.Closure) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.bySlot[c.Slot()]; taken {
		return infra.WrapRepoErr("duplicate slot", nil, infra.KindDuplicateKey)
	}
	r.byID[c.ID()] = c
	r.bySlot[c.Slot()] = c.ID()
	return nil
}

func (r *fakeClosureRepo) InsertSkipExisting(_ context.Context, c *closure.Closure) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.bySlot[c.Slot()]; taken {
		return false, nil
	}
	r.byID[c.ID()] = c
	r.bySlot[c.Slot()] = c.ID()
	return true, nil
}

func (r *fakeClosureRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return infra.WrapRepoErr("closure not found", nil, infra.KindNotFound)
	}
	delete(r.bySlot, c.Slot())
	delete(r.byID, id)
	return nil
}

func (r *fakeClosureRepo) DeleteByDate(_ context.Context, date, courtID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for id, c := range r.byID {
		if c.Slot().Date == date && c.Slot().CourtID == courtID {
			delete(r.bySlot, c.Slot())
			delete(r.byID, id)
			count++
		}
	}
	return count, nil
}

func (r *fakeClosureRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// fakePricingRepo keeps price records keyed by effective date, matching the
// table's unique constraint.
type fakePricingRepo struct {
	mu      sync.Mutex
	records map[string]*pricing.Record
}

func newFakePricingRepo() *fakePricingRepo {
	return &fakePricingRepo{records: make(map[string]*pricing.Record)}
}

func (r *fakePricingRepo) FindEffective(_ context.Context, asOf string) (*pricing.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*pricing.Record, 0, len(r.records))
	for _, rec := range r.records {
		all = append(all, rec)
	}
	if rec := pricing.Resolve(all, asOf); rec != nil {
		return rec, nil
	}
	return nil, infra.WrapRepoErr("no effective pricing", nil, infra.KindNotFound)
}

func (r *fakePricingRepo) FindByEffectiveDate(_ context.Context, effectiveDate string) (*pricing.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[effectiveDate]; ok {
		return rec, nil
	}
	return nil, infra.WrapRepoErr("pricing not found", nil, infra.KindNotFound)
}

func (r *fakePricingRepo) FindHistory(_ context.Context, limit int32) ([]*pricing.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*pricing.Record, 0, len(r.records))
	for _, rec := range r.records {
		all = append(all, rec)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].EffectiveDate != all[j].EffectiveDate {
			return all[i].EffectiveDate > all[j].EffectiveDate
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if int32(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakePricingRepo) Upsert(_ context.Context, rec *pricing.Record) (*pricing.Record, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.records[rec.EffectiveDate]; ok {
		existing.PricePerCourtPerHour = rec.PricePerCourtPerHour
		existing.ChangedBy = rec.ChangedBy
		existing.Reason = rec.Reason
		return existing, false, nil
	}
	r.records[rec.EffectiveDate] = rec
	return rec, true, nil
}

func (r *fakePricingRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for date, rec := range r.records {
		if rec.ID == id {
			delete(r.records, date)
			return nil
		}
	}
	return infra.WrapRepoErr("pricing not found", nil, infra.KindNotFound)
}
