package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"freightline/internal/apperr"
	"freightline/internal/domain"
)

// record pairs a booking with its insertion sequence for deterministic
// tie-breaking.
type record struct {
	booking domain.Booking
	seq     uint64
}

// Memory is the in-process Store. One RWMutex guards the map and both
// indexes: writers are serialized, readers run concurrently and always
// see a booking consistent with its history tail.
type Memory struct {
	mu       sync.RWMutex
	nextSeq  uint64
	bookings map[string]*record
	byStatus map[domain.ShipmentStatus][]string
}

// NewMemory creates an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{
		bookings: make(map[string]*record),
		byStatus: make(map[domain.ShipmentStatus][]string),
	}
}

// Insert adds a booking, failing with apperr.ErrDuplicateID on an id clash.
func (m *Memory) Insert(_ context.Context, b domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.bookings[b.ShipmentID]; ok {
		return fmt.Errorf("insert %s: %w", b.ShipmentID, apperr.ErrDuplicateID)
	}
	m.nextSeq++
	m.bookings[b.ShipmentID] = &record{booking: b.Clone(), seq: m.nextSeq}
	m.byStatus[b.CurrentStatus] = append(m.byStatus[b.CurrentStatus], b.ShipmentID)
	return nil
}

// Get returns a copy of the booking or apperr.ErrNotFound.
func (m *Memory) Get(_ context.Context, shipmentID string) (domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.bookings[shipmentID]
	if !ok {
		return domain.Booking{}, fmt.Errorf("get %s: %w", shipmentID, apperr.ErrNotFound)
	}
	return rec.booking.Clone(), nil
}

// Exists reports whether the shipment id is present.
func (m *Memory) Exists(_ context.Context, shipmentID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.bookings[shipmentID]
	return ok, nil
}

// Update applies fn to a copy of the booking and commits it only when fn
// succeeds, keeping failed updates invisible to readers.
func (m *Memory) Update(_ context.Context, shipmentID string, fn Mutator) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.bookings[shipmentID]
	if !ok {
		return fmt.Errorf("update %s: %w", shipmentID, apperr.ErrNotFound)
	}

	draft := rec.booking.Clone()
	if err := fn(&draft); err != nil {
		return err
	}

	if draft.CurrentStatus != rec.booking.CurrentStatus {
		m.moveStatusIndex(shipmentID, rec.booking.CurrentStatus, draft.CurrentStatus)
	}
	rec.booking = draft
	return nil
}

// ListByStatus returns bookings currently in the given status, in
// per-status insertion order.
func (m *Memory) ListByStatus(_ context.Context, status domain.ShipmentStatus) ([]domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.byStatus[status]
	out := make([]domain.Booking, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.bookings[id].booking.Clone())
	}
	return out, nil
}

// ListAllByPickupTime returns every booking sorted ascending by pickup
// time, ties broken by insertion order.
func (m *Memory) ListAllByPickupTime(_ context.Context) ([]domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := make([]*record, 0, len(m.bookings))
	for _, rec := range m.bookings {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].booking.PickupTime.Equal(recs[j].booking.PickupTime) {
			return recs[i].seq < recs[j].seq
		}
		return recs[i].booking.PickupTime.Before(recs[j].booking.PickupTime)
	})

	out := make([]domain.Booking, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.booking.Clone())
	}
	return out, nil
}

// moveStatusIndex is called under the write lock.
func (m *Memory) moveStatusIndex(shipmentID string, from, to domain.ShipmentStatus) {
	ids := m.byStatus[from]
	for i, id := range ids {
		if id == shipmentID {
			m.byStatus[from] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	m.byStatus[to] = append(m.byStatus[to], shipmentID)
}

var _ Store = (*Memory)(nil)
