package store

import (
	"context"

	"freightline/internal/domain"
)

// Mutator inspects and edits a booking inside an atomic read-modify-write.
// Returning an error aborts the update without touching the store.
type Mutator func(b *domain.Booking) error

// Store is the authoritative booking collection. Implementations must
// serialize writers on the same shipment id and guarantee that readers
// never observe a booking whose current status disagrees with the tail
// of its tracking history.
type Store interface {
	// Insert adds a booking, failing with apperr.ErrDuplicateID when the
	// shipment id is already present.
	Insert(ctx context.Context, b domain.Booking) error
	// Get returns the booking for the shipment id or apperr.ErrNotFound.
	Get(ctx context.Context, shipmentID string) (domain.Booking, error)
	// Exists reports whether the shipment id is present.
	Exists(ctx context.Context, shipmentID string) (bool, error)
	// Update applies fn to the booking atomically or fails with
	// apperr.ErrNotFound.
	Update(ctx context.Context, shipmentID string, fn Mutator) error
	// ListByStatus returns bookings whose current status equals status,
	// in per-status insertion order.
	ListByStatus(ctx context.Context, status domain.ShipmentStatus) ([]domain.Booking, error)
	// ListAllByPickupTime returns all bookings sorted ascending by pickup
	// time, ties broken by insertion order.
	ListAllByPickupTime(ctx context.Context) ([]domain.Booking, error)
}
