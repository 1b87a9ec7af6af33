package booking

import (
	"context"

	"freightline/internal/domain"
	"freightline/internal/store"
)

// bookingStore defines the storage operations required by the service.
type bookingStore interface {
	Insert(ctx context.Context, b domain.Booking) error
	Get(ctx context.Context, shipmentID string) (domain.Booking, error)
	Update(ctx context.Context, shipmentID string, fn store.Mutator) error
	ListByStatus(ctx context.Context, status domain.ShipmentStatus) ([]domain.Booking, error)
	ListAllByPickupTime(ctx context.Context) ([]domain.Booking, error)
}

// idGenerator mints unique shipment ids.
type idGenerator interface {
	Next(ctx context.Context) (string, error)
}

// trackingMachine applies status updates under the configured policy.
type trackingMachine interface {
	Update(ctx context.Context, shipmentID, location string, status domain.ShipmentStatus, notes string) error
}

// quoteEstimator computes price quotes.
type quoteEstimator interface {
	Estimate(pickup, destination domain.Address, weight float64, itemType string, serviceType domain.ServiceType) (float64, error)
}

// counter is the minimal metrics surface the service depends on.
type counter interface {
	Inc()
}
