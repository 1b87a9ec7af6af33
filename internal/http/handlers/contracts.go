package handlers

import (
	"context"
	"time"

	"freightline/internal/domain"
	"freightline/internal/service/booking"
)

type bookingUsecase interface {
	EstimateQuote(ctx context.Context, pickup, destination domain.Address, weight float64, itemType string, serviceType domain.ServiceType) (float64, error)
	CreateBooking(ctx context.Context, customer domain.CustomerInfo, shipment domain.ShipmentDetails, serviceType domain.ServiceType, pickupTime time.Time) (string, error)
	GetBooking(ctx context.Context, shipmentID string) (domain.Booking, error)
	GetBookingsByStatus(ctx context.Context, status domain.ShipmentStatus) ([]domain.Booking, error)
	GetAllBookingsByPickupTime(ctx context.Context) ([]domain.Booking, error)
	TrackShipment(ctx context.Context, shipmentID string) (domain.TrackingSnapshot, error)
	UpdateTracking(ctx context.Context, shipmentID, location string, status domain.ShipmentStatus, notes string) error
}

// NewBookingUsecase wires a booking.Service into a bookingUsecase.
func NewBookingUsecase(svc *booking.Service) bookingUsecase {
	return svc
}
