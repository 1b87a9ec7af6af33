package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"freightline/internal/apperr"
	"freightline/internal/domain"
	"freightline/internal/logx"
	"freightline/internal/tracking"
)

// insertAttempts bounds retries on the improbable id race between
// generator check and insert.
const insertAttempts = 3

// Metrics carries the optional operation counters. Nil fields are skipped.
type Metrics struct {
	BookingsCreated counter
	TrackingUpdates counter
	QuoteRequests   counter
}

// Service coordinates booking business logic: quoting, creation, queries
// and tracking updates. It is the sole entry point external collaborators
// call.
type Service struct {
	store            bookingStore
	ids              idGenerator
	machine          trackingMachine
	estimator        quoteEstimator
	operationTimeout time.Duration
	logger           logx.Logger
	metrics          Metrics
	now              func() time.Time
}

// NewService creates and configures a booking Service.
func NewService(st bookingStore, ids idGenerator, tm trackingMachine, est quoteEstimator, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		store:            st,
		ids:              ids,
		machine:          tm,
		estimator:        est,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// WithMetrics attaches operation counters to the service.
func (s *Service) WithMetrics(m Metrics) *Service {
	s.metrics = m
	return s
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// validateCreate validates the creation inputs.
func validateCreate(customer domain.CustomerInfo, shipment domain.ShipmentDetails, serviceType domain.ServiceType, pickupTime time.Time) error {
	if strings.TrimSpace(customer.Name) == "" {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(customer.ContactDetails) == "" {
		return apperr.ErrInvalid
	}
	if shipment.Weight <= 0 {
		return apperr.ErrInvalid
	}
	if !serviceType.Valid() {
		return apperr.ErrInvalid
	}
	if pickupTime.IsZero() {
		return apperr.ErrInvalid
	}
	return nil
}

// CreateBooking registers a shipment and returns its new id. The record
// is seeded with one pickedUp tracking entry at the pickup time and an
// estimated delivery fixed at creation.
func (s *Service) CreateBooking(ctx context.Context, customer domain.CustomerInfo, shipment domain.ShipmentDetails, serviceType domain.ServiceType, pickupTime time.Time) (string, error) {
	if err := validateCreate(customer, shipment, serviceType, pickupTime); err != nil {
		return "", err
	}
	lead, err := LeadTime(serviceType)
	if err != nil {
		return "", apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var lastErr error
	for attempt := 1; attempt <= insertAttempts; attempt++ {
		id, err := s.ids.Next(ctx)
		if err != nil {
			return "", fmt.Errorf("mint shipment id: %w", err)
		}

		b := domain.Booking{
			ShipmentID:        id,
			ServiceType:       serviceType,
			Customer:          customer,
			Shipment:          shipment,
			PickupTime:        pickupTime,
			EstimatedDelivery: pickupTime.Add(lead),
			CurrentStatus:     domain.StatusPickedUp,
			TrackingHistory:   []domain.TrackingEntry{tracking.Seed(shipment.Pickup, pickupTime)},
		}

		err = s.store.Insert(ctx, b)
		if err == nil {
			if s.metrics.BookingsCreated != nil {
				s.metrics.BookingsCreated.Inc()
			}
			s.logger.Info("booking created",
				logx.String("event", "booking_created"),
				logx.String("shipment_id", id),
				logx.String("service_type", string(serviceType)),
				logx.Time("pickup_time", pickupTime),
				logx.Time("estimated_delivery", b.EstimatedDelivery),
			)
			return id, nil
		}
		if !errors.Is(err, apperr.ErrDuplicateID) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("create booking: %w", lastErr)
}

// EstimateQuote returns a price estimate without touching the store.
func (s *Service) EstimateQuote(ctx context.Context, pickup, destination domain.Address, weight float64, itemType string, serviceType domain.ServiceType) (float64, error) {
	price, err := s.estimator.Estimate(pickup, destination, weight, itemType, serviceType)
	if err != nil {
		return 0, err
	}
	if s.metrics.QuoteRequests != nil {
		s.metrics.QuoteRequests.Inc()
	}
	return price, nil
}

// GetBooking returns the full booking record.
func (s *Service) GetBooking(ctx context.Context, shipmentID string) (domain.Booking, error) {
	if strings.TrimSpace(shipmentID) == "" {
		return domain.Booking{}, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.Get(ctx, shipmentID)
}

// GetBookingsByStatus returns all bookings currently in the given status.
func (s *Service) GetBookingsByStatus(ctx context.Context, status domain.ShipmentStatus) ([]domain.Booking, error) {
	if !status.Valid() {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.ListByStatus(ctx, status)
}

// GetAllBookingsByPickupTime returns every booking sorted ascending by
// pickup time.
func (s *Service) GetAllBookingsByPickupTime(ctx context.Context) ([]domain.Booking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.ListAllByPickupTime(ctx)
}

// TrackShipment returns the public projection of a booking: delivery
// estimate, history and current status, never customer or freight details.
func (s *Service) TrackShipment(ctx context.Context, shipmentID string) (domain.TrackingSnapshot, error) {
	b, err := s.GetBooking(ctx, shipmentID)
	if err != nil {
		return domain.TrackingSnapshot{}, err
	}
	return domain.TrackingSnapshot{
		EstimatedDelivery: b.EstimatedDelivery,
		TrackingHistory:   b.TrackingHistory,
		CurrentStatus:     b.CurrentStatus,
	}, nil
}

// UpdateTracking records a status observation for a shipment.
func (s *Service) UpdateTracking(ctx context.Context, shipmentID, location string, status domain.ShipmentStatus, notes string) error {
	if strings.TrimSpace(shipmentID) == "" {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.machine.Update(ctx, shipmentID, location, status, notes); err != nil {
		return err
	}
	if s.metrics.TrackingUpdates != nil {
		s.metrics.TrackingUpdates.Inc()
	}
	s.logger.Info("tracking updated",
		logx.String("event", "tracking_updated"),
		logx.String("shipment_id", shipmentID),
		logx.String("status", string(status)),
		logx.String("location", location),
	)
	return nil
}
