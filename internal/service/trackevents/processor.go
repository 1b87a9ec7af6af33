package trackevents

import (
	"context"
	"errors"

	"freightline/internal/apperr"
	"freightline/internal/domain"
	"freightline/internal/logx"
)

// TrackingPort is the slice of the booking service the processor needs.
type TrackingPort interface {
	UpdateTracking(ctx context.Context, shipmentID, location string, status domain.ShipmentStatus, notes string) error
}

// Processor applies telematics events to shipments. Events that can
// never succeed (unknown shipment, policy rejection, bad status) are
// logged and dropped so the topic does not wedge on one message;
// transient errors propagate for redelivery.
type Processor struct {
	tracker TrackingPort
	logger  logx.Logger
}

// NewProcessor creates a trackevents.Processor.
func NewProcessor(tracker TrackingPort, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Processor{tracker: tracker, logger: logger}
}

// Handle processes a single tracking event.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	status := domain.ShipmentStatus(e.Status)

	err := p.tracker.UpdateTracking(ctx, e.ShipmentID, e.Location, status, e.Notes)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperr.ErrNotFound),
		errors.Is(err, apperr.ErrInvalid),
		errors.Is(err, apperr.ErrInvalidTransition),
		errors.Is(err, apperr.ErrShipmentClosed):
		p.logger.Warn("tracking event dropped",
			logx.String("shipment_id", e.ShipmentID),
			logx.String("status", e.Status),
			logx.Err(err),
		)
		return nil
	default:
		return err
	}
}
