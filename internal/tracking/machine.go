package tracking

import (
	"context"
	"fmt"
	"time"

	"freightline/internal/apperr"
	"freightline/internal/domain"
	"freightline/internal/store"
)

// Policy decides which status transitions a shipment may take.
type Policy int

const (
	// Permissive records any status at any time, tolerating out-of-order
	// or corrective updates from dispatch.
	Permissive Policy = iota
	// Strict enforces the pickedUp → inTransit → outForDelivery →
	// delivered progression. Re-recording the current status (a new
	// location ping) is allowed; moving backward is not, and a delivered
	// shipment accepts no further updates.
	Strict
)

// ParsePolicy maps a config mode string onto a Policy.
func ParsePolicy(mode string) (Policy, error) {
	switch mode {
	case "permissive":
		return Permissive, nil
	case "strict":
		return Strict, nil
	default:
		return Strict, fmt.Errorf("unknown tracking mode: %q", mode)
	}
}

// Validate checks whether a shipment currently in from may record next.
func (p Policy) Validate(from, next domain.ShipmentStatus) error {
	if p == Permissive {
		return nil
	}
	if from == domain.StatusDelivered {
		return apperr.ErrShipmentClosed
	}
	if next.Rank() < from.Rank() {
		return apperr.ErrInvalidTransition
	}
	return nil
}

// Machine applies tracking updates to bookings through the store.
type Machine struct {
	store  store.Store
	policy Policy
	now    func() time.Time
}

// NewMachine creates a Machine with the given transition policy.
func NewMachine(s store.Store, policy Policy) *Machine {
	return &Machine{
		store:  s,
		policy: policy,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Update appends a tracking entry and moves the current status in one
// atomic store update. The entry timestamp never runs backward relative
// to the history tail.
func (m *Machine) Update(ctx context.Context, shipmentID, location string, status domain.ShipmentStatus, notes string) error {
	if !status.Valid() {
		return apperr.ErrInvalid
	}
	return m.store.Update(ctx, shipmentID, func(b *domain.Booking) error {
		if err := m.policy.Validate(b.CurrentStatus, status); err != nil {
			return err
		}
		ts := m.now()
		if n := len(b.TrackingHistory); n > 0 {
			if last := b.TrackingHistory[n-1].Timestamp; ts.Before(last) {
				ts = last
			}
		}
		b.TrackingHistory = append(b.TrackingHistory, domain.TrackingEntry{
			Status:    status,
			Location:  location,
			Notes:     notes,
			Timestamp: ts,
		})
		b.CurrentStatus = status
		return nil
	})
}

// Seed returns the initial history entry written at booking time.
func Seed(pickup domain.Address, pickupTime time.Time) domain.TrackingEntry {
	return domain.TrackingEntry{
		Status:    domain.StatusPickedUp,
		Location:  pickup.Summary(),
		Timestamp: pickupTime,
	}
}
