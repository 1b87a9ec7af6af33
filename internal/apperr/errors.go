package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrInvalidAddress is returned when an address is missing a component
// required for distance estimation.
var ErrInvalidAddress = errors.New("invalid address")

// ErrNotFound indicates that the requested shipment does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateID indicates a shipment id collision in the store.
// Handled internally by the id generator and never surfaced to callers.
var ErrDuplicateID = errors.New("duplicate shipment id")

// ErrInvalidTransition is returned in strict tracking mode when a status
// update would move a shipment backward in its progression.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrShipmentClosed is returned in strict tracking mode for any update
// to a shipment that has already been delivered.
var ErrShipmentClosed = errors.New("shipment closed")
