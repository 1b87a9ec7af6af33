package trackevents

import "time"

// Event is a single tracking observation reported by dispatch telematics.
type Event struct {
	ShipmentID string    `json:"shipment_id"`
	Location   string    `json:"location"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
