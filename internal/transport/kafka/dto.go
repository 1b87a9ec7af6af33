package kafka

import (
	"strings"
	"time"

	"freightline/internal/service/trackevents"
)

// EventDTO is the on-wire form of a tracking event. Timestamps travel
// as int64 nanoseconds since the Unix epoch.
type EventDTO struct {
	ShipmentID string `json:"shipment_id"`
	Location   string `json:"location"`
	Status     string `json:"status"`
	Notes      string `json:"notes,omitempty"`
	OccurredAt int64  `json:"occurred_at"`
}

// ToDomain converts a wire event to the service form.
func ToDomain(d EventDTO) trackevents.Event {
	var occurred time.Time
	if d.OccurredAt != 0 {
		occurred = time.Unix(0, d.OccurredAt).UTC()
	}
	return trackevents.Event{
		ShipmentID: strings.TrimSpace(d.ShipmentID),
		Location:   strings.TrimSpace(d.Location),
		Status:     strings.TrimSpace(d.Status),
		Notes:      strings.TrimSpace(d.Notes),
		OccurredAt: occurred,
	}
}
