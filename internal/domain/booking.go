package domain

import (
	"strings"
	"time"
)

// Address is a plain-text postal address. Format validation beyond
// non-empty components is a presentation-layer concern.
type Address struct {
	Street  string
	City    string
	State   string
	Zip     string
	Country string
}

// Complete reports whether the address carries every component needed
// for distance estimation.
func (a Address) Complete() bool {
	return strings.TrimSpace(a.Street) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.State) != "" &&
		strings.TrimSpace(a.Zip) != ""
}

// Summary returns a short "City, ST" label used in tracking entries.
func (a Address) Summary() string {
	city := strings.TrimSpace(a.City)
	state := strings.ToUpper(strings.TrimSpace(a.State))
	switch {
	case city == "" && state == "":
		return ""
	case state == "":
		return city
	case city == "":
		return state
	}
	return city + ", " + state
}

// CustomerInfo identifies the booking customer. ContactDetails is free
// text (email or phone), Company is optional.
type CustomerInfo struct {
	Name           string
	ContactDetails string
	Company        string
}

// ShipmentDetails describes the freight being moved. Dimensions is a
// free-text "LxWxH" string and is kept opaque at this layer.
type ShipmentDetails struct {
	Pickup          Address
	Destination     Address
	Weight          float64 // pounds
	Dimensions      string
	ItemDescription string
}

// TrackingEntry is one timestamped status observation in a shipment's
// history. Timestamps are non-decreasing within one history.
type TrackingEntry struct {
	Status    ShipmentStatus
	Location  string
	Notes     string
	Timestamp time.Time
}

// Booking is the persisted record of a shipment. ShipmentID is immutable
// once assigned; CurrentStatus and TrackingHistory are mutated only
// through tracking updates, everything else is fixed at creation.
type Booking struct {
	ShipmentID        string
	ServiceType       ServiceType
	Customer          CustomerInfo
	Shipment          ShipmentDetails
	PickupTime        time.Time
	EstimatedDelivery time.Time
	CurrentStatus     ShipmentStatus
	TrackingHistory   []TrackingEntry
}

// Clone returns a deep copy of the booking so store readers never share
// the history slice with writers.
func (b Booking) Clone() Booking {
	out := b
	out.TrackingHistory = make([]TrackingEntry, len(b.TrackingHistory))
	copy(out.TrackingHistory, b.TrackingHistory)
	return out
}

// TrackingSnapshot is the public projection returned by shipment lookup.
// It deliberately excludes customer and shipment details.
type TrackingSnapshot struct {
	EstimatedDelivery time.Time
	TrackingHistory   []TrackingEntry
	CurrentStatus     ShipmentStatus
}
