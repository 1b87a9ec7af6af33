package handlers

import (
	"time"

	"freightline/internal/domain"
)

func (d addressDTO) toModel() domain.Address {
	return domain.Address{
		Street:  d.Street,
		City:    d.City,
		State:   d.State,
		Zip:     d.Zip,
		Country: d.Country,
	}
}

func addressToResponse(a domain.Address) addressDTO {
	return addressDTO{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		Zip:     a.Zip,
		Country: a.Country,
	}
}

func (d customerDTO) toModel() domain.CustomerInfo {
	return domain.CustomerInfo{
		Name:           d.Name,
		ContactDetails: d.ContactDetails,
		Company:        d.Company,
	}
}

func (r createBookingRequest) toShipment() domain.ShipmentDetails {
	return domain.ShipmentDetails{
		Pickup:          r.PickupAddress.toModel(),
		Destination:     r.DeliveryAddress.toModel(),
		Weight:          r.WeightLbs,
		Dimensions:      r.Dimensions,
		ItemDescription: r.ItemDescription,
	}
}

func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func entriesToResponse(entries []domain.TrackingEntry) []trackingEntryDTO {
	out := make([]trackingEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, trackingEntryDTO{
			Status:    string(e.Status),
			Location:  e.Location,
			Notes:     e.Notes,
			Timestamp: unixNano(e.Timestamp),
		})
	}
	return out
}

func bookingToResponse(b domain.Booking) bookingDTO {
	return bookingDTO{
		ShipmentID:        b.ShipmentID,
		ServiceType:       string(b.ServiceType),
		Customer: customerDTO{
			Name:           b.Customer.Name,
			ContactDetails: b.Customer.ContactDetails,
			Company:        b.Customer.Company,
		},
		PickupAddress:     addressToResponse(b.Shipment.Pickup),
		DeliveryAddress:   addressToResponse(b.Shipment.Destination),
		WeightLbs:         b.Shipment.Weight,
		Dimensions:        b.Shipment.Dimensions,
		ItemDescription:   b.Shipment.ItemDescription,
		PickupTime:        unixNano(b.PickupTime),
		EstimatedDelivery: unixNano(b.EstimatedDelivery),
		CurrentStatus:     string(b.CurrentStatus),
		TrackingHistory:   entriesToResponse(b.TrackingHistory),
	}
}

func bookingsToResponse(list []domain.Booking) []bookingDTO {
	out := make([]bookingDTO, 0, len(list))
	for _, b := range list {
		out = append(out, bookingToResponse(b))
	}
	return out
}

func snapshotToResponse(s domain.TrackingSnapshot) trackingSnapshotDTO {
	return trackingSnapshotDTO{
		EstimatedDelivery: unixNano(s.EstimatedDelivery),
		CurrentStatus:     string(s.CurrentStatus),
		TrackingHistory:   entriesToResponse(s.TrackingHistory),
	}
}
