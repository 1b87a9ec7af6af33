package handlers

// Wire timestamps are int64 nanoseconds since the Unix epoch.

type addressDTO struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country,omitempty"`
}

type customerDTO struct {
	Name           string `json:"name"`
	ContactDetails string `json:"contact_details"`
	Company        string `json:"company,omitempty"`
}

type quoteRequest struct {
	PickupAddress   addressDTO `json:"pickup_address"`
	DeliveryAddress addressDTO `json:"delivery_address"`
	WeightLbs       float64    `json:"weight_lbs"`
	ItemDescription string     `json:"item_description,omitempty"`
	ServiceType     string     `json:"service_type"`
}

type quoteResponse struct {
	EstimatedCost float64 `json:"estimated_cost"`
}

type createBookingRequest struct {
	Customer        customerDTO `json:"customer"`
	PickupAddress   addressDTO  `json:"pickup_address"`
	DeliveryAddress addressDTO  `json:"delivery_address"`
	WeightLbs       float64     `json:"weight_lbs"`
	Dimensions      string      `json:"dimensions,omitempty"`
	ItemDescription string      `json:"item_description,omitempty"`
	ServiceType     string      `json:"service_type"`
	PickupTime      int64       `json:"pickup_time"`
}

type createBookingResponse struct {
	ShipmentID string `json:"shipment_id"`
}

type trackingEntryDTO struct {
	Status    string `json:"status"`
	Location  string `json:"location"`
	Notes     string `json:"notes,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type bookingDTO struct {
	ShipmentID        string             `json:"shipment_id"`
	ServiceType       string             `json:"service_type"`
	Customer          customerDTO        `json:"customer"`
	PickupAddress     addressDTO         `json:"pickup_address"`
	DeliveryAddress   addressDTO         `json:"delivery_address"`
	WeightLbs         float64            `json:"weight_lbs"`
	Dimensions        string             `json:"dimensions,omitempty"`
	ItemDescription   string             `json:"item_description,omitempty"`
	PickupTime        int64              `json:"pickup_time"`
	EstimatedDelivery int64              `json:"estimated_delivery"`
	CurrentStatus     string             `json:"current_status"`
	TrackingHistory   []trackingEntryDTO `json:"tracking_history"`
}

type trackingSnapshotDTO struct {
	EstimatedDelivery int64              `json:"estimated_delivery"`
	CurrentStatus     string             `json:"current_status"`
	TrackingHistory   []trackingEntryDTO `json:"tracking_history"`
}

type updateTrackingRequest struct {
	Location string `json:"location"`
	Status   string `json:"status"`
	Notes    string `json:"notes,omitempty"`
}
