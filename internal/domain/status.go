package domain

type (
	// ServiceType is the tier of transportation service. Closed set;
	// drives the pricing table and the delivery lead time.
	ServiceType string
	// ShipmentStatus is a shipment's position in its delivery progression.
	ShipmentStatus string
)

// List of service types
const (
	ServiceRegional         ServiceType = "regional"
	ServiceLongHaul         ServiceType = "longHaul"
	ServiceExpedited        ServiceType = "expedited"
	ServiceDedicatedFreight ServiceType = "dedicatedFreight"
)

// List of shipment statuses, in progression order
const (
	StatusPickedUp       ShipmentStatus = "pickedUp"
	StatusInTransit      ShipmentStatus = "inTransit"
	StatusOutForDelivery ShipmentStatus = "outForDelivery"
	StatusDelivered      ShipmentStatus = "delivered"
)

var allowedServiceTypes = [...]ServiceType{
	ServiceRegional, ServiceLongHaul, ServiceExpedited, ServiceDedicatedFreight,
}

var allowedStatuses = [...]ShipmentStatus{
	StatusPickedUp, StatusInTransit, StatusOutForDelivery, StatusDelivered,
}

// Valid checks if the ServiceType is a member of the closed set.
func (s ServiceType) Valid() bool {
	for _, v := range allowedServiceTypes {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the ShipmentStatus is a member of the closed set.
func (s ShipmentStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Rank returns the status position in the delivery progression,
// starting at 0 for pickedUp. Unknown statuses rank below pickedUp.
func (s ShipmentStatus) Rank() int {
	for i, v := range allowedStatuses {
		if s == v {
			return i
		}
	}
	return -1
}

// Statuses returns all shipment statuses in progression order.
func Statuses() []ShipmentStatus {
	out := make([]ShipmentStatus, len(allowedStatuses))
	copy(out, allowedStatuses[:])
	return out
}
