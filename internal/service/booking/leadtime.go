package booking

import (
	"fmt"
	"time"

	"freightline/internal/domain"
)

// LeadTime returns the promised delivery window for a service type,
// added to the pickup time at booking. dedicatedFreight is scheduled
// capacity; four days is the default planning window.
func LeadTime(serviceType domain.ServiceType) (time.Duration, error) {
	switch serviceType {
	case domain.ServiceRegional:
		return 2 * 24 * time.Hour, nil
	case domain.ServiceExpedited:
		return 2 * 24 * time.Hour, nil
	case domain.ServiceDedicatedFreight:
		return 4 * 24 * time.Hour, nil
	case domain.ServiceLongHaul:
		return 5 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown service type: %s", serviceType)
	}
}
