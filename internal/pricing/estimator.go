package pricing

import (
	"math"
	"strings"

	"freightline/internal/apperr"
	"freightline/internal/domain"
)

// rates is the pricing table for one service type. Each service type is
// configured independently: expedited carries the highest per-mile rate,
// dedicatedFreight the highest base fee (capacity reservation).
type rates struct {
	baseFee  float64
	perMile  float64
	perPound float64
}

var rateTable = map[domain.ServiceType]rates{
	domain.ServiceRegional:         {baseFee: 75, perMile: 1.80, perPound: 0.05},
	domain.ServiceLongHaul:         {baseFee: 150, perMile: 2.10, perPound: 0.04},
	domain.ServiceExpedited:        {baseFee: 250, perMile: 3.50, perPound: 0.06},
	domain.ServiceDedicatedFreight: {baseFee: 500, perMile: 2.40, perPound: 0.03},
}

// surcharge is a per-shipment flat fee keyed by item description keywords.
type surcharge struct {
	keywords []string
	fee      float64
}

var surcharges = []surcharge{
	{keywords: []string{"hazardous", "hazmat", "flammable", "chemical", "explosive"}, fee: 150},
	{keywords: []string{"oversize", "oversized"}, fee: 100},
	{keywords: []string{"refrigerated", "perishable", "frozen"}, fee: 75},
	{keywords: []string{"fragile", "glass"}, fee: 50},
}

// Estimator computes deterministic price quotes. Pure: no state, no side
// effects. The distance function is pluggable; ZoneDistance is the default.
type Estimator struct {
	distance DistanceFunc
}

// NewEstimator creates an Estimator with the given distance function,
// falling back to the built-in zone proxy when nil.
func NewEstimator(distance DistanceFunc) *Estimator {
	if distance == nil {
		distance = ZoneDistance
	}
	return &Estimator{distance: distance}
}

// Estimate returns the quote for moving weight pounds of itemType freight
// between the two addresses under the given service type, rounded to two
// decimal places.
func (e *Estimator) Estimate(pickup, destination domain.Address, weight float64, itemType string, serviceType domain.ServiceType) (float64, error) {
	if weight <= 0 {
		return 0, apperr.ErrInvalid
	}
	if !serviceType.Valid() {
		return 0, apperr.ErrInvalid
	}
	if !pickup.Complete() || !destination.Complete() {
		return 0, apperr.ErrInvalidAddress
	}

	r := rateTable[serviceType]
	miles := e.distance(pickup, destination)
	price := r.baseFee + miles*r.perMile + weight*r.perPound + ItemSurcharge(itemType)
	return math.Round(price*100) / 100, nil
}

// ItemSurcharge returns the flat fee for item descriptions matching a
// known surcharge keyword. Matching is case-insensitive on substrings;
// unknown item types incur no surcharge.
func ItemSurcharge(itemType string) float64 {
	item := strings.ToLower(itemType)
	for _, s := range surcharges {
		for _, kw := range s.keywords {
			if strings.Contains(item, kw) {
				return s.fee
			}
		}
	}
	return 0
}
