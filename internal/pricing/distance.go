package pricing

import (
	"math"
	"strings"

	"freightline/internal/domain"
)

// DistanceFunc estimates driving miles between two addresses. It must be
// deterministic, symmetric and non-negative; real-world accuracy is not
// required.
type DistanceFunc func(pickup, destination domain.Address) float64

const (
	sameZipMiles      = 30
	sameStateMiles    = 120
	unknownStateMiles = 750

	// road miles exceed great-circle miles; a flat winding factor is
	// enough for a pricing proxy
	roadFactor = 1.2

	earthRadiusMiles = 3958.8
)

// latLon is a state centroid in degrees.
type latLon struct{ lat, lon float64 }

var stateCentroids = map[string]latLon{
	"AL": {32.8, -86.8}, "AK": {64.1, -152.3}, "AZ": {34.3, -111.7},
	"AR": {34.9, -92.4}, "CA": {37.2, -119.3}, "CO": {39.0, -105.5},
	"CT": {41.6, -72.7}, "DE": {39.0, -75.5}, "FL": {28.6, -82.4},
	"GA": {32.6, -83.4}, "HI": {20.3, -156.4}, "ID": {44.4, -114.6},
	"IL": {40.0, -89.2}, "IN": {39.9, -86.3}, "IA": {42.1, -93.5},
	"KS": {38.5, -98.4}, "KY": {37.5, -85.3}, "LA": {31.0, -92.0},
	"ME": {45.4, -69.2}, "MD": {39.0, -76.8}, "MA": {42.3, -71.8},
	"MI": {44.3, -85.4}, "MN": {46.3, -94.3}, "MS": {32.7, -89.7},
	"MO": {38.4, -92.5}, "MT": {47.0, -109.6}, "NE": {41.5, -99.8},
	"NV": {39.3, -116.6}, "NH": {43.7, -71.6}, "NJ": {40.2, -74.7},
	"NM": {34.4, -106.1}, "NY": {42.9, -75.5}, "NC": {35.5, -79.4},
	"ND": {47.4, -100.5}, "OH": {40.3, -82.8}, "OK": {35.6, -97.5},
	"OR": {43.9, -120.6}, "PA": {40.9, -77.8}, "RI": {41.7, -71.6},
	"SC": {33.9, -80.9}, "SD": {44.4, -100.2}, "TN": {35.8, -86.3},
	"TX": {31.5, -99.4}, "UT": {39.3, -111.7}, "VT": {44.1, -72.7},
	"VA": {37.5, -78.9}, "WA": {47.4, -120.4}, "WV": {38.6, -80.6},
	"WI": {44.6, -89.7}, "WY": {43.0, -107.6}, "DC": {38.9, -77.0},
}

// ZoneDistance is the built-in distance proxy: state-centroid haversine
// with short-circuits for same-state and same-zip pairs. Unknown states
// fall back to a fixed long-haul figure so free-text input still quotes
// deterministically.
func ZoneDistance(pickup, destination domain.Address) float64 {
	fromState := normalizeState(pickup.State)
	toState := normalizeState(destination.State)

	if fromState == toState {
		if strings.TrimSpace(pickup.Zip) == strings.TrimSpace(destination.Zip) {
			return sameZipMiles
		}
		return sameStateMiles
	}

	from, okFrom := stateCentroids[fromState]
	to, okTo := stateCentroids[toState]
	if !okFrom || !okTo {
		return unknownStateMiles
	}
	return math.Round(haversineMiles(from, to) * roadFactor)
}

func normalizeState(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func haversineMiles(a, b latLon) float64 {
	lat1 := a.lat * math.Pi / 180
	lat2 := b.lat * math.Pi / 180
	dLat := (b.lat - a.lat) * math.Pi / 180
	dLon := (b.lon - a.lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}
