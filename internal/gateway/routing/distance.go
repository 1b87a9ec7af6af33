package routing

import (
	"context"
	"time"

	"freightline/internal/domain"
	"freightline/internal/logx"
	"freightline/internal/pricing"
)

// DistanceFunc adapts a routing gateway to the pricing distance
// signature. When the gateway fails the fallback proxy answers instead,
// so quoting stays available while the routing service is down.
func DistanceFunc(gw gateway, fallback pricing.DistanceFunc, timeout time.Duration, logger logx.Logger) pricing.DistanceFunc {
	if fallback == nil {
		fallback = pricing.ZoneDistance
	}
	if gw == nil {
		return fallback
	}
	if g, ok := gw.(*RetryingGateway); ok && g == nil {
		return fallback
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}

	return func(pickup, destination domain.Address) float64 {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		miles, err := gw.RoadMiles(ctx, pickup, destination)
		if err != nil {
			logger.Warn("routing gateway unavailable, using zone distance",
				logx.String("from", pickup.Summary()),
				logx.String("to", destination.Summary()),
				logx.Err(err),
			)
			return fallback(pickup, destination)
		}
		return miles
	}
}
