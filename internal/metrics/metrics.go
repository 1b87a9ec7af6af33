package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for tracking lookups rejected by the rate limiter
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewRoutingRetriesTotal returns a Prometheus counter for retry attempts against the routing gateway
func NewRoutingRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "routing_gateway_retries_total",
		Help: "Total number of retry attempts performed against the routing gateway",
	})
}

// NewBookingsCreatedTotal returns a Prometheus counter for created bookings
func NewBookingsCreatedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Total number of bookings created",
	})
}

// NewTrackingUpdatesTotal returns a Prometheus counter for applied tracking updates
func NewTrackingUpdatesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tracking_updates_total",
		Help: "Total number of tracking updates applied",
	})
}

// NewQuoteRequestsTotal returns a Prometheus counter for served quote estimates
func NewQuoteRequestsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quote_requests_total",
		Help: "Total number of quote estimates served",
	})
}
