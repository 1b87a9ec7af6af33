package app

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"freightline/internal/metrics"
)

type countersOut struct {
	dig.Out

	RateLimitExceeded prometheus.Counter `name:"rate_limit_exceeded_total"`
	RoutingRetries    prometheus.Counter `name:"routing_retries_total"`
	BookingsCreated   prometheus.Counter `name:"bookings_created_total"`
	TrackingUpdates   prometheus.Counter `name:"tracking_updates_total"`
	QuoteRequests     prometheus.Counter `name:"quote_requests_total"`
}

func newCounters() countersOut {
	return countersOut{
		RateLimitExceeded: registerCounter(metrics.NewRateLimitExceededTotal()),
		RoutingRetries:    registerCounter(metrics.NewRoutingRetriesTotal()),
		BookingsCreated:   registerCounter(metrics.NewBookingsCreatedTotal()),
		TrackingUpdates:   registerCounter(metrics.NewTrackingUpdatesTotal()),
		QuoteRequests:     registerCounter(metrics.NewQuoteRequestsTotal()),
	}
}

// registerCounter keeps container rebuilds (tests) from panicking on
// duplicate registration by reusing the existing collector.
func registerCounter(c prometheus.Counter) prometheus.Counter {
	err := prometheus.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
			return existing
		}
	}
	panic(err)
}
