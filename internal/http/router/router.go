package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"freightline/internal/http/handlers"
	mw "freightline/internal/http/middleware"
	"freightline/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
// trackingLimit guards the public tracking lookup; pass nil to disable.
func New(base *handlers.Handlers, booking *handlers.BookingHandler, logger logx.Logger, trackingLimit func(http.Handler) http.Handler) http.Handler {
	if logger == nil {
		logger = logx.Nop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))
	r.Use(mw.Observability(logger))

	r.Get("/ping", base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Post("/quote", booking.Quote)

		api.Route("/bookings", func(b chi.Router) {
			b.Post("/", booking.Create)
			b.Get("/", booking.List)
			b.Get("/{shipmentID}", booking.GetByID)
			b.Post("/{shipmentID}/tracking", booking.UpdateTracking)
		})

		api.Route("/tracking", func(tr chi.Router) {
			if trackingLimit != nil {
				tr.Use(trackingLimit)
			}
			tr.Get("/{shipmentID}", booking.Track)
		})
	})

	r.NotFound(http.HandlerFunc(base.NotFound))

	return r
}
