package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"freightline/internal/config"
	"freightline/internal/gateway/routing"
	"freightline/internal/http/handlers"
	"freightline/internal/http/middleware/ratelimit"
	"freightline/internal/http/router"
	"freightline/internal/logx"
	"freightline/internal/pricing"
	"freightline/internal/service/booking"
	"freightline/internal/service/trackevents"
	"freightline/internal/shipid"
	"freightline/internal/store"
	"freightline/internal/store/postgres"
	"freightline/internal/tracking"
	"freightline/internal/transport/kafka"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns the dig container for the HTTP service
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds and returns the dig container for the kafka worker
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerStore(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerStore(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds the HTTP service container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the kafka worker container
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
		newCounters,
		newRateLimitClock,
	)
}

type storeOut struct {
	dig.Out

	Store store.Store
	Pool  *pgxpool.Pool
}

func registerStore(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	provider := func(ctx context.Context, cfg *config.Config) (storeOut, error) {
		switch cfg.StoreBackend {
		case "postgres":
			pool, err := dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
			if err != nil {
				return storeOut{}, err
			}
			return storeOut{Store: postgres.New(pool), Pool: pool}, nil
		default:
			return storeOut{Store: store.NewMemory()}, nil
		}
	}
	return provideAll(container, provider)
}

type distanceIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"routing_retries_total"`
}

func newDistanceFunc(in distanceIn) pricing.DistanceFunc {
	gw := routing.NewHTTPGateway(in.Cfg.Routing.BaseURL, 5*time.Second)
	rg := routing.NewRetryingGateway(gw, in.Logger, in.Retries, routing.RetryConfig{
		MaxAttempts: in.Cfg.Routing.MaxAttempts,
		BaseDelay:   in.Cfg.Routing.BaseDelay,
		MaxDelay:    in.Cfg.Routing.MaxDelay,
	})
	return routing.DistanceFunc(rg, pricing.ZoneDistance, 5*time.Second, in.Logger)
}

type bookingServiceIn struct {
	dig.In

	Store     store.Store
	Generator *shipid.Generator
	Machine   *tracking.Machine
	Estimator *pricing.Estimator
	Timeout   time.Duration
	Logger    logx.Logger

	BookingsCreated prometheus.Counter `name:"bookings_created_total"`
	TrackingUpdates prometheus.Counter `name:"tracking_updates_total"`
	QuoteRequests   prometheus.Counter `name:"quote_requests_total"`
}

func newBookingService(in bookingServiceIn) *booking.Service {
	svc := booking.NewService(in.Store, in.Generator, in.Machine, in.Estimator, in.Timeout, in.Logger)
	return svc.WithMetrics(booking.Metrics{
		BookingsCreated: in.BookingsCreated,
		TrackingUpdates: in.TrackingUpdates,
		QuoteRequests:   in.QuoteRequests,
	})
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config) (tracking.Policy, error) {
			return tracking.ParsePolicy(cfg.TrackingMode)
		},
		func(st store.Store, policy tracking.Policy) *tracking.Machine {
			return tracking.NewMachine(st, policy)
		},
		func(st store.Store) *shipid.Generator {
			return shipid.New(st.Exists)
		},
		newDistanceFunc,
		pricing.NewEstimator,
		func() time.Duration { return 3 * time.Second },
		newBookingService,
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	routerProvider := func(base *handlers.Handlers, bh *handlers.BookingHandler, logger logx.Logger, m *ratelimit.Middleware) http.Handler {
		return router.New(base, bh, logger, m.Handler())
	}
	return provideAll(container,
		handlers.New,
		handlers.NewBookingUsecase,
		handlers.NewBookingHandler,
		newRateLimiter,
		newRateLimitMiddleware,
		routerProvider,
		serverProvider,
	)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(svc *booking.Service, logger logx.Logger) *trackevents.Processor {
			return trackevents.NewProcessor(svc, logger)
		},
		func(p *trackevents.Processor) kafka.HandleFunc {
			return p.Handle
		},
		func(cfg *config.Config, h kafka.HandleFunc, logger logx.Logger) (*kafka.Consumer, error) {
			return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h, logger)
		},
	)
}
