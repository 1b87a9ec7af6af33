package config

import "time"

const (
	defaultPort         = 8080
	defaultStoreBackend = "memory"
	defaultTrackingMode = "strict"
)

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "freightline",
	Pass: "freightline",
	Name: "freightline",
}

var defaultKafka = Kafka{
	Topic:   "tracking-events",
	GroupID: "freightline-worker",
}

var defaultRouting = Routing{
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    2 * time.Second,
}

var defaultRateLimit = RateLimit{
	Limit:  30,
	Window: time.Minute,
}

// DefaultPort returns the default HTTP port.
func DefaultPort() int {
	return defaultPort
}

// DefaultStoreBackend returns the default booking store backend.
func DefaultStoreBackend() string {
	return defaultStoreBackend
}

// DefaultTrackingMode returns the default tracking policy mode.
func DefaultTrackingMode() string {
	return defaultTrackingMode
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultKafka returns the default tracking-events consumer settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultRouting returns the default distance gateway settings.
func DefaultRouting() Routing {
	return defaultRouting
}

// DefaultRateLimit returns the default tracking endpoint rate limit.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
