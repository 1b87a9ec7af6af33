package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a postgres connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Kafka stores tracking-events consumer settings. Empty brokers disable
// the consumer.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Routing stores remote distance gateway settings. Empty BaseURL
// disables the gateway and pricing falls back to the built-in proxy.
type Routing struct {
	BaseURL     string
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RateLimit stores per-client limits on the public tracking endpoint.
type RateLimit struct {
	Limit  int
	Window time.Duration
}

// Config stores freightline service settings.
type Config struct {
	Port         int
	StoreBackend string // "memory" or "postgres"
	TrackingMode string // "strict" or "permissive"
	DB           DB
	Kafka        Kafka
	Routing      Routing
	RateLimit    RateLimit
	PprofAddr    string // empty disables the pprof listener
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:         DefaultPort(),
		StoreBackend: DefaultStoreBackend(),
		TrackingMode: DefaultTrackingMode(),
		DB:           DefaultDB(),
		Kafka:        DefaultKafka(),
		Routing:      DefaultRouting(),
		RateLimit:    DefaultRateLimit(),
	}

	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	applyString(&cfg.StoreBackend, "STORE_BACKEND")
	applyString(&cfg.TrackingMode, "TRACKING_MODE")
	applyString(&cfg.DB.Host, "DB_HOST")
	applyString(&cfg.DB.Port, "DB_PORT")
	applyString(&cfg.DB.User, "DB_USER")
	applyString(&cfg.DB.Pass, "DB_PASS")
	applyString(&cfg.DB.Name, "DB_NAME")
	applyString(&cfg.Kafka.Topic, "KAFKA_TOPIC")
	applyString(&cfg.Kafka.GroupID, "KAFKA_GROUP_ID")
	applyString(&cfg.Routing.BaseURL, "ROUTING_BASE_URL")
	applyString(&cfg.PprofAddr, "PPROF_ADDR")
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitBrokers(v)
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.StoreBackend, "store", cfg.StoreBackend, "booking store backend: memory or postgres")
	pflag.StringVar(&cfg.TrackingMode, "tracking-mode", cfg.TrackingMode, "tracking policy: strict or permissive")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.StoreBackend != "memory" && cfg.StoreBackend != "postgres" {
		return nil, fmt.Errorf("invalid store backend: %q", cfg.StoreBackend)
	}
	if cfg.TrackingMode != "strict" && cfg.TrackingMode != "permissive" {
		return nil, fmt.Errorf("invalid tracking mode: %q", cfg.TrackingMode)
	}
	return cfg, nil
}

func applyString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitBrokers(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
