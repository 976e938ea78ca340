package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server needs from the environment so main
// stays lean.
type Config struct {
	Addr string

	// PostgresURL is empty when the in-memory document store should be used.
	PostgresURL string

	// CarriersFile points at the JSON carrier catalog. Empty means an empty
	// catalog, which rejects every submission with unknown_carrier.
	CarriersFile string

	Redis RedisConfig
	Kafka KafkaConfig

	// SweepInterval controls how often the expiry sweep scans pending
	// signature requests.
	SweepInterval time.Duration

	// DefaultExpiryDays applies when a signature request is created without
	// an explicit expiry.
	DefaultExpiryDays int
}

// RedisConfig configures the optional carrier catalog cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// KafkaConfig configures the optional lifecycle event sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Config from environment variables with development
// defaults.
func FromEnv() Config {
	cfg := Config{
		Addr:              getenv("POLISFLOW_ADDR", ":8080"),
		PostgresURL:       os.Getenv("POLISFLOW_POSTGRES_URL"),
		CarriersFile:      os.Getenv("POLISFLOW_CARRIERS_FILE"),
		SweepInterval:     getduration("POLISFLOW_SWEEP_INTERVAL", time.Minute),
		DefaultExpiryDays: getint("POLISFLOW_DEFAULT_EXPIRY_DAYS", 7),
		Redis: RedisConfig{
			URL:          os.Getenv("POLISFLOW_REDIS_URL"),
			PoolSize:     getint("POLISFLOW_REDIS_POOL_SIZE", 10),
			MinIdleConns: getint("POLISFLOW_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getduration("POLISFLOW_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getduration("POLISFLOW_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getduration("POLISFLOW_REDIS_WRITE_TIMEOUT", 3*time.Second),
			CacheTTL:     getduration("POLISFLOW_CARRIER_CACHE_TTL", time.Hour),
		},
		Kafka: KafkaConfig{
			Topic: getenv("POLISFLOW_KAFKA_TOPIC", "polisflow.document-events"),
		},
	}
	if brokers := os.Getenv("POLISFLOW_KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.Kafka.Brokers = append(cfg.Kafka.Brokers, b)
			}
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
