// Package config loads storefront configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Order log drivers.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverNone     = "none"
)

// Config holds the complete application configuration.
type Config struct {
	Store    StoreConfig
	OrderLog OrderLogConfig
	Server   ServerConfig
	Log      LogConfig
	Tracing  TracingConfig
}

// StoreConfig bounds the in-memory containers. Zero or less means unbounded.
type StoreConfig struct {
	CatalogCapacity int
	CartMaxLines    int
	LedgerCapacity  int
}

// OrderLogConfig selects and configures the order log sink.
type OrderLogConfig struct {
	Driver      string
	Path        string
	DatabaseURL string
	RedisAddr   string
	RedisKey    string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr       string
	TLSEnabled bool
	TLSCert    string
	TLSKey     string
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level       string
	Development bool
}

// TracingConfig holds OpenTelemetry configuration.
type TracingConfig struct {
	Host        string
	Stdout      bool
	SampleRatio float64
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Store: StoreConfig{
			CatalogCapacity: getEnvInt("CATALOG_CAPACITY", 50),
			CartMaxLines:    getEnvInt("CART_MAX_LINES", 100),
			LedgerCapacity:  getEnvInt("LEDGER_CAPACITY", 100),
		},
		OrderLog: OrderLogConfig{
			Driver:      getEnv("ORDER_LOG_DRIVER", DriverFile),
			Path:        getEnv("ORDER_LOG_PATH", "orders.log"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
			RedisKey:    getEnv("ORDER_LOG_REDIS_KEY", "orders:log"),
		},
		Server: ServerConfig{
			Addr:       getEnv("HTTP_ADDR", ":8443"),
			TLSEnabled: getEnvBool("TLS_ENABLED", true),
			TLSCert:    getEnv("TLS_CERT", "certs/server.crt"),
			TLSKey:     getEnv("TLS_KEY", "certs/server.key"),
		},
		Log: LogConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvBool("LOG_DEVELOPMENT", false),
		},
		Tracing: TracingConfig{
			Host:        os.Getenv("OTEL_HOST"),
			Stdout:      getEnvBool("OTEL_STDOUT", false),
			SampleRatio: getEnvFloat("OTEL_SAMPLE_RATIO", 1.0),
		},
	}
}

// Validate reports configuration that cannot be used.
func (c Config) Validate() error {
	switch c.OrderLog.Driver {
	case DriverFile:
		if c.OrderLog.Path == "" {
			return fmt.Errorf("ORDER_LOG_PATH is required for the %s driver", DriverFile)
		}
	case DriverPostgres:
		if c.OrderLog.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s driver", DriverPostgres)
		}
	case DriverRedis:
		if c.OrderLog.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the %s driver", DriverRedis)
		}
	case DriverNone:
	default:
		return fmt.Errorf("unknown ORDER_LOG_DRIVER %q", c.OrderLog.Driver)
	}
	if r := c.Tracing.SampleRatio; r < 0 || r > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATIO must be within [0,1], got %v", r)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
