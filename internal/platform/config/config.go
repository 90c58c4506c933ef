// Package config carga la configuración del proceso: defaults, archivo YAML
// opcional (DOGS_CONFIG) y variables de entorno DOGS_*.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// Drivers de almacenamiento soportados.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Addr      string `koanf:"addr"`
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
	AppName   string `koanf:"app_name"`

	StorageDriver string `koanf:"storage_driver"`
	PostgresDSN   string `koanf:"postgres_dsn"`
	SQLitePath    string `koanf:"sqlite_path"`

	CacheEnabled  bool          `koanf:"cache_enabled"`
	CacheTTL      time.Duration `koanf:"cache_ttl"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	RedisTLS      bool          `koanf:"redis_tls"`

	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	MetricsEnabled   bool   `koanf:"metrics_enabled"`
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`
	// Segundos separados por coma, ej. "0.005,0.05,0.5". Vacío usa los de prometheus.
	MetricsBuckets string `koanf:"metrics_buckets"`

	SwaggerEnabled bool `koanf:"swagger_enabled"`
}

// Default devuelve la configuración de desarrollo: store en memoria, sin cache.
func Default() Config {
	return Config{
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "text",
		AppName:   "dogs-api",

		StorageDriver: DriverMemory,
		SQLitePath:    "data/dogs.db",

		CacheEnabled: false,
		CacheTTL:     30 * time.Second,
		RedisAddr:    "localhost:6379",

		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 10 * time.Second,

		MetricsEnabled:   true,
		MetricsNamespace: "dogs",
		MetricsSubsystem: "api",

		SwaggerEnabled: true,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}

	switch c.StorageDriver {
	case DriverMemory:
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("%w: sqlite_path required for sqlite driver", ErrInvalidConfig)
		}
	case DriverPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return fmt.Errorf("%w: postgres_dsn required for postgres driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage_driver %q", ErrInvalidConfig, c.StorageDriver)
	}

	if c.CacheEnabled && strings.TrimSpace(c.RedisAddr) == "" {
		return fmt.Errorf("%w: redis_addr required when cache is enabled", ErrInvalidConfig)
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	}
	if _, err := c.HistogramBuckets(); err != nil {
		return err
	}
	return nil
}

// HistogramBuckets parsea metrics_buckets. Devuelve nil si no está definido.
func (c Config) HistogramBuckets() ([]float64, error) {
	raw := strings.TrimSpace(c.MetricsBuckets)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("%w: metrics_buckets: bad value %q", ErrInvalidConfig, p)
		}
		if len(out) > 0 && v <= out[len(out)-1] {
			return nil, fmt.Errorf("%w: metrics_buckets must be increasing", ErrInvalidConfig)
		}
		out = append(out, v)
	}
	return out, nil
}
