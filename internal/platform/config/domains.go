package config

import "time"

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	MaxConnections    int32         `env:"DB_MAX_CONNECTIONS" envDefault:"25"`
	MinConnections    int32         `env:"DB_MIN_CONNECTIONS" envDefault:"5"`
	MaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	MaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	HealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
}
