// Package config loads application configuration from environment variables,
// with optional .env file support for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Ledger backend identifiers.
const (
	LedgerBackendPostgres = "postgres"
	LedgerBackendRedis    = "redis"
)

type Config struct {
	AppEnv        string `env:"APP_ENV" envDefault:"local"`
	PostgresDSN   string `env:"POSTGRES_DSN"`
	RedisURL      string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	LedgerBackend string `env:"LEDGER_BACKEND" envDefault:"postgres"`

	LLMAPIKey    string `env:"LLM_API_KEY" envDefault:"mock"`
	LLMModel     string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	RateLimitRPS int    `env:"RATE_LIMIT_RPS" envDefault:"1"`

	ContentDir      string `env:"CONTENT_DIR" envDefault:"./content"`
	TopicConfigPath string `env:"TOPIC_CONFIG_PATH"`
	ExamOutputDir   string `env:"EXAM_OUTPUT_DIR" envDefault:"./exams"`
	ChunkSize       int    `env:"CHUNK_SIZE" envDefault:"4000"`
	ChunkOverlap    int    `env:"CHUNK_OVERLAP" envDefault:"400"`

	HealthPort int `env:"HEALTH_PORT" envDefault:"8080"`

	Database DatabaseConfig
}

// Load reads configuration from the environment, merging in a local .env
// file when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.LedgerBackend {
	case LedgerBackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when LEDGER_BACKEND=postgres")
		}
	case LedgerBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when LEDGER_BACKEND=redis")
		}
	default:
		return fmt.Errorf("LEDGER_BACKEND must be %q or %q, got %q",
			LedgerBackendPostgres, LedgerBackendRedis, c.LedgerBackend)
	}

	return nil
}
