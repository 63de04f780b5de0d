package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process configuration, read from the environment
type Config struct {
	Port            string        `env:"SERVER_PORT, default=3000"`
	Env             string        `env:"ENV, default=development"`
	LogLevel        string        `env:"LOG_LEVEL, default=info"`
	LogPretty       bool          `env:"LOG_PRETTY, default=false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=5s"`

	// JWTSecret may be empty; login then fails with 500 instead of the
	// process refusing to start.
	JWTSecret string `env:"JWT_SECRET"`

	DB DBConfig
}

// DBConfig holds database connection parameters
type DBConfig struct {
	Host           string `env:"POSTGRES_HOST, default=localhost"`
	Port           int    `env:"POSTGRES_PORT, default=5432"`
	Name           string `env:"POSTGRES_NAME, default=storefront"`
	User           string `env:"POSTGRES_USER, default=postgres"`
	Password       string `env:"POSTGRES_PASSWORD"`
	SSLMode        string `env:"POSTGRES_SSLMODE, default=disable"`
	MaxConns       int32  `env:"POSTGRES_MAX_CONNS, default=10"`
	ConnectRetries int    `env:"POSTGRES_CONNECT_RETRIES, default=5"`
}

// DSN renders the keyword/value connection string understood by pgx
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// IsTest reports whether the process runs under ENV=test
func (c *Config) IsTest() bool {
	return c.Env == "test"
}

// Load reads configuration from the process environment
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through the given lookuper
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}
