package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	Version     string `env:"APP_VERSION" envDefault:"0.1.0"`
	ProjectName string `env:"PROJECT_NAME" envDefault:"Global HealthOps Nexus API"`
	APIPrefix   string `env:"API_PREFIX" envDefault:"/api/v1"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8000"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	Database   Database   `envPrefix:"DATABASE_"`
	Auth       Auth       `envPrefix:"AUTH_"`
	CORS       CORS       `envPrefix:"CORS_"`
	Redis      Redis      `envPrefix:"REDIS_"`
	Health     Health     `envPrefix:"HEALTH_"`
	Pagination Pagination `envPrefix:"PAGINATION_"`
	RateLimit  RateLimit  `envPrefix:"RATE_LIMIT_"`
}

// Database contains database connection parameters.
type Database struct {
	Driver          string        `env:"DRIVER" envDefault:"sqlite"`
	DSN             string        `env:"DSN" envDefault:"app.db?_foreign_keys=on"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"30m"`
}

// Auth contains credential and token parameters.
type Auth struct {
	SecretKey      string        `env:"SECRET_KEY" envDefault:"your-secret-key-here"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"30m"`
	BcryptCost     int           `env:"BCRYPT_COST" envDefault:"10"`
}

type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Redis is optional; an empty Addr disables it.
type Redis struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type Health struct {
	CacheTTL         time.Duration `env:"CACHE_TTL" envDefault:"30s"`
	ComponentTimeout time.Duration `env:"COMPONENT_TIMEOUT" envDefault:"5s"`
	// RefreshInterval warms the snapshot in the background; 0 disables it.
	RefreshInterval  time.Duration `env:"REFRESH_INTERVAL" envDefault:"30s"`
}

// Pagination holds the list policy shared by every repository.
type Pagination struct {
	DefaultLimit    int `env:"DEFAULT_LIMIT" envDefault:"100"`
	MaxLimit        int `env:"MAX_LIMIT" envDefault:"1000"`
	SearchMinLength int `env:"SEARCH_MIN_LENGTH" envDefault:"3"`
}

type RateLimit struct {
	RPS   float64 `env:"RPS" envDefault:"5"`
	Burst int     `env:"BURST" envDefault:"10"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database dsn is empty"))
	}
	if c.Auth.SecretKey == "" {
		errs = append(errs, errors.New("auth secret key is empty"))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("access token ttl must be positive"))
	}
	if c.Health.CacheTTL <= 0 || c.Health.ComponentTimeout <= 0 {
		errs = append(errs, errors.New("health cache ttl and component timeout must be positive"))
	}
	if c.Health.RefreshInterval < 0 {
		errs = append(errs, errors.New("health refresh interval must not be negative"))
	}
	if c.Pagination.DefaultLimit <= 0 || c.Pagination.MaxLimit < c.Pagination.DefaultLimit {
		errs = append(errs, errors.New("pagination limits must satisfy 0 < default <= max"))
	}
	if c.Pagination.SearchMinLength < 0 {
		errs = append(errs, errors.New("search min length must not be negative"))
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("rate limit rps and burst must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
