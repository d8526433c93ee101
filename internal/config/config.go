// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/luckytour/fare-quotation-service/internal/domain"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/logger"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/tracing"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Timeouts TimeoutConfig
	Logging  LoggingConfig
	App      AppConfig
	GDS      GDSConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Tracing  tracing.Config
	Sellers  SellerConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
}

// TimeoutConfig holds timeouts for the search and quote paths.
type TimeoutConfig struct {
	Search       time.Duration `env:"TIMEOUT_SEARCH" envDefault:"30s"`
	Quote        time.Duration `env:"TIMEOUT_QUOTE" envDefault:"45s"`
	UpstreamCall time.Duration `env:"TIMEOUT_UPSTREAM_CALL" envDefault:"20s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	Caller bool   `env:"LOG_CALLER" envDefault:"false"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"SERVICE_NAME" envDefault:"fare-quotation"`
}

// GDSConfig holds the upstream fare API settings.
type GDSConfig struct {
	BaseURL              string        `env:"GDS_BASE_URL" envDefault:"https://api-gwc.glas.travel/api"`
	Username             string        `env:"GDS_USERNAME"`
	Password             string        `env:"GDS_PASSWORD"`
	CompanyAssociationID string        `env:"GDS_COMPANY_ASSOCIATION_ID" envDefault:"3036"`
	WholesalerID         string        `env:"GDS_WHOLESALER_ID" envDefault:"538"`
	Channel              string        `env:"GDS_CHANNEL" envDefault:"GWC"`
	Origin               string        `env:"GDS_ORIGIN"`
	TokenTTL             time.Duration `env:"GDS_TOKEN_TTL" envDefault:"50m"`
	MaxResults           int           `env:"GDS_MAX_RESULTS" envDefault:"30"`
	RetryAttempts        int           `env:"GDS_RETRY_ATTEMPTS" envDefault:"3"`
}

// PostgresConfig holds booking storage settings. An empty DSN selects the
// in-memory store.
type PostgresConfig struct {
	DSN     string `env:"POSTGRES_DSN"`
	Migrate bool   `env:"POSTGRES_MIGRATE" envDefault:"true"`
}

// RedisConfig holds search cache connection settings. An empty Addr disables
// the cache.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// CacheConfig holds search cache behavior.
type CacheConfig struct {
	SearchTTL time.Duration `env:"CACHE_SEARCH_TTL" envDefault:"5m"`
	KeyPrefix string        `env:"CACHE_KEY_PREFIX" envDefault:"fares:search:"`
}

// SellerConfig holds the agents printed on quote documents.
// Entries are "key|name|email|phone" separated by ';'.
type SellerConfig struct {
	Raw        string `env:"SELLERS"`
	DefaultKey string `env:"SELLER_DEFAULT"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Timeouts.Search <= 0 {
		return fmt.Errorf("TIMEOUT_SEARCH must be positive")
	}
	if cfg.Timeouts.Quote <= 0 {
		return fmt.Errorf("TIMEOUT_QUOTE must be positive")
	}
	if cfg.Timeouts.UpstreamCall <= 0 {
		return fmt.Errorf("TIMEOUT_UPSTREAM_CALL must be positive")
	}

	if cfg.Timeouts.UpstreamCall > cfg.Timeouts.Search {
		return fmt.Errorf("TIMEOUT_UPSTREAM_CALL (%s) should not exceed TIMEOUT_SEARCH (%s)",
			cfg.Timeouts.UpstreamCall, cfg.Timeouts.Search)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	if u, err := url.Parse(cfg.GDS.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("GDS_BASE_URL must be an absolute URL; got %q", cfg.GDS.BaseURL)
	}
	if cfg.GDS.MaxResults < 1 {
		return fmt.Errorf("GDS_MAX_RESULTS must be at least 1, got %d", cfg.GDS.MaxResults)
	}
	if cfg.GDS.RetryAttempts < 1 {
		return fmt.Errorf("GDS_RETRY_ATTEMPTS must be at least 1, got %d", cfg.GDS.RetryAttempts)
	}
	if cfg.GDS.TokenTTL <= 0 {
		return fmt.Errorf("GDS_TOKEN_TTL must be positive")
	}
	if cfg.IsProduction() && (cfg.GDS.Username == "" || cfg.GDS.Password == "") {
		return fmt.Errorf("GDS_USERNAME and GDS_PASSWORD are required in production")
	}

	if cfg.Cache.SearchTTL < 0 {
		return fmt.Errorf("CACHE_SEARCH_TTL cannot be negative")
	}
	if cfg.Redis.DB < 0 {
		return fmt.Errorf("REDIS_DB cannot be negative")
	}

	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		return fmt.Errorf("TRACING_SAMPLE_RATIO must be between 0 and 1, got %v", cfg.Tracing.SampleRatio)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// LoggerConfig returns the settings for logger.New.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:        c.Logging.Level,
		Format:       c.Logging.Format,
		EnableCaller: c.Logging.Caller,
		ServiceName:  c.App.Name,
	}
}

// SellerDirectory builds the seller directory, falling back to
// domain.DefaultSeller when SELLERS is empty or malformed.
func (c *Config) SellerDirectory() *domain.SellerDirectory {
	return domain.NewSellerDirectory(domain.ParseSellers(c.Sellers.Raw), c.Sellers.DefaultKey)
}
