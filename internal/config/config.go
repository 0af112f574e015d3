// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env`
// file when present), loads them into structured Go types and
// validates that required values are present so they can be reused
// across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for optional config blocks (observability, notifications).
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the DRINKS_ prefix. Keys are lowercased, the
	prefix is removed and "." marks nesting:

	  DRINKS_SERVER.PORT            -> server.port            -> Config.Server.Port
	  DRINKS_DRINKS.LETTER_MATCH    -> drinks.letter_match    -> Config.Drinks.LetterMatch

	Underscores inside a key are kept as-is, so multi-word keys such as
	read_timeout stay intact.
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "DRINKS_"

// Store backends for the drinks repository.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Letter matching modes for the index filter.
const (
	LetterMatchCaseSensitive   = "case_sensitive"
	LetterMatchCaseInsensitive = "case_insensitive"
)

// Config is the root configuration object for the application.
//
// Database is a pointer because it is only needed when the drinks store
// is PostgreSQL. Observability and Notifications are pointers because they
// are optional; defaults are injected when they are missing.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      *DatabaseConfig      `koanf:"database"`
	Redis         RedisConfig          `koanf:"redis"`
	Drinks        DrinksConfig         `koanf:"drinks" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Notifications *NotificationsConfig `koanf:"notifications"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// PublicURL is the externally visible base URL, used for links in
	// notification emails.
	PublicURL string `koanf:"public_url" validate:"omitempty,url"`

	// RateLimit is the number of requests per second allowed per client IP.
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=0"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port"; empty disables Redis entirely.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// DrinksConfig controls the drinks resource itself.
type DrinksConfig struct {
	// Store selects the persistence backend.
	Store string `koanf:"store" validate:"required,oneof=postgres memory"`

	// LetterMatch selects how the index letter filter compares names.
	LetterMatch string `koanf:"letter_match" validate:"required,oneof=case_sensitive case_insensitive"`
}

// IntegrationConfig stores third-party API credentials.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
}

// NotificationsConfig controls change notifications for drinks.
type NotificationsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Recipient string `koanf:"recipient" validate:"omitempty,email"`
	From      string `koanf:"from" validate:"required"`
}

// DefaultConfig returns the configuration used before env vars are applied.
// Every value here can be overridden from the environment.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
			PublicURL:          "http://localhost:8080",
		},
		Drinks: DrinksConfig{
			Store:       StorePostgres,
			LetterMatch: LetterMatchCaseSensitive,
		},
		Notifications: DefaultNotificationsConfig(),
		Observability: DefaultObservabilityConfig(),
	}
}

// DefaultNotificationsConfig keeps notifications off until a recipient is configured.
func DefaultNotificationsConfig() *NotificationsConfig {
	return &NotificationsConfig{
		Enabled: false,
		From:    "Drinks <onboarding@resend.dev>",
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it
// on top of DefaultConfig, validates it, applies defaults for optional
// blocks and returns the result.
func LoadConfig() (*Config, error) {
	return loadFromEnv(EnvPrefix)
}

func loadFromEnv(prefix string) (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(prefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, prefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := DefaultConfig()

	// Unmarshal only overwrites keys that are present, so the defaults
	// above survive for anything the environment leaves out. Non-nil
	// pointer blocks are decoded in place.
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}
	if mainConfig.Notifications == nil {
		mainConfig.Notifications = DefaultNotificationsConfig()
	}

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// Validate runs struct-tag validation followed by cross-block rules.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.Drinks.Store == StorePostgres && c.Database == nil {
		return errors.New("config validation failed: database block is required when drinks.store is postgres")
	}

	if c.Notifications != nil && c.Notifications.Enabled {
		if c.Notifications.Recipient == "" {
			return errors.New("config validation failed: notifications.recipient is required when notifications are enabled")
		}
		if c.Redis.Address == "" {
			return errors.New("config validation failed: redis.address is required when notifications are enabled")
		}
		if c.Integration.ResendAPIKey == "" {
			return errors.New("config validation failed: integration.resend_api_key is required when notifications are enabled")
		}
	}

	// Service name and environment are forced so telemetry stays consistent.
	c.Observability.ServiceName = "drinks"
	c.Observability.Environment = c.Primary.Env

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}

// CaseInsensitiveLetters reports whether the index filter ignores case.
func (c *Config) CaseInsensitiveLetters() bool {
	return c.Drinks.LetterMatch == LetterMatchCaseInsensitive
}
