// Package config loads runtime configuration from VENUEADMIN_* environment
// variables and the per-entity table defaults document.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings backend names.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config errors
var (
	ErrUnknownBackend   = errors.New("settings backend must be one of: sqlite, file, redis, memory")
	ErrInvalidCSRFKey   = errors.New("VENUEADMIN_CSRF_KEY must be 64 hex characters (32 bytes)")
	ErrMissingCSRFKey   = errors.New("VENUEADMIN_CSRF_KEY is required in production")
	ErrInvalidPageSize  = errors.New("default page size must be one of the page size options")
	ErrInvalidDebounce  = errors.New("settings debounce cannot be negative")
	ErrInvalidVersion   = errors.New("settings version must be positive")
	ErrInvalidRateLimit = errors.New("rate limit must be positive")
)

// SettingsConfig controls the table settings cache and its backing store.
type SettingsConfig struct {
	Backend   string        `env:"BACKEND"    envDefault:"sqlite"`
	Dir       string        `env:"DIR"        envDefault:".venueadmin/settings"`
	RedisAddr string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB   int           `env:"REDIS_DB"   envDefault:"0"`
	Debounce  time.Duration `env:"DEBOUNCE"   envDefault:"500ms"`
	Version   int           `env:"VERSION"    envDefault:"1"`
}

// EmailConfig configures outgoing email. An empty ResendKey disables delivery.
type EmailConfig struct {
	ResendKey string `env:"RESEND_KEY"`
	From      string `env:"RESEND_FROM" envDefault:"Venue Admin <noreply@venueadmin.local>"`
	ReplyTo   string `env:"REPLY_TO"    envDefault:"contato@venueadmin.local"`
}

// Config is the full process configuration.
type Config struct {
	Env               string         `env:"VENUEADMIN_ENV"            envDefault:"development"`
	Addr              string         `env:"VENUEADMIN_ADDR"           envDefault:":8080"`
	DBPath            string         `env:"VENUEADMIN_DB_PATH"        envDefault:"venueadmin.db"`
	CSRFKey           string         `env:"VENUEADMIN_CSRF_KEY"`
	LogLevel          string         `env:"VENUEADMIN_LOG_LEVEL"      envDefault:"info"`
	SeqURL            string         `env:"VENUEADMIN_SEQ_URL"`
	SlowQuery         time.Duration  `env:"VENUEADMIN_SLOW_QUERY"     envDefault:"50ms"`
	SlowRequest       time.Duration  `env:"VENUEADMIN_SLOW_REQUEST"   envDefault:"500ms"`
	RateLimit         int            `env:"VENUEADMIN_RATE_LIMIT"     envDefault:"10"`
	TrustedOrigins    []string       `env:"VENUEADMIN_TRUSTED_ORIGINS" envDefault:"localhost:8080,127.0.0.1:8080" envSeparator:","`
	Location          string         `env:"VENUEADMIN_TIMEZONE"       envDefault:"UTC"`
	DefaultPageSize   int            `env:"VENUEADMIN_PAGE_SIZE"      envDefault:"20"`
	PageSizeOptions   []int          `env:"VENUEADMIN_PAGE_SIZES"     envDefault:"10,20,50,100" envSeparator:","`
	CurrencyLocale    string         `env:"VENUEADMIN_CURRENCY_LOCALE" envDefault:"pt-BR"`
	CurrencySymbol    string         `env:"VENUEADMIN_CURRENCY_SYMBOL" envDefault:"R$"`
	TableDefaultsPath string         `env:"VENUEADMIN_TABLE_DEFAULTS"`
	Settings          SettingsConfig `envPrefix:"VENUEADMIN_SETTINGS_"`
	Email             EmailConfig    `envPrefix:"VENUEADMIN_"`
}

// Load parses the process environment.
// PRE: none
// POST: Returns a validated Config or the first parse/validation error
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadFrom parses an explicit environment map instead of the process
// environment. Unset variables take their defaults.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks cross-field constraints env tags cannot express.
func (c Config) Validate() error {
	switch c.Settings.Backend {
	case BackendSQLite, BackendFile, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Settings.Backend)
	}
	if c.Settings.Debounce < 0 {
		return ErrInvalidDebounce
	}
	if c.Settings.Version < 1 {
		return ErrInvalidVersion
	}
	if c.RateLimit < 1 {
		return ErrInvalidRateLimit
	}
	if !slices.Contains(c.PageSizeOptions, c.DefaultPageSize) {
		return fmt.Errorf("%w: %d not in %v", ErrInvalidPageSize, c.DefaultPageSize, c.PageSizeOptions)
	}
	if c.CSRFKey != "" {
		if _, err := c.CSRFKeyBytes(); err != nil {
			return err
		}
	} else if c.IsProduction() {
		return ErrMissingCSRFKey
	}
	return nil
}

// TimeLocation resolves Location, falling back to UTC when it is unknown.
func (c Config) TimeLocation() *time.Location {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		slog.Warn("unknown_timezone", "timezone", c.Location, "error", err)
		return time.UTC
	}
	return loc
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// CSRFKeyBytes decodes the hex CSRF key. It returns nil, nil when unset.
func (c Config) CSRFKeyBytes() ([]byte, error) {
	if c.CSRFKey == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(c.CSRFKey)
	if err != nil || len(key) != 32 {
		return nil, ErrInvalidCSRFKey
	}
	return key, nil
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
