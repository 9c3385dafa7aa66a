// Package config resolves runtime settings. Values come from built-in
// defaults, then the TOML config file, then IDEAPAD_* environment variables.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/custodia-labs/ideapad/internal/core/ports/driven"
	"github.com/custodia-labs/ideapad/internal/logger"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "IDEAPAD"

// Config file keys.
const (
	KeyBackendURL     = "backend.url"
	KeyBackendToken   = "backend.token"
	KeyBackendTimeout = "backend.timeout"
	KeyServeAddr      = "serve.addr"
	KeyServeDataDir   = "serve.data_dir"
	KeyServeMemory    = "serve.memory"
	KeyServeRateLimit = "serve.rate_limit"
	KeyServeBurst     = "serve.burst"
	KeyServeOrigins   = "serve.allowed_origins"
	KeyEchoAddr       = "echo.addr"
)

// Defaults.
const (
	DefaultBackendURL     = "http://localhost:8888/project2025"
	DefaultBackendTimeout = 10 * time.Second
	DefaultServeAddr      = ":8888"
	DefaultRateLimit      = 20.0
	DefaultBurst          = 40
	DefaultEchoAddr       = ":8080"
)

// DefaultAllowedOrigins lists the origins the dev server accepts by default.
var DefaultAllowedOrigins = []string{"http://localhost:3000"}

// Config holds resolved settings. Environment variables are read as
// IDEAPAD_<NAME>, e.g. IDEAPAD_BACKEND_URL.
type Config struct {
	BackendURL     string        `envconfig:"BACKEND_URL"`
	BackendToken   string        `envconfig:"BACKEND_TOKEN"`
	BackendTimeout time.Duration `envconfig:"BACKEND_TIMEOUT"`

	ServeAddr      string   `envconfig:"SERVE_ADDR"`
	ServeDataDir   string   `envconfig:"SERVE_DATA_DIR"`
	ServeMemory    bool     `envconfig:"SERVE_MEMORY"`
	RateLimit      float64  `envconfig:"SERVE_RATE_LIMIT"`
	Burst          int      `envconfig:"SERVE_BURST"`
	AllowedOrigins []string `envconfig:"SERVE_ALLOWED_ORIGINS"`

	EchoAddr string `envconfig:"ECHO_ADDR"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		BackendURL:     DefaultBackendURL,
		BackendTimeout: DefaultBackendTimeout,
		ServeAddr:      DefaultServeAddr,
		RateLimit:      DefaultRateLimit,
		Burst:          DefaultBurst,
		AllowedOrigins: append([]string(nil), DefaultAllowedOrigins...),
		EchoAddr:       DefaultEchoAddr,
	}
}

// Load resolves the configuration. store may be nil, in which case only
// defaults and the environment apply.
func Load(store driven.ConfigStore) (*Config, error) {
	cfg := Defaults()
	if store != nil {
		if err := cfg.applyStore(store); err != nil {
			return nil, err
		}
	}

	// Fields without a matching variable are left as they are.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("processing environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("config: backend=%s timeout=%s serve=%s echo=%s",
		cfg.BackendURL, cfg.BackendTimeout, cfg.ServeAddr, cfg.EchoAddr)
	return cfg, nil
}

func (c *Config) applyStore(store driven.ConfigStore) error {
	if v := store.GetString(KeyBackendURL); v != "" {
		c.BackendURL = v
	}
	if v := store.GetString(KeyBackendToken); v != "" {
		c.BackendToken = v
	}
	if raw, ok := store.Get(KeyBackendTimeout); ok {
		d, err := parseDuration(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", KeyBackendTimeout, err)
		}
		c.BackendTimeout = d
	}
	if v := store.GetString(KeyServeAddr); v != "" {
		c.ServeAddr = v
	}
	if v := store.GetString(KeyServeDataDir); v != "" {
		c.ServeDataDir = v
	}
	if _, ok := store.Get(KeyServeMemory); ok {
		c.ServeMemory = store.GetBool(KeyServeMemory)
	}
	if raw, ok := store.Get(KeyServeRateLimit); ok {
		switch v := raw.(type) {
		case float64:
			c.RateLimit = v
		case int64:
			c.RateLimit = float64(v)
		case int:
			c.RateLimit = float64(v)
		default:
			return fmt.Errorf("%s: expected a number, got %T", KeyServeRateLimit, raw)
		}
	}
	if v := store.GetInt(KeyServeBurst); v > 0 {
		c.Burst = v
	}
	if v := store.GetStringSlice(KeyServeOrigins); v != nil {
		c.AllowedOrigins = v
	}
	if v := store.GetString(KeyEchoAddr); v != "" {
		c.EchoAddr = v
	}
	return nil
}

// parseDuration accepts Go duration strings or whole seconds.
func parseDuration(raw any) (time.Duration, error) {
	switch v := raw.(type) {
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return time.Duration(n) * time.Second, nil
		}
		return time.ParseDuration(v)
	case int64:
		return time.Duration(v) * time.Second, nil
	case int:
		return time.Duration(v) * time.Second, nil
	default:
		return 0, fmt.Errorf("expected a duration, got %T", raw)
	}
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.BackendURL, "http://") && !strings.HasPrefix(c.BackendURL, "https://") {
		return fmt.Errorf("backend url %q must start with http:// or https://", c.BackendURL)
	}
	if c.BackendTimeout < 0 {
		return fmt.Errorf("backend timeout must not be negative")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	if c.Burst < 1 {
		return fmt.Errorf("burst must be at least 1")
	}
	return nil
}
