// Package config loads and saves the bizdash TOML configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "bizdash"

// Environment overrides, checked before the config file.
const (
	EnvAPIURL   = "BIZDASH_API_URL"
	EnvAPIToken = "BIZDASH_API_TOKEN"
)

// Config holds all bizdash configuration.
type Config struct {
	API        APIConfig        `toml:"api"`
	Cache      CacheConfig      `toml:"cache"`
	Appearance AppearanceConfig `toml:"appearance"`
	Logging    LoggingConfig    `toml:"logging"`
}

// APIConfig locates the backend.
type APIConfig struct {
	BaseURL    string `toml:"base_url"`
	Token      string `toml:"token,omitempty"`
	TimeoutSec int    `toml:"timeout_sec"`
}

// CacheConfig controls the query cache.
type CacheConfig struct {
	Persistent    bool   `toml:"persistent"`
	Path          string `toml:"path,omitempty"`
	StaleAfterSec int    `toml:"stale_after_sec"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme       string `toml:"theme"`
	ChartHeight int    `toml:"chart_height"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level             string `toml:"level"`
	StatusDiagnostics bool   `toml:"status_diagnostics"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:    "http://127.0.0.1:3000",
			TimeoutSec: 10,
		},
		Cache: CacheConfig{
			Persistent:    true,
			StaleAfterSec: 60,
		},
		Appearance: AppearanceConfig{
			Theme:       "flexoki-dark",
			ChartHeight: 10,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Timeout is the per-request API timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSec) * time.Second
}

// StaleAfter is how long a cached response is served without refetching.
func (c Config) StaleAfter() time.Duration {
	return time.Duration(c.Cache.StaleAfterSec) * time.Second
}

// CachePath returns the configured cache database, or the XDG default.
func (c Config) CachePath() string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	return DefaultCachePath()
}

// Validate rejects settings the client cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url is empty"))
	} else if u, err := url.Parse(c.API.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("api.base_url: %w", err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, fmt.Errorf("api.base_url: scheme must be http or https, got %q", u.Scheme))
	} else if u.Host == "" {
		errs = append(errs, errors.New("api.base_url: missing host"))
	}
	if c.API.TimeoutSec < 0 {
		errs = append(errs, fmt.Errorf("api.timeout_sec must not be negative, got %d", c.API.TimeoutSec))
	}
	if c.Cache.StaleAfterSec < 0 {
		errs = append(errs, fmt.Errorf("cache.stale_after_sec must not be negative, got %d", c.Cache.StaleAfterSec))
	}
	if c.Appearance.ChartHeight < 0 {
		errs = append(errs, fmt.Errorf("appearance.chart_height must not be negative, got %d", c.Appearance.ChartHeight))
	}
	return errors.Join(errs...)
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// CacheDir returns the XDG-compliant cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", appName)
}

// DefaultCachePath is where the SQLite query cache lives by default.
func DefaultCachePath() string {
	return filepath.Join(CacheDir(), "cache.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads the config at path over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(Path(), cfg)
}

// SaveFile writes cfg to path, creating its directory. The file may hold a
// token, so it is only readable by the owner.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// GetAPIURL returns the backend URL from env var or config, in that order.
func GetAPIURL(cfg Config) string {
	if u := os.Getenv(EnvAPIURL); u != "" {
		return u
	}
	return cfg.API.BaseURL
}

// GetAPIToken returns the bearer token from env var or config, in that order.
func GetAPIToken(cfg Config) string {
	if tok := os.Getenv(EnvAPIToken); tok != "" {
		return tok
	}
	return cfg.API.Token
}

// MaskToken shows only the last four characters of a secret.
func MaskToken(tok string) string {
	if tok == "" {
		return "(not set)"
	}
	if len(tok) <= 4 {
		return "****"
	}
	return "****" + tok[len(tok)-4:]
}
