// Package config loads runtime settings for the web UI, the provider and the CLI.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"astrocards/pkg/log"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config/config.yaml"

// Config aggregates runtime configuration.
type Config struct {
	LogLevel string         `yaml:"logLevel"`
	Web      WebConfig      `yaml:"web"`
	Provider ProviderConfig `yaml:"provider"`
}

// WebConfig controls the presentation server.
type WebConfig struct {
	Port string `yaml:"port"`
	// APIEndpoint is the astro provider base URL; requests go to {APIEndpoint}/astro.
	APIEndpoint    string        `yaml:"apiEndpoint"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
	SessionTTL     time.Duration `yaml:"sessionTtl"`
}

// ProviderConfig controls the astro provider service.
type ProviderConfig struct {
	Port           string             `yaml:"port"`
	AllowedOrigins []string           `yaml:"allowedOrigins"`
	Weatherstack   WeatherstackConfig `yaml:"weatherstack"`
	Cache          CacheConfig        `yaml:"cache"`
}

// WeatherstackConfig holds the upstream forecast API settings.
type WeatherstackConfig struct {
	BaseURL   string `yaml:"baseUrl"`
	AccessKey string `yaml:"accessKey"`
}

// CacheConfig selects the provider cache backend.
type CacheConfig struct {
	Backend    string `yaml:"backend"` // memory | valkey
	ValkeyAddr string `yaml:"valkeyAddr"`
	Prefix     string `yaml:"prefix"`
}

// Load builds the configuration: defaults, then the YAML file (CONFIG_PATH or
// config/config.yaml when present), then a .env file, then environment overrides.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(defaultConfigPath); err == nil {
		if err := hydrateFromFile(cfg, defaultConfigPath); err != nil {
			return nil, err
		}
	}

	// Variables already in the environment win over .env values.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Web: WebConfig{
			Port:           "3000",
			APIEndpoint:    "http://127.0.0.1:8080",
			RequestTimeout: 30 * time.Second,
			SessionTTL:     30 * time.Minute,
		},
		Provider: ProviderConfig{
			Port:           "8080",
			AllowedOrigins: []string{"http://localhost:3000"},
			Weatherstack: WeatherstackConfig{
				BaseURL: "http://api.weatherstack.com",
			},
			Cache: CacheConfig{
				Backend: "memory",
				Prefix:  "astro",
			},
		},
	}
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Web.Port = v
	}
	if v := os.Getenv("API_ENDPOINT"); v != "" {
		cfg.Web.APIEndpoint = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.Web.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("SESSION_TTL_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			cfg.Web.SessionTTL = time.Duration(minutes) * time.Minute
		}
	}
	if v := os.Getenv("PROVIDER_PORT"); v != "" {
		cfg.Provider.Port = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Provider.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("WEATHERSTACK_BASE_URL"); v != "" {
		cfg.Provider.Weatherstack.BaseURL = v
	}
	if v := os.Getenv("WEATHER_KEY"); v != "" {
		cfg.Provider.Weatherstack.AccessKey = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		cfg.Provider.Cache.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("VALKEY_ADDR"); v != "" {
		cfg.Provider.Cache.ValkeyAddr = v
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("logLevel %q: %w", c.LogLevel, err)
	}
	if err := validateBaseURL(c.Web.APIEndpoint); err != nil {
		return fmt.Errorf("web.apiEndpoint: %w", err)
	}
	if c.Web.RequestTimeout <= 0 {
		return errors.New("web.requestTimeout must be positive")
	}
	if c.Web.SessionTTL <= 0 {
		return errors.New("web.sessionTtl must be positive")
	}
	if err := validateBaseURL(c.Provider.Weatherstack.BaseURL); err != nil {
		return fmt.Errorf("provider.weatherstack.baseUrl: %w", err)
	}
	switch c.Provider.Cache.Backend {
	case "memory":
	case "valkey":
		if c.Provider.Cache.ValkeyAddr == "" {
			return errors.New("provider.cache.valkeyAddr is required for the valkey backend")
		}
	default:
		return fmt.Errorf("provider.cache.backend %q: must be memory or valkey", c.Provider.Cache.Backend)
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q must be an http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}
