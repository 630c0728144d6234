package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_PATH", "LOG_LEVEL", "PORT", "API_ENDPOINT", "REQUEST_TIMEOUT_SECONDS",
		"SESSION_TTL_MINUTES", "PROVIDER_PORT", "ALLOWED_ORIGINS", "WEATHERSTACK_BASE_URL",
		"WEATHER_KEY", "CACHE_BACKEND", "VALKEY_ADDR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "3000", cfg.Web.Port)
	require.Equal(t, "http://127.0.0.1:8080", cfg.Web.APIEndpoint)
	require.Equal(t, 30*time.Second, cfg.Web.RequestTimeout)
	require.Equal(t, "8080", cfg.Provider.Port)
	require.Equal(t, "memory", cfg.Provider.Cache.Backend)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.Provider.AllowedOrigins)
}

func TestLoad_FileThenEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlDoc := `
logLevel: debug
web:
  port: "4000"
  apiEndpoint: https://astro.example.com
  requestTimeout: 5s
provider:
  weatherstack:
    accessKey: from-file
  cache:
    backend: valkey
    valkeyAddr: localhost:6379
`
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("WEATHER_KEY", "from-env")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("SESSION_TTL_MINUTES", "5")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "4000", cfg.Web.Port)
	require.Equal(t, "https://astro.example.com", cfg.Web.APIEndpoint)
	require.Equal(t, 5*time.Second, cfg.Web.RequestTimeout)
	require.Equal(t, 5*time.Minute, cfg.Web.SessionTTL)
	require.Equal(t, "from-env", cfg.Provider.Weatherstack.AccessKey)
	require.Equal(t, "valkey", cfg.Provider.Cache.Backend)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Provider.AllowedOrigins)
}

func TestLoad_MissingConfigFile_Fails(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()

	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "chatty" }},
		{name: "endpoint without scheme", mutate: func(c *Config) { c.Web.APIEndpoint = "localhost:8080" }},
		{name: "endpoint without host", mutate: func(c *Config) { c.Web.APIEndpoint = "http://" }},
		{name: "zero timeout", mutate: func(c *Config) { c.Web.RequestTimeout = 0 }},
		{name: "zero session ttl", mutate: func(c *Config) { c.Web.SessionTTL = 0 }},
		{name: "valkey without addr", mutate: func(c *Config) { c.Provider.Cache.Backend = "valkey" }},
		{name: "unknown backend", mutate: func(c *Config) { c.Provider.Cache.Backend = "redis" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)

			require.Error(t, cfg.Validate())
		})
	}

	require.NoError(t, defaultConfig().Validate())
}
