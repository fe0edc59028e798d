package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/flight-search/internal/config"
)

// clearEnv blanks every optional variable so a developer's shell cannot leak
// into the defaults test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "RAPIDAPI_HOST", "API_BASE_URL", "CURRENCY", "THEME",
		"CORS_ORIGINS", "REDIS_URL", "AIRPORT_CACHE_TTL", "FLIGHT_CACHE_TTL",
		"UPSTREAM_TIMEOUT", "MAX_BODY_BYTES", "OTEL_EXPORTER_OTLP_ENDPOINT",
	} {
		t.Setenv(key, "")
	}
}

// TestLoad_defaults verifies that optional env vars fall back to their defaults
// when only the required RAPIDAPI_KEY is provided.
func TestLoad_defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("RAPIDAPI_KEY", "secret")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "secret", cfg.RapidAPIKey)
	require.Equal(t, "sky-scrapper.p.rapidapi.com", cfg.RapidAPIHost)
	require.Equal(t, "https://sky-scrapper.p.rapidapi.com/api/v1", cfg.APIBaseURL)
	require.Equal(t, "USD", cfg.Currency)
	require.Equal(t, "dark", cfg.Theme)
	require.Equal(t, []string{"http://localhost:8080"}, cfg.CORSOrigins)
	require.Empty(t, cfg.RedisURL)
	require.Equal(t, time.Hour, cfg.AirportCacheTTL)
	require.Equal(t, 5*time.Minute, cfg.FlightCacheTTL)
	require.Equal(t, 15*time.Second, cfg.UpstreamTimeout)
	require.EqualValues(t, 65536, cfg.MaxBodyBytes)
	require.Empty(t, cfg.OTLPEndpoint)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	t.Setenv("RAPIDAPI_KEY", "k")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RAPIDAPI_HOST", "flights.example.com")
	t.Setenv("API_BASE_URL", "http://localhost:3000/api/v1/")
	t.Setenv("CURRENCY", "eur")
	t.Setenv("THEME", "Light")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("AIRPORT_CACHE_TTL", "30m")
	t.Setenv("FLIGHT_CACHE_TTL", "0s")
	t.Setenv("UPSTREAM_TIMEOUT", "2s")
	t.Setenv("MAX_BODY_BYTES", "1024")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "flights.example.com", cfg.RapidAPIHost)
	require.Equal(t, "http://localhost:3000/api/v1", cfg.APIBaseURL)
	require.Equal(t, "EUR", cfg.Currency)
	require.Equal(t, "light", cfg.Theme)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
	require.Equal(t, 30*time.Minute, cfg.AirportCacheTTL)
	require.Equal(t, time.Duration(0), cfg.FlightCacheTTL)
	require.Equal(t, 2*time.Second, cfg.UpstreamTimeout)
	require.EqualValues(t, 1024, cfg.MaxBodyBytes)
	require.Equal(t, "localhost:4318", cfg.OTLPEndpoint)
}

// TestLoad_baseURLFollowsHost verifies that API_BASE_URL defaults from RAPIDAPI_HOST.
func TestLoad_baseURLFollowsHost(t *testing.T) {
	clearEnv(t)
	t.Setenv("RAPIDAPI_KEY", "k")
	t.Setenv("RAPIDAPI_HOST", "flights.example.com")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "https://flights.example.com/api/v1", cfg.APIBaseURL)
}

// TestLoad_missingRequired verifies that an error is returned when RAPIDAPI_KEY
// is not set, and that the error message names the missing variable.
func TestLoad_missingRequired(t *testing.T) {
	clearEnv(t)
	t.Setenv("RAPIDAPI_KEY", "")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "RAPIDAPI_KEY")
}

// TestLoad_invalidValues verifies that malformed durations and sizes are
// reported by key.
func TestLoad_invalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("RAPIDAPI_KEY", "k")
	t.Setenv("FLIGHT_CACHE_TTL", "five minutes")
	t.Setenv("UPSTREAM_TIMEOUT", "-1s")
	t.Setenv("MAX_BODY_BYTES", "lots")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "FLIGHT_CACHE_TTL")
	require.ErrorContains(t, err, "UPSTREAM_TIMEOUT")
	require.ErrorContains(t, err, "MAX_BODY_BYTES")
	require.NotContains(t, err.Error(), "AIRPORT_CACHE_TTL")
}

// TestLoad_zeroUpstreamTimeoutRejected verifies that the upstream call is
// always bounded; a zero TTL is fine, a zero timeout is not.
func TestLoad_zeroUpstreamTimeoutRejected(t *testing.T) {
	clearEnv(t)
	t.Setenv("RAPIDAPI_KEY", "k")
	t.Setenv("FLIGHT_CACHE_TTL", "0s")
	t.Setenv("UPSTREAM_TIMEOUT", "0s")

	_, err := config.Load()

	require.ErrorContains(t, err, "UPSTREAM_TIMEOUT")
	require.NotContains(t, err.Error(), "FLIGHT_CACHE_TTL")
}

// TestLoadFrom_customLookup verifies that LoadFrom reads only from the given
// lookup, which is how the CLI feeds flag and config-file values in.
func TestLoadFrom_customLookup(t *testing.T) {
	values := map[string]string{
		"RAPIDAPI_KEY": "from-flag",
		"THEME":        "light",
	}

	cfg, err := config.LoadFrom(func(key string) string { return values[key] })

	require.NoError(t, err)
	require.Equal(t, "from-flag", cfg.RapidAPIKey)
	require.Equal(t, "light", cfg.Theme)
	require.Equal(t, "8080", cfg.Port)
}
