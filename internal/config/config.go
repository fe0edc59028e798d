// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultRapidAPIHost is the RapidAPI host of the flight search API.
const DefaultRapidAPIHost = "sky-scrapper.p.rapidapi.com"

// Config holds all configuration values for the web server and the CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// RapidAPIKey is sent as x-rapidapi-key on every API call. Required.
	RapidAPIKey string

	// RapidAPIHost is sent as x-rapidapi-host and, unless APIBaseURL is set,
	// determines the API base URL.
	RapidAPIHost string

	// APIBaseURL is the root of the flight API, e.g. https://host/api/v1.
	APIBaseURL string

	// Currency is the ISO currency code prices are requested in. Defaults to "USD".
	Currency string

	// Theme names the colour palette ("dark" or "light"). Defaults to "dark".
	Theme string

	// CORSOrigins is the list of origins allowed to call the JSON API.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// RedisURL enables the Redis cache when set (redis://host:6379/0).
	RedisURL string

	// AirportCacheTTL is how long airport suggestions stay fresh. Defaults to 1h.
	AirportCacheTTL time.Duration

	// FlightCacheTTL is how long flight results stay fresh. Defaults to 5m; 0 disables.
	FlightCacheTTL time.Duration

	// UpstreamTimeout bounds each call to the flight API. Defaults to 15s; must be positive.
	UpstreamTimeout time.Duration

	// MaxBodyBytes caps the size of submitted forms. Defaults to 64 KiB.
	MaxBodyBytes int64

	// OTLPEndpoint enables trace export over OTLP/HTTP when set (http://host:4318).
	OTLPEndpoint string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom is Load with a custom key lookup. The CLI passes a viper-backed
// lookup so the same keys can come from flags or a config file.
func LoadFrom(lookup func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(lookup(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		Port:         get("PORT", "8080"),
		LogLevel:     get("LOG_LEVEL", "info"),
		RapidAPIHost: get("RAPIDAPI_HOST", DefaultRapidAPIHost),
		Currency:     strings.ToUpper(get("CURRENCY", "USD")),
		Theme:        strings.ToLower(get("THEME", "dark")),
		CORSOrigins:  splitCSV(get("CORS_ORIGINS", "http://localhost:8080")),
		RedisURL:     get("REDIS_URL", ""),
		OTLPEndpoint: get("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
	cfg.APIBaseURL = strings.TrimRight(get("API_BASE_URL", "https://"+cfg.RapidAPIHost+"/api/v1"), "/")

	var missing, invalid []string

	cfg.RapidAPIKey = get("RAPIDAPI_KEY", "")
	if cfg.RapidAPIKey == "" {
		missing = append(missing, "RAPIDAPI_KEY")
	}

	durations := []struct {
		key      string
		fallback string
		dst      *time.Duration
		positive bool
	}{
		{"AIRPORT_CACHE_TTL", "1h", &cfg.AirportCacheTTL, false},
		{"FLIGHT_CACHE_TTL", "5m", &cfg.FlightCacheTTL, false},
		{"UPSTREAM_TIMEOUT", "15s", &cfg.UpstreamTimeout, true},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(get(d.key, d.fallback))
		if err != nil || v < 0 || (d.positive && v == 0) {
			invalid = append(invalid, d.key)
			continue
		}
		*d.dst = v
	}

	maxBody, err := strconv.ParseInt(get("MAX_BODY_BYTES", "65536"), 10, 64)
	if err != nil || maxBody <= 0 {
		invalid = append(invalid, "MAX_BODY_BYTES")
	}
	cfg.MaxBodyBytes = maxBody

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
