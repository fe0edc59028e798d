package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/pkordes/flight-search/internal/cache"
	"github.com/pkordes/flight-search/internal/config"
	"github.com/pkordes/flight-search/internal/domain"
	"github.com/pkordes/flight-search/internal/service"
	"github.com/pkordes/flight-search/internal/skyapi"
)

// Redis key prefixes of the two caches.
const (
	airportKeyPrefix = "flightsearch:airports:"
	flightKeyPrefix  = "flightsearch:flights:"
)

// app holds the services shared by the server and the CLI subcommands.
type app struct {
	airports *service.AirportService
	flights  *service.FlightService

	// sweepers evict expired entries from in-memory caches; empty with Redis.
	sweepers []func() int
	closers  []func() error
}

// newLogger returns a JSON logger at level, falling back to info when the
// level does not parse.
func newLogger(w io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// newApp wires the API client and the services. With cached set, results
// are cached in Redis when cfg.RedisURL is set and in memory otherwise.
func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger, cached bool) (*app, error) {
	client := skyapi.New(skyapi.Options{
		BaseURL: cfg.APIBaseURL,
		APIKey:  cfg.RapidAPIKey,
		Host:    cfg.RapidAPIHost,
		Timeout: cfg.UpstreamTimeout,
	})

	a := &app{}
	var (
		airportStore cache.Store[[]domain.Airport]
		flightStore  cache.Store[[]domain.Itinerary]
	)
	switch {
	case !cached:
	case cfg.RedisURL != "":
		rc, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		logger.Info("redis cache connected")
		airportStore = cache.NewRedis[[]domain.Airport](rc, airportKeyPrefix)
		flightStore = cache.NewRedis[[]domain.Itinerary](rc, flightKeyPrefix)
		a.closers = append(a.closers, rc.Close)
	default:
		ma := cache.NewMemory(slices.Clone[[]domain.Airport])
		mf := cache.NewMemory(slices.Clone[[]domain.Itinerary])
		airportStore, flightStore = ma, mf
		a.sweepers = append(a.sweepers, ma.Sweep, mf.Sweep)
	}

	a.airports = service.NewAirportService(client, airportStore, cfg.AirportCacheTTL, logger)
	a.flights = service.NewFlightService(client, flightStore, cfg.FlightCacheTTL, logger).
		WithCallTimeout(cfg.UpstreamTimeout)
	return a, nil
}

// sweep runs every sweeper each interval until ctx is done.
func (a *app) sweep(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if len(a.sweepers) == 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			evicted := 0
			for _, s := range a.sweepers {
				evicted += s()
			}
			if evicted > 0 {
				logger.Debug("cache sweep", "evicted", evicted)
			}
		}
	}
}

func (a *app) close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
