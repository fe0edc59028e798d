// Package service contains the data-fetching logic behind the pages.
// Services sit between the handlers and the flight API client: they decide
// when a call is worth making, cache what comes back, and collapse duplicate
// in-flight searches. No HTTP or HTML lives here.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkordes/flight-search/internal/cache"
	"github.com/pkordes/flight-search/internal/domain"
)

// MinAirportQuery is the shortest query sent to the airport lookup.
const MinAirportQuery = 2

// AirportSearcher is the subset of the API client AirportService needs.
type AirportSearcher interface {
	SearchAirports(ctx context.Context, query string) ([]domain.Airport, error)
}

// AirportService looks up airports for the autocomplete fields.
type AirportService struct {
	client AirportSearcher
	cache  cache.Store[[]domain.Airport]
	ttl    time.Duration
	log    *slog.Logger
}

// NewAirportService constructs an AirportService. Results are cached in
// store for ttl; a nil store or a zero ttl disables caching.
func NewAirportService(client AirportSearcher, store cache.Store[[]domain.Airport], ttl time.Duration, log *slog.Logger) *AirportService {
	if log == nil {
		log = slog.Default()
	}
	return &AirportService{client: client, cache: store, ttl: ttl, log: log}
}

// Search returns the airports matching query. Queries shorter than
// MinAirportQuery characters (after trimming) return an empty list without
// calling the API. The result is never nil on success.
func (s *AirportService) Search(ctx context.Context, query string) ([]domain.Airport, error) {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < MinAirportQuery {
		return []domain.Airport{}, nil
	}

	key := strings.ToLower(q)
	if cached, ok := lookup(ctx, s.log, s.cache, s.ttl, key); ok {
		return cached, nil
	}

	airports, err := s.client.SearchAirports(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("service.AirportService.Search: %w", err)
	}
	if airports == nil {
		airports = []domain.Airport{}
	}

	store(ctx, s.log, s.cache, s.ttl, key, airports)
	return airports, nil
}

// lookup reads key from c. Backend errors are logged and reported as a miss.
func lookup[T any](ctx context.Context, log *slog.Logger, c cache.Store[T], ttl time.Duration, key string) (T, bool) {
	var zero T
	if c == nil || ttl <= 0 {
		return zero, false
	}
	v, ok, err := c.Get(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		return zero, false
	}
	return v, ok
}

// store writes key to c. Backend errors are logged and otherwise ignored.
func store[T any](ctx context.Context, log *slog.Logger, c cache.Store[T], ttl time.Duration, key string, v T) {
	if c == nil || ttl <= 0 {
		return
	}
	if err := c.Set(ctx, key, v, ttl); err != nil {
		log.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}
