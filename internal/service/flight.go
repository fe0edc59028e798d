package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pkordes/flight-search/internal/cache"
	"github.com/pkordes/flight-search/internal/domain"
)

// FlightSearcher is the subset of the API client FlightService needs.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, p domain.FlightSearchParams) ([]domain.Itinerary, error)
}

// DefaultCallTimeout bounds a shared upstream call, which no single caller
// can cancel.
const DefaultCallTimeout = time.Minute

// FlightService searches itineraries for the results page.
type FlightService struct {
	client      FlightSearcher
	cache       cache.Store[[]domain.Itinerary]
	ttl         time.Duration
	callTimeout time.Duration
	log         *slog.Logger
	group       singleflight.Group
}

// NewFlightService constructs a FlightService. Results are cached in store
// for ttl; a nil store or a zero ttl disables caching.
func NewFlightService(client FlightSearcher, store cache.Store[[]domain.Itinerary], ttl time.Duration, log *slog.Logger) *FlightService {
	if log == nil {
		log = slog.Default()
	}
	return &FlightService{client: client, cache: store, ttl: ttl, callTimeout: DefaultCallTimeout, log: log}
}

// WithCallTimeout sets how long a shared upstream call may run; d <= 0
// restores DefaultCallTimeout.
func (s *FlightService) WithCallTimeout(d time.Duration) *FlightService {
	if d <= 0 {
		d = DefaultCallTimeout
	}
	s.callTimeout = d
	return s
}

// Search returns the itineraries for p ordered by p.SortBy.
//
// The upstream call is made in the API's default order and keyed on
// p.CacheKey, so a search that differs only in sort order is served from the
// cache. Concurrent identical searches share a single upstream call; a
// caller whose ctx is cancelled stops waiting without cancelling the others.
func (s *FlightService) Search(ctx context.Context, p domain.FlightSearchParams) ([]domain.Itinerary, error) {
	key := p.CacheKey()

	its, ok := lookup(ctx, s.log, s.cache, s.ttl, key)
	if !ok {
		var err error
		its, err = s.fetch(ctx, key, p)
		if err != nil {
			return nil, fmt.Errorf("service.FlightService.Search: %w", err)
		}
	}
	return domain.SortItineraries(its, p.SortBy), nil
}

func (s *FlightService) fetch(ctx context.Context, key string, p domain.FlightSearchParams) ([]domain.Itinerary, error) {
	upstream := p
	upstream.SortBy = ""
	// The shared call outlives any single waiter but never runs unbounded.
	detached := context.WithoutCancel(ctx)

	ch := s.group.DoChan(key, func() (any, error) {
		shared, cancel := context.WithTimeout(detached, s.callTimeout)
		defer cancel()
		its, err := s.client.SearchFlights(shared, upstream)
		if err != nil {
			return nil, err
		}
		if its == nil {
			its = []domain.Itinerary{}
		}
		store(shared, s.log, s.cache, s.ttl, key, its)
		return its, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.log.DebugContext(ctx, "flight search shared", "key", key)
		}
		// Waiters must not share a backing array.
		return slices.Clone(res.Val.([]domain.Itinerary)), nil
	}
}
