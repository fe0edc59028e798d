// Package handler implements the HTTP handlers of the flight search web UI.
// All handlers are methods on Server. Methods are split into files by page
// (home.go, results.go, airports.go, health.go) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkordes/flight-search/internal/domain"
	"github.com/pkordes/flight-search/internal/view"
)

// AirportSearcher defines the airport lookup the autocomplete depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the API client or the cache.
type AirportSearcher interface {
	Search(ctx context.Context, query string) ([]domain.Airport, error)
}

// FlightSearcher defines the flight search the results page depends on.
type FlightSearcher interface {
	Search(ctx context.Context, p domain.FlightSearchParams) ([]domain.Itinerary, error)
}

// Options carries the Server's dependencies.
type Options struct {
	Airports AirportSearcher
	Flights  FlightSearcher
	Views    *view.Renderer
	Currency string
	Logger   *slog.Logger
	// Now is the clock used to decide which dates are in the past.
	// Defaults to time.Now.
	Now func() time.Time
}

// Server holds the dependencies shared by every handler.
type Server struct {
	airports AirportSearcher
	flights  FlightSearcher
	views    *view.Renderer
	currency string
	log      *slog.Logger
	now      func() time.Time
}

// NewServer constructs the Server with all its dependencies.
func NewServer(opts Options) *Server {
	s := &Server{
		airports: opts.Airports,
		flights:  opts.Flights,
		views:    opts.Views,
		currency: opts.Currency,
		log:      opts.Logger,
		now:      opts.Now,
	}
	if s.currency == "" {
		s.currency = domain.DefaultCurrency
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// today is the calendar date the form validates against.
func (s *Server) today() time.Time {
	return domain.StartOfDay(s.now())
}
