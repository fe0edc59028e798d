package handler_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/flight-search/internal/domain"
	"github.com/pkordes/flight-search/internal/handler"
	"github.com/pkordes/flight-search/internal/theme"
	"github.com/pkordes/flight-search/internal/view"
)

// mockAirportSearcher is a test double for handler.AirportSearcher.
type mockAirportSearcher struct {
	search func(ctx context.Context, query string) ([]domain.Airport, error)
}

func (m *mockAirportSearcher) Search(ctx context.Context, query string) ([]domain.Airport, error) {
	return m.search(ctx, query)
}

// mockFlightSearcher is a test double for handler.FlightSearcher.
type mockFlightSearcher struct {
	search func(ctx context.Context, p domain.FlightSearchParams) ([]domain.Itinerary, error)
}

func (m *mockFlightSearcher) Search(ctx context.Context, p domain.FlightSearchParams) ([]domain.Itinerary, error) {
	return m.search(ctx, p)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.AirportSearcher = (*mockAirportSearcher)(nil)
	_ handler.FlightSearcher  = (*mockFlightSearcher)(nil)
)

// ---- helpers ---------------------------------------------------------------

// fixedNow is the clock every handler test runs at.
var fixedNow = time.Date(2025, 6, 1, 15, 4, 5, 0, time.UTC)

// testDeps collects what a test wants to inject; nil searchers fail the test
// when called.
type testDeps struct {
	airports handler.AirportSearcher
	flights  handler.FlightSearcher
	logs     *bytes.Buffer
}

// newHTTPHandler wires a Server into the full router.
// This mirrors how the serve command wires it in production.
func newHTTPHandler(t *testing.T, deps testDeps) http.Handler {
	t.Helper()

	views, err := view.New(theme.Dark)
	require.NoError(t, err)

	if deps.airports == nil {
		deps.airports = &mockAirportSearcher{search: func(context.Context, string) ([]domain.Airport, error) {
			t.Fatal("unexpected airport search")
			return nil, nil
		}}
	}
	if deps.flights == nil {
		deps.flights = &mockFlightSearcher{search: func(context.Context, domain.FlightSearchParams) ([]domain.Itinerary, error) {
			t.Fatal("unexpected flight search")
			return nil, nil
		}}
	}
	if deps.logs == nil {
		deps.logs = &bytes.Buffer{}
	}
	logger := slog.New(slog.NewJSONHandler(deps.logs, nil))

	srv := handler.NewServer(handler.Options{
		Airports: deps.airports,
		Flights:  deps.flights,
		Views:    views,
		Currency: "USD",
		Logger:   logger,
		Now:      func() time.Time { return fixedNow },
	})
	return handler.NewRouter(srv, handler.RouterConfig{
		Logger:       logger,
		CORSOrigins:  []string{"http://localhost:8080"},
		MaxBodyBytes: 1024,
	})
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

var (
	kathmandu = domain.Airport{SkyID: "KTM", EntityID: "95673486", Title: "Kathmandu"}
	heathrow  = domain.Airport{SkyID: "LHR", EntityID: "95565050", Title: "London Heathrow", Subtitle: "United Kingdom"}
)

func itinerary(id string, price float64, minutes, stops int) domain.Itinerary {
	return domain.Itinerary{
		ID:    id,
		Price: domain.Price{Raw: price, Formatted: "$" + id},
		Legs: []domain.Leg{{
			ID:                id + "-leg",
			Origin:            domain.Place{DisplayCode: "KTM"},
			Destination:       domain.Place{DisplayCode: "LHR"},
			Departure:         time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC),
			Arrival:           time.Date(2025, 6, 10, 19, 30, 0, 0, time.UTC),
			DurationInMinutes: minutes,
			StopCount:         stops,
			Carriers:          []domain.Carrier{{Name: "Qatar Airways"}},
		}},
	}
}
