package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/flight-search/internal/domain"
	"github.com/pkordes/flight-search/internal/handler"
)

func airportsReturning(airports []domain.Airport, err error, gotQuery *string) *mockAirportSearcher {
	return &mockAirportSearcher{search: func(_ context.Context, q string) ([]domain.Airport, error) {
		if gotQuery != nil {
			*gotQuery = q
		}
		return airports, err
	}}
}

// ---- GET /api/airports -----------------------------------------------------

func TestGetAirports_returnsJSON(t *testing.T) {
	var gotQuery string
	h := newHTTPHandler(t, testDeps{airports: airportsReturning([]domain.Airport{heathrow}, nil, &gotQuery)})

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/airports?query=london", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "london", gotQuery)
	var body []domain.Airport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, []domain.Airport{heathrow}, body)
}

func TestGetAirports_missingQuery(t *testing.T) {
	h := newHTTPHandler(t, testDeps{})

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/airports", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "bad_request", body.Error.Code)
}

func TestGetAirports_upstreamFailure(t *testing.T) {
	h := newHTTPHandler(t, testDeps{airports: airportsReturning(nil, domain.ErrUpstream, nil)})

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/airports?query=lon", nil))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "upstream_error", body.Error.Code)
}

func TestGetAirports_CORS(t *testing.T) {
	h := newHTTPHandler(t, testDeps{airports: airportsReturning([]domain.Airport{}, nil, nil)})

	req := httptest.NewRequest(http.MethodGet, "/api/airports?query=lon", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:8080", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPages_noCORS(t *testing.T) {
	h := newHTTPHandler(t, testDeps{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	rec := serve(h, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"), "CORS applies to /api only")
}

// ---- GET /airports/suggest -------------------------------------------------

func suggestURL(field, signals string) string {
	q := url.Values{"field": {field}}
	if signals != "" {
		q.Set("datastar", signals)
	}
	return "/airports/suggest?" + q.Encode()
}

func TestGetAirportSuggestions_patchesList(t *testing.T) {
	var gotQuery string
	h := newHTTPHandler(t, testDeps{airports: airportsReturning([]domain.Airport{heathrow}, nil, &gotQuery)})

	rec := serve(h, httptest.NewRequest(http.MethodGet, suggestURL("to", `{"fromq":"kat","toq":"lon"}`), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "lon", gotQuery, "the field's own signal is used")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
	body := rec.Body.String()
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, `id="to-suggestions"`)
	assert.Contains(t, body, "London Heathrow")
	assert.Contains(t, body, "datastar-patch-signals")
	assert.Contains(t, body, `"toopen":true`)
}

func TestGetAirportSuggestions_lookupFailureShowsMessage(t *testing.T) {
	h := newHTTPHandler(t, testDeps{airports: airportsReturning(nil, domain.ErrUpstream, nil)})

	rec := serve(h, httptest.NewRequest(http.MethodGet, suggestURL("from", `{"fromq":"lon"}`), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Airport lookup failed")
}

func TestGetAirportSuggestions_badField(t *testing.T) {
	h := newHTTPHandler(t, testDeps{})

	rec := serve(h, httptest.NewRequest(http.MethodGet, suggestURL("via", `{}`), nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAirportSuggestions_malformedSignals(t *testing.T) {
	h := newHTTPHandler(t, testDeps{})

	rec := serve(h, httptest.NewRequest(http.MethodGet, suggestURL("from", `{"fromq":`), nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAirportSuggestions_hidesInternalError(t *testing.T) {
	h := newHTTPHandler(t, testDeps{airports: airportsReturning(nil, errors.New("boom"), nil)})

	rec := serve(h, httptest.NewRequest(http.MethodGet, suggestURL("to", `{"toq":"zz"}`), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom", "internal errors are not shown to the user")
}
