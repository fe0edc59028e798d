package handler

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/pkordes/flight-search/internal/domain"
	"github.com/pkordes/flight-search/internal/view"
)

// suggestSignals are the datastar signals the autocomplete reads.
type suggestSignals struct {
	FromQ string `json:"fromq"`
	ToQ   string `json:"toq"`
}

// GetAirportSuggestions handles GET /airports/suggest?field=from|to.
//
// It reads the typed query from the field's datastar signal, looks up
// matching airports and patches the field's suggestion list over SSE.
// A failed lookup is logged and shown as a message in the list.
func (s *Server) GetAirportSuggestions(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	if field != domain.FieldFrom && field != domain.FieldTo {
		http.Error(w, `field must be "from" or "to"`, http.StatusBadRequest)
		return
	}

	var signals suggestSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "malformed signals", http.StatusBadRequest)
		return
	}
	query := signals.FromQ
	if field == domain.FieldTo {
		query = signals.ToQ
	}

	airports, err := s.airports.Search(r.Context(), query)
	list := view.NewSuggestions(field, query, airports)
	if err != nil {
		s.log.WarnContext(r.Context(), "airport lookup failed", "field", field, "query", query, "error", err)
		list.Error = "Airport lookup failed, please try again"
	}

	fragment, err := s.views.Suggestions(list)
	if err != nil {
		s.log.ErrorContext(r.Context(), "render failed", "fragment", "suggestions", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElements(fragment); err != nil {
		return
	}
	_ = sse.MarshalAndPatchSignals(map[string]bool{field + "open": true})
}

// GetAirports handles GET /api/airports?query=.
// It returns the matching airports as a JSON array (possibly empty).
func (s *Server) GetAirports(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("query") {
		writeJSON(w, http.StatusBadRequest, requestBody("query parameter is required"))
		return
	}
	query := r.URL.Query().Get("query")
	airports, err := s.airports.Search(r.Context(), query)
	if err != nil {
		s.log.WarnContext(r.Context(), "airport lookup failed", "query", query, "error", err)
		writeJSON(w, http.StatusBadGateway, upstreamBody())
		return
	}
	writeJSON(w, http.StatusOK, airports)
}
