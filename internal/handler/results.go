package handler

import (
	"net/http"

	"github.com/pkordes/flight-search/internal/domain"
	"github.com/pkordes/flight-search/internal/view"
)

// GetResults handles GET /search-results.
//
// An incomplete or malformed query renders the empty state without calling
// the API. A failed search is logged and also renders the empty state; the
// page itself always answers 200.
func (s *Server) GetResults(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params, ok := domain.ParseResultsQuery(q, s.currency)
	if !ok {
		s.renderPage(w, r, http.StatusOK, view.PageResults, "Search results",
			view.NewResultsPage(q, nil, nil, domain.StopsFilter{}))
		return
	}

	its, err := s.flights.Search(r.Context(), params)
	if err != nil {
		s.log.WarnContext(r.Context(), "flight search failed",
			"origin", params.OriginSkyID,
			"destination", params.DestinationSkyID,
			"date", domain.FormatDate(params.Date),
			"error", err,
		)
		its = nil
	}

	stops := domain.ParseStopsFilter(q.Get(domain.QueryStops))
	its = stops.Apply(its)

	title := params.OriginSkyID + " → " + params.DestinationSkyID
	s.renderPage(w, r, http.StatusOK, view.PageResults, title, view.NewResultsPage(q, &params, its, stops))
}
