package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkordes/flight-search/internal/view"
)

// ErrorDetail is the body of a JSON error.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is how the JSON routes report failures.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// upstreamBody returns an ErrorResponse for a failed call to the flight API.
// The upstream detail is logged, not echoed to the client.
func upstreamBody() ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "upstream_error", Message: "flight data provider unavailable"}}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. a missing or malformed parameter).
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "bad_request", Message: message}}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// renderPage writes a full HTML page. A template failure becomes a plain 500;
// nothing of the page has been written at that point.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	body, err := s.views.Page(page, title, data)
	if err != nil {
		s.log.ErrorContext(r.Context(), "render failed", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// NotFound renders the 404 page for any unmatched route.
func (s *Server) NotFound(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusNotFound, view.PageNotFound, "Page not found", view.NotFoundPage{Path: r.URL.Path})
}
