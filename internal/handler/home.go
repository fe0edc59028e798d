package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/flight-search/internal/domain"
	"github.com/pkordes/flight-search/internal/view"
)

// Search form field names as posted by home.html.
const (
	formTripType     = "tripType"
	formFromTitle    = "fromTitle"
	formFromSkyID    = "fromSkyId"
	formFromEntityID = "fromEntityId"
	formToTitle      = "toTitle"
	formToSkyID      = "toSkyId"
	formToEntityID   = "toEntityId"
	formDeparture    = "departure"
	formReturn       = "return"
	formPassengers   = "passengers"
	formAction       = "action"
	formValidated    = "validated"

	actionSwap = "swap"
)

const homeTitle = "Flights"

// GetHome handles GET /. It renders the empty search form.
func (s *Server) GetHome(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, view.PageHome, homeTitle,
		view.NewHomePage(domain.NewSearchForm(), nil, s.today()))
}

// PostSearch handles POST /search.
//
// action=swap re-renders the form with origin and destination exchanged.
// Otherwise the form is validated: failures re-render it with 422 and inline
// messages, success redirects (303) to the results page.
func (s *Server) PostSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}

	form := parseSearchForm(r.PostForm)
	today := s.today()

	if r.PostForm.Get(formAction) == actionSwap {
		form.Swap()
		var errs domain.FieldErrors
		if r.PostForm.Get(formValidated) != "" {
			errs = swappedErrors(form, today)
		}
		s.renderPage(w, r, http.StatusOK, view.PageHome, homeTitle, view.NewHomePage(form, errs, today))
		return
	}

	form.Normalize()
	if err := form.Validate(today); err != nil {
		var fieldErrs domain.FieldErrors
		errors.As(err, &fieldErrs)
		s.renderPage(w, r, http.StatusUnprocessableEntity, view.PageHome, homeTitle, view.NewHomePage(form, fieldErrs, today))
		return
	}

	q := domain.EncodeResultsQuery(form.Params(s.currency))
	http.Redirect(w, r, "/search-results?"+q.Encode(), http.StatusSeeOther)
}

// swappedErrors re-validates a form the user already submitted once, after a
// swap. The airport errors are cleared; the others stay visible. The result
// is never nil so the page stays in the validated state.
func swappedErrors(form domain.SearchForm, today time.Time) domain.FieldErrors {
	checked := form
	checked.Normalize()
	errs := domain.FieldErrors{}
	if err := checked.Validate(today); err != nil {
		errors.As(err, &errs)
	}
	delete(errs, domain.FieldFrom)
	delete(errs, domain.FieldTo)
	return errs
}

// parseSearchForm reads the posted form. Unparseable dates become empty and
// an unparseable passenger count becomes 0, so validation reports them.
func parseSearchForm(v url.Values) domain.SearchForm {
	f := domain.SearchForm{
		TripType: domain.ParseTripType(v.Get(formTripType)),
		From: domain.Airport{
			Title:    strings.TrimSpace(v.Get(formFromTitle)),
			SkyID:    strings.TrimSpace(v.Get(formFromSkyID)),
			EntityID: strings.TrimSpace(v.Get(formFromEntityID)),
		},
		To: domain.Airport{
			Title:    strings.TrimSpace(v.Get(formToTitle)),
			SkyID:    strings.TrimSpace(v.Get(formToSkyID)),
			EntityID: strings.TrimSpace(v.Get(formToEntityID)),
		},
		Departure: optionalDate(v.Get(formDeparture)),
		Return:    optionalDate(v.Get(formReturn)),
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v.Get(formPassengers))); err == nil {
		f.Passengers = n
	}
	return f
}

func optionalDate(s string) *time.Time {
	d, err := domain.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &d
}
