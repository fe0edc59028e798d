package view

import (
	"encoding/json"
	"html/template"
	"net/url"
	"strconv"
	"time"

	"github.com/pkordes/flight-search/internal/domain"
)

// HeaderDateLayout formats the departure date in the results header ("Jan 02").
const HeaderDateLayout = "Jan 02"

// Option is a radio or select entry.
type Option struct {
	Value   string
	Label   string
	Checked bool
}

// AirportField is the state of one airport autocomplete.
type AirportField struct {
	Name     string // form field prefix: "from" or "to"
	Label    string
	Title    string
	SkyID    string
	EntityID string
	Error    string
}

// HomePage is the search form.
type HomePage struct {
	TripTypes  []Option
	RoundTrip  bool
	From       AirportField
	To         AirportField
	Departure  string // YYYY-MM-DD or empty
	Return     string
	Passengers int
	Today      string // min for the departure picker
	MinReturn  string // min for the return picker
	// MaxDeparture is the day before the return date on a round trip, else empty.
	MaxDeparture string

	// Validated is set once the form has been submitted and its errors shown.
	Validated bool

	DepartureError  string
	ReturnError     string
	PassengersError string
}

// Signals is the initial datastar signal object for the form, as JSON.
func (p HomePage) Signals() string {
	trip := string(domain.OneWay)
	if p.RoundTrip {
		trip = string(domain.RoundTrip)
	}
	b, _ := json.Marshal(map[string]any{
		"trip":     trip,
		"fromq":    p.From.Title,
		"fromsky":  p.From.SkyID,
		"froment":  p.From.EntityID,
		"fromopen": false,
		"toq":      p.To.Title,
		"tosky":    p.To.SkyID,
		"toent":    p.To.EntityID,
		"toopen":   false,
	})
	return string(b)
}

// NewHomePage builds the form view for f. errs may be nil; today is the
// StartOfDay used for validation.
func NewHomePage(f domain.SearchForm, errs domain.FieldErrors, today time.Time) HomePage {
	p := HomePage{
		RoundTrip:  f.TripType != domain.OneWay,
		From:       airportField(domain.FieldFrom, "Where From?", f.From, errs),
		To:         airportField(domain.FieldTo, "Where To?", f.To, errs),
		Passengers: f.Passengers,
		Today:      domain.FormatDate(today),
		MinReturn:  domain.FormatDate(today.AddDate(0, 0, 1)),
		Validated:  errs != nil,

		DepartureError:  errs[domain.FieldDeparture],
		ReturnError:     errs[domain.FieldReturn],
		PassengersError: errs[domain.FieldPassengers],
	}
	p.TripTypes = []Option{
		{Value: string(domain.RoundTrip), Label: "Round trip", Checked: p.RoundTrip},
		{Value: string(domain.OneWay), Label: "One way", Checked: !p.RoundTrip},
	}
	if f.Departure != nil {
		p.Departure = domain.FormatDate(*f.Departure)
		p.MinReturn = domain.FormatDate(f.Departure.AddDate(0, 0, 1))
	}
	if f.Return != nil {
		p.Return = domain.FormatDate(*f.Return)
		if p.RoundTrip {
			p.MaxDeparture = domain.FormatDate(f.Return.AddDate(0, 0, -1))
		}
	}
	return p
}

func airportField(name, label string, a domain.Airport, errs domain.FieldErrors) AirportField {
	return AirportField{
		Name:     name,
		Label:    label,
		Title:    a.Title,
		SkyID:    a.SkyID,
		EntityID: a.EntityID,
		Error:    errs[name],
	}
}

// Link is an entry of the sort bar or stops filter.
type Link struct {
	Label  string
	URL    string
	Active bool
}

// ResultsPage is the search results list.
type ResultsPage struct {
	Origin      string
	Destination string
	Summary     string // "12 flights • Jan 02"; empty for an invalid search
	Cards       []Card
	SortLinks   []Link
	StopsLinks  []Link
}

// Empty reports whether the empty state is shown.
func (p ResultsPage) Empty() bool {
	return len(p.Cards) == 0
}

// NewResultsPage builds the results view. query is the current results URL
// query; p is nil when it did not decode, in which case the page shows the
// placeholder header and the empty state. its is displayed in the given order.
func NewResultsPage(query url.Values, p *domain.FlightSearchParams, its []domain.Itinerary, stops domain.StopsFilter) ResultsPage {
	if p == nil {
		return ResultsPage{Origin: "Origin", Destination: "Destination"}
	}

	page := ResultsPage{
		Origin:      p.OriginSkyID,
		Destination: p.DestinationSkyID,
		Summary:     strconv.Itoa(len(its)) + " flights • " + p.Date.Format(HeaderDateLayout),
		Cards:       make([]Card, 0, len(its)),
	}
	for _, it := range its {
		page.Cards = append(page.Cards, NewCard(it, p.RoundTrip()))
	}

	sortBy := domain.ParseSortKey(string(p.SortBy))
	for _, o := range domain.SortOptions {
		value := string(o.Key)
		if o.Key == domain.SortBest {
			value = ""
		}
		page.SortLinks = append(page.SortLinks, Link{
			Label:  o.Label,
			URL:    withParam(query, domain.QuerySortBy, value),
			Active: o.Key == sortBy,
		})
	}
	for _, o := range domain.StopsOptions {
		page.StopsLinks = append(page.StopsLinks, Link{
			Label:  o.Label,
			URL:    withParam(query, domain.QueryStops, o.Value),
			Active: o.Value == stops.Value(),
		})
	}
	return page
}

// withParam returns the results URL for query with key set to value,
// or removed when value is empty.
func withParam(query url.Values, key, value string) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	if value == "" {
		q.Del(key)
	} else {
		q.Set(key, value)
	}
	return "/search-results?" + q.Encode()
}

// Suggestion is one entry of an airport autocomplete list.
type Suggestion struct {
	Title    string
	Subtitle string
	// Select is the datastar expression that copies the airport into the
	// field's signals. Values are JSON-encoded, so it is safe as JS.
	Select template.JS
}

// Suggestions is the autocomplete list for one field.
type Suggestions struct {
	Field string // "from" or "to"
	Items []Suggestion
	Query string
	Error string
}

// ListID is the element id the list is patched into.
func (s Suggestions) ListID() string {
	return s.Field + "-suggestions"
}

// NewSuggestions builds the list for field from the looked-up airports.
func NewSuggestions(field, query string, airports []domain.Airport) Suggestions {
	s := Suggestions{Field: field, Query: query, Items: make([]Suggestion, 0, len(airports))}
	for _, a := range airports {
		s.Items = append(s.Items, Suggestion{
			Title:    a.Title,
			Subtitle: a.Subtitle,
			Select:   selectExpr(field, a),
		})
	}
	return s
}

func selectExpr(field string, a domain.Airport) template.JS {
	js := func(v string) string {
		b, _ := json.Marshal(v)
		return string(b)
	}
	return template.JS(
		"$" + field + "sky=" + js(a.SkyID) +
			";$" + field + "ent=" + js(a.EntityID) +
			";$" + field + "q=" + js(a.Title) +
			";$" + field + "open=false")
}

// NotFoundPage is the catch-all page.
type NotFoundPage struct {
	Path string
}
