// Package domain contains the core data types for the flight search front-end:
// airports, itineraries, search parameters and the rules that govern the
// search form and the results URL. It has no dependencies on the HTTP layer
// or on the third-party API's wire format.
package domain

// Airport is one suggestion returned by the airport lookup.
// SkyID and EntityID are the third-party identifiers the flight search needs;
// both travel together whenever an airport is selected or swapped.
type Airport struct {
	SkyID    string `json:"skyId"`
	EntityID string `json:"entityId"`
	Title    string `json:"title"`              // display title, e.g. "London Heathrow (LHR)"
	Subtitle string `json:"subtitle,omitempty"` // e.g. "United Kingdom"
}

// Selected reports whether the airport carries the identifiers required to
// search for flights. A typed-but-unselected airport has a Title only.
func (a Airport) Selected() bool {
	return a.SkyID != ""
}
