package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used on the wire and in URLs.
const DateLayout = "2006-01-02"

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "USD"

// TripType selects between a one-way and a round-trip search.
type TripType string

const (
	RoundTrip TripType = "round-trip"
	OneWay    TripType = "one-way"
)

// ParseTripType maps a form value to a TripType. Anything unknown,
// including the empty string, is a round trip (the form's default).
func ParseTripType(s string) TripType {
	if TripType(s) == OneWay {
		return OneWay
	}
	return RoundTrip
}

// FlightSearchParams is everything the flight search endpoint needs.
// Dates are calendar dates at UTC midnight; ReturnDate is nil for one-way trips.
type FlightSearchParams struct {
	OriginSkyID         string
	DestinationSkyID    string
	OriginEntityID      string
	DestinationEntityID string
	Date                time.Time
	ReturnDate          *time.Time
	Adults              int
	Currency            string
	SortBy              SortKey
}

// RoundTrip reports whether the search has a return date.
func (p FlightSearchParams) RoundTrip() bool {
	return p.ReturnDate != nil
}

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfDay returns the calendar date of t, in t's own location, expressed
// as UTC midnight so it compares directly with parsed form dates.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
