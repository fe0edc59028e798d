package domain

import (
	"sort"
	"strings"
	"time"
)

// Form field names, shared by validation messages and the templates.
const (
	FieldFrom       = "from"
	FieldTo         = "to"
	FieldDeparture  = "departure"
	FieldReturn     = "return"
	FieldPassengers = "passengers"
)

// SearchForm is the state of the search form between submissions.
// Departure and Return are calendar dates (UTC midnight); nil means empty.
type SearchForm struct {
	TripType   TripType
	From       Airport
	To         Airport
	Departure  *time.Time
	Return     *time.Time
	Passengers int
}

// NewSearchForm returns the form's initial state: round trip, one passenger.
func NewSearchForm() SearchForm {
	return SearchForm{TripType: RoundTrip, Passengers: 1}
}

// FieldErrors maps a form field to its inline error message.
// It unwraps to ErrValidation so callers can use errors.Is.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (fe FieldErrors) Unwrap() error {
	return ErrValidation
}

// Normalize applies the form's implicit rules: a one-way trip never carries
// a return date, and an unknown trip type is a round trip.
func (f *SearchForm) Normalize() {
	f.TripType = ParseTripType(string(f.TripType))
	if f.TripType == OneWay {
		f.Return = nil
	}
}

// Validate checks the form against today's date and returns FieldErrors,
// or nil when the form can be submitted. today should be a StartOfDay value.
func (f SearchForm) Validate(today time.Time) error {
	errs := FieldErrors{}

	if !f.From.Selected() {
		errs[FieldFrom] = "Please select departure airport"
	}
	if !f.To.Selected() {
		errs[FieldTo] = "Please select destination airport"
	}

	switch {
	case f.Departure == nil:
		errs[FieldDeparture] = "Please select a departure date"
	case f.Departure.Before(today):
		errs[FieldDeparture] = "Departure date cannot be in the past"
	}

	if f.TripType == RoundTrip && f.Return == nil {
		errs[FieldReturn] = "Return date is required for a round-trip"
	}
	if f.Departure != nil && f.Return != nil && !f.Return.After(*f.Departure) {
		errs[FieldReturn] = "Return date must be after departure"
	}

	if f.Passengers < 1 {
		errs[FieldPassengers] = "At least one passenger is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Swap exchanges origin and destination. Code, entity id and title move together.
func (f *SearchForm) Swap() {
	f.From, f.To = f.To, f.From
}

// Params converts a validated form into search parameters.
func (f SearchForm) Params(currency string) FlightSearchParams {
	if currency == "" {
		currency = DefaultCurrency
	}
	p := FlightSearchParams{
		OriginSkyID:         f.From.SkyID,
		DestinationSkyID:    f.To.SkyID,
		OriginEntityID:      f.From.EntityID,
		DestinationEntityID: f.To.EntityID,
		Adults:              f.Passengers,
		Currency:            currency,
	}
	if f.Departure != nil {
		p.Date = *f.Departure
	}
	if f.TripType == RoundTrip && f.Return != nil {
		r := *f.Return
		p.ReturnDate = &r
	}
	return p
}
