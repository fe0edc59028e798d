package domain

import (
	"net/url"
	"strconv"
)

// Query-string keys of the results URL. The first seven are the contract
// between the search form and the results page; sortBy and stops belong to
// the results page's own sort and filter bar.
const (
	QueryOriginSkyID         = "originSkyId"
	QueryDestinationSkyID    = "destinationSkyId"
	QueryDepartureDate       = "departureDate"
	QueryReturnDate          = "returnDate"
	QueryAdults              = "adults"
	QueryOriginEntityID      = "originEntityId"
	QueryDestinationEntityID = "destinationEntityId"
	QuerySortBy              = "sortBy"
	QueryStops               = "stops"
)

// EncodeResultsQuery renders p as the results page query string.
// returnDate is omitted for one-way trips; sortBy is omitted for the default order.
func EncodeResultsQuery(p FlightSearchParams) url.Values {
	v := url.Values{}
	v.Set(QueryOriginSkyID, p.OriginSkyID)
	v.Set(QueryDestinationSkyID, p.DestinationSkyID)
	v.Set(QueryDepartureDate, FormatDate(p.Date))
	if p.ReturnDate != nil {
		v.Set(QueryReturnDate, FormatDate(*p.ReturnDate))
	}
	v.Set(QueryAdults, strconv.Itoa(p.Adults))
	v.Set(QueryOriginEntityID, p.OriginEntityID)
	v.Set(QueryDestinationEntityID, p.DestinationEntityID)
	if p.SortBy != "" && p.SortBy != SortBest {
		v.Set(QuerySortBy, string(p.SortBy))
	}
	return v
}

// ParseResultsQuery decodes the results page query string.
// It returns ok=false when a required key is absent or a date is malformed;
// the caller must then render the empty state without calling the API.
// A missing, non-numeric or non-positive adults value becomes 1.
func ParseResultsQuery(v url.Values, currency string) (FlightSearchParams, bool) {
	p := FlightSearchParams{
		OriginSkyID:         v.Get(QueryOriginSkyID),
		DestinationSkyID:    v.Get(QueryDestinationSkyID),
		OriginEntityID:      v.Get(QueryOriginEntityID),
		DestinationEntityID: v.Get(QueryDestinationEntityID),
		SortBy:              ParseSortKey(v.Get(QuerySortBy)),
		Currency:            currency,
	}
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}

	departure := v.Get(QueryDepartureDate)
	if p.OriginSkyID == "" || p.DestinationSkyID == "" || departure == "" ||
		p.OriginEntityID == "" || p.DestinationEntityID == "" {
		return FlightSearchParams{}, false
	}

	d, err := ParseDate(departure)
	if err != nil {
		return FlightSearchParams{}, false
	}
	p.Date = d

	if rs := v.Get(QueryReturnDate); rs != "" {
		r, err := ParseDate(rs)
		if err != nil {
			return FlightSearchParams{}, false
		}
		p.ReturnDate = &r
	}

	p.Adults = 1
	if n, err := strconv.Atoi(v.Get(QueryAdults)); err == nil && n >= 1 {
		p.Adults = n
	}
	return p, true
}

// CacheKey is a canonical string for p covering only the fields that change
// what the API returns. Sort order is applied locally and is excluded.
func (p FlightSearchParams) CacheKey() string {
	q := p
	q.SortBy = ""
	v := EncodeResultsQuery(q)
	v.Set("currency", q.Currency)
	return v.Encode()
}
