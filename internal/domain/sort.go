package domain

import (
	"slices"
	"strconv"
)

// SortKey orders the results list. The values match the ones the flight API
// itself accepts so a key can be forwarded unchanged.
type SortKey string

const (
	SortBest     SortKey = "best"
	SortCheapest SortKey = "price_high" // the API's name for lowest price first
	SortFastest  SortKey = "fastest"
)

// SortOption is one entry of the results page sort bar.
type SortOption struct {
	Key   SortKey
	Label string
}

// SortOptions lists the sort bar entries in display order.
var SortOptions = []SortOption{
	{Key: SortBest, Label: "Best"},
	{Key: SortCheapest, Label: "Cheapest"},
	{Key: SortFastest, Label: "Fastest"},
}

// ParseSortKey maps a query value to a SortKey; unknown values mean SortBest.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortCheapest, SortFastest:
		return k
	default:
		return SortBest
	}
}

// SortItineraries returns a re-ordered copy of its. The input slice is not
// modified and no element is added or dropped. Ties keep upstream order.
func SortItineraries(its []Itinerary, key SortKey) []Itinerary {
	out := slices.Clone(its)
	if out == nil {
		out = []Itinerary{}
	}
	switch ParseSortKey(string(key)) {
	case SortCheapest:
		// Unpriced itineraries go last; a zero Raw is not a price.
		slices.SortStableFunc(out, func(a, b Itinerary) int {
			switch ap, bp := a.Price.Available(), b.Price.Available(); {
			case ap && !bp:
				return -1
			case !ap && bp:
				return 1
			case !ap && !bp:
				return 0
			case a.Price.Raw < b.Price.Raw:
				return -1
			case a.Price.Raw > b.Price.Raw:
				return 1
			}
			return 0
		})
	case SortFastest:
		slices.SortStableFunc(out, func(a, b Itinerary) int {
			return a.TotalDuration() - b.TotalDuration()
		})
	}
	return out
}

// StopsFilter limits results by total stop count. The zero value keeps everything.
type StopsFilter struct {
	Max   int
	Limit bool
}

// StopsOption is one entry of the results page stops filter.
type StopsOption struct {
	Value string
	Label string
}

// StopsOptions lists the stops filter entries in display order.
var StopsOptions = []StopsOption{
	{Value: "", Label: "Any"},
	{Value: "0", Label: "Non-stop"},
	{Value: "1", Label: "1 stop or fewer"},
}

// ParseStopsFilter maps the "stops" query value to a filter. Empty or
// malformed values (and negatives) mean no limit.
func ParseStopsFilter(s string) StopsFilter {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return StopsFilter{}
	}
	return StopsFilter{Max: n, Limit: true}
}

// Value is the query-string form of the filter ("" when unlimited).
func (f StopsFilter) Value() string {
	if !f.Limit {
		return ""
	}
	return strconv.Itoa(f.Max)
}

// Apply returns the itineraries whose total stops are within the limit,
// preserving order.
func (f StopsFilter) Apply(its []Itinerary) []Itinerary {
	if !f.Limit {
		return slices.Clone(its)
	}
	out := make([]Itinerary, 0, len(its))
	for _, it := range its {
		if it.TotalStops() <= f.Max {
			out = append(out, it)
		}
	}
	return out
}
