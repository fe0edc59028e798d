package domain

import "time"

// Place is an airport as it appears on a leg.
type Place struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayCode string `json:"displayCode"`
	City        string `json:"city"`
}

// Carrier is a marketing airline on a leg.
type Carrier struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
}

// Leg is a single flown segment between two airports.
type Leg struct {
	ID                string    `json:"id"`
	Origin            Place     `json:"origin"`
	Destination       Place     `json:"destination"`
	Departure         time.Time `json:"departure"`
	Arrival           time.Time `json:"arrival"`
	StopCount         int       `json:"stopCount"`
	DurationInMinutes int       `json:"durationInMinutes"`
	Carriers          []Carrier `json:"carriers"`
}

// Price is the total price of an itinerary.
// Raw is used for ordering; Formatted is what the user sees (e.g. "$1,234").
type Price struct {
	Raw       float64 `json:"raw"`
	Formatted string  `json:"formatted"`
}

// Available reports whether the API returned a price at all.
func (p Price) Available() bool {
	return p.Formatted != ""
}

// Emissions holds the optional sustainability figures some itineraries carry.
type Emissions struct {
	EcoContenderDelta   float64 `json:"ecoContenderDelta"`
	EmissionsPercentage float64 `json:"emissionsPercentage"`
}

// Itinerary is one priced flight option composed of one or more legs.
// The API client drops itineraries without legs, so FirstLeg and LastLeg
// are safe to call on anything it returns.
type Itinerary struct {
	ID             string     `json:"id"`
	Price          Price      `json:"price"`
	Legs           []Leg      `json:"legs"`
	Sustainability *Emissions `json:"sustainability,omitempty"` // nil when the API omits it
}

// FirstLeg returns the outbound leg.
func (it Itinerary) FirstLeg() Leg {
	return it.Legs[0]
}

// LastLeg returns the final leg.
func (it Itinerary) LastLeg() Leg {
	return it.Legs[len(it.Legs)-1]
}

// TotalDuration is the sum of all leg durations in minutes.
func (it Itinerary) TotalDuration() int {
	total := 0
	for _, l := range it.Legs {
		total += l.DurationInMinutes
	}
	return total
}

// TotalStops is the sum of all leg stop counts.
func (it Itinerary) TotalStops() int {
	total := 0
	for _, l := range it.Legs {
		total += l.StopCount
	}
	return total
}
