package view

import (
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/pkordes/flight-search/internal/domain"
)

// TimeLayout is how departure and arrival times are shown on a card.
const TimeLayout = "15:04"

// Card is the display form of one itinerary on the results page.
type Card struct {
	ID        string
	Departure string // first leg, "15:04"; empty when the API sent no usable time
	Arrival   string // last leg

	Airline     string
	LogoURL     string
	LogoInitial string // shown when LogoURL is empty

	Duration string // "13 hrs 45 min"
	Route    string // "KTM-LHR"
	Stops    string // "Non-stop", "1 stop", "2 stops"

	Emissions       string // "12.5 kg CO2e"; empty when unknown
	EmissionsChange string // "+5% emissions"; empty when unknown
	EmissionsClass  string // "positive" below average, "negative" otherwise

	Price          string
	PriceAvailable bool
	TripLabel      string // "round trip" or "one way"
}

// HasEmissions reports whether the emissions column has anything to show.
func (c Card) HasEmissions() bool {
	return c.Emissions != "" || c.EmissionsChange != ""
}

// NewCard builds the card for it. it must have at least one leg.
func NewCard(it domain.Itinerary, roundTrip bool) Card {
	first, last := it.FirstLeg(), it.LastLeg()

	c := Card{
		ID:        it.ID,
		Departure: clock(first.Departure),
		Arrival:   clock(last.Arrival),
		Duration:  Duration(it.TotalDuration()),
		Route:     first.Origin.DisplayCode + "-" + last.Destination.DisplayCode,
		Stops:     StopsText(it.TotalStops()),
		Price:     it.Price.Formatted,
		TripLabel: "one way",
	}
	if roundTrip {
		c.TripLabel = "round trip"
	}

	c.LogoInitial = "A"
	if len(first.Carriers) > 0 {
		carrier := first.Carriers[0]
		c.Airline = carrier.Name
		c.LogoURL = carrier.LogoURL
		if r, _ := utf8.DecodeRuneInString(carrier.Name); r != utf8.RuneError {
			c.LogoInitial = string(r)
		}
	}

	c.PriceAvailable = it.Price.Available()
	if !c.PriceAvailable {
		c.Price = "Price unavailable"
	}

	if s := it.Sustainability; s != nil {
		if s.EcoContenderDelta != 0 {
			c.Emissions = formatNumber(s.EcoContenderDelta) + " kg CO2e"
		}
		if pct := s.EmissionsPercentage; pct != 0 {
			sign := ""
			if pct > 0 {
				sign = "+"
			}
			c.EmissionsChange = sign + formatNumber(pct) + "% emissions"
			c.EmissionsClass = "negative"
			if pct < 0 {
				c.EmissionsClass = "positive"
			}
		}
	}
	return c
}

// Duration renders minutes as "H hrs M min".
func Duration(minutes int) string {
	return strconv.Itoa(minutes/60) + " hrs " + strconv.Itoa(minutes%60) + " min"
}

// StopsText renders a total stop count.
func StopsText(n int) string {
	switch n {
	case 0:
		return "Non-stop"
	case 1:
		return "1 stop"
	default:
		return strconv.Itoa(n) + " stops"
	}
}

func clock(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
