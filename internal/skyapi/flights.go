package skyapi

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/flight-search/internal/domain"
)

// Leg timestamps are local airport times without an offset.
var timestampLayouts = []string{"2006-01-02T15:04:05", time.RFC3339}

type placeDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayCode string `json:"displayCode"`
	City        string `json:"city"`
}

type legDTO struct {
	ID                string   `json:"id"`
	Origin            placeDTO `json:"origin"`
	Destination       placeDTO `json:"destination"`
	Departure         string   `json:"departure"`
	Arrival           string   `json:"arrival"`
	StopCount         int      `json:"stopCount"`
	DurationInMinutes int      `json:"durationInMinutes"`
	Carriers          struct {
		Marketing []struct {
			ID      int64  `json:"id"`
			Name    string `json:"name"`
			LogoURL string `json:"logoUrl"`
		} `json:"marketing"`
	} `json:"carriers"`
}

type itineraryDTO struct {
	ID    string `json:"id"`
	Price struct {
		Raw       float64 `json:"raw"`
		Formatted string  `json:"formatted"`
	} `json:"price"`
	Legs           []legDTO `json:"legs"`
	Sustainability *struct {
		EcoContenderDelta   float64 `json:"ecoContenderDelta"`
		EmissionsPercentage float64 `json:"emissionsPercentage"`
	} `json:"sustainability"`
}

type flightsDTO struct {
	Context struct {
		Status       string `json:"status"`
		TotalResults int    `json:"totalResults"`
	} `json:"context"`
	Itineraries []itineraryDTO `json:"itineraries"`
}

// SearchFlights searches itineraries for p. Itineraries without legs are
// dropped; itineraries without an id get a generated one.
func (c *Client) SearchFlights(ctx context.Context, p domain.FlightSearchParams) ([]domain.Itinerary, error) {
	data, err := get[flightsDTO](ctx, c, "SearchFlights", "/flights/searchFlights", flightParams(p))
	if err != nil {
		return nil, err
	}

	out := make([]domain.Itinerary, 0, len(data.Itineraries))
	for _, it := range data.Itineraries {
		if len(it.Legs) == 0 {
			continue
		}
		out = append(out, toItinerary(it))
	}
	return out, nil
}

// flightParams builds the searchFlights query string.
func flightParams(p domain.FlightSearchParams) url.Values {
	v := url.Values{
		"originSkyId":         {p.OriginSkyID},
		"destinationSkyId":    {p.DestinationSkyID},
		"originEntityId":      {p.OriginEntityID},
		"destinationEntityId": {p.DestinationEntityID},
		"date":                {domain.FormatDate(p.Date)},
		"adults":              {strconv.Itoa(max(p.Adults, 1))},
		"currency":            {p.Currency},
	}
	if v.Get("currency") == "" {
		v.Set("currency", domain.DefaultCurrency)
	}
	if p.ReturnDate != nil {
		v.Set("returnDate", domain.FormatDate(*p.ReturnDate))
	}
	if p.SortBy != "" {
		v.Set("sortBy", string(p.SortBy))
	}
	return v
}

func toItinerary(dto itineraryDTO) domain.Itinerary {
	it := domain.Itinerary{
		ID:    dto.ID,
		Price: domain.Price{Raw: dto.Price.Raw, Formatted: dto.Price.Formatted},
		Legs:  make([]domain.Leg, 0, len(dto.Legs)),
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if s := dto.Sustainability; s != nil {
		it.Sustainability = &domain.Emissions{
			EcoContenderDelta:   s.EcoContenderDelta,
			EmissionsPercentage: s.EmissionsPercentage,
		}
	}
	for _, l := range dto.Legs {
		leg := domain.Leg{
			ID:                l.ID,
			Origin:            domain.Place(l.Origin),
			Destination:       domain.Place(l.Destination),
			Departure:         parseTimestamp(l.Departure),
			Arrival:           parseTimestamp(l.Arrival),
			StopCount:         l.StopCount,
			DurationInMinutes: l.DurationInMinutes,
		}
		for _, m := range l.Carriers.Marketing {
			leg.Carriers = append(leg.Carriers, domain.Carrier{ID: m.ID, Name: m.Name, LogoURL: m.LogoURL})
		}
		it.Legs = append(it.Legs, leg)
	}
	return it
}

// parseTimestamp returns the zero time for values it cannot read; the card
// then shows an empty time instead of dropping the itinerary.
func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
