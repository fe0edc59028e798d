package skyapi

import (
	"context"
	"net/url"

	"github.com/pkordes/flight-search/internal/domain"
)

type airportDTO struct {
	SkyID        string `json:"skyId"`
	EntityID     string `json:"entityId"`
	Presentation struct {
		Title           string `json:"title"`
		SuggestionTitle string `json:"suggestionTitle"`
		Subtitle        string `json:"subtitle"`
	} `json:"presentation"`
}

// SearchAirports looks up airports and cities matching query.
func (c *Client) SearchAirports(ctx context.Context, query string) ([]domain.Airport, error) {
	data, err := get[[]airportDTO](ctx, c, "SearchAirports", "/flights/searchAirport", url.Values{"query": {query}})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Airport, 0, len(data))
	for _, a := range data {
		title := a.Presentation.SuggestionTitle
		if title == "" {
			title = a.Presentation.Title
		}
		out = append(out, domain.Airport{
			SkyID:    a.SkyID,
			EntityID: a.EntityID,
			Title:    title,
			Subtitle: a.Presentation.Subtitle,
		})
	}
	return out, nil
}
