package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/flight-search/internal/domain"
	"github.com/pkordes/flight-search/internal/view"
)

// flightFlags are the flights subcommand's options.
type flightFlags struct {
	fromSky, fromEntity string
	toSky, toEntity     string
	date, returnDate    string
	adults              int
	sort                string
	asJSON              bool
}

var flightOpts flightFlags

var flightsCmd = &cobra.Command{
	Use:   "flights",
	Short: "Search flights between two airports",
	Long: `flights searches itineraries between two airports. Airport IDs come from
the airports subcommand. Without --return the search is one way.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		p, err := flightOpts.params(cfg.Currency)
		if err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), cfg, newLogger(os.Stderr, cfg.LogLevel), false)
		if err != nil {
			return err
		}
		defer func() { _ = a.close() }()

		its, err := a.flights.Search(cmd.Context(), p)
		if err != nil {
			return err
		}
		return printItineraries(cmd.OutOrStdout(), its, p.RoundTrip(), flightOpts.asJSON)
	},
}

func init() {
	f := flightsCmd.Flags()
	f.StringVar(&flightOpts.fromSky, "from-sky", "", "origin sky ID, e.g. KTM")
	f.StringVar(&flightOpts.fromEntity, "from-entity", "", "origin entity ID")
	f.StringVar(&flightOpts.toSky, "to-sky", "", "destination sky ID, e.g. LHR")
	f.StringVar(&flightOpts.toEntity, "to-entity", "", "destination entity ID")
	f.StringVar(&flightOpts.date, "date", "", "departure date (YYYY-MM-DD)")
	f.StringVar(&flightOpts.returnDate, "return", "", "return date (YYYY-MM-DD); omit for one way")
	f.IntVar(&flightOpts.adults, "adults", 1, "number of adult passengers")
	f.StringVar(&flightOpts.sort, "sort", string(domain.SortBest), "best, price_high (cheapest) or fastest")
	f.BoolVar(&flightOpts.asJSON, "json", false, "output results as JSON")

	rootCmd.AddCommand(flightsCmd)
}

// params validates the flags and turns them into search parameters.
func (f flightFlags) params(currency string) (domain.FlightSearchParams, error) {
	var missing []string
	for _, req := range []struct{ name, value string }{
		{"--from-sky", f.fromSky},
		{"--from-entity", f.fromEntity},
		{"--to-sky", f.toSky},
		{"--to-entity", f.toEntity},
		{"--date", f.date},
	} {
		if strings.TrimSpace(req.value) == "" {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return domain.FlightSearchParams{}, fmt.Errorf("required flags not set: %s", strings.Join(missing, ", "))
	}
	if f.adults < 1 {
		return domain.FlightSearchParams{}, errors.New("--adults must be at least 1")
	}

	date, err := domain.ParseDate(f.date)
	if err != nil {
		return domain.FlightSearchParams{}, fmt.Errorf("--date: %w", err)
	}
	p := domain.FlightSearchParams{
		OriginSkyID:         strings.TrimSpace(f.fromSky),
		OriginEntityID:      strings.TrimSpace(f.fromEntity),
		DestinationSkyID:    strings.TrimSpace(f.toSky),
		DestinationEntityID: strings.TrimSpace(f.toEntity),
		Date:                date,
		Adults:              f.adults,
		Currency:            currency,
		SortBy:              domain.ParseSortKey(f.sort),
	}
	if p.Currency == "" {
		p.Currency = domain.DefaultCurrency
	}
	if f.returnDate != "" {
		r, err := domain.ParseDate(f.returnDate)
		if err != nil {
			return domain.FlightSearchParams{}, fmt.Errorf("--return: %w", err)
		}
		if !r.After(date) {
			return domain.FlightSearchParams{}, errors.New("--return must be after --date")
		}
		p.ReturnDate = &r
	}
	return p, nil
}

// printItineraries writes one line per itinerary using the same formatting
// as the result cards of the web UI.
func printItineraries(w io.Writer, its []domain.Itinerary, roundTrip, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(its)
	}
	if len(its) == 0 {
		_, err := fmt.Fprintln(w, "No flights found")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIMES\tAIRLINE\tDURATION\tROUTE\tSTOPS\tPRICE")
	for _, it := range its {
		c := view.NewCard(it, roundTrip)
		fmt.Fprintf(tw, "%s–%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Departure, c.Arrival, c.Airline, c.Duration, c.Route, c.Stops, c.Price)
	}
	return tw.Flush()
}
