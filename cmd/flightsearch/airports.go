package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/flight-search/internal/domain"
)

var airportsCmd = &cobra.Command{
	Use:   "airports <query>",
	Short: "Look up airports matching a name or code",
	Long: `airports queries the flight API for airports matching query and prints
their sky and entity IDs, which the flights subcommand takes as input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), cfg, newLogger(os.Stderr, cfg.LogLevel), false)
		if err != nil {
			return err
		}
		defer func() { _ = a.close() }()

		airports, err := a.airports.Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printAirports(cmd.OutOrStdout(), airports, asJSON)
	},
}

func init() {
	airportsCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(airportsCmd)
}

func printAirports(w io.Writer, airports []domain.Airport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(airports)
	}
	if len(airports) == 0 {
		_, err := fmt.Fprintln(w, "No airports found")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SKY ID\tENTITY ID\tNAME\tLOCATION")
	for _, a := range airports {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.SkyID, a.EntityID, a.Title, a.Subtitle)
	}
	return tw.Flush()
}
