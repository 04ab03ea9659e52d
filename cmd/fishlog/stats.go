package fishlog

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pcannon/fishlog-cli/internal/service"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Logbook statistics",
}

var statsJSON bool

var statsOverallCmd = &cobra.Command{
	Use:   "overall",
	Short: "Totals across the whole logbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			stats, err := service.GetTripStats(sqldb)
			if err != nil {
				return err
			}
			if statsJSON {
				return printJSON(cmd, stats)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Trips: %d\n", stats.TotalTrips)
			fmt.Fprintf(out, "Catches: %d\n", stats.TotalCatches)
			fmt.Fprintf(out, "Catches per trip: %.2f\n", stats.AvgCatchesPerTrip)
			fmt.Fprintf(out, "Favorite species: %s\n", dash(stats.FavoriteSpecies))
			return nil
		})
	},
}

var statsSpeciesCmd = &cobra.Command{
	Use:   "species",
	Short: "Catch counts ranked by species",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			breakdown, err := service.GetSpeciesStats(sqldb)
			if err != nil {
				return err
			}
			if statsJSON {
				return printJSON(cmd, breakdown)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "SPECIES\tCOUNT")
			for _, s := range breakdown {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", s.Species, s.Count)
			}
			return nil
		})
	},
}

var (
	seasonFrom string
	seasonTo   string
)

var statsSeasonCmd = &cobra.Command{
	Use:   "season",
	Short: "Statistics over a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		if seasonFrom == "" || seasonTo == "" {
			return fmt.Errorf("--from and --to are required")
		}
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.GetSeasonReport(sqldb, seasonFrom, seasonTo)
			if err != nil {
				return err
			}
			if statsJSON {
				return printJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Range: %s to %s\n", report.FromDate, report.ToDate)
			fmt.Fprintf(out, "Trips: %d\n", report.Trips)
			fmt.Fprintf(out, "Catches: %d (released %d, kept %d)\n", report.Catches, report.Released, report.Kept)
			fmt.Fprintf(out, "Top species: %s\n", dash(report.TopSpecies))
			for _, s := range report.BySpecies {
				fmt.Fprintf(out, "  %s\t%d\n", s.Species, s.Count)
			}
			return nil
		})
	},
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stats json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsOverallCmd, statsSpeciesCmd, statsSeasonCmd)

	statsCmd.PersistentFlags().BoolVar(&statsJSON, "json", false, "Output JSON")
	statsSeasonCmd.Flags().StringVar(&seasonFrom, "from", "", "Range start (YYYY-MM-DD)")
	statsSeasonCmd.Flags().StringVar(&seasonTo, "to", "", "Range end (YYYY-MM-DD)")
}
