package fishlog

import (
	"database/sql"
	"fmt"

	"github.com/pcannon/fishlog-cli/internal/model"
	"github.com/pcannon/fishlog-cli/internal/service"
	"github.com/spf13/cobra"
)

var catchCmd = &cobra.Command{
	Use:   "catch",
	Short: "Manage catches",
}

var (
	catchTrip     int64
	catchSpecies  string
	catchLength   float64
	catchWeight   float64
	catchBait     string
	catchLure     string
	catchMethod   string
	catchTime     string
	catchPhoto    string
	catchNotes    string
	catchReleased bool
)

var catchAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a catch on a trip",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.CreateCatchInput{
			TripID:   catchTrip,
			Species:  catchSpecies,
			Bait:     catchBait,
			Lure:     catchLure,
			Method:   catchMethod,
			Time:     catchTime,
			PhotoURI: catchPhoto,
			Notes:    catchNotes,
			Released: catchReleased,
		}
		if cmd.Flags().Changed("length") {
			v := catchLength
			in.Length = &v
		}
		if cmd.Flags().Changed("weight") {
			v := catchWeight
			in.Weight = &v
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreateCatch(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added catch %d (%s)\n", id, in.Species)
			return nil
		})
	},
}

var (
	catchListTrip   int64
	catchListLimit  int
	catchListOffset int
)

var catchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catches (one trip chronologically, or all by logging time)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			var catches []model.Catch
			var err error
			if cmd.Flags().Changed("trip") {
				catches, err = service.CatchesByTrip(sqldb, catchListTrip)
			} else {
				catches, err = service.ListCatches(sqldb, service.ListCatchesFilter{Limit: catchListLimit, Offset: catchListOffset})
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tTRIP\tTIME\tSPECIES\tLENGTH\tWEIGHT\tRELEASED")
			for _, c := range catches {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
					c.ID, c.TripID, c.Time, c.Species, dashFloat(c.Length), dashFloat(c.Weight), yesNo(c.Released))
			}
			return nil
		})
	},
}

var catchShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single catch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("catch id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			c, err := service.CatchByID(sqldb, id)
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("catch %d not found", id)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID: %d\n", c.ID)
			fmt.Fprintf(out, "Trip: %d\n", c.TripID)
			fmt.Fprintf(out, "Species: %s\n", c.Species)
			fmt.Fprintf(out, "Time: %s\n", c.Time)
			lengthUnit, _, err := service.GetConfig(sqldb, service.ConfigLengthUnit)
			if err != nil {
				return err
			}
			weightUnit, _, err := service.GetConfig(sqldb, service.ConfigWeightUnit)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Length: %s\n", withUnit(dashFloat(c.Length), lengthUnit))
			fmt.Fprintf(out, "Weight: %s\n", withUnit(dashFloat(c.Weight), weightUnit))
			fmt.Fprintf(out, "Bait: %s\n", dash(c.Bait))
			fmt.Fprintf(out, "Lure: %s\n", dash(c.Lure))
			fmt.Fprintf(out, "Method: %s\n", dash(c.Method))
			fmt.Fprintf(out, "Photo: %s\n", dash(c.PhotoURI))
			fmt.Fprintf(out, "Released: %s\n", yesNo(c.Released))
			fmt.Fprintf(out, "Notes: %s\n", dash(c.Notes))
			return nil
		})
	},
}

var catchClear string

var catchClearableFields = map[string]bool{
	"length": true,
	"weight": true,
	"bait":   true,
	"lure":   true,
	"method": true,
	"photo":  true,
	"notes":  true,
}

var catchUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a catch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("catch id", args[0])
		if err != nil {
			return err
		}

		var patch service.CatchPatch
		if cmd.Flags().Changed("trip") {
			patch.TripID = model.Set(catchTrip)
		}
		if cmd.Flags().Changed("species") {
			patch.Species = model.Set(catchSpecies)
		}
		if cmd.Flags().Changed("length") {
			patch.Length = model.Set(catchLength)
		}
		if cmd.Flags().Changed("weight") {
			patch.Weight = model.Set(catchWeight)
		}
		if cmd.Flags().Changed("bait") {
			patch.Bait = model.Set(catchBait)
		}
		if cmd.Flags().Changed("lure") {
			patch.Lure = model.Set(catchLure)
		}
		if cmd.Flags().Changed("method") {
			patch.Method = model.Set(catchMethod)
		}
		if cmd.Flags().Changed("time") {
			patch.Time = model.Set(catchTime)
		}
		if cmd.Flags().Changed("photo") {
			patch.PhotoURI = model.Set(catchPhoto)
		}
		if cmd.Flags().Changed("notes") {
			patch.Notes = model.Set(catchNotes)
		}
		if cmd.Flags().Changed("released") {
			patch.Released = model.Set(catchReleased)
		}

		if catchClear != "" {
			fields, err := splitClearList(catchClear, catchClearableFields)
			if err != nil {
				return err
			}
			for _, f := range fields {
				switch f {
				case "length":
					patch.Length = model.Null[float64]()
				case "weight":
					patch.Weight = model.Null[float64]()
				case "bait":
					patch.Bait = model.Null[string]()
				case "lure":
					patch.Lure = model.Null[string]()
				case "method":
					patch.Method = model.Null[string]()
				case "photo":
					patch.PhotoURI = model.Null[string]()
				case "notes":
					patch.Notes = model.Null[string]()
				}
			}
		}

		return withDB(func(sqldb *sql.DB) error {
			if err := service.UpdateCatch(sqldb, id, patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated catch %d\n", id)
			return nil
		})
	},
}

var catchDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a catch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("catch id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteCatch(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted catch %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(catchCmd)
	catchCmd.AddCommand(catchAddCmd, catchListCmd, catchShowCmd, catchUpdateCmd, catchDeleteCmd)

	for _, cmd := range []*cobra.Command{catchAddCmd, catchUpdateCmd} {
		cmd.Flags().Int64Var(&catchTrip, "trip", 0, "Trip id the catch belongs to")
		cmd.Flags().StringVar(&catchSpecies, "species", "", "Species caught")
		cmd.Flags().Float64Var(&catchLength, "length", 0, "Length")
		cmd.Flags().Float64Var(&catchWeight, "weight", 0, "Weight")
		cmd.Flags().StringVar(&catchBait, "bait", "", "Bait used")
		cmd.Flags().StringVar(&catchLure, "lure", "", "Lure used")
		cmd.Flags().StringVar(&catchMethod, "method", "", "Fishing method")
		cmd.Flags().StringVar(&catchTime, "time", "", "Time of the catch (HH:MM)")
		cmd.Flags().StringVar(&catchPhoto, "photo", "", "Photo URI")
		cmd.Flags().StringVar(&catchNotes, "notes", "", "Notes")
		cmd.Flags().BoolVar(&catchReleased, "released", false, "Fish was released")
	}
	catchUpdateCmd.Flags().StringVar(&catchClear, "clear", "", "Comma-separated optional fields to clear (length, weight, bait, lure, method, photo, notes)")

	catchListCmd.Flags().Int64Var(&catchListTrip, "trip", 0, "List catches of one trip, earliest first")
	catchListCmd.Flags().IntVar(&catchListLimit, "limit", 0, "Maximum catches to return (0 = all)")
	catchListCmd.Flags().IntVar(&catchListOffset, "offset", 0, "Catches to skip (with --limit)")
}
