package fishlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pcannon/fishlog-cli/internal/model"
	"github.com/pcannon/fishlog-cli/internal/provider/nominatim"
	"github.com/pcannon/fishlog-cli/internal/service"
	"github.com/spf13/cobra"
)

var tripCmd = &cobra.Command{
	Use:   "trip",
	Short: "Manage fishing trips",
}

var (
	tripDate     string
	tripStart    string
	tripEnd      string
	tripLocation string
	tripLat      float64
	tripLng      float64
	tripWeather  string
	tripTemp     float64
	tripNotes    string
	tripResolve  bool
)

var tripAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new trip",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.CreateTripInput{
			Date:         tripDate,
			StartTime:    tripStart,
			EndTime:      tripEnd,
			LocationName: tripLocation,
			Weather:      tripWeather,
			Notes:        tripNotes,
		}
		if cmd.Flags().Changed("lat") {
			v := tripLat
			in.Latitude = &v
		}
		if cmd.Flags().Changed("lng") {
			v := tripLng
			in.Longitude = &v
		}
		if cmd.Flags().Changed("temp") {
			v := tripTemp
			in.Temperature = &v
		}

		return withDB(func(sqldb *sql.DB) error {
			if tripResolve && in.LocationName == "" {
				if in.Latitude == nil || in.Longitude == nil {
					return fmt.Errorf("--resolve-location requires --lat and --lng")
				}
				ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
				defer cancel()
				client := &nominatim.Client{}
				if base, ok, err := service.GetConfig(sqldb, service.ConfigGeocoderBaseURL); err != nil {
					return err
				} else if ok {
					client.BaseURL = base
				}
				place, _, err := client.ReverseGeocode(ctx, *in.Latitude, *in.Longitude)
				if err != nil {
					return fmt.Errorf("resolve location name (pass --location to enter one manually): %w", err)
				}
				if place.Name != "" {
					in.LocationName = place.Name
				} else {
					in.LocationName = place.DisplayName
				}
			}
			if in.LocationName == "" {
				if name, ok, err := service.GetConfig(sqldb, service.ConfigDefaultLocation); err != nil {
					return err
				} else if ok {
					in.LocationName = name
				}
			}

			id, err := service.CreateTrip(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added trip %d (%s)\n", id, in.LocationName)
			return nil
		})
	},
}

var (
	tripListLimit  int
	tripListOffset int
)

var tripListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trips, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			trips, err := service.ListTrips(sqldb, service.ListTripsFilter{Limit: tripListLimit, Offset: tripListOffset})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tSTART\tEND\tLOCATION\tWEATHER\tTEMP")
			for _, t := range trips {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.Date, t.StartTime, dash(t.EndTime), t.LocationName, dash(t.Weather), dashFloat(t.Temperature))
			}
			return nil
		})
	},
}

var tripShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one trip with its catches",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("trip id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			t, err := service.TripByID(sqldb, id)
			if err != nil {
				return err
			}
			if t == nil {
				return fmt.Errorf("trip %d not found", id)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID: %d\n", t.ID)
			fmt.Fprintf(out, "Date: %s\n", t.Date)
			fmt.Fprintf(out, "Start: %s\n", t.StartTime)
			fmt.Fprintf(out, "End: %s\n", dash(t.EndTime))
			fmt.Fprintf(out, "Location: %s\n", t.LocationName)
			if t.Latitude != nil && t.Longitude != nil {
				fmt.Fprintf(out, "Coordinates: %s, %s\n", dashFloat(t.Latitude), dashFloat(t.Longitude))
			}
			fmt.Fprintf(out, "Weather: %s\n", dash(t.Weather))
			fmt.Fprintf(out, "Temperature: %s\n", dashFloat(t.Temperature))
			fmt.Fprintf(out, "Notes: %s\n", dash(t.Notes))

			catches, err := service.CatchesByTrip(sqldb, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Catches: %d\n", len(catches))
			for _, c := range catches {
				released := ""
				if c.Released {
					released = " (released)"
				}
				fmt.Fprintf(out, "  %s  %s%s\n", c.Time, c.Species, released)
			}
			return nil
		})
	},
}

var tripClear string

var tripClearableFields = map[string]bool{
	"end":         true,
	"latitude":    true,
	"longitude":   true,
	"weather":     true,
	"temperature": true,
	"notes":       true,
}

var tripUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a trip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("trip id", args[0])
		if err != nil {
			return err
		}

		// Presence, not truthiness: a flag explicitly set to a zero
		// value still lands in the patch.
		var patch service.TripPatch
		if cmd.Flags().Changed("date") {
			patch.Date = model.Set(tripDate)
		}
		if cmd.Flags().Changed("start") {
			patch.StartTime = model.Set(tripStart)
		}
		if cmd.Flags().Changed("end") {
			patch.EndTime = model.Set(tripEnd)
		}
		if cmd.Flags().Changed("location") {
			patch.LocationName = model.Set(tripLocation)
		}
		if cmd.Flags().Changed("lat") {
			patch.Latitude = model.Set(tripLat)
		}
		if cmd.Flags().Changed("lng") {
			patch.Longitude = model.Set(tripLng)
		}
		if cmd.Flags().Changed("weather") {
			patch.Weather = model.Set(tripWeather)
		}
		if cmd.Flags().Changed("temp") {
			patch.Temperature = model.Set(tripTemp)
		}
		if cmd.Flags().Changed("notes") {
			patch.Notes = model.Set(tripNotes)
		}

		if tripClear != "" {
			fields, err := splitClearList(tripClear, tripClearableFields)
			if err != nil {
				return err
			}
			for _, f := range fields {
				switch f {
				case "end":
					patch.EndTime = model.Null[string]()
				case "latitude":
					patch.Latitude = model.Null[float64]()
				case "longitude":
					patch.Longitude = model.Null[float64]()
				case "weather":
					patch.Weather = model.Null[string]()
				case "temperature":
					patch.Temperature = model.Null[float64]()
				case "notes":
					patch.Notes = model.Null[string]()
				}
			}
		}

		return withDB(func(sqldb *sql.DB) error {
			if err := service.UpdateTrip(sqldb, id, patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated trip %d\n", id)
			return nil
		})
	},
}

var tripDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a trip and all its catches",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("trip id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteTrip(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted trip %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(tripCmd)
	tripCmd.AddCommand(tripAddCmd, tripListCmd, tripShowCmd, tripUpdateCmd, tripDeleteCmd)

	for _, cmd := range []*cobra.Command{tripAddCmd, tripUpdateCmd} {
		cmd.Flags().StringVar(&tripDate, "date", "", "Trip date (YYYY-MM-DD)")
		cmd.Flags().StringVar(&tripStart, "start", "", "Start time (HH:MM)")
		cmd.Flags().StringVar(&tripEnd, "end", "", "End time (HH:MM)")
		cmd.Flags().StringVar(&tripLocation, "location", "", "Location name")
		cmd.Flags().Float64Var(&tripLat, "lat", 0, "Latitude")
		cmd.Flags().Float64Var(&tripLng, "lng", 0, "Longitude")
		cmd.Flags().StringVar(&tripWeather, "weather", "", "Weather description")
		cmd.Flags().Float64Var(&tripTemp, "temp", 0, "Temperature")
		cmd.Flags().StringVar(&tripNotes, "notes", "", "Notes")
	}
	tripAddCmd.Flags().BoolVar(&tripResolve, "resolve-location", false, "Resolve location name from --lat/--lng via reverse geocoding")
	tripUpdateCmd.Flags().StringVar(&tripClear, "clear", "", "Comma-separated optional fields to clear (end, latitude, longitude, weather, temperature, notes)")

	tripListCmd.Flags().IntVar(&tripListLimit, "limit", 0, "Maximum trips to return (0 = all)")
	tripListCmd.Flags().IntVar(&tripListOffset, "offset", 0, "Trips to skip (with --limit)")
}
