package fishlog

import (
	"database/sql"
	"fmt"

	"github.com/pcannon/fishlog-cli/internal/model"
	"github.com/pcannon/fishlog-cli/internal/service"
	"github.com/spf13/cobra"
)

var locationCmd = &cobra.Command{
	Use:   "location",
	Short: "Manage saved fishing spots",
}

var (
	locationName     string
	locationLat      float64
	locationLng      float64
	locationDesc     string
	locationFavorite bool
)

var locationAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a fishing spot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lng") {
			return fmt.Errorf("--lat and --lng are required")
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreateLocation(sqldb, service.CreateLocationInput{
				Name:        locationName,
				Latitude:    locationLat,
				Longitude:   locationLng,
				Description: locationDesc,
				IsFavorite:  locationFavorite,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved location %d (%s)\n", id, locationName)
			return nil
		})
	},
}

var locationFavoritesOnly bool

var locationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved spots alphabetically",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			locations, err := service.ListLocations(sqldb, locationFavoritesOnly)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tLAT\tLNG\tFAVORITE\tDESCRIPTION")
			for _, loc := range locations {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%.5f\t%.5f\t%s\t%s\n",
					loc.ID, loc.Name, loc.Latitude, loc.Longitude, yesNo(loc.IsFavorite), dash(loc.Description))
			}
			return nil
		})
	},
}

var locationShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved spot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("location id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			loc, err := service.LocationByID(sqldb, id)
			if err != nil {
				return err
			}
			if loc == nil {
				return fmt.Errorf("location %d not found", id)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID: %d\n", loc.ID)
			fmt.Fprintf(out, "Name: %s\n", loc.Name)
			fmt.Fprintf(out, "Coordinates: %.5f, %.5f\n", loc.Latitude, loc.Longitude)
			fmt.Fprintf(out, "Favorite: %s\n", yesNo(loc.IsFavorite))
			fmt.Fprintf(out, "Description: %s\n", dash(loc.Description))
			return nil
		})
	},
}

var locationClear string

var locationClearableFields = map[string]bool{
	"description": true,
}

var locationUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a saved spot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("location id", args[0])
		if err != nil {
			return err
		}

		var patch service.LocationPatch
		if cmd.Flags().Changed("name") {
			patch.Name = model.Set(locationName)
		}
		if cmd.Flags().Changed("lat") {
			patch.Latitude = model.Set(locationLat)
		}
		if cmd.Flags().Changed("lng") {
			patch.Longitude = model.Set(locationLng)
		}
		if cmd.Flags().Changed("description") {
			patch.Description = model.Set(locationDesc)
		}
		if cmd.Flags().Changed("favorite") {
			patch.IsFavorite = model.Set(locationFavorite)
		}
		if locationClear != "" {
			fields, err := splitClearList(locationClear, locationClearableFields)
			if err != nil {
				return err
			}
			for _, f := range fields {
				if f == "description" {
					patch.Description = model.Null[string]()
				}
			}
		}

		return withDB(func(sqldb *sql.DB) error {
			if err := service.UpdateLocation(sqldb, id, patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated location %d\n", id)
			return nil
		})
	},
}

var locationUnfavorite bool

var locationFavoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Mark or unmark a spot as favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("location id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetLocationFavorite(sqldb, id, !locationUnfavorite); err != nil {
				return err
			}
			if locationUnfavorite {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed location %d from favorites\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Marked location %d as favorite\n", id)
			}
			return nil
		})
	},
}

var locationDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved spot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("location id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteLocation(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted location %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(locationCmd)
	locationCmd.AddCommand(locationAddCmd, locationListCmd, locationShowCmd, locationUpdateCmd, locationFavoriteCmd, locationDeleteCmd)

	for _, cmd := range []*cobra.Command{locationAddCmd, locationUpdateCmd} {
		cmd.Flags().StringVar(&locationName, "name", "", "Spot name")
		cmd.Flags().Float64Var(&locationLat, "lat", 0, "Latitude")
		cmd.Flags().Float64Var(&locationLng, "lng", 0, "Longitude")
		cmd.Flags().StringVar(&locationDesc, "description", "", "Description")
		cmd.Flags().BoolVar(&locationFavorite, "favorite", false, "Mark as favorite")
	}
	locationUpdateCmd.Flags().StringVar(&locationClear, "clear", "", "Comma-separated optional fields to clear (description)")

	locationListCmd.Flags().BoolVar(&locationFavoritesOnly, "favorites", false, "Only favorites")
	locationFavoriteCmd.Flags().BoolVar(&locationUnfavorite, "unset", false, "Remove from favorites instead")
}
