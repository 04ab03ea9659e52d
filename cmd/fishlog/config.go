package fishlog

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/pcannon/fishlog-cli/internal/service"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage fishlog local configuration",
}

var (
	cfgLengthUnit      string
	cfgWeightUnit      string
	cfgDefaultLocation string
	cfgGeocoderURL     string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			updates := 0
			if cmd.Flags().Changed("length-unit") {
				if err := service.SetConfig(sqldb, service.ConfigLengthUnit, cfgLengthUnit); err != nil {
					return err
				}
				updates++
			}
			if cmd.Flags().Changed("weight-unit") {
				if err := service.SetConfig(sqldb, service.ConfigWeightUnit, cfgWeightUnit); err != nil {
					return err
				}
				updates++
			}
			if cmd.Flags().Changed("default-location") {
				if err := service.SetConfig(sqldb, service.ConfigDefaultLocation, cfgDefaultLocation); err != nil {
					return err
				}
				updates++
			}
			if cmd.Flags().Changed("geocoder-url") {
				if err := service.SetConfig(sqldb, service.ConfigGeocoderBaseURL, cfgGeocoderURL); err != nil {
					return err
				}
				updates++
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d config value(s)\n", updates)
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			cfg, err := service.ListConfig(sqldb)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(cfg))
			for k := range cfg {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, cfg[k])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)

	configSetCmd.Flags().StringVar(&cfgLengthUnit, "length-unit", "", "Display unit for catch length (e.g. cm, in)")
	configSetCmd.Flags().StringVar(&cfgWeightUnit, "weight-unit", "", "Display unit for catch weight (e.g. kg, lb)")
	configSetCmd.Flags().StringVar(&cfgDefaultLocation, "default-location", "", "Location name used when trip add omits --location")
	configSetCmd.Flags().StringVar(&cfgGeocoderURL, "geocoder-url", "", "Reverse geocoding base URL")
}
