package fishlog

import (
	"database/sql"
	"fmt"

	"github.com/pcannon/fishlog-cli/internal/service"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Foreign key violations: %d\n", report.ForeignKeyViolations)
			fmt.Fprintf(cmd.OutOrStdout(), "Invalid boolean rows: %d\n", report.InvalidBooleanRows)
			fmt.Fprintf(cmd.OutOrStdout(), "Malformed time rows: %d\n", report.MalformedTimeRows)
			if !report.Clean() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
