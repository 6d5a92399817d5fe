package migrate

import (
	"fmt"

	"github.com/crucial707/equipment-registry/internal/db"
	"github.com/spf13/cobra"
)

// Runner applies schema changes to the database at url.
type Runner struct {
	Up      func(url string) error
	Down    func(url string) error
	Version func(url string) (uint, bool, error)
}

// DefaultRunner uses the embedded migrations of internal/db.
var DefaultRunner = Runner{Up: db.Migrate, Down: db.MigrateDown, Version: db.MigrationVersion}

// ==========================
// Init Migrate
// ==========================
func InitMigrate(rootCmd *cobra.Command, databaseURL func() string) {
	rootCmd.AddCommand(migrateCmd(databaseURL, DefaultRunner))
}

func migrateCmd(databaseURL func() string, run Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run.Up(databaseURL()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration (drops the equipment table)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := run.Down(databaseURL()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations rolled back")
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				v, dirty, err := run.Version(databaseURL())
				if err != nil {
					return err
				}
				if dirty {
					fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty)\n", v)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d\n", v)
				return nil
			},
		},
	)
	return cmd
}
