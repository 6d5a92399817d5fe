package root

import (
	"context"

	"github.com/crucial707/equipment-registry/cmd/cli/config"
	"github.com/crucial707/equipment-registry/cmd/cli/equipment"
	"github.com/crucial707/equipment-registry/cmd/cli/migrate"
	"github.com/spf13/cobra"
)

// RootCmd is the inventory command tree.
var RootCmd = &cobra.Command{
	Use:           "inventory",
	Short:         "Equipment inventory admin CLI",
	Long:          "Command line interface for migrating, listing, importing and exporting equipment records",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	equipment.InitEquipment(RootCmd, func(ctx context.Context) (equipment.Service, func() error, error) {
		return config.OpenService(ctx)
	})
	migrate.InitMigrate(RootCmd, config.DatabaseURL)
}

// GetRoot returns the RootCmd.
func GetRoot() *cobra.Command {
	return RootCmd
}
