package cli

import (
	"fmt"

	"customerapi/internal/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the customers table",
	Long: `Run GORM auto-migration for the customers table and its unique email index
against DATABASE_DSN, then exit without starting the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Database.Driver == database.DriverMemory {
			return fmt.Errorf("nothing to migrate for driver %s", database.DriverMemory)
		}

		db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, log)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Ping(cmd.Context(), db); err != nil {
			return fmt.Errorf("database is not reachable: %w", err)
		}
		if err := database.Migrate(db); err != nil {
			return err
		}

		log.Info("database schema migrated", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}
