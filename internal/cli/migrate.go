package cli

import (
	"github.com/spf13/cobra"

	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}

			if err := dbpkg.Migrate(db); err != nil {
				return err
			}

			logger.Info("schema up to date")
			return nil
		},
	}
}
