package cmd

import (
	"fmt"
	"time"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/expense/sqlstore"
	"github.com/spf13/cobra"
)

const migrateTimeout = 2 * time.Minute

func newMigrateCmd(app *application) *cobra.Command {
	var (
		migrateRollback bool
		migrateStatus   bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded SQL migrations to the configured database",
		Long: `Apply the embedded goose migrations for storage.driver sqlite or postgres.
The json driver has no schema.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.cfg.Storage
			if cfg.Driver == internal.StorageDriverJSON {
				return fmt.Errorf("migrate needs storage.driver sqlite or postgres, got %q", cfg.Driver)
			}

			db, err := sqlstore.Open(cfg.Driver, cfg.Source, false)
			if err != nil {
				return err
			}
			store := sqlstore.NewStore(db)
			defer store.Close()

			ctx, cancel := internal.WithTimeout(cmd.Context(), migrateTimeout)
			defer cancel()
			switch {
			case migrateStatus:
			case migrateRollback:
				if err := sqlstore.Rollback(ctx, db, cfg.Driver); err != nil {
					return err
				}
			default:
				if err := sqlstore.Migrate(ctx, db, cfg.Driver); err != nil {
					return err
				}
			}

			version, err := sqlstore.MigrationVersion(ctx, db, cfg.Driver)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s schema at version %d\n", cfg.Driver, version)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "roll back the latest migration")
	cmd.Flags().BoolVar(&migrateStatus, "status", false, "only print the current schema version")
	return cmd
}
