package cmd

import (
	"fmt"

	"github.com/mmwale/expense-tracker/internal"
	"github.com/mmwale/expense-tracker/internal/storage/sqlite"
	"github.com/mmwale/expense-tracker/pkg/logger"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var rollback bool

	c := &cobra.Command{
		Use:         "migrate",
		Short:       "Apply (or roll back) the sqlite storage schema",
		Annotations: map[string]string{skipStoreAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd.Context())
			if a.cfg.Storage.Backend != internal.BackendSQLite {
				return fmt.Errorf("migrate needs the sqlite backend, configured backend is %q", a.cfg.Storage.Backend)
			}

			db, err := sqlite.OpenDB(a.cfg.Storage.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			if rollback {
				if err := sqlite.Rollback(cmd.Context(), db); err != nil {
					return err
				}
				logger.From(cmd.Context()).Info("rolled back latest migration", "path", a.cfg.Storage.Path)
				return nil
			}

			if err := sqlite.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			logger.From(cmd.Context()).Info("migrations applied", "path", a.cfg.Storage.Path)
			return nil
		},
	}

	c.Flags().BoolVarP(&rollback, "rollback", "r", false, "roll back the latest migration")
	return c
}
