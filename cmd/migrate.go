package cmd

import (
	"fmt"

	"search-schema/core/metastore/sqlstore"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd prepares the metadata store schema.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the metadata store tables and the default full-text index",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	db, closeDB, err := openDB(cfg.Store)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := sqlstore.Migrate(cmd.Context(), db); err != nil {
		return fmt.Errorf("failed to migrate metadata store: %w", err)
	}
	l.Info("metadata store ready",
		zap.String("driver", cfg.Store.Driver),
		zap.String("name", cfg.Store.Name),
	)
	return nil
}
