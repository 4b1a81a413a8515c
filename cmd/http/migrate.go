package main

import (
	"github.com/hilthontt/powersite/internal/infrastructure/persistence/migration"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer deps.close()

		return migration.Up(cmd.Context(), deps.db, deps.logger)
	},
}
