package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/hilthontt/powersite/internal/infrastructure/persistence/migration"
	"github.com/hilthontt/powersite/internal/infrastructure/persistence/seed"
	"github.com/spf13/cobra"
)

var clearInbound bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace site content with sample data",
	Long: `Clears every curated table and inserts representative records.

Contact messages and job applications are kept unless --clear-inbound is set.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&clearInbound, "clear-inbound", false, "also delete contact messages and job applications")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	deps, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer deps.close()

	if err := migration.Up(ctx, deps.db, deps.logger); err != nil {
		return err
	}

	summary, err := seed.Run(ctx, deps.db, deps.logger, time.Now(), clearInbound)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	sort.Strings(names)

	out := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintf(out, "  %-15s %d\n", name, summary[name])
	}
	fmt.Fprintln(out, "Database seeded successfully.")
	return nil
}
