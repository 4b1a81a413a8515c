package main

import (
	"expvar"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

const serviceName = "powersite-api"

var configFlag string

var rootCmd = &cobra.Command{
	Use:   "powersite",
	Short: "Content backend for the power company website",
	Long: `powersite serves the public content API and the staff admin API.

Available subcommands:
  serve          - Run the HTTP server (default)
  migrate        - Create or update the database schema
  seed           - Replace site content with sample data
  hash-password  - Print a bcrypt hash for a staff account`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to config.yaml (default: POWERSITE_CONFIG or ./config.yaml)")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, hashPasswordCmd)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
