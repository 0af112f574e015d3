// Command drinks runs the drinks web service and its maintenance tasks.
package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var rootCmd = &cobra.Command{
	Use:          "drinks",
	Short:        "Drinks resource service",
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, routesCmd, emailPreviewCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
