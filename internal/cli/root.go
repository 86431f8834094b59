// Package cli implements the ghosttype-cli command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ghosttype-cli",
	Short: "Scripted auto-typing without the tray app",
	Long: `ghosttype-cli drives the GhostType pacing engine from the terminal:
after a countdown it types the given text into whatever window has
focus. The desktop app's settings file is not consulted; every run
is configured entirely by flags.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
