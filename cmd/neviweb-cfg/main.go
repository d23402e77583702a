// Neviweb-cfg is a setup utility for Neviweb home automation accounts.
//
// It provides an interactive setup wizard, polling option editing, and
// registry management commands for Sinopé Neviweb accounts. The tool
// signs in to the Neviweb cloud service over HTTPS and stores completed
// configurations in a local YAML registry.
//
// Usage:
//
//	neviweb-cfg [command] [flags]
//
// Running without arguments launches the interactive setup wizard.
// See 'neviweb-cfg --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nevihome/neviweb/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "neviweb-cfg",
	Short: "Neviweb Account Setup Utility",
	Long: `A standalone utility for configuring Neviweb home automation accounts.

Provides an interactive setup wizard, polling option editing, and registry
management commands for Sinopé Neviweb accounts.

If no command is specified, the setup wizard will launch automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the setup wizard when no subcommand provided
		return runSetup(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("neviweb-cfg %s (commit: %s)\n", version.Version, version.Commit)
	},
}
