// Civctl is a CI-V controller for ICOM handheld transceivers.
//
// It talks to an ID-52 family radio over a USB serial port (or a
// WebSocket serial bridge), reads and sets frequency, mode, levels,
// tone squelch, and repeater settings, and can continuously watch the
// radio's state.
//
// Usage:
//
//	civctl [command] [flags]
//
// Running without arguments prints a one-shot status report.
// See 'civctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kc3vo/civctl/internal/logging"
	"github.com/kc3vo/civctl/internal/version"
)

func main() {
	logging.InitializeFromEnv()
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "civctl",
	Short: "CI-V controller for ICOM handheld transceivers",
	Long: `Control an ICOM ID-52 family transceiver over its CI-V serial
interface.

Connects via USB serial (with automatic port and bit-rate detection)
or a WebSocket serial bridge, and provides one-shot reads, setters,
and a continuous state watch.

If no command is specified, a one-shot status report is printed.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: print status when no subcommand provided
		return runStatus(cmd, args)
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
		fmt.Printf("civctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
