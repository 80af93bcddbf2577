// Divelink downloads dive logs from Uwatec Smart family dive computers.
//
// It discovers serial-over-IP bridges with a dive computer in IrDA range,
// downloads the device memory (incrementally, using the fingerprint of the
// newest dive already seen), and decodes the delta-coded profile streams
// into time/depth/event samples.
//
// Usage:
//
//	divelink [command] [flags]
//
// See 'divelink --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/divelog/divelink/internal/logging"
	"github.com/divelog/divelink/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "divelink",
	Short: "Dive computer download utility",
	Long: `Download and decode dive logs from Uwatec Smart family dive computers.

Dive computers are reached through serial-over-IP bridges discovered via
mDNS, or directly by address. Downloads are incremental: the fingerprint of
the newest dive is remembered per device, and later downloads only fetch
dives logged after it.`,
	Version: version.Version,
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
		fmt.Printf("divelink %s\n", version.Full())
	},
}
