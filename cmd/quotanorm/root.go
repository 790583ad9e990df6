package main

import (
	"github.com/spf13/cobra"

	"github.com/capops/quotanorm/internal/logging"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "quotanorm",
	Short: "Normalize capacity request exports",
	Long: `quotanorm turns quota request exports into the canonical seven-column
table (Subscription ID, Request Type, VM Type, Region, Zone, Cores, Status).

Both raw ticketing exports and already-normalized tables are accepted; the
input shape and delimiter are detected automatically.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logging.Setup(level, "text")
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
