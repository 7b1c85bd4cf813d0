package main

import (
	"os"

	"github.com/spf13/cobra"

	"builtinreg/internal/version"
)

var (
	traceCleanup   func()
	profileCleanup func()
)

func runCleanups() {
	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}
	if profileCleanup != nil {
		profileCleanup()
		profileCleanup = nil
	}
}

var rootCmd = &cobra.Command{
	Use:   "builtinreg",
	Short: "Inspect the compiler builtin registry",
	Long: `builtinreg builds the builtin function registry for a language mode and
target pair and lets you list, query and browse it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupColor(cmd); err != nil {
			return err
		}
		stopProfiles, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		profileCleanup = stopProfiles
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		runCleanups()
	},
}

// main registers subcommands and global flags, then runs the root command.
// Any command error exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "path to builtinreg.toml (default: search upward from the working directory)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept in ring mode")

	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")

	if err := rootCmd.Execute(); err != nil {
		runCleanups()
		os.Exit(1)
	}
}
