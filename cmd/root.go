// Package cmd wires the tpar pipeline stages into a cobra CLI (spec.md §6):
// two pipeline-variant subcommands sharing --verbose; --stats is printed by
// optimise only, optimise-no-h does not print statistics.
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/consensys/tpar/logger"
)

var (
	statsFlag   bool
	verboseFlag bool
	cacheFlag   string
)

var rootCmd = &cobra.Command{
	Use:           "tpar",
	Short:         "T-gate optimiser for Clifford+T circuits",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			logger.Set(logger.Logger().Level(zerolog.DebugLevel))
		} else {
			logger.Set(logger.Logger().Level(zerolog.InfoLevel))
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&statsFlag, "stats", false, "print qubit/gate counts and both T-depth measures")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "write per-stage progress to stderr")
	rootCmd.PersistentFlags().StringVar(&cacheFlag, "cache", "", "read/write a parsed circuit from/to a CBOR cache file")
	rootCmd.AddCommand(optimiseCmd, optimiseNoHCmd)
}

// Execute runs the root command, returning the exit code main should use.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}
	return 0
}
