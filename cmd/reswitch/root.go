package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "reswitch",
	Short: "reswitch - dispatch text over an ordered set of regular expressions",
	Long: `reswitch matches input against a switch: an ordered list of regular
expressions and literals compiled into one combined pattern. For every input
it reports which alternative fired, the groups that alternative captured and
the value tagged onto it.

Switches are declared in YAML definitions files. A set of built-in switches
is used when --defs is not given.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func warnf(format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(os.Stderr, "[warn] "+format+"\n", args...)
}

func infof(format string, args ...any) {
	if !verbose || quiet {
		return
	}
	fmt.Fprintf(os.Stderr, "[info] "+format+"\n", args...)
}
