// Command atcgen drives the ATC Generator, Symbolic Execution Engine,
// and Z3-backed Concretizer over a YAML specification: `generate` runs
// the full pipeline through to a concrete, self-checking test program;
// `print` stops after ATC generation for a quick look at scope-renaming
// and prime-rewriting before spending any solver time.
//
// Grounded on crytic-medusa/cmd's rootCmd/subcommand layout
// (cmd/root.go, cmd/fuzz.go): a package-level *cobra.Command tree, each
// subcommand's RunE wrapping errors with github.com/pkg/errors before
// they surface, SilenceUsage/SilenceErrors set so cobra doesn't
// double-print what the logger already reported.
package main

import (
	"github.com/atcgen-project/atcgen/internal/tlog"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "atcgen",
	Short: "Generate concrete, self-checking test programs from a declarative API specification",
	Long:  "atcgen lowers a YAML specification into an Abstract Test Case, symbolically executes it, and drives a Z3 solver to concretize every input() into a runnable, self-checking test program.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		tlog.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level tracing of symbolic execution and solving")
}
