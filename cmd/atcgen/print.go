package main

import (
	"os"

	"github.com/atcgen-project/atcgen/internal/printer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	printSpecPath string
	printAPIDir   string
	printTests    string
)

var printCmd = &cobra.Command{
	Use:           "print",
	Short:         "Generate an ATC and print it without solving",
	Long:          "print runs only the ATC Generator stage — scope-correct renaming and prime-variable rewriting — and prints the result, useful for checking a spec before spending any solver time.",
	RunE:          runPrint,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	printCmd.Flags().StringVar(&printSpecPath, "spec", "", "path to the YAML specification (required)")
	printCmd.Flags().StringVar(&printAPIDir, "api-dir", "", "optional directory of Go source implementing the API, used only to discover real parameter types")
	printCmd.Flags().StringVar(&printTests, "tests", "", "comma-separated sequence of block names to run, in order (required)")
	_ = printCmd.MarkFlagRequired("spec")
	_ = printCmd.MarkFlagRequired("tests")
	rootCmd.AddCommand(printCmd)
}

func runPrint(cmd *cobra.Command, args []string) error {
	prog, _, err := buildATC(printSpecPath, printAPIDir, splitTestString(printTests))
	if err != nil {
		return errors.Wrap(err, "print")
	}
	return printer.Print(os.Stdout, prog)
}
