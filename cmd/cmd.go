// Package cmd provides shared helpers for rsdiff command line entry points.
// All diagnostics go to standard error so that command output on standard
// output stays machine-consumable.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/spf13/cobra"

	flag "github.com/spf13/pflag"
)

// Warning prints a formatted warning message to standard error.
func Warning(format string, v ...interface{}) {
	fmt.Fprintln(color.Error, color.YellowString("Warning:"), fmt.Sprintf(format, v...))
}

// Fatal prints an error to standard error and then terminates the process
// with an error exit code.
func Fatal(err error) {
	fmt.Fprintln(color.Error, color.RedString("Error:"), err)
	os.Exit(1)
}

// Mainify adapts an error-returning command entry point to the signature
// Cobra expects, converting a returned error into a fatal exit. Entry points
// keep their defer-based cleanup because they return normally before the
// process terminates.
func Mainify(entry func(*cobra.Command, []string) error) func(*cobra.Command, []string) {
	return func(command *cobra.Command, arguments []string) {
		if err := entry(command, arguments); err != nil {
			Fatal(err)
		}
	}
}

// BlockSizeFlag registers the standard block size override flag on the
// specified flag set. A zero value defers block sizing to configuration and
// then to the automatic heuristic.
func BlockSizeFlag(flags *flag.FlagSet, target *uint64) {
	flags.Uint64VarP(target, "block-size", "b", 0, "Override the block size")
}
