package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/pkg/errors"

	"github.com/spf13/cobra"

	"github.com/rsdiff-io/rsdiff/cmd"
	"github.com/rsdiff-io/rsdiff/pkg/delta"
	"github.com/rsdiff-io/rsdiff/pkg/encoding"
	"github.com/rsdiff-io/rsdiff/pkg/logging"
)

func deltaMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 2 {
		return errors.New("invalid number of arguments")
	}
	signaturePath := arguments[0]
	targetPath := arguments[1]

	// Create a logger.
	logger := logging.RootLogger.Sublogger("delta")

	// Load the signature.
	signature, err := encoding.LoadSignature(signaturePath)
	if err != nil {
		return errors.Wrap(err, "unable to load signature")
	}
	logger.Debug(
		"loaded signature: base %d byte(s), block size %d",
		signature.OriginalLength, signature.BlockSize,
	)

	// Open the target for streaming.
	target, err := os.Open(targetPath)
	if err != nil {
		return errors.Wrap(err, "unable to open target file")
	}
	defer target.Close()

	// Compute the delta.
	operations, err := delta.Diff(signature, bufio.NewReader(target))
	if err != nil {
		return errors.Wrap(err, "unable to compute delta")
	}

	// Summarize the script.
	var inserts, removes int
	var insertedBytes, removedBytes uint64
	for i := range operations {
		operation := &operations[i]
		switch operation.Kind() {
		case delta.Insert:
			inserts++
			insertedBytes += uint64(len(operation.Data))
		case delta.Remove:
			removes++
			removedBytes += operation.Length
		}
		if deltaConfiguration.verbose {
			switch operation.Kind() {
			case delta.Insert:
				fmt.Printf("insert @%d: %s\n", operation.Offset, humanize.Bytes(uint64(len(operation.Data))))
			case delta.Remove:
				fmt.Printf("remove @%d: %s\n", operation.Offset, humanize.Bytes(operation.Length))
			}
		}
	}
	fmt.Printf(
		"%d operation(s): %d insert(s) (%s), %d removal(s) (%s)\n",
		len(operations),
		inserts, humanize.Bytes(insertedBytes),
		removes, humanize.Bytes(removedBytes),
	)

	// Success.
	return nil
}

var deltaCommand = &cobra.Command{
	Use:   "delta <signature> <target>",
	Short: "Compute the delta from a signed base to a target file",
	Run:   cmd.Mainify(deltaMain),
}

var deltaConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// verbose indicates whether or not individual operations should be
	// printed.
	verbose bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := deltaCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&deltaConfiguration.help, "help", "h", false, "Show help information")

	// Wire up delta flags.
	flags.BoolVarP(&deltaConfiguration.verbose, "verbose", "v", false, "Print individual operations")
}
