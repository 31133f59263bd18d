package main

import (
	"bytes"
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

func patchMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 3 {
		return errors.New("invalid number of arguments")
	}
	basePath := arguments[0]
	modifiedPath := arguments[1]
	outputPath := arguments[2]

	// Create a logger.
	logger := logging.RootLogger.Sublogger("patch")

	// Read both files.
	base, err := os.ReadFile(basePath)
	if err != nil {
		return errors.Wrap(err, "unable to read base file")
	}
	modified, err := os.ReadFile(modifiedPath)
	if err != nil {
		return errors.Wrap(err, "unable to read modified file")
	}

	// Run a full cycle: sign the base, diff the modified file against the
	// signature, and apply the resulting script to the base.
	blockSize := effectiveBlockSize(patchConfiguration.blockSize, uint64(len(base)))
	logger.Debug("using block size %d", blockSize)
	signature := delta.NewSignature(base, blockSize).Index()
	operations, err := delta.Diff(signature, bytes.NewReader(modified))
	if err != nil {
		return errors.Wrap(err, "unable to compute delta")
	}
	patched, err := delta.Apply(base, operations)
	if err != nil {
		return errors.Wrap(err, "unable to apply delta")
	}

	// The applied script must reproduce the modified file exactly.
	if !bytes.Equal(patched, modified) {
		return errors.New("patched output does not match modified file")
	}

	// Write the output atomically.
	if err := encoding.MarshalAndSave(outputPath, func() ([]byte, error) {
		return patched, nil
	}); err != nil {
		return errors.Wrap(err, "unable to write output file")
	}

	// Print a summary.
	fmt.Printf(
		"Patched %s into %s using %d operation(s)\n",
		humanize.Bytes(uint64(len(base))),
		humanize.Bytes(uint64(len(patched))),
		len(operations),
	)

	// Success.
	return nil
}

var patchCommand = &cobra.Command{
	Use:   "patch <base> <modified> <output>",
	Short: "Run a full signature/delta/patch cycle between two files",
	Run:   cmd.Mainify(patchMain),
}

var patchConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// blockSize is the requested block size. A zero value defers to the
	// global configuration and then to automatic sizing.
	blockSize uint64
}

func init() {
	// Grab a handle for the command line flags.
	flags := patchCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&patchConfiguration.help, "help", "h", false, "Show help information")

	// Wire up patch flags.
	cmd.BlockSizeFlag(flags, &patchConfiguration.blockSize)
}
