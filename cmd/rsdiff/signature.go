package main

import (
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

// effectiveBlockSize resolves the block size for a base of the specified
// length from (in order of preference) an explicit flag value, the global
// configuration, and the automatic sizing heuristic.
func effectiveBlockSize(flagValue, baseLength uint64) uint64 {
	if flagValue != 0 {
		return flagValue
	}
	if configured := globalConfiguration.Diff.BlockSize; configured != 0 {
		return configured
	}
	return delta.OptimalBlockSize(baseLength)
}

func signatureMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 2 {
		return errors.New("invalid number of arguments")
	}
	basePath := arguments[0]
	signaturePath := arguments[1]

	// Create a logger.
	logger := logging.RootLogger.Sublogger("signature")

	// Read the base.
	base, err := os.ReadFile(basePath)
	if err != nil {
		return errors.Wrap(err, "unable to read base file")
	}

	// Compute and index the signature.
	blockSize := effectiveBlockSize(signatureConfiguration.blockSize, uint64(len(base)))
	logger.Debug("hashing %d byte(s) with block size %d", len(base), blockSize)
	signature := delta.NewSignature(base, blockSize)
	indexed := signature.Index()

	// Save it.
	if err := encoding.SaveSignature(signaturePath, indexed); err != nil {
		return errors.Wrap(err, "unable to save signature")
	}

	// Print a summary.
	fmt.Printf(
		"Signed %s in %d block(s) of %s\n",
		humanize.Bytes(uint64(len(base))),
		len(signature.Blocks),
		humanize.Bytes(blockSize),
	)

	// Success.
	return nil
}

var signatureCommand = &cobra.Command{
	Use:   "signature <base> <signature>",
	Short: "Compute the block signature of a base file",
	Run:   cmd.Mainify(signatureMain),
}

var signatureConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// blockSize is the requested block size. A zero value defers to the
	// global configuration and then to automatic sizing.
	blockSize uint64
}

func init() {
	// Grab a handle for the command line flags.
	flags := signatureCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&signatureConfiguration.help, "help", "h", false, "Show help information")

	// Wire up signature flags.
	cmd.BlockSizeFlag(flags, &signatureConfiguration.blockSize)
}
