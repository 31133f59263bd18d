package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/mattn/go-isatty"

	"github.com/spf13/cobra"

	"github.com/rsdiff-io/rsdiff/cmd"
	"github.com/rsdiff-io/rsdiff/pkg/configuration"
	"github.com/rsdiff-io/rsdiff/pkg/logging"
	"github.com/rsdiff-io/rsdiff/pkg/rsdiff"
)

// globalConfiguration is the loaded global configuration. It is populated in
// main before any command runs.
var globalConfiguration = &configuration.Configuration{}

func rootMain(command *cobra.Command, arguments []string) error {
	// If no commands were given, then print help information and bail. We
	// don't have to worry about warning about arguments being present here
	// (which would be incorrect usage) because arguments can't even reach
	// this point (they will be mistaken for subcommands and an error will be
	// displayed).
	command.Help()

	// Success.
	return nil
}

var rootCommand = &cobra.Command{
	Use:   "rsdiff",
	Short: "rsdiff computes compact binary deltas using block signatures.",
	Run:   cmd.Mainify(rootMain),
}

var rootConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

// versionCommand prints the rsdiff version. It's simple enough to define
// inline rather than in its own file.
var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(command *cobra.Command, arguments []string) {
		fmt.Println(rsdiff.Version)
	},
}

func init() {
	// Grab a handle for the command line flags.
	flags := rootCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")

	// Disable Cobra's command sorting behavior. By default, it sorts commands
	// alphabetically in the help output.
	cobra.EnableCommandSorting = false

	// Register commands. We do this here (rather than in individual init
	// functions) so that we can control the order.
	rootCommand.AddCommand(
		signatureCommand,
		deltaCommand,
		patchCommand,
		versionCommand,
	)
}

func main() {
	// Disable colorization if standard error isn't a terminal, since that's
	// where warnings and log output land.
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		color.NoColor = true
	}

	// Load the global configuration, if any, and apply the configured log
	// level. A corrupt configuration file is worth a warning but shouldn't
	// block command execution.
	if path, err := configuration.GlobalConfigurationPath(); err == nil {
		if loaded, err := configuration.Load(path); err != nil {
			cmd.Warning("unable to load global configuration: %v", err)
		} else {
			globalConfiguration = loaded
		}
	}
	if name := globalConfiguration.Log.Level; name != "" {
		if level, err := logging.ParseLevel(name); err == nil {
			logging.SetLevel(level)
		}
	}

	// Execute the root command.
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
