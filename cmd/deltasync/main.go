package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deltasync/deltasync/cmd"
	"github.com/deltasync/deltasync/pkg/logging"
)

// version is the release version of the deltasync tool. It is overridden at
// build time via -ldflags for tagged releases.
var version = "dev"

func rootMain(command *cobra.Command, arguments []string) {
	// Print version information, if requested.
	if rootConfiguration.version {
		fmt.Println(version)
		return
	}

	// If no flags were set, then print help information and bail. Stray
	// positional arguments never reach this point: DisallowArguments rejects
	// them before rootMain is invoked.
	command.Help()
}

var rootCommand = &cobra.Command{
	Use:   "deltasync",
	Short: "deltasync computes and applies rsync-style file deltas",
	Args:  cmd.DisallowArguments,
	Run:   rootMain,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		level, ok := logging.NameToLevel(rootConfiguration.logLevel)
		if !ok {
			return fmt.Errorf("invalid log level: %s", rootConfiguration.logLevel)
		}
		logging.CurrentLevel = level
		return nil
	},
}

var rootConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// version indicates whether or not to show version information and
	// exit.
	version bool
	// logLevel controls which log statements are emitted. See
	// logging.NameToLevel for the accepted values.
	logLevel string
}

func init() {
	// Bind flags to configuration. We manually add help to override the
	// default message, but Cobra still implements it automatically.
	flags := rootCommand.Flags()
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVarP(&rootConfiguration.version, "version", "V", false, "Show version information")

	// The log level applies to subcommands too, so it's a persistent flag
	// rather than one local to the root command.
	rootCommand.PersistentFlags().StringVar(&rootConfiguration.logLevel, "log-level", "info", "Specify log level (disabled|info|debug)")

	// Disable Cobra's command sorting behavior so that subcommands are
	// listed in the order we register them below.
	cobra.EnableCommandSorting = false

	// Disable Cobra's use of mousetrap, which enforces that the executable
	// only be launched from a console. This tool is frequently invoked from
	// scripts and other non-interactive contexts.
	cobra.MousetrapHelpText = ""

	rootCommand.AddCommand(
		signCommand,
		diffCommand,
		patchCommand,
	)
}

func main() {
	// Relaunch inside a terminal compatibility emulator if necessary.
	cmd.HandleTerminalCompatibility()

	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
