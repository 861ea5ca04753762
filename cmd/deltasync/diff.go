package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deltasync/deltasync/pkg/rsync"
)

// diffMain is the entry point for the diff command.
func diffMain(_ *cobra.Command, arguments []string) error {
	if len(arguments) != 3 {
		return errors.New("invalid number of arguments (expected signature, new file, and delta output path)")
	}
	signaturePath, newPath, outputPath := arguments[0], arguments[1], arguments[2]

	defaults, err := loadDefaults(diffConfiguration.configurationFile)
	if err != nil {
		return fmt.Errorf("unable to load configuration: %w", err)
	}
	integrity := defaults.Integrity || diffConfiguration.integrity

	ok, err := confirmOverwrite(outputPath, diffConfiguration.force)
	if err != nil {
		return err
	} else if !ok {
		return errors.New("aborted: delta output already exists")
	}

	logger := invocationLogger("diff")
	logger.Printf("diffing %s against signature %s", newPath, signaturePath)

	err = withStatusLine(fmt.Sprintf("Diffing %s...", newPath), func() error {
		return rsync.DiffFile(signaturePath, newPath, outputPath, integrity)
	})
	if err != nil {
		return fmt.Errorf("unable to compute delta: %w", err)
	}

	logger.Println("delta written to", outputPath)
	return nil
}

var diffCommand = &cobra.Command{
	Use:          "diff <signature> <new> <delta>",
	Short:        "Diff a file against a signature, producing a delta",
	RunE:         diffMain,
	SilenceUsage: true,
}

var diffConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// integrity enables recording a whole-file content hash in the delta,
	// carried over from the signature if it has one.
	integrity bool
	// force skips the interactive overwrite confirmation.
	force bool
	// configurationFile is an explicit path to a YAML defaults file.
	configurationFile string
}

func init() {
	flags := diffCommand.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&diffConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVarP(&diffConfiguration.integrity, "integrity", "i", false, "Record a whole-file content hash in the delta")
	flags.BoolVarP(&diffConfiguration.force, "force", "f", false, "Overwrite the delta output without prompting")
	flags.StringVarP(&diffConfiguration.configurationFile, "config", "c", "", "Specify a YAML defaults file (defaults to .deltasync.yaml)")
}
