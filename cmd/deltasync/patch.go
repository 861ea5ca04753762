package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deltasync/deltasync/pkg/rsync"
)

// patchMain is the entry point for the patch command.
func patchMain(_ *cobra.Command, arguments []string) error {
	if len(arguments) != 3 {
		return errors.New("invalid number of arguments (expected base file, delta, and output path)")
	}
	basePath, deltaPath, outputPath := arguments[0], arguments[1], arguments[2]

	defaults, err := loadDefaults(patchConfiguration.configurationFile)
	if err != nil {
		return fmt.Errorf("unable to load configuration: %w", err)
	}
	integrity := defaults.Integrity || patchConfiguration.integrity

	baseHash, err := parseHexHash(patchConfiguration.baseHash)
	if err != nil {
		return err
	}

	ok, err := confirmOverwrite(outputPath, patchConfiguration.force)
	if err != nil {
		return err
	} else if !ok {
		return errors.New("aborted: patch output already exists")
	}

	logger := invocationLogger("patch")
	logger.Printf("patching %s with delta %s", basePath, deltaPath)

	err = withStatusLine(fmt.Sprintf("Patching %s...", basePath), func() error {
		return rsync.PatchFile(basePath, deltaPath, outputPath, integrity, baseHash)
	})
	if err != nil {
		if rsync.IsKind(err, rsync.KindIntegrityMismatch) {
			return fmt.Errorf("base file does not match the delta's recorded content hash: %w", err)
		}
		return fmt.Errorf("unable to apply delta: %w", err)
	}

	logger.Println("reconstructed file written to", outputPath)
	return nil
}

var patchCommand = &cobra.Command{
	Use:          "patch <base> <delta> <output>",
	Short:        "Apply a delta to a base file, reconstructing the new file",
	RunE:         patchMain,
	SilenceUsage: true,
}

var patchConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// integrity forces the base file's content hash to be checked against
	// the delta's recorded hash before anything is written, even if the
	// delta itself wasn't built with integrity checking enabled.
	integrity bool
	// baseHash is a hex-encoded content hash to use in place of recomputing
	// the base file's hash, supplied when the caller has already computed
	// it elsewhere (e.g. alongside the signature).
	baseHash string
	// force skips the interactive overwrite confirmation.
	force bool
	// configurationFile is an explicit path to a YAML defaults file.
	configurationFile string
}

func init() {
	flags := patchCommand.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&patchConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVarP(&patchConfiguration.integrity, "integrity", "i", false, "Verify the base file's content hash before patching")
	flags.StringVar(&patchConfiguration.baseHash, "base-hash", "", "Specify a hex-encoded base file content hash, instead of recomputing it")
	flags.BoolVarP(&patchConfiguration.force, "force", "f", false, "Overwrite the patch output without prompting")
	flags.StringVarP(&patchConfiguration.configurationFile, "config", "c", "", "Specify a YAML defaults file (defaults to .deltasync.yaml)")
}
