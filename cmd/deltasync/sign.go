package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/deltasync/deltasync/pkg/config"
	"github.com/deltasync/deltasync/pkg/rsync"
)

// signMain is the entry point for the sign command.
func signMain(_ *cobra.Command, arguments []string) error {
	if len(arguments) != 2 {
		return errors.New("invalid number of arguments (expected base file and signature output path)")
	}
	basePath, outputPath := arguments[0], arguments[1]

	defaults, err := loadDefaults(signConfiguration.configurationFile)
	if err != nil {
		return fmt.Errorf("unable to load configuration: %w", err)
	}

	requestedBlockSize := uint64(defaults.BlockSize)
	if signConfiguration.blockSize != 0 {
		requestedBlockSize = uint64(signConfiguration.blockSize)
	}
	blockSize, err := rsync.ValidateBlockSize(requestedBlockSize)
	if err != nil {
		return fmt.Errorf("invalid block size: %w", err)
	}

	integrity := defaults.Integrity || signConfiguration.integrity

	ok, err := confirmOverwrite(outputPath, signConfiguration.force)
	if err != nil {
		return err
	} else if !ok {
		return errors.New("aborted: signature output already exists")
	}

	logger := invocationLogger("sign")
	logger.Printf("signing %s with block size %s", basePath, humanize.Bytes(uint64(blockSize)))

	err = withStatusLine(fmt.Sprintf("Signing %s...", basePath), func() error {
		return rsync.SignFile(basePath, outputPath, integrity, blockSize)
	})
	if err != nil {
		return fmt.Errorf("unable to compute signature: %w", err)
	}

	logger.Println("signature written to", outputPath)
	return nil
}

var signCommand = &cobra.Command{
	Use:          "sign <base> <signature>",
	Short:        "Compute the block signature of a base file",
	RunE:         signMain,
	SilenceUsage: true,
}

var signConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// blockSize overrides the derived block size, if non-zero.
	blockSize config.ByteSize
	// integrity enables recording a whole-file content hash in the
	// signature for later use during patch.
	integrity bool
	// force skips the interactive overwrite confirmation.
	force bool
	// configurationFile is an explicit path to a YAML defaults file.
	configurationFile string
}

func init() {
	flags := signCommand.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&signConfiguration.help, "help", "h", false, "Show help information")
	flags.VarP(&signConfiguration.blockSize, "block-size", "b", "Specify the block size (e.g. 4KiB); derived from the base file's size if unspecified")
	flags.BoolVarP(&signConfiguration.integrity, "integrity", "i", false, "Record a whole-file content hash for later integrity checking")
	flags.BoolVarP(&signConfiguration.force, "force", "f", false, "Overwrite the signature output without prompting")
	flags.StringVarP(&signConfiguration.configurationFile, "config", "c", "", "Specify a YAML defaults file (defaults to .deltasync.yaml)")
}
