package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	isatty "github.com/mattn/go-isatty"

	"github.com/deltasync/deltasync/cmd"
	"github.com/deltasync/deltasync/pkg/config"
	"github.com/deltasync/deltasync/pkg/logging"
)

// rootLogger is the base logger for the deltasync CLI. Each invocation of a
// subcommand derives a sublogger tagged with a fresh correlation id, so that
// concurrent invocations (e.g. from a build script running many in
// parallel) can be told apart in captured output.
var rootLogger = &logging.Logger{}

// invocationLogger returns a sublogger scoped to a single command invocation,
// named after the subcommand and tagged with a random correlation id.
func invocationLogger(subcommand string) *logging.Logger {
	return rootLogger.Sublogger(fmt.Sprintf("%s.%s", subcommand, uuid.New().String()[:8]))
}

// defaultConfigurationPath is the file checked for on-disk defaults when
// --config isn't specified explicitly.
const defaultConfigurationPath = ".deltasync.yaml"

// loadDefaults loads defaults from path, or from defaultConfigurationPath if
// path is empty. A missing file yields the zero-value Defaults without
// error. During shell completion, the defaults file isn't read at all: Cobra
// invokes the command's flow to enumerate completions, and there's no reason
// to pay for a stat/read (or report a parse error) just to list flags.
func loadDefaults(path string) (*config.Defaults, error) {
	if cmd.PerformingShellCompletion {
		return &config.Defaults{}, nil
	}
	if path == "" {
		path = defaultConfigurationPath
	}
	return config.Load(path)
}

// parseHexHash decodes a hex-encoded content hash supplied on the command
// line (e.g. via --base-hash). An empty string yields a nil hash, meaning
// "derive it from the base file instead."
func parseHexHash(text string) ([]byte, error) {
	if text == "" {
		return nil, nil
	}
	decoded, err := hex.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("invalid hex-encoded hash: %w", err)
	}
	return decoded, nil
}

// confirmOverwrite checks whether path already exists and, if so, asks the
// user for confirmation before it's overwritten. If force is true, or if
// standard input isn't an interactive terminal, existing files are
// overwritten without prompting (scripts invoking deltasync non-interactively
// are assumed to already know what they're doing).
func confirmOverwrite(path string, force bool) (bool, error) {
	_, statErr := os.Stat(path)
	exists := statErr == nil
	if !exists && !os.IsNotExist(statErr) {
		return false, fmt.Errorf("unable to stat output path: %w", statErr)
	}

	if force {
		if exists {
			cmd.Warning(fmt.Sprintf("%s already exists and will be overwritten", path))
		}
		return true, nil
	}
	if !exists {
		return true, nil
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return true, nil
	}

	fmt.Printf("%s already exists. Overwrite? [y/N] ", path)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("unable to read confirmation: %w", err)
	}
	response := strings.ToLower(strings.TrimSpace(line))
	return response == "y" || response == "yes", nil
}

// withStatusLine prints message to a dynamically updating status line for
// the duration of work, clearing it on success and breaking to a new line
// (leaving the message visible above any error output) on failure.
func withStatusLine(message string, work func() error) error {
	printer := &cmd.StatusLinePrinter{}
	printer.Print(message)
	err := work()
	if err != nil {
		printer.BreakIfNonEmpty()
		return err
	}
	printer.Clear()
	return nil
}
