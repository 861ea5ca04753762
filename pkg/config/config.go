// Package config loads optional on-disk defaults for the deltasync
// command-line tool from a single YAML document.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Defaults holds the subset of sign/diff/patch behavior that can be
// preconfigured in a YAML defaults file, so that command-line flags only
// need to override what differs from the project's conventions.
type Defaults struct {
	// BlockSize is the default block size to request when signing, in the
	// absence of an explicit --block-size flag. Zero means "derive from the
	// base file's size."
	BlockSize ByteSize `yaml:"blockSize"`
	// Integrity is the default value of the --integrity flag across all
	// three subcommands.
	Integrity bool `yaml:"integrity"`
	// MaxLiteralRun is a size limit for a single pending-literal insert run.
	// It is parsed from the defaults file, but no subcommand reads it: it has no
	// effect on deltas and no warning is emitted when a run exceeds it.
	MaxLiteralRun ByteSize `yaml:"maxLiteralRun"`
}

// Load reads and parses a YAML defaults file at path. A missing file is not
// an error: it simply yields the zero-value Defaults.
func Load(path string) (*Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Defaults{}, nil
		}
		return nil, errors.Wrap(err, "unable to read configuration file")
	}

	defaults := &Defaults{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(defaults); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "unable to parse configuration file")
	}

	return defaults, nil
}
