package config

import (
	"github.com/dustin/go-humanize"
)

// ByteSize is a uint64 value that supports unmarshalling from both
// human-friendly string representations ("4KiB", "1MiB") and numeric
// representations. It can be cast to a uint64, where it represents a byte
// count.
type ByteSize uint64

// String implements fmt.Stringer.
func (s ByteSize) String() string {
	return humanize.Bytes(uint64(s))
}

// UnmarshalText implements encoding.TextUnmarshaler, used when loading from
// YAML files or parsing command-line flag values.
func (s *ByteSize) UnmarshalText(textBytes []byte) error {
	value, err := humanize.ParseBytes(string(textBytes))
	if err != nil {
		return err
	}
	*s = ByteSize(value)
	return nil
}

// Set implements pflag.Value, so ByteSize can be used directly as a flag
// type (e.g. --block-size 4KiB).
func (s *ByteSize) Set(text string) error {
	return s.UnmarshalText([]byte(text))
}

// Type implements pflag.Value.
func (s ByteSize) Type() string {
	return "byte-size"
}
