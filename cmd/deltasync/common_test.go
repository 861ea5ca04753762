package main

import (
	"bytes"
	"testing"
)

func TestParseHexHashEmpty(t *testing.T) {
	hash, err := parseHexHash("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash != nil {
		t.Errorf("hash = %v, want nil", hash)
	}
}

func TestParseHexHashValid(t *testing.T) {
	hash, err := parseHexHash("0a0b0c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(hash, []byte{0x0a, 0x0b, 0x0c}) {
		t.Errorf("hash = %v, want [10 11 12]", hash)
	}
}

func TestParseHexHashInvalid(t *testing.T) {
	if _, err := parseHexHash("not-hex"); err == nil {
		t.Fatal("expected an error for invalid hex input")
	}
}

func TestLoadDefaultsMissingFile(t *testing.T) {
	defaults, err := loadDefaults("/nonexistent/path/does-not-exist.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if defaults.Integrity {
		t.Error("expected zero-value defaults for a missing file")
	}
}
