package config

import "testing"

func TestByteSizeUnmarshalText(t *testing.T) {
	var s ByteSize
	if err := s.UnmarshalText([]byte("4KiB")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != 4096 {
		t.Errorf("s = %d, want 4096", s)
	}
}

func TestByteSizeUnmarshalTextNumeric(t *testing.T) {
	var s ByteSize
	if err := s.UnmarshalText([]byte("1024")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != 1024 {
		t.Errorf("s = %d, want 1024", s)
	}
}

func TestByteSizeUnmarshalTextInvalid(t *testing.T) {
	var s ByteSize
	if err := s.UnmarshalText([]byte("not-a-size")); err == nil {
		t.Fatal("expected an error for invalid input")
	}
}
