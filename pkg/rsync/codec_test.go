package rsync

import (
	"bytes"
	"testing"
)

func TestSignatureSerializationRoundTrip(t *testing.T) {
	sig := NewSignature(4)
	sig.ContentHash = []byte{1, 2, 3, 4, 5}
	sig.Add(100, 1000, 0)
	sig.Add(100, 2000, 1)
	sig.Add(200, 3000, 2)

	decoded, err := DecodeSignature(EncodeSignature(sig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decoded.BlockSize != sig.BlockSize {
		t.Errorf("block size = %d, want %d", decoded.BlockSize, sig.BlockSize)
	}
	if !bytes.Equal(decoded.ContentHash, sig.ContentHash) {
		t.Errorf("content hash = %v, want %v", decoded.ContentHash, sig.ContentHash)
	}
	if decoded.Count() != sig.Count() {
		t.Errorf("entry count = %d, want %d", decoded.Count(), sig.Count())
	}
	for weak, inner := range sig.Entries {
		for strong, index := range inner {
			gotIndex, ok := decoded.Lookup(weak, strong)
			if !ok || gotIndex != index {
				t.Errorf("Lookup(%d, %d) = (%d, %v), want (%d, true)", weak, strong, gotIndex, ok, index)
			}
		}
	}
}

func TestSignatureWithoutContentHashRoundTrips(t *testing.T) {
	sig := NewSignature(4)
	sig.Add(1, 2, 0)

	decoded, err := DecodeSignature(EncodeSignature(sig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded.ContentHash) != 0 {
		t.Errorf("content hash = %v, want empty", decoded.ContentHash)
	}
}

func TestDeltaSerializationRoundTrip(t *testing.T) {
	d := NewDelta(4)
	d.ContentHash = []byte{9, 8, 7}
	d.AddInsert(0, []byte{1, 2, 3})
	d.AddInsert(5, []byte{4, 5})
	d.AddDelete(2, 3)

	decoded, err := DecodeDelta(EncodeDelta(d))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decoded.BlockSize != d.BlockSize {
		t.Errorf("block size = %d, want %d", decoded.BlockSize, d.BlockSize)
	}
	if !bytes.Equal(decoded.ContentHash, d.ContentHash) {
		t.Errorf("content hash = %v, want %v", decoded.ContentHash, d.ContentHash)
	}
	if len(decoded.Inserts) != len(d.Inserts) {
		t.Fatalf("insert count = %d, want %d", len(decoded.Inserts), len(d.Inserts))
	}
	for key, data := range d.Inserts {
		got, ok := decoded.Inserts[key]
		if !ok || !bytes.Equal(got, data) {
			t.Errorf("Inserts[%d] = %v, want %v", key, got, data)
		}
	}
	for key, run := range d.Deletes {
		if got := decoded.Deletes[key]; got != run {
			t.Errorf("Deletes[%d] = %d, want %d", key, got, run)
		}
	}
}

func TestDeltaNeverStoresEmptyInsertOrDelete(t *testing.T) {
	d := NewDelta(4)
	d.AddInsert(0, nil)
	d.AddDelete(0, 0)
	if len(d.Inserts) != 0 || len(d.Deletes) != 0 {
		t.Fatalf("expected no entries, got inserts=%v deletes=%v", d.Inserts, d.Deletes)
	}
}

func TestDecodeSignatureRejectsMalformedLengthPrefix(t *testing.T) {
	buf := []byte{0, 0, 0, 0, 0, 0, 0, 1}
	if _, err := DecodeSignature(buf); !IsKind(err, KindMalformedBuffer) {
		t.Fatalf("expected KindMalformedBuffer, got %v", err)
	}
}

func TestDecodeDeltaRejectsMalformedLengthPrefix(t *testing.T) {
	buf := []byte{0, 0, 0, 0, 0, 0, 0, 1}
	if _, err := DecodeDelta(buf); !IsKind(err, KindMalformedBuffer) {
		t.Fatalf("expected KindMalformedBuffer, got %v", err)
	}
}

func TestDecodeSignatureRejectsEmptyBuffer(t *testing.T) {
	if _, err := DecodeSignature(nil); !IsKind(err, KindEmptyInput) {
		t.Fatalf("expected KindEmptyInput, got %v", err)
	}
}

func TestDecodeSignatureRejectsTruncatedBody(t *testing.T) {
	sig := NewSignature(4)
	sig.Add(1, 2, 0)
	encoded := EncodeSignature(sig)
	truncated := encoded[:len(encoded)-1]
	if _, err := DecodeSignature(truncated); !IsKind(err, KindMalformedBuffer) {
		t.Fatalf("expected KindMalformedBuffer, got %v", err)
	}
}
