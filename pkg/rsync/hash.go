package rsync

import (
	"github.com/cespare/xxhash/v2"
)

// weakModulus is M in the rsync thesis: the largest prime below 2^16. Both
// 16-bit sums making up the weak hash are reduced modulo this value.
const weakModulus = 65521

// RollingHash computes the Adler-like weak checksum over a sliding window of
// bytes, supporting an O(1) slide-by-one-byte update. The zero value is not
// usable; construct one with NewRollingHash.
type RollingHash struct {
	a, s      uint16
	window    uint16
	fillCount uint16
}

// NewRollingHash constructs a RollingHash for a window of the given size.
func NewRollingHash(window uint16) *RollingHash {
	return &RollingHash{window: window}
}

// Slide advances the window by one byte: outByte is the byte leaving the
// window (ignored during the initial priming phase, before the window has
// filled for the first time), and inByte is the byte entering it.
func (h *RollingHash) Slide(outByte, inByte byte) {
	a, s := uint32(h.a), uint32(h.s)
	if h.fillCount < h.window {
		h.fillCount++
	} else {
		a = (a + weakModulus - uint32(outByte)) % weakModulus
		s = (s + weakModulus - uint32(h.window)*uint32(outByte)%weakModulus) % weakModulus
	}
	a = (a + uint32(inByte)) % weakModulus
	s = (s + a) % weakModulus
	h.a, h.s = uint16(a), uint16(s)
}

// Sum returns the current 32-bit weak hash value: a | (s << 16).
func (h *RollingHash) Sum() uint32 {
	return uint32(h.a) | (uint32(h.s) << 16)
}

// HashBlock computes the weak hash of a standalone buffer from scratch,
// without any rolling state. After a RollingHash has been primed over the
// same bytes, RollingHash.Sum and HashBlock must agree bit-for-bit.
func HashBlock(block []byte) uint32 {
	var a, s uint32
	for _, b := range block {
		a = (a + uint32(b)) % weakModulus
		s = (s + a) % weakModulus
	}
	return uint32(a) | (uint32(s) << 16)
}

// StrongHash computes the 64-bit non-cryptographic digest used to confirm a
// weak-hash hit before treating two blocks as equal. It is seeded with 0 and
// is stable across runs and platforms.
func StrongHash(block []byte) uint64 {
	return xxhash.Sum64(block)
}
