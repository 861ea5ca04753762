package rsync

// Signature is a per-block index of a base file's (weak, strong) hashes plus
// metadata: small enough to transmit or retain where the base file itself
// cannot be. It is produced by Signer, consumed by Differ, and discarded.
type Signature struct {
	// ContentHash is the 32-byte whole-file digest of the base file, or nil
	// if integrity checking was disabled when the signature was built.
	ContentHash []byte
	// BlockSize is the chunk length, in bytes, used to build this
	// signature.
	BlockSize uint16
	// Entries maps weak hash -> strong hash -> block index. A single weak
	// value may collide across multiple blocks, hence the nested map.
	Entries map[uint32]map[uint64]uint32
}

// NewSignature constructs an empty Signature for the given block size.
func NewSignature(blockSize uint16) *Signature {
	return &Signature{
		BlockSize: blockSize,
		Entries:   make(map[uint32]map[uint64]uint32),
	}
}

// Add records the block at index for the given weak/strong hash pair.
func (s *Signature) Add(weak uint32, strong uint64, index uint32) {
	inner, ok := s.Entries[weak]
	if !ok {
		inner = make(map[uint64]uint32)
		s.Entries[weak] = inner
	}
	inner[strong] = index
}

// Lookup returns the block index recorded for the given weak/strong hash
// pair, and whether one was found.
func (s *Signature) Lookup(weak uint32, strong uint64) (uint32, bool) {
	inner, ok := s.Entries[weak]
	if !ok {
		return 0, false
	}
	index, ok := inner[strong]
	return index, ok
}

// Count returns the total number of (weak, strong) entries in the
// signature, i.e. the number of blocks indexed. This is the sole
// authoritative source of the base file's block count: the signature does
// not store it separately.
func (s *Signature) Count() uint32 {
	var count uint32
	for _, inner := range s.Entries {
		count += uint32(len(inner))
	}
	return count
}

// Clear resets the signature to its zero-value state, as if newly
// constructed with block size 0.
func (s *Signature) Clear() {
	s.ContentHash = nil
	s.BlockSize = 0
	s.Entries = make(map[uint32]map[uint64]uint32)
}

// IsEmpty reports whether the signature has no recorded blocks.
func (s *Signature) IsEmpty() bool {
	return len(s.Entries) == 0
}
