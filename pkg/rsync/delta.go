package rsync

// Delta is a minimal edit script over block indices of a base file that
// reconstructs the new file: an ordered set of literal byte insertions and
// block-run deletions. It is produced by Differ, optionally persisted via
// Codec, and consumed by Patcher.
type Delta struct {
	// ContentHash is copied from the originating Signature when integrity
	// checking was enabled, or nil otherwise.
	ContentHash []byte
	// BlockSize is inherited from the originating Signature.
	BlockSize uint16
	// Inserts maps block index -> literal byte sequence to emit immediately
	// before that index is reached. A sequence is never empty.
	Inserts map[uint32][]byte
	// Deletes maps block index -> run length, in blocks of the base file, to
	// skip starting at that index. A run length is never 0.
	Deletes map[uint32]uint32
}

// NewDelta constructs an empty Delta for the given block size.
func NewDelta(blockSize uint16) *Delta {
	return &Delta{
		BlockSize: blockSize,
		Inserts:   make(map[uint32][]byte),
		Deletes:   make(map[uint32]uint32),
	}
}

// AddInsert records a literal byte sequence to be inserted at index. It is a
// no-op if data is empty, preserving the invariant that Delta never contains
// a zero-length insert.
func (d *Delta) AddInsert(index uint32, data []byte) {
	if len(data) == 0 {
		return
	}
	buffer := make([]byte, len(data))
	copy(buffer, data)
	d.Inserts[index] = buffer
}

// AddDelete records a run of runLength blocks of the base file, starting at
// index, to be skipped. It is a no-op if runLength is 0, preserving the
// invariant that Delta never contains a zero-count delete.
func (d *Delta) AddDelete(index, runLength uint32) {
	if runLength == 0 {
		return
	}
	d.Deletes[index] = runLength
}

// Clear resets the delta to its zero-value state.
func (d *Delta) Clear() {
	d.ContentHash = nil
	d.BlockSize = 0
	d.Inserts = make(map[uint32][]byte)
	d.Deletes = make(map[uint32]uint32)
}

// IsEmpty reports whether the delta describes no changes at all.
func (d *Delta) IsEmpty() bool {
	return len(d.Inserts) == 0 && len(d.Deletes) == 0
}
