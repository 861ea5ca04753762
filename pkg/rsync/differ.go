package rsync

// Diff drives window against signature to build a Delta describing how to
// reconstruct the new file from the base file the signature was built over.
// When integrity is true, the signature's content hash is copied onto the
// resulting delta.
func Diff(signature *Signature, window WindowSource, integrity bool) (*Delta, error) {
	delta := NewDelta(signature.BlockSize)
	if integrity {
		delta.ContentHash = signature.ContentHash
	}

	var pendingLiterals []byte
	lastMatchedIndex := int64(-1)
	rolling := NewRollingHash(signature.BlockSize)

	emitMatch := func(j uint32) {
		if int64(j) > lastMatchedIndex+1 {
			delta.AddDelete(uint32(lastMatchedIndex+1), j-uint32(lastMatchedIndex+1))
		}

		pendingLiterals = pendingLiterals[:len(pendingLiterals)-int(signature.BlockSize)]

		if len(pendingLiterals) > 0 {
			delta.AddInsert(uint32(lastMatchedIndex+1), pendingLiterals)
			pendingLiterals = nil
		}

		lastMatchedIndex = int64(j)
	}

	for {
		advanced, err := window.Advance()
		if err != nil {
			return nil, err
		}
		if !advanced {
			break
		}

		rolling.Slide(window.RolledOut(), window.Latest())
		pendingLiterals = append(pendingLiterals, window.Latest())
		weak := rolling.Sum()

		if _, ok := signature.Entries[weak]; !ok {
			continue
		}

		frame := window.Window()
		strong := StrongHash(frame)
		j, ok := signature.Lookup(weak, strong)
		if !ok {
			continue
		}

		// A match at or before lastMatchedIndex would produce a negative or
		// overlapping delete range, so it's treated as a weak/strong
		// collision and ignored; the byte already appended to
		// pendingLiterals simply stays pending.
		if int64(j) <= lastMatchedIndex {
			continue
		}

		emitMatch(j)
	}

	blockCount := signature.Count()
	if uint32(lastMatchedIndex+1) < blockCount {
		delta.AddDelete(uint32(lastMatchedIndex+1), blockCount-uint32(lastMatchedIndex+1))
	}
	if len(pendingLiterals) > 0 {
		delta.AddInsert(uint32(lastMatchedIndex+1), pendingLiterals)
	}

	return delta, nil
}
