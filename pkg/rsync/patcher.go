package rsync

import "bytes"

// Patch drives source (over the base file) and delta to reconstruct the new
// file into sink. When integrity is true, the base file's content hash is
// compared against delta.ContentHash before anything is written to sink;
// baseHash, if non-nil, is used in place of recomputing the hash from
// source.
func Patch(delta *Delta, source BlockSource, sink Sink, integrity bool, baseHash []byte) error {
	if integrity {
		hash := baseHash
		if hash == nil {
			computed, err := source.ContentHash()
			if err != nil {
				return err
			}
			hash = computed
		}
		if !bytes.Equal(hash, delta.ContentHash) {
			return wrapErr("Patch", KindIntegrityMismatch, nil)
		}
	}

	var index uint32
	block, err := source.Next()
	if err != nil {
		return err
	}

	for len(block) > 0 {
		if insert, ok := delta.Inserts[index]; ok {
			if err := sink.Append(insert); err != nil {
				return err
			}
		}

		if runLength, ok := delta.Deletes[index]; ok {
			index += runLength
			for i := uint32(0); i < runLength; i++ {
				block, err = source.Next()
				if err != nil {
					return err
				}
			}
		} else {
			if err := sink.Append(block); err != nil {
				return err
			}
			index++
			block, err = source.Next()
			if err != nil {
				return err
			}
		}
	}

	if insert, ok := delta.Inserts[index]; ok {
		if err := sink.Append(insert); err != nil {
			return err
		}
	}

	return nil
}
