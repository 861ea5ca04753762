package rsync

// Sign drives source to build a Signature. When integrity is true, it also
// computes and stores the base file's whole-file content hash via an
// independent pass (source.ContentHash), since BlockSource.Next does not
// rewind.
func Sign(source BlockSource, integrity bool) (*Signature, error) {
	signature := NewSignature(source.BlockSize())

	if integrity {
		hash, err := source.ContentHash()
		if err != nil {
			return nil, err
		}
		signature.ContentHash = hash
	}

	var index uint32
	for {
		block, err := source.Next()
		if err != nil {
			return nil, err
		}
		if len(block) == 0 {
			break
		}

		weak := HashBlock(block)
		strong := StrongHash(block)
		signature.Add(weak, strong, index)
		index++
	}

	return signature, nil
}
