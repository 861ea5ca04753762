package rsync

import "os"

// ReadAll loads the complete contents of path into memory, for callers that
// need to decode a serialized signature or delta.
func ReadAll(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, wrapErr("ReadAll", KindNotFound, err)
		}
		return nil, wrapErr("ReadAll", KindIO, err)
	}
	return data, nil
}

// SignFile computes the signature of the file at basePath and writes its
// encoded form to outPath. If blockSize is 0, it is derived from the base
// file's size.
func SignFile(basePath, outPath string, integrity bool, blockSize uint16) error {
	source, err := OpenBlockSource(basePath, blockSize)
	if err != nil {
		return err
	}
	if closer, ok := source.(*fileBlockSource); ok {
		defer closer.Close()
	}

	signature, err := Sign(source, integrity)
	if err != nil {
		return err
	}

	sink, err := OpenSink(outPath)
	if err != nil {
		return err
	}
	if err := sink.Append(EncodeSignature(signature)); err != nil {
		sink.Abort()
		return err
	}
	return sink.Finalize()
}

// DiffFile decodes the signature at signaturePath, diffs the file at
// newPath against it, and writes the encoded delta to outPath.
func DiffFile(signaturePath, newPath, outPath string, integrity bool) error {
	raw, err := ReadAll(signaturePath)
	if err != nil {
		return err
	}
	signature, err := DecodeSignature(raw)
	if err != nil {
		return err
	}

	window, err := OpenWindowSource(newPath, signature.BlockSize)
	if err != nil {
		return err
	}
	if closer, ok := window.(*fileWindowSource); ok {
		defer closer.Close()
	}

	delta, err := Diff(signature, window, integrity)
	if err != nil {
		return err
	}

	sink, err := OpenSink(outPath)
	if err != nil {
		return err
	}
	if err := sink.Append(EncodeDelta(delta)); err != nil {
		sink.Abort()
		return err
	}
	return sink.Finalize()
}

// PatchFile decodes the delta at deltaPath, applies it to the file at
// basePath, and writes the reconstructed file to outPath. baseHash, if
// non-nil, is used in place of recomputing the base file's content hash when
// integrity is true.
func PatchFile(basePath, deltaPath, outPath string, integrity bool, baseHash []byte) error {
	raw, err := ReadAll(deltaPath)
	if err != nil {
		return err
	}
	delta, err := DecodeDelta(raw)
	if err != nil {
		return err
	}

	source, err := OpenBlockSource(basePath, delta.BlockSize)
	if err != nil {
		return err
	}
	if closer, ok := source.(*fileBlockSource); ok {
		defer closer.Close()
	}

	sink, err := OpenSink(outPath)
	if err != nil {
		return err
	}

	if err := Patch(delta, source, sink, integrity, baseHash); err != nil {
		sink.Abort()
		return err
	}
	return sink.Finalize()
}
