package rsync

import (
	"bytes"
	"io"
	"os"
)

// BlockSource yields successive non-overlapping blocks of a base file. The
// final yielded block may be shorter than BlockSize, and may be empty if the
// file length is an exact multiple of BlockSize, in which case the empty
// yield signals end of input. Implementations are single-use and owned
// exclusively by whichever operation (Signer or Patcher) is driving them.
type BlockSource interface {
	// Next returns the next block of data, or a zero-length slice once the
	// source is exhausted. The returned slice is only valid until the next
	// call to Next.
	Next() ([]byte, error)
	// BlockSize returns the configured block size.
	BlockSize() uint16
	// ContentHash computes the whole-file content hash of the underlying
	// data, independently of block iteration (it does not consume Next).
	ContentHash() ([]byte, error)
}

// fileBlockSource is the production BlockSource implementation, backed by an
// open file.
type fileBlockSource struct {
	path      string
	file      *os.File
	blockSize uint16
	buffer    []byte
}

// OpenBlockSource opens path and returns a BlockSource over it using the
// given block size. If blockSize is 0, it is derived from the file's size per
// DeriveBlockSize.
func OpenBlockSource(path string, blockSize uint16) (BlockSource, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, wrapErr("OpenBlockSource", KindNotFound, err)
		}
		return nil, wrapErr("OpenBlockSource", KindIO, err)
	}

	if blockSize == 0 {
		info, err := file.Stat()
		if err != nil {
			file.Close()
			return nil, wrapErr("OpenBlockSource", KindIO, err)
		}
		blockSize = DeriveBlockSize(uint64(info.Size()))
	}

	return &fileBlockSource{
		path:      path,
		file:      file,
		blockSize: blockSize,
		buffer:    make([]byte, blockSize),
	}, nil
}

// Next implements BlockSource.Next.
func (s *fileBlockSource) Next() ([]byte, error) {
	n, err := io.ReadFull(s.file, s.buffer)
	if err == io.EOF {
		return nil, nil
	} else if err == io.ErrUnexpectedEOF {
		return s.buffer[:n], nil
	} else if err != nil {
		return nil, wrapErr("BlockSource.Next", KindIO, err)
	}
	return s.buffer[:n], nil
}

// BlockSize implements BlockSource.BlockSize.
func (s *fileBlockSource) BlockSize() uint16 {
	return s.blockSize
}

// ContentHash implements BlockSource.ContentHash by reopening the
// underlying file and hashing it in a single independent pass.
func (s *fileBlockSource) ContentHash() ([]byte, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, wrapErr("BlockSource.ContentHash", KindIO, err)
	}
	defer file.Close()
	hash, err := ContentHash(file)
	if err != nil {
		return nil, wrapErr("BlockSource.ContentHash", KindIO, err)
	}
	return hash, nil
}

// Close releases the underlying file. It is not part of the BlockSource
// interface because in-memory test implementations have nothing to release,
// but production callers should close any source they open.
func (s *fileBlockSource) Close() error {
	return s.file.Close()
}

// InMemoryBlockSource is a BlockSource backed by an in-memory byte slice,
// used by tests that exercise the Signer and Patcher without touching disk.
type InMemoryBlockSource struct {
	data      []byte
	blockSize uint16
	offset    int
}

// NewInMemoryBlockSource constructs an InMemoryBlockSource over data using
// the given block size. If blockSize is 0, it is derived from len(data).
func NewInMemoryBlockSource(data []byte, blockSize uint16) *InMemoryBlockSource {
	if blockSize == 0 {
		blockSize = DeriveBlockSize(uint64(len(data)))
	}
	return &InMemoryBlockSource{data: data, blockSize: blockSize}
}

// Next implements BlockSource.Next.
func (s *InMemoryBlockSource) Next() ([]byte, error) {
	if s.offset >= len(s.data) {
		return nil, nil
	}
	end := s.offset + int(s.blockSize)
	if end > len(s.data) {
		end = len(s.data)
	}
	block := s.data[s.offset:end]
	s.offset = end
	return block, nil
}

// BlockSize implements BlockSource.BlockSize.
func (s *InMemoryBlockSource) BlockSize() uint16 {
	return s.blockSize
}

// ContentHash implements BlockSource.ContentHash over the in-memory data.
func (s *InMemoryBlockSource) ContentHash() ([]byte, error) {
	return ContentHash(bytes.NewReader(s.data))
}
