package rsync

import (
	"os"
	"path/filepath"
)

// Sink appends byte sequences in call order to reconstruct the new file. It
// does not support seeking; bytes are written in the order Patcher produces
// them.
type Sink interface {
	// Append writes data to the sink, in order.
	Append(data []byte) error
	// Finalize commits the sink's contents, making them visible under the
	// sink's final destination. Implementations that buffer writes to a
	// temporary location perform their atomic commit here; a partially
	// written output must never be visible to the caller before Finalize
	// succeeds.
	Finalize() error
	// Abort discards any buffered or temporary output. It is safe to call
	// after a successful Finalize (a no-op in that case) and is intended for
	// use on error paths.
	Abort() error
}

// fileSink is the production Sink implementation. It writes to a temporary
// file alongside the destination and renames it into place on Finalize, so
// that a reader of the destination path never observes a partially written
// file reported as success.
type fileSink struct {
	path      string
	temporary *os.File
	done      bool
}

// OpenSink creates a Sink that will, on Finalize, atomically replace path
// with the bytes appended to it.
func OpenSink(path string) (Sink, error) {
	temporary, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".deltasync-tmp-")
	if err != nil {
		return nil, wrapErr("OpenSink", KindIO, err)
	}
	return &fileSink{path: path, temporary: temporary}, nil
}

// Append implements Sink.Append.
func (s *fileSink) Append(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if _, err := s.temporary.Write(data); err != nil {
		return wrapErr("Sink.Append", KindIO, err)
	}
	return nil
}

// Finalize implements Sink.Finalize.
func (s *fileSink) Finalize() error {
	if err := s.temporary.Close(); err != nil {
		os.Remove(s.temporary.Name())
		return wrapErr("Sink.Finalize", KindIO, err)
	}
	if err := os.Rename(s.temporary.Name(), s.path); err != nil {
		os.Remove(s.temporary.Name())
		return wrapErr("Sink.Finalize", KindIO, err)
	}
	s.done = true
	return nil
}

// Abort implements Sink.Abort.
func (s *fileSink) Abort() error {
	if s.done {
		return nil
	}
	s.temporary.Close()
	return os.Remove(s.temporary.Name())
}

// InMemorySink is a Sink backed by an in-memory byte buffer, used by tests
// that exercise the Patcher without touching disk.
type InMemorySink struct {
	data []byte
}

// NewInMemorySink constructs an empty InMemorySink.
func NewInMemorySink() *InMemorySink {
	return &InMemorySink{}
}

// Append implements Sink.Append.
func (s *InMemorySink) Append(data []byte) error {
	s.data = append(s.data, data...)
	return nil
}

// Finalize implements Sink.Finalize.
func (s *InMemorySink) Finalize() error {
	return nil
}

// Abort implements Sink.Abort.
func (s *InMemorySink) Abort() error {
	s.data = nil
	return nil
}

// Bytes returns the bytes appended to the sink so far.
func (s *InMemorySink) Bytes() []byte {
	return s.data
}
