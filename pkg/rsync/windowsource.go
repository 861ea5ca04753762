package rsync

import (
	"container/list"
	"io"
	"os"
)

// WindowSource exposes a byte-by-byte stream over the new file with a
// sliding window of the signature's block size. It is consumed exclusively
// by the Differ.
type WindowSource interface {
	// Advance attempts to read the next byte. If the window is already full,
	// the oldest byte is evicted and becomes available via RolledOut. It
	// returns true iff a new byte was consumed.
	Advance() (bool, error)
	// Latest returns the most recently consumed byte. Its value is undefined
	// before the first successful Advance.
	Latest() byte
	// RolledOut returns the byte evicted by the most recent Advance. Its
	// value is undefined before the window has filled for the first time.
	RolledOut() byte
	// Window returns a snapshot of the current window's bytes, in order,
	// with length at most the configured window size.
	Window() []byte
}

// fileWindowSource is the production WindowSource implementation, backed by
// an open file and a bounded in-memory ring of pending bytes.
type fileWindowSource struct {
	file       *os.File
	windowSize int
	frame      *list.List
	latest     byte
	rolledOut  byte
	readBuf    [1]byte
}

// OpenWindowSource opens path and returns a WindowSource over it using the
// given window (block) size.
func OpenWindowSource(path string, windowSize uint16) (WindowSource, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, wrapErr("OpenWindowSource", KindNotFound, err)
		}
		return nil, wrapErr("OpenWindowSource", KindIO, err)
	}
	return &fileWindowSource{
		file:       file,
		windowSize: int(windowSize),
		frame:      list.New(),
	}, nil
}

// Advance implements WindowSource.Advance.
func (s *fileWindowSource) Advance() (bool, error) {
	n, err := s.file.Read(s.readBuf[:])
	if n == 0 {
		if err == io.EOF || err == nil {
			return false, nil
		}
		return false, wrapErr("WindowSource.Advance", KindIO, err)
	}

	s.latest = s.readBuf[0]
	s.frame.PushBack(s.latest)
	if s.frame.Len() > s.windowSize {
		front := s.frame.Front()
		s.rolledOut = front.Value.(byte)
		s.frame.Remove(front)
	}
	return true, nil
}

// Latest implements WindowSource.Latest.
func (s *fileWindowSource) Latest() byte {
	return s.latest
}

// RolledOut implements WindowSource.RolledOut.
func (s *fileWindowSource) RolledOut() byte {
	return s.rolledOut
}

// Window implements WindowSource.Window.
func (s *fileWindowSource) Window() []byte {
	window := make([]byte, 0, s.frame.Len())
	for e := s.frame.Front(); e != nil; e = e.Next() {
		window = append(window, e.Value.(byte))
	}
	return window
}

// Close releases the underlying file.
func (s *fileWindowSource) Close() error {
	return s.file.Close()
}

// InMemoryWindowSource is a WindowSource backed by an in-memory byte slice,
// used by tests that exercise the Differ without touching disk.
type InMemoryWindowSource struct {
	data       []byte
	offset     int
	windowSize int
	frame      *list.List
	latest     byte
	rolledOut  byte
}

// NewInMemoryWindowSource constructs an InMemoryWindowSource over data using
// the given window (block) size.
func NewInMemoryWindowSource(data []byte, windowSize uint16) *InMemoryWindowSource {
	return &InMemoryWindowSource{
		data:       data,
		windowSize: int(windowSize),
		frame:      list.New(),
	}
}

// Advance implements WindowSource.Advance.
func (s *InMemoryWindowSource) Advance() (bool, error) {
	if s.offset >= len(s.data) {
		return false, nil
	}
	s.latest = s.data[s.offset]
	s.offset++
	s.frame.PushBack(s.latest)
	if s.frame.Len() > s.windowSize {
		front := s.frame.Front()
		s.rolledOut = front.Value.(byte)
		s.frame.Remove(front)
	}
	return true, nil
}

// Latest implements WindowSource.Latest.
func (s *InMemoryWindowSource) Latest() byte {
	return s.latest
}

// RolledOut implements WindowSource.RolledOut.
func (s *InMemoryWindowSource) RolledOut() byte {
	return s.rolledOut
}

// Window implements WindowSource.Window.
func (s *InMemoryWindowSource) Window() []byte {
	window := make([]byte, 0, s.frame.Len())
	for e := s.frame.Front(); e != nil; e = e.Next() {
		window = append(window, e.Value.(byte))
	}
	return window
}
