package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/simonhull/statmeta/internal/types"
)

// ErrNotOpen is returned by File reads before Open or after Close.
var ErrNotOpen = errors.New("source not open")

// File reads from a random-access store with bounds checking.
//
// All reads go through io.ReaderAt, so the operating system file offset is
// never moved; the cursor lives in the File itself.
type File struct {
	r    io.ReaderAt
	f    *os.File // set when File opened the path itself
	path string
	size int64
	pos  int64
}

// NewFile creates a File that opens the path given to Open.
func NewFile() *File {
	return &File{}
}

// NewReaderAt creates a File already bound to r. Open then only resets the
// cursor, and Close never closes r: the caller keeps ownership.
func NewReaderAt(r io.ReaderAt, size int64, path string) *File {
	return &File{
		r:    r,
		size: size,
		path: path,
	}
}

// Open opens path for reading and resets the cursor.
func (s *File) Open(path string) error {
	s.pos = 0
	if s.r != nil && s.f == nil {
		// Bound with NewReaderAt.
		return nil
	}

	if err := s.Close(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat file: %w", err)
	}

	s.f = f
	s.r = f
	s.path = path
	s.size = stat.Size()
	return nil
}

// Close resets the cursor and closes the file opened by Open. It is
// idempotent.
func (s *File) Close() error {
	s.pos = 0
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	s.r = nil
	return err
}

// Seek moves the cursor and returns the new absolute position.
func (s *File) Seek(offset int64, whence Whence) (int64, error) {
	pos, err := seekTarget(s.path, s.pos, s.size, offset, whence)
	if err != nil {
		return 0, err
	}
	s.pos = pos
	return pos, nil
}

// Read copies up to len(p) bytes from the cursor and advances it.
func (s *File) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, ErrNotOpen
	}

	available := s.size - s.pos
	if available <= 0 || len(p) == 0 {
		return 0, nil
	}
	if int64(len(p)) > available {
		p = p[:available]
	}

	if err := s.readAt(p, s.pos, "data"); err != nil {
		return 0, err
	}
	s.pos += int64(len(p))
	return len(p), nil
}

// Update reports cursor/totalSize to progress.
func (s *File) Update(totalSize int64, progress ProgressHandler) error {
	return report(s.pos, totalSize, progress)
}

// Size returns the size of the open file.
func (s *File) Size() int64 {
	return s.size
}

// Path returns the path associated with this source.
func (s *File) Path() string {
	return s.path
}

// readAt fills b from off, describing failures with what.
func (s *File) readAt(b []byte, off int64, what string) error {
	if off < 0 || off >= s.size {
		return &types.OutOfBoundsError{
			Path: s.path, What: what, Offset: off, Length: len(b), Size: s.size,
		}
	}
	if off+int64(len(b)) > s.size {
		return &types.OutOfBoundsError{
			Path: s.path, What: what, Offset: off, Length: len(b), Size: s.size,
		}
	}

	n, err := s.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", s.path, what, off, err)
	}

	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d bytes, expected %d",
			s.path, what, off, n, len(b))
	}

	return nil
}
