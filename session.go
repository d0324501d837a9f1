package statmeta

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/simonhull/statmeta/internal/logger"
	"github.com/simonhull/statmeta/internal/metrics"
	"github.com/simonhull/statmeta/internal/mrset"
	"github.com/simonhull/statmeta/internal/source"
)

// Session binds one Source and drives reads and MR decoding over it.
//
// The session owns its source from NewSession until Release. A session is
// not safe for concurrent use; independent sessions may run in parallel.
//
//	s, err := statmeta.OpenBuffer(blob)
//	if err != nil {
//		return err
//	}
//	defer s.Release()
//
//	data, err := s.ReadAll()
//	if err != nil {
//		return err
//	}
//	sets, err := s.DecodeMR(data)
type Session struct {
	// ID identifies the session in logs.
	ID uuid.UUID

	// Path passed to Open ("" for memory buffers)
	Path string

	// Backend name of the bound source ("buffer", "file", "mmap", "custom")
	Backend string

	// MR sets from the last successful DecodeMR
	MRSets []MRSet

	// Warnings encountered during the session (non-fatal issues)
	Warnings []Warning

	src      Source
	size     int64
	opened   bool
	released bool
	options  *sessionOptions
	log      logger.Logger
	metrics  *metrics.Collector
}

// NewSession creates a session that takes ownership of src.
// The source is not opened until Open is called.
func NewSession(src Source, opts ...Option) *Session {
	options := applyOptions(opts)

	id := uuid.New()
	return &Session{
		ID:      id,
		Backend: backendName(src),
		src:     src,
		options: options,
		log:     options.logger.With("session", id.String()),
		metrics: options.metrics,
	}
}

// OpenBuffer creates a session over an in-memory buffer and opens it.
//
// The buffer is borrowed, not copied: it must not be modified while the
// session is in use.
func OpenBuffer(buf []byte, opts ...Option) (*Session, error) {
	s := NewSession(source.NewBuffer(buf), opts...)
	if err := s.Open(""); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

// Open opens the source at path and measures its size.
// Memory buffers ignore path.
func (s *Session) Open(path string) error {
	if s.released {
		return fmt.Errorf("open %q: session released", path)
	}

	if err := s.src.Open(path); err != nil {
		return fmt.Errorf("open source: %w", err)
	}

	size, err := s.src.Seek(0, SeekEnd)
	if err != nil {
		s.src.Close()
		return fmt.Errorf("measure source: %w", err)
	}
	if _, err := s.src.Seek(0, SeekStart); err != nil {
		s.src.Close()
		return fmt.Errorf("rewind source: %w", err)
	}

	s.Path = path
	s.Backend = backendName(s.src)
	s.size = size
	s.opened = true

	s.log.Debug("source opened", "path", path, "backend", s.Backend, "size", size)
	return nil
}

// Size returns the total size measured by Open.
func (s *Session) Size() int64 {
	return s.size
}

// Seek moves the source cursor. A failed seek leaves the cursor unchanged.
func (s *Session) Seek(offset int64, whence Whence) (int64, error) {
	return s.src.Seek(offset, whence)
}

// Read reads up to len(p) bytes from the cursor.
// At or past the end it returns (0, nil).
func (s *Session) Read(p []byte) (int, error) {
	n, err := s.src.Read(p)
	if err != nil {
		return n, err
	}
	s.metrics.RecordRead(s.Backend, n)
	return n, nil
}

// ReadAll reads from the cursor to the end of the source in chunks,
// reporting progress after every Read.
//
// If the progress handler aborts, ReadAll returns an error matching
// ErrUserAbort and leaves the cursor after the last chunk read.
func (s *Session) ReadAll() ([]byte, error) {
	if !s.opened {
		return nil, fmt.Errorf("read all: %w", ErrNotOpen)
	}

	pos, err := s.src.Seek(0, SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("read all: %w", err)
	}

	out := make([]byte, 0, max(s.size-pos, 0))
	chunk := make([]byte, s.options.chunkSize)
	for {
		n, err := s.Read(chunk)
		if err != nil {
			return nil, fmt.Errorf("read at %d: %w", pos, err)
		}
		if n == 0 {
			break
		}
		out = append(out, chunk[:n]...)
		pos += int64(n)

		if err := source.Update(s.src, s.size, s.options.progress); err != nil {
			if errors.Is(err, ErrUserAbort) {
				s.metrics.RecordAbort()
				s.log.Info("read aborted", "offset", pos)
			}
			return nil, fmt.Errorf("read at %d: %w", pos, err)
		}
	}

	return out, nil
}

// DecodeMR decodes an MR descriptor blob and stores the sets in MRSets.
//
// A malformed blob fails the call unless the session was created with
// WithLenientMR, in which case MRSets is cleared and a Warning is recorded.
// WithStrictParsing turns that warning back into an error.
func (s *Session) DecodeMR(blob []byte) ([]MRSet, error) {
	start := time.Now()
	sets, err := mrset.Parse(blob)
	s.metrics.RecordDecode(len(sets), err != nil, time.Since(start))

	if err == nil {
		s.MRSets = sets
		s.log.Debug("mr sets decoded", "count", len(sets))
		return sets, nil
	}

	s.MRSets = nil
	if !s.options.lenientMR {
		return nil, fmt.Errorf("decode mr sets: %w", err)
	}

	w := Warning{Stage: "mrsets", Message: err.Error()}
	var m *MalformedMRError
	if errors.As(err, &m) {
		w.Offset = int64(m.Offset)
	}
	s.Warnings = append(s.Warnings, w)
	s.log.Warn("mr sets dropped", "error", err)

	if s.options.strictParsing {
		return nil, fmt.Errorf("strict parsing failed: %w", err)
	}
	return nil, nil
}

// Release closes the source. The session must not be used afterwards.
// Calling Release more than once is a no-op.
func (s *Session) Release() error {
	if s.released {
		return nil
	}
	s.released = true
	s.opened = false

	if err := s.src.Close(); err != nil {
		return fmt.Errorf("close source: %w", err)
	}
	s.log.Debug("session released")
	return nil
}
