// Package source provides the byte-source abstraction every format reader
// consumes: one contract (open, close, seek, read, report progress) with
// memory, file and memory-mapped backends.
package source

import (
	"fmt"
	"math"

	"github.com/simonhull/statmeta/internal/types"
)

// Whence is the origin of a seek.
type Whence int

const (
	// SeekStart seeks relative to the start of the data.
	SeekStart Whence = iota
	// SeekCurrent seeks relative to the cursor.
	SeekCurrent
	// SeekEnd seeks relative to the end of the data.
	SeekEnd
)

func (w Whence) String() string {
	switch w {
	case SeekStart:
		return "start"
	case SeekCurrent:
		return "current"
	case SeekEnd:
		return "end"
	default:
		return fmt.Sprintf("whence(%d)", int(w))
	}
}

// ProgressHandler receives the fraction of the input consumed so far.
// Returning true aborts the current parse.
type ProgressHandler func(progress float64) (abort bool)

// Source is the capability set a parser session binds once.
//
// Read returns (0, nil) at or beyond the end of the data: end-of-data is not
// a failure. Seek may move the cursor past the end; subsequent reads then
// return 0 bytes.
type Source interface {
	Open(path string) error
	Close() error
	Seek(offset int64, whence Whence) (int64, error)
	Read(p []byte) (int, error)
}

// Updater is implemented by sources that can report progress.
type Updater interface {
	Update(totalSize int64, progress ProgressHandler) error
}

// seekTarget computes the absolute position for a seek. It never modifies
// any cursor; callers assign the result only when err is nil.
func seekTarget(path string, pos, size, offset int64, whence Whence) (int64, error) {
	var base int64
	switch whence {
	case SeekStart:
		base = 0
	case SeekCurrent:
		base = pos
	case SeekEnd:
		base = size
	default:
		return 0, fmt.Errorf("%s: %w: %s", path, types.ErrInvalidWhence, whence)
	}

	if (offset > 0 && base > math.MaxInt64-offset) || base+offset < 0 {
		return 0, &types.SeekRangeError{
			Path:   path,
			Whence: whence.String(),
			Offset: offset,
			Base:   base,
		}
	}
	return base + offset, nil
}

// report invokes progress with pos/totalSize. A non-positive totalSize
// reports 0.
func report(pos, totalSize int64, progress ProgressHandler) error {
	if progress == nil {
		return nil
	}

	var fraction float64
	if totalSize > 0 {
		fraction = float64(pos) / float64(totalSize)
	}
	if progress(fraction) {
		return types.ErrUserAbort
	}
	return nil
}

// Update reports the progress of s. Sources implementing Updater report
// themselves; for any other source the cursor is queried with a zero
// SeekCurrent.
func Update(s Source, totalSize int64, progress ProgressHandler) error {
	if progress == nil {
		return nil
	}
	if u, ok := s.(Updater); ok {
		return u.Update(totalSize, progress)
	}

	pos, err := s.Seek(0, SeekCurrent)
	if err != nil {
		return fmt.Errorf("query position: %w", err)
	}
	return report(pos, totalSize, progress)
}
