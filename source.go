package statmeta

import (
	"io"

	"github.com/simonhull/statmeta/internal/source"
)

// Source is the byte-source contract a Session reads through.
//
// Implementations must keep the cursor unchanged when Seek fails and must
// return (0, nil) from Read once the cursor is at or past the end.
type Source = source.Source

// Updater is implemented by sources that report their own progress.
type Updater = source.Updater

// ProgressHandler receives the fraction of input consumed so far and
// returns true to abort.
type ProgressHandler = source.ProgressHandler

// Whence selects the origin of a Seek.
type Whence = source.Whence

// Seek origins.
const (
	SeekStart   = source.SeekStart
	SeekCurrent = source.SeekCurrent
	SeekEnd     = source.SeekEnd
)

// NewBuffer returns a memory source over b. The bytes are borrowed: they are
// neither copied nor modified, and must outlive the source.
func NewBuffer(b []byte) *source.Buffer {
	return source.NewBuffer(b)
}

// NewFile returns a source that opens the named file on Open.
func NewFile() *source.File {
	return source.NewFile()
}

// NewMapped returns a source that memory-maps the named file on Open.
func NewMapped() *source.Mapped {
	return source.NewMapped()
}

// NewReaderAt returns a source over an already open io.ReaderAt of the
// given size. Closing the source never closes r.
func NewReaderAt(r io.ReaderAt, size int64, name string) *source.File {
	return source.NewReaderAt(r, size, name)
}
