package source

import (
	"fmt"
	"os"
)

// Mapped reads a file through a read-only memory mapping.
//
// On platforms without mmap support, or when mapping fails, the file is
// read into memory instead. Either way reads are served by a Buffer over the
// bytes, so seek and read behave exactly like the memory backend.
type Mapped struct {
	buf    *Buffer
	data   []byte
	path   string
	mapped bool
	load   bool
}

// NewMapped creates a Mapped source that maps the path given to Open.
func NewMapped() *Mapped {
	return &Mapped{}
}

// NewLoaded creates a source that reads the whole file given to Open into
// memory. It never maps.
func NewLoaded() *Mapped {
	return &Mapped{load: true}
}

// Open maps path and resets the cursor.
func (m *Mapped) Open(path string) error {
	if err := m.Close(); err != nil {
		return err
	}

	var (
		data   []byte
		mapped bool
		err    error
	)
	if m.load {
		data, err = os.ReadFile(path)
	} else {
		data, mapped, err = mapFile(path)
	}
	if err != nil {
		return fmt.Errorf("load file: %w", err)
	}

	m.data = data
	m.mapped = mapped
	m.path = path
	m.buf = NewBuffer(data)
	return nil
}

// Close resets the cursor and releases the mapping. It is idempotent.
func (m *Mapped) Close() error {
	if m.buf == nil {
		return nil
	}

	var err error
	if m.mapped {
		err = unmapFile(m.data)
	}
	m.buf = nil
	m.data = nil
	m.mapped = false
	return err
}

// Seek moves the cursor and returns the new absolute position.
func (m *Mapped) Seek(offset int64, whence Whence) (int64, error) {
	if m.buf == nil {
		return 0, ErrNotOpen
	}
	pos, err := seekTarget(m.path, m.buf.pos, m.buf.Len(), offset, whence)
	if err != nil {
		return 0, err
	}
	m.buf.pos = pos
	return pos, nil
}

// Read copies up to len(p) bytes from the cursor and advances it.
func (m *Mapped) Read(p []byte) (int, error) {
	if m.buf == nil {
		return 0, ErrNotOpen
	}
	return m.buf.Read(p)
}

// Update reports cursor/totalSize to progress.
func (m *Mapped) Update(totalSize int64, progress ProgressHandler) error {
	if m.buf == nil {
		return report(0, totalSize, progress)
	}
	return m.buf.Update(totalSize, progress)
}

// IsMapped reports whether the open file is backed by an mmap region.
func (m *Mapped) IsMapped() bool {
	return m.mapped
}
