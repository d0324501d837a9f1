package source

// Buffer reads from a borrowed, read-only byte slice.
//
// The slice is never copied or modified; the caller keeps ownership and must
// not change it while the Buffer is in use.
type Buffer struct {
	buf []byte
	pos int64
}

// NewBuffer creates a Buffer over b with the cursor at 0.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{buf: b}
}

// Open resets the cursor. The path is ignored.
func (b *Buffer) Open(string) error {
	b.pos = 0
	return nil
}

// Close resets the cursor. It is idempotent.
func (b *Buffer) Close() error {
	b.pos = 0
	return nil
}

// Seek moves the cursor and returns the new absolute position.
func (b *Buffer) Seek(offset int64, whence Whence) (int64, error) {
	pos, err := seekTarget("buffer", b.pos, b.Len(), offset, whence)
	if err != nil {
		return 0, err
	}
	b.pos = pos
	return pos, nil
}

// Read copies up to len(p) bytes from the cursor and advances it.
func (b *Buffer) Read(p []byte) (int, error) {
	available := b.Len() - b.pos
	if available <= 0 || len(p) == 0 {
		return 0, nil
	}
	n := copy(p, b.buf[b.pos:])
	b.pos += int64(n)
	return n, nil
}

// Update reports cursor/totalSize to progress.
func (b *Buffer) Update(totalSize int64, progress ProgressHandler) error {
	return report(b.pos, totalSize, progress)
}

// Len returns the length of the underlying data.
func (b *Buffer) Len() int64 {
	return int64(len(b.buf))
}

// Pos returns the cursor.
func (b *Buffer) Pos() int64 {
	return b.pos
}
