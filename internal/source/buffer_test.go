package source

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/simonhull/statmeta/internal/types"
)

func TestBuffer_Seek(t *testing.T) {
	data := []byte("0123456789")

	tests := []struct {
		name   string
		start  int64
		offset int64
		whence Whence
		want   int64
	}{
		{"start", 4, 3, SeekStart, 3},
		{"start zero", 7, 0, SeekStart, 0},
		{"current forward", 4, 3, SeekCurrent, 7},
		{"current backward", 4, -4, SeekCurrent, 0},
		{"end", 4, -2, SeekEnd, 8},
		{"end exact", 0, 0, SeekEnd, 10},
		{"past end", 0, 25, SeekStart, 25},
		{"past end from end", 0, 5, SeekEnd, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(data)
			if _, err := b.Seek(tt.start, SeekStart); err != nil {
				t.Fatalf("initial seek: %v", err)
			}

			got, err := b.Seek(tt.offset, tt.whence)
			if err != nil {
				t.Fatalf("Seek(%d, %s) error = %v", tt.offset, tt.whence, err)
			}
			if got != tt.want {
				t.Errorf("Seek(%d, %s) = %d, want %d", tt.offset, tt.whence, got, tt.want)
			}
			if b.Pos() != tt.want {
				t.Errorf("Pos() = %d, want %d", b.Pos(), tt.want)
			}
		})
	}
}

func TestBuffer_Seek_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		offset  int64
		whence  Whence
		wantErr error
	}{
		{"negative start", -1, SeekStart, types.ErrSeekOutOfRange},
		{"negative current", -6, SeekCurrent, types.ErrSeekOutOfRange},
		{"negative end", -11, SeekEnd, types.ErrSeekOutOfRange},
		{"overflow", math.MaxInt64, SeekCurrent, types.ErrSeekOutOfRange},
		{"unknown whence", 0, Whence(7), types.ErrInvalidWhence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer([]byte("0123456789"))
			if _, err := b.Seek(5, SeekStart); err != nil {
				t.Fatal(err)
			}

			_, err := b.Seek(tt.offset, tt.whence)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Seek() error = %v, want %v", err, tt.wantErr)
			}
			if b.Pos() != 5 {
				t.Errorf("cursor moved to %d after failed seek", b.Pos())
			}
		})
	}
}

func TestBuffer_Read(t *testing.T) {
	data := []byte("0123456789")
	b := NewBuffer(data)

	buf := make([]byte, 4)
	n, err := b.Read(buf)
	if err != nil || n != 4 {
		t.Fatalf("Read() = %d, %v; want 4, nil", n, err)
	}
	if string(buf) != "0123" {
		t.Errorf("Read() data = %q", buf)
	}

	if _, err := b.Seek(8, SeekStart); err != nil {
		t.Fatal(err)
	}
	n, err = b.Read(buf)
	if err != nil || n != 2 {
		t.Fatalf("Read() near end = %d, %v; want 2, nil", n, err)
	}
	if string(buf[:n]) != "89" {
		t.Errorf("Read() data = %q", buf[:n])
	}
	if b.Pos() != 10 {
		t.Errorf("Pos() = %d, want 10", b.Pos())
	}

	// End of data is idempotent and not an error.
	for i := 0; i < 3; i++ {
		n, err = b.Read(buf)
		if err != nil || n != 0 {
			t.Fatalf("Read() at end #%d = %d, %v; want 0, nil", i, n, err)
		}
	}
	if b.Pos() != 10 {
		t.Errorf("Pos() after reads at end = %d, want 10", b.Pos())
	}
}

func TestBuffer_Read_PastEnd(t *testing.T) {
	b := NewBuffer([]byte("abc"))
	if _, err := b.Seek(100, SeekStart); err != nil {
		t.Fatal(err)
	}

	n, err := b.Read(make([]byte, 8))
	if err != nil || n != 0 {
		t.Fatalf("Read() past end = %d, %v; want 0, nil", n, err)
	}
	if b.Pos() != 100 {
		t.Errorf("Pos() = %d, want 100", b.Pos())
	}
}

func TestBuffer_Read_NeverExceedsAvailable(t *testing.T) {
	data := []byte("0123456789")
	for start := int64(0); start <= 12; start++ {
		for size := 0; size <= 12; size++ {
			b := NewBuffer(data)
			if _, err := b.Seek(start, SeekStart); err != nil {
				t.Fatal(err)
			}
			n, err := b.Read(make([]byte, size))
			if err != nil {
				t.Fatal(err)
			}
			available := max(0, int64(len(data))-start)
			if want := min(int64(size), available); int64(n) != want {
				t.Errorf("start=%d size=%d: read %d, want %d", start, size, n, want)
			}
		}
	}
}

func TestBuffer_CloseOpenResets(t *testing.T) {
	b := NewBuffer([]byte("0123456789"))
	if _, err := b.Seek(7, SeekStart); err != nil {
		t.Fatal(err)
	}

	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second Close() = %v", err)
	}
	if b.Pos() != 0 {
		t.Errorf("Pos() after Close = %d", b.Pos())
	}

	if _, err := b.Seek(3, SeekStart); err != nil {
		t.Fatal(err)
	}
	if err := b.Open("ignored"); err != nil {
		t.Fatal(err)
	}
	if b.Pos() != 0 {
		t.Errorf("Pos() after Open = %d", b.Pos())
	}
}

func TestBuffer_DoesNotModifyData(t *testing.T) {
	data := []byte("0123456789")
	orig := bytes.Clone(data)

	b := NewBuffer(data)
	buf := make([]byte, 6)
	_, _ = b.Read(buf)
	buf[0] = 'X'

	if !bytes.Equal(data, orig) {
		t.Errorf("backing data modified: %q", data)
	}
}

func TestBuffer_Update(t *testing.T) {
	b := NewBuffer([]byte("0123456789"))
	if _, err := b.Seek(5, SeekStart); err != nil {
		t.Fatal(err)
	}

	if err := b.Update(10, nil); err != nil {
		t.Errorf("Update() with nil handler = %v", err)
	}

	var got float64
	err := b.Update(10, func(p float64) bool {
		got = p
		return false
	})
	if err != nil {
		t.Fatalf("Update() = %v", err)
	}
	if got != 0.5 {
		t.Errorf("progress = %v, want 0.5", got)
	}

	err = b.Update(10, func(float64) bool { return true })
	if !errors.Is(err, types.ErrUserAbort) {
		t.Errorf("Update() = %v, want ErrUserAbort", err)
	}

	err = b.Update(0, func(p float64) bool {
		got = p
		return false
	})
	if err != nil || got != 0 {
		t.Errorf("Update(0) = %v with progress %v; want nil, 0", err, got)
	}
}
