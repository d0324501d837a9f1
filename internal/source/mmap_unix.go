//go:build unix

package source

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps path read-only. Empty files and files the kernel refuses to
// map are read into memory instead, reported by mapped == false.
func mapFile(path string) (data []byte, mapped bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, false, err
	}

	size64 := stat.Size()
	if size64 == 0 {
		return []byte{}, false, nil
	}
	if size64 < 0 || size64 > int64(int(^uint(0)>>1)) {
		// Cannot index this file as []byte on this architecture.
		return nil, false, &os.PathError{Op: "mmap", Path: path, Err: unix.EFBIG}
	}

	data, err = unix.Mmap(int(f.Fd()), 0, int(size64), unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		return data, true, nil
	}

	data, err = os.ReadFile(path)
	return data, false, err
}

func unmapFile(data []byte) error {
	return unix.Munmap(data)
}
