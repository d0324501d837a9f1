//go:build !unix

package source

import "os"

func mapFile(path string) (data []byte, mapped bool, err error) {
	data, err = os.ReadFile(path)
	return data, false, err
}

func unmapFile([]byte) error {
	return nil
}
