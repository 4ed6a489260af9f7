//go:build linux || darwin

package bocio

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mapFileImpl maps path read-only via golang.org/x/sys/unix, the same
// package the teacher reaches for on unix (hive/dirty/flush_unix.go,
// flush_darwin.go) in place of the raw syscall package.
func mapFileImpl(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, nil, fmt.Errorf("bocio: file too large to map (%d bytes)", size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("bocio: mmap: %w", err)
	}
	cleanup := func() error {
		if data == nil {
			return nil
		}
		return unix.Munmap(data)
	}
	return data, cleanup, nil
}
