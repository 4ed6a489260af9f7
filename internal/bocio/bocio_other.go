//go:build !linux && !darwin

package bocio

import "os"

// mapFileImpl reads the whole file when mmap isn't used on this platform,
// matching the teacher's own loader_other.go fallback.
func mapFileImpl(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
