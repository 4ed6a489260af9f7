// Package bocio implements mmap-backed convenience wrappers (component
// SUPPLEMENTED-3) around boc.Decode/boc.Encode for loading and writing BOC
// files directly, without every caller hand-rolling the open/stat/map
// dance. Grounded on the teacher's internal/mmfile plus its
// hive/loader_unix.go / loader_other.go split — a full masterchain block
// BOC can run tens of megabytes, and mapping it read-only avoids the
// double-buffering os.ReadFile would otherwise cause, the same rationale
// the teacher gives for mapping its own multi-hundred-MB registry hives.
package bocio

import (
	"fmt"
	"os"

	"github.com/ton-cellkit/cellkit/boc"
	"github.com/ton-cellkit/cellkit/cell"
)

// mapFile is implemented per-platform (bocio_unix.go / bocio_other.go) and
// returns the file's contents plus a cleanup function releasing any
// mapping. Callers must call cleanup once they are done with data.
var mapFile = mapFileImpl

// DecodeFile mmaps path read-only and decodes it as a BOC, returning its
// root cells.
func DecodeFile(path string, limits boc.Limits) ([]*cell.Cell, error) {
	data, cleanup, err := mapFile(path)
	if err != nil {
		return nil, fmt.Errorf("bocio: %w", err)
	}
	defer cleanup()

	roots, err := boc.Decode(data, limits)
	if err != nil {
		return nil, fmt.Errorf("bocio: %w", err)
	}
	return roots, nil
}

// EncodeFile encodes roots as a BOC and writes it to path.
func EncodeFile(path string, roots []*cell.Cell, opts boc.EncodeOptions) error {
	data, err := boc.Encode(roots, opts)
	if err != nil {
		return fmt.Errorf("bocio: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("bocio: %w", err)
	}
	return nil
}
