// Package builder implements the cell builder (component C5): an
// accumulator of up to 1023 data bits and up to 4 child references that
// produces an immutable cell.Cell. It is a thin, cap-enforcing wrapper
// around internal/bitio.Writer, the same "zero-cost view plus a
// constructor doing the bounds checks" shape hivekit's own Cell/DB/list
// views use (see DESIGN.md).
package builder

import (
	"errors"
	"fmt"

	"github.com/ton-cellkit/cellkit/cell"
	"github.com/ton-cellkit/cellkit/internal/bitio"
	"github.com/ton-cellkit/cellkit/internal/numint"
)

// ErrCellFull is returned when a write would exceed 1023 data bits.
var ErrCellFull = errors.New("builder: cell data would exceed 1023 bits")

// ErrTooManyRefs is returned when a 5th reference is appended.
var ErrTooManyRefs = errors.New("builder: cell would exceed 4 references")

const (
	maxDataBits = 1023
	maxRefs     = 4
)

// Builder accumulates bits and refs for a single cell under construction.
// The zero value is not usable; use New.
type Builder struct {
	w    *bitio.Writer
	refs []*cell.Cell
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{w: bitio.NewWriter(maxDataBits)}
}

// BitsLeft returns how many more data bits can be written before the cell
// is full.
func (b *Builder) BitsLeft() int { return maxDataBits - b.w.Len() }

// RefsLeft returns how many more references can be appended.
func (b *Builder) RefsLeft() int { return maxRefs - len(b.refs) }

// WriteBit appends a single bit.
func (b *Builder) WriteBit(bit byte) error {
	if b.BitsLeft() < 1 {
		return ErrCellFull
	}
	b.w.WriteBit(bit)
	return nil
}

// WriteBits appends the first n bits of src (MSB-first within src).
func (b *Builder) WriteBits(src []byte, n int) error {
	if n > b.BitsLeft() {
		return fmt.Errorf("%w: %d bits requested, %d left", ErrCellFull, n, b.BitsLeft())
	}
	if err := b.w.WriteBits(src, n); err != nil {
		return fmt.Errorf("builder: %w", err)
	}
	return nil
}

// WriteBitsWithOffset appends n bits of src starting at bit offset srcOff.
func (b *Builder) WriteBitsWithOffset(src []byte, n, srcOff int) error {
	if n > b.BitsLeft() {
		return fmt.Errorf("%w: %d bits requested, %d left", ErrCellFull, n, b.BitsLeft())
	}
	if err := b.w.WriteBitsFrom(src, n, srcOff); err != nil {
		return fmt.Errorf("builder: %w", err)
	}
	return nil
}

// WriteNum writes v as exactly `bits` bits, failing if v does not fit.
func (b *Builder) WriteNum(v numint.Value, bits int) error {
	if err := numint.CheckWidth(v, bits); err != nil {
		return err
	}
	data := v.Bytes(bits)
	// Bytes holds the value in its low `bits` bits; skip the leading padding.
	return b.WriteBitsWithOffset(data, bits, len(data)*8-bits)
}

// WriteRef appends a child cell reference.
func (b *Builder) WriteRef(c *cell.Cell) error {
	if c == nil {
		return fmt.Errorf("builder: nil ref")
	}
	if b.RefsLeft() < 1 {
		return ErrTooManyRefs
	}
	b.refs = append(b.refs, c)
	return nil
}

// WriteCell splices another cell's bits and refs into this builder —
// "store" in TL-B terms, used when a schema embeds one serialized value
// directly inside its parent rather than behind a reference.
func (b *Builder) WriteCell(c *cell.Cell) error {
	if err := b.WriteBits(c.Data(), c.BitLen()); err != nil {
		return err
	}
	for _, r := range c.Refs() {
		if err := b.WriteRef(r); err != nil {
			return err
		}
	}
	return nil
}

// Build finalizes an ordinary cell from the accumulated bits and refs.
func (b *Builder) Build() (*cell.Cell, error) {
	data, n := b.w.Bytes()
	return cell.NewRaw(cell.Ordinary, data, n, b.refs)
}

// BuildExotic finalizes a cell of the given exotic type, validating the
// type's fixed schema against what was written. It constructs
// pruned-branch, library-ref, and Merkle cells; ordinary code should prefer
// Build.
func (b *Builder) BuildExotic(typ cell.Type) (*cell.Cell, error) {
	data, n := b.w.Bytes()
	return cell.NewRaw(typ, data, n, b.refs)
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.w = bitio.NewWriter(maxDataBits)
	b.refs = nil
}
