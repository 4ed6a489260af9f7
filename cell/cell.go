package cell

// Cell is an immutable node in the cell DAG: up to 1023 bits of data and up
// to 4 child references. Go's garbage collector gives every Cell the shared,
// reference-counted ownership the format implies (many parents may point at
// the same child) without any manual refcounting machinery — see DESIGN.md.
//
// A Cell's full per-level hash/depth table is computed once, in NewRaw, and
// never recomputed; every accessor below is a plain field read.
type Cell struct {
	typ    Type
	data   []byte
	nbits  int
	refs   []*Cell
	mask   LevelMask
	hashes [4][32]byte
	depths [4]uint16
}

// CellRef is a reference to a child cell. Cells are immutable, so sharing a
// *Cell across many parents is always safe.
type CellRef = *Cell

// Empty is the canonical zero-data, zero-ref ordinary cell. Its hash is a
// fixed, well-known constant reused throughout the test suite.
var Empty = mustEmpty()

func mustEmpty() *Cell {
	c, err := NewRaw(Ordinary, nil, 0, nil)
	if err != nil {
		panic("cell: failed to construct the empty cell: " + err.Error())
	}
	return c
}

// Type returns the cell's exotic classification.
func (c *Cell) Type() Type { return c.typ }

// BitLen returns the number of meaningful data bits.
func (c *Cell) BitLen() int { return c.nbits }

// Data returns the raw data bytes (MSB-aligned, ceil(BitLen()/8) bytes long).
// Callers must not mutate the returned slice.
func (c *Cell) Data() []byte { return c.data }

// RefCount returns the number of child references.
func (c *Cell) RefCount() int { return len(c.refs) }

// Ref returns the i-th child reference.
func (c *Cell) Ref(i int) *Cell { return c.refs[i] }

// Refs returns the child references. Callers must not mutate the slice.
func (c *Cell) Refs() []*Cell { return c.refs }

// LevelMask returns the cell's level mask.
func (c *Cell) LevelMask() LevelMask { return c.mask }

// Level is a shorthand for LevelMask().Level().
func (c *Cell) Level() int { return c.mask.Level() }

// Hash returns the cell's representation hash at its own (maximum) level —
// the hash used when this cell is a BOC root or referenced by another cell
// at the same level.
func (c *Cell) Hash() [32]byte { return c.hashes[3] }

// Depth returns the cell's depth at its own (maximum) level.
func (c *Cell) Depth() uint16 { return c.depths[3] }

// HashAtLevel returns the cell's hash as observed by a parent applying the
// given level (0-3).
func (c *Cell) HashAtLevel(level int) [32]byte {
	return c.hashes[clampLevel(level)]
}

// DepthAtLevel returns the cell's depth as observed at the given level.
func (c *Cell) DepthAtLevel(level int) uint16 {
	return c.depths[clampLevel(level)]
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 3 {
		return 3
	}
	return level
}

// Equal reports deep structural equality: same type, same data bits, and
// refs that are themselves Equal (pointer identity is not required).
func (c *Cell) Equal(o *Cell) bool {
	if c == o {
		return true
	}
	if c == nil || o == nil {
		return false
	}
	return c.Hash() == o.Hash() && c.Level() == o.Level()
}

// IsExotic reports whether this cell is anything other than Ordinary.
func (c *Cell) IsExotic() bool { return c.typ.IsExotic() }
