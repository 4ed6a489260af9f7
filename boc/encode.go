package boc

import (
	"fmt"
	"hash/crc32"

	"github.com/ton-cellkit/cellkit/cell"
	"github.com/ton-cellkit/cellkit/internal/buf"
	"github.com/ton-cellkit/cellkit/internal/wire"
)

// EncodeOptions controls how Encode serializes a set of roots.
type EncodeOptions struct {
	// WithCRC32C appends a trailing CRC32C of the whole header+body.
	WithCRC32C bool
	// WithIndex emits the optional per-cell cumulative offset table.
	WithIndex bool
}

// Encode serializes roots into a single Reach-header BOC, deduplicating
// shared cells by hash and topologically ordering the stream so every
// reference points to a strictly later index (mirroring what Decode
// requires on the way back in).
func Encode(roots []*cell.Cell, opts EncodeOptions) ([]byte, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("boc: Encode requires at least one root")
	}

	order, indexOf := topoOrder(roots)

	bodies := make([][]byte, len(order))
	var totCellsSize int
	sizeBytes := buf.MinWidthBytes(uint64(len(order) - 1))
	for i, c := range order {
		b := encodeCellRecord(c, indexOf, sizeBytes)
		bodies[i] = b
		totCellsSize += len(b)
	}
	offBytes := buf.MinWidthBytes(uint64(totCellsSize))

	var out []byte
	out = appendU32BE(out, wire.MagicReach)

	flags := byte(sizeBytes) & wire.SizeBytesMask
	if opts.WithIndex {
		flags |= wire.FlagHasIdx
	}
	if opts.WithCRC32C {
		flags |= wire.FlagHasCRC32C
	}
	out = append(out, flags, byte(offBytes))
	out = appendUintBE(out, sizeBytes, uint64(len(order)))
	out = appendUintBE(out, sizeBytes, uint64(len(roots)))
	out = appendUintBE(out, sizeBytes, 0) // absent cells: unsupported, always 0
	out = appendUintBE(out, offBytes, uint64(totCellsSize))
	for _, r := range roots {
		out = appendUintBE(out, sizeBytes, uint64(indexOf[r.Hash()]))
	}
	if opts.WithIndex {
		running := uint64(0)
		for _, b := range bodies {
			running += uint64(len(b))
			out = appendUintBE(out, offBytes, running)
		}
	}
	for _, b := range bodies {
		out = append(out, b...)
	}
	if opts.WithCRC32C {
		crc := crc32.Checksum(out, castagnoli)
		out = appendU32BE(out, crc)
	}
	return out, nil
}

// EncodeSingleRoot is the common case of Encode for exactly one root, with
// default options (no index, with CRC32C).
func EncodeSingleRoot(root *cell.Cell) ([]byte, error) {
	return Encode([]*cell.Cell{root}, EncodeOptions{WithCRC32C: true})
}

// topoOrder walks the DAG rooted at roots and returns cells ordered so
// every reference points to a strictly greater index, along with a
// hash->index map. Cells reachable from multiple parents are deduplicated
// by hash and appear exactly once.
func topoOrder(roots []*cell.Cell) ([]*cell.Cell, map[[32]byte]int) {
	var order []*cell.Cell
	seen := make(map[[32]byte]bool)

	var visit func(c *cell.Cell)
	visit = func(c *cell.Cell) {
		if seen[c.Hash()] {
			return
		}
		seen[c.Hash()] = true
		for _, r := range c.Refs() {
			visit(r)
		}
		order = append(order, c)
	}
	for _, r := range roots {
		visit(r)
	}

	// order is currently children-before-parents (post-order); reverse so
	// roots come first and every ref index is greater than its parent's.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	indexOf := make(map[[32]byte]int, len(order))
	for i, c := range order {
		indexOf[c.Hash()] = i
	}
	return order, indexOf
}

func encodeCellRecord(c *cell.Cell, indexOf map[[32]byte]int, sizeBytes int) []byte {
	plain := c.Data()
	nbits := c.BitLen()
	withTag := nbits%8 != 0

	dataBytesLen := buf.CeilDiv(nbits, 8)
	data := make([]byte, dataBytesLen)
	copy(data, plain)
	if withTag {
		lastBits := nbits % 8
		tagPos := 7 - lastBits
		data[dataBytesLen-1] |= 1 << uint(tagPos)
	}

	d1 := byte(c.RefCount())
	if c.IsExotic() {
		d1 |= 8
	}
	d2 := byte(dataBytesLen * 2)
	if withTag {
		d2--
	}

	out := append([]byte{d1, d2}, data...)
	for _, r := range c.Refs() {
		out = appendUintBE(out, sizeBytes, uint64(indexOf[r.Hash()]))
	}
	return out
}

func appendU32BE(dst []byte, v uint32) []byte {
	return append(dst, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func appendUintBE(dst []byte, width int, v uint64) []byte {
	b := make([]byte, width)
	buf.PutUintBE(b, width, v)
	return append(dst, b...)
}
