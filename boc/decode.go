package boc

import (
	"fmt"
	"hash/crc32"
	"math/bits"

	"github.com/ton-cellkit/cellkit/cell"
	"github.com/ton-cellkit/cellkit/internal/buf"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// cellRecord is the parsed, not-yet-linked form of one cell in the stream:
// its own descriptor-derived shape, plus the (still numeric) indices of
// its references.
type cellRecord struct {
	typ     cell.Type
	data    []byte
	bitsLen int
	refIdx  []int
}

// Decode parses a full BOC byte string into its root cells, in header
// declaration order. Cells are shared (by pointer) wherever the BOC's
// cell-index table shares them, exactly mirroring the DAG sharing the
// input was serialized from.
func Decode(data []byte, limits Limits) ([]*cell.Cell, error) {
	if len(data) > limits.MaxTotalSize {
		return nil, fmt.Errorf("%w: input is %d bytes", ErrLimitExceeded, len(data))
	}

	h, pos, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	if h.cellsCount > limits.MaxCells {
		return nil, fmt.Errorf("%w: %d cells", ErrLimitExceeded, h.cellsCount)
	}
	if h.rootsCount > limits.MaxRoots {
		return nil, fmt.Errorf("%w: %d roots", ErrLimitExceeded, h.rootsCount)
	}

	records := make([]cellRecord, h.cellsCount)
	for i := 0; i < h.cellsCount; i++ {
		rec, consumed, err := parseCellRecord(data[pos:], h.sizeBytes)
		if err != nil {
			return nil, fmt.Errorf("boc: cell %d: %w", i, err)
		}
		records[i] = rec
		pos += consumed
	}

	if h.hasCRC32C {
		if pos+4 > len(data) {
			return nil, ErrTruncated
		}
		want := buf.U32BE(data[pos:])
		got := crc32.Checksum(data[:pos], castagnoli)
		if want != got {
			return nil, ErrCRCMismatch
		}
		pos += 4
	}

	built := make([]*cell.Cell, h.cellsCount)
	for i := h.cellsCount - 1; i >= 0; i-- {
		rec := records[i]
		refs := make([]*cell.Cell, len(rec.refIdx))
		for j, idx := range rec.refIdx {
			if idx <= i || idx >= h.cellsCount {
				return nil, fmt.Errorf("%w: cell %d ref %d -> %d", ErrBadRefIndex, i, j, idx)
			}
			refs[j] = built[idx]
		}
		c, err := cell.NewRaw(rec.typ, rec.data, rec.bitsLen, refs)
		if err != nil {
			return nil, fmt.Errorf("boc: cell %d: %w", i, err)
		}
		if int(c.Depth()) > limits.MaxDepth {
			return nil, fmt.Errorf("%w: depth %d at cell %d", ErrLimitExceeded, c.Depth(), i)
		}
		built[i] = c
	}

	roots := make([]*cell.Cell, len(h.rootList))
	for i, idx := range h.rootList {
		roots[i] = built[idx]
	}
	return roots, nil
}

// parseCellRecord reads one cell's descriptor bytes, raw data, and
// reference index list from the front of data.
func parseCellRecord(data []byte, sizeBytes int) (cellRecord, int, error) {
	if len(data) < 2 {
		return cellRecord{}, 0, ErrTruncated
	}
	d1, d2 := data[0], data[1]
	pos := 2

	numRefs := int(d1 & 7)
	isExotic := d1&8 != 0
	dataBytesSize := (int(d2) + 1) / 2
	withCompletionTag := d2%2 == 1

	if pos+dataBytesSize > len(data) {
		return cellRecord{}, 0, ErrTruncated
	}
	raw := data[pos : pos+dataBytesSize]
	pos += dataBytesSize

	refIdx := make([]int, numRefs)
	for i := range refIdx {
		if pos+sizeBytes > len(data) {
			return cellRecord{}, 0, ErrTruncated
		}
		refIdx[i] = int(buf.UintBE(data[pos:], sizeBytes))
		pos += sizeBytes
	}

	typ := cell.Ordinary
	if isExotic {
		if len(raw) == 0 {
			return cellRecord{}, 0, ErrMalformedCellData
		}
		t, err := exoticTypeFromTag(raw[0])
		if err != nil {
			return cellRecord{}, 0, err
		}
		typ = t
	}

	plainData, bitsLen, err := stripCompletionTag(raw, withCompletionTag)
	if err != nil {
		return cellRecord{}, 0, err
	}

	return cellRecord{typ: typ, data: plainData, bitsLen: bitsLen, refIdx: refIdx}, pos, nil
}

func exoticTypeFromTag(tag byte) (cell.Type, error) {
	switch tag {
	case 1:
		return cell.PrunedBranch, nil
	case 2:
		return cell.LibraryRef, nil
	case 3:
		return cell.MerkleProof, nil
	case 4:
		return cell.MerkleUpdate, nil
	default:
		return 0, fmt.Errorf("%w: tag %d", cell.ErrUnknownExoticTag, tag)
	}
}

// stripCompletionTag recovers the exact bit length of a cell's data. When
// the serialized byte count was odd (d2 odd), the stored bytes end with a
// completion tag: a single 1 bit marking the true end, followed by zero
// padding to the byte boundary.
func stripCompletionTag(raw []byte, withTag bool) ([]byte, int, error) {
	if !withTag {
		return raw, len(raw) * 8, nil
	}
	if len(raw) == 0 {
		return nil, 0, ErrMalformedCellData
	}
	last := raw[len(raw)-1]
	if last == 0 {
		return nil, 0, fmt.Errorf("%w: missing completion tag", ErrMalformedCellData)
	}
	trailingZeros := bits.TrailingZeros8(last)
	bitsLen := (len(raw)-1)*8 + (8 - trailingZeros - 1)
	out := make([]byte, len(raw))
	copy(out, raw)
	// Clear the tag bit and everything after it in the final byte.
	mask := byte(0xFF) << uint(8-bitsLen%8)
	if bitsLen%8 == 0 {
		mask = 0
	}
	out[len(out)-1] &= mask
	return out, bitsLen, nil
}
