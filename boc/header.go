package boc

import (
	"fmt"

	"github.com/ton-cellkit/cellkit/internal/buf"
	"github.com/ton-cellkit/cellkit/internal/wire"
)

// header holds the parsed fields of a BOC's fixed-shape preamble, common
// to all three magic variants this package recognizes.
type header struct {
	magic        uint32
	hasIdx       bool
	hasCRC32C    bool
	hasCacheBits bool
	sizeBytes    int
	offBytes     int
	cellsCount   int
	rootsCount   int
	absentCount  int
	totCellsSize uint64
	rootList     []int
	// index holds the optional cumulative per-cell byte offsets; retained
	// for completeness but not required for the sequential decode this
	// package performs.
	index []uint64
}

// parseHeader reads the BOC preamble starting at data[0] and returns the
// parsed header plus the number of bytes consumed.
//
// The two lean magic variants are historical and carried here purely for
// read compatibility: real BOC producers emit the Reach header. Lean
// headers are documented (DESIGN.md) as always single-root, index-free,
// with size/offset field widths fixed at one byte each — a deliberate
// simplification in the absence of an original reference to consult for
// their exact historical field widths.
func parseHeader(data []byte) (header, int, error) {
	if len(data) < 4 {
		return header{}, 0, ErrTruncated
	}
	magic := buf.U32BE(data)
	switch magic {
	case wire.MagicReach:
		return parseReachHeader(data)
	case wire.MagicLean, wire.MagicLeanCRC:
		return parseLeanHeader(data, magic)
	default:
		return header{}, 0, fmt.Errorf("%w: 0x%08x", ErrBadMagic, magic)
	}
}

func parseReachHeader(data []byte) (header, int, error) {
	pos := 4
	if pos+2 > len(data) {
		return header{}, 0, ErrTruncated
	}
	flags := data[pos]
	pos++
	offBytes := int(data[pos])
	pos++

	h := header{
		magic:        wire.MagicReach,
		hasIdx:       flags&wire.FlagHasIdx != 0,
		hasCRC32C:    flags&wire.FlagHasCRC32C != 0,
		hasCacheBits: flags&wire.FlagHasCacheBits != 0,
		sizeBytes:    int(flags & wire.SizeBytesMask),
		offBytes:     offBytes,
	}
	if h.sizeBytes == 0 || h.offBytes == 0 {
		return header{}, 0, fmt.Errorf("%w: zero-width size/offset field", ErrMalformedCellData)
	}

	var cellsCount, rootsCount, absentCount int
	for _, f := range []*int{&cellsCount, &rootsCount, &absentCount} {
		if pos+h.sizeBytes > len(data) {
			return header{}, 0, ErrTruncated
		}
		*f = int(buf.UintBE(data[pos:], h.sizeBytes))
		pos += h.sizeBytes
	}
	h.cellsCount, h.rootsCount, h.absentCount = cellsCount, rootsCount, absentCount

	if pos+h.offBytes > len(data) {
		return header{}, 0, ErrTruncated
	}
	h.totCellsSize = buf.UintBE(data[pos:], h.offBytes)
	pos += h.offBytes

	if h.absentCount != 0 {
		return header{}, 0, ErrAbsentCellsUnsupported
	}

	h.rootList = make([]int, h.rootsCount)
	for i := range h.rootList {
		if pos+h.sizeBytes > len(data) {
			return header{}, 0, ErrTruncated
		}
		idx := int(buf.UintBE(data[pos:], h.sizeBytes))
		pos += h.sizeBytes
		if idx < 0 || idx >= h.cellsCount {
			return header{}, 0, ErrBadRootIndex
		}
		h.rootList[i] = idx
	}

	if h.hasIdx {
		h.index = make([]uint64, h.cellsCount)
		for i := range h.index {
			if pos+h.offBytes > len(data) {
				return header{}, 0, ErrTruncated
			}
			h.index[i] = buf.UintBE(data[pos:], h.offBytes)
			pos += h.offBytes
		}
	}

	return h, pos, nil
}

func parseLeanHeader(data []byte, magic uint32) (header, int, error) {
	const sizeBytes, offBytes = 1, 1
	pos := 4
	if pos+sizeBytes+offBytes > len(data) {
		return header{}, 0, ErrTruncated
	}
	cellsCount := int(buf.UintBE(data[pos:], sizeBytes))
	pos += sizeBytes
	totCellsSize := buf.UintBE(data[pos:], offBytes)
	pos += offBytes
	if cellsCount == 0 {
		return header{}, 0, fmt.Errorf("%w: lean header declares zero cells", ErrMalformedCellData)
	}
	return header{
		magic:        magic,
		hasCRC32C:    magic == wire.MagicLeanCRC,
		sizeBytes:    sizeBytes,
		offBytes:     offBytes,
		cellsCount:   cellsCount,
		rootsCount:   1,
		totCellsSize: totCellsSize,
		rootList:     []int{0},
	}, pos, nil
}
