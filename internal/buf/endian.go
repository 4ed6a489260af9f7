// Package buf contains bounds-checked slice helpers and big-endian
// decoding routines used by the boc package's header and cell-record
// codecs. Grounded on the teacher's own internal/buf: bounds.go is kept
// verbatim (overflow-safe slicing is endian-agnostic), while endian.go is
// rewritten from the teacher's fixed 16/32/64-bit little-endian registry
// fields to TON's big-endian wire format, and widened with UintBE/
// PutUintBE for the variable 1-8 byte fields a BOC header's size/offset
// widths require (the registry format has no equivalent variable-width
// field).
package buf

import "encoding/binary"

// U16BE reads a big-endian uint16 from b. Returns 0 when b is too short.
func U16BE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

// U32BE reads a big-endian uint32 from b. Returns 0 when b is too short.
func U32BE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// U64BE reads a big-endian uint64 from b. Returns 0 when b is too short.
func U64BE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// UintBE reads a big-endian unsigned integer of the given byte width (1-8)
// from the front of b. Returns 0 when b is too short or width is out of
// range; callers bounds-check width against the remaining input themselves
// before calling, the same contract the fixed-width readers above rely on.
func UintBE(b []byte, width int) uint64 {
	if width < 1 || width > 8 || len(b) < width {
		return 0
	}
	var v uint64
	for i := 0; i < width; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// PutUintBE writes v into dst as a big-endian integer occupying exactly
// len(dst) bytes (1-8). It panics if dst's width is out of range; callers
// size dst from MinWidthBytes so this never fires in practice.
func PutUintBE(dst []byte, width int, v uint64) {
	if width < 1 || width > 8 || len(dst) < width {
		panic("buf: PutUintBE width out of range")
	}
	for i := width - 1; i >= 0; i-- {
		dst[i] = byte(v)
		v >>= 8
	}
}

// MinWidthBytes returns the fewest bytes needed to hold v as an unsigned
// big-endian integer, with a floor of 1 (a BOC header never emits a
// zero-width size/offset field).
func MinWidthBytes(v uint64) int {
	n := 1
	for v > 0xff {
		v >>= 8
		n++
	}
	return n
}

// CeilDiv returns ceil(a/b) for non-negative a and positive b.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}
