package boc

import "errors"

var (
	// ErrBadMagic is returned when the header's first 4 bytes match none of
	// the recognized BOC magic prefixes.
	ErrBadMagic = errors.New("boc: unrecognized magic prefix")
	// ErrTruncated is returned when the input ends before a length-prefixed
	// field it declared can be read.
	ErrTruncated = errors.New("boc: truncated input")
	// ErrCRCMismatch is returned when a header's trailing CRC32C does not
	// match the computed checksum of the preceding bytes.
	ErrCRCMismatch = errors.New("boc: CRC32C mismatch")
	// ErrBadRootIndex is returned when a root list entry names a cell index
	// outside [0, cellsCount).
	ErrBadRootIndex = errors.New("boc: root index out of range")
	// ErrBadRefIndex is returned when a cell's reference names a cell index
	// outside [0, cellsCount), or does not satisfy the required-greater-
	// than-self topological ordering.
	ErrBadRefIndex = errors.New("boc: reference index out of range or not topologically ordered")
	// ErrAbsentCellsUnsupported is returned when a header declares absent
	// cells (used only by the very first, long-obsolete BOC revision).
	ErrAbsentCellsUnsupported = errors.New("boc: absent cells are not supported")
	// ErrLimitExceeded is returned when a declared or observed count
	// exceeds the configured Limits.
	ErrLimitExceeded = errors.New("boc: limit exceeded")
	// ErrMalformedCellData is returned when a cell's descriptor bytes
	// describe a data length inconsistent with the available bytes.
	ErrMalformedCellData = errors.New("boc: malformed cell descriptor")
	// ErrTooManyRoots reports that exactly one root was expected. No
	// function in this package returns it: EncodeSingleRoot takes a single
	// cell and cannot receive more than one.
	ErrTooManyRoots = errors.New("boc: expected exactly one root")
)
