// Package wire holds the magic numbers and header-flag bit layout for the
// Bag of Cells (BOC) container format (component C7), the TON counterpart
// to the teacher's internal/format package of REGF/HBIN/NK/VK magic
// signatures and field-width constants. Kept as its own package, separate
// from the boc package's codec logic, for the same reason the teacher
// keeps format separate from hive: the wire layout is a fact about the
// protocol, not an implementation choice, and other packages (tests,
// future alternate encoders) should be able to depend on just the
// constants.
package wire

const (
	// MagicReach is serialized_boc#b5ee9c72: the common BOC header, whose
	// flags byte carries the has-index/has-CRC32C/has-cache-bits bits and
	// the size-field width, and which every modern BOC producer emits.
	MagicReach uint32 = 0xb5ee9c72

	// MagicLean is serialized_boc_idx#68ff65f3: an older, CRC-free header.
	// The boc package decodes it as single-root, with fixed one-byte
	// size/offset fields and no index table. Accepted on decode only;
	// Encode never emits it.
	MagicLean uint32 = 0x68ff65f3

	// MagicLeanCRC is serialized_boc_idx_crc32c#acc3a728: the same lean
	// layout as MagicLean plus a trailing CRC32C. Accepted on decode only.
	MagicLeanCRC uint32 = 0xacc3a728
)

// Reach header flags byte layout: bits 7-5 are has-idx/has-crc32c/
// has-cache-bits, bits 4-3 are reserved, bits 2-0 are the size-field width.
const (
	// FlagHasIdx marks the presence of the optional per-cell cumulative
	// offset table between the root list and the cell records.
	FlagHasIdx byte = 1 << 7
	// FlagHasCRC32C marks a trailing CRC32C of the header plus body.
	FlagHasCRC32C byte = 1 << 6
	// FlagHasCacheBits marks the index table's optional cache-hint bit per
	// entry; recognized on decode, never set by Encode.
	FlagHasCacheBits byte = 1 << 5
	// SizeBytesMask isolates the size-field width (in bytes) packed into
	// the low 3 bits of the flags byte.
	SizeBytesMask byte = 0x07
)
