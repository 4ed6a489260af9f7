package boc

// Limits constrains BOC decoding to defend against malformed or hostile
// input (oversized cell counts, absurd depth) before any allocation scales
// with attacker-controlled fields. Modeled directly on hivekit's
// pkg/ast.Limits: a plain struct with doc-commented fields and named
// preset constructors, rather than functional options — this module's
// decode entry points (Decode, bocio.DecodeFile) take a Limits value.
type Limits struct {
	// MaxCells is the maximum number of cells a single BOC may contain.
	MaxCells int

	// MaxRoots is the maximum number of root cells a single BOC may declare.
	MaxRoots int

	// MaxDepth is the maximum cell-graph depth (root to deepest leaf).
	MaxDepth int

	// MaxTotalSize is the maximum size in bytes of the BOC payload itself
	// (the input slice handed to Decode), checked before any parsing.
	MaxTotalSize int
}

// DefaultLimits returns generous limits suitable for most masterchain and
// workchain block/state data.
func DefaultLimits() Limits {
	return Limits{
		MaxCells:     1 << 20,
		MaxRoots:     1 << 10,
		MaxDepth:     1 << 12,
		MaxTotalSize: 256 << 20,
	}
}

// StrictLimits returns conservative limits suitable for decoding untrusted
// input from the network (e.g. a peer-supplied external message or proof).
func StrictLimits() Limits {
	return Limits{
		MaxCells:     1 << 14,
		MaxRoots:     16,
		MaxDepth:     1 << 10,
		MaxTotalSize: 2 << 20,
	}
}
