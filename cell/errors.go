package cell

import "errors"

var (
	// ErrTooManyDataBits is returned when a cell's data exceeds 1023 bits.
	ErrTooManyDataBits = errors.New("cell: data exceeds 1023 bits")
	// ErrTooManyRefs is returned when a cell carries more than 4 references.
	ErrTooManyRefs = errors.New("cell: more than 4 references")
	// ErrBadExoticSchema is returned when an exotic cell's data does not
	// match its type's fixed layout.
	ErrBadExoticSchema = errors.New("cell: malformed exotic cell schema")
	// ErrBadExoticRefCount is returned when an exotic cell does not carry
	// the reference count its type requires.
	ErrBadExoticRefCount = errors.New("cell: wrong reference count for exotic type")
	// ErrUnknownExoticTag is returned when an exotic cell's leading tag byte
	// does not match any known exotic type.
	ErrUnknownExoticTag = errors.New("cell: unrecognized exotic type tag")
	// ErrPrunedLevelMismatch is returned when a pruned branch's declared
	// level mask is inconsistent with its own level (must be > 0 and the
	// pruned cell can carry no references).
	ErrPrunedLevelMismatch = errors.New("cell: pruned branch level mask is invalid")
	// ErrNotPruned reports a pruned-branch operation on another cell type.
	// No function in this package returns it; HashAtLevel and DepthAtLevel
	// return no error.
	ErrNotPruned = errors.New("cell: not a pruned branch")
	// ErrCellNotExhausted reports a cell slice with unread data or refs. No
	// function in this module returns it; parser.Parser.EnsureEmpty reports
	// that condition as parser.ErrNotExhausted.
	ErrCellNotExhausted = errors.New("cell: slice has unconsumed data or references")
)
