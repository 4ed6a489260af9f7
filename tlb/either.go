package tlb

import (
	"github.com/ton-cellkit/cellkit/builder"
	"github.com/ton-cellkit/cellkit/parser"
)

// EitherRef adapts TL-B's `Either X ^X`: a value stored inline when it
// fits the remaining cell budget, behind a single ref otherwise. This is
// the generalized form of the inline-vs-indirect choice hivekit's VK
// records make between their fixed inline data slot and a separate DB
// cell chain (hive/cell_resolve.go, hive/db.go).
//
// Native TON tooling has a long-standing off-by-one quirk here: the
// "does it fit inline" check some widely deployed encoders use compares
// the inline candidate's bit length against the cell's remaining capacity
// with a strict less-than, so a value that lands exactly on the boundary
// is pushed to a ref even though it would have fit. This package
// reproduces that quirk in ShouldStoreInline for read/write compatibility
// with cells produced by that tooling, rather than "fixing" it — changing
// the threshold would make cells this module writes indistinguishable in
// meaning but different in shape from the ecosystem's.
// If L or R is a pointer type, callers decoding into a fresh EitherRef
// must pre-populate Left/Right with a non-nil instance before calling
// LoadTLB (mirroring the same "generic T has no usable zero value"
// constraint TLBOptRef documents with its New field).
type EitherRef[L, R Object] struct {
	IsRight bool
	Left    L
	Right   R
}

// ShouldStoreInline reports whether a Left value of inlineBits bits should
// be stored inline given builderBitsLeft remaining capacity, preserving
// the strict less-than boundary quirk described above.
func ShouldStoreInline(inlineBits, builderBitsLeft int) bool {
	return inlineBits < builderBitsLeft
}

func (e EitherRef[L, R]) StoreTLB(b *builder.Builder) error {
	if !e.IsRight {
		if err := b.WriteBit(0); err != nil {
			return err
		}
		return e.Left.StoreTLB(b)
	}
	if err := b.WriteBit(1); err != nil {
		return err
	}
	return TLBRef[R]{Value: e.Right}.StoreTLB(b)
}

func (e *EitherRef[L, R]) LoadTLB(p *parser.Parser) error {
	bit, err := p.ReadBit()
	if err != nil {
		return err
	}
	if bit == 0 {
		e.IsRight = false
		return e.Left.LoadTLB(p)
	}
	e.IsRight = true
	ref := TLBRef[R]{Value: e.Right}
	if err := ref.LoadTLB(p); err != nil {
		return err
	}
	e.Right = ref.Value
	return nil
}
