package tlb

import (
	"github.com/ton-cellkit/cellkit/builder"
	"github.com/ton-cellkit/cellkit/parser"
)

// TLBRef adapts any Object to be stored behind a single cell reference
// instead of inline — TL-B's `^X` — by building T into its own cell first
// and appending that cell as a ref, mirroring how hivekit's VK records
// store big values in a separate DB cell chain reached by an HCELL_INDEX
// rather than inline in the VK payload.
type TLBRef[T Object] struct {
	Value T
}

func (r TLBRef[T]) StoreTLB(b *builder.Builder) error {
	inner := builder.New()
	if err := r.Value.StoreTLB(inner); err != nil {
		return err
	}
	c, err := inner.Build()
	if err != nil {
		return err
	}
	return b.WriteRef(c)
}

func (r *TLBRef[T]) LoadTLB(p *parser.Parser) error {
	sub, err := p.ReadCellSlice()
	if err != nil {
		return err
	}
	return r.Value.LoadTLB(sub)
}

// TLBOptRef adapts `Maybe ^X`: a single presence bit followed by a ref
// when present. New must construct a fresh, zero-valued T to load into —
// required because a generic T constrained only by an interface has no
// usable zero value to decode into (if T is a pointer type, its zero
// value is nil).
type TLBOptRef[T Object] struct {
	Present bool
	Value   T
	New     func() T
}

func (r TLBOptRef[T]) StoreTLB(b *builder.Builder) error {
	if !r.Present {
		return b.WriteBit(0)
	}
	if err := b.WriteBit(1); err != nil {
		return err
	}
	return TLBRef[T]{Value: r.Value}.StoreTLB(b)
}

func (r *TLBOptRef[T]) LoadTLB(p *parser.Parser) error {
	bit, err := p.ReadBit()
	if err != nil {
		return err
	}
	if bit == 0 {
		r.Present = false
		var zero T
		r.Value = zero
		return nil
	}
	r.Present = true
	ref := TLBRef[T]{Value: r.New()}
	if err := ref.LoadTLB(p); err != nil {
		return err
	}
	r.Value = ref.Value
	return nil
}
