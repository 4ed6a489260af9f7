// Package tlb implements the TL-B (Type Language - Binary) read/write
// trait (component C8) and its standard adapters (component C9): the
// uniform way every typed record in this module serializes to and from a
// cell. The trait itself is a pair of small interfaces rather than a
// generic type parameter, matching this module's broader preference for
// interfaces over generic constraints (see DESIGN.md, internal/numint)
// and hivekit's own complete avoidance of generics.
package tlb

import (
	"errors"
	"fmt"

	"github.com/ton-cellkit/cellkit/builder"
	"github.com/ton-cellkit/cellkit/cell"
	"github.com/ton-cellkit/cellkit/parser"
)

// ErrNoMatchingVariant is returned when none of a sum type's constructors'
// tag prefixes match the next bits in the input.
var ErrNoMatchingVariant = errors.New("tlb: no constructor tag matches input")

// Storable is anything that can serialize itself into a builder.
type Storable interface {
	StoreTLB(b *builder.Builder) error
}

// Loadable is anything that can deserialize itself from a parser.
type Loadable interface {
	LoadTLB(p *parser.Parser) error
}

// Object is the full TL-B trait: a type that can both store and load
// itself. Struct-shaped (product) TL-B types implement this directly;
// sum-shaped (variant) types are usually modeled as an interface plus a
// Variant table (see Variant/LoadSum below), since a single Go struct cannot
// hold "one of several alternative shapes" without an embedded tag.
type Object interface {
	Storable
	Loadable
}

// Store is a convenience wrapper that builds a fresh cell from a single
// Storable.
func Store(o Storable) (*cell.Cell, error) {
	b := builder.New()
	if err := o.StoreTLB(b); err != nil {
		return nil, fmt.Errorf("tlb: store: %w", err)
	}
	c, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("tlb: store: %w", err)
	}
	return c, nil
}

// Load is a convenience wrapper that parses a single Loadable from the
// root of c, requiring the whole cell to be consumed.
func Load(c *cell.Cell, o Loadable) error {
	p := parser.New(c)
	if err := o.LoadTLB(p); err != nil {
		return fmt.Errorf("tlb: load: %w", err)
	}
	return p.EnsureEmpty()
}

// Variant describes one constructor of a sum type: its bit-prefix tag and
// a constructor for a fresh, zero-valued instance to load into.
type Variant struct {
	Name    string
	Tag     uint64
	TagBits int
	New     func() Loadable
}

// LoadSum reads the next TagBits-wide prefix for each candidate (longest
// tag first is the caller's responsibility — ties are resolved in the
// order variants are given) and dispatches to the first match.
func LoadSum(p *parser.Parser, variants []Variant) (Loadable, error) {
	for _, v := range variants {
		if v.TagBits == 0 {
			inst := v.New()
			if err := inst.LoadTLB(p); err != nil {
				return nil, fmt.Errorf("tlb: variant %s: %w", v.Name, err)
			}
			return inst, nil
		}
		peek, err := p.PreloadBits(v.TagBits)
		if err != nil {
			continue
		}
		got := bitsToUint(peek, v.TagBits)
		if got != v.Tag {
			continue
		}
		if _, err := p.ReadBits(v.TagBits); err != nil {
			return nil, err
		}
		inst := v.New()
		if err := inst.LoadTLB(p); err != nil {
			return nil, fmt.Errorf("tlb: variant %s: %w", v.Name, err)
		}
		return inst, nil
	}
	return nil, ErrNoMatchingVariant
}

// StoreSum writes tag then the constructor's own body.
func StoreSum(b *builder.Builder, tag uint64, tagBits int, o Storable) error {
	if tagBits > 0 {
		if err := b.WriteBitsWithOffset(uintToBits(tag, tagBits), tagBits, 64-tagBits); err != nil {
			return err
		}
	}
	return o.StoreTLB(b)
}

func bitsToUint(data []byte, n int) uint64 {
	var v uint64
	for i := 0; i < n; i++ {
		bit := (data[i/8] >> (7 - uint(i%8))) & 1
		v = v<<1 | uint64(bit)
	}
	return v
}

func uintToBits(v uint64, n int) []byte {
	out := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return out
}
