package tlb

import (
	"github.com/ton-cellkit/cellkit/builder"
	"github.com/ton-cellkit/cellkit/internal/numint"
	"github.com/ton-cellkit/cellkit/parser"
)

// ConstLen adapts a numint.Value to the Object trait at a fixed bit width
// known at the schema level (e.g. `uint32`, `int8`) — the most common
// field shape in any TL-B schema.
type ConstLen struct {
	Bits   int
	Signed bool
	Value  numint.Value
}

// NewConstLen wraps an already-built numint.Value.
func NewConstLen(bits int, v numint.Value) ConstLen {
	return ConstLen{Bits: bits, Signed: v.Signed(), Value: v}
}

func (c ConstLen) StoreTLB(b *builder.Builder) error {
	return b.WriteNum(c.Value, c.Bits)
}

func (c *ConstLen) LoadTLB(p *parser.Parser) error {
	data, err := p.ReadBits(c.Bits)
	if err != nil {
		return err
	}
	if c.Signed {
		c.Value = numint.Int(numint.ParseInt(data, c.Bits))
	} else {
		c.Value = numint.Uint(numint.ParseUint(data, c.Bits))
	}
	return nil
}
