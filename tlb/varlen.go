package tlb

import (
	"fmt"

	"github.com/ton-cellkit/cellkit/builder"
	"github.com/ton-cellkit/cellkit/internal/numint"
	"github.com/ton-cellkit/cellkit/parser"
)

// VarLenBytes adapts a byte string prefixed by its own length, written in
// `lenBits`-wide whole-byte units (TL-B's `var_uint`/`VarUInteger` shape
// generalized to raw bytes) — used for fields like message bodies whose
// length isn't known at the schema level but is bounded.
type VarLenBytes struct {
	LenBits int
	Data    []byte
}

func NewVarLenBytes(lenBits int, data []byte) VarLenBytes {
	return VarLenBytes{LenBits: lenBits, Data: data}
}

func (v VarLenBytes) StoreTLB(b *builder.Builder) error {
	n := len(v.Data)
	maxN := 1 << uint(v.LenBits)
	if n >= maxN {
		return fmt.Errorf("tlb: VarLenBytes data is %d bytes, max %d", n, maxN-1)
	}
	if err := b.WriteNum(numint.Uint(uint64(n)), v.LenBits); err != nil {
		return err
	}
	return b.WriteBits(v.Data, n*8)
}

func (v *VarLenBytes) LoadTLB(p *parser.Parser) error {
	lenRaw, err := p.ReadUint(v.LenBits)
	if err != nil {
		return err
	}
	data, err := p.ReadBits(int(lenRaw) * 8)
	if err != nil {
		return err
	}
	v.Data = data[:lenRaw]
	return nil
}

// VarLenBits is the bit-granular sibling of VarLenBytes: the length field
// counts bits, not bytes, used for fields like AddrExtern's address and
// Anycast's rewrite prefix in the address package.
type VarLenBits struct {
	LenBits int
	Bits    int
	Data    []byte
}

func NewVarLenBits(lenBits, bits int, data []byte) VarLenBits {
	return VarLenBits{LenBits: lenBits, Bits: bits, Data: data}
}

func (v VarLenBits) StoreTLB(b *builder.Builder) error {
	maxN := 1 << uint(v.LenBits)
	if v.Bits >= maxN {
		return fmt.Errorf("tlb: VarLenBits data is %d bits, max %d", v.Bits, maxN-1)
	}
	if err := b.WriteNum(numint.Uint(uint64(v.Bits)), v.LenBits); err != nil {
		return err
	}
	return b.WriteBits(v.Data, v.Bits)
}

func (v *VarLenBits) LoadTLB(p *parser.Parser) error {
	n, err := p.ReadUint(v.LenBits)
	if err != nil {
		return err
	}
	data, err := p.ReadBits(int(n))
	if err != nil {
		return err
	}
	v.Bits = int(n)
	v.Data = data
	return nil
}
