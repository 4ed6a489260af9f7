package dict

import (
	"fmt"
	"math/bits"

	"github.com/ton-cellkit/cellkit/builder"
	"github.com/ton-cellkit/cellkit/internal/numint"
	"github.com/ton-cellkit/cellkit/parser"
)

// HmLabel is TL-B's edge label for one Patricia tree node, in one of three
// schemes chosen by whichever costs fewest bits for the label being stored:
//
//	hml_short$0   {m:#} {n:#} len:(Unary ~n) s:(n * Bit)            = HmLabel ~n m;
//	hml_long$10   {m:#} n:(#<= m) s:(n * Bit)                       = HmLabel ~n m;
//	hml_same$11   {m:#} v:Bit n:(#<= m)                             = HmLabel ~n m;
//
// m is the maximum possible label length at this point in the tree (the
// number of key bits not yet consumed by an ancestor edge or fork
// selector); it bounds the width of the "long"/"same" fixed-size length
// field but is never itself stored.

// ceilBitsFor returns the width in bits of a "#<= m" field: the number of
// bits needed to store any integer in [0, m].
func ceilBitsFor(m int) int {
	if m == 0 {
		return 0
	}
	return bits.Len(uint(m))
}

// writeLabel picks the cheapest of the three schemes for edge (of length
// len(edge), all bits significant) given a budget of m remaining bits, and
// writes it.
func writeLabel(b *builder.Builder, edge bitSeq, m int) error {
	l := len(edge)
	widthBits := ceilBitsFor(m)

	costShort := 1 + (l + 1) + l
	costLong := 2 + widthBits + l
	costSame := -1
	if l > 0 && allSame(edge) {
		costSame = 2 + 1 + widthBits
	}

	switch {
	case costSame >= 0 && costSame <= costShort && costSame <= costLong:
		return writeSameLabel(b, edge, widthBits)
	case costLong <= costShort:
		return writeLongLabel(b, edge, widthBits)
	default:
		return writeShortLabel(b, edge)
	}
}

func writeShortLabel(b *builder.Builder, edge bitSeq) error {
	if err := b.WriteBit(0); err != nil {
		return err
	}
	for i := 0; i < len(edge); i++ {
		if err := b.WriteBit(1); err != nil {
			return err
		}
	}
	if err := b.WriteBit(0); err != nil {
		return err
	}
	return b.WriteBits(edge.pack(), len(edge))
}

func writeLongLabel(b *builder.Builder, edge bitSeq, widthBits int) error {
	if err := b.WriteBits([]byte{0x80}, 2); err != nil { // "10"
		return err
	}
	if err := b.WriteNum(numint.Uint(uint64(len(edge))), widthBits); err != nil {
		return err
	}
	return b.WriteBits(edge.pack(), len(edge))
}

func writeSameLabel(b *builder.Builder, edge bitSeq, widthBits int) error {
	if err := b.WriteBits([]byte{0xc0}, 2); err != nil { // "11"
		return err
	}
	if err := b.WriteBit(edge[0]); err != nil {
		return err
	}
	return b.WriteNum(numint.Uint(uint64(len(edge))), widthBits)
}

// readLabel reads an HmLabel given the current m budget.
func readLabel(p *parser.Parser, m int) (bitSeq, error) {
	tag0, err := p.ReadBit()
	if err != nil {
		return nil, err
	}
	if tag0 == 0 {
		return readShortLabel(p, m)
	}
	tag1, err := p.ReadBit()
	if err != nil {
		return nil, err
	}
	if tag1 == 0 {
		return readLongLabel(p, m)
	}
	return readSameLabel(p, m)
}

func readShortLabel(p *parser.Parser, m int) (bitSeq, error) {
	n := 0
	for {
		bit, err := p.ReadBit()
		if err != nil {
			return nil, err
		}
		if bit == 0 {
			break
		}
		n++
		if n > m {
			return nil, fmt.Errorf("dict: short label unary length exceeds budget %d", m)
		}
	}
	raw, err := p.ReadBits(n)
	if err != nil {
		return nil, err
	}
	return packedToBitSeq(raw, n), nil
}

func readLongLabel(p *parser.Parser, m int) (bitSeq, error) {
	widthBits := ceilBitsFor(m)
	n := 0
	if widthBits > 0 {
		v, err := p.ReadUint(widthBits)
		if err != nil {
			return nil, err
		}
		n = int(v)
	}
	if n > m {
		return nil, fmt.Errorf("dict: long label length %d exceeds budget %d", n, m)
	}
	raw, err := p.ReadBits(n)
	if err != nil {
		return nil, err
	}
	return packedToBitSeq(raw, n), nil
}

func readSameLabel(p *parser.Parser, m int) (bitSeq, error) {
	v, err := p.ReadBit()
	if err != nil {
		return nil, err
	}
	widthBits := ceilBitsFor(m)
	n := 0
	if widthBits > 0 {
		w, err := p.ReadUint(widthBits)
		if err != nil {
			return nil, err
		}
		n = int(w)
	}
	if n > m {
		return nil, fmt.Errorf("dict: same label length %d exceeds budget %d", n, m)
	}
	out := make(bitSeq, n)
	for i := range out {
		out[i] = v
	}
	return out, nil
}
