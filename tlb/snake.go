package tlb

import (
	"fmt"

	"github.com/ton-cellkit/cellkit/builder"
	"github.com/ton-cellkit/cellkit/cell"
	"github.com/ton-cellkit/cellkit/parser"
)

// SnakeData adapts an arbitrarily long byte string chained across
// successive cells, one ref deep at a time, each cell packing as many
// whole bytes as its remaining capacity allows before chaining to the
// next — directly grounded on hivekit's DB/DBList "big data" chain
// (hive/db.go), which splits an oversized registry value across as many
// linked data-block cells as needed. TON's version has no explicit block
// count or list cell: the chain just continues, ref by ref, until the
// data runs out.
type SnakeData struct {
	Bytes []byte
}

// maxBytesPerCell is the number of whole bytes of payload each chain link
// carries, leaving one ref free to continue the chain (1023 bits = 127
// whole bytes with 7 bits to spare; we round down to keep every link
// byte-aligned, matching how real wallet/NFT content cells are packed).
const maxBytesPerCell = 127

func (s SnakeData) StoreTLB(b *builder.Builder) error {
	room := min(b.BitsLeft()/8, maxBytesPerCell)
	if len(s.Bytes) <= room {
		return b.WriteBits(s.Bytes, len(s.Bytes)*8)
	}
	head := s.Bytes[:room]
	if err := b.WriteBits(head, room*8); err != nil {
		return err
	}
	rest := builder.New()
	if err := (SnakeData{Bytes: s.Bytes[room:]}).StoreTLB(rest); err != nil {
		return err
	}
	c, err := rest.Build()
	if err != nil {
		return err
	}
	return b.WriteRef(c)
}

func (s *SnakeData) LoadTLB(p *parser.Parser) error {
	data, err := readAllBytes(p)
	if err != nil {
		return err
	}
	s.Bytes = data
	return nil
}

func readAllBytes(p *parser.Parser) ([]byte, error) {
	n := p.BitsLeft()
	if n%8 != 0 {
		return nil, fmt.Errorf("tlb: SnakeData chunk is not byte-aligned (%d bits)", n)
	}
	chunk, err := p.ReadBits(n)
	if err != nil {
		return nil, err
	}
	out := append([]byte(nil), chunk...)

	if p.RefsLeft() == 0 {
		return out, nil
	}
	next, err := p.ReadCellSlice()
	if err != nil {
		return nil, err
	}
	tail, err := readAllBytes(next)
	if err != nil {
		return nil, err
	}
	return append(out, tail...), nil
}

// LoadSnakeCell is a convenience entry point parsing a whole cell as
// SnakeData from its root, without requiring callers to construct a
// Parser themselves.
func LoadSnakeCell(c *cell.Cell) (SnakeData, error) {
	var s SnakeData
	if err := s.LoadTLB(parser.New(c)); err != nil {
		return SnakeData{}, err
	}
	return s, nil
}
