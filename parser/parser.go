// Package parser implements the cell slice reader (component C6): a cursor
// over one cell's data bits plus an independent cursor over its child
// references, mirroring builder.Builder's write API for reads. This is the
// same "cell slice" concept real TON clients call a CellSlice/Slice, and
// corresponds to the read side of hivekit's Cell/DB views (internal/buf's
// bounds-checked access, generalized to bits).
package parser

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/ton-cellkit/cellkit/cell"
	"github.com/ton-cellkit/cellkit/internal/bitio"
	"github.com/ton-cellkit/cellkit/internal/numint"
)

// ErrNoMoreRefs is returned when reading a reference past the cell's ref
// count.
var ErrNoMoreRefs = errors.New("parser: no more references")

// ErrNotExhausted is returned by EnsureEmpty when a cell slice still has
// unread bits or references.
var ErrNotExhausted = errors.New("parser: cell slice not fully consumed")

// Parser is a cursor over a single cell's data and references. It does not
// recurse into children automatically; callers construct a new Parser over
// a child with New(child) when they choose to descend.
type Parser struct {
	src    *cell.Cell
	r      *bitio.Reader
	refPos int
}

// New returns a Parser positioned at the start of c.
func New(c *cell.Cell) *Parser {
	return &Parser{src: c, r: bitio.NewReader(c.Data(), c.BitLen())}
}

// Cell returns the underlying cell this parser reads from.
func (p *Parser) Cell() *cell.Cell { return p.src }

// BitsLeft returns the number of unread data bits.
func (p *Parser) BitsLeft() int { return p.r.Remaining() }

// RefsLeft returns the number of unread references.
func (p *Parser) RefsLeft() int { return p.src.RefCount() - p.refPos }

// ReadBit consumes and returns the next bit.
func (p *Parser) ReadBit() (byte, error) {
	b, err := p.r.ReadBit()
	if err != nil {
		return 0, fmt.Errorf("parser: %w", err)
	}
	return b, nil
}

// ReadBits consumes n bits, MSB-aligned in the returned slice.
func (p *Parser) ReadBits(n int) ([]byte, error) {
	out, err := p.r.ReadBits(n)
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}
	return out, nil
}

// PreloadBits returns the next n bits without consuming them.
func (p *Parser) PreloadBits(n int) ([]byte, error) {
	out, err := p.r.LookaheadBits(n)
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}
	return out, nil
}

// SkipBits advances the cursor by n bits without returning them.
func (p *Parser) SkipBits(n int) error {
	if err := p.r.SeekBits(n); err != nil {
		return fmt.Errorf("parser: %w", err)
	}
	return nil
}

// ReadUint reads an unsigned integer of up to 64 bits.
func (p *Parser) ReadUint(bits int) (uint64, error) {
	data, err := p.ReadBits(bits)
	if err != nil {
		return 0, err
	}
	return numint.ParseUint(data, bits), nil
}

// ReadInt reads a signed, two's-complement integer of up to 64 bits.
func (p *Parser) ReadInt(bits int) (int64, error) {
	data, err := p.ReadBits(bits)
	if err != nil {
		return 0, err
	}
	return numint.ParseInt(data, bits), nil
}

// ReadBigInt reads an arbitrary-width integer.
func (p *Parser) ReadBigInt(bits int, signed bool) (*big.Int, error) {
	data, err := p.ReadBits(bits)
	if err != nil {
		return nil, err
	}
	return numint.ParseBigInt(data, bits, signed), nil
}

// ReadUint256 reads a value of up to 256 bits into a fixed-width integer.
func (p *Parser) ReadUint256(bits int) (*uint256.Int, error) {
	data, err := p.ReadBits(bits)
	if err != nil {
		return nil, err
	}
	return numint.ParseUint256(data, bits), nil
}

// ReadRef consumes and returns the next child reference.
func (p *Parser) ReadRef() (*cell.Cell, error) {
	if p.RefsLeft() < 1 {
		return nil, ErrNoMoreRefs
	}
	c := p.src.Ref(p.refPos)
	p.refPos++
	return c, nil
}

// ReadCellSlice returns a new Parser over the next child reference, i.e.
// "load the ref and start reading it" in one step.
func (p *Parser) ReadCellSlice() (*Parser, error) {
	c, err := p.ReadRef()
	if err != nil {
		return nil, err
	}
	return New(c), nil
}

// EnsureEmpty fails unless every bit and reference has been consumed —
// TL-B's implicit "no trailing garbage" rule for a fully-parsed value.
func (p *Parser) EnsureEmpty() error {
	if !p.r.EnsureEmpty() || p.RefsLeft() != 0 {
		return ErrNotExhausted
	}
	return nil
}
