package address

import (
	"errors"
	"fmt"

	"github.com/ton-cellkit/cellkit/builder"
	"github.com/ton-cellkit/cellkit/internal/numint"
	"github.com/ton-cellkit/cellkit/parser"
	"github.com/ton-cellkit/cellkit/tlb"
)

// ErrAddressParse covers base64 length/CRC failures and anycast rewrite
// failures encountered while turning wire or string forms into a
// TonAddress.
var ErrAddressParse = errors.New("address: parse failure")

// Anycast is the optional address-prefix rewrite TL-B attaches ahead of an
// AddrStd/AddrVar payload: `anycast_info$_ depth:(#<= 30) rewrite_pfx:(bits depth) = Anycast;`
type Anycast struct {
	Depth      int
	RewritePfx []byte
}

func (a Anycast) StoreTLB(b *builder.Builder) error {
	return tlb.VarLenBits{LenBits: 5, Bits: a.Depth, Data: a.RewritePfx}.StoreTLB(b)
}

func (a *Anycast) LoadTLB(p *parser.Parser) error {
	var v tlb.VarLenBits
	v.LenBits = 5
	if err := v.LoadTLB(p); err != nil {
		return err
	}
	a.Depth = v.Bits
	a.RewritePfx = v.Data
	return nil
}

// MsgAddress is the on-chain tagged-union address type: `addr_none$00`,
// `addr_extern$01`, `addr_std$10`, `addr_var$11`.
type MsgAddress interface {
	tlb.Storable
	isMsgAddress()
}

// AddrNone is the empty address, `addr_none$00 = MsgAddress;`.
type AddrNone struct{}

func (AddrNone) isMsgAddress() {}

func (AddrNone) StoreTLB(b *builder.Builder) error { return nil }

func (a *AddrNone) LoadTLB(p *parser.Parser) error { return nil }

// AddrExtern is an external (off-chain) address:
// `addr_extern$01 len:(## 9) external_address:(bits len) = MsgAddress;`
type AddrExtern struct {
	Address []byte
	Bits    int
}

func (AddrExtern) isMsgAddress() {}

func (a AddrExtern) StoreTLB(b *builder.Builder) error {
	return (tlb.VarLenBits{LenBits: 9, Bits: a.Bits, Data: a.Address}).StoreTLB(b)
}

func (a *AddrExtern) LoadTLB(p *parser.Parser) error {
	var v tlb.VarLenBits
	v.LenBits = 9
	if err := v.LoadTLB(p); err != nil {
		return err
	}
	a.Bits = v.Bits
	a.Address = v.Data
	return nil
}

// AddrStd is the common on-chain address shape:
// `addr_std$10 anycast:(Maybe Anycast) workchain_id:int8 address:bits256 = MsgAddress;`
type AddrStd struct {
	Anycast    *Anycast
	Workchain  int8
	Address    TonHash
}

func (AddrStd) isMsgAddress() {}

func (a AddrStd) StoreTLB(b *builder.Builder) error {
	if err := storeMaybeAnycast(b, a.Anycast); err != nil {
		return err
	}
	if err := b.WriteNum(numint.Int(int64(a.Workchain)), 8); err != nil {
		return err
	}
	return a.Address.StoreTLB(b)
}

func (a *AddrStd) LoadTLB(p *parser.Parser) error {
	anc, err := loadMaybeAnycast(p)
	if err != nil {
		return err
	}
	wc, err := p.ReadInt(8)
	if err != nil {
		return err
	}
	var h TonHash
	if err := h.LoadTLB(p); err != nil {
		return err
	}
	a.Anycast = anc
	a.Workchain = int8(wc)
	a.Address = h
	return nil
}

// AddrVar is the variable-length on-chain address shape:
// `addr_var$11 anycast:(Maybe Anycast) addr_len:(## 9) workchain_id:int32 address:(bits addr_len) = MsgAddress;`
type AddrVar struct {
	Anycast   *Anycast
	Workchain int32
	Address   []byte
	AddrBits  int
}

func (AddrVar) isMsgAddress() {}

func (a AddrVar) StoreTLB(b *builder.Builder) error {
	if err := storeMaybeAnycast(b, a.Anycast); err != nil {
		return err
	}
	if err := b.WriteNum(numint.Uint(uint64(a.AddrBits)), 9); err != nil {
		return err
	}
	if err := b.WriteNum(numint.Int(int64(a.Workchain)), 32); err != nil {
		return err
	}
	return b.WriteBits(a.Address, a.AddrBits)
}

func (a *AddrVar) LoadTLB(p *parser.Parser) error {
	anc, err := loadMaybeAnycast(p)
	if err != nil {
		return err
	}
	n, err := p.ReadUint(9)
	if err != nil {
		return err
	}
	wc, err := p.ReadInt(32)
	if err != nil {
		return err
	}
	addr, err := p.ReadBits(int(n))
	if err != nil {
		return err
	}
	a.Anycast = anc
	a.AddrBits = int(n)
	a.Workchain = int32(wc)
	a.Address = addr
	return nil
}

func storeMaybeAnycast(b *builder.Builder, a *Anycast) error {
	if a == nil {
		return b.WriteBit(0)
	}
	if err := b.WriteBit(1); err != nil {
		return err
	}
	return a.StoreTLB(b)
}

func loadMaybeAnycast(p *parser.Parser) (*Anycast, error) {
	bit, err := p.ReadBit()
	if err != nil {
		return nil, err
	}
	if bit == 0 {
		return nil, nil
	}
	var a Anycast
	if err := a.LoadTLB(p); err != nil {
		return nil, err
	}
	return &a, nil
}

var msgAddressVariants = []tlb.Variant{
	{Name: "none", Tag: 0b00, TagBits: 2, New: func() tlb.Loadable { return &AddrNone{} }},
	{Name: "extern", Tag: 0b01, TagBits: 2, New: func() tlb.Loadable { return &AddrExtern{} }},
	{Name: "std", Tag: 0b10, TagBits: 2, New: func() tlb.Loadable { return &AddrStd{} }},
	{Name: "var", Tag: 0b11, TagBits: 2, New: func() tlb.Loadable { return &AddrVar{} }},
}

// LoadMsgAddress reads a MsgAddress sum value, dispatching on its 2-bit tag.
func LoadMsgAddress(p *parser.Parser) (MsgAddress, error) {
	v, err := tlb.LoadSum(p, msgAddressVariants)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAddressParse, err)
	}
	ma, ok := v.(MsgAddress)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected variant %T", ErrAddressParse, v)
	}
	return ma, nil
}

// StoreMsgAddress writes a into b with its variant tag.
func StoreMsgAddress(b *builder.Builder, a MsgAddress) error {
	switch v := a.(type) {
	case AddrNone:
		return tlb.StoreSum(b, 0b00, 2, v)
	case *AddrNone:
		return tlb.StoreSum(b, 0b00, 2, v)
	case AddrExtern:
		return tlb.StoreSum(b, 0b01, 2, v)
	case *AddrExtern:
		return tlb.StoreSum(b, 0b01, 2, v)
	case AddrStd:
		return tlb.StoreSum(b, 0b10, 2, v)
	case *AddrStd:
		return tlb.StoreSum(b, 0b10, 2, v)
	case AddrVar:
		return tlb.StoreSum(b, 0b11, 2, v)
	case *AddrVar:
		return tlb.StoreSum(b, 0b11, 2, v)
	default:
		return fmt.Errorf("%w: unknown MsgAddress implementation %T", ErrAddressParse, a)
	}
}
