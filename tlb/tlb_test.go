package tlb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ton-cellkit/cellkit/builder"
	"github.com/ton-cellkit/cellkit/internal/numint"
	"github.com/ton-cellkit/cellkit/parser"
)

type u32 struct{ v ConstLen }

func (u *u32) StoreTLB(b *builder.Builder) error { return u.v.StoreTLB(b) }
func (u *u32) LoadTLB(p *parser.Parser) error     { return u.v.LoadTLB(p) }

func newU32(val uint64) *u32 {
	return &u32{v: NewConstLen(32, numint.Uint(val))}
}

func TestConstLenRoundTrip(t *testing.T) {
	o := newU32(0xDEADBEEF)
	c, err := Store(o)
	require.NoError(t, err)

	got := &u32{v: ConstLen{Bits: 32}}
	require.NoError(t, Load(c, got))
	require.Equal(t, uint64(0xDEADBEEF), numint.ParseUint(got.v.Value.Bytes(32), 32))
}

func TestVarLenBytesRoundTrip(t *testing.T) {
	v := NewVarLenBytes(8, []byte("hello tlb"))
	b := builder.New()
	require.NoError(t, v.StoreTLB(b))
	c, err := b.Build()
	require.NoError(t, err)

	var got VarLenBytes
	got.LenBits = 8
	require.NoError(t, got.LoadTLB(parser.New(c)))
	require.Equal(t, []byte("hello tlb"), got.Data)
}

func TestTLBRefRoundTrip(t *testing.T) {
	inner := newU32(7)
	ref := TLBRef[*u32]{Value: inner}
	b := builder.New()
	require.NoError(t, ref.StoreTLB(b))
	c, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 1, c.RefCount())

	var got TLBRef[*u32]
	got.Value = &u32{v: ConstLen{Bits: 32}}
	p := parser.New(c)
	require.NoError(t, got.LoadTLB(p))
}

func TestTLBOptRefAbsent(t *testing.T) {
	var o TLBOptRef[*u32]
	o.New = func() *u32 { return &u32{v: ConstLen{Bits: 32}} }
	b := builder.New()
	require.NoError(t, o.StoreTLB(b))
	c, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 0, c.RefCount())

	var got TLBOptRef[*u32]
	got.New = func() *u32 { return &u32{v: ConstLen{Bits: 32}} }
	require.NoError(t, got.LoadTLB(parser.New(c)))
	require.False(t, got.Present)
}

func TestSnakeDataChainsAcrossCells(t *testing.T) {
	payload := make([]byte, 300)
	for i := range payload {
		payload[i] = byte(i)
	}
	s := SnakeData{Bytes: payload}
	b := builder.New()
	require.NoError(t, s.StoreTLB(b))
	c, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 1, c.RefCount())

	got, err := LoadSnakeCell(c)
	require.NoError(t, err)
	require.Equal(t, payload, got.Bytes)
}

func TestLoadSumDispatchesByTag(t *testing.T) {
	b := builder.New()
	require.NoError(t, StoreSum(b, 0b10, 2, newU32(99)))
	c, err := b.Build()
	require.NoError(t, err)

	variants := []Variant{
		{Name: "a", Tag: 0b01, TagBits: 2, New: func() Loadable { return &u32{v: ConstLen{Bits: 32}} }},
		{Name: "b", Tag: 0b10, TagBits: 2, New: func() Loadable { return &u32{v: ConstLen{Bits: 32}} }},
	}
	inst, err := LoadSum(parser.New(c), variants)
	require.NoError(t, err)
	got, ok := inst.(*u32)
	require.True(t, ok)
	require.Equal(t, uint64(99), numint.ParseUint(got.v.Value.Bytes(32), 32))
}
