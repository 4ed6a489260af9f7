package parser

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ton-cellkit/cellkit/builder"
	"github.com/ton-cellkit/cellkit/internal/numint"
)

func TestReadBackWrittenNumbers(t *testing.T) {
	b := builder.New()
	require.NoError(t, b.WriteNum(numint.Uint(0xAA), 8))
	require.NoError(t, b.WriteNum(numint.Int(-5), 8))
	c, err := b.Build()
	require.NoError(t, err)

	p := New(c)
	u, err := p.ReadUint(8)
	require.NoError(t, err)
	require.Equal(t, uint64(0xAA), u)

	i, err := p.ReadInt(8)
	require.NoError(t, err)
	require.Equal(t, int64(-5), i)

	require.NoError(t, p.EnsureEmpty())
}

func TestReadRefAndSlice(t *testing.T) {
	leaf, err := builder.New().Build()
	require.NoError(t, err)

	b := builder.New()
	require.NoError(t, b.WriteRef(leaf))
	c, err := b.Build()
	require.NoError(t, err)

	p := New(c)
	require.Equal(t, 1, p.RefsLeft())
	child, err := p.ReadCellSlice()
	require.NoError(t, err)
	require.Equal(t, leaf.Hash(), child.Cell().Hash())

	_, err = p.ReadRef()
	require.ErrorIs(t, err, ErrNoMoreRefs)
}

func TestEnsureEmptyFailsOnTrailingData(t *testing.T) {
	b := builder.New()
	require.NoError(t, b.WriteNum(numint.Uint(1), 8))
	c, err := b.Build()
	require.NoError(t, err)

	p := New(c)
	require.ErrorIs(t, p.EnsureEmpty(), ErrNotExhausted)
}

func TestReadBigIntRoundTrip(t *testing.T) {
	v := big.NewInt(-123456789)
	b := builder.New()
	require.NoError(t, b.WriteNum(numint.BigInt(v), 64))
	c, err := b.Build()
	require.NoError(t, err)

	p := New(c)
	got, err := p.ReadBigInt(64, true)
	require.NoError(t, err)
	require.Equal(t, 0, v.Cmp(got))
}
