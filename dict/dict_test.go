package dict

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ton-cellkit/cellkit/builder"
	"github.com/ton-cellkit/cellkit/cell"
	"github.com/ton-cellkit/cellkit/internal/numint"
	"github.com/ton-cellkit/cellkit/parser"
)

func leafCell(t *testing.T, v uint64) *cell.Cell {
	t.Helper()
	b := builder.New()
	require.NoError(t, b.WriteNum(numint.Uint(v), 32))
	c, err := b.Build()
	require.NoError(t, err)
	return c
}

func TestDictRoundTripSmall(t *testing.T) {
	d := New(16)
	require.NoError(t, d.Set(big.NewInt(1), leafCell(t, 111)))
	require.NoError(t, d.Set(big.NewInt(2), leafCell(t, 222)))
	require.NoError(t, d.Set(big.NewInt(300), leafCell(t, 333)))

	b := builder.New()
	require.NoError(t, StoreDict(b, d))
	c, err := b.Build()
	require.NoError(t, err)

	got, err := LoadDict(parser.New(c), 16)
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())

	v, ok := got.Get(big.NewInt(300))
	require.True(t, ok)
	require.True(t, v.Equal(leafCell(t, 333)))
}

func TestDictEmptyEncodesAbsentBit(t *testing.T) {
	d := New(8)
	b := builder.New()
	require.NoError(t, StoreDict(b, d))
	c, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 1, c.BitLen())
	require.Equal(t, 0, c.RefCount())

	got, err := LoadDict(parser.New(c), 8)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestDictSingleEntrySameLabel(t *testing.T) {
	d := New(8)
	require.NoError(t, d.Set(big.NewInt(0), leafCell(t, 1)))

	b := builder.New()
	require.NoError(t, StoreDict(b, d))
	c, err := b.Build()
	require.NoError(t, err)

	got, err := LoadDict(parser.New(c), 8)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	v, ok := got.Get(big.NewInt(0))
	require.True(t, ok)
	require.True(t, v.Equal(leafCell(t, 1)))
}

func TestDictUnionAndDiff(t *testing.T) {
	a := New(8)
	require.NoError(t, a.Set(big.NewInt(1), leafCell(t, 10)))
	require.NoError(t, a.Set(big.NewInt(2), leafCell(t, 20)))

	b := New(8)
	require.NoError(t, b.Set(big.NewInt(2), leafCell(t, 99)))
	require.NoError(t, b.Set(big.NewInt(3), leafCell(t, 30)))

	u := Union(a, b)
	require.Equal(t, 3, u.Len())
	v, _ := u.Get(big.NewInt(2))
	require.True(t, v.Equal(leafCell(t, 99)))

	onlyInA, changed := Diff(a, b)
	require.Len(t, onlyInA, 1)
	require.Equal(t, big.NewInt(1), onlyInA[0])
	require.Len(t, changed, 1)
	require.Equal(t, big.NewInt(2), changed[0])
}

func TestDictKeysSortedAscending(t *testing.T) {
	d := New(16)
	require.NoError(t, d.Set(big.NewInt(500), leafCell(t, 1)))
	require.NoError(t, d.Set(big.NewInt(3), leafCell(t, 2)))
	require.NoError(t, d.Set(big.NewInt(42), leafCell(t, 3)))

	keys := d.Keys()
	require.Equal(t, []*big.Int{big.NewInt(3), big.NewInt(42), big.NewInt(500)}, keys)
}
