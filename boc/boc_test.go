package boc

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ton-cellkit/cellkit/builder"
	"github.com/ton-cellkit/cellkit/cell"
	"github.com/ton-cellkit/cellkit/internal/numint"
)

func buildLeaf(t *testing.T, v byte) *cell.Cell {
	t.Helper()
	b := builder.New()
	require.NoError(t, b.WriteNum(numint.Uint(uint64(v)), 8))
	c, err := b.Build()
	require.NoError(t, err)
	return c
}

func TestEncodeDecodeSingleRoot(t *testing.T) {
	leaf := buildLeaf(t, 0x42)
	b := builder.New()
	require.NoError(t, b.WriteRef(leaf))
	root, err := b.Build()
	require.NoError(t, err)

	data, err := EncodeSingleRoot(root)
	require.NoError(t, err)

	roots, err := Decode(data, DefaultLimits())
	require.NoError(t, err)
	require.Len(t, roots, 1)
	require.Equal(t, root.Hash(), roots[0].Hash())
	require.Equal(t, 1, roots[0].RefCount())
	require.Equal(t, leaf.Hash(), roots[0].Ref(0).Hash())
}

func TestEncodeDedupesSharedChild(t *testing.T) {
	shared := buildLeaf(t, 0x07)

	ba := builder.New()
	require.NoError(t, ba.WriteRef(shared))
	a, err := ba.Build()
	require.NoError(t, err)

	bb := builder.New()
	require.NoError(t, bb.WriteRef(shared))
	require.NoError(t, bb.WriteRef(a))
	root, err := bb.Build()
	require.NoError(t, err)

	data, err := Encode([]*cell.Cell{root}, EncodeOptions{WithCRC32C: true})
	require.NoError(t, err)

	roots, err := Decode(data, DefaultLimits())
	require.NoError(t, err)
	require.Equal(t, root.Hash(), roots[0].Hash())
	require.Equal(t, roots[0].Ref(0).Hash(), roots[0].Ref(1).Ref(0).Hash())
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := Decode([]byte{0, 0, 0, 0, 0, 0, 0, 0}, DefaultLimits())
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestDecodeRejectsCRCMismatch(t *testing.T) {
	root := buildLeaf(t, 1)
	data, err := EncodeSingleRoot(root)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xFF

	_, err = Decode(data, DefaultLimits())
	require.ErrorIs(t, err, ErrCRCMismatch)
}

func TestDecodeRejectsOversizedInput(t *testing.T) {
	root := buildLeaf(t, 1)
	data, err := EncodeSingleRoot(root)
	require.NoError(t, err)

	limits := DefaultLimits()
	limits.MaxTotalSize = len(data) - 1
	_, err = Decode(data, limits)
	require.ErrorIs(t, err, ErrLimitExceeded)
}

func TestEncodeWithIndexRoundTrips(t *testing.T) {
	leaf := buildLeaf(t, 9)
	b := builder.New()
	require.NoError(t, b.WriteRef(leaf))
	root, err := b.Build()
	require.NoError(t, err)

	data, err := Encode([]*cell.Cell{root}, EncodeOptions{WithCRC32C: true, WithIndex: true})
	require.NoError(t, err)

	roots, err := Decode(data, DefaultLimits())
	require.NoError(t, err)
	require.Equal(t, root.Hash(), roots[0].Hash())
}
