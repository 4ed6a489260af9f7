package builder

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ton-cellkit/cellkit/cell"
	"github.com/ton-cellkit/cellkit/internal/numint"
)

func TestWriteNumThenBuild(t *testing.T) {
	b := New()
	require.NoError(t, b.WriteNum(numint.Uint(0xAA), 8))
	require.NoError(t, b.WriteNum(numint.Uint(0x5), 4))
	c, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 12, c.BitLen())
	require.Equal(t, []byte{0xAA, 0x50}, c.Data())
}

func TestCellFullRejectsOverflow(t *testing.T) {
	b := New()
	require.NoError(t, b.WriteBits(make([]byte, 128), 1023))
	require.ErrorIs(t, b.WriteBit(1), ErrCellFull)
}

func TestTooManyRefsRejected(t *testing.T) {
	b := New()
	leaf, err := New().Build()
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		require.NoError(t, b.WriteRef(leaf))
	}
	require.ErrorIs(t, b.WriteRef(leaf), ErrTooManyRefs)
}

func TestWriteNumTooWideFails(t *testing.T) {
	b := New()
	err := b.WriteNum(numint.Uint(256), 8)
	require.ErrorIs(t, err, numint.ErrNumberTooWide)
}

func TestWriteCellSplicesBitsAndRefs(t *testing.T) {
	leaf, err := New().Build()
	require.NoError(t, err)

	inner := New()
	require.NoError(t, inner.WriteNum(numint.Uint(1), 8))
	require.NoError(t, inner.WriteRef(leaf))
	innerCell, err := inner.Build()
	require.NoError(t, err)

	outer := New()
	require.NoError(t, outer.WriteCell(innerCell))
	outerCell, err := outer.Build()
	require.NoError(t, err)

	require.Equal(t, innerCell.BitLen(), outerCell.BitLen())
	require.Equal(t, 1, outerCell.RefCount())
}

func TestBuildExoticLibraryRef(t *testing.T) {
	b := New()
	require.NoError(t, b.WriteNum(numint.Uint(2), 8))
	hash := make([]byte, 32)
	for i := range hash {
		hash[i] = byte(i)
	}
	require.NoError(t, b.WriteBits(hash, 256))
	c, err := b.BuildExotic(cell.LibraryRef)
	require.NoError(t, err)
	require.Equal(t, cell.LibraryRef, c.Type())
}
