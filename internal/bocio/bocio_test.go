package bocio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ton-cellkit/cellkit/boc"
	"github.com/ton-cellkit/cellkit/builder"
	"github.com/ton-cellkit/cellkit/cell"
	"github.com/ton-cellkit/cellkit/internal/numint"
)

func TestEncodeDecodeFileRoundTrip(t *testing.T) {
	b := builder.New()
	require.NoError(t, b.WriteNum(numint.Uint(0xCAFEBABE), 32))
	leaf, err := b.Build()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "test.boc")
	require.NoError(t, EncodeFile(path, []*cell.Cell{leaf}, boc.EncodeOptions{WithCRC32C: true}))

	roots, err := DecodeFile(path, boc.DefaultLimits())
	require.NoError(t, err)
	require.Len(t, roots, 1)
	require.True(t, roots[0].Equal(leaf))
}
