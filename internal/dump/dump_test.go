package dump

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ton-cellkit/cellkit/builder"
	"github.com/ton-cellkit/cellkit/dict"
	"github.com/ton-cellkit/cellkit/internal/numint"
)

func TestDumpCellIncludesTypeAndRefs(t *testing.T) {
	leafB := builder.New()
	require.NoError(t, leafB.WriteNum(numint.Uint(7), 8))
	leaf, err := leafB.Build()
	require.NoError(t, err)

	rootB := builder.New()
	require.NoError(t, rootB.WriteBit(1))
	require.NoError(t, rootB.WriteRef(leaf))
	root, err := rootB.Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, root, DefaultOptions()))
	out := buf.String()
	require.Contains(t, out, "cell[ordinary]")
	require.Contains(t, out, "bits=1 refs=1")
}

func TestDumpDictListsEntries(t *testing.T) {
	d := dict.New(8)
	b := builder.New()
	require.NoError(t, b.WriteNum(numint.Uint(42), 8))
	v, err := b.Build()
	require.NoError(t, err)
	require.NoError(t, d.Set(big.NewInt(5), v))

	var buf bytes.Buffer
	require.NoError(t, DumpDict(&buf, d, DefaultOptions()))
	require.Contains(t, buf.String(), "key=5")
}
