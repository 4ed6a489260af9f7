package cell

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptyCellIsStable(t *testing.T) {
	c1 := Empty
	c2, err := NewRaw(Ordinary, nil, 0, nil)
	require.NoError(t, err)
	require.Equal(t, c1.Hash(), c2.Hash())
	require.Equal(t, uint16(0), c1.Depth())
}

func TestMaxDataBitsBoundary(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 128) // 1024 bits available
	_, err := NewRaw(Ordinary, data, 1023, nil)
	require.NoError(t, err)

	_, err = NewRaw(Ordinary, data, 1024, nil)
	require.ErrorIs(t, err, ErrTooManyDataBits)
}

func TestMaxRefsBoundary(t *testing.T) {
	mk := func() *Cell {
		c, err := NewRaw(Ordinary, []byte{1}, 8, nil)
		require.NoError(t, err)
		return c
	}
	refs4 := []*Cell{mk(), mk(), mk(), mk()}
	_, err := NewRaw(Ordinary, nil, 0, refs4)
	require.NoError(t, err)

	refs5 := append(refs4, mk())
	_, err = NewRaw(Ordinary, nil, 0, refs5)
	require.ErrorIs(t, err, ErrTooManyRefs)
}

func TestOrdinaryHashDependsOnRefs(t *testing.T) {
	leafA, err := NewRaw(Ordinary, []byte{0x01}, 8, nil)
	require.NoError(t, err)
	leafB, err := NewRaw(Ordinary, []byte{0x02}, 8, nil)
	require.NoError(t, err)

	parentA, err := NewRaw(Ordinary, nil, 0, []*Cell{leafA})
	require.NoError(t, err)
	parentB, err := NewRaw(Ordinary, nil, 0, []*Cell{leafB})
	require.NoError(t, err)

	require.NotEqual(t, parentA.Hash(), parentB.Hash())
	require.Equal(t, uint16(1), parentA.Depth())
}

func TestLibraryRefSchema(t *testing.T) {
	payload := append([]byte{2}, bytes.Repeat([]byte{0xCD}, 32)...)
	c, err := NewRaw(LibraryRef, payload, LibraryRefDataBits, nil)
	require.NoError(t, err)
	require.Equal(t, LevelMask(0), c.LevelMask())

	_, err = NewRaw(LibraryRef, payload, LibraryRefDataBits, []*Cell{Empty})
	require.ErrorIs(t, err, ErrBadExoticRefCount)

	bad := append([]byte{9}, bytes.Repeat([]byte{0xCD}, 32)...)
	_, err = NewRaw(LibraryRef, bad, LibraryRefDataBits, nil)
	require.ErrorIs(t, err, ErrBadExoticSchema)
}

func TestMerkleProofRequiresExactlyOneRef(t *testing.T) {
	payload := make([]byte, 35)
	payload[0] = 3
	_, err := NewRaw(MerkleProof, payload, MerkleProofBits, nil)
	require.ErrorIs(t, err, ErrBadExoticRefCount)

	_, err = NewRaw(MerkleProof, payload, MerkleProofBits, []*Cell{Empty, Empty})
	require.ErrorIs(t, err, ErrBadExoticRefCount)

	_, err = NewRaw(MerkleProof, payload, MerkleProofBits, []*Cell{Empty})
	require.NoError(t, err)
}

func TestMerkleUpdateRequiresExactlyTwoRefs(t *testing.T) {
	payload := make([]byte, 69)
	payload[0] = 4
	_, err := NewRaw(MerkleUpdate, payload, MerkleUpdateBits, []*Cell{Empty})
	require.ErrorIs(t, err, ErrBadExoticRefCount)

	_, err = NewRaw(MerkleUpdate, payload, MerkleUpdateBits, []*Cell{Empty, Empty})
	require.NoError(t, err)
}

func TestPrunedBranchLevelMasks(t *testing.T) {
	for _, mask := range []LevelMask{1, 2, 3} {
		n := mask.HashCount()
		payload := make([]byte, 2+n*(32+2))
		payload[0] = 1
		payload[1] = byte(mask)
		c, err := NewRaw(PrunedBranch, payload, len(payload)*8, nil)
		require.NoErrorf(t, err, "mask=%d", mask)
		require.Equal(t, mask, c.LevelMask())
		require.Equal(t, mask.Level(), c.Level())
	}
}

func TestPrunedBranchRejectsRefs(t *testing.T) {
	payload := make([]byte, 2+2*(32+2))
	payload[0] = 1
	payload[1] = 1
	_, err := NewRaw(PrunedBranch, payload, len(payload)*8, []*Cell{Empty})
	require.ErrorIs(t, err, ErrBadExoticRefCount)
}

func TestLegacyPrunedBranchAccepted(t *testing.T) {
	payload := bytes.Repeat([]byte{0x42}, 25) // 200 bits
	c, err := NewRaw(PrunedBranch, payload, legacyPrunedBits, nil)
	require.NoError(t, err)
	require.Equal(t, LevelMask(1), c.LevelMask())
}

func TestDataWithCompletionTag(t *testing.T) {
	c, err := NewRaw(Ordinary, []byte{0b10110000}, 4, nil)
	require.NoError(t, err)
	got := c.dataWithCompletionTag()
	require.Equal(t, []byte{0b10111000}, got)
}
