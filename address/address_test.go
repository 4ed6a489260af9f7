package address

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ton-cellkit/cellkit/builder"
	"github.com/ton-cellkit/cellkit/parser"
)

func TestTonAddressToHexAndBase64(t *testing.T) {
	h, err := HashFromHex("e4d954ef9f4e1250a26b5bbad76a1cdd17cfd08babad6f4c23e372270aef6f76")
	require.NoError(t, err)
	addr := TonAddress{Workchain: 0, Hash: h}

	require.Equal(t, "0:"+h.Hex(), addr.ToHex())
	require.Equal(t, "EQDk2VTvn04SUKJrW7rXahzdF8_Qi6utb0wj43InCu9vdjrR", addr.ToBase64(true, false, true))
	require.Equal(t, "EQDk2VTvn04SUKJrW7rXahzdF8/Qi6utb0wj43InCu9vdjrR", addr.ToBase64(true, false, false))
}

func TestTonAddressParseHexAndBase64Agree(t *testing.T) {
	const b64 = "EQDk2VTvn04SUKJrW7rXahzdF8_Qi6utb0wj43InCu9vdjrR"
	viaB64, err := ParseTonAddress(b64)
	require.NoError(t, err)

	viaHex, err := ParseTonAddress(viaB64.ToHex())
	require.NoError(t, err)
	require.Equal(t, viaB64, viaHex)

	viaOtherB64, err := ParseTonAddress(viaB64.ToBase64(true, false, false))
	require.NoError(t, err)
	require.Equal(t, viaB64, viaOtherB64)
}

func TestTonAddressRejectsBadCRC(t *testing.T) {
	const b64 = "EQDk2VTvn04SUKJrW7rXahzdF8_Qi6utb0wj43InCu9vdjrS"
	_, err := ParseTonAddress(b64)
	require.Error(t, err)
}

func TestMsgAddressNoneRoundTrip(t *testing.T) {
	b := builder.New()
	require.NoError(t, StoreMsgAddress(b, AddrNone{}))
	c, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 2, c.BitLen())

	got, err := LoadMsgAddress(parser.New(c))
	require.NoError(t, err)
	require.IsType(t, &AddrNone{}, got)
}

func TestTonAddressRoundTripsThroughMsgAddress(t *testing.T) {
	h, err := HashFromHex("e4d954ef9f4e1250a26b5bbad76a1cdd17cfd08babad6f4c23e372270aef6f76")
	require.NoError(t, err)
	addr := TonAddress{Workchain: -1, Hash: h}

	b := builder.New()
	require.NoError(t, addr.StoreTLB(b))
	c, err := b.Build()
	require.NoError(t, err)

	var got TonAddress
	require.NoError(t, got.LoadTLB(parser.New(c)))
	require.Equal(t, addr, got)
}

func TestZeroAddressMapsToMsgAddressNone(t *testing.T) {
	b := builder.New()
	require.NoError(t, ZeroAddress.StoreTLB(b))
	c, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 2, c.BitLen())
}

func TestAnycastRewritesAddressPrefix(t *testing.T) {
	hash := TonHash{}
	for i := range hash {
		hash[i] = 0xAA
	}
	std := AddrStd{
		Anycast:   &Anycast{Depth: 8, RewritePfx: []byte{0xFF}},
		Workchain: 0,
		Address:   hash,
	}
	ta, err := FromMsgAddress(std)
	require.NoError(t, err)
	require.Equal(t, byte(0xFF), ta.Hash[0])
	require.Equal(t, byte(0xAA), ta.Hash[1])
}
