package address

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/ton-cellkit/cellkit/builder"
	"github.com/ton-cellkit/cellkit/parser"
)

// TonAddress is the friendlier (workchain, hash) domain value most callers
// work with, distinct from the wire-level MsgAddress tagged union.
type TonAddress struct {
	Workchain int32
	Hash      TonHash
}

// ZeroAddress is the address corresponding to MsgAddressNone.
var ZeroAddress = TonAddress{Workchain: 0, Hash: ZeroHash}

// base64 user-friendly address tag bits.
const (
	tagBounceable    = 0x11
	tagNonBounceable = 0x51
	// bit 0x80 marks a testnet-only address in both of the above.
	testnetFlag = 0x80
)

// ToHex renders "workchain:hex-hash".
func (a TonAddress) ToHex() string {
	return fmt.Sprintf("%d:%s", a.Workchain, a.Hash.Hex())
}

// ToBase64 renders the 36-byte user-friendly form: a 1-byte tag, a 1-byte
// workchain (truncated to its low byte, matching TON's int8 workchain
// convention for standard addresses), the 32-byte hash, and a 2-byte
// CRC-16/XMODEM trailer — then base64-encodes the whole thing, standard or
// URL-safe alphabet per urlSafe.
func (a TonAddress) ToBase64(bounceable, testnet, urlSafe bool) string {
	var buf [36]byte
	tag := byte(tagNonBounceable)
	if bounceable {
		tag = tagBounceable
	}
	if testnet {
		tag |= testnetFlag
	}
	buf[0] = tag
	buf[1] = byte(a.Workchain)
	copy(buf[2:34], a.Hash[:])
	crc := crc16XModem(buf[:34])
	buf[34] = byte(crc >> 8)
	buf[35] = byte(crc)

	if urlSafe {
		return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(buf[:])
	}
	return base64.StdEncoding.EncodeToString(buf[:])
}

// String renders the canonical mainnet, bounceable, URL-safe form.
func (a TonAddress) String() string { return a.ToBase64(true, false, true) }

// ParseTonAddress parses either a "workchain:hex" string or a 48-character
// base64 user-friendly address (standard or URL-safe alphabet).
func ParseTonAddress(s string) (TonAddress, error) {
	if len(s) == 48 {
		return parseBase64Address(s)
	}
	return parseHexAddress(s)
}

func parseHexAddress(s string) (TonAddress, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return TonAddress{}, fmt.Errorf("%w: %q: expected \"workchain:hex\"", ErrAddressParse, s)
	}
	wc, err := strconv.ParseInt(parts[0], 10, 32)
	if err != nil {
		return TonAddress{}, fmt.Errorf("%w: %q: bad workchain: %v", ErrAddressParse, s, err)
	}
	raw, err := hex.DecodeString(parts[1])
	if err != nil {
		return TonAddress{}, fmt.Errorf("%w: %q: bad hex: %v", ErrAddressParse, s, err)
	}
	h, err := NewHash(raw)
	if err != nil {
		return TonAddress{}, fmt.Errorf("%w: %q: %v", ErrAddressParse, s, err)
	}
	return TonAddress{Workchain: int32(wc), Hash: h}, nil
}

func parseBase64Address(s string) (TonAddress, error) {
	var buf []byte
	var err error
	if strings.ContainsAny(s, "-_") {
		buf, err = base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(s)
	} else {
		buf, err = base64.StdEncoding.DecodeString(s)
	}
	if err != nil {
		return TonAddress{}, fmt.Errorf("%w: %q: %v", ErrAddressParse, s, err)
	}
	if len(buf) != 36 {
		return TonAddress{}, fmt.Errorf("%w: %q: expected 36 decoded bytes, got %d", ErrAddressParse, s, len(buf))
	}
	want := uint16(buf[34])<<8 | uint16(buf[35])
	if got := crc16XModem(buf[:34]); got != want {
		return TonAddress{}, fmt.Errorf("%w: %q: crc mismatch", ErrAddressParse, s)
	}
	h, err := NewHash(buf[2:34])
	if err != nil {
		return TonAddress{}, fmt.Errorf("%w: %q: %v", ErrAddressParse, s, err)
	}
	return TonAddress{Workchain: int32(int8(buf[1])), Hash: h}, nil
}

// ToMsgAddress converts a to its on-chain wire form: MsgAddressNone for the
// zero address, AddrStd otherwise.
func (a TonAddress) ToMsgAddress() MsgAddress {
	if a == ZeroAddress {
		return AddrNone{}
	}
	return AddrStd{Workchain: int8(a.Workchain), Address: a.Hash}
}

// FromMsgAddress converts the on-chain wire form back to a TonAddress,
// applying any anycast rewrite prefix to the address bytes first.
func FromMsgAddress(a MsgAddress) (TonAddress, error) {
	switch v := a.(type) {
	case AddrNone, *AddrNone:
		return ZeroAddress, nil
	case AddrStd:
		return rewriteAnycast(int32(v.Workchain), v.Address[:], v.Anycast)
	case *AddrStd:
		return rewriteAnycast(int32(v.Workchain), v.Address[:], v.Anycast)
	case AddrVar:
		return rewriteAnycast(v.Workchain, v.Address, v.Anycast)
	case *AddrVar:
		return rewriteAnycast(v.Workchain, v.Address, v.Anycast)
	default:
		return TonAddress{}, fmt.Errorf("%w: cannot make TonAddress from %T", ErrAddressParse, a)
	}
}

func rewriteAnycast(wc int32, addr []byte, anc *Anycast) (TonAddress, error) {
	if anc == nil {
		h, err := NewHash(addr)
		if err != nil {
			return TonAddress{}, fmt.Errorf("%w: %v", ErrAddressParse, err)
		}
		return TonAddress{Workchain: wc, Hash: h}, nil
	}
	if anc.Depth > len(addr)*8 {
		return TonAddress{}, fmt.Errorf("%w: anycast rewrite prefix is %d bits, address has only %d", ErrAddressParse, anc.Depth, len(addr)*8)
	}
	out := append([]byte(nil), addr...)
	rewriteBits(anc.RewritePfx, out, anc.Depth)
	h, err := NewHash(out)
	if err != nil {
		return TonAddress{}, fmt.Errorf("%w: %v", ErrAddressParse, err)
	}
	return TonAddress{Workchain: wc, Hash: h}, nil
}

// rewriteBits overwrites the first n bits of dst (MSB-first) with the
// first n bits of src.
func rewriteBits(src, dst []byte, n int) {
	for i := 0; i < n; i++ {
		bit := (src[i/8] >> (7 - uint(i%8))) & 1
		byteIdx, bitIdx := i/8, 7-uint(i%8)
		if bit != 0 {
			dst[byteIdx] |= 1 << bitIdx
		} else {
			dst[byteIdx] &^= 1 << bitIdx
		}
	}
}

// StoreTLB writes a as MsgAddressNone or AddrStd, matching ToMsgAddress.
func (a TonAddress) StoreTLB(b *builder.Builder) error {
	return StoreMsgAddress(b, a.ToMsgAddress())
}

// LoadTLB reads a MsgAddress and converts it to TonAddress via
// FromMsgAddress.
func (a *TonAddress) LoadTLB(p *parser.Parser) error {
	ma, err := LoadMsgAddress(p)
	if err != nil {
		return err
	}
	ta, err := FromMsgAddress(ma)
	if err != nil {
		return err
	}
	*a = ta
	return nil
}
