// Package address implements TON addressing (component C11): the 256-bit
// TonHash value, the on-chain MsgAddress tagged union, and the friendlier
// TonAddress domain type with its base64/hex string forms.
package address

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ton-cellkit/cellkit/builder"
	"github.com/ton-cellkit/cellkit/parser"
)

// ErrHashWrongLength is returned when a TonHash is constructed from
// anything other than exactly 32 bytes.
var ErrHashWrongLength = errors.New("address: hash must be exactly 32 bytes")

// TonHash is a 256-bit cell or account hash.
type TonHash [32]byte

// ZeroHash is the all-zero TonHash, the hash used by MsgAddressNone's
// corresponding TonAddress.
var ZeroHash TonHash

// NewHash validates and wraps a 32-byte slice as a TonHash.
func NewHash(b []byte) (TonHash, error) {
	var h TonHash
	if len(b) != 32 {
		return h, fmt.Errorf("%w: got %d", ErrHashWrongLength, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// HashFromHex parses a 64-character hex string into a TonHash.
func HashFromHex(s string) (TonHash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return TonHash{}, fmt.Errorf("address: %w", err)
	}
	return NewHash(b)
}

// Hex renders the hash as lowercase hex.
func (h TonHash) Hex() string { return hex.EncodeToString(h[:]) }

// Base64 renders the hash using URL-safe, unpadded base64.
func (h TonHash) Base64() string { return base64.RawURLEncoding.EncodeToString(h[:]) }

// Bytes returns the hash's 32 raw bytes.
func (h TonHash) Bytes() []byte { return append([]byte(nil), h[:]...) }

// StoreTLB writes the hash as 256 raw bits.
func (h TonHash) StoreTLB(b *builder.Builder) error { return b.WriteBits(h[:], 256) }

// LoadTLB reads 256 bits into the hash.
func (h *TonHash) LoadTLB(p *parser.Parser) error {
	data, err := p.ReadBits(256)
	if err != nil {
		return err
	}
	copy(h[:], data)
	return nil
}
