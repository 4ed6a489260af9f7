package address

// crc16XModem computes the CRC-16/XMODEM checksum (poly 0x1021, init 0,
// no reflection, no final xor) used by TonAddress's base64 user-friendly
// form. No third-party CRC-16 implementation appears anywhere in the
// example pack (only stdlib hash/crc32, used by the boc package for
// CRC32C) and Go's standard library has no CRC-16 variant at all, so this
// one polynomial is reproduced directly rather than pulled in from an
// unrelated dependency.
func crc16XModem(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
