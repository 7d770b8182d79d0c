package dict

import (
	"encoding/binary"

	"github.com/ton-core/cellkit/numeric"
)

// KeyUint encodes v as a MSB-first key of exactly bits length, routed
// through the Numeric trait the same way WriteNum would serialize that
// value at that width: Machine's allocation-free path up to 64 bits,
// U256's fast path beyond it (up to the 256-bit keys account IDs and cell
// hashes use).
func KeyUint(v uint64, bits int) []bool {
	var raw []byte
	if bits <= 64 {
		raw = numeric.FromUint64At(v, uint(bits)).Bytes()
	} else {
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], v)
		raw = numeric.U256FromBigEndian(buf[:]).Bytes()
	}
	return keyFromBytes(raw, bits)
}

// KeyUintValue decodes a key produced by KeyUint back into a uint64.
// Truncates silently for bits > 64 beyond the low 64 bits — callers
// needing the full width should decode via KeyBytesValue instead.
func KeyUintValue(key []bool) uint64 {
	var v uint64
	for _, bit := range key {
		v <<= 1
		if bit {
			v |= 1
		}
	}
	return v
}

// KeyBytes encodes a byte slice (e.g. a 32-byte cell hash) as a MSB-first
// bit key, one bit per bit of the slice.
func KeyBytes(b []byte) []bool {
	return keyFromBigEndianBytes(b, len(b)*8)
}

// KeyBytesValue decodes a key produced by KeyBytes back into bytes. len(key)
// must be a multiple of 8.
func KeyBytesValue(key []bool) []byte {
	out := make([]byte, len(key)/8)
	for i := range out {
		var by byte
		for j := 0; j < 8; j++ {
			by <<= 1
			if key[i*8+j] {
				by |= 1
			}
		}
		out[i] = by
	}
	return out
}

// keyFromBytes left-pads raw (a big-endian magnitude, as returned by a
// Numeric Value's Bytes(), possibly shorter than ceil(bits/8) bytes) out to
// ceil(bits/8) bytes, then extracts
// exactly the low `bits` bits MSB-first.
func keyFromBytes(raw []byte, bits int) []bool {
	need := (bits + 7) / 8
	if len(raw) < need {
		padded := make([]byte, need)
		copy(padded[need-len(raw):], raw)
		raw = padded
	}
	return keyFromBigEndianBytes(raw, bits)
}

// keyFromBigEndianBytes extracts the low `bits` bits of a big-endian byte
// slice, MSB-first, dropping any extra leading bits beyond that width.
func keyFromBigEndianBytes(b []byte, bits int) []bool {
	totalBits := len(b) * 8
	key := make([]bool, bits)
	for i := 0; i < bits; i++ {
		bitPos := totalBits - bits + i
		byteIdx := bitPos / 8
		bitIdx := 7 - bitPos%8
		key[i] = (b[byteIdx]>>bitIdx)&1 == 1
	}
	return key
}
