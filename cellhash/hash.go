// Package cellhash defines the fixed-size content identifier every cell
// publishes, plus the small integer types that tag a cell's shape
// (LevelMask, CellType). These are kept separate from the cell package
// itself since numeric, bits, and cell all need them without pulling in
// cell's own dependency surface.
package cellhash

import (
	"encoding/base64"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/ton-core/cellkit/errs"
)

// Size is the fixed length, in bytes, of every Hash.
const Size = 32

// Hash is an opaque 256-bit content identifier: the SHA-256 representation
// hash of a cell at some level, or the root hash of a BoC envelope.
type Hash [Size]byte

// EmptyCellHash is the well-known representation hash of a cell with zero
// bits and zero references — spec property 7.
var EmptyCellHash = Hash{
	0x96, 0xa2, 0x96, 0xd2, 0x24, 0xf2, 0x85, 0xc6,
	0x7b, 0xee, 0x93, 0xc3, 0x0f, 0x8a, 0x30, 0x91,
	0x57, 0xf0, 0xda, 0xa3, 0x5d, 0xc5, 0xb8, 0x7e,
	0x41, 0x0b, 0x78, 0x63, 0x0a, 0x09, 0xcf, 0xc7,
}

// Zero is the all-zeroes hash constant.
var Zero = Hash{}

// Bytes returns a copy of the hash's 32 bytes.
func (h Hash) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, h[:])
	return out
}

// String renders the hash as lowercase hex, no 0x prefix — matching the
// convention TON tooling uses for cell hashes (as opposed to Ethereum's
// 0x-prefixed addresses).
func (h Hash) String() string {
	return hexutil.Encode(h[:])[2:]
}

// Hex renders the hash with the 0x prefix, in the common.Hash convention.
func (h Hash) Hex() string {
	return hexutil.Encode(h[:])
}

// Base64 renders the hash as standard base64, the encoding TON explorers
// and wallets use for BoC root hashes.
func (h Hash) Base64() string {
	return base64.StdEncoding.EncodeToString(h[:])
}

// IsZero reports whether h is the all-zeroes hash.
func (h Hash) IsZero() bool {
	return h == Zero
}

// FromBytes copies b into a Hash, failing if b isn't exactly Size bytes.
func FromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != Size {
		return h, errs.New(errs.AddressParse, "hash must be %d bytes, got %d", Size, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// FromHex parses a hex string into a Hash, with or without a 0x prefix.
func FromHex(s string) (Hash, error) {
	if len(s) < 2 || s[0:2] != "0x" {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return Hash{}, errs.Wrap(errs.AddressParse, err, "parsing hash hex %q", s)
	}
	return FromBytes(b)
}

// FromBase64 parses a standard-base64 string into a Hash.
func FromBase64(s string) (Hash, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Hash{}, errs.Wrap(errs.AddressParse, err, "parsing hash base64 %q", s)
	}
	return FromBytes(b)
}
