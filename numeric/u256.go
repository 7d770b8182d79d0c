package numeric

import (
	"github.com/holiman/uint256"
)

// U256 is the Numeric Value for unsigned 256-bit integers — TON coin
// amounts (VarUInteger 16) and 256-bit dictionary keys (account IDs, cell
// hashes) — backed by holiman/uint256 instead of math/big so the common
// case of "an amount that happens to fit in 256 bits" never pays for
// math/big's heap-allocated word slice.
type U256 struct {
	v *uint256.Int
}

var _ Value = U256{}

// FromUint256 wraps an existing *uint256.Int.
func FromUint256(v *uint256.Int) U256 {
	return U256{v: v}
}

// U256FromBigEndian builds a U256 from up to 32 big-endian bytes.
func U256FromBigEndian(data []byte) U256 {
	return U256{v: new(uint256.Int).SetBytes(data)}
}

func (u U256) Signed() bool      { return false }
func (u U256) IsPrimitive() bool { return true }

func (u U256) IsZero() bool {
	return u.Int().IsZero()
}

// Int returns the underlying *uint256.Int, never nil.
func (u U256) Int() *uint256.Int {
	if u.v == nil {
		return new(uint256.Int)
	}
	return u.v
}

func (u U256) Bytes() []byte {
	b := u.Int().Bytes32()
	// Trim to the minimal big-endian representation, matching the
	// convention of math/big.Int.Bytes() for the unsigned Big/Machine paths.
	i := 0
	for i < 31 && b[i] == 0 {
		i++
	}
	return b[i:]
}

func (u U256) MinBitsLen() uint {
	if u.IsZero() {
		return 1
	}
	return uint(u.Int().BitLen())
}

func (u U256) Shr(n uint) Value {
	out := new(uint256.Int).Rsh(u.Int(), n)
	return U256{v: out}
}
