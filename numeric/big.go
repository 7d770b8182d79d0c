package numeric

import "math/big"

// Big is the Numeric Value for arbitrary-precision integers wider than 64
// bits (addresses, oversized config fields). It routes every operation
// through math/big's octet conversion rather than direct bit shuffling,
// exactly as the reference implementation's design notes describe: "big-
// integers route through octet conversion."
type Big struct {
	v      *big.Int
	signed bool
}

var _ Value = Big{}

// FromBigInt wraps an existing *big.Int. signed selects whether MinBitsLen
// reserves a sign bit and whether Bytes() emits two's complement.
func FromBigInt(v *big.Int, signed bool) Big {
	return Big{v: v, signed: signed}
}

func (b Big) Signed() bool      { return b.signed }
func (b Big) IsPrimitive() bool { return false }
func (b Big) IsZero() bool      { return b.v.Sign() == 0 }

// Int returns the underlying *big.Int, never nil.
func (b Big) Int() *big.Int {
	if b.v == nil {
		return new(big.Int)
	}
	return b.v
}

// Bytes returns the big-endian byte representation: the magnitude for
// unsigned values, minimal two's complement for signed values.
func (b Big) Bytes() []byte {
	v := b.Int()
	if !b.signed || v.Sign() >= 0 {
		out := v.Bytes()
		if b.signed && len(out) > 0 && out[0]&0x80 != 0 {
			// keep a zero sign byte so the value does not read back as negative
			out = append([]byte{0}, out...)
		}
		return out
	}
	// Two's complement over the minimal byte width that fits the sign bit.
	nbytes := (int(b.MinBitsLen()) + 7) / 8
	mod := new(big.Int).Lsh(big.NewInt(1), uint(nbytes)*8)
	twos := new(big.Int).Add(mod, v) // mod + v, v negative
	out := twos.Bytes()
	if len(out) < nbytes {
		padded := make([]byte, nbytes)
		copy(padded[nbytes-len(out):], out)
		out = padded
	}
	return out
}

func (b Big) MinBitsLen() uint {
	v := b.Int()
	if v.Sign() == 0 {
		return 1
	}
	if !b.signed || v.Sign() > 0 {
		return uint(v.BitLen()) + boolToUint(b.signed)
	}
	// Negative: minimal bits for two's complement is bits of (-v-1), plus sign bit.
	mag := new(big.Int).Add(v, big.NewInt(1))
	mag.Neg(mag)
	return uint(mag.BitLen()) + 1
}

func boolToUint(b bool) uint {
	if b {
		return 1
	}
	return 0
}

func (b Big) Shr(n uint) Value {
	out := new(big.Int).Rsh(b.Int(), n)
	return Big{v: out, signed: b.signed}
}

func bigFromBytes(signed bool, data []byte) Value {
	v := new(big.Int).SetBytes(data)
	if signed && len(data) > 0 && data[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(len(data))*8)
		v.Sub(v, mod)
	}
	return Big{v: v, signed: signed}
}
