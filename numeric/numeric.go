// Package numeric implements the single capability trait that spans both
// fixed-width machine integers and arbitrary-precision values, per the core
// specification's Numeric trait (§4.3). The bit builder and parser depend
// only on this interface, never on concrete integer types, so adding a new
// backing representation (a new coin-amount width, say) never touches them.
package numeric

// Value is the capability set every integer written into or read out of a
// cell must implement. IsPrimitive tells the builder/parser whether to take
// a direct fixed-width fast path (Machine, U256) or route through
// arbitrary-precision conversion (Big).
type Value interface {
	// Signed reports whether this value uses two's-complement encoding.
	Signed() bool
	// IsPrimitive reports whether this value is a fixed-width integer
	// (Machine or U256) — the fast path that must not allocate.
	IsPrimitive() bool
	// Bytes returns the big-endian byte representation (two's complement
	// when Signed()). Machine keeps exactly ceil(width/8) bytes; Big and
	// U256 drop leading zero bytes (U256 keeps one byte for zero).
	Bytes() []byte
	// MinBitsLen is the shortest bit length that represents the value,
	// including a sign bit when Signed().
	MinBitsLen() uint
	// IsZero reports whether the value is the additive identity.
	IsZero() bool
	// Shr returns the value logically right-shifted by n bits.
	Shr(n uint) Value
}

// FromBytes reconstructs a Value of width bitsLen from its big-endian byte
// representation, the inverse of Value.Bytes() at a known width. signed
// selects two's-complement interpretation.
//
// Values with bitsLen <= 64 decode to the allocation-free Machine
// representation; wider values decode to Big.
func FromBytes(bytesLen, bitsLen uint, signed bool, data []byte) Value {
	if bitsLen <= 64 {
		return machineFromBytes(bitsLen, signed, data)
	}
	return bigFromBytes(signed, data)
}
