package numeric

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Machine is the fast-path Numeric Value for any integer that fits in 64
// bits. It stores the value as a raw uint64 bit pattern plus a width and
// signedness tag, so construction never allocates.
type Machine struct {
	bits   uint64
	width  uint
	signed bool
}

var _ Value = Machine{}

// FromInt builds a Machine value from any signed fixed-width integer type.
func FromInt[T constraints.Signed](v T) Machine {
	width := uint(bitSizeOf(v))
	return Machine{bits: uint64(v) & widthMask(width), width: width, signed: true}
}

// FromUint builds a Machine value from any unsigned fixed-width integer type.
func FromUint[T constraints.Unsigned](v T) Machine {
	width := uint(bitSizeOf(v))
	return Machine{bits: uint64(v) & widthMask(width), width: width, signed: false}
}

// FromInt64At builds a signed Machine value explicitly tagged with bit
// width `width` (<=64) — used when the caller's declared width differs from
// the Go type's natural width, e.g. an 11-bit signed field.
func FromInt64At(v int64, width uint) Machine {
	return Machine{bits: uint64(v) & widthMask(width), width: width, signed: true}
}

// FromUint64At builds an unsigned Machine value tagged with bit width `width`.
func FromUint64At(v uint64, width uint) Machine {
	return Machine{bits: v & widthMask(width), width: width, signed: false}
}

func widthMask(width uint) uint64 {
	if width == 0 {
		return 0
	}
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

func bitSizeOf(v any) int {
	switch v.(type) {
	case int8, uint8:
		return 8
	case int16, uint16:
		return 16
	case int32, uint32:
		return 32
	default:
		return 64
	}
}

func (m Machine) Signed() bool      { return m.signed }
func (m Machine) IsPrimitive() bool { return true }
func (m Machine) IsZero() bool      { return m.bits == 0 }

// Width reports the tagged bit width of the value.
func (m Machine) Width() uint { return m.width }

// Int64 returns the value sign-extended to an int64, valid when Signed().
func (m Machine) Int64() int64 {
	if !m.signed || m.width == 0 || m.width >= 64 {
		return int64(m.bits)
	}
	signBit := uint64(1) << (m.width - 1)
	if m.bits&signBit != 0 {
		return int64(m.bits | ^widthMask(m.width))
	}
	return int64(m.bits)
}

// Uint64 returns the raw unsigned bit pattern, valid when !Signed().
func (m Machine) Uint64() uint64 { return m.bits }

// Bytes returns the value's big-endian byte representation, right-aligned
// in exactly ceil(width/8) bytes (leading zero bytes are kept) — used when
// a Numeric Value is serialized outside of a direct n-bit cell write (e.g.
// as a dictionary key's raw bytes).
func (m Machine) Bytes() []byte {
	nbytes := (m.width + 7) / 8
	if nbytes == 0 {
		return nil
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], m.bits)
	return append([]byte(nil), buf[8-nbytes:]...)
}

func (m Machine) MinBitsLen() uint {
	if m.bits == 0 {
		return 1
	}
	if m.signed {
		v := m.Int64()
		if v < 0 {
			mag := ^v // equals -v-1
			return uint(bits.Len64(uint64(mag))) + 1
		}
		return uint(bits.Len64(uint64(v))) + 1
	}
	return uint(bits.Len64(m.bits))
}

func (m Machine) Shr(n uint) Value {
	if n >= m.width {
		return Machine{width: m.width, signed: m.signed}
	}
	return Machine{bits: m.bits >> n, width: m.width - n, signed: m.signed}
}

func machineFromBytes(bitsLen uint, signed bool, data []byte) Value {
	nbytes := int((bitsLen + 7) / 8)
	var buf [8]byte
	n := len(data)
	if n > nbytes {
		n = nbytes
	}
	copy(buf[8-nbytes+(nbytes-n):], data[:n])
	raw := binary.BigEndian.Uint64(buf[:])
	return Machine{bits: raw & widthMask(bitsLen), width: bitsLen, signed: signed}
}
