// Package bits implements the cell-level bit builder and parser: an
// append-only bit writer and a cursor-based bit reader, both bounded by the
// 1023-bit / 4-ref cell capacity limits from the core specification
// (§4.1, §4.2). Both store the payload in a byte buffer and move one bit at
// a time; writes and reads are not batched at byte boundaries.
package bits

import (
	"math/big"

	"github.com/ton-core/cellkit/errs"
	"github.com/ton-core/cellkit/numeric"
)

// MaxDataBits is the maximum number of payload bits a single cell may hold.
const MaxDataBits = 1023

// MaxRefs is the maximum number of child references a single cell may hold.
const MaxRefs = 4

// Builder is an append-only bit writer. There is no seek: every write
// advances data_bits_len monotonically. Two builders that perform the same
// sequence of writes produce byte-identical output.
type Builder struct {
	data    []byte
	bitsLen uint
	refs    int // only tracked here for capacity checks; callers own the refs themselves
}

// NewBuilder returns an empty Builder ready to accept up to MaxDataBits bits.
func NewBuilder() *Builder {
	return &Builder{data: make([]byte, 0, (MaxDataBits+7)/8)}
}

// BitsLen reports how many bits have been written so far.
func (b *Builder) BitsLen() uint { return b.bitsLen }

// RefsLen reports how many references have been registered via ReserveRef.
func (b *Builder) RefsLen() int { return b.refs }

// RemainingBits reports how many more bits may still be written.
func (b *Builder) RemainingBits() uint { return MaxDataBits - b.bitsLen }

func (b *Builder) ensureCapacity(n uint) error {
	if b.bitsLen+n > MaxDataBits {
		return errs.New(errs.DataOverflow, "write of %d bits would exceed %d-bit cell (have %d)", n, MaxDataBits, b.bitsLen)
	}
	return nil
}

// WriteBit appends a single bit, MSB-first within each byte.
func (b *Builder) WriteBit(v bool) error {
	if err := b.ensureCapacity(1); err != nil {
		return err
	}
	b.growTo(b.bitsLen + 1)
	if v {
		byteIdx := b.bitsLen / 8
		bitIdx := 7 - (b.bitsLen % 8)
		b.data[byteIdx] |= 1 << bitIdx
	}
	b.bitsLen++
	return nil
}

// growTo ensures b.data has enough bytes to hold newBitsLen bits, zeroing
// any newly allocated bytes.
func (b *Builder) growTo(newBitsLen uint) {
	needBytes := int((newBitsLen + 7) / 8)
	for len(b.data) < needBytes {
		b.data = append(b.data, 0)
	}
}

// WriteBits appends the first n bits of buf (MSB-first per byte) to the builder.
func (b *Builder) WriteBits(buf []byte, n uint) error {
	if err := b.ensureCapacity(n); err != nil {
		return err
	}
	b.growTo(b.bitsLen + n)
	for i := uint(0); i < n; i++ {
		srcByte := buf[i/8]
		srcBit := (srcByte >> (7 - (i % 8))) & 1
		if srcBit == 1 {
			dstPos := b.bitsLen + i
			b.data[dstPos/8] |= 1 << (7 - dstPos%8)
		}
	}
	b.bitsLen += n
	return nil
}

// WriteBytes appends every bit of buf (a convenience over WriteBits for
// byte-aligned writers).
func (b *Builder) WriteBytes(buf []byte) error {
	return b.WriteBits(buf, uint(len(buf))*8)
}

// WriteNum writes v into exactly n bits, two's complement if v.Signed(),
// plain big-endian otherwise. Fails DataOverflow if n would overflow the
// cell, NumericOverflow if v does not fit in n bits.
func (b *Builder) WriteNum(v numeric.Value, n uint) error {
	if !v.IsZero() && v.MinBitsLen() > n {
		return errs.New(errs.NumericOverflow, "value needs %d bits, only %d available", v.MinBitsLen(), n)
	}
	if v.IsZero() && n == 0 {
		return nil
	}
	if v.IsPrimitive() {
		switch tv := v.(type) {
		case numeric.Machine:
			if n <= 64 {
				return b.writeMachineBits(tv, n)
			}
		case numeric.U256:
			if n <= 256 {
				return b.writeU256Bits(tv, n)
			}
		}
	}
	return b.writeBigBits(v, n)
}

func (b *Builder) writeMachineBits(m numeric.Machine, n uint) error {
	if err := b.ensureCapacity(n); err != nil {
		return err
	}
	raw := m.Uint64()
	if m.Signed() {
		raw = uint64(m.Int64())
	}
	mask := uint64(1)<<n - 1
	if n >= 64 {
		mask = ^uint64(0)
	}
	raw &= mask
	b.growTo(b.bitsLen + n)
	for i := uint(0); i < n; i++ {
		bitPos := n - 1 - i
		bitVal := (raw >> bitPos) & 1
		if bitVal == 1 {
			dstPos := b.bitsLen + i
			b.data[dstPos/8] |= 1 << (7 - dstPos%8)
		}
	}
	b.bitsLen += n
	return nil
}

// writeU256Bits is U256's primitive fast path: it reads the value's
// big-endian words straight out of uint256.Int.Bytes32 (a stack array, no
// *big.Int allocation) instead of falling through to writeBigBits'
// ToBig() conversion.
func (b *Builder) writeU256Bits(u numeric.U256, n uint) error {
	if err := b.ensureCapacity(n); err != nil {
		return err
	}
	word := u.Int().Bytes32()
	b.growTo(b.bitsLen + n)
	for i := uint(0); i < n; i++ {
		bitPos := n - 1 - i
		byteIdx := 31 - bitPos/8
		if (word[byteIdx]>>(bitPos%8))&1 == 1 {
			dstPos := b.bitsLen + i
			b.data[dstPos/8] |= 1 << (7 - dstPos%8)
		}
	}
	b.bitsLen += n
	return nil
}

// writeBigBits handles arbitrary-precision values by materializing the
// exact two's-complement (or magnitude) representation at width n and
// emitting it bit by bit, MSB first.
func (b *Builder) writeBigBits(v numeric.Value, n uint) error {
	if err := b.ensureCapacity(n); err != nil {
		return err
	}
	mag := bigMagnitude(v)
	var field *big.Int
	if v.Signed() && mag.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), n)
		field = new(big.Int).Add(mod, mag)
	} else {
		field = mag
	}
	b.growTo(b.bitsLen + n)
	for i := uint(0); i < n; i++ {
		bitPos := n - 1 - i
		if field.Bit(int(bitPos)) == 1 {
			dstPos := b.bitsLen + i
			b.data[dstPos/8] |= 1 << (7 - dstPos%8)
		}
	}
	b.bitsLen += n
	return nil
}

// bigMagnitude extracts the signed *big.Int value backing a non-Machine
// Numeric Value, so writeBigBits can compute two's complement directly
// instead of re-deriving it from a byte slice.
func bigMagnitude(v numeric.Value) *big.Int {
	switch tv := v.(type) {
	case numeric.Big:
		return tv.Int()
	case numeric.U256:
		return tv.Int().ToBig()
	default:
		out := new(big.Int).SetBytes(v.Bytes())
		return out
	}
}

// Bytes returns the builder's payload padded to a byte boundary (unused low
// bits of the last byte are zero, per the data-model invariant).
func (b *Builder) Bytes() []byte {
	out := make([]byte, (b.bitsLen+7)/8)
	copy(out, b.data)
	return out
}

// ReserveRef records that a child reference has been appended, enforcing
// the 4-ref cap. The Builder holds no refs itself: whoever owns the ref
// slice calls this once per appended ref (tlb.ToCell does so for every ref
// a definition wrote); cell.FromBuilder does not call it.
func (b *Builder) ReserveRef() error {
	if b.refs >= MaxRefs {
		return errs.New(errs.RefsOverflow, "cell already has %d references", MaxRefs)
	}
	b.refs++
	return nil
}
