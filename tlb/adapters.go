package tlb

import (
	"github.com/ton-core/cellkit/bits"
	"github.com/ton-core/cellkit/cell"
	"github.com/ton-core/cellkit/errs"
	"github.com/ton-core/cellkit/numeric"
)

// Ref reads/writes a nested TLB value stored in its own child cell ( ^X in
// TL-B notation), grounded on the reference TLBRef adapter: read_next_ref
// then recurse, write_ref on the child's own built cell.
type Ref[T TLB] struct{}

func (Ref[T]) Read(s *cell.Slice, zero func() T) (T, error) {
	child, err := s.NextRef()
	if err != nil {
		var z T
		return z, err
	}
	v := zero()
	if err := FromCell(v, child); err != nil {
		var z T
		return z, err
	}
	return v, nil
}

func (Ref[T]) Write(refs *[]*cell.Cell, v T) error {
	c, err := ToCell(v)
	if err != nil {
		return err
	}
	*refs = append(*refs, c)
	return nil
}

// RefOpt is Ref composed with Maybe: a present bit, then (if set) the value
// in a child cell.
type RefOpt[T TLB] struct{}

func (RefOpt[T]) Read(s *cell.Slice, zero func() T) (Maybe[T], error) {
	present, err := s.ReadBit()
	if err != nil {
		return Maybe[T]{}, err
	}
	if !present {
		return Maybe[T]{}, nil
	}
	var r Ref[T]
	v, err := r.Read(s, zero)
	if err != nil {
		return Maybe[T]{}, err
	}
	return Maybe[T]{Value: v, Some: true}, nil
}

func (RefOpt[T]) Write(b *bits.Builder, refs *[]*cell.Cell, m Maybe[T]) error {
	if err := b.WriteBit(m.Some); err != nil {
		return err
	}
	if !m.Some {
		return nil
	}
	var r Ref[T]
	return r.Write(refs, m.Value)
}

// EitherRef reads/writes TL-B's `Either X ^Y`: a discriminator bit selects
// between an inline value (bit=0) and a value boxed in a child cell (bit=1).
type EitherRef[L, R TLB] struct{}

// EitherValue holds exactly one of Left (inline) or Right (boxed in a ref).
type EitherValue[L, R TLB] struct {
	Left    L
	Right   R
	IsRight bool
}

func (EitherRef[L, R]) Read(s *cell.Slice, zeroL func() L, zeroR func() R) (EitherValue[L, R], error) {
	isRight, err := s.ReadBit()
	if err != nil {
		return EitherValue[L, R]{}, err
	}
	if !isRight {
		v := zeroL()
		if err := v.ReadDefinition(s); err != nil {
			return EitherValue[L, R]{}, err
		}
		return EitherValue[L, R]{Left: v}, nil
	}
	var r Ref[R]
	v, err := r.Read(s, zeroR)
	if err != nil {
		return EitherValue[L, R]{}, err
	}
	return EitherValue[L, R]{Right: v, IsRight: true}, nil
}

func (EitherRef[L, R]) Write(b *bits.Builder, refs *[]*cell.Cell, v EitherValue[L, R]) error {
	if err := b.WriteBit(v.IsRight); err != nil {
		return err
	}
	if !v.IsRight {
		return v.Left.WriteDefinition(b, refs)
	}
	var r Ref[R]
	return r.Write(refs, v.Right)
}

// ConstLen reads/writes a fixed-width numeric field of exactly n bits.
type ConstLen struct {
	Bits uint
}

func (c ConstLen) ReadUnsigned(s *cell.Slice) (numeric.Value, error) {
	return s.ReadNum(c.Bits, false)
}

func (c ConstLen) ReadSigned(s *cell.Slice) (numeric.Value, error) {
	return s.ReadNum(c.Bits, true)
}

func (c ConstLen) Write(b *bits.Builder, v numeric.Value) error {
	return b.WriteNum(v, c.Bits)
}

// VarLen reads/writes TL-B's `VarUInteger n`: a length prefix of
// LenBits bits giving the payload's byte length, followed by that many
// bytes of big-endian magnitude (always unsigned, per spec §4.3).
type VarLen struct {
	// LenBits is the width of the length prefix (commonly 4 or 5 — e.g.
	// VarUInteger 16 uses a 4-bit length, VarUInteger 32 a 5-bit length).
	LenBits uint
}

func (v VarLen) Read(s *cell.Slice) (numeric.Value, error) {
	lenField, err := s.ReadUint(v.LenBits)
	if err != nil {
		return nil, err
	}
	nBytes := lenField.Uint64()
	if nBytes == 0 {
		return numeric.FromUint64At(0, 1), nil
	}
	raw, err := s.ReadBits(uint(nBytes) * 8)
	if err != nil {
		return nil, err
	}
	return numeric.FromBytes(uint(nBytes), uint(nBytes)*8, false, raw), nil
}

func (v VarLen) Write(b *bits.Builder, val numeric.Value) error {
	raw := val.Bytes()
	n := len(raw)
	maxLen := uint64(1)<<v.LenBits - 1
	if uint64(n) > maxLen {
		return errs.New(errs.NumericOverflow, "value needs %d bytes, length field only covers %d", n, maxLen)
	}
	if err := b.WriteNum(numeric.FromUint64At(uint64(n), v.LenBits), v.LenBits); err != nil {
		return err
	}
	return b.WriteBytes(raw)
}

// Unary reads/writes TL-B's unary length encoding: n one-bits followed by a
// terminating zero bit, i.e. Unary(0) = "0", Unary(n) = "1"*n ++ "0".
type Unary struct{}

func (Unary) Read(s *cell.Slice) (uint, error) {
	var n uint
	for {
		bit, err := s.ReadBit()
		if err != nil {
			return 0, err
		}
		if !bit {
			return n, nil
		}
		n++
	}
}

func (Unary) Write(b *bits.Builder, n uint) error {
	for i := uint(0); i < n; i++ {
		if err := b.WriteBit(true); err != nil {
			return err
		}
	}
	return b.WriteBit(false)
}

// SnakeBytes reads/writes TL-B's "snake" encoding for byte strings longer
// than a single cell's capacity: each cell holds as many whole bytes as fit
// in its remaining data bits, chaining to a single child ref for overflow.
type SnakeBytes struct{}

func (SnakeBytes) Read(s *cell.Slice) ([]byte, error) {
	var out []byte
	cur := s
	for {
		nBytes := cur.BitsLeft() / 8
		chunk, err := cur.ReadBits(nBytes * 8)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
		if cur.RefsLeft() == 0 {
			return out, nil
		}
		next, err := cur.NextRef()
		if err != nil {
			return nil, err
		}
		cur = next.Slice()
	}
}

func (SnakeBytes) Write(b *bits.Builder, refs *[]*cell.Cell, data []byte) error {
	capBytes := b.RemainingBits() / 8
	if uint(len(data)) <= capBytes {
		return b.WriteBytes(data)
	}
	if err := b.WriteBytes(data[:capBytes]); err != nil {
		return err
	}
	tail := bits.NewBuilder()
	var tailRefs []*cell.Cell
	if err := (SnakeBytes{}).Write(tail, &tailRefs, data[capBytes:]); err != nil {
		return err
	}
	tailCell, err := cell.FromBuilder(tail, tailRefs)
	if err != nil {
		return err
	}
	*refs = append(*refs, tailCell)
	return nil
}
