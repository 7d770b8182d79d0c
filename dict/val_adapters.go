package dict

import (
	"golang.org/x/exp/constraints"

	"github.com/ton-core/cellkit/bits"
	"github.com/ton-core/cellkit/cell"
	"github.com/ton-core/cellkit/numeric"
	"github.com/ton-core/cellkit/tlb"
)

// ValAdapter controls how a dictionary's leaf values are written/read,
// grounded on the reference DictValAdapter trait's three concrete shapes:
// inline TL-B, ref-boxed TL-B, and fixed-width numeric.
type ValAdapter[T any] interface {
	Write(b *bits.Builder, refs *[]*cell.Cell, v T) error
	Read(s *cell.Slice) (T, error)
}

// ValTLB stores values inline via their own TL-B definition, mirroring
// DictValAdapterTLB.
type ValTLB[T tlb.TLB] struct {
	Zero func() T
}

func (a ValTLB[T]) Write(b *bits.Builder, refs *[]*cell.Cell, v T) error {
	return v.WriteDefinition(b, refs)
}

func (a ValTLB[T]) Read(s *cell.Slice) (T, error) {
	v := a.Zero()
	if err := v.ReadDefinition(s); err != nil {
		var z T
		return z, err
	}
	return v, nil
}

// ValTLBRef boxes values in their own child cell, mirroring DictValAdapterTLBRef.
type ValTLBRef[T tlb.TLB] struct {
	Zero func() T
}

func (a ValTLBRef[T]) Write(b *bits.Builder, refs *[]*cell.Cell, v T) error {
	var r tlb.Ref[T]
	return r.Write(refs, v)
}

func (a ValTLBRef[T]) Read(s *cell.Slice) (T, error) {
	var r tlb.Ref[T]
	return r.Read(s, a.Zero)
}

// ValNum stores values as a fixed-width machine integer, mirroring
// DictValAdapterNum<BITS_LEN>.
type ValNum[T constraints.Integer] struct {
	Bits uint
}

func (a ValNum[T]) Write(b *bits.Builder, _ *[]*cell.Cell, v T) error {
	if isSignedInt[T]() {
		return b.WriteNum(numeric.FromInt64At(int64(v), a.Bits), a.Bits)
	}
	return b.WriteNum(numeric.FromUint64At(uint64(v), a.Bits), a.Bits)
}

func (a ValNum[T]) Read(s *cell.Slice) (T, error) {
	if isSignedInt[T]() {
		v, err := s.ReadInt(a.Bits)
		return T(v.Int64()), err
	}
	v, err := s.ReadUint(a.Bits)
	return T(v.Uint64()), err
}

func isSignedInt[T constraints.Integer]() bool {
	var zero T
	return zero-1 < zero
}
