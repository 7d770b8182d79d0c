package tlb

import (
	"github.com/ton-core/cellkit/bits"
	"github.com/ton-core/cellkit/cell"
)

// Maybe mirrors TL-B's `Maybe X`: a 1-bit discriminator followed by the
// payload only when present, grounded on the reference Option<T> impl
// (one bit, then T::read/write).
type Maybe[T any] struct {
	Value T
	Some  bool
}

// Some wraps a present value.
func Some[T any](v T) Maybe[T] { return Maybe[T]{Value: v, Some: true} }

// None returns an absent value of type T.
func None[T any]() Maybe[T] { return Maybe[T]{} }

// ReadMaybe reads a Maybe discriminator bit and, if set, the payload via read.
func ReadMaybe[T any](s *cell.Slice, read func(*cell.Slice) (T, error)) (Maybe[T], error) {
	present, err := s.ReadBit()
	if err != nil {
		return Maybe[T]{}, err
	}
	if !present {
		return Maybe[T]{}, nil
	}
	v, err := read(s)
	if err != nil {
		return Maybe[T]{}, err
	}
	return Maybe[T]{Value: v, Some: true}, nil
}

// WriteMaybe writes m's discriminator bit and, if present, the payload via write.
func WriteMaybe[T any](b *bits.Builder, refs *[]*cell.Cell, m Maybe[T], write func(*bits.Builder, *[]*cell.Cell, T) error) error {
	if err := b.WriteBit(m.Some); err != nil {
		return err
	}
	if !m.Some {
		return nil
	}
	return write(b, refs, m.Value)
}
