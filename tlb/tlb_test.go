package tlb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ton-core/cellkit/bits"
	"github.com/ton-core/cellkit/cell"
	"github.com/ton-core/cellkit/errs"
	"github.com/ton-core/cellkit/numeric"
	"github.com/ton-core/cellkit/tlb"
)

// int32Field is a minimal TLB implementation used only by these tests:
// a plain 32-bit signed integer, the way tlb_num_impl! generates one per
// machine width in the reference implementation.
type int32Field struct {
	v int64
}

func (f *int32Field) ReadDefinition(s *cell.Slice) error {
	n, err := s.ReadInt(32)
	if err != nil {
		return err
	}
	f.v = n.Int64()
	return nil
}

func (f *int32Field) WriteDefinition(b *bits.Builder, _ *[]*cell.Cell) error {
	return b.WriteNum(numeric.FromInt64At(f.v, 32), 32)
}

func TestS4OptionInt32RoundTrip(t *testing.T) {
	b := bits.NewBuilder()
	var refs []*cell.Cell
	m := tlb.Some(&int32Field{v: -7})
	require.NoError(t, tlb.WriteMaybe(b, &refs, m, func(b *bits.Builder, refs *[]*cell.Cell, v *int32Field) error {
		return v.WriteDefinition(b, refs)
	}))
	none := tlb.None[*int32Field]()
	require.NoError(t, tlb.WriteMaybe(b, &refs, none, func(b *bits.Builder, refs *[]*cell.Cell, v *int32Field) error {
		return v.WriteDefinition(b, refs)
	}))

	c, err := cell.FromBuilder(b, refs)
	require.NoError(t, err)
	s := c.Slice()

	got1, err := tlb.ReadMaybe(s, func(s *cell.Slice) (*int32Field, error) {
		f := &int32Field{}
		return f, f.ReadDefinition(s)
	})
	require.NoError(t, err)
	require.True(t, got1.Some)
	require.EqualValues(t, -7, got1.Value.v)

	got2, err := tlb.ReadMaybe(s, func(s *cell.Slice) (*int32Field, error) {
		f := &int32Field{}
		return f, f.ReadDefinition(s)
	})
	require.NoError(t, err)
	require.False(t, got2.Some)

	require.NoError(t, s.EnsureEmpty())
}

func TestS5UnaryFive(t *testing.T) {
	b := bits.NewBuilder()
	require.NoError(t, t5Write(b, 5))
	require.EqualValues(t, 6, b.BitsLen()) // 5 ones + terminating zero

	c, err := cell.New(b.Bytes(), b.BitsLen(), nil)
	require.NoError(t, err)
	n, err := (tlb.Unary{}).Read(c.Slice())
	require.NoError(t, err)
	require.EqualValues(t, 5, n)
}

func t5Write(b *bits.Builder, n uint) error {
	return (tlb.Unary{}).Write(b, n)
}

func TestRefAdapterRoundTrip(t *testing.T) {
	var refs []*cell.Cell
	var r tlb.Ref[*int32Field]
	require.NoError(t, r.Write(&refs, &int32Field{v: 1000}))
	require.Len(t, refs, 1)

	parent, err := cell.New(nil, 0, refs)
	require.NoError(t, err)
	s := parent.Slice()

	got, err := r.Read(s, func() *int32Field { return &int32Field{} })
	require.NoError(t, err)
	require.EqualValues(t, 1000, got.v)
}

func TestTryVariantsRollsBackOnWrongPrefix(t *testing.T) {
	b := bits.NewBuilder()
	require.NoError(t, b.WriteNum(numeric.FromUint64At(0b10, 2), 2))
	c, err := cell.New(b.Bytes(), b.BitsLen(), nil)
	require.NoError(t, err)
	s := c.Slice()

	var matched string
	err = tlb.TryVariants(s,
		func(s *cell.Slice) error {
			return tlb.ExpectPrefix(s, 0b00, 2)
		},
		func(s *cell.Slice) error {
			if e := tlb.ExpectPrefix(s, 0b10, 2); e != nil {
				return e
			}
			matched = "second"
			return nil
		},
	)
	require.NoError(t, err)
	require.Equal(t, "second", matched)
}

func TestTryVariantsOutOfOptions(t *testing.T) {
	b := bits.NewBuilder()
	require.NoError(t, b.WriteNum(numeric.FromUint64At(0b11, 2), 2))
	c, err := cell.New(b.Bytes(), b.BitsLen(), nil)
	require.NoError(t, err)
	s := c.Slice()

	err = tlb.TryVariants(s, func(s *cell.Slice) error {
		return tlb.ExpectPrefix(s, 0b00, 2)
	})
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.OutOfOptions))
	require.EqualValues(t, 2, s.BitsLeft()) // cursor rewound to start
}

// TestTryVariantsRecoversFromNestedOutOfOptions covers a sum type whose
// first variant itself dispatches a nested TryVariants: when every inner
// option fails, the inner call returns OutOfOptions rather than
// WrongPrefix, and the outer scan must still advance to its next variant
// instead of aborting on it.
func TestTryVariantsRecoversFromNestedOutOfOptions(t *testing.T) {
	b := bits.NewBuilder()
	require.NoError(t, b.WriteNum(numeric.FromUint64At(0b10, 2), 2))
	c, err := cell.New(b.Bytes(), b.BitsLen(), nil)
	require.NoError(t, err)
	s := c.Slice()

	var matched string
	err = tlb.TryVariants(s,
		func(s *cell.Slice) error {
			// A nested sum type with only one (mismatching) inner option:
			// exhausts to OutOfOptions, not WrongPrefix.
			return tlb.TryVariants(s, func(s *cell.Slice) error {
				return tlb.ExpectPrefix(s, 0b00, 2)
			})
		},
		func(s *cell.Slice) error {
			if e := tlb.ExpectPrefix(s, 0b10, 2); e != nil {
				return e
			}
			matched = "second"
			return nil
		},
	)
	require.NoError(t, err)
	require.Equal(t, "second", matched)
	require.NoError(t, s.EnsureEmpty())
}

func TestSnakeBytesChainsAcrossCells(t *testing.T) {
	data := make([]byte, 200)
	for i := range data {
		data[i] = byte(i)
	}
	b := bits.NewBuilder()
	var refs []*cell.Cell
	require.NoError(t, (tlb.SnakeBytes{}).Write(b, &refs, data))
	c, err := cell.FromBuilder(b, refs)
	require.NoError(t, err)
	require.Greater(t, c.RefsCount(), 0)

	got, err := (tlb.SnakeBytes{}).Read(c.Slice())
	require.NoError(t, err)
	require.Equal(t, data, got)
}
