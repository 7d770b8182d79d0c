package cell_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ton-core/cellkit/bits"
	"github.com/ton-core/cellkit/cell"
	"github.com/ton-core/cellkit/cellhash"
	"github.com/ton-core/cellkit/numeric"
)

func TestEmptyCellHash(t *testing.T) {
	c := cell.Empty()
	require.Equal(t, cellhash.EmptyCellHash, c.Hash(0))
	require.EqualValues(t, 0, c.Depth(0))
	require.True(t, c.Equal(cell.Empty()))
}

func TestNewMatchesEmptyForZeroShape(t *testing.T) {
	c, err := cell.New(nil, 0, nil)
	require.NoError(t, err)
	require.Equal(t, cellhash.EmptyCellHash, c.Hash(0))
}

func TestHashIsDeterministicAndContentAddressed(t *testing.T) {
	b1 := bits.NewBuilder()
	require.NoError(t, b1.WriteNum(numeric.FromUint64At(42, 16), 16))
	c1, err := cell.FromBuilder(b1, nil)
	require.NoError(t, err)

	b2 := bits.NewBuilder()
	require.NoError(t, b2.WriteNum(numeric.FromUint64At(42, 16), 16))
	c2, err := cell.FromBuilder(b2, nil)
	require.NoError(t, err)

	require.True(t, c1.Equal(c2))
	require.Equal(t, c1.Hash(0), c2.Hash(0))

	b3 := bits.NewBuilder()
	require.NoError(t, b3.WriteNum(numeric.FromUint64At(43, 16), 16))
	c3, err := cell.FromBuilder(b3, nil)
	require.NoError(t, err)
	require.False(t, c1.Equal(c3))
}

func TestDepthIncreasesWithNesting(t *testing.T) {
	leaf, err := cell.New([]byte{0xFF}, 8, nil)
	require.NoError(t, err)
	require.EqualValues(t, 0, leaf.Depth(0))

	parent, err := cell.New(nil, 0, []*cell.Cell{leaf})
	require.NoError(t, err)
	require.EqualValues(t, 1, parent.Depth(0))

	grandparent, err := cell.New(nil, 0, []*cell.Cell{parent})
	require.NoError(t, err)
	require.EqualValues(t, 2, grandparent.Depth(0))
}

func TestRefsOverflowRejected(t *testing.T) {
	leaf, err := cell.New(nil, 0, nil)
	require.NoError(t, err)
	_, err = cell.New(nil, 0, []*cell.Cell{leaf, leaf, leaf, leaf, leaf})
	require.Error(t, err)
}

func TestDataOverflowRejected(t *testing.T) {
	_, err := cell.New(make([]byte, 200), 1024, nil)
	require.Error(t, err)
}

func TestSliceRoundTripsBuilderContent(t *testing.T) {
	leaf, err := cell.New(nil, 0, nil)
	require.NoError(t, err)

	b := bits.NewBuilder()
	require.NoError(t, b.WriteBit(true))
	require.NoError(t, b.WriteNum(numeric.FromUint64At(7, 8), 8))
	require.NoError(t, b.ReserveRef())
	c, err := cell.FromBuilder(b, []*cell.Cell{leaf})
	require.NoError(t, err)

	s := c.Slice()
	bit, err := s.ReadBit()
	require.NoError(t, err)
	require.True(t, bit)
	v, err := s.ReadUint(8)
	require.NoError(t, err)
	require.EqualValues(t, 7, v.Uint64())

	ref, err := s.NextRef()
	require.NoError(t, err)
	require.True(t, ref.Equal(leaf))
	require.NoError(t, s.EnsureEmpty())
}

func TestPoolInterning(t *testing.T) {
	p, err := cell.NewPool(16)
	require.NoError(t, err)

	c1, err := cell.New([]byte{0xAB}, 8, nil)
	require.NoError(t, err)
	c2, err := cell.New([]byte{0xAB}, 8, nil)
	require.NoError(t, err)

	i1 := p.Intern(c1)
	i2 := p.Intern(c2)
	require.Same(t, i1, i2)
	require.Equal(t, 1, p.Len())
}
