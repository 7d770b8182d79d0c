package boc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ton-core/cellkit/boc"
	"github.com/ton-core/cellkit/bits"
	"github.com/ton-core/cellkit/cell"
	"github.com/ton-core/cellkit/cellhash"
	"github.com/ton-core/cellkit/numeric"
)

func TestS3EmptyCellBoCRoundTrip(t *testing.T) {
	raw, err := boc.WriteBoC([]*cell.Cell{cell.Empty()}, boc.WriteOptions{})
	require.NoError(t, err)

	back, err := boc.ReadBoC(raw)
	require.NoError(t, err)
	cells, err := back.ToCells()
	require.NoError(t, err)
	require.Len(t, cells, 1)
	require.Equal(t, cellhash.EmptyCellHash, cells[0].Hash(0))
}

func TestByteRoundTripWithRefsAndCRC(t *testing.T) {
	leaf, err := cell.New([]byte{0xAB, 0xCD}, 16, nil)
	require.NoError(t, err)

	b := bits.NewBuilder()
	require.NoError(t, b.WriteNum(numeric.FromUint64At(7, 8), 8))
	require.NoError(t, b.ReserveRef())
	root, err := cell.FromBuilder(b, []*cell.Cell{leaf})
	require.NoError(t, err)

	raw, err := boc.WriteBoC([]*cell.Cell{root}, boc.WriteOptions{WithCRC: true, WithIndex: true})
	require.NoError(t, err)

	back, err := boc.ReadBoC(raw)
	require.NoError(t, err)
	cells, err := back.ToCells()
	require.NoError(t, err)
	require.Len(t, cells, 1)
	require.True(t, cells[0].Equal(root))

	require.NoError(t, boc.ParallelVerify(context.Background(), cells, 4))
}

func TestSharedSubtreeSerializedOnce(t *testing.T) {
	shared, err := cell.New([]byte{0x42}, 8, nil)
	require.NoError(t, err)
	parent, err := cell.New(nil, 0, []*cell.Cell{shared, shared})
	require.NoError(t, err)

	raw, err := boc.WriteBoC([]*cell.Cell{parent}, boc.WriteOptions{})
	require.NoError(t, err)

	back, err := boc.ReadBoC(raw)
	require.NoError(t, err)
	require.Len(t, back.Cells, 2) // parent + one shared child, not two

	cells, err := back.ToCells()
	require.NoError(t, err)
	require.True(t, cells[0].Equal(parent))
}

func TestCorruptedCRCRejected(t *testing.T) {
	raw, err := boc.WriteBoC([]*cell.Cell{cell.Empty()}, boc.WriteOptions{WithCRC: true})
	require.NoError(t, err)
	corrupted := append([]byte(nil), raw...)
	corrupted[len(corrupted)-1] ^= 0xFF

	_, err = boc.ReadBoC(corrupted)
	require.Error(t, err)
}

func TestWrongMagicRejected(t *testing.T) {
	_, err := boc.ReadBoC([]byte{0, 0, 0, 0, 0})
	require.Error(t, err)
}
