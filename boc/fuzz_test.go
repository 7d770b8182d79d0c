package boc_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"

	"github.com/ton-core/cellkit/boc"
	"github.com/ton-core/cellkit/cell"
	"github.com/ton-core/cellkit/celllog"
)

// randomLeaf is the shape gofuzz populates: a byte payload and a bit
// length clamped into it, used to build randomized leaf cells.
type randomLeaf struct {
	Payload [4]byte
	BitsLen uint8
}

// TestFuzzLeafBoCRoundTripPreservesHash is spec property 1/2: for
// randomized leaf payloads, BoC round trip never changes a cell's
// representation hash.
func TestFuzzLeafBoCRoundTripPreservesHash(t *testing.T) {
	l := celllog.Noop()
	f := fuzz.New().NilChance(0).NumElements(1, 1)
	for i := 0; i < 50; i++ {
		var rl randomLeaf
		f.Fuzz(&rl)
		bitsLen := uint(rl.BitsLen) % 33 // clamp into [0, 32]

		leaf, err := cell.New(rl.Payload[:], bitsLen, nil)
		require.NoError(t, err)
		want := leaf.Hash(0)

		raw, err := boc.WriteBoC([]*cell.Cell{leaf}, boc.WriteOptions{WithCRC: true})
		if err != nil {
			celllog.Error(l, "boc encode", err)
			t.Fatal(err)
		}
		celllog.BocEncode(l, 1, len(raw), true)

		back, err := boc.ReadBoC(raw)
		if err != nil {
			celllog.Error(l, "boc decode", err)
			t.Fatal(err)
		}
		celllog.BocDecode(l, len(back.Cells), len(back.Roots), boc.GenericMagic)

		cells, err := back.ToCells()
		require.NoError(t, err)
		require.Len(t, cells, 1)
		require.Equal(t, want, cells[0].Hash(0))
	}
}

// TestRawBoCStructuralDiffAfterReparse is spec property 5: re-parsing the
// same bytes twice produces structurally identical flat cell lists, using
// go-cmp for a readable failure if that ever regresses.
func TestRawBoCStructuralDiffAfterReparse(t *testing.T) {
	leaf, err := cell.New([]byte{0x99}, 8, nil)
	require.NoError(t, err)
	root, err := cell.New(nil, 0, []*cell.Cell{leaf})
	require.NoError(t, err)

	raw, err := boc.WriteBoC([]*cell.Cell{root}, boc.WriteOptions{WithCRC: true, WithIndex: true})
	require.NoError(t, err)

	a, err := boc.ReadBoC(raw)
	require.NoError(t, err)
	b, err := boc.ReadBoC(raw)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("re-parsing identical bytes produced a different RawBoC (-first +second):\n%s", diff)
	}
}
