package cellhash_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ton-core/cellkit/cellhash"
)

func TestEmptyCellHashHex(t *testing.T) {
	// Seed scenario S7: the well-known empty-cell hash constant.
	require.Equal(t,
		"96a296d224f285c67bee93c30f8a309157f0daa35dc5b87e410b78630a09cfc7",
		cellhash.EmptyCellHash.String())
}

func TestHashHexRoundTrip(t *testing.T) {
	h := cellhash.EmptyCellHash
	parsed, err := cellhash.FromHex(h.Hex())
	require.NoError(t, err)
	require.Equal(t, h, parsed)

	parsed2, err := cellhash.FromHex(h.String())
	require.NoError(t, err)
	require.Equal(t, h, parsed2)
}

func TestHashBase64RoundTrip(t *testing.T) {
	h := cellhash.EmptyCellHash
	parsed, err := cellhash.FromBase64(h.Base64())
	require.NoError(t, err)
	require.Equal(t, h, parsed)
}

func TestFromBytesWrongLength(t *testing.T) {
	_, err := cellhash.FromBytes([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestLevelMaskOr(t *testing.T) {
	a := cellhash.NewLevelMask(0b001)
	b := cellhash.NewLevelMask(0b010)
	require.Equal(t, cellhash.NewLevelMask(0b011), a.Or(b))
	require.Equal(t, 2, a.Or(b).Level())
	require.Equal(t, 3, a.Or(b).HashCount())
}

func TestLevelMaskApply(t *testing.T) {
	m := cellhash.NewLevelMask(0b110)
	require.Equal(t, cellhash.NewLevelMask(0b000), m.Apply(0))
	require.Equal(t, cellhash.NewLevelMask(0b010), m.Apply(1))
	require.Equal(t, cellhash.NewLevelMask(0b110), m.Apply(2))
}

func TestCellTypeFromTag(t *testing.T) {
	ct, err := cellhash.CellTypeFromTag(0x01)
	require.NoError(t, err)
	require.Equal(t, cellhash.PrunedBranch, ct)

	_, err = cellhash.CellTypeFromTag(0x09)
	require.Error(t, err)
}
