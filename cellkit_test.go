package cellkit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	cellkit "github.com/ton-core/cellkit"
	"github.com/ton-core/cellkit/boc"
	"github.com/ton-core/cellkit/cell"
)

func TestBocHexRoundTrip(t *testing.T) {
	c := cell.Empty()

	hexStr, err := cellkit.ToBocHex(c, boc.WriteOptions{WithCRC: true})
	require.NoError(t, err)

	back, err := cellkit.FromBocHex(hexStr)
	require.NoError(t, err)
	require.Equal(t, c.Hash(0), back.Hash(0))
}

func TestBocB64RoundTrip(t *testing.T) {
	c := cell.Empty()
	b64, err := cellkit.ToBocB64(c, boc.WriteOptions{})
	require.NoError(t, err)

	back, err := cellkit.FromBocB64(b64)
	require.NoError(t, err)
	require.Equal(t, c.Hash(0), back.Hash(0))
}

func TestFromBocBytesRejectsMultiRoot(t *testing.T) {
	a := cell.Empty()
	data, err := boc.WriteBoC([]*cell.Cell{a, a}, boc.WriteOptions{})
	require.NoError(t, err)

	_, err = cellkit.FromBocBytes(data)
	require.Error(t, err)
}
