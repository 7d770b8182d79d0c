package bits_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ton-core/cellkit/bits"
	"github.com/ton-core/cellkit/numeric"
)

func TestS1BooleanRoundTrip(t *testing.T) {
	b := bits.NewBuilder()
	require.NoError(t, b.WriteBit(true))
	require.NoError(t, b.WriteBit(false))
	require.EqualValues(t, 2, b.BitsLen())
	require.Equal(t, []byte{0b10000000}, b.Bytes())

	p := bits.NewParser(b.Bytes(), b.BitsLen(), 0)
	v1, err := p.ReadBit()
	require.NoError(t, err)
	require.True(t, v1)
	v2, err := p.ReadBit()
	require.NoError(t, err)
	require.False(t, v2)
	require.NoError(t, p.EnsureEmpty())
}

func TestS2BitWriting(t *testing.T) {
	b := bits.NewBuilder()
	require.NoError(t, b.WriteBit(true))
	require.NoError(t, b.WriteBits([]byte{0b10101010}, 8))
	require.NoError(t, b.WriteBits([]byte{0b01010000}, 4))
	require.EqualValues(t, 13, b.BitsLen())

	p := bits.NewParser(b.Bytes(), b.BitsLen(), 0)
	bit, err := p.ReadBit()
	require.NoError(t, err)
	require.True(t, bit)

	byteBits, err := p.ReadBits(8)
	require.NoError(t, err)
	require.Equal(t, byte(0xAA), byteBits[0])

	nibble, err := p.ReadBits(4)
	require.NoError(t, err)
	require.Equal(t, byte(0b0101), nibble[0]>>4)
}

func TestWriteNumOverflow(t *testing.T) {
	b := bits.NewBuilder()
	err := b.WriteNum(numeric.FromUint64At(300, 32), 4)
	require.Error(t, err)
}

func TestDataOverflow(t *testing.T) {
	b := bits.NewBuilder()
	big := make([]byte, 128)
	require.NoError(t, b.WriteBits(big, 1023))
	require.Error(t, b.WriteBit(true))
}

func TestBuilderSafetyLeavesCursorOnFailure(t *testing.T) {
	b := bits.NewBuilder()
	require.NoError(t, b.WriteBit(true))
	before := b.BitsLen()
	err := b.WriteNum(numeric.FromUint64At(0xFFFF, 32), 2)
	require.Error(t, err)
	require.Equal(t, before, b.BitsLen())
}

func TestSignedNumRoundTrip(t *testing.T) {
	b := bits.NewBuilder()
	require.NoError(t, b.WriteNum(numeric.FromInt64At(-5, 8), 8))
	p := bits.NewParser(b.Bytes(), b.BitsLen(), 0)
	v, err := p.ReadInt(8)
	require.NoError(t, err)
	require.EqualValues(t, -5, v.Int64())
}

func TestUnsignedNumRoundTrip(t *testing.T) {
	b := bits.NewBuilder()
	require.NoError(t, b.WriteNum(numeric.FromUint64At(200, 9), 9))
	p := bits.NewParser(b.Bytes(), b.BitsLen(), 0)
	v, err := p.ReadUint(9)
	require.NoError(t, err)
	require.EqualValues(t, 200, v.Uint64())
}

func TestU256FastPathRoundTrip(t *testing.T) {
	data := make([]byte, 32)
	for i := range data {
		data[i] = byte(i + 1)
	}
	u := numeric.U256FromBigEndian(data)

	b := bits.NewBuilder()
	require.NoError(t, b.WriteNum(u, 256))
	require.EqualValues(t, 256, b.BitsLen())

	p := bits.NewParser(b.Bytes(), b.BitsLen(), 0)
	v, err := p.ReadNum(256, false)
	require.NoError(t, err)
	require.Equal(t, u.Bytes(), v.Bytes())
}

func TestRefsOverflow(t *testing.T) {
	b := bits.NewBuilder()
	for i := 0; i < 4; i++ {
		require.NoError(t, b.ReserveRef())
	}
	require.Error(t, b.ReserveRef())
}
