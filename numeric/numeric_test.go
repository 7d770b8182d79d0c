package numeric_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ton-core/cellkit/numeric"
)

func TestMachineMinBitsLen(t *testing.T) {
	require.EqualValues(t, 1, numeric.FromUint64At(0, 8).MinBitsLen())
	require.EqualValues(t, 3, numeric.FromUint64At(5, 8).MinBitsLen()) // 0b101
	require.EqualValues(t, 4, numeric.FromInt64At(5, 8).MinBitsLen())  // +sign bit
	require.EqualValues(t, 1, numeric.FromInt64At(-1, 8).MinBitsLen()) // -1 fits in 1 bit (sign)
}

func TestMachineShr(t *testing.T) {
	v := numeric.FromUint64At(0b1010, 8)
	shifted := v.Shr(2).(numeric.Machine)
	require.EqualValues(t, 0b10, shifted.Uint64())
	require.EqualValues(t, 6, shifted.Width())
}

func TestMachineBytesRoundTrip(t *testing.T) {
	v := numeric.FromUint64At(0xABCD, 16)
	b := v.Bytes()
	require.Equal(t, []byte{0xAB, 0xCD}, b)

	back := numeric.FromBytes(2, 16, false, b).(numeric.Machine)
	require.Equal(t, v.Uint64(), back.Uint64())
}

func TestBigSignedRoundTrip(t *testing.T) {
	v := numeric.FromBigInt(big.NewInt(-42), true)
	b := v.Bytes()
	back := numeric.FromBytes(uint(len(b)), 200, true, b).(numeric.Big)
	require.Equal(t, int64(-42), back.Int().Int64())
}

func TestU256BytesTrim(t *testing.T) {
	v := numeric.U256FromBigEndian([]byte{0x01, 0x02})
	require.Equal(t, []byte{0x01, 0x02}, v.Bytes())
	require.False(t, v.IsZero())
}

func TestU256Zero(t *testing.T) {
	var v numeric.U256
	require.True(t, v.IsZero())
	require.EqualValues(t, 1, v.MinBitsLen())
}
