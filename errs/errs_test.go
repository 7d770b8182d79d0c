package errs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ton-core/cellkit/errs"
)

func TestKindMatching(t *testing.T) {
	err := errs.New(errs.DataOverflow, "cell is full")
	require.True(t, errs.Is(err, errs.DataOverflow))
	require.False(t, errs.Is(err, errs.DataUnderflow))
}

func TestWrongPrefixRecoverable(t *testing.T) {
	err := errs.NewWrongPrefix("0b0110_4", "0b0111_4")
	require.True(t, errs.Is(err, errs.WrongPrefix))
	require.Contains(t, err.Error(), "expected")
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errs.New(errs.TruncatedPayload, "eof")
	wrapped := errs.Wrap(errs.BocWrongMagic, cause, "decoding envelope")
	require.True(t, errs.Is(wrapped, errs.BocWrongMagic))
	require.ErrorIs(t, wrapped, cause)
}
