package circuiterr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	base := errors.New("boom")

	require.Equal(t, "internal invariant violated: boom", New(InternalInvariant, base).Error())
	require.Equal(t, "malformed input: line 4: boom", AtLine(MalformedInput, 4, base).Error())
	require.Equal(t, `gate unsupported: gate "tof3": boom`, OnGate(GateUnsupported, "tof3", base).Error())
}

func TestErrorUnwrap(t *testing.T) {
	base := errors.New("boom")
	err := New(MalformedInput, base)
	require.ErrorIs(t, err, base)
}
