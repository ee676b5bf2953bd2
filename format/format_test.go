package format

import (
	"strings"
	"testing"

	"github.com/consensys/tpar/circuiterr"
	"github.com/consensys/tpar/gate"
	"github.com/stretchr/testify/require"
)

const sample = `.v a b c
.i a b
.o a b c
BEGIN
H a
T a
tof a b
Z a b c
Rz(theta^3) c
T* b
END
`

func TestParseReadsDeclarationsAndGates(t *testing.T) {
	c, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, c.Names)
	require.True(t, c.Inputs["a"])
	require.True(t, c.Inputs["b"])
	require.False(t, c.Inputs["c"])
	require.Equal(t, []string{"a", "b", "c"}, c.Outputs)
	require.Len(t, c.Gates, 6)

	require.Equal(t, gate.H, c.Gates[0].Kind)
	require.Equal(t, gate.T, c.Gates[1].Kind)
	require.Equal(t, gate.Tof, c.Gates[2].Kind)
	require.Equal(t, gate.Z3, c.Gates[3].Kind)
	require.Equal(t, []string{"a", "b", "c"}, c.Gates[3].Args)
	require.Equal(t, gate.Rz, c.Gates[4].Kind)
	require.Equal(t, "theta", c.Gates[4].RzBase)
	require.Equal(t, 3, c.Gates[4].RzExp)
	require.Equal(t, gate.TDag, c.Gates[5].Kind)

	require.Equal(t, 5, c.Gates[0].Line)
	require.Equal(t, 10, c.Gates[5].Line)
}

func TestParseSingleWireZIsPlainZ(t *testing.T) {
	c, err := Parse(strings.NewReader(".v a\n.i a\nBEGIN\nZ a\nEND\n"))
	require.NoError(t, err)
	require.Equal(t, gate.Z, c.Gates[0].Kind)
}

func TestEmitRoundTripsThroughParse(t *testing.T) {
	c, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, Emit(&buf, c))

	c2, err := Parse(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Equal(t, c.Names, c2.Names)
	require.Equal(t, c.Inputs, c2.Inputs)
	require.Len(t, c2.Gates, len(c.Gates))
	for i := range c.Gates {
		require.Equal(t, c.Gates[i].Kind, c2.Gates[i].Kind)
		require.Equal(t, c.Gates[i].Args, c2.Gates[i].Args)
	}
}

func TestParseRejectsGateBeforeBegin(t *testing.T) {
	_, err := Parse(strings.NewReader(".v a\n.i a\nH a\nBEGIN\nEND\n"))
	require.Error(t, err)
	var ce *circuiterr.Error
	require.ErrorAs(t, err, &ce)
	require.Equal(t, circuiterr.MalformedInput, ce.Kind)
}

func TestParseRejectsMissingEnd(t *testing.T) {
	_, err := Parse(strings.NewReader(".v a\n.i a\nBEGIN\nH a\n"))
	require.Error(t, err)
}

func TestParseRejectsUnknownSymbol(t *testing.T) {
	_, err := Parse(strings.NewReader(".v a\n.i a\nBEGIN\nFROB a\nEND\n"))
	require.Error(t, err)
	var ce *circuiterr.Error
	require.ErrorAs(t, err, &ce)
	require.Equal(t, circuiterr.GateUnsupported, ce.Kind)
}

func TestParseRejectsMissingDeclarations(t *testing.T) {
	_, err := Parse(strings.NewReader("BEGIN\nEND\n"))
	require.Error(t, err)
}
