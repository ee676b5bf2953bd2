package tdepth

import (
	"testing"

	"github.com/consensys/tpar/characterize"
	"github.com/consensys/tpar/gate"
	"github.com/stretchr/testify/require"
)

func circuit(names []string, gates ...gate.Gate) *gate.Circuit {
	in := make(map[string]bool, len(names))
	for _, n := range names {
		in[n] = true
	}
	return &gate.Circuit{Names: names, Inputs: in, Gates: gates}
}

func TestPartitionBasedIsolatedZ3IsThree(t *testing.T) {
	c := circuit([]string{"a", "b", "c"}, gate.Gate{Kind: gate.Z3, Args: []string{"a", "b", "c"}})
	res, err := characterize.Run(c)
	require.NoError(t, err)
	require.Equal(t, 3, PartitionBased(res))
}

func TestPartitionBasedTwoIndependentTsIsOne(t *testing.T) {
	c := circuit([]string{"a", "b"},
		gate.Gate{Kind: gate.T, Args: []string{"a"}},
		gate.Gate{Kind: gate.T, Args: []string{"b"}},
	)
	res, err := characterize.Run(c)
	require.NoError(t, err)
	require.Equal(t, 1, PartitionBased(res))
}

func TestCriticalPathAdjacentTPairIsTwo(t *testing.T) {
	c := circuit([]string{"a"},
		gate.Gate{Kind: gate.T, Args: []string{"a"}},
		gate.Gate{Kind: gate.TDag, Args: []string{"a"}},
	)
	require.Equal(t, 2, CriticalPath(c))
}

func TestCriticalPathLoneZ3IsThree(t *testing.T) {
	c := circuit([]string{"a", "b", "c"}, gate.Gate{Kind: gate.Z3, Args: []string{"a", "b", "c"}})
	require.Equal(t, 3, CriticalPath(c))
}

func TestCriticalPathIndependentBranchesTakeTheMax(t *testing.T) {
	c := circuit([]string{"a", "b"},
		gate.Gate{Kind: gate.T, Args: []string{"a"}},
		gate.Gate{Kind: gate.T, Args: []string{"b"}},
		gate.Gate{Kind: gate.T, Args: []string{"b"}},
	)
	require.Equal(t, 2, CriticalPath(c))
}
