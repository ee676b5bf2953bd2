package linalg

import (
	"testing"

	"github.com/consensys/tpar/parity"
	"github.com/stretchr/testify/require"
)

func vec(w uint, bits ...uint) parity.Bits {
	b := parity.New(w)
	for _, i := range bits {
		b.Set(i)
	}
	return b
}

func TestRankIndependent(t *testing.T) {
	rows := []parity.Bits{vec(4, 0), vec(4, 1), vec(4, 2)}
	require.Equal(t, 3, Rank(rows))
}

func TestRankDependent(t *testing.T) {
	rows := []parity.Bits{vec(4, 0), vec(4, 1), vec(4, 0, 1)}
	require.Equal(t, 2, Rank(rows))
}

func TestToUpperEchelonReplaysToOriginal(t *testing.T) {
	rows := []parity.Bits{vec(4, 0, 2), vec(4, 1), vec(4, 0)}
	want := make([]parity.Bits, len(rows))
	for i := range rows {
		want[i] = rows[i].Clone()
	}
	ops := ToUpperEchelon(rows)

	replay := make([]parity.Bits, len(want))
	for i := range want {
		replay[i] = want[i].Clone()
	}
	for _, op := range ops {
		Apply(replay, op)
	}
	for i := range replay {
		require.True(t, replay[i].Equal(rows[i]), "row %d mismatch", i)
	}
}

func TestSolveAndRealizeOnto(t *testing.T) {
	rows := []parity.Bits{vec(4, 0), vec(4, 1), vec(4, 0, 1)}
	target := vec(4, 0, 1)

	combo, ok := Solve(rows, -1, target)
	require.True(t, ok)
	acc := parity.New(4)
	for _, i := range combo {
		acc.XorInPlace(rows[i])
	}
	require.True(t, acc.Equal(target))

	ops, ok := RealizeOnto(rows, 2, vec(4, 0))
	require.True(t, ok)
	for _, op := range ops {
		Apply(rows, op)
	}
	require.True(t, rows[2].Equal(vec(4, 0)))
}

func TestSolveUnreachableTarget(t *testing.T) {
	rows := []parity.Bits{vec(4, 0), vec(4, 1)}
	_, ok := Solve(rows, -1, vec(4, 0, 3))
	require.False(t, ok)
}
