package phase

import (
	"testing"

	"github.com/consensys/tpar/parity"
	"github.com/stretchr/testify/require"
)

func TestInsertMergesEqualParity(t *testing.T) {
	table := NewTable()
	p := parity.New(4)
	p.Set(0)

	_, err := table.Insert("pi", 1, 2, p)
	require.NoError(t, err)
	_, err = table.Insert("pi", 1, 2, p)
	require.NoError(t, err)

	c := table.Class("pi")
	require.Len(t, c.Terms, 1)
	require.Equal(t, Coefficient(2), c.Terms[0].Coeff)
	require.Equal(t, 2, c.MaxExp)
}

func TestInsertSignNormalisesClassName(t *testing.T) {
	table := NewTable()
	p := parity.New(4)
	p.Set(1)

	_, err := table.Insert("pi", 1, 2, p)
	require.NoError(t, err)
	_, err = table.Insert("-pi", 1, 2, p)
	require.NoError(t, err)

	require.Nil(t, table.Class("-pi"))
	c := table.Class("pi")
	require.Len(t, c.Terms, 1)
	require.Equal(t, Coefficient(0), c.Terms[0].Coeff)
}

func TestInsertRescalesOnExponentIncrease(t *testing.T) {
	table := NewTable()
	p := parity.New(4)
	p.Set(0)

	_, err := table.Insert("pi", 1, 1, p) // one P at exponent 1
	require.NoError(t, err)
	_, err = table.Insert("pi", 1, 2, p) // one T at exponent 2
	require.NoError(t, err)

	c := table.Class("pi")
	require.Equal(t, 2, c.MaxExp)
	// the P's coefficient (1 @ exp1) rescales to 2 @ exp2, then the T (1 @ exp2) adds: 3.
	require.Equal(t, Coefficient(3), c.Terms[0].Coeff)
}

func TestTwoTsReduceToOneP(t *testing.T) {
	// Two adjacent T gates on the same wire: coefficient 2 at exponent 2.
	// Reduced against maxExp=2 that decomposes to a single P (bit 1 set).
	require.Equal(t, 2, ReducedCoefficient(2, 2))
}

func TestFourTsReduceToOneZ(t *testing.T) {
	// Four T gates are one Z: coefficient 4 at exponent 2 stays 4 (bit 2 set).
	require.Equal(t, 4, ReducedCoefficient(4, 2))
}

func TestReducedCoefficientSymmetricRange(t *testing.T) {
	// Seven T gates are one T*: 7 folds modulo 8 into (-4, 4] as -1.
	require.Equal(t, -1, ReducedCoefficient(7, 2))
}
