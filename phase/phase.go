// Package phase implements the phase table (spec.md §3): a collection of
// phase classes, each holding a list of (coefficient, ParityBits) terms
// sharing a common denominator 2^max_exponent.
package phase

import (
	"fmt"
	"strings"

	"github.com/consensys/tpar/circuiterr"
	"github.com/consensys/tpar/parity"
)

// Coefficient is a signed accumulator for one phase term.
type Coefficient int32

// MaxSupportedExponent bounds how far a class's denominator may grow before
// Insert refuses to proceed; it exists purely to keep rescale shifts
// inside int32 and has never been approached by a real circuit's "pi" class.
const MaxSupportedExponent = 30

// Term is one entry of a phase class: a coefficient and the ParityBits it
// applies to.
type Term struct {
	Coeff  Coefficient
	Parity parity.Bits
}

// Class holds every term recorded so far at a common exponent.
type Class struct {
	MaxExp int
	Terms  []Term
}

// Table maps class name (sign-normalised, see Insert) to its Class.
type Table struct {
	classes map[string]*Class
	order   []string
}

// NewTable returns an empty phase table.
func NewTable() *Table {
	return &Table{classes: map[string]*Class{}}
}

// ClassNames returns class names in first-seen order, for deterministic
// iteration over the table.
func (t *Table) ClassNames() []string {
	return append([]string(nil), t.order...)
}

// Class returns the named class, or nil if it has never been inserted into.
func (t *Table) Class(name string) *Class {
	return t.classes[name]
}

// Insert folds (sign*1, at exponent exp) into class's term matching parity,
// merging by ParityBits equality, and returns the index of the affected
// term within the class's Terms slice.
//
// Class names are sign-normalised: a leading '-' on the class argument only
// flips the inserted coefficient's sign, it never creates a distinct class
// ("pi" and "-pi" are the same class, unlike the sign-in-key scheme of the
// tool this pipeline descends from).
func (t *Table) Insert(class string, delta Coefficient, exp int, p parity.Bits) (int, error) {
	sign := Coefficient(1)
	name := class
	if strings.HasPrefix(name, "-") {
		sign = -1
		name = name[1:]
	}
	delta *= sign

	c, ok := t.classes[name]
	if !ok {
		if exp > MaxSupportedExponent {
			return 0, circuiterr.New(circuiterr.InternalInvariant, fmt.Errorf("phase class %q exceeds supported exponent %d", name, MaxSupportedExponent))
		}
		c = &Class{MaxExp: exp}
		t.classes[name] = c
		t.order = append(t.order, name)
	} else if exp > c.MaxExp {
		if exp > MaxSupportedExponent {
			return 0, circuiterr.New(circuiterr.InternalInvariant, fmt.Errorf("phase class %q exceeds supported exponent %d", name, MaxSupportedExponent))
		}
		shift := exp - c.MaxExp
		for i := range c.Terms {
			c.Terms[i].Coeff <<= uint(shift)
		}
		c.MaxExp = exp
	} else if exp < c.MaxExp {
		shift := c.MaxExp - exp
		delta <<= uint(shift)
	}

	for i := range c.Terms {
		if c.Terms[i].Parity.Equal(p) {
			c.Terms[i].Coeff += delta
			return i, nil
		}
	}
	c.Terms = append(c.Terms, Term{Coeff: delta, Parity: p.Clone()})
	return len(c.Terms) - 1, nil
}

// ReducedCoefficient folds c modulo 2^(maxExp+1) (a coefficient c at
// exponent e is the phase c*pi/2^e, which repeats every 2^(e+1)) into the
// symmetric range (-2^maxExp, 2^maxExp], the representation synthesis
// decomposes into gates. A coefficient that reduces to zero contributes no gate at all
// (spec.md §7's "coefficient 0 after merge").
func ReducedCoefficient(c Coefficient, maxExp int) int {
	if maxExp == 0 {
		if c%2 == 0 {
			return 0
		}
		return 1
	}
	m := 1 << uint(maxExp+1)
	v := int(c) % m
	if v < 0 {
		v += m
	}
	if v > m/2 {
		v -= m
	}
	return v
}
