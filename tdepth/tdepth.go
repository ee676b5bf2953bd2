// Package tdepth computes T-depth metrics over a characterised or
// synthesised circuit (spec.md §6, SPEC_FULL.md §13).
package tdepth

import (
	"github.com/consensys/tpar/characterize"
	"github.com/consensys/tpar/gate"
	"github.com/consensys/tpar/oracle"
	"github.com/consensys/tpar/parity"
	"github.com/consensys/tpar/partition"
	"github.com/consensys/tpar/phase"
)

type classTerms struct {
	class *phase.Class
}

func (c classTerms) Parity(idx int) parity.Bits { return c.class.Terms[idx].Parity }

// PartitionBased reports the T-depth the matroid partitioner would assign a
// characterised circuit's whole phase polynomial at once, ignoring Hadamard
// event ordering entirely: every phase class's non-zero terms are
// partitioned in the full ambient space (width-1, the n+h space excluding
// only the affine constant bit), and the answer is the sum of class counts
// across phase classes.
func PartitionBased(res *characterize.Result) int {
	dim := int(res.Width) - 1
	depth := 0
	for _, name := range res.Table.ClassNames() {
		class := res.Table.Class(name)
		o := oracle.New(dim)
		p := partition.New(classTerms{class}, o)
		for idx, term := range class.Terms {
			if phase.ReducedCoefficient(term.Coeff, class.MaxExp) != 0 {
				p.Add(idx)
			}
		}
		depth += len(p.Classes())
	}
	return depth
}

// CriticalPath reports the longest chain of T-cost-bearing gates in c,
// walking backward and tracking, per wire, the T-depth accrued by
// everything already seen to its right. A T or T* contributes 1; the
// as-yet-unexpanded Z3 symbol contributes 3, matching its seven-term
// expansion's own worst case.
func CriticalPath(c *gate.Circuit) int {
	depth := make(map[string]int, len(c.Names))
	for _, n := range c.Names {
		depth[n] = 0
	}

	best := 0
	for i := len(c.Gates) - 1; i >= 0; i-- {
		g := c.Gates[i]
		cur := 0
		for _, arg := range g.Args {
			if d := depth[arg]; d > cur {
				cur = d
			}
		}
		switch g.Kind {
		case gate.T, gate.TDag:
			cur++
		case gate.Z3:
			cur += 3
		}
		for _, arg := range g.Args {
			depth[arg] = cur
		}
		if cur > best {
			best = cur
		}
	}
	return best
}
