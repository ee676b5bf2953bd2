// Package partition implements the matroid partitioner (spec.md §3, §4.3):
// it greedily assigns phase-term indices to classes such that each class
// stays linearly independent under the shared independence oracle.
package partition

import (
	"github.com/consensys/tpar/oracle"
	"github.com/consensys/tpar/parity"
)

// TermSource supplies the ParityBits for a term index, so the partitioner
// never needs to know how a phase class stores its terms.
type TermSource interface {
	Parity(idx int) parity.Bits
}

// Class is one matroid-independent group of term indices.
type Class struct {
	Indices []int
}

// Partitioner tracks the classes for one phase class's term list.
type Partitioner struct {
	terms   TermSource
	oracle  *oracle.Oracle
	classes []*Class
}

// New returns an empty partitioner over terms, sharing the given oracle.
func New(terms TermSource, o *oracle.Oracle) *Partitioner {
	return &Partitioner{terms: terms, oracle: o}
}

// Classes returns the current classes; callers must not retain Indices
// slices across a later Add/Freeze/Repartition call.
func (p *Partitioner) Classes() []*Class { return p.classes }

// Count returns the total number of indices held across all classes.
func (p *Partitioner) Count() int {
	n := 0
	for _, c := range p.classes {
		n += len(c.Indices)
	}
	return n
}

// Add inserts idx into the first class it can join without breaking
// independence, tie-breaking by creation order (spec.md line 94: "scan
// classes in creation order; first fit wins"), opening a new class if none
// admits it.
func (p *Partitioner) Add(idx int) {
	target := p.terms.Parity(idx)
	for _, c := range p.classes {
		if p.oracle.Independent(p.candidateBits(c, target)) {
			c.Indices = append(c.Indices, idx)
			return
		}
	}
	p.classes = append(p.classes, &Class{Indices: []int{idx}})
}

func (p *Partitioner) candidateBits(c *Class, extra parity.Bits) []parity.Bits {
	out := make([]parity.Bits, 0, len(c.Indices)+1)
	for _, i := range c.Indices {
		out = append(out, p.terms.Parity(i))
	}
	out = append(out, extra)
	return out
}

// Freeze removes every index matching pred from p's classes and returns a
// new Partitioner holding just those indices, grouped into fresh classes
// (each frozen index keeps the class membership it already had, but empty
// classes are dropped from both sides).
func (p *Partitioner) Freeze(pred func(idx int) bool) *Partitioner {
	frozen := &Partitioner{terms: p.terms, oracle: p.oracle}
	var kept []*Class
	for _, c := range p.classes {
		var stay, leave []int
		for _, i := range c.Indices {
			if pred(i) {
				leave = append(leave, i)
			} else {
				stay = append(stay, i)
			}
		}
		if len(leave) > 0 {
			frozen.classes = append(frozen.classes, &Class{Indices: leave})
		}
		if len(stay) > 0 {
			c.Indices = stay
			kept = append(kept, c)
		}
	}
	p.classes = kept
	return frozen
}

// Repartition re-derives class membership from scratch, called after the
// ambient dimension d grows: a merge that was blocked by the old, smaller
// cap may now be admissible.
func (p *Partitioner) Repartition() {
	var all []int
	for _, c := range p.classes {
		all = append(all, c.Indices...)
	}
	p.classes = nil
	for _, idx := range all {
		p.Add(idx)
	}
}
