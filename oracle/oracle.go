// Package oracle implements the independence oracle (spec.md §3): given the
// ambient dimension of the current wire state, decide whether a candidate
// set of phase-term ParityBits can share one T-parallel class.
package oracle

import (
	"github.com/consensys/tpar/linalg"
	"github.com/consensys/tpar/parity"
)

// Oracle holds the ambient dimension d: the number of linearly independent
// wire directions currently in play. It is shared by every phase class's
// partitioner, since d only changes on a Hadamard rank increase.
type Oracle struct {
	dim int
}

// New returns an oracle seeded at the given ambient dimension (typically n,
// the number of primary inputs, before any Hadamard has fired).
func New(dim int) *Oracle {
	return &Oracle{dim: dim}
}

// Dim reports d.
func (o *Oracle) Dim() int { return o.dim }

// SetDim updates d, called after a Hadamard is found to increase the wire
// state's rank.
func (o *Oracle) SetDim(d int) { o.dim = d }

// Independent reports whether candidates can coexist in one class: a GF(2)
// space of dimension d holds at most d independent directions, so a set
// larger than d is rejected outright regardless of its own rank.
func (o *Oracle) Independent(candidates []parity.Bits) bool {
	if len(candidates) > o.dim {
		return false
	}
	return linalg.Rank(candidates) == len(candidates)
}
