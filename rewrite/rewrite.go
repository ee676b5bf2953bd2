// Package rewrite implements the two post-synthesis cleanup passes from
// spec.md §4.5: collapsing CNOT swap triples into a leftover wire
// permutation, and cancelling adjacent inverse gate pairs.
package rewrite

import (
	"github.com/consensys/tpar/gate"
	"github.com/consensys/tpar/internal/algo_utils"
)

// CollapseSwaps detects `tof a b; tof b a; tof a b` triples (after folding
// in any permutation already collapsed from earlier triples) and removes
// them, tracking the net wire transposition instead of emitting it. Any
// transposition left over at the end is re-expanded into a chain of CNOT
// swaps, the minimal gate count realising it without lookahead.
func CollapseSwaps(c *gate.Circuit) *gate.Circuit {
	current := make(map[string]string, len(c.Names))
	for _, n := range c.Names {
		current[n] = n
	}

	out := &gate.Circuit{Names: c.Names, Inputs: c.Inputs, Outputs: c.Outputs}
	gates := c.Gates

	for i := 0; i < len(gates); {
		if tri, ok := swapTriple(gates, i, current); ok {
			a, b := tri[0], tri[1]
			for k, v := range current {
				switch v {
				case a:
					current[k] = b
				case b:
					current[k] = a
				}
			}
			i += 3
			continue
		}
		g := gates[i]
		g.Args = algo_utils.Map(g.Args, algo_utils.MapAt(current))
		out.Gates = append(out.Gates, g)
		i++
	}

	if !isIdentity(current) {
		out.Gates = append(out.Gates, expandPermutation(c.Names, current)...)
	}
	return out
}

// swapTriple reports whether gates[i:i+3] form a CNOT swap of two wires,
// once each gate's args are viewed through the renaming accumulated so far.
func swapTriple(gates []gate.Gate, i int, current map[string]string) (wires [2]string, ok bool) {
	if i+2 >= len(gates) {
		return wires, false
	}
	g0, g1, g2 := gates[i], gates[i+1], gates[i+2]
	if g0.Kind != gate.Tof || g1.Kind != gate.Tof || g2.Kind != gate.Tof {
		return wires, false
	}
	if g0.Arity() != 2 || g1.Arity() != 2 || g2.Arity() != 2 {
		return wires, false
	}
	x0, y0 := current[g0.Args[0]], current[g0.Args[1]]
	x1, y1 := current[g1.Args[0]], current[g1.Args[1]]
	x2, y2 := current[g2.Args[0]], current[g2.Args[1]]
	// A swap is tof(x,y); tof(y,x); tof(x,y) — the middle gate's args are
	// reversed relative to the outer two.
	if x0 == y1 && y0 == x1 && x0 == x2 && y0 == y2 {
		return [2]string{x0, y0}, true
	}
	return wires, false
}

func isIdentity(current map[string]string) bool {
	for k, v := range current {
		if k != v {
			return false
		}
	}
	return true
}

// expandPermutation decomposes current into disjoint cycles and re-expands
// each cycle (x0 x1 ... xk-1) into the forward chain
// SWAP(x0,x1), SWAP(x1,x2), ..., SWAP(xk-2,xk-1) — three CNOTs each.
func expandPermutation(names []string, current map[string]string) []gate.Gate {
	visited := make(map[string]bool, len(names))
	var gates []gate.Gate
	for _, start := range names {
		if visited[start] || current[start] == start {
			visited[start] = true
			continue
		}
		cycle := []string{start}
		visited[start] = true
		for next := current[start]; next != start; next = current[next] {
			cycle = append(cycle, next)
			visited[next] = true
		}
		for k := 0; k+1 < len(cycle); k++ {
			gates = append(gates, swapGates(cycle[k], cycle[k+1])...)
		}
	}
	return gates
}

func swapGates(x, y string) []gate.Gate {
	return []gate.Gate{
		{Kind: gate.Tof, Args: []string{x, y}},
		{Kind: gate.Tof, Args: []string{y, x}},
		{Kind: gate.Tof, Args: []string{x, y}},
	}
}

// CancelInverses repeatedly removes the first adjacent-in-effect inverse
// pair it finds — two identical-argument gates of opposite kind with no
// intervening gate touching the same wires — until no pair remains.
func CancelInverses(c *gate.Circuit) *gate.Circuit {
	gates := make([]gate.Gate, len(c.Gates))
	copy(gates, c.Gates)

	for {
		i, j, found := findCancellablePair(gates)
		if !found {
			break
		}
		gates = append(gates[:i], append(gates[i+1:j], gates[j+1:]...)...)
	}

	return &gate.Circuit{Names: c.Names, Inputs: c.Inputs, Outputs: c.Outputs, Gates: gates}
}

func findCancellablePair(gates []gate.Gate) (i, j int, found bool) {
	for i = 0; i < len(gates); i++ {
		for j = i + 1; j < len(gates); j++ {
			if overlaps(gates[i], gates[j]) {
				if areInverse(gates[i].Kind, gates[j].Kind) && sameArgs(gates[i], gates[j]) {
					return i, j, true
				}
				break
			}
		}
	}
	return 0, 0, false
}

func sameArgs(a, b gate.Gate) bool {
	if len(a.Args) != len(b.Args) {
		return false
	}
	for k := range a.Args {
		if a.Args[k] != b.Args[k] {
			return false
		}
	}
	return true
}

func overlaps(a, b gate.Gate) bool {
	for _, x := range a.Args {
		for _, y := range b.Args {
			if x == y {
				return true
			}
		}
	}
	return false
}

func areInverse(a, b gate.Kind) bool {
	switch {
	case a == gate.Tof && b == gate.Tof:
		return true
	case a == gate.H && b == gate.H:
		return true
	case a == gate.Z && b == gate.Z:
		return true
	case a == gate.X && b == gate.X:
		return true
	case a == gate.Y && b == gate.Y:
		return true
	case a == gate.T && b == gate.TDag, a == gate.TDag && b == gate.T:
		return true
	case a == gate.P && b == gate.PDag, a == gate.PDag && b == gate.P:
		return true
	default:
		return false
	}
}
