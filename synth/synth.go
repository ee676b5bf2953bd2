// Package synth implements the Synthesiser (spec.md §4.4): it replays a
// Characteriser Result's Hadamard events in order, emitting a CNOT+T block
// per phase class between consecutive Hadamards and a final alignment block
// restoring the declared output parities.
package synth

import (
	"fmt"

	"github.com/consensys/tpar/characterize"
	"github.com/consensys/tpar/circuiterr"
	"github.com/consensys/tpar/debug"
	"github.com/consensys/tpar/gate"
	"github.com/consensys/tpar/internal/algo_utils"
	"github.com/consensys/tpar/linalg"
	"github.com/consensys/tpar/oracle"
	"github.com/consensys/tpar/parity"
	"github.com/consensys/tpar/partition"
	"github.com/consensys/tpar/phase"
)

const piClass = "pi"

// classTerms adapts a *phase.Class to partition.TermSource.
type classTerms struct {
	class *phase.Class
}

func (c classTerms) Parity(idx int) parity.Bits { return c.class.Terms[idx].Parity }

// state carries the Synthesiser's mutable view of the circuit being built:
// the current physical wire values, which ambient variables are live, the
// shared independence oracle, one partitioner per phase class, and the
// phase terms each class is still waiting to become realisable.
type state struct {
	names []string
	wires []parity.Bits
	w     uint
	mask  parity.Bits

	oracle *oracle.Oracle
	table  *phase.Table
	order  []string
	parts  map[string]*partition.Partitioner

	remaining map[string][]int
	gates     []gate.Gate
}

// Run synthesises a gate sequence realising res.Table's phase polynomial and
// replaying res.Events in order, ending aligned to res.OutputParities.
func Run(res *characterize.Result) ([]gate.Gate, error) {
	s := &state{
		names: res.Names,
		w:     res.Width,
		table: res.Table,
		order: res.Table.ClassNames(),
		parts: make(map[string]*partition.Partitioner, len(res.Table.ClassNames())),
	}

	s.wires = make([]parity.Bits, len(res.Names))
	nextInputBit := uint(0)
	for i, name := range res.Names {
		b := parity.New(s.w)
		if !res.ZeroMap[name] {
			b.Set(nextInputBit)
			nextInputBit++
		}
		s.wires[i] = b
	}

	s.mask = parity.New(s.w)
	for i := 0; i < res.NumInputs; i++ {
		s.mask.Set(uint(i))
	}
	s.mask.Set(s.w - 1)

	s.oracle = oracle.New(res.NumInputs)
	s.remaining = make(map[string][]int, len(s.order))
	for _, name := range s.order {
		class := res.Table.Class(name)
		s.parts[name] = partition.New(classTerms{class}, s.oracle)
		for idx := range class.Terms {
			if class.Terms[idx].Parity.SubsetOf(s.mask) {
				s.parts[name].Add(idx)
			} else {
				s.remaining[name] = append(s.remaining[name], idx)
			}
		}
	}

	for _, event := range res.Events {
		if err := s.processEvent(event); err != nil {
			return nil, err
		}
	}

	for _, name := range s.order {
		class := res.Table.Class(name)
		for _, c := range s.parts[name].Classes() {
			if err := s.emitBlock(name, class, c.Indices); err != nil {
				return nil, err
			}
		}
	}

	if err := s.emitAlignment(res.OutputParities); err != nil {
		return nil, err
	}

	return s.gates, nil
}

// processEvent implements one iteration of spec.md line 106's main loop:
// freeze and emit the terms the Hadamard retires, realign to its pre-reset
// snapshot, emit the H itself, grow the ambient dimension if the reset wire
// introduced a new independent direction, then drain anything the new
// dimension or the fresh variable makes realisable.
func (s *state) processEvent(event *characterize.HadamardEvent) error {
	for _, name := range s.order {
		idx := event.Inputs[name]
		if len(idx) == 0 {
			continue
		}
		lost := make(map[int]bool, len(idx))
		for _, i := range idx {
			lost[i] = true
		}
		frozen := s.parts[name].Freeze(func(i int) bool { return lost[i] })
		class := s.table.Class(name)
		for _, c := range frozen.Classes() {
			if err := s.emitBlock(name, class, c.Indices); err != nil {
				return err
			}
		}
	}

	if err := s.emitAlignment(event.Snapshot); err != nil {
		return err
	}

	s.gates = append(s.gates, gate.Gate{Kind: gate.H, Args: []string{s.names[event.Qubit]}})
	fresh := parity.New(s.w)
	fresh.Set(event.Prep)
	s.wires[event.Qubit] = fresh
	s.mask.Set(event.Prep)

	if newRank := linalg.Rank(s.wires); newRank > s.oracle.Dim() {
		s.oracle.SetDim(newRank)
		for _, name := range s.order {
			s.parts[name].Repartition()
		}
	}

	for _, name := range s.order {
		class := s.table.Class(name)
		var waiting []int
		for _, idx := range s.remaining[name] {
			if class.Terms[idx].Parity.SubsetOf(s.mask) {
				s.parts[name].Add(idx)
			} else {
				waiting = append(waiting, idx)
			}
		}
		s.remaining[name] = waiting
	}
	return nil
}

// emitBlock realises every term in indices onto its own physical wire, emits
// the corresponding phase gate for each, then reverses the realising CNOTs
// so the block leaves wires exactly as it found them (spec.md line 110's
// "arrange, reduce, emit phase gates, undo").
func (s *state) emitBlock(name string, class *phase.Class, indices []int) error {
	if len(indices) == 0 {
		return nil
	}

	// Each term needs a distinct physical wire to land on; which wire works
	// depends on the current basis, so it is found by pivot search (scanning
	// the free wires for one whose realisation succeeds) rather than assigned
	// by the term's position within indices.
	used := make([]bool, len(s.wires))
	wireFor := make([]int, len(indices))
	var forward []linalg.CNOT
	for i, idx := range indices {
		want := class.Terms[idx].Parity
		wire := -1
		var ops []linalg.CNOT
		for w := range s.wires {
			if used[w] {
				continue
			}
			if candidate, ok := linalg.RealizeOnto(s.wires, w, want); ok {
				wire, ops = w, candidate
				break
			}
		}
		if wire == -1 {
			return circuiterr.New(circuiterr.InternalInvariant,
				fmt.Errorf("phase class %q term %d has no realisation onto any free wire", name, idx))
		}
		used[wire] = true
		wireFor[i] = wire
		for _, op := range ops {
			linalg.Apply(s.wires, op)
			forward = append(forward, op)
		}
	}

	for _, op := range forward {
		s.gates = append(s.gates, s.cnotGate(op))
	}
	for i, idx := range indices {
		s.gates = append(s.gates, decompose(class.Terms[idx].Coeff, class.MaxExp, name, s.names[wireFor[i]])...)
	}
	for i := len(forward) - 1; i >= 0; i-- {
		op := forward[i]
		linalg.Apply(s.wires, op)
		s.gates = append(s.gates, s.cnotGate(op))
	}

	if debug.Debug {
		if got := linalg.Rank(s.wires); got != s.oracle.Dim() {
			return circuiterr.New(circuiterr.InternalInvariant,
				fmt.Errorf("wire rank %d diverged from oracle dimension %d after phase class %q block", got, s.oracle.Dim(), name))
		}
	}
	return nil
}

// emitAlignment realigns wires to target via an uncancelled CNOT program
// (spec.md line 110's final step, for the empty-partition block between the
// last realised term and the next Hadamard or output).
func (s *state) emitAlignment(target []parity.Bits) error {
	ops, ok := linalg.Realign(s.wires, target)
	if !ok {
		return circuiterr.New(circuiterr.InternalInvariant, fmt.Errorf("wire state cannot be realigned to target"))
	}
	for _, op := range ops {
		s.gates = append(s.gates, s.cnotGate(op))
	}
	return nil
}

func (s *state) cnotGate(op linalg.CNOT) gate.Gate {
	return gate.Gate{Kind: gate.Tof, Args: []string{s.names[op.Src], s.names[op.Dst]}}
}

// decompose expands a term's coefficient at the class's max exponent into
// elementary phase gates on target, one per set bit of the reduced magnitude.
// Bit position p (0-indexed from the low bit) corresponds to elementary
// exponent maxExp-p: for the "pi" class this lands on T (2), P (1) or Z (0);
// every other class falls back to a generic Rz at that exponent. A
// coefficient that reduces to zero contributes no gate.
func decompose(c phase.Coefficient, maxExp int, class, target string) []gate.Gate {
	reduced := phase.ReducedCoefficient(c, maxExp)
	if reduced == 0 {
		return nil
	}
	negative := reduced < 0
	mag := algo_utils.Abs(reduced)

	var gates []gate.Gate
	for p := 0; (1 << uint(p)) <= mag; p++ {
		if mag&(1<<uint(p)) == 0 {
			continue
		}
		gates = append(gates, elementaryGate(class, maxExp-p, negative, target))
	}
	return gates
}

func elementaryGate(class string, exp int, negative bool, target string) gate.Gate {
	if class == piClass {
		switch exp {
		case 2:
			if negative {
				return gate.Gate{Kind: gate.TDag, Args: []string{target}}
			}
			return gate.Gate{Kind: gate.T, Args: []string{target}}
		case 1:
			if negative {
				return gate.Gate{Kind: gate.PDag, Args: []string{target}}
			}
			return gate.Gate{Kind: gate.P, Args: []string{target}}
		case 0:
			return gate.Gate{Kind: gate.Z, Args: []string{target}}
		}
	}
	base := class
	if negative {
		base = "-" + base
	}
	return gate.Gate{Kind: gate.Rz, Args: []string{target}, RzBase: base, RzExp: exp}
}
