// Package characterize implements the Characteriser (spec.md §4.1): it walks
// a gate list once and lowers its non-Hadamard fragments into a phase
// polynomial, recording every Hadamard as an event the Synthesiser later
// replays.
package characterize

import (
	"fmt"
	"strings"

	"github.com/consensys/tpar/circuiterr"
	"github.com/consensys/tpar/gate"
	"github.com/consensys/tpar/linalg"
	"github.com/consensys/tpar/parity"
	"github.com/consensys/tpar/phase"
)

// piClass is the phase-class key used by every fixed-angle gate (T, P, Z,
// Y's implicit phase, and the Z3 expansion) — dyadic multiples of pi.
const piClass = "pi"

// HadamardEvent records one Hadamard's effect on the ambient parity space:
// which terms would have gained rank had the wire not been reset (its
// inputs), the fresh variable it introduces, and the wire state snapshot the
// Synthesiser must realign to before emitting the gate.
type HadamardEvent struct {
	Qubit    int
	Prep     uint
	Snapshot []parity.Bits
	Inputs   map[string][]int
}

// Result is the Characteriser's full output (spec.md line 59).
type Result struct {
	Table          *phase.Table
	Events         []*HadamardEvent
	OutputParities []parity.Bits
	Names          []string
	ZeroMap        map[string]bool
	// NumInputs is n, the count of primary-input wires (bits 0..n-1 of
	// every ParityBits value); Width is W = n+h+1.
	NumInputs int
	Width     uint
}

// CountHadamards reports h, the number of H gates in c — needed up front to
// size the ParityBit width W = n+h+1.
func CountHadamards(c *gate.Circuit) int {
	h := 0
	for _, g := range c.Gates {
		if g.Kind == gate.H {
			h++
		}
	}
	return h
}

// Run characterises c into a phase polynomial and its Hadamard events.
func Run(c *gate.Circuit) (*Result, error) {
	numWires := len(c.Names)
	nInputs := c.NumInputs()
	h := CountHadamards(c)
	w := uint(nInputs + h + 1)

	index := make(map[string]int, numWires)
	zeroMap := make(map[string]bool, numWires)
	wires := make([]parity.Bits, numWires)
	nextInputBit := uint(0)
	for i, name := range c.Names {
		index[name] = i
		zeroMap[name] = !c.Inputs[name]
		b := parity.New(w)
		if c.Inputs[name] {
			b.Set(nextInputBit)
			nextInputBit++
		}
		wires[i] = b
	}

	table := phase.NewTable()
	var events []*HadamardEvent

	resolve := func(g gate.Gate) ([]int, error) {
		out := make([]int, len(g.Args))
		for i, name := range g.Args {
			idx, ok := index[name]
			if !ok {
				return nil, circuiterr.AtLine(circuiterr.MalformedInput, g.Line,
					fmt.Errorf("wire %q not declared in .v", name))
			}
			out[i] = idx
		}
		return out, nil
	}

	for _, g := range c.Gates {
		args, err := resolve(g)
		if err != nil {
			return nil, err
		}

		switch g.Kind {
		case gate.T:
			if err := insert(table, g, piClass, 1, 2, wires[args[0]]); err != nil {
				return nil, err
			}
		case gate.TDag:
			if err := insert(table, g, piClass, -1, 2, wires[args[0]]); err != nil {
				return nil, err
			}
		case gate.P:
			if err := insert(table, g, piClass, 1, 1, wires[args[0]]); err != nil {
				return nil, err
			}
		case gate.PDag:
			if err := insert(table, g, piClass, -1, 1, wires[args[0]]); err != nil {
				return nil, err
			}
		case gate.Z:
			if len(args) != 1 {
				return nil, circuiterr.OnGate(circuiterr.MalformedInput, string(g.Kind),
					fmt.Errorf("Z takes exactly one wire, got %d", len(args)))
			}
			if err := insert(table, g, piClass, 1, 0, wires[args[0]]); err != nil {
				return nil, err
			}
		case gate.Z3:
			if len(args) != 3 {
				return nil, circuiterr.OnGate(circuiterr.MalformedInput, string(g.Kind),
					fmt.Errorf("Z3 takes exactly three wires, got %d", len(args)))
			}
			if err := insertZ3(table, g, wires[args[0]], wires[args[1]], wires[args[2]]); err != nil {
				return nil, err
			}
		case gate.Rz:
			sign := phase.Coefficient(1)
			base := g.RzBase
			if strings.HasPrefix(base, "-") {
				sign = -1
				base = base[1:]
			}
			if err := insert(table, g, base, sign, g.RzExp, wires[args[0]]); err != nil {
				return nil, err
			}
		case gate.X:
			if len(args) != 1 {
				return nil, circuiterr.OnGate(circuiterr.MalformedInput, string(g.Kind),
					fmt.Errorf("X takes exactly one wire, got %d", len(args)))
			}
			wires[args[0]].Flip(w - 1)
		case gate.Y:
			if len(args) != 1 {
				return nil, circuiterr.OnGate(circuiterr.MalformedInput, string(g.Kind),
					fmt.Errorf("Y takes exactly one wire, got %d", len(args)))
			}
			wires[args[0]].Flip(w - 1)
			if err := insert(table, g, piClass, 1, 0, wires[args[0]]); err != nil {
				return nil, err
			}
		case gate.Tof:
			switch len(args) {
			case 1:
				wires[args[0]].Flip(w - 1)
			case 2:
				wires[args[1]].XorInPlace(wires[args[0]])
			default:
				return nil, circuiterr.OnGate(circuiterr.GateUnsupported, string(g.Kind),
					fmt.Errorf("tof takes one or two wires, got %d", len(args)))
			}
		case gate.H:
			if len(args) != 1 {
				return nil, circuiterr.OnGate(circuiterr.MalformedInput, string(g.Kind),
					fmt.Errorf("H takes exactly one wire, got %d", len(args)))
			}
			events = append(events, hadamardEvent(wires, table, args[0], w, nInputs, len(events)))
		default:
			return nil, circuiterr.OnGate(circuiterr.GateUnsupported, string(g.Kind),
				fmt.Errorf("unrecognised gate %q", g.Kind))
		}
	}

	output := make([]parity.Bits, numWires)
	for i := range wires {
		output[i] = wires[i].Clone()
	}

	return &Result{
		Table:          table,
		Events:         events,
		OutputParities: output,
		Names:          append([]string(nil), c.Names...),
		ZeroMap:        zeroMap,
		NumInputs:      nInputs,
		Width:          w,
	}, nil
}

func insert(table *phase.Table, g gate.Gate, class string, delta phase.Coefficient, exp int, p parity.Bits) error {
	if _, err := table.Insert(class, delta, exp, p); err != nil {
		return circuiterr.OnGate(circuiterr.InternalInvariant, string(g.Kind), err)
	}
	return nil
}

// insertZ3 expands a triply-controlled Z into the standard Toffoli-from-T
// decomposition: seven exponent-2 "pi" insertions (spec.md line 71).
func insertZ3(table *phase.Table, g gate.Gate, a, b, c parity.Bits) error {
	ab := a.Xor(b)
	ac := a.Xor(c)
	bc := b.Xor(c)
	abc := ab.Xor(c)
	terms := []struct {
		sign phase.Coefficient
		p    parity.Bits
	}{
		{1, a}, {1, b}, {1, c},
		{-1, ab}, {-1, ac}, {-1, bc},
		{1, abc},
	}
	for _, t := range terms {
		if err := insert(table, g, piClass, t.sign, 2, t.p); err != nil {
			return err
		}
	}
	return nil
}

// hadamardEvent implements spec.md line 72: it snapshots the pre-reset wire
// state, determines which existing phase terms would gain rank if the wire
// were reset to zero (its "inputs"), then commits the reset and allocates a
// fresh ambient variable.
func hadamardEvent(wires []parity.Bits, table *phase.Table, qubit int, w uint, n, eventIndex int) *HadamardEvent {
	snapshot := make([]parity.Bits, len(wires))
	for i := range wires {
		snapshot[i] = wires[i].Clone()
	}

	wires[qubit].ClearAll()
	r := linalg.Rank(wires)

	inputs := map[string][]int{}
	for _, name := range table.ClassNames() {
		class := table.Class(name)
		for idx, term := range class.Terms {
			saved := wires[qubit]
			wires[qubit] = term.Parity
			if linalg.Rank(wires) > r {
				inputs[name] = append(inputs[name], idx)
			}
			wires[qubit] = saved
		}
	}

	prep := uint(n) + uint(eventIndex)
	fresh := parity.New(w)
	fresh.Set(prep)
	wires[qubit] = fresh

	return &HadamardEvent{Qubit: qubit, Prep: prep, Snapshot: snapshot, Inputs: inputs}
}
