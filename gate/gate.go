// Package gate defines the Clifford+T gate vocabulary and the in-memory
// circuit representation shared by every stage of the pipeline.
package gate

// Kind names a gate symbol from the text grammar (spec.md §6).
type Kind string

const (
	H    Kind = "H"
	X    Kind = "X"
	Y    Kind = "Y"
	Z    Kind = "Z"
	P    Kind = "P"
	PDag Kind = "P*"
	T    Kind = "T"
	TDag Kind = "T*"
	Tof  Kind = "tof"
	Rz   Kind = "Rz"
	// Z3 is the triply-controlled Z, arity 3, expanded during
	// characterisation into seven exponent-2 "pi"-class insertions.
	Z3 Kind = "Z3"
)

// Gate is a single gate application. Args holds the wire names in the order
// they appear in the grammar (a single target for H/X/Y/Z/P/P*/T/T*/Rz, or
// control(s) followed by the target for tof).
//
// RzBase and RzExp are only meaningful when Kind == Rz: they hold the phase
// class key (sign folded into a leading '-') and the exponent.
type Gate struct {
	Kind   Kind
	Args   []string
	RzBase string
	RzExp  int
	// Line is the 1-indexed source line this gate was parsed from, kept
	// so later stages can report malformed-input errors with context.
	Line int
}

// Arity reports the number of wires a gate touches.
func (g Gate) Arity() int { return len(g.Args) }

// Circuit is a gate list over a fixed, ordered set of named wires.
type Circuit struct {
	// Names lists every declared wire (.v) in declaration order.
	Names []string
	// Inputs marks which wires are primary inputs (.i); wires absent from
	// this set are ancillas that start in the |0> state.
	Inputs map[string]bool
	// Outputs is the .o wire-name list. It is purely cosmetic: it records
	// which wires the original circuit called "outputs" but never
	// constrains synthesis or reordering.
	Outputs []string
	Gates   []Gate
}

// NumInputs reports the number of primary-input wires (n in spec.md).
func (c *Circuit) NumInputs() int {
	n := 0
	for _, name := range c.Names {
		if c.Inputs[name] {
			n++
		}
	}
	return n
}

// NumAncillas reports the number of ancilla wires (m in spec.md).
func (c *Circuit) NumAncillas() int {
	return len(c.Names) - c.NumInputs()
}
