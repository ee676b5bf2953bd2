package cmd

import (
	"github.com/spf13/cobra"

	"github.com/consensys/tpar/gate"
)

var optimiseNoHCmd = &cobra.Command{
	Use:   "optimise-no-h <in> <out> [more-in more-out]...",
	Short: "resynthesise only maximal CNOT+T sub-blocks, passing H through untouched",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runOptimiseNoH,
}

func runOptimiseNoH(cmd *cobra.Command, args []string) error {
	jobs, err := pairArgs(args)
	if err != nil {
		return err
	}
	return runBatch(jobs, optimiseNoHOne)
}

func optimiseNoHOne(in, out string) error {
	c, err := loadCircuit(in)
	if err != nil {
		return err
	}
	optimised, err := optimiseNoH(c)
	if err != nil {
		return err
	}
	return writeCircuit(out, optimised)
}

// cnotTPredicate reports whether g belongs to a CNOT+T sub-block, following
// the arity/kind combinations the Characteriser already handles: T/T*/P/P*/
// X/Y at arity 1, Z at arity 1 or 3 (the parser's Z3), tof at arity 1 or 2.
// Everything else — H and Rz — is passed through untouched.
func cnotTPredicate(g gate.Gate) bool {
	switch g.Kind {
	case gate.T, gate.TDag, gate.P, gate.PDag, gate.X, gate.Y:
		return g.Arity() == 1
	case gate.Z:
		return g.Arity() == 1 || g.Arity() == 3
	case gate.Z3:
		return g.Arity() == 3
	case gate.Tof:
		return g.Arity() == 1 || g.Arity() == 2
	default:
		return false
	}
}

// optimiseNoH splits c's gate list into maximal runs by cnotTPredicate,
// resynthesises each CNOT+T run independently with no Hadamard events (each
// block's .i is the set of wires already known non-zero when the block
// starts), and splices the runs back together with the untouched gates left
// in place.
func optimiseNoH(c *gate.Circuit) (*gate.Circuit, error) {
	live := make(map[string]bool, len(c.Names))
	for _, n := range c.Names {
		live[n] = c.Inputs[n]
	}

	out := &gate.Circuit{Names: c.Names, Inputs: c.Inputs, Outputs: c.Outputs}
	i := 0
	for i < len(c.Gates) {
		if !cnotTPredicate(c.Gates[i]) {
			markLive(live, c.Gates[i])
			out.Gates = append(out.Gates, c.Gates[i])
			i++
			continue
		}
		j := i
		for j < len(c.Gates) && cnotTPredicate(c.Gates[j]) {
			j++
		}
		block := &gate.Circuit{Names: c.Names, Inputs: liveSnapshot(live), Gates: c.Gates[i:j]}
		optimised, _, err := optimiseCircuit(block)
		if err != nil {
			return nil, err
		}
		out.Gates = append(out.Gates, optimised.Gates...)
		for _, g := range c.Gates[i:j] {
			markLive(live, g)
		}
		i = j
	}
	return out, nil
}

func markLive(live map[string]bool, g gate.Gate) {
	for _, arg := range g.Args {
		live[arg] = true
	}
}

func liveSnapshot(live map[string]bool) map[string]bool {
	cp := make(map[string]bool, len(live))
	for k, v := range live {
		cp[k] = v
	}
	return cp
}
