package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/consensys/tpar/characterize"
	"github.com/consensys/tpar/format"
	"github.com/consensys/tpar/gate"
	"github.com/consensys/tpar/logger"
	"github.com/consensys/tpar/rewrite"
	"github.com/consensys/tpar/synth"
	"github.com/consensys/tpar/tdepth"
)

// optimiseCircuit runs one gate list through characterisation, synthesis,
// and both cleanup passes. The returned Result reflects the input circuit's
// phase polynomial, which is what the partition-based T-depth measure
// reports on regardless of how synthesis and rewriting later arranged gates.
func optimiseCircuit(c *gate.Circuit) (*gate.Circuit, *characterize.Result, error) {
	log := logger.Logger()

	res, err := characterize.Run(c)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Int("hadamards", len(res.Events)).Msg("characterisation finished")

	gates, err := synth.Run(res)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Int("gates", len(gates)).Msg("synthesis finished")

	out := &gate.Circuit{Names: c.Names, Inputs: c.Inputs, Outputs: c.Outputs, Gates: gates}
	out = rewrite.CollapseSwaps(out)
	out = rewrite.CancelInverses(out)
	return out, res, nil
}

// loadCircuit reads a circuit from path, preferring the CBOR cache when
// --cache names an existing, schema-compatible file.
func loadCircuit(path string) (*gate.Circuit, error) {
	if cacheFlag != "" {
		if c, err := format.ReadCache(cacheFlag); err == nil {
			return c, nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := format.Parse(f)
	if err != nil {
		return nil, err
	}

	if cacheFlag != "" {
		_ = format.WriteCache(cacheFlag, c)
	}
	return c, nil
}

func writeCircuit(path string, c *gate.Circuit) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return format.Emit(f, c)
}

func printStats(w io.Writer, after *gate.Circuit, res *characterize.Result) {
	fmt.Fprintf(w, "qubits: %d inputs, %d ancillas\n", after.NumInputs(), after.NumAncillas())
	counts := make(map[gate.Kind]int)
	for _, g := range after.Gates {
		counts[g.Kind]++
	}
	for _, k := range []gate.Kind{gate.H, gate.X, gate.Y, gate.Z, gate.P, gate.PDag, gate.T, gate.TDag, gate.Tof, gate.Rz} {
		if n := counts[k]; n > 0 {
			fmt.Fprintf(w, "  %s: %d\n", k, n)
		}
	}
	fmt.Fprintf(w, "T-depth (partition-based): %d\n", tdepth.PartitionBased(res))
	fmt.Fprintf(w, "T-depth (critical-path): %d\n", tdepth.CriticalPath(after))
}
