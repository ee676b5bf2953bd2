package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var optimiseCmd = &cobra.Command{
	Use:   "optimise <in> <out> [more-in more-out]...",
	Short: "run the full pipeline, including Hadamard events",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runOptimise,
}

func runOptimise(cmd *cobra.Command, args []string) error {
	jobs, err := pairArgs(args)
	if err != nil {
		return err
	}
	return runBatch(jobs, optimiseOne)
}

func optimiseOne(in, out string) error {
	c, err := loadCircuit(in)
	if err != nil {
		return err
	}
	optimised, res, err := optimiseCircuit(c)
	if err != nil {
		return err
	}
	if err := writeCircuit(out, optimised); err != nil {
		return err
	}
	if statsFlag {
		printStats(os.Stdout, optimised, res)
	}
	return nil
}

type job struct{ in, out string }

// pairArgs splits args into (in, out) pairs, one job per circuit file: a
// single invocation with more than one pair runs them concurrently, since
// each pair gets its own independent pipeline instance with no shared
// mutable state.
func pairArgs(args []string) ([]job, error) {
	if len(args)%2 != 0 {
		return nil, errOddArgCount
	}
	jobs := make([]job, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		jobs = append(jobs, job{in: args[i], out: args[i+1]})
	}
	return jobs, nil
}

func runBatch(jobs []job, run func(in, out string) error) error {
	if len(jobs) == 1 {
		return run(jobs[0].in, jobs[0].out)
	}
	var g errgroup.Group
	for _, j := range jobs {
		j := j
		g.Go(func() error { return run(j.in, j.out) })
	}
	return g.Wait()
}
