package cmd

import (
	"errors"

	"github.com/consensys/tpar/circuiterr"
)

var errOddArgCount = errors.New("expected pairs of input/output file arguments")

// exitCode maps a pipeline error to the process exit status (spec.md §7):
// 0 is reserved for success and never returned from here, so every fatal
// error — regardless of Kind — maps to 1, matching the spec's stated binary
// scheme rather than inventing finer-grained codes it doesn't ask for.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ce *circuiterr.Error
	if errors.As(err, &ce) {
		return 1
	}
	return 1
}
