//go:build debug

package debug

// Debug enables the synthesiser's self-check (re-deriving the wire-state
// rank after every emitted block and comparing it with the oracle's
// dimension) and leaves stack traces unfiltered.
const Debug = true
