// Package circuiterr defines the typed errors produced by every stage of the
// optimisation pipeline, from text-format parsing through synthesis.
package circuiterr

import (
	"fmt"

	"github.com/consensys/tpar/debug"
)

// Kind classifies an Error so callers (in particular the CLI) can map a
// failure to an exit code without string-matching on the message.
type Kind int

const (
	// MalformedInput covers anything wrong with the .v/.i/.o/BEGIN/END text
	// grammar itself: missing headers, unknown wire names, unclosed BEGIN/END.
	MalformedInput Kind = iota
	// GateUnsupported covers input that parses grammatically but names a gate
	// or arity the pipeline does not implement (e.g. a 3-controlled Toffoli).
	GateUnsupported
	// InternalInvariant covers a violated invariant inside the pipeline
	// itself: an independence-oracle answer the partitioner did not expect,
	// a coefficient overflow, a phase term the synthesiser could not realise
	// onto any physical wire. These should never happen on well-formed input
	// and indicate a bug rather than a user error.
	InternalInvariant
)

func (k Kind) String() string {
	switch k {
	case MalformedInput:
		return "malformed input"
	case GateUnsupported:
		return "gate unsupported"
	case InternalInvariant:
		return "internal invariant violated"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned throughout the pipeline. Line and
// Gate are best-effort context and may be zero/empty when not applicable.
// Stack is only populated for InternalInvariant, since that's the one kind
// that indicates a pipeline bug rather than bad input.
type Error struct {
	Kind  Kind
	Line  int
	Gate  string
	Err   error
	Stack string
}

func (e *Error) Error() string {
	switch {
	case e.Line > 0 && e.Gate != "":
		return fmt.Sprintf("%s: line %d, gate %q: %v", e.Kind, e.Line, e.Gate, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("%s: line %d: %v", e.Kind, e.Line, e.Err)
	case e.Gate != "":
		return fmt.Sprintf("%s: gate %q: %v", e.Kind, e.Gate, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err with the given classification and no positional context.
// InternalInvariant additionally captures the current call stack, since
// that kind indicates a pipeline bug a developer will need to locate.
func New(kind Kind, err error) *Error {
	e := &Error{Kind: kind, Err: err}
	if kind == InternalInvariant {
		e.Stack = debug.Stack()
	}
	return e
}

// AtLine wraps err with a line number, for format-layer failures.
func AtLine(kind Kind, line int, err error) *Error {
	return &Error{Kind: kind, Line: line, Err: err}
}

// OnGate wraps err with the offending gate's symbol.
func OnGate(kind Kind, gate string, err error) *Error {
	return &Error{Kind: kind, Gate: gate, Err: err}
}
