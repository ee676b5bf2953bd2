// Package format implements the text parser and emitter for the .v/.i/.o/
// BEGIN/END circuit grammar (spec.md §6), the only external collaborator
// this repository owns end to end.
package format

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/consensys/tpar/circuiterr"
	"github.com/consensys/tpar/gate"
)

// Parse reads one circuit from r. Wire declarations (.v) and the
// primary-input list (.i) must both appear before BEGIN; .o is optional and,
// per original_source, purely cosmetic — it is stored on the returned
// Circuit but never consulted by any later stage.
func Parse(r io.Reader) (*gate.Circuit, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	c := &gate.Circuit{Inputs: map[string]bool{}}
	var haveNames, haveInputs, inBody, closed bool
	line := 0

	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		switch {
		case strings.HasPrefix(text, ".v"):
			c.Names = strings.Fields(text)[1:]
			haveNames = true
		case strings.HasPrefix(text, ".i"):
			for _, n := range strings.Fields(text)[1:] {
				c.Inputs[n] = true
			}
			haveInputs = true
		case strings.HasPrefix(text, ".o"):
			c.Outputs = strings.Fields(text)[1:]
		case text == "BEGIN":
			if !haveNames || !haveInputs {
				return nil, circuiterr.AtLine(circuiterr.MalformedInput, line, fmt.Errorf("BEGIN before .v/.i"))
			}
			inBody = true
		case text == "END":
			if !inBody {
				return nil, circuiterr.AtLine(circuiterr.MalformedInput, line, fmt.Errorf("END without matching BEGIN"))
			}
			inBody = false
			closed = true
		default:
			if !inBody {
				return nil, circuiterr.AtLine(circuiterr.MalformedInput, line, fmt.Errorf("gate line outside BEGIN/END: %q", text))
			}
			g, err := parseGate(text, line)
			if err != nil {
				return nil, err
			}
			c.Gates = append(c.Gates, g)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, circuiterr.AtLine(circuiterr.MalformedInput, line, err)
	}
	if !haveNames {
		return nil, circuiterr.AtLine(circuiterr.MalformedInput, line, fmt.Errorf("missing .v declaration"))
	}
	if !closed {
		return nil, circuiterr.AtLine(circuiterr.MalformedInput, line, fmt.Errorf("unclosed BEGIN/END"))
	}
	return c, nil
}

func parseGate(text string, line int) (gate.Gate, error) {
	text = strings.TrimSuffix(text, ";")
	tok := strings.Fields(text)
	if len(tok) < 2 {
		return gate.Gate{}, circuiterr.AtLine(circuiterr.MalformedInput, line, fmt.Errorf("gate line missing wire arguments: %q", text))
	}
	symbol, args := tok[0], tok[1:]
	if symbol == "TOF" {
		symbol = string(gate.Tof)
	}

	if strings.HasPrefix(symbol, "Rz(") {
		base, exp, err := parseRz(symbol)
		if err != nil {
			return gate.Gate{}, circuiterr.AtLine(circuiterr.MalformedInput, line, err)
		}
		return gate.Gate{Kind: gate.Rz, Args: args, RzBase: base, RzExp: exp, Line: line}, nil
	}

	kind, ok := symbolKind(symbol, len(args))
	if !ok {
		return gate.Gate{}, circuiterr.AtLine(circuiterr.GateUnsupported, line, fmt.Errorf("unrecognised gate symbol %q", symbol))
	}
	return gate.Gate{Kind: kind, Args: args, Line: line}, nil
}

// symbolKind resolves a grammar symbol to a gate.Kind. Z is the one symbol
// whose meaning depends on arity: three wires is the Z3 expansion, one wire
// is the plain Z gate (spec.md §6).
func symbolKind(symbol string, arity int) (gate.Kind, bool) {
	switch symbol {
	case "H":
		return gate.H, true
	case "X":
		return gate.X, true
	case "Y":
		return gate.Y, true
	case "Z":
		if arity == 3 {
			return gate.Z3, true
		}
		return gate.Z, true
	case "P":
		return gate.P, true
	case "P*":
		return gate.PDag, true
	case "T":
		return gate.T, true
	case "T*":
		return gate.TDag, true
	case "tof":
		return gate.Tof, true
	default:
		return "", false
	}
}

func parseRz(tok string) (base string, exp int, err error) {
	if !strings.HasSuffix(tok, ")") {
		return "", 0, fmt.Errorf("malformed Rz token %q", tok)
	}
	inner := tok[len("Rz(") : len(tok)-1]
	parts := strings.SplitN(inner, "^", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("malformed Rz token %q", tok)
	}
	exp, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, fmt.Errorf("malformed Rz exponent in %q: %w", tok, err)
	}
	return parts[0], exp, nil
}

// Emit writes c back out in the same grammar. The .o line always lists every
// declared wire, matching original_source's dotqc::output rather than
// round-tripping whatever subset was read on the way in.
func Emit(w io.Writer, c *gate.Circuit) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, ".v %s\n", strings.Join(c.Names, " ")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, ".i %s\n", strings.Join(inputNames(c), " ")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, ".o %s\n", strings.Join(c.Names, " ")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(bw, "BEGIN"); err != nil {
		return err
	}
	for _, g := range c.Gates {
		if _, err := fmt.Fprintln(bw, gateLine(g)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(bw, "END"); err != nil {
		return err
	}
	return bw.Flush()
}

func inputNames(c *gate.Circuit) []string {
	var out []string
	for _, n := range c.Names {
		if c.Inputs[n] {
			out = append(out, n)
		}
	}
	return out
}

func gateLine(g gate.Gate) string {
	symbol := string(g.Kind)
	if g.Kind == gate.Z3 {
		// the grammar spells the triply-controlled Z as a three-wire Z
		symbol = string(gate.Z)
	}
	if g.Kind == gate.Rz {
		base := g.RzBase
		sign := ""
		if strings.HasPrefix(base, "-") {
			sign, base = "-", base[1:]
		}
		symbol = fmt.Sprintf("Rz(%s%s^%d)", sign, base, g.RzExp)
	}
	return symbol + " " + strings.Join(g.Args, " ")
}
