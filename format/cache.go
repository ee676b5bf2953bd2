package format

import (
	"fmt"
	"os"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"

	"github.com/consensys/tpar/gate"
)

// CacheVersion is the schema embedded in every cache file. Bump the minor
// version for additive fields and the major version whenever an existing
// field's meaning changes, so a stale cache is rejected instead of
// misparsed.
var CacheVersion = semver.MustParse("1.0.0")

type cachedCircuit struct {
	SchemaVersion string
	Names         []string
	Inputs        []string
	Outputs       []string
	Gates         []cachedGate
}

type cachedGate struct {
	Kind   string
	Args   []string
	RzBase string
	RzExp  int
	Line   int
}

// WriteCache snapshots c as CBOR, letting `tpar optimise --cache` skip
// re-parsing the same large circuit across repeated runs.
func WriteCache(path string, c *gate.Circuit) error {
	cc := cachedCircuit{
		SchemaVersion: CacheVersion.String(),
		Names:         c.Names,
		Outputs:       c.Outputs,
	}
	for _, n := range c.Names {
		if c.Inputs[n] {
			cc.Inputs = append(cc.Inputs, n)
		}
	}
	for _, g := range c.Gates {
		cc.Gates = append(cc.Gates, cachedGate{
			Kind: string(g.Kind), Args: g.Args, RzBase: g.RzBase, RzExp: g.RzExp, Line: g.Line,
		})
	}

	data, err := cbor.Marshal(cc)
	if err != nil {
		return fmt.Errorf("encoding circuit cache: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadCache loads a circuit previously written by WriteCache. A schema
// version whose major component differs from CacheVersion is rejected
// rather than risk silently misinterpreting an incompatible layout; callers
// should fall back to re-parsing the source text in that case.
func ReadCache(path string) (*gate.Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cc cachedCircuit
	if err := cbor.Unmarshal(data, &cc); err != nil {
		return nil, fmt.Errorf("decoding circuit cache: %w", err)
	}

	fileVersion, err := semver.Parse(cc.SchemaVersion)
	if err != nil {
		return nil, fmt.Errorf("when parsing cache schema version: %w", err)
	}
	if fileVersion.Major != CacheVersion.Major {
		return nil, fmt.Errorf("cache schema %s is incompatible with %s", fileVersion, CacheVersion)
	}

	c := &gate.Circuit{Names: cc.Names, Outputs: cc.Outputs, Inputs: make(map[string]bool, len(cc.Inputs))}
	for _, n := range cc.Inputs {
		c.Inputs[n] = true
	}
	for _, g := range cc.Gates {
		c.Gates = append(c.Gates, gate.Gate{
			Kind: gate.Kind(g.Kind), Args: g.Args, RzBase: g.RzBase, RzExp: g.RzExp, Line: g.Line,
		})
	}
	return c, nil
}
