// Package linalg implements Gauss-Jordan elimination over GF(2) on slices of
// parity.Bits, producing both plain rank queries and the CNOT programs that
// realise a change of basis on physical wires (spec.md §3, §4.4).
package linalg

import "github.com/consensys/tpar/parity"

// CNOT records a single row operation dst ^= src, i.e. a CNOT gate with
// control src and target dst.
type CNOT struct {
	Src, Dst int
}

// Rank returns the GF(2) rank of rows without mutating the input.
func Rank(rows []parity.Bits) int {
	cp := clone(rows)
	pivots, _ := eliminate(cp, nil)
	return pivots
}

// ToUpperEchelon reduces rows to reduced row-echelon form in place and
// returns the sequence of row operations (in application order) used to get
// there. A swap to pivot position is recorded as the three CNOTs that
// exchange the two rows, so replaying the ops on the input reproduces the
// result.
func ToUpperEchelon(rows []parity.Bits) []CNOT {
	_, ops := eliminate(rows, recordAll)
	return ops
}

func recordAll(ops *[]CNOT, op CNOT) { *ops = append(*ops, op) }

// eliminate performs in-place full Gauss-Jordan elimination on rows across
// all W columns, returning the number of pivots found (the rank) and,
// if record != nil, every XOR row operation performed.
func eliminate(rows []parity.Bits, record func(*[]CNOT, CNOT)) (int, []CNOT) {
	var ops []CNOT
	if len(rows) == 0 {
		return 0, ops
	}
	w := rows[0].Width()
	pivotRow := 0
	for col := uint(0); col < w && pivotRow < len(rows); col++ {
		sel := -1
		for r := pivotRow; r < len(rows); r++ {
			if rows[r].Test(col) {
				sel = r
				break
			}
		}
		if sel == -1 {
			continue
		}
		rows[pivotRow], rows[sel] = rows[sel], rows[pivotRow]
		if sel != pivotRow && record != nil {
			record(&ops, CNOT{Src: sel, Dst: pivotRow})
			record(&ops, CNOT{Src: pivotRow, Dst: sel})
			record(&ops, CNOT{Src: sel, Dst: pivotRow})
		}
		for r := range rows {
			if r != pivotRow && rows[r].Test(col) {
				rows[r].XorInPlace(rows[pivotRow])
				if record != nil {
					record(&ops, CNOT{Src: pivotRow, Dst: r})
				}
			}
		}
		pivotRow++
	}
	return pivotRow, ops
}

func clone(rows []parity.Bits) []parity.Bits {
	cp := make([]parity.Bits, len(rows))
	for i := range rows {
		cp[i] = rows[i].Clone()
	}
	return cp
}

// Solve looks for a subset of basis (excluding index exclude, which is never
// selected as a source) whose XOR equals target. It returns the subset as a
// sorted list of indices into basis, or ok=false if target lies outside the
// span of basis\{exclude}.
func Solve(basis []parity.Bits, exclude int, target parity.Bits) (combo []int, ok bool) {
	n := len(basis)
	rows := clone(basis)
	tags := make([]parity.Bits, n)
	for i := range tags {
		tags[i] = parity.New(uint(n))
		tags[i].Set(uint(i))
	}

	w := target.Width()
	pivotRow := make(map[uint]int)
	cur := 0
	// excludePos tracks which row currently holds the excluded basis vector;
	// it moves along with the pivot swaps below, so the row is protected by
	// identity rather than by its original, now-stale, slice position.
	excludePos := exclude
	for col := uint(0); col < w && cur < n; col++ {
		sel := -1
		for r := cur; r < n; r++ {
			if r == excludePos {
				continue
			}
			if rows[r].Test(col) {
				sel = r
				break
			}
		}
		if sel == -1 {
			continue
		}
		rows[cur], rows[sel] = rows[sel], rows[cur]
		tags[cur], tags[sel] = tags[sel], tags[cur]
		switch excludePos {
		case cur:
			excludePos = sel
		case sel:
			excludePos = cur
		}
		for r := 0; r < n; r++ {
			if r != cur && r != excludePos && rows[r].Test(col) {
				rows[r].XorInPlace(rows[cur])
				tags[r].XorInPlace(tags[cur])
			}
		}
		pivotRow[col] = cur
		cur++
	}

	t := target.Clone()
	comboTag := parity.New(uint(n))
	for col := uint(0); col < w; col++ {
		if t.Test(col) {
			pr, found := pivotRow[col]
			if !found {
				return nil, false
			}
			t.XorInPlace(rows[pr])
			comboTag.XorInPlace(tags[pr])
		}
	}
	if !t.IsZero() {
		return nil, false
	}
	for i := 0; i < n; i++ {
		if comboTag.Test(uint(i)) {
			combo = append(combo, i)
		}
	}
	return combo, true
}

// RealizeOnto computes the CNOT program that overwrites rows[target] with
// want, using only the other registers as XOR sources, without mutating
// rows. Callers apply the returned ops themselves.
func RealizeOnto(rows []parity.Bits, target int, want parity.Bits) ([]CNOT, bool) {
	diff := want.Xor(rows[target])
	combo, ok := Solve(rows, target, diff)
	if !ok {
		return nil, false
	}
	ops := make([]CNOT, 0, len(combo))
	for _, j := range combo {
		ops = append(ops, CNOT{Src: j, Dst: target})
	}
	return ops, true
}

// Apply mutates rows by performing op in place.
func Apply(rows []parity.Bits, op CNOT) {
	rows[op.Dst].XorInPlace(rows[op.Src])
}

// Realign computes and applies the CNOT program that turns wires into target,
// register by register, assuming both span the same ambient space. It
// mutates wires in place and returns the ops applied, or ok=false if some
// register's target value is unreachable from the others.
func Realign(wires []parity.Bits, target []parity.Bits) (ops []CNOT, ok bool) {
	for i := range wires {
		step, stepOK := RealizeOnto(wires, i, target[i])
		if !stepOK {
			return nil, false
		}
		for _, op := range step {
			Apply(wires, op)
			ops = append(ops, op)
		}
	}
	return ops, true
}
