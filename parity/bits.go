// Package parity implements the ParityBit affine-function representation
// (spec.md §3): a fixed-width GF(2) bit vector standing for a linear
// combination of "live" variables plus an affine constant.
package parity

import "github.com/bits-and-blooms/bitset"

// Bits is a width-W affine function over GF(2): bits 0..W-2 are the
// coefficients of the live variables (input qubits and Hadamard-introduced
// fresh variables), and bit W-1 is the affine constant.
type Bits struct {
	bs *bitset.BitSet
	w  uint
}

// New returns the zero function (the all-clear vector) of the given width.
func New(width uint) Bits {
	return Bits{bs: bitset.New(width), w: width}
}

// Width reports W.
func (b Bits) Width() uint { return b.w }

// ConstIndex is the bit position of the affine constant, W-1.
func (b Bits) ConstIndex() uint { return b.w - 1 }

// Test reports whether bit i is set.
func (b Bits) Test(i uint) bool { return b.bs.Test(i) }

// Set sets bit i.
func (b *Bits) Set(i uint) { b.bs.Set(i) }

// Clear resets bit i to zero.
func (b *Bits) Clear(i uint) { b.bs.Clear(i) }

// Flip toggles bit i.
func (b *Bits) Flip(i uint) { b.bs.Flip(i) }

// ClearAll resets the whole vector to the zero function, used when a
// Hadamard discontinuity retires a wire's current value.
func (b *Bits) ClearAll() { b.bs.ClearAll() }

// IsZero reports whether every bit is clear.
func (b Bits) IsZero() bool { return b.bs.None() }

// Clone returns an independent copy.
func (b Bits) Clone() Bits { return Bits{bs: b.bs.Clone(), w: b.w} }

// Xor returns b XOR other as a new value.
func (b Bits) Xor(other Bits) Bits {
	return Bits{bs: b.bs.SymmetricDifference(other.bs), w: b.w}
}

// XorInPlace XORs other into b.
func (b *Bits) XorInPlace(other Bits) { b.bs.InPlaceSymmetricDifference(other.bs) }

// Equal reports whether b and other represent the same affine function.
func (b Bits) Equal(other Bits) bool { return b.bs.Equal(other.bs) }

// SubsetOf reports whether every bit set in b is also set in mask, i.e.
// b depends only on variables mask considers live.
func (b Bits) SubsetOf(mask Bits) bool { return b.bs.Difference(mask.bs).None() }

// String renders the set bit indices, low to high, e.g. "{0 2 5}".
func (b Bits) String() string {
	out := []byte{'{'}
	first := true
	for i, e := b.bs.NextSet(0); e; i, e = b.bs.NextSet(i + 1) {
		if !first {
			out = append(out, ' ')
		}
		first = false
		out = appendUint(out, i)
	}
	out = append(out, '}')
	return string(out)
}

func appendUint(dst []byte, v uint) []byte {
	if v == 0 {
		return append(dst, '0')
	}
	var tmp [20]byte
	i := len(tmp)
	for v > 0 {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
	}
	return append(dst, tmp[i:]...)
}
