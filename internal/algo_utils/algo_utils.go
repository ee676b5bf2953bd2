package algo_utils

import "golang.org/x/exp/constraints"

// this package provides some generic (in both senses of the word) algorithmic conveniences.

// Abs returns the absolute value of x. Grounded on the teacher's own
// constraints.Integer-bounded Gcd helper (std/compress/io.go).
func Abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func Map[T, S any](in []T, f func(T) S) []S {
	out := make([]S, len(in))
	for i, t := range in {
		out[i] = f(t)
	}
	return out
}

func MapAt[K comparable, V any](mp map[K]V) func(K) V {
	return func(k K) V {
		return mp[k]
	}
}
