// Package numeric holds small generic search helpers shared by the
// compressed-sparse workspace (§4.E) and the chunk extraction primitives
// (§4.I), both of which repeatedly need a lower-bound search over an
// ascending slice of indices. Kept generic over golang.org/x/exp/constraints so
// the same code serves int32/int64-indexed chunk grids as well as the default
// int index type, grounded on the teacher's own dependency on
// golang.org/x/exp.
package numeric

import "golang.org/x/exp/constraints"

// LowerBound returns the index of the first element in the ascending slice s
// that is >= target, or len(s) if no such element exists.
func LowerBound[T constraints.Integer](s []T, target T) int {
	lo, hi := 0, len(s)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if s[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
