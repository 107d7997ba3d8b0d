package csparse

import "github.com/jbowman-labs/tatamigo/internal/numeric"

// workspace is the per-extractor scratch described in §3/§4.E: for a
// secondary-axis extractor, one "next candidate" offset per primary slice
// covered by the extractor's selection, plus the last requested secondary
// target so consecutive accesses can advance or retreat the offsets by a
// single step instead of re-bisecting. It is addressed by the local position
// k within the selection (0..n-1); primaryOf maps k to the absolute primary
// slice index, which also supports non-contiguous (index-set) selections.
type workspace struct {
	n          int
	primaryOf  func(k int) int
	offsets    []int // length n; offsets[k] indexes into core.indices relative to indptr[primaryOf(k)]
	primed     bool
	prevTarget int
	havePrev   bool
}

func newWorkspace(n int, primaryOf func(k int) int) workspace {
	return workspace{n: n, primaryOf: primaryOf, offsets: make([]int, n)}
}

// reset re-primes the workspace, discarding any cached offsets (§4.E
// "Cancellation of workspace validity on range change is by design").
func (w *workspace) reset() {
	for k := range w.offsets {
		w.offsets[k] = 0
	}
	w.havePrev = false
	w.primed = true
}

// advance updates the cached offsets for a new secondary-axis target,
// exploiting the ordering hints from §4.E, and returns the offsets slice
// (relative to each slice's indptr) ready for lookups against target.
func (w *workspace) advance(c *core, target int) []int {
	if !w.primed {
		w.reset()
	}

	switch {
	case !w.havePrev:
		for k := 0; k < w.n; k++ {
			p := w.primaryOf(k)
			w.offsets[k] = numeric.LowerBound(c.indices[c.indptr[p]:c.indptr[p+1]], target)
		}
	case target == w.prevTarget:
		// reuse as-is
	case target == w.prevTarget+1:
		for k := 0; k < w.n; k++ {
			p := w.primaryOf(k)
			lo, hi := c.indptr[p], c.indptr[p+1]
			off := w.offsets[k]
			if lo+off < hi && c.indices[lo+off] < target {
				off++
			}
			w.offsets[k] = off
		}
	case target == w.prevTarget-1:
		for k := 0; k < w.n; k++ {
			p := w.primaryOf(k)
			lo := c.indptr[p]
			off := w.offsets[k]
			if off > 0 && c.indices[lo+off-1] >= target {
				off--
			}
			w.offsets[k] = off
		}
	default:
		for k := 0; k < w.n; k++ {
			p := w.primaryOf(k)
			w.offsets[k] = numeric.LowerBound(c.indices[c.indptr[p]:c.indptr[p+1]], target)
		}
	}

	w.prevTarget = target
	w.havePrev = true
	return w.offsets
}
