// Package delayed implements the lazy composition wrappers of §4.F-4.H:
// subset/subset-block, isometric op, bind, cast and transpose. Each wrapper
// holds a reference to a child tatamigo.Matrix (itself possibly another
// wrapper) and answers Matrix queries and extractor requests by forwarding
// to the child with a remapped index or selection, never copying the
// child's storage - grounded on the teacher's own layering of CSR/CSC over a
// shared compressedSparse core, generalized here to an arbitrary child
// interface instead of a concrete sibling type.
package delayed

import "github.com/jbowman-labs/tatamigo"

func ensureFloats(buf []float64, n int) []float64 {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

func ensureInts(buf []int, n int) []int {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]int, n)
}

// remapOracle composes an Oracle with an index lookup, used whenever a
// wrapper forwards fetch indices through an index mapping (Subset's index
// vector, SubsetBlock's constant shift).
type remapOracle struct {
	inner tatamigo.Oracle
	at    func(i int) int
}

func (r remapOracle) Total() int    { return r.inner.Total() }
func (r remapOracle) Get(i int) int { return r.at(r.inner.Get(i)) }

