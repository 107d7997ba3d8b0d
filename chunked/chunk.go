// Package chunked implements Components I-M: chunk extraction primitives
// over an already-decoded in-memory chunk, an LRU chunk cache, the
// oracle/oracle-stream pair, an oracle-driven chunk cache, and the custom
// chunked matrix that combines them (§4.I-§4.M). Grounded on the teacher's
// general "slab of storage behind a cache" idea (pool.go's buffer reuse) and
// on the chunk/cache patterns surveyed from the wider pack (LRU and
// oracle-style readers) for the parts the teacher itself has no precedent
// for, since its CSR/CSC/Dense are always fully in memory.
package chunked

import (
	"github.com/jbowman-labs/tatamigo"
	"github.com/jbowman-labs/tatamigo/internal/numeric"
)

// Chunk is a single decoded block of a larger chunked matrix: nrow x ncol
// values either fully dense (RowMajor storage order) or stored as a
// CSR/CSC-like run per storage-primary slice (§4.I, §6 "Chunk interface").
type Chunk struct {
	NRow, NCol int
	RowMajor   bool

	// Dense holds NRow*NCol values laid out per RowMajor when Sparse is false.
	Dense []float64

	Sparse bool
	// Indptr/Indices/Values hold a CSR-like (RowMajor) or CSC-like
	// (!RowMajor) run per storage-primary slice when Sparse is true.
	Indptr  []int
	Indices []int
	Values  []float64
}

func (c *Chunk) storagePrimaryLen() int {
	if c.RowMajor {
		return c.NRow
	}
	return c.NCol
}

func (c *Chunk) storageSecondaryLen() int {
	if c.RowMajor {
		return c.NCol
	}
	return c.NRow
}

// storageAt returns the value at storage-primary index p, storage-secondary
// index s, regardless of the chunk's extraction axis.
func (c *Chunk) storageAt(p, s int) float64 {
	if !c.Sparse {
		return c.Dense[p*c.storageSecondaryLen()+s]
	}
	lo, hi := c.Indptr[p], c.Indptr[p+1]
	for k := lo; k < hi; k++ {
		if c.Indices[k] == s {
			return c.Values[k]
		}
		if c.Indices[k] > s {
			break
		}
	}
	return 0
}

// DenseBlockExtract writes primaryLength rows of secondaryLength values,
// read along axis accrow (true = rows), into output with the given stride
// between rows (§4.I "dense block extraction"). The two branches distinguish
// whether accrow matches the chunk's own storage order.
func DenseBlockExtract(c *Chunk, accrow bool, primaryStart, primaryLength, secondaryStart, secondaryLength int, output []float64, stride int) {
	if accrow == c.RowMajor {
		for pr := 0; pr < primaryLength; pr++ {
			for sc := 0; sc < secondaryLength; sc++ {
				output[pr*stride+sc] = c.storageAt(primaryStart+pr, secondaryStart+sc)
			}
		}
		return
	}
	for pr := 0; pr < primaryLength; pr++ {
		for sc := 0; sc < secondaryLength; sc++ {
			output[pr*stride+sc] = c.storageAt(secondaryStart+sc, primaryStart+pr)
		}
	}
}

// DenseIndexExtract is DenseBlockExtract with an explicit secondary index
// vector instead of a contiguous range (§4.I "dense index extraction").
func DenseIndexExtract(c *Chunk, accrow bool, primaryStart, primaryLength int, secondary []int, output []float64, stride int) {
	if accrow == c.RowMajor {
		for pr := 0; pr < primaryLength; pr++ {
			for sc, s := range secondary {
				output[pr*stride+sc] = c.storageAt(primaryStart+pr, s)
			}
		}
		return
	}
	for pr := 0; pr < primaryLength; pr++ {
		for sc, s := range secondary {
			output[pr*stride+sc] = c.storageAt(s, primaryStart+pr)
		}
	}
}

// SparseBlockExtract locates, for each of primaryLength primary rows, the
// secondary window [secondaryStart, secondaryStart+secondaryLength) and
// appends values/indices (indices shifted by indexShift) into the
// per-primary output slices (§4.I "sparse block extraction"). Returns one
// SparseRange per primary position.
func SparseBlockExtract(c *Chunk, accrow bool, primaryStart, primaryLength, secondaryStart, secondaryLength, indexShift int) []tatamigo.SparseRange {
	out := make([]tatamigo.SparseRange, primaryLength)
	if accrow == c.RowMajor {
		for pr := 0; pr < primaryLength; pr++ {
			p := primaryStart + pr
			lo, hi := c.Indptr[p], c.Indptr[p+1]
			a := lo + numeric.LowerBound(c.Indices[lo:hi], secondaryStart)
			b := lo + numeric.LowerBound(c.Indices[lo:hi], secondaryStart+secondaryLength)
			n := b - a
			vals := make([]float64, n)
			idxs := make([]int, n)
			copy(vals, c.Values[a:b])
			for k := 0; k < n; k++ {
				idxs[k] = c.Indices[a+k] - secondaryStart + indexShift
			}
			out[pr] = tatamigo.SparseRange{N: n, Values: vals, Indices: idxs}
		}
		return out
	}
	// Mismatched axis: primary position pr corresponds to a storage-secondary
	// column; gather across the storage-primary slices in the requested window.
	for pr := 0; pr < primaryLength; pr++ {
		target := primaryStart + pr
		var vals []float64
		var idxs []int
		for p := secondaryStart; p < secondaryStart+secondaryLength; p++ {
			if v := c.storageAt(p, target); v != 0 {
				vals = append(vals, v)
				idxs = append(idxs, p-secondaryStart+indexShift)
			}
		}
		out[pr] = tatamigo.SparseRange{N: len(vals), Values: vals, Indices: idxs}
	}
	return out
}

// SparseIndexExtract is SparseBlockExtract with an explicit ascending
// secondary index vector, merged against the chunk's own per-row ascending
// index run with a two-finger walk (§4.I "sparse index extraction").
func SparseIndexExtract(c *Chunk, accrow bool, primaryStart, primaryLength int, secondary []int, indexShift int) []tatamigo.SparseRange {
	out := make([]tatamigo.SparseRange, primaryLength)
	if accrow == c.RowMajor {
		for pr := 0; pr < primaryLength; pr++ {
			p := primaryStart + pr
			lo, hi := c.Indptr[p], c.Indptr[p+1]
			var vals []float64
			var idxs []int
			si := lo
			for k, target := range secondary {
				for si < hi && c.Indices[si] < target {
					si++
				}
				if si < hi && c.Indices[si] == target {
					vals = append(vals, c.Values[si])
					idxs = append(idxs, k+indexShift)
				}
			}
			out[pr] = tatamigo.SparseRange{N: len(vals), Values: vals, Indices: idxs}
		}
		return out
	}
	for pr := 0; pr < primaryLength; pr++ {
		target := primaryStart + pr
		var vals []float64
		var idxs []int
		for k, s := range secondary {
			if v := c.storageAt(s, target); v != 0 {
				vals = append(vals, v)
				idxs = append(idxs, k+indexShift)
			}
		}
		out[pr] = tatamigo.SparseRange{N: len(vals), Values: vals, Indices: idxs}
	}
	return out
}

