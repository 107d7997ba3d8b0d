package csparse

import (
	"github.com/jbowman-labs/tatamigo"
	"github.com/jbowman-labs/tatamigo/internal/bufpool"
)

// COO is a coordinate-list (triplet) builder: the easy-to-populate format a
// matrix is usually assembled in before being frozen into a CSR/CSC for
// actual use. Grounded directly on the teacher's coordinate.go, trimmed to
// just its role here (a construction-time format feeding CSR/CSC) rather
// than a full standalone Matrix implementation, since nothing in this
// module's Matrix surface is built incrementally one entry at a time.
type COO struct {
	nrow, ncol int
	rows, cols []int
	data       []float64
}

// NewCOO creates an empty coordinate-list builder over nrow x ncol.
func NewCOO(nrow, ncol int) *COO {
	return &COO{nrow: nrow, ncol: ncol}
}

// Add records a value at (i, j). Duplicate coordinates are summed when the
// builder is frozen into a CSR or CSC.
func (c *COO) Add(i, j int, v float64) {
	if uint(i) >= uint(c.nrow) {
		panic(tatamigo.ErrRowAccess)
	}
	if uint(j) >= uint(c.ncol) {
		panic(tatamigo.ErrColAccess)
	}
	c.rows = append(c.rows, i)
	c.cols = append(c.cols, j)
	c.data = append(c.data, v)
}

// NNZ returns the number of recorded entries, including any duplicate
// coordinates not yet summed together.
func (c *COO) NNZ() int { return len(c.data) }

// ToCSR freezes the builder into a CSR matrix, summing duplicate
// coordinates. The receiver is left usable afterward; the returned matrix
// does not share storage with it.
func (c *COO) ToCSR() *CSR {
	indptr, indices, data := compress(c.rows, c.cols, c.data, c.nrow)
	indices, data = dedupe(indptr, indices, data, c.nrow, c.ncol)
	m, err := NewCSR(c.nrow, c.ncol, indptr, indices, data, false)
	if err != nil {
		panic(err)
	}
	return m
}

// ToCSC is ToCSR's column-major counterpart.
func (c *COO) ToCSC() *CSC {
	indptr, indices, data := compress(c.cols, c.rows, c.data, c.ncol)
	indices, data = dedupe(indptr, indices, data, c.ncol, c.nrow)
	m, err := NewCSC(c.nrow, c.ncol, indptr, indices, data, false)
	if err != nil {
		panic(err)
	}
	return m
}

// compress is the teacher's coordinate->compressed conversion (counting
// sort by primary index, cumulative-sum into indptr), unchanged beyond
// routing its scratch buffer through bufpool instead of a package-private
// pool. Within a primary slice, entries keep their insertion order; dedupe
// sorts them afterwards.
func compress(primary, secondary []int, values []float64, n int) (indptr, indices []int, data []float64) {
	w := bufpool.Ints(n+1, true)
	defer bufpool.PutInts(w)

	indptr = make([]int, n+1)
	indices = make([]int, len(secondary))
	data = make([]float64, len(values))

	for _, v := range primary {
		w[v]++
	}
	cumsum(indptr, w, n)

	for k, v := range secondary {
		p := w[primary[k]]
		indices[p] = v
		data[p] = values[k]
		w[primary[k]]++
	}
	return
}

func cumsum(indptr, counts []int, n int) int {
	nz := 0
	for i := 0; i < n; i++ {
		indptr[i] = nz
		nz += counts[i]
		counts[i] = indptr[i]
	}
	indptr[n] = nz
	return nz
}

// dedupe collapses repeated (primary, secondary) coordinates within each
// primary slice by summing their values, compacting indices/data in place,
// then sorts each slice's secondary indices into ascending order.
func dedupe(indptr, indices []int, data []float64, m, n int) ([]int, []float64) {
	w := bufpool.Ints(n, true)
	defer bufpool.PutInts(w)
	for i := range w {
		w[i] = -1
	}

	nz := 0
	for i := 0; i < m; i++ {
		q := nz
		for j := indptr[i]; j < indptr[i+1]; j++ {
			if w[indices[j]] >= q {
				data[w[indices[j]]] += data[j]
			} else {
				w[indices[j]] = nz
				indices[nz] = indices[j]
				data[nz] = data[j]
				nz++
			}
		}
		for a := q + 1; a < nz; a++ {
			for b := a; b > q && indices[b-1] > indices[b]; b-- {
				indices[b-1], indices[b] = indices[b], indices[b-1]
				data[b-1], data[b] = data[b], data[b-1]
			}
		}
		indptr[i] = q
	}
	indptr[m] = nz
	return indices[:nz], data[:nz]
}
