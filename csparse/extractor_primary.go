package csparse

import (
	"github.com/jbowman-labs/tatamigo"
	"github.com/jbowman-labs/tatamigo/internal/numeric"
)

// primaryExtractor serves the axis that matches storage order: fetching
// primary slice i needs only the bounds [indptr[i], indptr[i+1]), so dense
// extraction is a scatter over that slice and sparse extraction can often
// return the backing arrays directly (§4.E "access along the primary axis
// needs only bounds lookup").
type primaryExtractor struct {
	c      *core
	sel    tatamigo.Selection // constrains the secondary axis
	oracle tatamigo.Oracle
	cursor int
}

func (e *primaryExtractor) Selection() tatamigo.Selection { return e.sel }

func (e *primaryExtractor) SetOracle(o tatamigo.Oracle) {
	e.oracle = o
	e.cursor = 0
}

func (e *primaryExtractor) checkOracle(i int) {
	if e.oracle == nil {
		return
	}
	if e.cursor >= e.oracle.Total() || e.oracle.Get(e.cursor) != i {
		panic("tatamigo/csparse: fetch index does not match bound oracle's predicted order")
	}
	e.cursor++
}

func (e *primaryExtractor) checkBounds(i int) {
	if uint(i) >= uint(e.c.primaryLen) {
		panic(tatamigo.ErrOutOfRange)
	}
}

// Fetch materializes the primary slice i as a dense vector over e.sel.
func (e *primaryExtractor) Fetch(i int, buf []float64) []float64 {
	e.checkOracle(i)
	e.checkBounds(i)

	n := e.sel.Len()
	out := ensureFloats(buf, n)
	for k := range out {
		out[k] = 0
	}

	lo, hi := e.c.indptr[i], e.c.indptr[i+1]
	switch e.sel.Kind {
	case tatamigo.SelectFull:
		for k := lo; k < hi; k++ {
			out[e.c.indices[k]] = e.c.data[k]
		}
	case tatamigo.SelectBlock:
		start, length := e.sel.Start, e.sel.Length
		a := lo + numeric.LowerBound(e.c.indices[lo:hi], start)
		b := lo + numeric.LowerBound(e.c.indices[lo:hi], start+length)
		for k := a; k < b; k++ {
			out[e.c.indices[k]-start] = e.c.data[k]
		}
	case tatamigo.SelectIndex:
		si := lo
		for k, target := range e.sel.Indices {
			for si < hi && e.c.indices[si] < target {
				si++
			}
			if si < hi && e.c.indices[si] == target {
				out[k] = e.c.data[si]
			}
		}
	}
	return out
}

// FetchSparse returns the non-zero entries of primary slice i within e.sel,
// with indices local to the selection (§3 "local index" convention). Full and
// left-aligned Block selections are zero-copy; Block selections with a
// non-zero start materialize shifted indices while still referencing values
// directly from storage; Index selections copy both indices and values into
// the caller's buffers.
func (e *primaryExtractor) FetchSparse(i int, vbuf []float64, ibuf []int) tatamigo.SparseRange {
	e.checkOracle(i)
	e.checkBounds(i)

	lo, hi := e.c.indptr[i], e.c.indptr[i+1]
	switch e.sel.Kind {
	case tatamigo.SelectFull:
		return tatamigo.SparseRange{N: hi - lo, Values: e.c.data[lo:hi], Indices: e.c.indices[lo:hi]}
	case tatamigo.SelectBlock:
		start, length := e.sel.Start, e.sel.Length
		a := lo + numeric.LowerBound(e.c.indices[lo:hi], start)
		b := lo + numeric.LowerBound(e.c.indices[lo:hi], start+length)
		n := b - a
		if start == 0 {
			return tatamigo.SparseRange{N: n, Values: e.c.data[a:b], Indices: e.c.indices[a:b]}
		}
		iout := ensureInts(ibuf, n)
		for k := 0; k < n; k++ {
			iout[k] = e.c.indices[a+k] - start
		}
		return tatamigo.SparseRange{N: n, Values: e.c.data[a:b], Indices: iout[:n]}
	default: // SelectIndex
		n := hi - lo
		if want := len(e.sel.Indices); want < n {
			n = want
		}
		vout := ensureFloats(vbuf, n)
		iout := ensureInts(ibuf, n)
		count := 0
		si := lo
		for k, target := range e.sel.Indices {
			for si < hi && e.c.indices[si] < target {
				si++
			}
			if si < hi && e.c.indices[si] == target {
				if count == len(vout) {
					vout = append(vout, 0)
					iout = append(iout, 0)
				}
				vout[count] = e.c.data[si]
				iout[count] = k
				count++
			}
		}
		return tatamigo.SparseRange{N: count, Values: vout[:count], Indices: iout[:count]}
	}
}
