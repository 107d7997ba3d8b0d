package csparse

import "github.com/jbowman-labs/tatamigo"

// secondaryExtractor serves the axis that runs across primary slices:
// fetching secondary target i means checking, in every primary slice named by
// sel, whether i appears among its stored indices. A workspace amortizes
// repeated/adjacent targets across calls (§3 Workspace, §4.E "secondary-axis
// access is accelerated by a workspace").
type secondaryExtractor struct {
	c      *core
	sel    tatamigo.Selection // constrains the primary axis
	oracle tatamigo.Oracle
	cursor int
	ws     workspace
}

func newSecondaryExtractor(c *core, sel tatamigo.Selection) *secondaryExtractor {
	e := &secondaryExtractor{c: c, sel: sel}
	e.ws = newWorkspace(sel.Len(), sel.At)
	return e
}

func (e *secondaryExtractor) Selection() tatamigo.Selection { return e.sel }

func (e *secondaryExtractor) SetOracle(o tatamigo.Oracle) {
	e.oracle = o
	e.cursor = 0
}

func (e *secondaryExtractor) checkOracle(i int) {
	if e.oracle == nil {
		return
	}
	if e.cursor >= e.oracle.Total() || e.oracle.Get(e.cursor) != i {
		panic("tatamigo/csparse: fetch index does not match bound oracle's predicted order")
	}
	e.cursor++
}

func (e *secondaryExtractor) checkBounds(i int) {
	if uint(i) >= uint(e.c.secondaryLen) {
		panic(tatamigo.ErrOutOfRange)
	}
}

func (e *secondaryExtractor) Fetch(i int, buf []float64) []float64 {
	e.checkOracle(i)
	e.checkBounds(i)

	n := e.sel.Len()
	out := ensureFloats(buf, n)
	offsets := e.ws.advance(e.c, i)

	for k := 0; k < n; k++ {
		p := e.sel.At(k)
		lo, hi := e.c.indptr[p], e.c.indptr[p+1]
		off := offsets[k]
		if lo+off < hi && e.c.indices[lo+off] == i {
			out[k] = e.c.data[lo+off]
		} else {
			out[k] = 0
		}
	}
	return out
}

// FetchSparse returns the non-zero entries at secondary target i among the
// primary slices named by sel, with indices local to the selection.
func (e *secondaryExtractor) FetchSparse(i int, vbuf []float64, ibuf []int) tatamigo.SparseRange {
	e.checkOracle(i)
	e.checkBounds(i)

	n := e.sel.Len()
	vout := ensureFloats(vbuf, n)
	iout := ensureInts(ibuf, n)
	offsets := e.ws.advance(e.c, i)

	count := 0
	for k := 0; k < n; k++ {
		p := e.sel.At(k)
		lo, hi := e.c.indptr[p], e.c.indptr[p+1]
		off := offsets[k]
		if lo+off < hi && e.c.indices[lo+off] == i {
			vout[count] = e.c.data[lo+off]
			iout[count] = k
			count++
		}
	}
	return tatamigo.SparseRange{N: count, Values: vout[:count], Indices: iout[:count]}
}
