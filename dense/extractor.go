package dense

import "github.com/jbowman-labs/tatamigo"

// axisState is the axis/selection bookkeeping shared by dense and sparse
// extractors. Workspace is unused for dense storage (§4.D "Workspace is
// unused"), so the only per-extractor scratch is an oracle cursor used to
// validate the oracle-ordering contract.
type axisState struct {
	m      *Matrix
	row    bool // true: primary axis is rows, selection constrains columns
	sel    tatamigo.Selection
	oracle tatamigo.Oracle
	cursor int
}

func (a *axisState) Selection() tatamigo.Selection { return a.sel }

func (a *axisState) SetOracle(o tatamigo.Oracle) {
	a.oracle = o
	a.cursor = 0
}

func (a *axisState) checkOracle(i int) {
	if a.oracle == nil {
		return
	}
	if a.cursor >= a.oracle.Total() || a.oracle.Get(a.cursor) != i {
		panic("tatamigo/dense: fetch index does not match bound oracle's predicted order")
	}
	a.cursor++
}

func (a *axisState) primaryLen() int {
	if a.row {
		return a.m.rows
	}
	return a.m.cols
}

func (a *axisState) secondaryLen() int {
	if a.row {
		return a.m.cols
	}
	return a.m.rows
}

func (a *axisState) checkPrimary(i int) {
	if uint(i) >= uint(a.primaryLen()) {
		panic(tatamigo.ErrOutOfRange)
	}
}

// zeroCopyAxis reports whether this axis matches the underlying storage
// order, i.e. whether a contiguous slice of m.data can be returned without
// copying.
func (a *axisState) zeroCopyAxis() bool { return a.row == a.m.rowMajor }

// at returns the logical matrix element for primary position i and
// secondary position j (as defined by the axis direction of this extractor).
func (a *axisState) at(i, j int) float64 {
	if a.row {
		return a.m.At(i, j)
	}
	return a.m.At(j, i)
}

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

type denseExtractor struct {
	axisState
}

var _ tatamigo.DenseExtractor = (*denseExtractor)(nil)

// Fetch implements tatamigo.DenseExtractor. On the primary (storage-order)
// axis with a full or block selection it returns a slice directly into the
// matrix's backing array (zero-copy); every other combination copies into buf.
func (e *denseExtractor) Fetch(i int, buf []float64) []float64 {
	e.checkOracle(i)
	e.checkPrimary(i)

	if e.zeroCopyAxis() {
		stride := e.secondaryLen()
		base := i * stride
		full := e.m.data[base : base+stride]

		switch e.sel.Kind {
		case tatamigo.SelectFull:
			return full
		case tatamigo.SelectBlock:
			return full[e.sel.Start : e.sel.Start+e.sel.Length]
		case tatamigo.SelectIndex:
			out := ensureFloats(buf, len(e.sel.Indices))
			for k, idx := range e.sel.Indices {
				out[k] = full[idx]
			}
			return out
		}
	}

	n := e.sel.Len()
	out := ensureFloats(buf, n)
	switch e.sel.Kind {
	case tatamigo.SelectFull:
		for j := 0; j < n; j++ {
			out[j] = e.at(i, j)
		}
	case tatamigo.SelectBlock:
		for j := 0; j < n; j++ {
			out[j] = e.at(i, e.sel.Start+j)
		}
	case tatamigo.SelectIndex:
		for k, idx := range e.sel.Indices {
			out[k] = e.at(i, idx)
		}
	}
	return out
}

type sparseExtractor struct {
	axisState
}

var _ tatamigo.SparseExtractor = (*sparseExtractor)(nil)

// FetchSparse walks the dense vector for position i, emitting every non-zero
// entry within the selection with ascending indices (§4.D "walk the dense
// vector, emitting non-zero entries").
func (e *sparseExtractor) FetchSparse(i int, vbuf []float64, ibuf []int) tatamigo.SparseRange {
	e.checkOracle(i)
	e.checkPrimary(i)

	n := e.sel.Len()
	vout := ensureFloats(vbuf, n)
	iout := ensureInts(ibuf, n)

	count := 0
	for k := 0; k < n; k++ {
		idx := e.sel.At(k)
		v := e.at(i, idx)
		if v != 0 {
			vout[count] = v
			iout[count] = k
			count++
		}
	}
	return tatamigo.SparseRange{N: count, Values: vout[:count], Indices: iout[:count]}
}
