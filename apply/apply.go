// Package apply implements the single generic traversal primitive (§4.N)
// that the rest of this module's statistics-style reductions would be built
// on: it dispatches on sparse-vs-dense and on which axis a matrix prefers to
// be read along, invoking whichever capability a caller's reducer exposes.
package apply

import "github.com/jbowman-labs/tatamigo"

// Margin selects which axis a reduction produces one result per position of.
type Margin int

const (
	Row Margin = iota
	Column
)

// Reducer accumulates a single traversal's results and reports them once
// the traversal completes. A reducer additionally implements any subset of
// DenseDirect, SparseDirect, DenseRunning, SparseRunning below; which ones
// it implements determines which dispatch path Apply takes for it - there is
// no separate static capability flag, Go's own interface satisfaction serves
// that role.
type Reducer interface {
	// Finalize returns the accumulated statistics once traversal is done.
	Finalize() interface{}
}

// DenseDirect is implemented by a reducer that can consume one dense vector
// per MARGIN position directly (§4.N step 1).
type DenseDirect interface {
	DenseDirect(i int, vals []float64)
}

// SparseDirect is the sparse counterpart of DenseDirect.
type SparseDirect interface {
	SparseDirect(i int, r tatamigo.SparseRange)
}

// DenseRunning is implemented by a reducer that maintains one running state
// over all MARGIN positions at once, updated one slice of the other axis at
// a time (§4.N step 2).
type DenseRunning interface {
	DenseRunning(vals []float64)
}

// SparseRunning is the sparse counterpart of DenseRunning.
type SparseRunning interface {
	SparseRunning(r tatamigo.SparseRange)
}

// Apply traverses m over the full matrix and feeds reducer per §4.N's
// three-step dispatch:
//
//  1. if the matrix prefers the MARGIN axis and reducer supports direct
//     consumption, iterate MARGIN positions directly.
//  2. else if reducer supports a running accumulation, iterate the other
//     axis instead, updating the one shared running state per slice.
//  3. else fall back to direct consumption anyway, paying for cross-axis
//     extraction.
//
// A reducer with only running capability always takes step 2. The direct
// path uses SparseDirect on a sparse matrix when present and DenseDirect
// otherwise; the running path uses SparseRunning on a sparse matrix when
// present and DenseRunning otherwise. If the chosen path's capability is
// missing, Apply panics (a contract violation, as with other fatal errors in
// this module).
func Apply(m tatamigo.Matrix, margin Margin, reducer Reducer) interface{} {
	row := margin == Row
	marginLen, otherLen := m.NRow(), m.NCol()
	if !row {
		marginLen, otherLen = m.NCol(), m.NRow()
	}

	dd, hasDD := reducer.(DenseDirect)
	sd, hasSD := reducer.(SparseDirect)
	dr, hasDR := reducer.(DenseRunning)
	sr, hasSR := reducer.(SparseRunning)

	direct := func() {
		sel := tatamigo.FullSelection(otherLen)
		if m.Sparse() && hasSD {
			ext := sparseExtractor(m, row, sel)
			for i := 0; i < marginLen; i++ {
				sd.SparseDirect(i, ext.FetchSparse(i, nil, nil))
			}
			return
		}
		if !hasDD {
			panic("tatamigo/apply: reducer exposes no usable capability for this matrix")
		}
		ext := denseExtractor(m, row, sel)
		for i := 0; i < marginLen; i++ {
			dd.DenseDirect(i, ext.Fetch(i, nil))
		}
	}

	running := func() {
		sel := tatamigo.FullSelection(marginLen)
		if m.Sparse() && hasSR {
			ext := sparseExtractor(m, !row, sel)
			for j := 0; j < otherLen; j++ {
				sr.SparseRunning(ext.FetchSparse(j, nil, nil))
			}
			return
		}
		ext := denseExtractor(m, !row, sel)
		for j := 0; j < otherLen; j++ {
			dr.DenseRunning(ext.Fetch(j, nil))
		}
	}

	switch {
	case m.PreferRows() == row && (hasDD || hasSD):
		direct()
	case hasDR || hasSR:
		running()
	default:
		direct()
	}
	return reducer.Finalize()
}

func denseExtractor(m tatamigo.Matrix, row bool, sel tatamigo.Selection) tatamigo.DenseExtractor {
	if row {
		return m.DenseRow(sel)
	}
	return m.DenseColumn(sel)
}

func sparseExtractor(m tatamigo.Matrix, row bool, sel tatamigo.Selection) tatamigo.SparseExtractor {
	if row {
		return m.SparseRow(sel)
	}
	return m.SparseColumn(sel)
}
