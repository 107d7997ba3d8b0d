// Package dense implements Component D: a dense, contiguous-buffer backing
// for tatamigo.Matrix, grounded on the teacher library's general approach of
// wrapping a flat float64 slice behind the gonum mat.Matrix contract (see
// gonum.org/v1/gonum/mat.Dense, which every teacher sparse format converts
// to/from via ToDense()). Primary-axis extraction (the axis matching the
// storage order) is zero-copy; secondary-axis extraction copies with stride.
package dense

import (
	"fmt"

	"github.com/jbowman-labs/tatamigo"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a row-major or column-major dense backing store of nrow*ncol
// float64 values (§4.D).
type Matrix struct {
	rows, cols int
	data       []float64
	rowMajor   bool
}

var _ tatamigo.Matrix = (*Matrix)(nil)

// New creates a dense matrix of the given shape backed by data, which must
// have length rows*cols. data is used directly as backing storage: changes
// to it are reflected in the matrix and vice versa, mirroring the teacher's
// NewCSR/NewCSC "caller-owned backing slice" convention. If data is nil a
// freshly zeroed slice is allocated.
func New(rows, cols int, data []float64, rowMajor bool) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("dense: invalid dimensions %d x %d", rows, cols))
	}
	if data == nil {
		data = make([]float64, rows*cols)
	}
	if len(data) != rows*cols {
		panic(fmt.Sprintf("dense: data has length %d, want %d", len(data), rows*cols))
	}
	return &Matrix{rows: rows, cols: cols, data: data, rowMajor: rowMajor}
}

// Dims returns the matrix shape.
func (m *Matrix) Dims() (int, int) { return m.rows, m.cols }

// NRow returns the number of rows.
func (m *Matrix) NRow() int { return m.rows }

// NCol returns the number of columns.
func (m *Matrix) NCol() int { return m.cols }

// Sparse reports false: dense matrices never prefer sparse extraction.
func (m *Matrix) Sparse() bool { return false }

// PreferRows reports whether row-major (true) or column-major (false)
// storage is used; that is the axis cheapest to iterate.
func (m *Matrix) PreferRows() bool { return m.rowMajor }

// UsesOracle reports false: dense storage has no chunk cache to prime.
func (m *Matrix) UsesOracle(bool) bool { return false }

func (m *Matrix) offset(i, j int) int {
	if m.rowMajor {
		return i*m.cols + j
	}
	return j*m.rows + i
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	if uint(i) >= uint(m.rows) {
		panic(tatamigo.ErrRowAccess)
	}
	if uint(j) >= uint(m.cols) {
		panic(tatamigo.ErrColAccess)
	}
	return m.data[m.offset(i, j)]
}

// T returns the transpose of the receiver, sharing the same backing array
// but with row/column sizes and the storage-order flag flipped - mirroring
// the teacher's CSR.T()/CSC.T(), which return a sibling compressed type over
// the same slices rather than copying. The declared return type is
// gonum's mat.Matrix, matching the teacher's own T() signature; callers that
// need the full tatamigo.Matrix surface may type-assert the result.
func (m *Matrix) T() mat.Matrix {
	return &Matrix{rows: m.cols, cols: m.rows, data: m.data, rowMajor: !m.rowMajor}
}

// DenseRow returns a dense extractor over rows, constrained on columns by sel.
func (m *Matrix) DenseRow(sel Selection) tatamigo.DenseExtractor {
	return &denseExtractor{axisState{m: m, row: true, sel: sel}}
}

// DenseColumn returns a dense extractor over columns, constrained on rows by sel.
func (m *Matrix) DenseColumn(sel Selection) tatamigo.DenseExtractor {
	return &denseExtractor{axisState{m: m, row: false, sel: sel}}
}

// SparseRow returns a sparse extractor over rows, constrained on columns by sel.
func (m *Matrix) SparseRow(sel Selection) tatamigo.SparseExtractor {
	return &sparseExtractor{axisState{m: m, row: true, sel: sel}}
}

// SparseColumn returns a sparse extractor over columns, constrained on rows by sel.
func (m *Matrix) SparseColumn(sel Selection) tatamigo.SparseExtractor {
	return &sparseExtractor{axisState{m: m, row: false, sel: sel}}
}

// Selection is an alias of tatamigo.Selection for convenience within callers
// of this package.
type Selection = tatamigo.Selection

