package csparse

import (
	"github.com/jbowman-labs/tatamigo"
	"gonum.org/v1/gonum/mat"
)

// CSR is a compressed-sparse-row matrix: row is the primary (storage) axis,
// so row access needs only a bounds lookup while column access goes through
// a workspace (§4.E).
type CSR struct {
	c *core
}

var _ tatamigo.Matrix = (*CSR)(nil)

// NewCSR builds a CSR matrix over nrow x ncol with nrow+1 row pointers,
// ascending column indices within each row, and matching values. If validate
// is true the structural invariants (§4.E, §7) are checked and a non-nil
// error wrapping tatamigo.ErrInvalidSparseData or tatamigo.ErrShape is
// returned on violation; callers that trust their data may skip the check.
func NewCSR(nrow, ncol int, indptr, indices []int, data []float64, validate bool) (*CSR, error) {
	c, err := newCore(nrow, ncol, indptr, indices, data, validate)
	if err != nil {
		return nil, err
	}
	return &CSR{c: c}, nil
}

func (m *CSR) Dims() (int, int) { return m.c.primaryLen, m.c.secondaryLen }
func (m *CSR) NRow() int        { return m.c.primaryLen }
func (m *CSR) NCol() int        { return m.c.secondaryLen }
func (m *CSR) Sparse() bool     { return true }
func (m *CSR) PreferRows() bool { return true }
func (m *CSR) UsesOracle(row bool) bool { return !row }

// NNZ returns the number of stored non-zero elements.
func (m *CSR) NNZ() int { return m.c.NNZ() }

func (m *CSR) At(i, j int) float64 {
	if uint(i) >= uint(m.c.primaryLen) {
		panic(tatamigo.ErrRowAccess)
	}
	if uint(j) >= uint(m.c.secondaryLen) {
		panic(tatamigo.ErrColAccess)
	}
	return m.c.at(i, j)
}

// T returns a CSC sharing the same indptr/indices/data slices, mirroring the
// teacher's CSR.T()/CSC.T() pair.
func (m *CSR) T() mat.Matrix {
	return &CSC{c: m.c}
}

func (m *CSR) DenseRow(sel tatamigo.Selection) tatamigo.DenseExtractor {
	return &primaryExtractor{c: m.c, sel: sel}
}

func (m *CSR) DenseColumn(sel tatamigo.Selection) tatamigo.DenseExtractor {
	return newSecondaryExtractor(m.c, sel)
}

func (m *CSR) SparseRow(sel tatamigo.Selection) tatamigo.SparseExtractor {
	return &primaryExtractor{c: m.c, sel: sel}
}

func (m *CSR) SparseColumn(sel tatamigo.Selection) tatamigo.SparseExtractor {
	return newSecondaryExtractor(m.c, sel)
}
