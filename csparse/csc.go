package csparse

import (
	"github.com/jbowman-labs/tatamigo"
	"gonum.org/v1/gonum/mat"
)

// CSC is a compressed-sparse-column matrix: column is the primary (storage)
// axis. It shares the same core layout as CSR with rows and columns swapped.
type CSC struct {
	c *core
}

var _ tatamigo.Matrix = (*CSC)(nil)

// NewCSC builds a CSC matrix over nrow x ncol with ncol+1 column pointers,
// ascending row indices within each column, and matching values. See NewCSR
// for the validate parameter's meaning.
func NewCSC(nrow, ncol int, indptr, indices []int, data []float64, validate bool) (*CSC, error) {
	c, err := newCore(ncol, nrow, indptr, indices, data, validate)
	if err != nil {
		return nil, err
	}
	return &CSC{c: c}, nil
}

func (m *CSC) Dims() (int, int) { return m.c.secondaryLen, m.c.primaryLen }
func (m *CSC) NRow() int        { return m.c.secondaryLen }
func (m *CSC) NCol() int        { return m.c.primaryLen }
func (m *CSC) Sparse() bool     { return true }
func (m *CSC) PreferRows() bool { return false }
func (m *CSC) UsesOracle(row bool) bool { return row }

// NNZ returns the number of stored non-zero elements.
func (m *CSC) NNZ() int { return m.c.NNZ() }

func (m *CSC) At(i, j int) float64 {
	if uint(i) >= uint(m.c.secondaryLen) {
		panic(tatamigo.ErrRowAccess)
	}
	if uint(j) >= uint(m.c.primaryLen) {
		panic(tatamigo.ErrColAccess)
	}
	return m.c.at(j, i)
}

// T returns a CSR sharing the same indptr/indices/data slices.
func (m *CSC) T() mat.Matrix {
	return &CSR{c: m.c}
}

func (m *CSC) DenseRow(sel tatamigo.Selection) tatamigo.DenseExtractor {
	return newSecondaryExtractor(m.c, sel)
}

func (m *CSC) DenseColumn(sel tatamigo.Selection) tatamigo.DenseExtractor {
	return &primaryExtractor{c: m.c, sel: sel}
}

func (m *CSC) SparseRow(sel tatamigo.Selection) tatamigo.SparseExtractor {
	return newSecondaryExtractor(m.c, sel)
}

func (m *CSC) SparseColumn(sel tatamigo.Selection) tatamigo.SparseExtractor {
	return &primaryExtractor{c: m.c, sel: sel}
}
