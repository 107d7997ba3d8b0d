package delayed

import (
	"github.com/jbowman-labs/tatamigo"
	"gonum.org/v1/gonum/mat"
)

// Transpose swaps the row/column axes of a child matrix without copying
// (§4.H): row requests are forwarded as column requests on the child and
// vice versa. Indices returned by the child's secondary-axis extraction are
// already ascending in the now-swapped axis, so no reordering is needed.
type Transpose struct {
	child tatamigo.Matrix
}

var _ tatamigo.Matrix = (*Transpose)(nil)

// NewTranspose wraps child, swapping its axes.
func NewTranspose(child tatamigo.Matrix) *Transpose { return &Transpose{child: child} }

func (t *Transpose) Dims() (int, int) { r, c := t.child.Dims(); return c, r }
func (t *Transpose) NRow() int        { return t.child.NCol() }
func (t *Transpose) NCol() int        { return t.child.NRow() }
func (t *Transpose) Sparse() bool     { return t.child.Sparse() }
func (t *Transpose) PreferRows() bool { return !t.child.PreferRows() }
func (t *Transpose) UsesOracle(row bool) bool { return t.child.UsesOracle(!row) }
func (t *Transpose) At(i, j int) float64      { return t.child.At(j, i) }

// T returns the child unchanged (transpose of a transpose).
func (t *Transpose) T() mat.Matrix { return t.child }

func (t *Transpose) DenseRow(sel tatamigo.Selection) tatamigo.DenseExtractor {
	return t.child.DenseColumn(sel)
}
func (t *Transpose) DenseColumn(sel tatamigo.Selection) tatamigo.DenseExtractor {
	return t.child.DenseRow(sel)
}
func (t *Transpose) SparseRow(sel tatamigo.Selection) tatamigo.SparseExtractor {
	return t.child.SparseColumn(sel)
}
func (t *Transpose) SparseColumn(sel tatamigo.Selection) tatamigo.SparseExtractor {
	return t.child.SparseRow(sel)
}
