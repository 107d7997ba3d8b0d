package csparse

import (
	"github.com/jbowman-labs/tatamigo"
	"github.com/jbowman-labs/tatamigo/internal/numeric"
	"gonum.org/v1/gonum/mat"
)

// DIA stores a square matrix that is all zero off its main diagonal,
// grounded on the teacher's diagonal.go - rewritten against this module's
// Matrix/Selection/extractor contract rather than the teacher's standalone
// gonum-era mat64.Matrix surface. Access along either axis is O(1) with no
// workspace or oracle benefit, since a diagonal matrix's only non-zero per
// row or column is the one at its own position.
type DIA struct {
	n        int
	diagonal []float64
}

var _ tatamigo.Matrix = (*DIA)(nil)

// NewDIA builds an n x n diagonal matrix over the given diagonal values.
// diagonal is used as-is as backing storage.
func NewDIA(diagonal []float64) *DIA {
	return &DIA{n: len(diagonal), diagonal: diagonal}
}

func (d *DIA) Dims() (int, int)        { return d.n, d.n }
func (d *DIA) NRow() int               { return d.n }
func (d *DIA) NCol() int               { return d.n }
func (d *DIA) Sparse() bool            { return true }
func (d *DIA) PreferRows() bool        { return true }
func (d *DIA) UsesOracle(row bool) bool { return false }

// NNZ returns the number of stored diagonal entries, whether or not any are
// zero.
func (d *DIA) NNZ() int { return d.n }

// Diagonal returns the matrix's diagonal values, backed by the same storage
// as the receiver.
func (d *DIA) Diagonal() []float64 { return d.diagonal }

func (d *DIA) At(i, j int) float64 {
	if uint(i) >= uint(d.n) {
		panic(tatamigo.ErrRowAccess)
	}
	if uint(j) >= uint(d.n) {
		panic(tatamigo.ErrColAccess)
	}
	if i == j {
		return d.diagonal[i]
	}
	return 0
}

// T returns the receiver: a diagonal matrix is its own transpose.
func (d *DIA) T() mat.Matrix { return d }

func (d *DIA) DenseRow(sel tatamigo.Selection) tatamigo.DenseExtractor    { return &diaExtractor{d: d, sel: sel} }
func (d *DIA) DenseColumn(sel tatamigo.Selection) tatamigo.DenseExtractor { return &diaExtractor{d: d, sel: sel} }
func (d *DIA) SparseRow(sel tatamigo.Selection) tatamigo.SparseExtractor    { return &diaExtractor{d: d, sel: sel} }
func (d *DIA) SparseColumn(sel tatamigo.Selection) tatamigo.SparseExtractor { return &diaExtractor{d: d, sel: sel} }

type diaExtractor struct {
	d   *DIA
	sel tatamigo.Selection
}

func (e *diaExtractor) Selection() tatamigo.Selection { return e.sel }

// SetOracle is a no-op: every fetch is an O(1) lookup regardless of access
// order, so a predicted future sequence has nothing to accelerate.
func (e *diaExtractor) SetOracle(tatamigo.Oracle) {}

func (e *diaExtractor) Fetch(i int, buf []float64) []float64 {
	if uint(i) >= uint(e.d.n) {
		panic(tatamigo.ErrOutOfRange)
	}
	buf = ensureFloats(buf, e.sel.Len())
	for k := range buf {
		buf[k] = 0
	}
	if pos, ok := localIndexOf(e.sel, i); ok {
		buf[pos] = e.d.diagonal[i]
	}
	return buf
}

func (e *diaExtractor) FetchSparse(i int, vbuf []float64, ibuf []int) tatamigo.SparseRange {
	if uint(i) >= uint(e.d.n) {
		panic(tatamigo.ErrOutOfRange)
	}
	pos, ok := localIndexOf(e.sel, i)
	if !ok || e.d.diagonal[i] == 0 {
		return tatamigo.SparseRange{N: 0, Values: ensureFloats(vbuf, 0), Indices: ensureInts(ibuf, 0)}
	}
	vbuf = ensureFloats(vbuf, 1)
	ibuf = ensureInts(ibuf, 1)
	vbuf[0] = e.d.diagonal[i]
	ibuf[0] = pos
	return tatamigo.SparseRange{N: 1, Values: vbuf, Indices: ibuf}
}

// localIndexOf reports the position within sel that logical index target
// occupies, if any.
func localIndexOf(sel tatamigo.Selection, target int) (pos int, ok bool) {
	switch sel.Kind {
	case tatamigo.SelectBlock:
		if target >= sel.Start && target < sel.Start+sel.Length {
			return target - sel.Start, true
		}
	case tatamigo.SelectIndex:
		p := numeric.LowerBound(sel.Indices, target)
		if p < len(sel.Indices) && sel.Indices[p] == target {
			return p, true
		}
	default: // SelectFull
		if target >= 0 && target < sel.Length {
			return target, true
		}
	}
	return 0, false
}
