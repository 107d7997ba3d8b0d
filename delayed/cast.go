package delayed

import (
	"github.com/jbowman-labs/tatamigo"
	"gonum.org/v1/gonum/mat"
)

// Cast wraps a child matrix, converting values (and, conceptually, index
// representation) between the wrapped and exposed types on every
// extraction (§4.H). Go's Matrix/Extractor surface is concrete over
// float64/int throughout (see the root package's generics-scope decision),
// so there is no wrapped/exposed type pair to convert between; Cast instead
// models the operationally meaningful part of that contract - extraction
// always copies into caller- or wrapper-owned buffers, never returning the
// child's own internal pointer - and optionally applies a value conversion
// (e.g. rounding to simulate a narrower numeric representation).
type Cast struct {
	child   tatamigo.Matrix
	convert func(float64) float64
}

var _ tatamigo.Matrix = (*Cast)(nil)

// NewCast wraps child. convert may be nil, in which case values pass through
// unchanged but extraction still always copies.
func NewCast(child tatamigo.Matrix, convert func(float64) float64) *Cast {
	if convert == nil {
		convert = func(v float64) float64 { return v }
	}
	return &Cast{child: child, convert: convert}
}

func (c *Cast) Dims() (int, int)          { return c.child.Dims() }
func (c *Cast) NRow() int                 { return c.child.NRow() }
func (c *Cast) NCol() int                 { return c.child.NCol() }
func (c *Cast) Sparse() bool              { return c.child.Sparse() }
func (c *Cast) PreferRows() bool          { return c.child.PreferRows() }
func (c *Cast) UsesOracle(row bool) bool  { return c.child.UsesOracle(row) }
func (c *Cast) At(i, j int) float64       { return c.convert(c.child.At(i, j)) }
func (c *Cast) T() mat.Matrix             { return NewTranspose(c) }

func (c *Cast) DenseRow(sel tatamigo.Selection) tatamigo.DenseExtractor {
	return &castDense{c: c, child: c.child.DenseRow(sel)}
}
func (c *Cast) DenseColumn(sel tatamigo.Selection) tatamigo.DenseExtractor {
	return &castDense{c: c, child: c.child.DenseColumn(sel)}
}
func (c *Cast) SparseRow(sel tatamigo.Selection) tatamigo.SparseExtractor {
	return &castSparse{c: c, child: c.child.SparseRow(sel)}
}
func (c *Cast) SparseColumn(sel tatamigo.Selection) tatamigo.SparseExtractor {
	return &castSparse{c: c, child: c.child.SparseColumn(sel)}
}

type castDense struct {
	c     *Cast
	child tatamigo.DenseExtractor
}

func (e *castDense) Selection() tatamigo.Selection { return e.child.Selection() }
func (e *castDense) SetOracle(o tatamigo.Oracle)    { e.child.SetOracle(o) }
func (e *castDense) Fetch(i int, buf []float64) []float64 {
	vals := e.child.Fetch(i, nil) // never hand the child our caller's buf: always copy
	n := len(vals)
	out := ensureFloats(buf, n)
	for k := 0; k < n; k++ {
		out[k] = e.c.convert(vals[k])
	}
	return out
}

type castSparse struct {
	c     *Cast
	child tatamigo.SparseExtractor
}

func (e *castSparse) Selection() tatamigo.Selection { return e.child.Selection() }
func (e *castSparse) SetOracle(o tatamigo.Oracle)    { e.child.SetOracle(o) }
func (e *castSparse) FetchSparse(i int, vbuf []float64, ibuf []int) tatamigo.SparseRange {
	r := e.child.FetchSparse(i, nil, nil)
	vout := ensureFloats(vbuf, r.N)
	iout := ensureInts(ibuf, r.N)
	for k := 0; k < r.N; k++ {
		vout[k] = e.c.convert(r.Values[k])
		iout[k] = r.Indices[k]
	}
	return tatamigo.SparseRange{N: r.N, Values: vout, Indices: iout}
}
