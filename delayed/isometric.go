package delayed

import (
	"math"

	"github.com/jbowman-labs/tatamigo"
	"github.com/jbowman-labs/tatamigo/internal/bufpool"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Operator is an element-wise transform supplied to IsometricOp (§4.G): Apply
// computes v' from the logical coordinates and original value, and Sparse
// reports whether it maps zero to zero (so a sparse child stays sparse).
type Operator interface {
	Apply(r, c int, v float64) float64
	Sparse() bool
}

// vectorized is implemented by the operator families whose per-element
// transform reduces to a single gonum/floats call over a whole fetched
// buffer at once - every scalar and vector arithmetic family below. The
// purely coordinate-free unary operators (Abs, Sqrt, ...) don't implement
// it, so isoDense/isoSparseSynthesized fall back to Operator.Apply per
// element for those.
type vectorized interface {
	// ApplyVector transforms buf in place for a fetch along axis fetchByRow
	// at primary index primary, whose secondary-axis positions (same order
	// as buf) are given by secondary.
	ApplyVector(fetchByRow bool, primary int, secondary []int, buf []float64)
}

type funcOperator struct {
	apply  func(r, c int, v float64) float64
	sparse bool
}

func (f funcOperator) Apply(r, c int, v float64) float64 { return f.apply(r, c, v) }
func (f funcOperator) Sparse() bool                      { return f.sparse }

type scalarAddOp struct{ s float64 }

func (o scalarAddOp) Apply(_, _ int, v float64) float64 { return v + o.s }
func (o scalarAddOp) Sparse() bool                      { return false }
func (o scalarAddOp) ApplyVector(_ bool, _ int, _ []int, buf []float64) {
	floats.AddConst(o.s, buf)
}

// AddScalar returns an operator computing v+s (not sparsity-preserving).
func AddScalar(s float64) Operator { return scalarAddOp{s: s} }

type scalarSubOp struct {
	s        float64
	reversed bool
}

func (o scalarSubOp) Apply(_, _ int, v float64) float64 {
	if o.reversed {
		return o.s - v
	}
	return v - o.s
}
func (o scalarSubOp) Sparse() bool { return false }
func (o scalarSubOp) ApplyVector(_ bool, _ int, _ []int, buf []float64) {
	if o.reversed {
		floats.Scale(-1, buf)
		floats.AddConst(o.s, buf)
		return
	}
	floats.AddConst(-o.s, buf)
}

// SubScalar returns an operator computing v-s, or s-v if reversed is true
// (not sparsity-preserving).
func SubScalar(s float64, reversed bool) Operator { return scalarSubOp{s: s, reversed: reversed} }

type scalarMulOp struct{ s float64 }

func (o scalarMulOp) Apply(_, _ int, v float64) float64 { return v * o.s }
func (o scalarMulOp) Sparse() bool                      { return true }
func (o scalarMulOp) ApplyVector(_ bool, _ int, _ []int, buf []float64) {
	floats.Scale(o.s, buf)
}

// MulScalar returns an operator computing v*s (sparsity-preserving; assumes
// a finite factor).
func MulScalar(s float64) Operator { return scalarMulOp{s: s} }

type scalarDivOp struct {
	s        float64
	reversed bool
}

func (o scalarDivOp) Apply(_, _ int, v float64) float64 {
	if o.reversed {
		return o.s / v
	}
	return v / o.s
}
func (o scalarDivOp) Sparse() bool { return !o.reversed }
func (o scalarDivOp) ApplyVector(_ bool, _ int, _ []int, buf []float64) {
	if o.reversed {
		// s/v has no gonum/floats counterpart (every floats elementwise op
		// combines two slices or a slice and a constant added/scaled in,
		// never a constant divided by a slice), so this one case stays a
		// plain loop.
		for i, v := range buf {
			buf[i] = o.s / v
		}
		return
	}
	floats.Scale(1/o.s, buf)
}

// DivScalar returns an operator computing v/s, or s/v if reversed is true
// (sparsity-preserving for the v/s case; assumes a finite divisor).
func DivScalar(s float64, reversed bool) Operator { return scalarDivOp{s: s, reversed: reversed} }

type vectorAddOp struct {
	vec   []float64
	byRow bool
}

func (o vectorAddOp) Apply(r, c int, v float64) float64 {
	if o.byRow {
		return v + o.vec[r]
	}
	return v + o.vec[c]
}
func (o vectorAddOp) Sparse() bool { return false }
func (o vectorAddOp) ApplyVector(fetchByRow bool, primary int, secondary []int, buf []float64) {
	if o.byRow == fetchByRow {
		floats.AddConst(o.vec[primary], buf)
		return
	}
	gathered := gatherVec(o.vec, secondary)
	defer bufpool.PutFloats(gathered)
	floats.Add(buf, gathered)
}

// AddVector returns an operator adding vec[axis-coord] to v; byRow selects
// whether the coordinate is the row or the column (not sparsity-preserving).
func AddVector(vec []float64, byRow bool) Operator { return vectorAddOp{vec: vec, byRow: byRow} }

type vectorSubOp struct {
	vec      []float64
	byRow    bool
	reversed bool
}

func (o vectorSubOp) Apply(r, c int, v float64) float64 {
	coord := o.vec[c]
	if o.byRow {
		coord = o.vec[r]
	}
	if o.reversed {
		return coord - v
	}
	return v - coord
}
func (o vectorSubOp) Sparse() bool { return false }
func (o vectorSubOp) ApplyVector(fetchByRow bool, primary int, secondary []int, buf []float64) {
	if o.byRow == fetchByRow {
		coord := o.vec[primary]
		if o.reversed {
			floats.Scale(-1, buf)
			floats.AddConst(coord, buf)
			return
		}
		floats.AddConst(-coord, buf)
		return
	}
	gathered := gatherVec(o.vec, secondary)
	defer bufpool.PutFloats(gathered)
	if o.reversed {
		floats.Scale(-1, buf)
		floats.Add(buf, gathered)
		return
	}
	floats.Sub(buf, gathered)
}

// SubVector returns an operator subtracting (or subtracting from) vec[·].
func SubVector(vec []float64, byRow, reversed bool) Operator {
	return vectorSubOp{vec: vec, byRow: byRow, reversed: reversed}
}

type vectorMulOp struct {
	vec   []float64
	byRow bool
}

func (o vectorMulOp) Apply(r, c int, v float64) float64 {
	if o.byRow {
		return v * o.vec[r]
	}
	return v * o.vec[c]
}
func (o vectorMulOp) Sparse() bool { return true }
func (o vectorMulOp) ApplyVector(fetchByRow bool, primary int, secondary []int, buf []float64) {
	if o.byRow == fetchByRow {
		floats.Scale(o.vec[primary], buf)
		return
	}
	gathered := gatherVec(o.vec, secondary)
	defer bufpool.PutFloats(gathered)
	floats.Mul(buf, gathered)
}

// MulVector returns an operator multiplying by vec[·] (sparsity-preserving;
// assumes finite factors).
func MulVector(vec []float64, byRow bool) Operator { return vectorMulOp{vec: vec, byRow: byRow} }

type vectorDivOp struct {
	vec      []float64
	byRow    bool
	reversed bool
}

func (o vectorDivOp) Apply(r, c int, v float64) float64 {
	coord := o.vec[c]
	if o.byRow {
		coord = o.vec[r]
	}
	if o.reversed {
		return coord / v
	}
	return v / coord
}
func (o vectorDivOp) Sparse() bool { return !o.reversed }
func (o vectorDivOp) ApplyVector(fetchByRow bool, primary int, secondary []int, buf []float64) {
	if o.byRow == fetchByRow {
		coord := o.vec[primary]
		if o.reversed {
			for i, v := range buf {
				buf[i] = coord / v
			}
			return
		}
		floats.Scale(1/coord, buf)
		return
	}
	gathered := gatherVec(o.vec, secondary)
	defer bufpool.PutFloats(gathered)
	if o.reversed {
		// coord/v, like the scalar case, has no gonum/floats counterpart.
		for i, v := range buf {
			buf[i] = gathered[i] / v
		}
		return
	}
	floats.Div(buf, gathered)
}

// DivVector returns an operator dividing by (or dividing) vec[·].
func DivVector(vec []float64, byRow, reversed bool) Operator {
	return vectorDivOp{vec: vec, byRow: byRow, reversed: reversed}
}

func gatherVec(vec []float64, secondary []int) []float64 {
	out := bufpool.Floats(len(secondary), false)
	for k, s := range secondary {
		out[k] = vec[s]
	}
	return out
}

// Abs, Sqrt, Round and Log1p are sparsity-preserving unary operators; Exp is
// not (exp(0) = 1). These have no gonum/floats counterpart (floats has no
// elementwise Abs/Sqrt/Round/Log/Exp over a slice, only the constant- and
// vector-combining ops used by the scalar/vector families above), so they
// stay plain per-element funcOperators.
func Abs() Operator   { return funcOperator{apply: func(_, _ int, v float64) float64 { return math.Abs(v) }, sparse: true} }
func Sqrt() Operator  { return funcOperator{apply: func(_, _ int, v float64) float64 { return math.Sqrt(v) }, sparse: true} }
func Round() Operator { return funcOperator{apply: func(_, _ int, v float64) float64 { return math.Round(v) }, sparse: true} }
func Log1p() Operator { return funcOperator{apply: func(_, _ int, v float64) float64 { return math.Log1p(v) }, sparse: true} }
func Exp() Operator   { return funcOperator{apply: func(_, _ int, v float64) float64 { return math.Exp(v) }, sparse: false} }

// Log returns an operator computing log(v)/log(base) (not
// sparsity-preserving).
func Log(base float64) Operator {
	denom := math.Log(base)
	return funcOperator{apply: func(_, _ int, v float64) float64 { return math.Log(v) / denom }, sparse: false}
}

// IsometricOp wraps a child matrix with an element-wise Operator (§4.G).
type IsometricOp struct {
	child tatamigo.Matrix
	op    Operator
}

var _ tatamigo.Matrix = (*IsometricOp)(nil)

// NewIsometricOp wraps child with op.
func NewIsometricOp(child tatamigo.Matrix, op Operator) *IsometricOp {
	return &IsometricOp{child: child, op: op}
}

func (w *IsometricOp) Dims() (int, int)         { return w.child.Dims() }
func (w *IsometricOp) NRow() int                { return w.child.NRow() }
func (w *IsometricOp) NCol() int                { return w.child.NCol() }
func (w *IsometricOp) PreferRows() bool         { return w.child.PreferRows() }
func (w *IsometricOp) UsesOracle(row bool) bool { return w.child.UsesOracle(row) }
func (w *IsometricOp) Sparse() bool             { return w.op.Sparse() && w.child.Sparse() }
func (w *IsometricOp) At(i, j int) float64      { return w.op.Apply(i, j, w.child.At(i, j)) }
func (w *IsometricOp) T() mat.Matrix            { return NewTranspose(w) }

func (w *IsometricOp) DenseRow(sel tatamigo.Selection) tatamigo.DenseExtractor {
	return &isoDense{w: w, child: w.child.DenseRow(sel), byRow: true}
}
func (w *IsometricOp) DenseColumn(sel tatamigo.Selection) tatamigo.DenseExtractor {
	return &isoDense{w: w, child: w.child.DenseColumn(sel), byRow: false}
}
func (w *IsometricOp) SparseRow(sel tatamigo.Selection) tatamigo.SparseExtractor {
	if w.Sparse() {
		return &isoSparsePreserving{w: w, child: w.child.SparseRow(sel), byRow: true}
	}
	return &isoSparseSynthesized{w: w, child: w.child.DenseRow(sel), byRow: true}
}
func (w *IsometricOp) SparseColumn(sel tatamigo.Selection) tatamigo.SparseExtractor {
	if w.Sparse() {
		return &isoSparsePreserving{w: w, child: w.child.SparseColumn(sel), byRow: false}
	}
	return &isoSparseSynthesized{w: w, child: w.child.DenseColumn(sel), byRow: false}
}

// isoDense transforms every fetched value through the operator.
type isoDense struct {
	w     *IsometricOp
	child tatamigo.DenseExtractor
	byRow bool
}

func (e *isoDense) Selection() tatamigo.Selection { return e.child.Selection() }
func (e *isoDense) SetOracle(o tatamigo.Oracle)   { e.child.SetOracle(o) }
func (e *isoDense) Fetch(i int, buf []float64) []float64 {
	vals := e.child.Fetch(i, buf)
	sel := e.child.Selection()
	n := sel.Len()
	out := ensureFloats(buf, n)
	if n > 0 && &out[0] != &vals[0] {
		copy(out, vals)
	}
	if vec, ok := e.w.op.(vectorized); ok {
		vec.ApplyVector(e.byRow, i, secondaryIndices(sel), out)
		return out
	}
	for k := 0; k < n; k++ {
		r, c := coordsOf(e.byRow, i, sel.At(k))
		out[k] = e.w.op.Apply(r, c, out[k])
	}
	return out
}

// secondaryIndices materializes a selection's logical indices, needed by
// vectorized.ApplyVector to gather a mismatched-axis vector operand.
func secondaryIndices(sel tatamigo.Selection) []int {
	if sel.Kind == tatamigo.SelectIndex {
		return sel.Indices
	}
	out := make([]int, sel.Len())
	for k := range out {
		out[k] = sel.At(k)
	}
	return out
}

func coordsOf(byRow bool, i, secondary int) (r, c int) {
	if byRow {
		return i, secondary
	}
	return secondary, i
}

// isoSparsePreserving transforms only the stored non-zero values, per
// §4.G "sparse extraction transforms only the non-zero values, leaving
// indices untouched".
type isoSparsePreserving struct {
	w     *IsometricOp
	child tatamigo.SparseExtractor
	byRow bool
}

func (e *isoSparsePreserving) Selection() tatamigo.Selection { return e.child.Selection() }
func (e *isoSparsePreserving) SetOracle(o tatamigo.Oracle)   { e.child.SetOracle(o) }
func (e *isoSparsePreserving) FetchSparse(i int, vbuf []float64, ibuf []int) tatamigo.SparseRange {
	r := e.child.FetchSparse(i, vbuf, ibuf)
	sel := e.child.Selection()
	for k := 0; k < r.N; k++ {
		secondary := sel.At(r.Indices[k])
		row, col := coordsOf(e.byRow, i, secondary)
		r.Values[k] = e.w.op.Apply(row, col, r.Values[k])
	}
	return r
}

// isoSparseSynthesized materializes a fully-populated range for
// non-sparsity-preserving operators (§4.G).
type isoSparseSynthesized struct {
	w     *IsometricOp
	child tatamigo.DenseExtractor
	byRow bool
}

func (e *isoSparseSynthesized) Selection() tatamigo.Selection { return e.child.Selection() }
func (e *isoSparseSynthesized) SetOracle(o tatamigo.Oracle)   { e.child.SetOracle(o) }
func (e *isoSparseSynthesized) FetchSparse(i int, vbuf []float64, ibuf []int) tatamigo.SparseRange {
	vals := e.child.Fetch(i, vbuf)
	sel := e.child.Selection()
	n := sel.Len()
	vout := ensureFloats(vbuf, n)
	if n > 0 && &vout[0] != &vals[0] {
		copy(vout, vals)
	}
	iout := ensureInts(ibuf, n)
	if vec, ok := e.w.op.(vectorized); ok {
		vec.ApplyVector(e.byRow, i, secondaryIndices(sel), vout)
		for k := 0; k < n; k++ {
			iout[k] = k
		}
		return tatamigo.SparseRange{N: n, Values: vout, Indices: iout}
	}
	for k := 0; k < n; k++ {
		r, c := coordsOf(e.byRow, i, sel.At(k))
		vout[k] = e.w.op.Apply(r, c, vout[k])
		iout[k] = k
	}
	return tatamigo.SparseRange{N: n, Values: vout, Indices: iout}
}
