package delayed

import (
	"github.com/jbowman-labs/tatamigo"
	"gonum.org/v1/gonum/mat"
)

// Bind concatenates an ordered list of matrices of matching shape on the
// non-bound axis along the bound axis (§4.H). fetch(i,...) locates the
// child whose cumulative range contains i and forwards with the local
// index; requests along the non-bound axis gather across children, with
// reported sparse indices shifted into the concatenated coordinate space.
type Bind struct {
	children []tatamigo.Matrix
	onRows   bool
	cum      []int // length len(children)+1, cum[k] is the bound-axis offset of children[k]
}

var _ tatamigo.Matrix = (*Bind)(nil)

// NewBind binds children along rows (onRows true) or columns (onRows
// false). Children must agree on the other axis's length; this is not
// re-validated here (mirrors the teacher's constructors, which trust
// caller-supplied slices).
func NewBind(children []tatamigo.Matrix, onRows bool) *Bind {
	cum := make([]int, len(children)+1)
	for k, c := range children {
		n := c.NCol()
		if onRows {
			n = c.NRow()
		}
		cum[k+1] = cum[k] + n
	}
	return &Bind{children: children, onRows: onRows, cum: cum}
}

func (b *Bind) boundLen() int { return b.cum[len(b.cum)-1] }

func (b *Bind) Dims() (int, int) {
	if len(b.children) == 0 {
		return 0, 0
	}
	other := b.children[0].NCol()
	if b.onRows {
		return b.boundLen(), other
	}
	other = b.children[0].NRow()
	return other, b.boundLen()
}
func (b *Bind) NRow() int { r, _ := b.Dims(); return r }
func (b *Bind) NCol() int { _, c := b.Dims(); return c }

// locate finds the child owning bound-axis position i and its local index.
func (b *Bind) locate(i int) (childIdx, local int) {
	lo, hi := 0, len(b.children)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.cum[mid] <= i {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, i - b.cum[lo]
}

func (b *Bind) Sparse() bool {
	for _, c := range b.children {
		if !c.Sparse() {
			return false
		}
	}
	return true
}

// PreferRows reports a fractional majority vote across children weighted by
// their contribution along the bound axis (§4.H).
func (b *Bind) PreferRows() bool {
	total := float64(b.boundLen())
	if total == 0 {
		return b.onRows
	}
	var trueWeight float64
	for k, c := range b.children {
		w := float64(b.cum[k+1]-b.cum[k]) / total
		if c.PreferRows() {
			trueWeight += w
		}
	}
	return trueWeight >= 0.5
}

func (b *Bind) UsesOracle(row bool) bool {
	for _, c := range b.children {
		if c.UsesOracle(row) {
			return true
		}
	}
	return false
}

func (b *Bind) At(i, j int) float64 {
	if b.onRows {
		ci, li := b.locate(i)
		return b.children[ci].At(li, j)
	}
	cj, lj := b.locate(j)
	return b.children[cj].At(i, lj)
}

func (b *Bind) T() mat.Matrix { return NewTranspose(b) }

func (b *Bind) DenseRow(sel tatamigo.Selection) tatamigo.DenseExtractor {
	return b.buildDense(true, sel)
}
func (b *Bind) DenseColumn(sel tatamigo.Selection) tatamigo.DenseExtractor {
	return b.buildDense(false, sel)
}
func (b *Bind) SparseRow(sel tatamigo.Selection) tatamigo.SparseExtractor {
	return b.buildSparse(true, sel)
}
func (b *Bind) SparseColumn(sel tatamigo.Selection) tatamigo.SparseExtractor {
	return b.buildSparse(false, sel)
}

func (b *Bind) buildDense(requestRow bool, sel tatamigo.Selection) tatamigo.DenseExtractor {
	if requestRow == b.onRows {
		children := make([]tatamigo.DenseExtractor, len(b.children))
		for k, c := range b.children {
			if requestRow {
				children[k] = c.DenseRow(sel)
			} else {
				children[k] = c.DenseColumn(sel)
			}
		}
		return &bindPrimaryDense{b: b, children: children}
	}
	return &bindGatherDense{b: b, requestRow: requestRow, plans: splitByChild(sel, b.cum), n: sel.Len()}
}

func (b *Bind) buildSparse(requestRow bool, sel tatamigo.Selection) tatamigo.SparseExtractor {
	if requestRow == b.onRows {
		children := make([]tatamigo.SparseExtractor, len(b.children))
		for k, c := range b.children {
			if requestRow {
				children[k] = c.SparseRow(sel)
			} else {
				children[k] = c.SparseColumn(sel)
			}
		}
		return &bindPrimarySparse{b: b, children: children}
	}
	return &bindGatherSparse{b: b, requestRow: requestRow, plans: splitByChild(sel, b.cum), n: sel.Len()}
}

// --- bound-axis forwarding: locate child, forward local index ---

type childOracleSlice struct{ seq []int }

func (s childOracleSlice) Total() int    { return len(s.seq) }
func (s childOracleSlice) Get(i int) int { return s.seq[i] }

func splitOracle(b *Bind, o tatamigo.Oracle) [][]int {
	perChild := make([][]int, len(b.children))
	for k := 0; k < o.Total(); k++ {
		ci, local := b.locate(o.Get(k))
		perChild[ci] = append(perChild[ci], local)
	}
	return perChild
}

type bindPrimaryDense struct {
	b        *Bind
	children []tatamigo.DenseExtractor
}

func (e *bindPrimaryDense) Selection() tatamigo.Selection { return e.children[0].Selection() }
func (e *bindPrimaryDense) SetOracle(o tatamigo.Oracle) {
	for k, seq := range splitOracle(e.b, o) {
		e.children[k].SetOracle(childOracleSlice{seq: seq})
	}
}
func (e *bindPrimaryDense) Fetch(i int, buf []float64) []float64 {
	ci, li := e.b.locate(i)
	return e.children[ci].Fetch(li, buf)
}

type bindPrimarySparse struct {
	b        *Bind
	children []tatamigo.SparseExtractor
}

func (e *bindPrimarySparse) Selection() tatamigo.Selection { return e.children[0].Selection() }
func (e *bindPrimarySparse) SetOracle(o tatamigo.Oracle) {
	for k, seq := range splitOracle(e.b, o) {
		e.children[k].SetOracle(childOracleSlice{seq: seq})
	}
}
func (e *bindPrimarySparse) FetchSparse(i int, vbuf []float64, ibuf []int) tatamigo.SparseRange {
	ci, li := e.b.locate(i)
	return e.children[ci].FetchSparse(li, vbuf, ibuf)
}

// --- non-bound-axis gather: split the selection across child boundaries ---

type bindChildPlan struct {
	childIdx   int
	sel        tatamigo.Selection
	localStart int
}

func splitByChild(sel tatamigo.Selection, cum []int) []bindChildPlan {
	var plans []bindChildPlan
	switch sel.Kind {
	case tatamigo.SelectFull:
		for k := 0; k < len(cum)-1; k++ {
			plans = append(plans, bindChildPlan{childIdx: k, sel: tatamigo.FullSelection(cum[k+1] - cum[k]), localStart: cum[k]})
		}
	case tatamigo.SelectBlock:
		start, length := sel.Start, sel.Length
		for k := 0; k < len(cum)-1; k++ {
			a := max(start, cum[k])
			bnd := min(start+length, cum[k+1])
			if bnd <= a {
				continue
			}
			plans = append(plans, bindChildPlan{childIdx: k, sel: tatamigo.BlockSelection(a-cum[k], bnd-a), localStart: a - start})
		}
	default: // SelectIndex
		k := 0
		child := 0
		for k < len(sel.Indices) {
			for child < len(cum)-1 && sel.Indices[k] >= cum[child+1] {
				child++
			}
			if child >= len(cum)-1 {
				break
			}
			start := k
			var local []int
			for k < len(sel.Indices) && sel.Indices[k] < cum[child+1] {
				local = append(local, sel.Indices[k]-cum[child])
				k++
			}
			plans = append(plans, bindChildPlan{childIdx: child, sel: tatamigo.IndexSelection(local), localStart: start})
		}
	}
	return plans
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

type bindGatherDense struct {
	b          *Bind
	requestRow bool
	plans      []bindChildPlan
	n          int
	oracle     tatamigo.Oracle
}

func (e *bindGatherDense) Selection() tatamigo.Selection { return tatamigo.FullSelection(e.n) }
func (e *bindGatherDense) SetOracle(o tatamigo.Oracle)    { e.oracle = o }
func (e *bindGatherDense) Fetch(i int, buf []float64) []float64 {
	out := ensureFloats(buf, e.n)
	for _, p := range e.plans {
		child := e.b.children[p.childIdx]
		var vals []float64
		if e.requestRow {
			vals = child.DenseRow(p.sel).Fetch(i, nil)
		} else {
			vals = child.DenseColumn(p.sel).Fetch(i, nil)
		}
		copy(out[p.localStart:p.localStart+p.sel.Len()], vals)
	}
	return out
}

type bindGatherSparse struct {
	b          *Bind
	requestRow bool
	plans      []bindChildPlan
	n          int
	oracle     tatamigo.Oracle
}

func (e *bindGatherSparse) Selection() tatamigo.Selection { return tatamigo.FullSelection(e.n) }
func (e *bindGatherSparse) SetOracle(o tatamigo.Oracle)    { e.oracle = o }
func (e *bindGatherSparse) FetchSparse(i int, vbuf []float64, ibuf []int) tatamigo.SparseRange {
	vout := ensureFloats(vbuf, 0)[:0]
	iout := ensureInts(ibuf, 0)[:0]
	count := 0
	for _, p := range e.plans {
		child := e.b.children[p.childIdx]
		var r tatamigo.SparseRange
		if e.requestRow {
			r = child.SparseRow(p.sel).FetchSparse(i, nil, nil)
		} else {
			r = child.SparseColumn(p.sel).FetchSparse(i, nil, nil)
		}
		for k := 0; k < r.N; k++ {
			if count == len(vout) {
				vout = append(vout, 0)
				iout = append(iout, 0)
			}
			vout[count] = r.Values[k]
			iout[count] = p.localStart + r.Indices[k]
			count++
		}
	}
	return tatamigo.SparseRange{N: count, Values: vout[:count], Indices: iout[:count]}
}
