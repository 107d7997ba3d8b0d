package delayed

import (
	"github.com/jbowman-labs/tatamigo"
	"gonum.org/v1/gonum/mat"
)

// Subset wraps a child matrix, replacing one axis with an arbitrary
// (possibly unordered, possibly duplicated) index vector into the child's
// corresponding axis (§4.F). When the index vector happens to be sorted with
// no duplicates and in fact contiguous, NewSubset still works correctly but
// SubsetBlock (or NewSubsetAuto) is the cheaper specialisation.
type Subset struct {
	child   tatamigo.Matrix
	onRows  bool
	indices []int
}

var _ tatamigo.Matrix = (*Subset)(nil)

// NewSubset subsets the child's rows (onRows true) or columns (onRows
// false) by indices, which the caller retains ownership of.
func NewSubset(child tatamigo.Matrix, onRows bool, indices []int) *Subset {
	return &Subset{child: child, onRows: onRows, indices: indices}
}

// NewSubsetAuto returns a SubsetBlock when indices happens to be a sorted,
// duplicate-free, contiguous run, and a general Subset otherwise -
// supplementing the source library's dedicated "already sorted, no
// duplicates" fast path (see original_source/) as an automatic dispatch
// rather than a distinct exported type.
func NewSubsetAuto(child tatamigo.Matrix, onRows bool, indices []int) tatamigo.Matrix {
	if isContiguousRun(indices) {
		first := 0
		if len(indices) > 0 {
			first = indices[0]
		}
		return NewSubsetBlock(child, onRows, first, first+len(indices))
	}
	return NewSubset(child, onRows, indices)
}

func isContiguousRun(indices []int) bool {
	for k := 1; k < len(indices); k++ {
		if indices[k] != indices[k-1]+1 {
			return false
		}
	}
	return true
}

func (s *Subset) subAxisLen() int { return len(s.indices) }

func (s *Subset) Dims() (int, int) {
	if s.onRows {
		return s.subAxisLen(), s.child.NCol()
	}
	return s.child.NRow(), s.subAxisLen()
}
func (s *Subset) NRow() int { r, _ := s.Dims(); return r }
func (s *Subset) NCol() int { _, c := s.Dims(); return c }

func (s *Subset) Sparse() bool     { return s.child.Sparse() }
func (s *Subset) PreferRows() bool { return s.child.PreferRows() }
func (s *Subset) UsesOracle(row bool) bool { return s.child.UsesOracle(row) }

func (s *Subset) At(i, j int) float64 {
	if s.onRows {
		return s.child.At(s.indices[i], j)
	}
	return s.child.At(i, s.indices[j])
}

func (s *Subset) T() mat.Matrix { return NewTranspose(s) }

func (s *Subset) DenseRow(sel tatamigo.Selection) tatamigo.DenseExtractor {
	return s.buildDense(true, sel)
}
func (s *Subset) DenseColumn(sel tatamigo.Selection) tatamigo.DenseExtractor {
	return s.buildDense(false, sel)
}
func (s *Subset) SparseRow(sel tatamigo.Selection) tatamigo.SparseExtractor {
	return s.buildSparse(true, sel)
}
func (s *Subset) SparseColumn(sel tatamigo.Selection) tatamigo.SparseExtractor {
	return s.buildSparse(false, sel)
}

func (s *Subset) buildDense(requestRow bool, sel tatamigo.Selection) tatamigo.DenseExtractor {
	if requestRow == s.onRows {
		var child tatamigo.DenseExtractor
		if requestRow {
			child = s.child.DenseRow(sel)
		} else {
			child = s.child.DenseColumn(sel)
		}
		return &subsetForwardDense{s: s, child: child}
	}
	return newSubsetGatherDense(s, requestRow, sel)
}

func (s *Subset) buildSparse(requestRow bool, sel tatamigo.Selection) tatamigo.SparseExtractor {
	if requestRow == s.onRows {
		var child tatamigo.SparseExtractor
		if requestRow {
			child = s.child.SparseRow(sel)
		} else {
			child = s.child.SparseColumn(sel)
		}
		return &subsetForwardSparse{s: s, child: child}
	}
	return newSubsetGatherSparse(s, requestRow, sel)
}

// --- subsetted-axis forwarding (i -> indices[i]) ---

type subsetForwardDense struct {
	s     *Subset
	child tatamigo.DenseExtractor
}

func (e *subsetForwardDense) Selection() tatamigo.Selection { return e.child.Selection() }
func (e *subsetForwardDense) SetOracle(o tatamigo.Oracle) {
	e.child.SetOracle(remapOracle{inner: o, at: func(i int) int { return e.s.indices[i] }})
}
func (e *subsetForwardDense) Fetch(i int, buf []float64) []float64 {
	return e.child.Fetch(e.s.indices[i], buf)
}

type subsetForwardSparse struct {
	s     *Subset
	child tatamigo.SparseExtractor
}

func (e *subsetForwardSparse) Selection() tatamigo.Selection { return e.child.Selection() }
func (e *subsetForwardSparse) SetOracle(o tatamigo.Oracle) {
	e.child.SetOracle(remapOracle{inner: o, at: func(i int) int { return e.s.indices[i] }})
}
func (e *subsetForwardSparse) FetchSparse(i int, vbuf []float64, ibuf []int) tatamigo.SparseRange {
	return e.child.FetchSparse(e.s.indices[i], vbuf, ibuf)
}

// --- other-axis gather (run detection over consecutive child indices) ---

type subsetRun struct {
	childStart int
	length     int
	localStart int
}

func computeRuns(indices []int, sel tatamigo.Selection) []subsetRun {
	n := sel.Len()
	var runs []subsetRun
	k := 0
	for k < n {
		v := indices[sel.At(k)]
		localStart := k
		length := 1
		k++
		for k < n && indices[sel.At(k)] == v+1 {
			v++
			length++
			k++
		}
		runs = append(runs, subsetRun{childStart: v - length + 1, length: length, localStart: localStart})
	}
	return runs
}

// subsetGatherDense holds one child dense extractor per run (§4.F "gather the
// other axis"), built once at construction and reused across every Fetch
// call rather than rebuilt per call: the runs themselves don't change, only
// the primary index i being fetched does.
type subsetGatherDense struct {
	runs     []subsetRun
	n        int
	children []tatamigo.DenseExtractor
}

func newSubsetGatherDense(s *Subset, requestRow bool, sel tatamigo.Selection) *subsetGatherDense {
	runs := computeRuns(s.indices, sel)
	children := make([]tatamigo.DenseExtractor, len(runs))
	for k, r := range runs {
		block := tatamigo.BlockSelection(r.childStart, r.length)
		if requestRow {
			children[k] = s.child.DenseRow(block)
		} else {
			children[k] = s.child.DenseColumn(block)
		}
	}
	return &subsetGatherDense{runs: runs, n: sel.Len(), children: children}
}

func (e *subsetGatherDense) Selection() tatamigo.Selection { return tatamigo.FullSelection(e.n) }

// SetOracle forwards the oracle to every run's child extractor unchanged:
// the primary index i is not remapped on the gather axis, only the
// secondary-axis run windows differ between children.
func (e *subsetGatherDense) SetOracle(o tatamigo.Oracle) {
	for _, c := range e.children {
		c.SetOracle(o)
	}
}

func (e *subsetGatherDense) Fetch(i int, buf []float64) []float64 {
	out := ensureFloats(buf, e.n)
	for k, r := range e.runs {
		vals := e.children[k].Fetch(i, nil)
		copy(out[r.localStart:r.localStart+r.length], vals)
	}
	return out
}

// subsetGatherSparse is subsetGatherDense's sparse counterpart: one child
// sparse extractor per run, built once and reused across every FetchSparse.
type subsetGatherSparse struct {
	runs     []subsetRun
	n        int
	children []tatamigo.SparseExtractor
}

func newSubsetGatherSparse(s *Subset, requestRow bool, sel tatamigo.Selection) *subsetGatherSparse {
	runs := computeRuns(s.indices, sel)
	children := make([]tatamigo.SparseExtractor, len(runs))
	for k, r := range runs {
		block := tatamigo.BlockSelection(r.childStart, r.length)
		if requestRow {
			children[k] = s.child.SparseRow(block)
		} else {
			children[k] = s.child.SparseColumn(block)
		}
	}
	return &subsetGatherSparse{runs: runs, n: sel.Len(), children: children}
}

func (e *subsetGatherSparse) Selection() tatamigo.Selection { return tatamigo.FullSelection(e.n) }

func (e *subsetGatherSparse) SetOracle(o tatamigo.Oracle) {
	for _, c := range e.children {
		c.SetOracle(o)
	}
}

func (e *subsetGatherSparse) FetchSparse(i int, vbuf []float64, ibuf []int) tatamigo.SparseRange {
	vout := ensureFloats(vbuf, 0)[:0]
	iout := ensureInts(ibuf, 0)[:0]
	count := 0
	for k, r := range e.runs {
		rr := e.children[k].FetchSparse(i, nil, nil)
		for j := 0; j < rr.N; j++ {
			if count == len(vout) {
				vout = append(vout, 0)
				iout = append(iout, 0)
			}
			vout[count] = rr.Values[j]
			iout[count] = r.localStart + rr.Indices[j]
			count++
		}
	}
	return tatamigo.SparseRange{N: count, Values: vout[:count], Indices: iout[:count]}
}

// SubsetBlock specialises Subset to a single contiguous [first, last) region
// of the child, forwarded with a constant offset shift rather than a
// per-index lookup (§4.F).
type SubsetBlock struct {
	child        tatamigo.Matrix
	onRows       bool
	first, last  int
}

var _ tatamigo.Matrix = (*SubsetBlock)(nil)

// NewSubsetBlock subsets the child's rows or columns to [first, last).
func NewSubsetBlock(child tatamigo.Matrix, onRows bool, first, last int) *SubsetBlock {
	return &SubsetBlock{child: child, onRows: onRows, first: first, last: last}
}

func (s *SubsetBlock) length() int { return s.last - s.first }

func (s *SubsetBlock) Dims() (int, int) {
	if s.onRows {
		return s.length(), s.child.NCol()
	}
	return s.child.NRow(), s.length()
}
func (s *SubsetBlock) NRow() int                { r, _ := s.Dims(); return r }
func (s *SubsetBlock) NCol() int                { _, c := s.Dims(); return c }
func (s *SubsetBlock) Sparse() bool             { return s.child.Sparse() }
func (s *SubsetBlock) PreferRows() bool         { return s.child.PreferRows() }
func (s *SubsetBlock) UsesOracle(row bool) bool { return s.child.UsesOracle(row) }

func (s *SubsetBlock) At(i, j int) float64 {
	if s.onRows {
		return s.child.At(s.first+i, j)
	}
	return s.child.At(i, s.first+j)
}

func (s *SubsetBlock) T() mat.Matrix { return NewTranspose(s) }

func (s *SubsetBlock) DenseRow(sel tatamigo.Selection) tatamigo.DenseExtractor {
	if s.onRows {
		return &subsetBlockShiftDense{child: s.child.DenseRow(sel), shift: s.first}
	}
	return &subsetBlockShiftDense{child: s.child.DenseRow(shiftSelection(sel, s.first)), shift: 0}
}
func (s *SubsetBlock) DenseColumn(sel tatamigo.Selection) tatamigo.DenseExtractor {
	if !s.onRows {
		return &subsetBlockShiftDense{child: s.child.DenseColumn(sel), shift: s.first}
	}
	return &subsetBlockShiftDense{child: s.child.DenseColumn(shiftSelection(sel, s.first)), shift: 0}
}
func (s *SubsetBlock) SparseRow(sel tatamigo.Selection) tatamigo.SparseExtractor {
	if s.onRows {
		return &subsetBlockShiftSparse{child: s.child.SparseRow(sel), shift: s.first}
	}
	return &subsetBlockShiftSparse{child: s.child.SparseRow(shiftSelection(sel, s.first))}
}
func (s *SubsetBlock) SparseColumn(sel tatamigo.Selection) tatamigo.SparseExtractor {
	if !s.onRows {
		return &subsetBlockShiftSparse{child: s.child.SparseColumn(sel), shift: s.first}
	}
	return &subsetBlockShiftSparse{child: s.child.SparseColumn(shiftSelection(sel, s.first))}
}

// shiftSelection translates a selection on the gather axis into the child's
// coordinate space by adding first.
func shiftSelection(sel tatamigo.Selection, first int) tatamigo.Selection {
	switch sel.Kind {
	case tatamigo.SelectBlock:
		return tatamigo.BlockSelection(sel.Start+first, sel.Length)
	case tatamigo.SelectIndex:
		shifted := make([]int, len(sel.Indices))
		for k, v := range sel.Indices {
			shifted[k] = v + first
		}
		return tatamigo.IndexSelection(shifted)
	default: // SelectFull
		return tatamigo.BlockSelection(first, sel.Length)
	}
}

// subsetBlockShiftDense forwards Fetch(i,...) with i+shift (subsetted-axis
// case) or transparently (gather case, where the selection shift was
// already folded into the child selection at construction time).
type subsetBlockShiftDense struct {
	child tatamigo.DenseExtractor
	shift int
}

func (e *subsetBlockShiftDense) Selection() tatamigo.Selection { return e.child.Selection() }
func (e *subsetBlockShiftDense) SetOracle(o tatamigo.Oracle) {
	if e.shift == 0 {
		e.child.SetOracle(o)
		return
	}
	e.child.SetOracle(remapOracle{inner: o, at: func(i int) int { return i + e.shift }})
}
func (e *subsetBlockShiftDense) Fetch(i int, buf []float64) []float64 {
	return e.child.Fetch(i+e.shift, buf)
}

type subsetBlockShiftSparse struct {
	child tatamigo.SparseExtractor
	shift int
}

func (e *subsetBlockShiftSparse) Selection() tatamigo.Selection { return e.child.Selection() }
func (e *subsetBlockShiftSparse) SetOracle(o tatamigo.Oracle) {
	if e.shift == 0 {
		e.child.SetOracle(o)
		return
	}
	e.child.SetOracle(remapOracle{inner: o, at: func(i int) int { return i + e.shift }})
}
func (e *subsetBlockShiftSparse) FetchSparse(i int, vbuf []float64, ibuf []int) tatamigo.SparseRange {
	return e.child.FetchSparse(i+e.shift, vbuf, ibuf)
}
