package tatamigo

import "gonum.org/v1/gonum/mat"

// SparseRange is an immutable view over a contiguous portion of an extractor's
// output buffers: count, values and indices (§3 Sparse range). It is valid
// until the next call on the same extractor; the pointed-to slices may be
// either the buffers the caller passed in or an interior array owned by the
// matrix itself, mirroring the dense "pointer may or may not equal the
// supplied buffer" convention (§4.A).
type SparseRange struct {
	N       int
	Values  []float64
	Indices []int
}

// Len reports the number of entries in the range.
func (r SparseRange) Len() int { return r.N }

// SelectionKind distinguishes the three forms a selection along the
// secondary/constrained axis may take (§4.A).
type SelectionKind int

const (
	// SelectFull selects the entire axis.
	SelectFull SelectionKind = iota
	// SelectBlock selects a contiguous [Start, Start+Length) range.
	SelectBlock
	// SelectIndex selects an arbitrary ascending set of indices.
	SelectIndex
)

// Selection describes how an extractor constrains the non-primary axis.
type Selection struct {
	Kind    SelectionKind
	Start   int
	Length  int
	Indices []int
}

// FullSelection selects an entire axis of the given length.
func FullSelection(length int) Selection {
	return Selection{Kind: SelectFull, Start: 0, Length: length}
}

// BlockSelection selects the contiguous range [start, start+length).
func BlockSelection(start, length int) Selection {
	return Selection{Kind: SelectBlock, Start: start, Length: length}
}

// IndexSelection selects an arbitrary, strictly ascending set of indices.
// The caller retains ownership of idx; implementations do not mutate it.
func IndexSelection(idx []int) Selection {
	return Selection{Kind: SelectIndex, Start: 0, Length: len(idx), Indices: idx}
}

// Span returns the [first, last) extent of the selection in the space of the
// constrained axis, i.e. the half-open range of logical indices it covers.
func (s Selection) Span() (first, last int) {
	switch s.Kind {
	case SelectBlock:
		return s.Start, s.Start + s.Length
	case SelectIndex:
		if len(s.Indices) == 0 {
			return 0, 0
		}
		return s.Indices[0], s.Indices[len(s.Indices)-1] + 1
	default: // SelectFull
		return 0, s.Length
	}
}

// Len returns the number of logical positions covered by the selection.
func (s Selection) Len() int {
	if s.Kind == SelectIndex {
		return len(s.Indices)
	}
	return s.Length
}

// At returns the i'th logical index covered by the selection.
func (s Selection) At(i int) int {
	switch s.Kind {
	case SelectBlock:
		return s.Start + i
	case SelectIndex:
		return s.Indices[i]
	default:
		return i
	}
}

// Oracle is a finite sequence of primary-axis indices representing the future
// access order for an extractor (§3, §4.K).
type Oracle interface {
	// Total reports the length of the predicted sequence.
	Total() int
	// Get returns the i'th predicted index.
	Get(i int) int
}

// Extractor is the common surface of every dense and sparse extractor: it
// reports its own selection metadata and optionally accepts an Oracle
// (§4.A responsibilities 1 and 3).
type Extractor interface {
	// Selection reports the selection this extractor was constructed with.
	Selection() Selection

	// SetOracle binds a predicted future access sequence. Once set,
	// subsequent Fetch/FetchSparse calls must use indices drawn from the
	// oracle, in order (§3 Oracle invariant).
	SetOracle(o Oracle)
}

// DenseExtractor fetches dense vectors along one axis of a Matrix.
type DenseExtractor interface {
	Extractor

	// Fetch returns the extracted values for primary-axis position i. The
	// returned slice is either buf (written in place) or an internal slice
	// owned by the matrix; it is valid until the next call to Fetch on this
	// extractor (§4.A "buffer may or may not be used" convention).
	Fetch(i int, buf []float64) []float64
}

// SparseExtractor fetches sparse vectors along one axis of a Matrix.
type SparseExtractor interface {
	Extractor

	// FetchSparse returns the extracted non-zero values for primary-axis
	// position i, with indices in strictly ascending order within the
	// selection. vbuf/ibuf follow the same ownership convention as Fetch.
	FetchSparse(i int, vbuf []float64, ibuf []int) SparseRange
}

// Matrix is the single polymorphic surface every backing storage and every
// delayed wrapper implements (§4.A). It embeds gonum's mat.Matrix so any
// Matrix interoperates directly with the wider gonum ecosystem.
type Matrix interface {
	mat.Matrix

	// NRow and NCol report the matrix shape. Dims() (inherited from
	// mat.Matrix) returns the same values as (NRow(), NCol()).
	NRow() int
	NCol() int

	// Sparse reports whether secondary-axis fetches should prefer sparse
	// extraction paths.
	Sparse() bool

	// PreferRows reports which axis is cheaper to iterate along.
	PreferRows() bool

	// UsesOracle reports whether an oracle materially improves performance
	// for the given axis (true means row, false means column).
	UsesOracle(row bool) bool

	// DenseRow, DenseColumn, SparseRow and SparseColumn construct extractors
	// bound to this matrix for the requested axis, density and selection.
	DenseRow(sel Selection) DenseExtractor
	DenseColumn(sel Selection) DenseExtractor
	SparseRow(sel Selection) SparseExtractor
	SparseColumn(sel Selection) SparseExtractor
}
