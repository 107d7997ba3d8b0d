package chunked

import (
	"github.com/jbowman-labs/tatamigo"
	"github.com/jbowman-labs/tatamigo/delayed"
	"gonum.org/v1/gonum/mat"
)

// ChunkSource supplies the decoded contents of a chunk grid on demand (§3
// Chunk grid, §6 Chunk interface). Load fills dst in place so callers can
// reuse a chunk's allocation across calls, mirroring the cache's own
// slab-reuse discipline.
type ChunkSource interface {
	Load(chunkRow, chunkCol int, dst *Chunk) error
}

// Matrix is backed by a grid of chunks loaded on demand through a
// ChunkSource, combining the chunk extraction primitives (§4.I), the LRU
// cache (§4.J) and the oracle cache (§4.L) into the full Matrix contract
// (§4.M).
type Matrix struct {
	nrow, ncol           int
	chunkNRow, chunkNCol int
	source               ChunkSource
	sparse               bool
	cacheSizeBytes       int
	requireMinimum       bool
}

var _ tatamigo.Matrix = (*Matrix)(nil)

// NewMatrix builds a chunked matrix of shape (nrow, ncol) over a grid of
// chunks sized (chunkNRow, chunkNCol), backed by source. cacheSizeBytes
// bounds the memory the cache may hold; requireMinimum forces at least one
// chunk-set slab even when cacheSizeBytes would otherwise round to zero.
func NewMatrix(nrow, ncol, chunkNRow, chunkNCol int, source ChunkSource, sparse bool, cacheSizeBytes int, requireMinimum bool) *Matrix {
	return &Matrix{
		nrow: nrow, ncol: ncol,
		chunkNRow: chunkNRow, chunkNCol: chunkNCol,
		source: source, sparse: sparse,
		cacheSizeBytes: cacheSizeBytes, requireMinimum: requireMinimum,
	}
}

func (m *Matrix) Dims() (int, int) { return m.nrow, m.ncol }
func (m *Matrix) NRow() int        { return m.nrow }
func (m *Matrix) NCol() int        { return m.ncol }
func (m *Matrix) Sparse() bool     { return m.sparse }

// PreferRows reports whichever axis touches fewer chunks per single vector
// fetch (§4.M).
func (m *Matrix) PreferRows() bool {
	chunksPerRow := ceilDiv(m.ncol, m.chunkNCol)
	chunksPerCol := ceilDiv(m.nrow, m.chunkNRow)
	return chunksPerRow <= chunksPerCol
}

// UsesOracle reports that a predicted access order benefits extraction along
// either axis: the chunk grid is always worth prefetching against, on
// whichever axis the caller happens to iterate.
func (m *Matrix) UsesOracle(row bool) bool { return true }

func (m *Matrix) T() mat.Matrix { return delayed.NewTranspose(m) }

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// At loads the single owning chunk fresh and reads one element; it is not on
// the cache's fast path, mirroring the teacher's At() on its own sparse
// types, which also bypass the extractor machinery for single-element
// access.
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || i >= m.nrow {
		panic(tatamigo.ErrRowAccess)
	}
	if j < 0 || j >= m.ncol {
		panic(tatamigo.ErrColAccess)
	}
	cr, lr := i/m.chunkNRow, i%m.chunkNRow
	cc, lc := j/m.chunkNCol, j%m.chunkNCol
	scratch := &Chunk{}
	if err := m.source.Load(cr, cc, scratch); err != nil {
		panic(err)
	}
	if scratch.RowMajor {
		return scratch.storageAt(lr, lc)
	}
	return scratch.storageAt(lc, lr)
}

func (m *Matrix) DenseRow(sel tatamigo.Selection) tatamigo.DenseExtractor {
	return m.newExtractor(true, sel, false)
}
func (m *Matrix) DenseColumn(sel tatamigo.Selection) tatamigo.DenseExtractor {
	return m.newExtractor(false, sel, false)
}
func (m *Matrix) SparseRow(sel tatamigo.Selection) tatamigo.SparseExtractor {
	return m.newExtractor(true, sel, true)
}
func (m *Matrix) SparseColumn(sel tatamigo.Selection) tatamigo.SparseExtractor {
	return m.newExtractor(false, sel, true)
}

const elementSizeBytes = 8 // float64

// chunkedExtractor is the single extractor type for this matrix; it
// implements both DenseExtractor and SparseExtractor (only the methods
// matching its own sparse flag are meaningful), mirroring the dual-interface
// pattern used throughout csparse and delayed.
type chunkedExtractor struct {
	m      *Matrix
	row    bool
	sel    tatamigo.Selection
	sparse bool

	primaryChunkDim int
	primaryLen      int
	numSets         int

	lru    *LRUCache
	oc     *OracleCache
	stream *OracleStream
}

// newExtractor sizes and builds the per-extractor cache strategy (§4.M): a
// solo one-shot slab when the cache would hold zero chunk-sets, otherwise an
// LRU cache of as many chunk-set slabs as fit, swappable to an oracle cache
// once an oracle is bound.
func (m *Matrix) newExtractor(row bool, sel tatamigo.Selection, sparse bool) *chunkedExtractor {
	primaryChunkDim := m.chunkNCol
	primaryLen := m.ncol
	if row {
		primaryChunkDim = m.chunkNRow
		primaryLen = m.nrow
	}
	chunkSetSizeElements := primaryChunkDim * sel.Len()
	numSets := 0
	if chunkSetSizeElements > 0 {
		numSets = m.cacheSizeBytes / (elementSizeBytes * chunkSetSizeElements)
	}
	if numSets == 0 && m.requireMinimum {
		numSets = 1
	}

	e := &chunkedExtractor{
		m: m, row: row, sel: sel, sparse: sparse,
		primaryChunkDim: primaryChunkDim, primaryLen: primaryLen,
		numSets: numSets,
	}
	if numSets > 0 {
		e.lru = NewLRUCache(numSets, e.newSlab)
	}
	return e
}

func (e *chunkedExtractor) Selection() tatamigo.Selection { return e.sel }

func (e *chunkedExtractor) SetOracle(o tatamigo.Oracle) {
	if e.numSets <= 1 {
		return
	}
	e.stream = NewOracleStream(o)
	maxPredictions := 2 * e.numSets * e.primaryChunkDim
	e.oc = NewOracleCache(e.numSets, maxPredictions, e.stream, e.newSlab)
	e.lru = nil
}

// newSlab allocates a chunk-set slab: one stripe of primaryChunkDim primary
// positions across the full requested selection width.
func (e *chunkedExtractor) newSlab() *Chunk {
	if e.sparse {
		return &Chunk{NRow: e.primaryChunkDim, NCol: e.sel.Len(), RowMajor: true, Sparse: true}
	}
	return &Chunk{NRow: e.primaryChunkDim, NCol: e.sel.Len(), RowMajor: true, Dense: make([]float64, e.primaryChunkDim*e.sel.Len())}
}

// slabFor obtains the chunk-set slab covering primary position i and the
// offset of i within it, via whichever cache strategy is active.
func (e *chunkedExtractor) slabFor(i int) (*Chunk, int) {
	if e.numSets == 0 {
		slab := e.newSlab()
		e.populate(i/e.primaryChunkDim, slab)
		return slab, i % e.primaryChunkDim
	}
	if e.oc != nil {
		return e.oc.NextChunk(
			func(predicted int) (int, int) { return predicted / e.primaryChunkDim, predicted % e.primaryChunkDim },
			func(slab *Chunk) {},
			func(needed, chunkIDs []int, nxt []*Chunk) {
				for k, slot := range needed {
					e.populate(chunkIDs[k], nxt[slot])
				}
			},
		)
	}
	slab := e.lru.Find(i/e.primaryChunkDim, func(chunkID int, slab *Chunk) {
		e.populate(chunkID, slab)
	})
	return slab, i % e.primaryChunkDim
}

// chunkSecondary records, for one grid chunk intersecting the extractor's
// secondary selection, the chunk-local secondary positions to read (either a
// contiguous [lo,hi) range for SelectFull/SelectBlock, or an explicit
// chunk-local index list for SelectIndex) and where the results land in the
// slab's packed output (outOffset).
type chunkSecondary struct {
	local     []int
	lo, hi, n int
	outOffset int
}

// secondaryPerChunk walks chunks in secondary order once, splitting the
// extractor's selection across chunk boundaries (§4.I/§4.M): a SelectIndex
// selection's ascending global indices are partitioned into the per-chunk
// subsets that fall within each chunk's secondary range and translated to
// chunk-local positions, mirroring how the block case narrows [first,last)
// to each chunk's [chunkSecStart, chunkSecStart+secChunkDim) overlap.
func (e *chunkedExtractor) secondaryPerChunk(chunks []*Chunk, firstChunk, secChunkDim, first, last int) []chunkSecondary {
	meta := make([]chunkSecondary, len(chunks))
	outOffset := 0
	idxPos := 0
	for k := range chunks {
		cidx := firstChunk + k
		chunkSecStart := cidx * secChunkDim
		chunkSecEnd := chunkSecStart + secChunkDim
		if e.sel.Kind == tatamigo.SelectIndex {
			start := idxPos
			for idxPos < len(e.sel.Indices) && e.sel.Indices[idxPos] < chunkSecEnd {
				idxPos++
			}
			local := make([]int, idxPos-start)
			for i, g := range e.sel.Indices[start:idxPos] {
				local[i] = g - chunkSecStart
			}
			meta[k] = chunkSecondary{local: local, n: len(local), outOffset: outOffset}
			outOffset += len(local)
			continue
		}
		lo := max(first, chunkSecStart)
		hi := min(last, chunkSecEnd)
		meta[k] = chunkSecondary{lo: lo - chunkSecStart, hi: hi - chunkSecStart, n: hi - lo, outOffset: outOffset}
		outOffset += hi - lo
	}
	return meta
}

// populate fills slab with the chunk-set stripe at primary-chunk index
// stripeIdx, iterating across every grid chunk that intersects the
// extractor's secondary selection (§4.M "populating a slab"). The
// SelectIndex case dispatches to the index extraction primitives so that a
// non-contiguous selection never falls back to pulling a wider contiguous
// span than the slab was sized to hold.
func (e *chunkedExtractor) populate(stripeIdx int, slab *Chunk) {
	primaryStart := stripeIdx * e.primaryChunkDim
	primaryLen := e.primaryChunkDim
	if primaryStart+primaryLen > e.primaryLen {
		primaryLen = e.primaryLen - primaryStart
	}
	slab.NRow = primaryLen

	secChunkDim := e.m.chunkNRow
	if e.row {
		secChunkDim = e.m.chunkNCol
	}

	first, last := e.sel.Span()
	if last <= first {
		slab.Indptr = slab.Indptr[:0]
		return
	}
	firstChunk := first / secChunkDim
	lastChunk := (last - 1) / secChunkDim

	chunks := make([]*Chunk, lastChunk-firstChunk+1)
	for k := range chunks {
		cidx := firstChunk + k
		chunkRow, chunkCol := cidx, stripeIdx
		if e.row {
			chunkRow, chunkCol = stripeIdx, cidx
		}
		c := &Chunk{}
		if err := e.m.source.Load(chunkRow, chunkCol, c); err != nil {
			panic(err)
		}
		chunks[k] = c
	}

	indexed := e.sel.Kind == tatamigo.SelectIndex
	meta := e.secondaryPerChunk(chunks, firstChunk, secChunkDim, first, last)

	if !e.sparse {
		for k, c := range chunks {
			m := meta[k]
			if m.n == 0 {
				continue
			}
			if indexed {
				DenseIndexExtract(c, e.row, 0, primaryLen, m.local, slab.Dense[m.outOffset:], e.sel.Len())
				continue
			}
			DenseBlockExtract(c, e.row, 0, primaryLen, m.lo, m.n, slab.Dense[m.outOffset:], e.sel.Len())
		}
		return
	}

	slab.Indptr = ensureInts(slab.Indptr, primaryLen+1)
	slab.Indptr[0] = 0
	slab.Values = slab.Values[:0]
	slab.Indices = slab.Indices[:0]
	for pr := 0; pr < primaryLen; pr++ {
		for k, c := range chunks {
			m := meta[k]
			if m.n == 0 {
				continue
			}
			var r tatamigo.SparseRange
			if indexed {
				r = SparseIndexExtract(c, e.row, pr, 1, m.local, m.outOffset)[0]
			} else {
				r = SparseBlockExtract(c, e.row, pr, 1, m.lo, m.n, m.outOffset)[0]
			}
			slab.Values = append(slab.Values, r.Values[:r.N]...)
			slab.Indices = append(slab.Indices, r.Indices[:r.N]...)
		}
		slab.Indptr[pr+1] = len(slab.Values)
	}
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

func (e *chunkedExtractor) Fetch(i int, buf []float64) []float64 {
	slab, off := e.slabFor(i)
	n := e.sel.Len()
	out := ensureFloats(buf, n)
	copy(out, slab.Dense[off*n:off*n+n])
	return out
}

func (e *chunkedExtractor) FetchSparse(i int, vbuf []float64, ibuf []int) tatamigo.SparseRange {
	slab, off := e.slabFor(i)
	lo, hi := slab.Indptr[off], slab.Indptr[off+1]
	n := hi - lo
	vout := ensureFloats(vbuf, n)
	iout := ensureInts(ibuf, n)
	copy(vout, slab.Values[lo:hi])
	copy(iout, slab.Indices[lo:hi])
	return tatamigo.SparseRange{N: n, Values: vout, Indices: iout}
}

func ensureFloats(buf []float64, n int) []float64 {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

func ensureInts(buf []int, n int) []int {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]int, n)
}
