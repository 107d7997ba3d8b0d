// Package chunkio is a reference file-backed chunk grid: a flat binary
// format with a directory-style header, giving the oracle/LRU chunk cache
// (tatamigo/chunked) real I/O to drive rather than only in-memory sources.
// It is deliberately a minimal fixed-grid format, not an adapter for any
// particular scientific file format (out of scope). Byte layout and the
// little-endian packing convention are grounded on the teacher's
// persistence.go (MarshalBinary/UnmarshalBinary over DIA/CSR/CSC/COO/DOK),
// generalized from "one matrix in one blob" to "a directory of chunks in
// one file".
package chunkio

import "encoding/binary"

var byteOrder = binary.LittleEndian

const (
	sizeInt64   = 8
	sizeFloat64 = 8
)

// headerLen is the fixed-size portion preceding the per-chunk directory:
// nrow, ncol, chunkNRow, chunkNCol, chunksPerRow, chunksPerCol, sparse flag.
const headerLen = 7 * sizeInt64

// dirEntryLen is one directory entry: (byte offset, byte length) of a
// chunk's encoded payload within the file.
const dirEntryLen = 2 * sizeInt64

// Layout describes a fixed chunk grid's shape, independent of any one
// chunk's contents (§3 Chunk grid).
type Layout struct {
	NRow, NCol           int
	ChunkNRow, ChunkNCol int
	Sparse               bool
}

func (l Layout) chunksPerRow() int { return ceilDiv(l.NCol, l.ChunkNCol) }
func (l Layout) chunksPerCol() int { return ceilDiv(l.NRow, l.ChunkNRow) }
func (l Layout) numChunks() int    { return l.chunksPerRow() * l.chunksPerCol() }

// chunkIndex maps grid coordinates to the row-major chunk id used to index
// the directory.
func (l Layout) chunkIndex(chunkRow, chunkCol int) int {
	return chunkRow*l.chunksPerRow() + chunkCol
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

func putInt64(buf []byte, v int64) { byteOrder.PutUint64(buf, uint64(v)) }
func getInt64(buf []byte) int64    { return int64(byteOrder.Uint64(buf)) }
