package chunkio

import (
	"fmt"
	"io"
	"math"

	"github.com/jbowman-labs/tatamigo/chunked"
)

// encodedChunk packs a single *chunked.Chunk the way the teacher's
// persistence.go packs a matrix: a small fixed header of int64 fields
// followed by the payload arrays, everything little-endian, floats via
// math.Float64bits/Float64frombits.
//
// Dense layout:  nrow, ncol, rowMajor(0/1), sparse(0) | nrow*ncol float64
// Sparse layout: nrow, ncol, rowMajor(0/1), sparse(1), len(indptr), len(indices)
//                | indptr int64s | indices int64s | values float64s
func encodeChunk(c *chunked.Chunk) []byte {
	rowMajor := int64(0)
	if c.RowMajor {
		rowMajor = 1
	}
	if !c.Sparse {
		buf := make([]byte, 4*sizeInt64+len(c.Dense)*sizeFloat64)
		putInt64(buf[0:], int64(c.NRow))
		putInt64(buf[8:], int64(c.NCol))
		putInt64(buf[16:], rowMajor)
		putInt64(buf[24:], 0)
		off := 4 * sizeInt64
		for _, v := range c.Dense {
			byteOrder.PutUint64(buf[off:], math.Float64bits(v))
			off += sizeFloat64
		}
		return buf
	}

	n := 6*sizeInt64 + len(c.Indptr)*sizeInt64 + len(c.Indices)*sizeInt64 + len(c.Values)*sizeFloat64
	buf := make([]byte, n)
	putInt64(buf[0:], int64(c.NRow))
	putInt64(buf[8:], int64(c.NCol))
	putInt64(buf[16:], rowMajor)
	putInt64(buf[24:], 1)
	putInt64(buf[32:], int64(len(c.Indptr)))
	putInt64(buf[40:], int64(len(c.Indices)))
	off := 6 * sizeInt64
	for _, v := range c.Indptr {
		putInt64(buf[off:], int64(v))
		off += sizeInt64
	}
	for _, v := range c.Indices {
		putInt64(buf[off:], int64(v))
		off += sizeInt64
	}
	for _, v := range c.Values {
		byteOrder.PutUint64(buf[off:], math.Float64bits(v))
		off += sizeFloat64
	}
	return buf
}

func decodeChunk(buf []byte) (*chunked.Chunk, error) {
	if len(buf) < 4*sizeInt64 {
		return nil, fmt.Errorf("chunkio: chunk payload too short (%d bytes)", len(buf))
	}
	nrow := int(getInt64(buf[0:]))
	ncol := int(getInt64(buf[8:]))
	rowMajor := getInt64(buf[16:]) != 0
	sparse := getInt64(buf[24:]) != 0

	if !sparse {
		want := 4*sizeInt64 + nrow*ncol*sizeFloat64
		if len(buf) != want {
			return nil, fmt.Errorf("chunkio: dense chunk payload size mismatch: have %d, want %d", len(buf), want)
		}
		dense := make([]float64, nrow*ncol)
		off := 4 * sizeInt64
		for i := range dense {
			dense[i] = math.Float64frombits(byteOrder.Uint64(buf[off:]))
			off += sizeFloat64
		}
		return &chunked.Chunk{NRow: nrow, NCol: ncol, RowMajor: rowMajor, Dense: dense}, nil
	}

	if len(buf) < 6*sizeInt64 {
		return nil, fmt.Errorf("chunkio: sparse chunk payload too short (%d bytes)", len(buf))
	}
	indptrLen := int(getInt64(buf[32:]))
	indicesLen := int(getInt64(buf[40:]))
	off := 6 * sizeInt64
	want := off + indptrLen*sizeInt64 + indicesLen*sizeInt64 + indicesLen*sizeFloat64
	if len(buf) != want {
		return nil, fmt.Errorf("chunkio: sparse chunk payload size mismatch: have %d, want %d", len(buf), want)
	}
	indptr := make([]int, indptrLen)
	for i := range indptr {
		indptr[i] = int(getInt64(buf[off:]))
		off += sizeInt64
	}
	indices := make([]int, indicesLen)
	for i := range indices {
		indices[i] = int(getInt64(buf[off:]))
		off += sizeInt64
	}
	values := make([]float64, indicesLen)
	for i := range values {
		values[i] = math.Float64frombits(byteOrder.Uint64(buf[off:]))
		off += sizeFloat64
	}
	return &chunked.Chunk{
		NRow: nrow, NCol: ncol, RowMajor: rowMajor, Sparse: true,
		Indptr: indptr, Indices: indices, Values: values,
	}, nil
}

// readUntilFull reads exactly len(buf) bytes, mapping a short final read
// ending in io.EOF to io.ErrUnexpectedEOF - the same convention the
// teacher's persistence.go uses for its own streaming decode helper.
func readUntilFull(r io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(r, buf)
	if err == io.EOF && n > 0 {
		return n, io.ErrUnexpectedEOF
	}
	return n, err
}
