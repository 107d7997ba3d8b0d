package chunkio

import (
	"fmt"
	"io"

	"github.com/jbowman-labs/tatamigo/chunked"
)

// WriteFile writes a complete chunk grid file: fixed header, directory, then
// chunk payloads in row-major grid order, mirroring the teacher's
// MarshalBinaryTo streaming-write style (length-prefixed sections written in
// order). Every chunk is encoded in memory before anything is written,
// because the directory that precedes the payloads needs their lengths.
//
// chunks must be supplied in row-major grid order (chunkRow outer,
// chunkCol inner) and its length must equal the grid's chunk count.
func WriteFile(w io.Writer, layout Layout, chunks []*chunked.Chunk) (int, error) {
	want := layout.numChunks()
	if len(chunks) != want {
		return 0, fmt.Errorf("chunkio: have %d chunks, layout needs %d", len(chunks), want)
	}

	payloads := make([][]byte, want)
	for i, c := range chunks {
		payloads[i] = encodeChunk(c)
	}

	sparseFlag := int64(0)
	if layout.Sparse {
		sparseFlag = 1
	}
	header := make([]byte, headerLen)
	putInt64(header[0:], int64(layout.NRow))
	putInt64(header[8:], int64(layout.NCol))
	putInt64(header[16:], int64(layout.ChunkNRow))
	putInt64(header[24:], int64(layout.ChunkNCol))
	putInt64(header[32:], int64(layout.chunksPerRow()))
	putInt64(header[40:], int64(layout.chunksPerCol()))
	putInt64(header[48:], sparseFlag)

	dir := make([]byte, want*dirEntryLen)
	offset := int64(headerLen + want*dirEntryLen)
	for i, p := range payloads {
		putInt64(dir[i*dirEntryLen:], offset)
		putInt64(dir[i*dirEntryLen+8:], int64(len(p)))
		offset += int64(len(p))
	}

	total := 0
	for _, section := range append([][]byte{header, dir}, payloads...) {
		n, err := w.Write(section)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
