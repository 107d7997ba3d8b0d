package chunkio

import (
	"fmt"
	"io"

	"github.com/jbowman-labs/tatamigo/chunked"
)

// ReadFile decodes an entire chunk grid file from a plain io.Reader in one
// sequential pass, mirroring the teacher's UnmarshalBinaryFrom convention
// (stream in, no seeking). Useful for loading a whole grid into memory at
// once rather than random-access chunk-by-chunk through FileReader.
func ReadFile(r io.Reader) (Layout, []*chunked.Chunk, error) {
	header := make([]byte, headerLen)
	if _, err := readUntilFull(r, header); err != nil {
		return Layout{}, nil, fmt.Errorf("chunkio: reading header: %w", err)
	}
	layout := Layout{
		NRow:      int(getInt64(header[0:])),
		NCol:      int(getInt64(header[8:])),
		ChunkNRow: int(getInt64(header[16:])),
		ChunkNCol: int(getInt64(header[24:])),
		Sparse:    getInt64(header[48:]) != 0,
	}
	numChunks := layout.numChunks()

	dirBuf := make([]byte, numChunks*dirEntryLen)
	if _, err := readUntilFull(r, dirBuf); err != nil {
		return Layout{}, nil, fmt.Errorf("chunkio: reading directory: %w", err)
	}
	lengths := make([]int64, numChunks)
	for i := range lengths {
		lengths[i] = getInt64(dirBuf[i*dirEntryLen+8:])
	}

	chunks := make([]*chunked.Chunk, numChunks)
	for i, length := range lengths {
		buf := make([]byte, length)
		if _, err := readUntilFull(r, buf); err != nil {
			return Layout{}, nil, fmt.Errorf("chunkio: reading chunk %d: %w", i, err)
		}
		c, err := decodeChunk(buf)
		if err != nil {
			return Layout{}, nil, err
		}
		chunks[i] = c
	}
	return layout, chunks, nil
}
