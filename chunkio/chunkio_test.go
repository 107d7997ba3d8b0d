package chunkio_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/jbowman-labs/tatamigo"
	"github.com/jbowman-labs/tatamigo/chunked"
	"github.com/jbowman-labs/tatamigo/chunkio"
)

// gridChunks builds the four 3x2 dense chunks for a 6x4 grid, row-major
// values 1..24, chunk shape 3x2 (2 chunk rows x 2 chunk cols).
func gridChunks() []*chunked.Chunk {
	full := make([]float64, 6*4)
	for i := range full {
		full[i] = float64(i + 1)
	}
	at := func(r, c int) float64 { return full[r*4+c] }

	chunks := make([]*chunked.Chunk, 0, 4)
	for cr := 0; cr < 2; cr++ {
		for cc := 0; cc < 2; cc++ {
			dense := make([]float64, 3*2)
			for pr := 0; pr < 3; pr++ {
				for pc := 0; pc < 2; pc++ {
					dense[pr*2+pc] = at(cr*3+pr, cc*2+pc)
				}
			}
			chunks = append(chunks, &chunked.Chunk{NRow: 3, NCol: 2, RowMajor: true, Dense: dense})
		}
	}
	return chunks
}

func TestWriteFileReadFileRoundTrip(t *testing.T) {
	layout := chunkio.Layout{NRow: 6, NCol: 4, ChunkNRow: 3, ChunkNCol: 2}
	var buf bytes.Buffer
	if _, err := chunkio.WriteFile(&buf, layout, gridChunks()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	gotLayout, gotChunks, err := chunkio.ReadFile(&buf)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if gotLayout != layout {
		t.Fatalf("layout = %+v, want %+v", gotLayout, layout)
	}
	want := gridChunks()
	if len(gotChunks) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(gotChunks), len(want))
	}
	for i, c := range gotChunks {
		for k, v := range c.Dense {
			if v != want[i].Dense[k] {
				t.Errorf("chunk %d value %d = %v, want %v", i, k, v, want[i].Dense[k])
			}
		}
	}
}

func TestFileReaderLoadMatchesGridPosition(t *testing.T) {
	layout := chunkio.Layout{NRow: 6, NCol: 4, ChunkNRow: 3, ChunkNCol: 2}
	var buf bytes.Buffer
	if _, err := chunkio.WriteFile(&buf, layout, gridChunks()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data := buf.Bytes()

	fr, err := chunkio.OpenFileReader(bytes.NewReader(data), &sync.Mutex{})
	if err != nil {
		t.Fatalf("OpenFileReader: %v", err)
	}

	var c chunked.Chunk
	if err := fr.Load(1, 0, &c); err != nil {
		t.Fatalf("Load(1,0): %v", err)
	}
	// Chunk (1,0) covers rows 3-5, cols 0-1: top-left value is row 3 col 0 = 13.
	if c.Dense[0] != 13 {
		t.Errorf("chunk(1,0)[0,0] = %v, want 13", c.Dense[0])
	}
}

func TestFileReaderDrivesChunkedMatrix(t *testing.T) {
	layout := chunkio.Layout{NRow: 6, NCol: 4, ChunkNRow: 3, ChunkNCol: 2}
	var buf bytes.Buffer
	if _, err := chunkio.WriteFile(&buf, layout, gridChunks()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	fr, err := chunkio.OpenFileReader(bytes.NewReader(buf.Bytes()), &sync.Mutex{})
	if err != nil {
		t.Fatalf("OpenFileReader: %v", err)
	}

	m := chunked.NewMatrix(6, 4, 3, 2, fr, false, 8*2*4, false)
	var tatMatrix tatamigo.Matrix = m

	ext := tatMatrix.DenseRow(tatamigo.FullSelection(4))
	row := ext.Fetch(4, nil)
	want := []float64{17, 18, 19, 20}
	for i, v := range want {
		if row[i] != v {
			t.Errorf("row 4[%d] = %v, want %v", i, row[i], v)
		}
	}
}
