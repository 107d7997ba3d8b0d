package chunkio

import (
	"fmt"
	"io"
	"sync"

	"github.com/jbowman-labs/tatamigo/chunked"
)

// FileReader serves chunks out of a file written by WriteFile, implementing
// chunked.ChunkSource so it can be wired directly into chunked.NewMatrix.
//
// Random access is via io.ReaderAt rather than io.Reader, since the chunk
// cache fetches chunks out of order (§4.J eviction, §4.L oracle prediction
// both jump around the grid). Access is serialised through lock, per the
// requirement that a file-backed backend must run its I/O through an
// externally supplied critical section rather than assume the underlying
// reader is safe for concurrent use.
type FileReader struct {
	r    io.ReaderAt
	lock sync.Locker

	layout Layout
	dir    []dirEntry
}

type dirEntry struct {
	offset int64
	length int64
}

// OpenFileReader reads a chunk grid file's header and directory (but no
// chunk payloads) from r, guarded by lock.
func OpenFileReader(r io.ReaderAt, lock sync.Locker) (*FileReader, error) {
	lock.Lock()
	defer lock.Unlock()

	header := make([]byte, headerLen)
	if _, err := readUntilFullAt(r, header, 0); err != nil {
		return nil, fmt.Errorf("chunkio: reading header: %w", err)
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
	if _, err := readUntilFullAt(r, dirBuf, int64(headerLen)); err != nil {
		return nil, fmt.Errorf("chunkio: reading directory: %w", err)
	}
	dir := make([]dirEntry, numChunks)
	for i := range dir {
		dir[i] = dirEntry{
			offset: getInt64(dirBuf[i*dirEntryLen:]),
			length: getInt64(dirBuf[i*dirEntryLen+8:]),
		}
	}
	return &FileReader{r: r, lock: lock, layout: layout, dir: dir}, nil
}

// Load implements chunked.ChunkSource.
func (f *FileReader) Load(chunkRow, chunkCol int, dst *chunked.Chunk) error {
	id := f.layout.chunkIndex(chunkRow, chunkCol)
	if id < 0 || id >= len(f.dir) {
		return fmt.Errorf("chunkio: chunk (%d,%d) out of range", chunkRow, chunkCol)
	}
	entry := f.dir[id]

	f.lock.Lock()
	buf := make([]byte, entry.length)
	_, err := readUntilFullAt(f.r, buf, entry.offset)
	f.lock.Unlock()
	if err != nil {
		return fmt.Errorf("chunkio: reading chunk (%d,%d): %w", chunkRow, chunkCol, err)
	}

	decoded, err := decodeChunk(buf)
	if err != nil {
		return err
	}
	*dst = *decoded
	return nil
}

var _ chunked.ChunkSource = (*FileReader)(nil)

func readUntilFullAt(r io.ReaderAt, buf []byte, offset int64) (int, error) {
	n, err := r.ReadAt(buf, offset)
	if err == io.EOF && n == len(buf) {
		err = nil
	} else if err == io.EOF && n > 0 {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}
