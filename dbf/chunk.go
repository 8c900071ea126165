package dbf

import (
	"os"
	"sync"
)

// chunkReader reads a large file through a bounded memory mapped window.
// Mapping a multi gigabyte table as a single view exhausts 32-bit address
// spaces and wastes commit on 64-bit systems, so at most one chunk sized
// view is mapped at a time and remapped when a read falls outside it.
// Sequential record scans stay within one view for chunkSize bytes.
type chunkReader struct {
	mu         sync.Mutex
	file       *os.File
	length     int64
	chunkSize  int64
	view       []byte
	viewOffset int64
}

// mapping granularity, covers unix page sizes and the windows allocation granularity
const mapAlignment = 64 << 10

func newChunkReader(file *os.File, chunkSize int64) (*chunkReader, error) {
	stat, err := file.Stat()
	if err != nil {
		return nil, newError("dbf-chunk-new-1", err)
	}
	length := stat.Size()
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if chunkSize > length && length > 0 {
		chunkSize = length
	}
	if rem := chunkSize % mapAlignment; rem != 0 {
		chunkSize += mapAlignment - rem
	}
	debugf("Chunked reader over %s: length %d, chunk size %d", file.Name(), length, chunkSize)
	return &chunkReader{
		file:      file,
		length:    length,
		chunkSize: chunkSize,
	}, nil
}

// ReadAt fills p from the mapped file. Reads crossing a chunk boundary
// remap as they go, so p may span two chunks.
func (c *chunkReader) ReadAt(p []byte, offset int64) (int, error) {
	if offset < 0 || offset >= c.length || offset+int64(len(p)) > c.length {
		return 0, newError("dbf-chunk-readat-1", ErrInvalidPosition)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	read := 0
	for read < len(p) {
		if c.view == nil || offset < c.viewOffset || offset >= c.viewOffset+int64(len(c.view)) {
			if err := c.remap(offset); err != nil {
				return read, err
			}
		}
		n := copy(p[read:], c.view[offset-c.viewOffset:])
		read += n
		offset += int64(n)
	}
	return read, nil
}

// remap disposes the current view and maps the chunk containing offset.
// Views are aligned on chunkSize boundaries.
func (c *chunkReader) remap(offset int64) error {
	if c.view != nil {
		if err := unmapChunk(c.view); err != nil {
			return newError("dbf-chunk-remap-1", err)
		}
		c.view = nil
	}
	start := offset - offset%c.chunkSize
	length := c.chunkSize
	if start+length > c.length {
		length = c.length - start
	}
	view, err := mapChunk(c.file, start, int(length))
	if err != nil {
		return newError("dbf-chunk-remap-2", err)
	}
	debugf("Mapped chunk at offset %d, length %d", start, length)
	c.view = view
	c.viewOffset = start
	return nil
}

// Close unmaps the active view. The file handle stays with its owner.
func (c *chunkReader) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view == nil {
		return nil
	}
	err := unmapChunk(c.view)
	c.view = nil
	if err != nil {
		return newError("dbf-chunk-close-1", err)
	}
	return nil
}
