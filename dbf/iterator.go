package dbf

import "errors"

// Iterator streams the table through one reusable row buffer. The SpanRow
// it yields borrows that buffer and is only valid until the next call to
// Next, materialize rows that need to outlive the step. Buffers above the
// smallest pool class are rented and returned on Close.
type Iterator struct {
	file   *File
	row    SpanRow
	buf    []byte
	pooled bool
	err    error
	done   bool
	closed bool
}

// Iterator starts a fresh span iteration over the table. Seekable and
// random access sources are repositioned at the first row. A non-seekable
// stream can only be iterated while no row has been read from it yet,
// afterwards Iterator returns an error.
func (file *File) Iterator() (*Iterator, error) {
	if err := file.rewind(); err != nil {
		return nil, newError("dbf-iterator-new-1", err)
	}
	length := int(file.header.RowLength)
	it := &Iterator{file: file}
	if length > bufferClasses[0] {
		it.buf = getBuffer(length)
		it.pooled = true
	} else {
		it.buf = make([]byte, length)
	}
	return it, nil
}

// Next advances to the next row. Returns false at the end of the table or
// on error, Err tells the two apart.
func (it *Iterator) Next() bool {
	return it.next(it.file.config.SkipDeleted)
}

func (it *Iterator) next(skipDeleted bool) bool {
	if it.done || it.closed {
		return false
	}
	position, deleted, err := it.file.advance(it.buf, skipDeleted)
	if err != nil {
		it.done = true
		if !errors.Is(err, ErrEOF) {
			it.err = err
		}
		return false
	}
	it.row = SpanRow{
		handle:   it.file,
		Position: position,
		Deleted:  deleted,
		data:     it.buf,
	}
	return true
}

// Row returns the current span row. The row borrows the iteration buffer
// and is invalidated by the next call to Next.
func (it *Iterator) Row() *SpanRow {
	return &it.row
}

// Skip advances over n active rows without yielding them.
func (it *Iterator) Skip(n int) error {
	for i := 0; i < n; i++ {
		if !it.next(true) {
			if it.err != nil {
				return it.err
			}
			return newError("dbf-iterator-skip-1", ErrEOF)
		}
	}
	return nil
}

// Err returns the first error encountered during iteration. Reaching the
// end of the table is not an error.
func (it *Iterator) Err() error {
	return it.err
}

// Close returns the iteration buffer to the pool. The iterator must not be
// used afterwards.
func (it *Iterator) Close() {
	if it.closed {
		return
	}
	it.closed = true
	it.row = SpanRow{}
	if it.pooled {
		putBuffer(it.buf)
	}
	it.buf = nil
}
