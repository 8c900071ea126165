package dbf

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config carries the options for opening a table.
// The filename is mandatory for OpenTable. NewConfig returns a config with
// the default trimming, deletion filtering and buffer size applied.
type Config struct {
	Filename          string            // The filename of the DBF file
	Converter         EncodingConverter // Explicit encoding converter, wins over Encoding
	Encoding          string            // Named override for the header code page
	IgnoreCase        bool              // Column name lookups compare case-insensitively
	TrimSpaces        bool              // Right-trim Character and Varchar values
	IgnoreMissingMemo bool              // An absent memo sidecar yields null memos instead of failing
	ValidateFields    bool              // Raise on malformed field payloads instead of yielding Invalid values
	MemoryMapping     bool              // Read rows through the chunked memory mapped accessor
	ChunkSize         int64             // Chunk size of the mapped accessor (default 256 MiB)
	BufferSize        int               // Stream buffer size (default 64 KiB)
	SkipDeleted       bool              // Filter out deleted rows during iteration
	MaxRecords        int               // Cap the number of rows yielded (0 means no cap)
	DecodeFallback    rune              // Substitute character on decode error
	Context           context.Context   // Optional cancellation signal, checked between rows
}

// NewConfig returns a Config with the package defaults.
func NewConfig(filename string) *Config {
	return &Config{
		Filename:    filename,
		TrimSpaces:  true,
		SkipDeleted: true,
		BufferSize:  defaultBufferSize,
	}
}

// File is the main struct to read a dBase table.
type File struct {
	config    *Config
	header    *Header
	columns   []*Column
	converter EncodingConverter
	memo      MemoReader

	handle   *os.File      // backing file when opened from disk
	stream   *bufio.Reader // sequential source, always present
	seeker   io.ReadSeeker // non-nil when the source can reposition
	readerAt io.ReaderAt   // non-nil when the source allows random access
	chunk    *chunkReader

	dataOffset    int64
	rowPointer    uint32 // next row the iteration will read
	streamPointer uint32 // rows consumed from the sequential stream
	yielded       int
	softEOF       bool

	activeCount  int
	deletedCount int
	counted      bool

	loaded      bool
	rows        []*Row
	deletedRows []*Row

	handlers []func(string)
	backlog  []string
}

// OpenTable opens a dBase table file (and the memo sidecar if needed) from
// disk. To close the embedded file handles call File.Close.
func OpenTable(config *Config) (*File, error) {
	if config == nil {
		return nil, newError("dbf-file-opentable-1", fmt.Errorf("missing configuration"))
	}
	if len(strings.TrimSpace(config.Filename)) == 0 {
		return nil, newError("dbf-file-opentable-2", fmt.Errorf("missing filename"))
	}
	debugf("Opening table: %s - Memory mapping: %v - Validate fields: %v - Trim spaces: %v", config.Filename, config.MemoryMapping, config.ValidateFields, config.TrimSpaces)
	fileName, err := findFile(filepath.Clean(config.Filename))
	if err != nil {
		return nil, err
	}
	handle, err := os.Open(fileName)
	if err != nil {
		return nil, newError("dbf-file-opentable-3", fmt.Errorf("opening file failed with error: %w", err))
	}
	file := &File{
		config: config,
		handle: handle,
		seeker: handle,
	}
	if err := file.prepare(handle); err != nil {
		handle.Close()
		return nil, err
	}
	if config.MemoryMapping {
		chunk, err := newChunkReader(handle, config.ChunkSize)
		if err != nil {
			handle.Close()
			return nil, err
		}
		file.chunk = chunk
		file.readerAt = chunk
	} else {
		file.readerAt = handle
	}
	memo, err := openMemo(fileName, file.header.Version(), file.columns, config)
	if err != nil {
		handle.Close()
		return nil, err
	}
	file.memo = memo
	if stat, err := handle.Stat(); err == nil {
		// a trailing 0x1A sentinel is allowed, anything else is suspicious
		expected := file.header.FileSize()
		if stat.Size() < expected || stat.Size() > expected+1 {
			file.warnf("file size %d differs from calculated size %d", stat.Size(), expected)
		}
	}
	return file, nil
}

// NewTable reads a table from a caller supplied stream. Seekable streams
// can be re-iterated and repositioned, non-seekable streams are read
// strictly forward. Memo sidecars cannot be discovered for streams, so
// tables with memo columns require Config.IgnoreMissingMemo.
func NewTable(r io.Reader, config *Config) (*File, error) {
	if config == nil {
		return nil, newError("dbf-file-newtable-1", fmt.Errorf("missing configuration"))
	}
	if r == nil {
		return nil, newError("dbf-file-newtable-2", fmt.Errorf("missing reader"))
	}
	file := &File{config: config}
	if seeker, ok := r.(io.ReadSeeker); ok {
		file.seeker = seeker
	}
	if readerAt, ok := r.(io.ReaderAt); ok {
		file.readerAt = readerAt
	}
	if err := file.prepare(r); err != nil {
		return nil, err
	}
	if hasMemoColumn(file.columns) && !config.IgnoreMissingMemo {
		return nil, newError("dbf-file-newtable-3", MissingMemoError{TablePath: config.Filename})
	}
	file.memo = nullMemo{}
	return file, nil
}

// prepare reads the header and the column descriptors and positions the
// source at the first row.
func (file *File) prepare(r io.Reader) error {
	bufSize := file.config.BufferSize
	if bufSize < defaultBufferSize {
		bufSize = defaultBufferSize
	}
	file.stream = bufio.NewReaderSize(r, bufSize)
	prefix, err := file.stream.Peek(headerSize)
	if err != nil && len(prefix) < headerSizeDBase2 {
		return newError("dbf-file-prepare-1", InvalidHeaderError{Reason: "short read"})
	}
	header, err := parseHeader(prefix)
	if err != nil {
		return err
	}
	file.header = header
	if !header.Version().Known() {
		file.warnf("untested file version 0x%02X, proceeding permissively", header.FileType)
	}
	if header.Version().IsDBaseII() {
		if err := file.prepareDBase2(); err != nil {
			return err
		}
	} else {
		if err := file.prepareDBase3(); err != nil {
			return err
		}
	}
	file.resolveConverter()
	debugf("Table %s: version %s, %d columns, %d rows, row length %d", file.TableName(), header.Version(), len(file.columns), header.RowsCount, header.RowLength)
	return nil
}

func (file *File) prepareDBase3() error {
	header := file.header
	if _, err := file.stream.Discard(headerSize); err != nil {
		return newError("dbf-file-preparedbf-1", InvalidHeaderError{Reason: "short read"})
	}
	recovered := false
	if header.FirstRow == 0 {
		file.warnf("header length is zero, recovering from the descriptor walk")
		header.FirstRow = minFirstRow
		recovered = true
	}
	if header.FirstRow < minFirstRow {
		return newError("dbf-file-preparedbf-2", InvalidHeaderError{Reason: fmt.Sprintf("header length %d below minimum %d", header.FirstRow, minFirstRow)})
	}
	if header.RowLength == 0 {
		file.warnf("record length is zero, assuming 1")
		header.RowLength = 1
	}
	// Bounded look-ahead over the descriptor area. The walk is driven by
	// the terminator policy, not the stored header length, so files with a
	// wrong header length still salvage their descriptors.
	peek, err := file.stream.Peek(file.stream.Size())
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return newError("dbf-file-preparedbf-3", err)
	}
	columns, consumed := parseColumns(peek, header.Version())
	if err := validateColumns(columns, header.Version()); err != nil {
		return err
	}
	file.columns = columns
	declared := int(header.FirstRow) - headerSize
	if recovered {
		header.FirstRow = uint16(headerSize + consumed)
		declared = consumed
	}
	if expected := header.ColumnsCount(); expected > 0 && int(expected) != len(columns) {
		file.warnf("descriptor walk found %d columns, header declares %d", len(columns), expected)
	}
	if _, err := file.stream.Discard(declared); err != nil {
		// the file ends inside the header padding, there are no rows
		file.softEOF = true
	}
	file.dataOffset = int64(header.FirstRow)
	return nil
}

// dBase II does not store a header length, it is derived from the
// descriptor walk: 8 header bytes plus 16 per field plus the terminator.
func (file *File) prepareDBase2() error {
	if _, err := file.stream.Discard(headerSizeDBase2); err != nil {
		return newError("dbf-file-preparedbf2-1", InvalidHeaderError{Reason: "short read"})
	}
	peek, err := file.stream.Peek(maxColumnCount*columnSizeDBase2 + 1)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return newError("dbf-file-preparedbf2-2", err)
	}
	columns, consumed := parseColumns(peek, DBaseII)
	if err := validateColumns(columns, DBaseII); err != nil {
		return err
	}
	file.columns = columns
	file.header.FirstRow = uint16(headerSizeDBase2 + consumed)
	if _, err := file.stream.Discard(consumed); err != nil {
		file.softEOF = true
	}
	file.dataOffset = int64(file.header.FirstRow)
	return nil
}

func (file *File) resolveConverter() {
	config := file.config
	if config.Converter != nil {
		file.converter = config.Converter
		return
	}
	if len(config.Encoding) > 0 {
		converter, err := ConverterFromName(config.Encoding)
		if err != nil {
			file.warnf("unknown encoding override %q, falling back to UTF-8", config.Encoding)
			file.converter = UTF8Converter{fallback: config.DecodeFallback}
			return
		}
		file.converter = converter
		return
	}
	converter, known := ConverterFromCodePage(file.header.CodePage)
	if !known {
		file.warnf("unknown language driver 0x%02X, decoding as UTF-8", file.header.CodePage)
	}
	if utf8conv, ok := converter.(UTF8Converter); ok && config.DecodeFallback != 0 {
		utf8conv.fallback = config.DecodeFallback
		converter = utf8conv
	}
	file.converter = converter
}

// findFile locates the table on disk, matching the name case-insensitively
// the way the original files are often moved between file systems.
func findFile(name string) (string, error) {
	debugf("Searching for file: %s", name)
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	files, err := os.ReadDir(filepath.Dir(name))
	if err != nil {
		return "", newError("dbf-file-findfile-1", ErrNoDBF)
	}
	for _, file := range files {
		if !file.IsDir() && strings.EqualFold(file.Name(), filepath.Base(name)) {
			return filepath.Join(filepath.Dir(name), file.Name()), nil
		}
	}
	return "", newError("dbf-file-findfile-2", ErrNoDBF)
}

// Close releases the file handle, the memo sidecar and the mapped accessor.
func (file *File) Close() error {
	var firstErr error
	if file.chunk != nil {
		if err := file.chunk.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if file.memo != nil {
		if err := file.memo.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if file.handle != nil {
		debugf("Closing file: %s", file.config.Filename)
		if err := file.handle.Close(); err != nil && firstErr == nil {
			firstErr = newError("dbf-file-close-1", err)
		}
	}
	return firstErr
}

/**
 *	################################################################
 *	#					Row access
 *	################################################################
 */

// fillRow reads the raw bytes of the row at position into buf.
// Random access sources read at the calculated offset, sequential streams
// only move forward.
func (file *File) fillRow(position uint32, buf []byte) error {
	if position >= file.header.RowsCount {
		return newError("dbf-file-fillrow-1", ErrEOF)
	}
	if file.readerAt != nil {
		offset := file.dataOffset + int64(position)*int64(file.header.RowLength)
		n, err := file.readerAt.ReadAt(buf, offset)
		if n < len(buf) {
			if n >= 1 && Marker(buf[0]) == EOFMarker {
				// lone sentinel at the end of the file
				return newError("dbf-file-fillrow-2", ErrEOF)
			}
			if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, ErrInvalidPosition) {
				return newError("dbf-file-fillrow-3", ErrIncomplete)
			}
			return newError("dbf-file-fillrow-4", err)
		}
		return nil
	}
	if position != file.streamPointer {
		return newError("dbf-file-fillrow-5", fmt.Errorf("stream source cannot seek to row %d while positioned at %d", position, file.streamPointer))
	}
	n, err := io.ReadFull(file.stream, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		if n >= 1 && Marker(buf[0]) == EOFMarker {
			// lone sentinel at the end of the file
			return newError("dbf-file-fillrow-6", ErrEOF)
		}
		return newError("dbf-file-fillrow-7", ErrIncomplete)
	}
	if err != nil {
		return newError("dbf-file-fillrow-8", err)
	}
	file.streamPointer++
	return nil
}

// advance reads forward from the row pointer until a yieldable row, the
// EOF sentinel, a short read, or the end of the table. Returns the row
// position and its deletion flag, buf holds the raw row bytes.
func (file *File) advance(buf []byte, skipDeleted bool) (uint32, bool, error) {
	for {
		if err := file.checkContext(); err != nil {
			return 0, false, err
		}
		if file.softEOF {
			return 0, false, newError("dbf-file-advance-1", ErrEOF)
		}
		if file.config.MaxRecords > 0 && file.yielded >= file.config.MaxRecords {
			return 0, false, newError("dbf-file-advance-2", ErrEOF)
		}
		position := file.rowPointer
		err := file.fillRow(position, buf)
		if err != nil {
			if errors.Is(err, ErrIncomplete) {
				file.softEOF = true
				file.counted = true
				file.warnf("%v, expected %d rows", TruncatedError{Position: position}, file.header.RowsCount)
				return 0, false, newError("dbf-file-advance-3", ErrEOF)
			}
			return 0, false, err
		}
		if Marker(buf[0]) == EOFMarker {
			file.softEOF = true
			file.counted = true
			return 0, false, newError("dbf-file-advance-4", ErrEOF)
		}
		file.rowPointer++
		deleted := Marker(buf[0]) == Deleted
		if !file.counted {
			if deleted {
				file.deletedCount++
			} else {
				file.activeCount++
			}
			if file.rowPointer == file.header.RowsCount {
				file.counted = true
			}
		}
		if deleted && skipDeleted {
			continue
		}
		file.yielded++
		return position, deleted, nil
	}
}

func (file *File) checkContext() error {
	if file.config.Context == nil {
		return nil
	}
	if err := file.config.Context.Err(); err != nil {
		return newError("dbf-file-context-1", err)
	}
	return nil
}

// Next reads the row at the row pointer and advances it, skipping deleted
// rows when configured. Returns ErrEOF at the end of the table.
func (file *File) Next() (*Row, error) {
	buf := make([]byte, file.header.RowLength)
	position, deleted, err := file.advance(buf, file.config.SkipDeleted)
	if err != nil {
		return nil, err
	}
	return file.newRow(position, deleted, buf), nil
}

// Rows returns all remaining rows as a slice.
func (file *File) Rows(skipDeleted bool) ([]*Row, error) {
	rows := make([]*Row, 0)
	for {
		buf := make([]byte, file.header.RowLength)
		position, deleted, err := file.advance(buf, skipDeleted)
		if errors.Is(err, ErrEOF) {
			break
		}
		if err != nil {
			return nil, newError("dbf-file-rows-1", err)
		}
		rows = append(rows, file.newRow(position, deleted, buf))
	}
	return rows, nil
}

// RowsToMap returns all remaining rows as a slice of maps.
func (file *File) RowsToMap(skipDeleted bool) ([]map[string]interface{}, error) {
	rows, err := file.Rows(skipDeleted)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		m, err := row.ToMap()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// RowsToJSON returns all remaining rows as a JSON array.
func (file *File) RowsToJSON(skipDeleted bool) ([]byte, error) {
	maps, err := file.RowsToMap(skipDeleted)
	if err != nil {
		return nil, newError("dbf-file-rowstojson-1", err)
	}
	b, err := json.Marshal(maps)
	if err != nil {
		return nil, newError("dbf-file-rowstojson-2", err)
	}
	return b, nil
}

func (file *File) newRow(position uint32, deleted bool, data []byte) *Row {
	return &Row{
		handle:   file,
		Position: position,
		Deleted:  deleted,
		data:     data,
		values:   make([]interface{}, len(file.columns)),
		decoded:  make([]bool, len(file.columns)),
	}
}

// GoTo sets the internal row pointer to the given row.
// Returns an EOF error and positions the pointer at lastRow+1 when the
// position is beyond the table.
func (file *File) GoTo(position uint32) error {
	if position > file.header.RowsCount {
		file.rowPointer = file.header.RowsCount
		return newError("dbf-file-goto-1", fmt.Errorf("%w, go to %v > %v", ErrEOF, position, file.header.RowsCount))
	}
	if file.readerAt == nil && position != file.streamPointer {
		if file.seeker == nil {
			return newError("dbf-file-goto-2", fmt.Errorf("stream source cannot seek to row %d", position))
		}
		offset := file.dataOffset + int64(position)*int64(file.header.RowLength)
		if _, err := file.seeker.Seek(offset, io.SeekStart); err != nil {
			return newError("dbf-file-goto-3", err)
		}
		file.stream.Reset(file.seeker)
		file.streamPointer = position
	}
	debugf("Going to row: %d", position)
	file.rowPointer = position
	file.softEOF = false
	return nil
}

// Skip adds offset to the internal row pointer.
// If at end of file positions the pointer at lastRow+1.
// If the row pointer would become negative positions the pointer at 0.
// Does not skip deleted rows.
func (file *File) Skip(offset int64) {
	position := int64(file.rowPointer) + offset
	if position >= int64(file.header.RowsCount) {
		position = int64(file.header.RowsCount)
	}
	if position < 0 {
		position = 0
	}
	if err := file.GoTo(uint32(position)); err != nil {
		debugf("Skipping %d row/s failed: %v", offset, err)
	}
	debugf("Skipping %d row/s, new position: %d", offset, file.rowPointer)
}

// rewind repositions the source at the first row for a fresh iteration.
func (file *File) rewind() error {
	if file.readerAt == nil && (file.rowPointer != 0 || file.streamPointer != 0) {
		if file.seeker == nil {
			return newError("dbf-file-rewind-1", fmt.Errorf("stream source cannot rewind"))
		}
		if _, err := file.seeker.Seek(file.dataOffset, io.SeekStart); err != nil {
			return newError("dbf-file-rewind-2", err)
		}
		file.stream.Reset(file.seeker)
		file.streamPointer = 0
	}
	file.rowPointer = 0
	file.softEOF = false
	file.yielded = 0
	if !file.counted {
		file.activeCount = 0
		file.deletedCount = 0
	}
	return nil
}

/**
 *	################################################################
 *	#					Load to memory
 *	################################################################
 */

// Load materializes all rows into two position addressed lists, one for
// active and one for deleted rows. In loaded mode RowAt and DeletedRowAt
// provide random access.
func (file *File) Load() error {
	if file.loaded {
		return nil
	}
	if err := file.rewind(); err != nil {
		return newError("dbf-file-load-1", err)
	}
	rows := make([]*Row, 0, file.header.RowsCount)
	deletedRows := make([]*Row, 0)
	for {
		buf := make([]byte, file.header.RowLength)
		position, deleted, err := file.advance(buf, false)
		if errors.Is(err, ErrEOF) {
			break
		}
		if err != nil {
			return newError("dbf-file-load-2", err)
		}
		row := file.newRow(position, deleted, buf)
		if deleted {
			deletedRows = append(deletedRows, row)
		} else {
			rows = append(rows, row)
		}
	}
	file.rows = rows
	file.deletedRows = deletedRows
	file.loaded = true
	debugf("Loaded %d active and %d deleted rows", len(rows), len(deletedRows))
	return nil
}

// Unload discards the materialized rows.
func (file *File) Unload() {
	file.rows = nil
	file.deletedRows = nil
	file.loaded = false
}

// Loaded returns whether the table rows are materialized in memory.
func (file *File) Loaded() bool {
	return file.loaded
}

// RowAt returns the materialized active row at the given list position.
func (file *File) RowAt(position int) (*Row, error) {
	if !file.loaded {
		return nil, newError("dbf-file-rowat-1", fmt.Errorf("table is not loaded"))
	}
	if position < 0 || position >= len(file.rows) {
		return nil, newError("dbf-file-rowat-2", ErrInvalidPosition)
	}
	return file.rows[position], nil
}

// DeletedRowAt returns the materialized deleted row at the given list position.
func (file *File) DeletedRowAt(position int) (*Row, error) {
	if !file.loaded {
		return nil, newError("dbf-file-deletedrowat-1", fmt.Errorf("table is not loaded"))
	}
	if position < 0 || position >= len(file.deletedRows) {
		return nil, newError("dbf-file-deletedrowat-2", ErrInvalidPosition)
	}
	return file.deletedRows[position], nil
}

/**
 *	################################################################
 *	#					Table helpers
 *	################################################################
 */

// Returns if the internal row pointer is at end of file
func (file *File) EOF() bool {
	return file.softEOF || file.rowPointer >= file.header.RowsCount
}

// Returns if the internal row pointer is before the first row
func (file *File) BOF() bool {
	return file.rowPointer == 0
}

// Returns the current row pointer position
func (file *File) Pointer() uint32 {
	return file.rowPointer
}

// Returns the table header struct for inspecting
func (file *File) Header() *Header {
	return file.header
}

// Returns the number of rows
func (file *File) RowsCount() uint32 {
	return file.header.RowsCount
}

// Returns all columns
func (file *File) Columns() []*Column {
	return file.columns
}

// Returns the requested column
func (file *File) Column(position int) *Column {
	if position < 0 || position >= len(file.columns) {
		return nil
	}
	return file.columns[position]
}

// Returns the number of columns
func (file *File) ColumnsCount() uint16 {
	return uint16(len(file.columns))
}

// Returns a slice of all the column names
func (file *File) ColumnNames() []string {
	names := make([]string, len(file.columns))
	for i, column := range file.columns {
		names[i] = column.Name()
	}
	return names
}

// Returns the column position of a column by name or -1 if not found.
// Comparison is case-insensitive when Config.IgnoreCase is set.
func (file *File) ColumnPosByName(name string) int {
	for i, column := range file.columns {
		if column.Name() == name {
			return i
		}
		if file.config.IgnoreCase && strings.EqualFold(column.Name(), name) {
			return i
		}
	}
	return -1
}

// HasColumn returns whether a column with the given name exists.
func (file *File) HasColumn(name string) bool {
	return file.ColumnPosByName(name) >= 0
}

// TableName returns the name of the table derived from the filename.
func (file *File) TableName() string {
	base := filepath.Base(file.config.Filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Stats describes the opened table.
type Stats struct {
	TableName    string
	Version      FileType
	Modified     time.Time
	RowsCount    uint32
	ActiveRows   int
	DeletedRows  int
	ColumnsCount uint16
	RowLength    uint16
	HeaderLength uint16
	Encoding     string
	MemoPath     string
	Loaded       bool
}

// Stats returns the table statistics. Active and deleted counts are known
// once a full iteration or Load completed, before that they reflect the
// rows seen so far.
func (file *File) Stats() *Stats {
	active, deleted := file.activeCount, file.deletedCount
	if file.loaded {
		active, deleted = len(file.rows), len(file.deletedRows)
	}
	return &Stats{
		TableName:    file.TableName(),
		Version:      file.header.Version(),
		Modified:     file.header.Modified(),
		RowsCount:    file.header.RowsCount,
		ActiveRows:   active,
		DeletedRows:  deleted,
		ColumnsCount: uint16(len(file.columns)),
		RowLength:    file.header.RowLength,
		HeaderLength: file.header.FirstRow,
		Encoding:     file.converter.Name(),
		MemoPath:     file.memo.Path(),
		Loaded:       file.loaded,
	}
}

/**
 *	################################################################
 *	#					Warning channel
 *	################################################################
 */

const warningBacklogSize = 32

// OnWarning subscribes a handler to reader warnings. Warnings emitted
// before the subscription (header anomalies during open) are replayed.
func (file *File) OnWarning(handler func(string)) {
	if handler == nil {
		return
	}
	file.handlers = append(file.handlers, handler)
	for _, message := range file.backlog {
		handler(message)
	}
}

func (file *File) warnf(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	debugf("Warning: %s", message)
	if len(file.backlog) < warningBacklogSize {
		file.backlog = append(file.backlog, message)
	}
	for _, handler := range file.handlers {
		handler(message)
	}
}
