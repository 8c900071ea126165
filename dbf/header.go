package dbf

import (
	"bytes"
	"encoding/binary"
	"time"
)

// Header contains the raw table header fields.
// dBase II files store a different layout, it is normalized into the same
// struct during parsing (no date of last update, FirstRow derived later).
// https://learn.microsoft.com/en-us/previous-versions/visualstudio/foxpro/st4a0s68(v=vs.71)
type Header struct {
	FileType   byte     // File type flag
	Year       uint8    // Last update year (0-99)
	Month      uint8    // Last update month
	Day        uint8    // Last update day
	RowsCount  uint32   // Number of rows in file
	FirstRow   uint16   // Position of first data row
	RowLength  uint16   // Length of one data row, including delete flag
	Reserved   [16]byte // Reserved
	TableFlags byte     // Table flags
	CodePage   byte     // Code page mark
}

// parseHeader decodes the fixed table header from the first file bytes.
// LittleEndian - integers in table files are stored with the least significant byte first.
func parseHeader(b []byte) (*Header, error) {
	if len(b) < headerSizeDBase2 {
		return nil, newError("dbf-header-parse-1", InvalidHeaderError{Reason: "short read"})
	}
	if FileType(b[0]).IsDBaseII() {
		return &Header{
			FileType:  b[0],
			RowsCount: uint32(b[1]),
			RowLength: binary.LittleEndian.Uint16(b[6:8]),
		}, nil
	}
	if len(b) < headerSize {
		return nil, newError("dbf-header-parse-2", InvalidHeaderError{Reason: "short read"})
	}
	h := &Header{}
	err := binary.Read(bytes.NewReader(b[:headerSize]), binary.LittleEndian, h)
	if err != nil {
		return nil, newError("dbf-header-parse-3", err)
	}
	return h, nil
}

// Version returns the file type tag of the table.
func (h *Header) Version() FileType {
	return FileType(h.FileType)
}

// Modified parses the year, month and day of the last update to time.Time.
// The year is stored in two digits, years below 80 are mapped past 2000.
// Returns the zero time when the stored date is out of range (dBase II
// stores no date at all).
func (h *Header) Modified() time.Time {
	if h.Month < 1 || h.Month > 12 || h.Day < 1 || h.Day > 31 {
		return time.Time{}
	}
	year := 1900 + int(h.Year)
	if h.Year < 80 {
		year = 2000 + int(h.Year)
	}
	return time.Date(year, time.Month(h.Month), int(h.Day), 0, 0, 0, 0, time.Local)
}

// ColumnsCount returns the calculated number of columns from the header info
// alone (without the need to read the column info from the header).
// For dBase II the count is only known after the descriptors were walked.
func (h *Header) ColumnsCount() uint16 {
	if h.Version().IsDBaseII() || h.FirstRow < minFirstRow {
		return 0
	}
	return (h.FirstRow - minFirstRow) / columnSize
}

// FileSize returns the calculated file size based on the header info.
// A mismatch against the size on disk is a corruption signal, not an error.
func (h *Header) FileSize() int64 {
	return int64(h.FirstRow) + int64(h.RowsCount)*int64(h.RowLength)
}
