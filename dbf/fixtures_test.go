package dbf

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// Helpers to build synthetic table files for the tests.

type fixtureColumn struct {
	name     string
	dataType byte
	length   byte
	decimals byte
}

type fixtureTable struct {
	version  byte
	codePage byte
	columns  []fixtureColumn
	rows     [][]byte
	sentinel bool
	// rowsCount overrides the stored row count when non-zero
	rowsCount uint32
}

func (f *fixtureTable) bytes() []byte {
	firstRow := headerSize + len(f.columns)*columnSize + 1
	rowLength := 1
	for _, c := range f.columns {
		length := int(c.length)
		if DataType(c.dataType) == Character {
			length |= int(c.decimals) << 8
		}
		rowLength += length
	}
	rowsCount := uint32(len(f.rows))
	if f.rowsCount != 0 {
		rowsCount = f.rowsCount
	}
	buf := new(bytes.Buffer)
	header := make([]byte, headerSize)
	header[0] = f.version
	header[1], header[2], header[3] = 24, 3, 1
	binary.LittleEndian.PutUint32(header[4:8], rowsCount)
	binary.LittleEndian.PutUint16(header[8:10], uint16(firstRow))
	binary.LittleEndian.PutUint16(header[10:12], uint16(rowLength))
	header[29] = f.codePage
	buf.Write(header)
	for _, c := range f.columns {
		desc := make([]byte, columnSize)
		copy(desc[:11], c.name)
		desc[11] = c.dataType
		desc[16] = c.length
		desc[17] = c.decimals
		buf.Write(desc)
	}
	buf.WriteByte(byte(ColumnEnd))
	for _, row := range f.rows {
		buf.Write(row)
	}
	if f.sentinel {
		buf.WriteByte(byte(EOFMarker))
	}
	return buf.Bytes()
}

func (f *fixtureTable) write(t *testing.T, dir string, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, f.bytes(), 0o600); err != nil {
		t.Fatalf("writing fixture failed: %v", err)
	}
	return path
}

func record(status byte, fields ...[]byte) []byte {
	row := []byte{status}
	for _, field := range fields {
		row = append(row, field...)
	}
	return row
}

// padded right-pads s with spaces to n bytes
func padded(s string, n int) []byte {
	field := make([]byte, n)
	for i := range field {
		field[i] = byte(Blank)
	}
	copy(field, s)
	return field
}

// peopleTable is the two-row people fixture: three stored records, the
// second one deleted.
func peopleTable() *fixtureTable {
	return &fixtureTable{
		version: byte(DBaseIII),
		columns: []fixtureColumn{
			{name: "NAME", dataType: byte(Character), length: 10},
			{name: "BIRTHDATE", dataType: byte(Date), length: 8},
		},
		rows: [][]byte{
			record(byte(Active), padded("Alice", 10), []byte("19870301")),
			record(byte(Deleted), padded("Mallory", 10), []byte("19751224")),
			record(byte(Active), padded("Bob", 10), []byte("19801112")),
		},
		sentinel: true,
	}
}

func openFixture(t *testing.T, fixture *fixtureTable, config *Config) *File {
	t.Helper()
	path := fixture.write(t, t.TempDir(), "people.dbf")
	if config == nil {
		config = NewConfig(path)
	} else {
		config.Filename = path
	}
	file, err := OpenTable(config)
	if err != nil {
		t.Fatalf("opening fixture failed: %v", err)
	}
	t.Cleanup(func() { file.Close() })
	return file
}
