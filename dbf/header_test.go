package dbf

import (
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

func TestParseHeader(t *testing.T) {
	b := make([]byte, 32)
	b[0] = byte(DBaseIII)
	b[1], b[2], b[3] = 24, 3, 1
	binary.LittleEndian.PutUint32(b[4:8], 42)
	binary.LittleEndian.PutUint16(b[8:10], 97)
	binary.LittleEndian.PutUint16(b[10:12], 19)
	b[29] = 0x03

	header, err := parseHeader(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if header.Version() != DBaseIII {
		t.Errorf("got version %v, want %v", header.Version(), DBaseIII)
	}
	if header.RowsCount != 42 {
		t.Errorf("got %d rows, want 42", header.RowsCount)
	}
	if header.FirstRow != 97 {
		t.Errorf("got first row %d, want 97", header.FirstRow)
	}
	if header.RowLength != 19 {
		t.Errorf("got row length %d, want 19", header.RowLength)
	}
	if header.CodePage != 0x03 {
		t.Errorf("got code page 0x%02X, want 0x03", header.CodePage)
	}
	if got, want := header.Modified(), time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local); !got.Equal(want) {
		t.Errorf("got modified %v, want %v", got, want)
	}
	if got := header.ColumnsCount(); got != 2 {
		t.Errorf("got %d columns, want 2", got)
	}
	if got := header.FileSize(); got != 97+42*19 {
		t.Errorf("got file size %d, want %d", got, 97+42*19)
	}
}

func TestParseHeaderDBaseII(t *testing.T) {
	b := make([]byte, 32)
	b[0] = byte(DBaseII)
	b[1] = 9
	binary.LittleEndian.PutUint16(b[6:8], 127)

	header, err := parseHeader(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if header.RowsCount != 9 {
		t.Errorf("got %d rows, want 9", header.RowsCount)
	}
	if header.RowLength != 127 {
		t.Errorf("got row length %d, want 127", header.RowLength)
	}
	if !header.Modified().IsZero() {
		t.Errorf("dBase II header should have no update date, got %v", header.Modified())
	}
	if header.ColumnsCount() != 0 {
		t.Errorf("dBase II column count is only known after the descriptor walk")
	}
}

func TestParseHeaderShortRead(t *testing.T) {
	for _, length := range []int{0, 4, 7, 16, 31} {
		b := make([]byte, length)
		if length > 0 {
			b[0] = byte(DBaseIII)
		}
		_, err := parseHeader(b)
		if length >= headerSize {
			continue
		}
		if err == nil {
			t.Errorf("length %d: expected error", length)
			continue
		}
		var invalid InvalidHeaderError
		if !errors.As(err, &invalid) {
			t.Errorf("length %d: expected InvalidHeaderError, got %v", length, err)
		}
	}
}

func TestHeaderModifiedY2K(t *testing.T) {
	tests := []struct {
		year     uint8
		expected int
	}{
		{0, 2000},
		{24, 2024},
		{79, 2079},
		{80, 1980},
		{99, 1999},
	}
	for _, tt := range tests {
		header := &Header{Year: tt.year, Month: 6, Day: 15}
		if got := header.Modified().Year(); got != tt.expected {
			t.Errorf("year byte %d: got %d, want %d", tt.year, got, tt.expected)
		}
	}
}

func TestHeaderModifiedOutOfRange(t *testing.T) {
	tests := []Header{
		{Month: 0, Day: 1},
		{Month: 13, Day: 1},
		{Month: 1, Day: 0},
		{Month: 1, Day: 32},
	}
	for _, header := range tests {
		if !header.Modified().IsZero() {
			t.Errorf("month %d day %d: expected zero time", header.Month, header.Day)
		}
	}
}
