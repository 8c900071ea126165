package dbf

import (
	"bytes"
	"testing"
)

func descriptor(name string, dataType byte, length byte, decimals byte) []byte {
	desc := make([]byte, columnSize)
	copy(desc[:11], name)
	desc[11] = dataType
	desc[16] = length
	desc[17] = decimals
	return desc
}

func TestParseColumns(t *testing.T) {
	buf := bytes.Join([][]byte{
		descriptor("NAME", byte(Character), 10, 0),
		descriptor("AGE", byte(Numeric), 3, 0),
		{byte(ColumnEnd)},
	}, nil)

	columns, consumed := parseColumns(buf, DBaseIII)
	if len(columns) != 2 {
		t.Fatalf("got %d columns, want 2", len(columns))
	}
	if consumed != 2*columnSize+1 {
		t.Errorf("got %d consumed bytes, want %d", consumed, 2*columnSize+1)
	}
	if columns[0].Name() != "NAME" || columns[0].Type() != Character {
		t.Errorf("unexpected first column: %s %s", columns[0].Name(), columns[0].Type())
	}
	if columns[0].Position != 1 {
		t.Errorf("got position %d, want 1", columns[0].Position)
	}
	if columns[1].Position != 11 {
		t.Errorf("got position %d, want 11", columns[1].Position)
	}
}

func TestParseColumnsCharacterLength(t *testing.T) {
	// character columns reuse the decimal byte as high length byte
	buf := bytes.Join([][]byte{
		descriptor("BLOB", byte(Character), 0x10, 0x02),
		{byte(ColumnEnd)},
	}, nil)
	columns, _ := parseColumns(buf, DBaseIII)
	if len(columns) != 1 {
		t.Fatalf("got %d columns, want 1", len(columns))
	}
	if got := columns[0].DataLength(); got != 0x210 {
		t.Errorf("got data length %d, want %d", got, 0x210)
	}
}

func TestParseColumnsEmbeddedTerminator(t *testing.T) {
	// a 0x0D inside descriptor payload must not end the walk, the real
	// terminator is aligned on a descriptor boundary
	first := descriptor("NOTESFIELD", byte(Memo), 4, 0)
	copy(first[12:16], "XXXX")
	first[20] = byte(ColumnEnd)
	buf := bytes.Join([][]byte{
		first,
		descriptor("NAME", byte(Character), 10, 0),
		{byte(ColumnEnd)},
	}, nil)
	columns, _ := parseColumns(buf, FoxPro)
	if len(columns) != 2 {
		t.Fatalf("got %d columns, want 2", len(columns))
	}
}

func TestParseColumnsMostlyZeroTerminator(t *testing.T) {
	// an unaligned terminator is trusted when the preceding 16 bytes are
	// at least 75% zero
	desc := descriptor("NAME", byte(Character), 10, 0)
	buf := append(desc, make([]byte, 20)...)
	buf = append(buf, byte(ColumnEnd))
	columns, _ := parseColumns(buf, FoxPro)
	if len(columns) != 1 {
		t.Fatalf("got %d columns, want 1", len(columns))
	}
}

func TestParseColumnsStopMarkers(t *testing.T) {
	for _, marker := range []byte{byte(EOFMarker), byte(Null)} {
		stop := make([]byte, columnSize)
		stop[0] = marker
		buf := bytes.Join([][]byte{
			descriptor("NAME", byte(Character), 10, 0),
			stop,
		}, nil)
		columns, _ := parseColumns(buf, DBaseIII)
		if len(columns) != 1 {
			t.Errorf("marker 0x%02X: got %d columns, want 1", marker, len(columns))
		}
	}
}

func TestParseColumnsZeroLengthStops(t *testing.T) {
	buf := bytes.Join([][]byte{
		descriptor("NAME", byte(Character), 10, 0),
		descriptor("BROKEN", byte(Character), 0, 0),
		descriptor("AGE", byte(Numeric), 3, 0),
		{byte(ColumnEnd)},
	}, nil)
	columns, _ := parseColumns(buf, DBaseIII)
	if len(columns) != 1 {
		t.Fatalf("a zero length descriptor should stop the walk, got %d columns", len(columns))
	}
}

func TestParseColumnsCap(t *testing.T) {
	buf := make([]byte, 0, 300*columnSize)
	for i := 0; i < 300; i++ {
		buf = append(buf, descriptor("FLD", byte(Character), 1, 0)...)
	}
	columns, _ := parseColumns(buf, DBaseIII)
	if len(columns) != maxColumnCount {
		t.Fatalf("got %d columns, want the %d cap", len(columns), maxColumnCount)
	}
}

func TestParseColumnsDBaseII(t *testing.T) {
	desc := make([]byte, columnSizeDBase2)
	copy(desc[:11], "NAME")
	desc[11] = byte(Character)
	desc[12] = 9
	buf := append(desc, byte(ColumnEnd))
	columns, consumed := parseColumns(buf, DBaseII)
	if len(columns) != 1 {
		t.Fatalf("got %d columns, want 1", len(columns))
	}
	if columns[0].Length != 9 {
		t.Errorf("got length %d, want 9", columns[0].Length)
	}
	if consumed != columnSizeDBase2+1 {
		t.Errorf("got %d consumed, want %d", consumed, columnSizeDBase2+1)
	}
}

func TestValidateColumns(t *testing.T) {
	tests := []struct {
		name    string
		column  *Column
		version FileType
		valid   bool
	}{
		{"integer ok", &Column{DataType: byte(Integer), Length: 4}, FoxPro, true},
		{"integer bad", &Column{DataType: byte(Integer), Length: 2}, FoxPro, false},
		{"logical ok", &Column{DataType: byte(Logical), Length: 1}, FoxPro, true},
		{"logical bad", &Column{DataType: byte(Logical), Length: 8}, FoxPro, false},
		{"currency bad", &Column{DataType: byte(Currency), Length: 4}, FoxPro, false},
		{"date ok", &Column{DataType: byte(Date), Length: 8}, FoxPro, true},
		{"numeric decimals bad", &Column{DataType: byte(Numeric), Length: 5, Decimals: 7}, FoxPro, false},
		{"memo without support", &Column{DataType: byte(Memo), Length: 10}, DBaseIII, false},
		{"memo with support", &Column{DataType: byte(Memo), Length: 4}, FoxPro, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateColumns([]*Column{tt.column}, tt.version)
			if (err == nil) != tt.valid {
				t.Errorf("got error %v, valid=%v", err, tt.valid)
			}
		})
	}
}
