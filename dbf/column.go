package dbf

import (
	"bytes"
	"fmt"
)

// Column contains the decoded column info structure from the table header.
type Column struct {
	FieldName [11]byte // Column name, padded with null characters (0x00)
	DataType  byte     // Column type tag
	Length    uint8    // Length of column (in bytes)
	Decimals  uint8    // Number of decimal places
	Flags     byte     // Column flags
	Position  uint32   // Displacement of column in row, computed while walking the descriptors
}

// Returns the name of the column as a trimmed string (max length 11)
func (c *Column) Name() string {
	name := c.FieldName[:]
	if i := bytes.IndexByte(name, byte(Null)); i >= 0 {
		name = name[:i]
	}
	return string(name)
}

// Returns the type of the column
func (c *Column) Type() DataType {
	return DataType(c.DataType)
}

// DataLength returns the number of bytes the column occupies in a row.
// Character columns reuse the decimal count byte as a high length byte,
// which allows up to 65535 bytes.
func (c *Column) DataLength() int {
	if c.Type() == Character {
		return int(c.Length) | int(c.Decimals)<<8
	}
	return int(c.Length)
}

// findColumnEnd locates the descriptor terminator inside the descriptor
// area. Visual FoxPro and dBase III memo files may carry 0x0D bytes inside
// descriptor payload, so a terminator is trusted only when it sits on a
// descriptor boundary or when the preceding 16 bytes are mostly zero.
func findColumnEnd(buf []byte, step int) int {
	for i := 0; i < len(buf); i++ {
		if buf[i] != byte(ColumnEnd) {
			continue
		}
		if i%step == 0 {
			return i
		}
		low := i - 16
		if low < 0 {
			low = 0
		}
		window := buf[low:i]
		zeros := 0
		for _, b := range window {
			if b == byte(Null) {
				zeros++
			}
		}
		if len(window) > 0 && zeros*4 >= len(window)*3 {
			return i
		}
	}
	return -1
}

// parseColumns walks the descriptor area until the terminator, an EOF
// marker, or a descriptor that cannot be part of the table. A broken
// descriptor stops the walk so the preceding columns are salvaged.
// Returns the columns and the number of descriptor bytes consumed
// (terminator byte included when one was found).
func parseColumns(buf []byte, version FileType) ([]*Column, int) {
	step := columnSize
	if version.IsDBaseII() {
		step = columnSizeDBase2
	}
	region := buf
	terminated := false
	if end := findColumnEnd(buf, step); end >= 0 {
		region = buf[:end]
		terminated = true
	}
	columns := make([]*Column, 0)
	position := uint32(1) // the deletion flag precedes the first column
	consumed := 0
	for offset := 0; offset+step <= len(region); offset += step {
		window := region[offset : offset+step]
		if window[0] == byte(ColumnEnd) || window[0] == byte(EOFMarker) || window[0] == byte(Null) {
			break
		}
		column := parseColumn(window, version)
		if len(column.Name()) == 0 || column.DataLength() == 0 {
			break
		}
		column.Position = position
		position += uint32(column.DataLength())
		columns = append(columns, column)
		consumed += step
		if len(columns) == maxColumnCount {
			break
		}
	}
	if terminated && consumed == len(region) {
		consumed++ // the 0x0D byte itself
	}
	return columns, consumed
}

func parseColumn(window []byte, version FileType) *Column {
	column := &Column{}
	copy(column.FieldName[:], window[:11])
	if version.IsDBaseII() {
		column.DataType = window[11]
		column.Length = window[12]
		column.Decimals = window[15]
		return column
	}
	column.DataType = window[11]
	column.Length = window[16]
	column.Decimals = window[17]
	column.Flags = window[18]
	return column
}

// validateColumns checks the structural constraints of the decoded
// descriptors against the file version. Invoked by the reader after the
// walk, a violation is fatal.
func validateColumns(columns []*Column, version FileType) error {
	for _, column := range columns {
		switch column.Type() {
		case Integer:
			if column.Length != 4 {
				return newError("dbf-column-validate-1", fmt.Errorf("integer column %s has length %d, expected 4", column.Name(), column.Length))
			}
		case Logical:
			if column.Length != 1 {
				return newError("dbf-column-validate-2", fmt.Errorf("logical column %s has length %d, expected 1", column.Name(), column.Length))
			}
		case Currency, Double, DateTime, DateTimeAlt, Date:
			if column.Length != 8 {
				return newError("dbf-column-validate-3", fmt.Errorf("column %s of type %s has length %d, expected 8", column.Name(), column.Type(), column.Length))
			}
		case Numeric, Float:
			if column.Decimals > column.Length {
				return newError("dbf-column-validate-4", fmt.Errorf("column %s has %d decimals in %d bytes", column.Name(), column.Decimals, column.Length))
			}
		case Memo:
			if !version.SupportsMemo() {
				return newError("dbf-column-validate-5", fmt.Errorf("memo column %s in file version %s without memo support", column.Name(), version))
			}
		}
	}
	return nil
}

func hasMemoColumn(columns []*Column) bool {
	for _, column := range columns {
		if column.Type() == Memo {
			return true
		}
	}
	return false
}
