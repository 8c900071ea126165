// When reading column values the value returned by this package is always `interface{}`.
//
// The supported column types with their return Go types are:
//
//	Column Type >> Column Type Name >> Golang type
//
//	B  >>  Double  >>  float64
//	C  >>  Character  >>  string
//	D  >>  Date  >>  time.Time
//	F  >>  Float  >>  float64
//	I  >>  Integer  >>  int32
//	L  >>  Logical  >>  bool
//	M  >>  Memo  >>  string
//	M  >>  Memo (Binary)  >>  []byte
//	N  >>  Numeric (0 decimals)  >>  int64
//	N  >>  Numeric (with decimals)  >>  float64
//	T, @  >>  DateTime  >>  time.Time
//	V  >>  Varchar  >>  string
//	Y  >>  Currency  >>  float64
//	P, G, 0 and unknown tags  >>  []byte
//
// Blank Numeric, Float, Date and Logical payloads, a zero memo index and a
// zero Julian day decode to nil. Character and Varchar payloads always
// decode to a string, and Integer, Currency and Double payloads always
// decode to a number. Malformed payloads decode to the in-band
// Invalid value, or fail with FieldParseError when Config.ValidateFields
// is enabled.
package dbf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Interpret converts the raw payload of one column to its Go value.
// For C, V and text M columns a charset conversion is done, for M columns
// the data is read from the memo sidecar.
func (file *File) Interpret(raw []byte, column *Column) (interface{}, error) {
	if len(raw) != column.DataLength() {
		return nil, newError("dbf-interpreter-interpret-1", fmt.Errorf("invalid payload length %d bytes != %d bytes", len(raw), column.DataLength()))
	}
	value, err := file.interpret(raw, column)
	if err == nil {
		return value, nil
	}
	parseErr := FieldParseError{Column: column.Name(), Raw: cloneBytes(raw), Reason: err.Error()}
	if file.config.ValidateFields {
		return nil, newError("dbf-interpreter-interpret-2", parseErr)
	}
	return Invalid{Raw: parseErr.Raw, Reason: parseErr.Reason}, nil
}

func (file *File) interpret(raw []byte, column *Column) (interface{}, error) {
	switch column.Type() {
	case Character, Varchar:
		return file.parseCharacter(raw)
	case Memo:
		return file.parseMemo(raw, column)
	case Integer:
		return int32(binary.LittleEndian.Uint32(raw)), nil
	case Currency:
		// Currency values are stored as ints with 4 decimal places
		return float64(int64(binary.LittleEndian.Uint64(raw))) / 10000, nil
	case Double:
		f := math.Float64frombits(binary.LittleEndian.Uint64(raw))
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("non-finite double")
		}
		return f, nil
	case Date:
		date, err := parseDate(raw)
		if err != nil {
			return nil, err
		}
		if date.IsZero() {
			return nil, nil
		}
		return date, nil
	case DateTime, DateTimeAlt:
		stamp, err := parseDateTime(raw)
		if err != nil {
			return nil, err
		}
		if stamp.IsZero() {
			return nil, nil
		}
		return stamp, nil
	case Logical:
		return parseLogical(raw)
	case Numeric:
		if overflown(raw) || len(sanitizeEmptyBytes(raw)) == 0 {
			return nil, nil
		}
		if column.Decimals == 0 {
			i, err := parseNumericInt(raw)
			if err != nil {
				return nil, err
			}
			return i, nil
		}
		f, err := parseFloat(raw)
		if err != nil {
			return nil, err
		}
		return f, nil
	case Float:
		if overflown(raw) || len(sanitizeEmptyBytes(raw)) == 0 {
			return nil, nil
		}
		f, err := parseFloat(raw)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		// Picture, General, autoincrement and unknown tags stay opaque
		return cloneBytes(raw), nil
	}
}

// Character payloads keep interior NUL bytes, trailing NULs are padding.
func (file *File) parseCharacter(raw []byte) (interface{}, error) {
	raw = bytes.TrimRight(raw, "\x00")
	out, err := file.converter.Decode(raw)
	if err != nil {
		return nil, err
	}
	str := string(out)
	if file.config.TrimSpaces {
		str = strings.TrimRight(str, " ")
	}
	return str, nil
}

func parseLogical(raw []byte) (interface{}, error) {
	if len(raw) != 1 {
		return nil, ErrIncomplete
	}
	switch raw[0] {
	case 'T', 't', 'Y', 'y':
		return true, nil
	case 'F', 'f', 'N', 'n':
		return false, nil
	case '?', byte(Blank), byte(Null):
		return nil, nil
	}
	return nil, fmt.Errorf("invalid logical value %q", raw)
}

func (file *File) parseMemo(raw []byte, column *Column) (interface{}, error) {
	block, err := memoBlock(raw)
	if err != nil {
		return nil, err
	}
	if block <= 0 {
		return nil, nil
	}
	value, err := file.memo.Lookup(block)
	if err != nil {
		if !file.config.ValidateFields {
			file.warnf("memo lookup for column %s block %d failed: %v", column.Name(), block, err)
		}
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	if value.IsText() {
		out, err := file.converter.Decode(value.Data)
		if err != nil {
			return nil, err
		}
		return string(out), nil
	}
	return value.Data, nil
}

// memoBlock decodes the block index of a memo column, either a 4 byte
// little endian integer (FoxPro) or ASCII digits (dBase III).
func memoBlock(raw []byte) (int, error) {
	if len(raw) == 4 {
		return int(int32(binary.LittleEndian.Uint32(raw))), nil
	}
	trimmed := string(bytes.TrimSpace(raw))
	if len(trimmed) == 0 {
		return 0, nil
	}
	block, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid memo index %q", raw)
	}
	return block, nil
}

func cloneBytes(raw []byte) []byte {
	out := make([]byte, len(raw))
	copy(out, raw)
	return out
}
