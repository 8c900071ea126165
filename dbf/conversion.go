package dbf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/carlosjhr64/jd"
)

// parseDate parses a YYYYMMDD date payload. All-spaces and all-zeros
// payloads mean no date and decode to the zero time.
func parseDate(raw []byte) (time.Time, error) {
	trimmed := string(sanitizeEmptyBytes(raw))
	if len(trimmed) == 0 || trimmed == strings.Repeat("0", len(trimmed)) {
		return time.Time{}, nil
	}
	t, err := time.Parse("20060102", trimmed)
	if err != nil {
		return time.Time{}, newError("dbf-conversion-parsedate-1", fmt.Errorf("invalid date %q", trimmed))
	}
	return t, nil
}

// parseDateTime parses a timestamp payload of two little endian uint32s,
// the date in julian day format and the number of milliseconds since
// midnight. Julian day zero means no timestamp.
// Layout documented at http://fox.wikis.com/wc.dll?Wiki~DateTime
func parseDateTime(raw []byte) (time.Time, error) {
	if len(raw) != 8 {
		return time.Time{}, newError("dbf-conversion-parsedatetime-1", ErrIncomplete)
	}
	julDat := int(binary.LittleEndian.Uint32(raw[:4]))
	mSec := int(binary.LittleEndian.Uint32(raw[4:]))
	if julDat == 0 {
		return time.Time{}, nil
	}
	y, m, d := jd.J2YMD(julDat)
	if y < 0 || y > 9999 {
		return time.Time{}, newError("dbf-conversion-parsedatetime-2", fmt.Errorf("julian day %d out of range", julDat))
	}
	nSec := mSec / 1000
	mSec -= nSec * 1000
	return time.Date(y, time.Month(m), d, 0, 0, nSec, mSec*int(time.Millisecond), time.UTC), nil
}

// parseNumericInt parses a decimal ASCII payload to int64
func parseNumericInt(raw []byte) (int64, error) {
	trimmed := string(sanitizeEmptyBytes(raw))
	if len(trimmed) == 0 {
		return 0, nil
	}
	i, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return i, newError("dbf-conversion-parsenumericint-1", fmt.Errorf("invalid number %q", trimmed))
	}
	return i, nil
}

// parseFloat parses a decimal ASCII payload to float64
func parseFloat(raw []byte) (float64, error) {
	trimmed := string(sanitizeEmptyBytes(raw))
	if len(trimmed) == 0 {
		return 0, nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return f, newError("dbf-conversion-parsefloat-1", fmt.Errorf("invalid number %q", trimmed))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, newError("dbf-conversion-parsefloat-2", fmt.Errorf("non-finite number %q", trimmed))
	}
	return f, nil
}

// overflown reports the classic all-asterisks numeric overflow marker
func overflown(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	for _, b := range trimmed {
		if b != '*' {
			return false
		}
	}
	return true
}

func sanitizeEmptyBytes(raw []byte) []byte {
	raw = bytes.ReplaceAll(raw, []byte{byte(Null)}, []byte{})
	return bytes.TrimSpace(raw)
}
