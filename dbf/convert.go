package dbf

import (
	"strings"
	"time"

	"github.com/carlosjhr64/jd"
)

// Convert year, month and day to a julian day number
// (julian day number -> days since 01-01-4712 BC)
func YMD2JD(y, m, d int) int {
	return jd.YMD2J(y, m, d)
}

// Convert julian day number to year, month and day
// (julian day number -> days since 01-01-4712 BC)
func JD2YMD(date int) (int, int, int) {
	return jd.J2YMD(date)
}

/**
 *	################################################################
 *	#		casting helper functions for field values
 *	################################################################
 */

// ToString always returns a string
func ToString(in interface{}) string {
	if str, ok := in.(string); ok {
		return str
	}
	return ""
}

// ToTrimmedString always returns a string with spaces trimmed
func ToTrimmedString(in interface{}) string {
	if str, ok := in.(string); ok {
		return strings.TrimSpace(str)
	}
	return ""
}

// ToInt64 always returns an int64
func ToInt64(in interface{}) int64 {
	if i, ok := in.(int64); ok {
		return i
	}
	if i, ok := in.(int32); ok {
		return int64(i)
	}
	return 0
}

// ToFloat64 always returns a float64
func ToFloat64(in interface{}) float64 {
	if f, ok := in.(float64); ok {
		return f
	}
	return 0.0
}

// ToTime always returns a time.Time
func ToTime(in interface{}) time.Time {
	if t, ok := in.(time.Time); ok {
		return t
	}
	return time.Time{}
}

// ToBool always returns a boolean
func ToBool(in interface{}) bool {
	if b, ok := in.(bool); ok {
		return b
	}
	return false
}

// ToBytes always returns a byte slice
func ToBytes(in interface{}) []byte {
	if b, ok := in.([]byte); ok {
		return b
	}
	return nil
}
