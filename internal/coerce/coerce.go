// Package coerce normalises heterogeneous raw values from stores and forms
// into canonical booleans and dates. Every function here is total: malformed
// input degrades to a safe default instead of raising.
package coerce

import (
	"math"
	"strings"
)

var truthy = map[string]struct{}{
	"true":       {},
	"1":          {},
	"yes":        {},
	"y":          {},
	"sim":        {},
	"verdadeiro": {},
}

// Bool normalises a raw cell value into a boolean. Booleans pass through,
// nil/NaN/blank collapse to false, numbers are non-zero tests, and strings
// are matched case-insensitively against a truthy allow-list. Any
// unrecognised string is false.
func Bool(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return !math.IsNaN(v) && v != 0
	case float32:
		return !math.IsNaN(float64(v)) && v != 0
	case int:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case string:
		token := strings.ToLower(strings.TrimSpace(v))
		_, ok := truthy[token]
		return ok
	default:
		return false
	}
}

// FormatBool renders the literal token stored in the boolean column.
func FormatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
