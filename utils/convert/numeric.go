package convert

import (
	"encoding/json"
	"strconv"
)

// ToFloat64 coerces a JSON-decoded scalar to float64. Engine responses
// carry counts and bucket keys as float64, int64 or json.Number
// depending on the decoder.
func ToFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// ToInt64 coerces a JSON-decoded scalar to int64.
func ToInt64(v any) (int64, bool) {
	if f, ok := ToFloat64(v); ok {
		return int64(f), true
	}
	return 0, false
}

// FormatFloat renders a float without trailing zeros, so range bounds
// read as "50" rather than "50.000000".
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
