package veld

import (
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// MaxSafeNumber is the largest integer exactly representable in a float64,
// i.e. 2^53 - 1. The Safe number check bounds values by it.
const MaxSafeNumber = float64(9007199254740991)

// TypeName returns the JSON-ish type name of a decoded value, used in
// invalid_type messages: null, boolean, number, string, array, object.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// NumberValue converts any decoded numeric representation to float64.
// It reports false for non-numeric values and for json.Number contents
// that do not parse.
func NumberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// RenderShort renders a value compactly for embedding in messages.
// Long strings are truncated; containers show only their size.
func RenderShort(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(x)
	case string:
		if len(x) > 50 {
			return strconv.Quote(x[:47] + "...")
		}
		return strconv.Quote(x)
	case json.Number:
		return x.String()
	case []any:
		return fmt.Sprintf("Array(len=%d)", len(x))
	case map[string]any:
		return fmt.Sprintf("Object(keys=%d)", len(x))
	default:
		if f, ok := NumberValue(v); ok {
			return RenderNumber(f)
		}
		return fmt.Sprintf("%v", v)
	}
}

// RenderNumber formats a float64 the way JSON would: integral values
// without a fractional part, everything else in shortest form.
func RenderNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// CanonicalJSON encodes a decoded value deterministically, used by Set to
// deduplicate structurally equal elements. Map keys are sorted by the
// encoder.
func CanonicalJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
