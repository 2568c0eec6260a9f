// Package value contains helpers for the untyped values a workflow
// document decodes into.
//
// Objects decode into yaml.MapSlice so that key order is kept,
// arrays into []any and scalars into string, bool, nil or one of
// Go's numeric types.
package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/goccy/go-yaml"
)

// Lookup a key in an object value.
// ok is false if v is not an object or does not contain the key.
func Lookup(v any, key string) (any, bool) {
	switch m := v.(type) {
	case yaml.MapSlice:
		for _, item := range m {
			if keyString(item.Key) == key {
				return item.Value, true
			}
		}
	case map[string]any:
		val, ok := m[key]
		return val, ok
	}
	return nil, false
}

// Object returns the value as an ordered object.
func Object(v any) (yaml.MapSlice, bool) {
	m, ok := v.(yaml.MapSlice)
	return m, ok
}

// Array returns the value as an array.
func Array(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

// Key returns the string form of an object key.
func Key(item yaml.MapItem) string {
	return keyString(item.Key)
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

// ToMap converts the top level of an object value into a map,
// so that it can be decoded with mapstructure.
// Nested objects are left as they are.
func ToMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case yaml.MapSlice:
		out := make(map[string]any, len(m))
		for _, item := range m {
			out[keyString(item.Key)] = item.Value
		}
		return out, true
	case map[string]any:
		return m, true
	}
	return nil, false
}

// Number returns the value as a float64 if it is numeric.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
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
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Truthy reports whether the value would be considered set:
// nil, false, zero, NaN and the empty string are not.
// Empty arrays and objects are.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}
	if n, ok := Number(v); ok {
		return n != 0 && !math.IsNaN(n)
	}
	return true
}

// JSON returns the compact JSON text of a value. Object keys keep their
// document order and HTML characters are not escaped, so the output is
// stable for the same input and matches what a JSON.stringify of the
// original document would produce.
func JSON(v any) string {
	var buf bytes.Buffer
	writeJSON(&buf, v)
	return buf.String()
}

func writeJSON(buf *bytes.Buffer, v any) {
	switch t := v.(type) {
	case yaml.MapSlice:
		buf.WriteByte('{')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeScalar(buf, keyString(item.Key))
			buf.WriteByte(':')
			writeJSON(buf, item.Value)
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, el := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSON(buf, el)
		}
		buf.WriteByte(']')
	default:
		writeScalar(buf, v)
	}
}

func writeScalar(buf *bytes.Buffer, v any) {
	if n, ok := Number(v); ok && (math.IsNaN(n) || math.IsInf(n, 0)) {
		// JSON has no representation for these
		buf.WriteString("null")
		return
	}

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		// values which cannot be represented fall back to their Go
		// string form so that the text stays searchable.
		_ = enc.Encode(fmt.Sprint(v))
	}
	// Encode always terminates the value with a newline.
	buf.Truncate(buf.Len() - 1)
}
