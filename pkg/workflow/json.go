package workflow

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-yaml"
)

// decodeJSON decodes a JSON document into the same ordered representation
// the YAML decoder produces: objects as yaml.MapSlice, arrays as []any,
// non-negative integers as uint64, negative ones as int64 and other
// numbers as float64.
//
// A key repeated within an object keeps its first position and takes
// its last value.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after the top-level value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		}
		return nil, fmt.Errorf("unexpected %q", t)
	case json.Number:
		return jsonNumber(t)
	default:
		// string, bool or nil
		return t, nil
	}
}

func decodeJSONObject(dec *json.Decoder) (any, error) {
	obj := yaml.MapSlice{}
	index := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}
		v, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		if i, seen := index[key]; seen {
			obj[i].Value = v
			continue
		}
		index[key] = len(obj)
		obj = append(obj, yaml.MapItem{Key: key, Value: v})
	}
	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeJSONArray(dec *json.Decoder) (any, error) {
	arr := []any{}
	for dec.More() {
		v, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	// closing bracket
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

func jsonNumber(n json.Number) (any, error) {
	s := n.String()
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return u, nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	return n.Float64()
}
