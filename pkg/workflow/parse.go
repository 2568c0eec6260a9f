package workflow

import (
	"bytes"
	"errors"

	"github.com/goccy/go-yaml"

	"github.com/common-fate/flowlint/pkg/workflow/value"
)

var (
	ErrEmpty       = errors.New("document is empty")
	ErrNotAnObject = errors.New("document root must be an object")
)

// ParseError is returned when a document cannot be parsed.
type ParseError struct {
	Err error
}

func (pe ParseError) Error() string {
	return pe.Err.Error()
}

func (pe ParseError) Unwrap() error {
	return pe.Err
}

// PrettyPrint the error along with the offending document source,
// if the parser reported a position.
func (pe ParseError) PrettyPrint(colored bool) string {
	return yaml.FormatError(pe.Err, colored, true)
}

// Parse a workflow document. JSON is the expected format. Input which
// isn't valid JSON is parsed as YAML, which covers YAML documents and
// reports syntax errors with their position. Object key order is kept.
func Parse(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ParseError{Err: ErrEmpty}
	}

	root, err := decodeJSON(data)
	if err != nil {
		err = yaml.UnmarshalWithOptions(data, &root, yaml.UseOrderedMap())
		if err != nil {
			return nil, ParseError{Err: err}
		}
	}

	obj, ok := root.(yaml.MapSlice)
	if !ok {
		return nil, ParseError{Err: ErrNotAnObject}
	}

	return &Document{root: obj, source: data, text: value.JSON(obj)}, nil
}
