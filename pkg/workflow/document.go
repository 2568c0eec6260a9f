package workflow

import (
	"github.com/goccy/go-yaml"

	"github.com/common-fate/flowlint/pkg/workflow/value"
)

// RequiredFields are the top-level fields every workflow document needs.
var RequiredFields = []string{"name", "nodes", "connections"}

// Document is a parsed workflow document.
//
// Only the shape of the root is interpreted; validating that the
// expected fields are present is the job of the structural checker.
type Document struct {
	root   yaml.MapSlice
	source []byte

	text string
}

// Field returns a top-level field of the document.
func (d *Document) Field(name string) (any, bool) {
	return value.Lookup(d.root, name)
}

// Name of the workflow, or an empty string if it isn't a string.
func (d *Document) Name() string {
	v, _ := d.Field("name")
	s, _ := v.(string)
	return s
}

// Nodes returns the raw node list. ok is false if the document
// has no 'nodes' field or if it isn't an array.
func (d *Document) Nodes() ([]any, bool) {
	v, _ := d.Field("nodes")
	return value.Array(v)
}

// Connections returns the raw connection mapping. ok is false if
// the document has no 'connections' field or if it isn't an object.
func (d *Document) Connections() (yaml.MapSlice, bool) {
	v, _ := d.Field("connections")
	return value.Object(v)
}

// Text returns the compact JSON text of the whole document.
func (d *Document) Text() string {
	return d.text
}

// Source returns the document as it was read.
func (d *Document) Source() []byte {
	return d.source
}
