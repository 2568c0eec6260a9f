package node

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/common-fate/flowlint/pkg/workflow/value"
)

// RequiredFields are the keys every node is expected to carry.
var RequiredFields = []string{"id", "name", "type", "typeVersion", "position", "parameters"}

// Node is a single processing step of a workflow document.
type Node struct {
	// ID is the identifier connections refer to.
	// It is intended to be unique, but documents may contain duplicates.
	// Only a string id is kept; use HasID to tell an empty id from none.
	// e.g. "9f3a0c11-..."
	ID string `mapstructure:"-"`

	// Name is a human label for the node. It is not guaranteed to be unique.
	// e.g. "Fetch Users"
	Name string `mapstructure:"name"`

	// Type is the namespaced kind of the node.
	// e.g. "n8n-nodes-base.httpRequest"
	Type        string  `mapstructure:"type"`
	TypeVersion float64 `mapstructure:"typeVersion"`

	// Position is a layout hint. Use XY to read it as a coordinate pair.
	Position any `mapstructure:"position"`

	// Parameters are node-kind specific and are not interpreted
	// beyond searching their JSON text.
	Parameters any `mapstructure:"parameters"`

	// ContinueOnFail is only set by a literal true.
	ContinueOnFail bool `mapstructure:"-"`
	// OnError is the raw onError value; any set value counts as handling.
	OnError any `mapstructure:"-"`

	// Index of the node in the document's node list.
	Index int `mapstructure:"-"`
	// Path is the YAML path of the node, e.g. "$.nodes[3]".
	Path string `mapstructure:"-"`

	present map[string]bool
	hasID   bool
}

// Decode a node from its raw document value.
//
// Fields with an unexpected type are left at their zero value rather
// than failing the decode: the structural checker reports malformed
// nodes, so a node must always be produced.
func Decode(raw any, index int) Node {
	n := Node{
		Index:   index,
		Path:    fmt.Sprintf("$.nodes[%d]", index),
		present: map[string]bool{},
	}

	m, ok := value.ToMap(raw)
	if !ok {
		return n
	}
	for k := range m {
		n.present[k] = true
	}

	// ids are compared exactly, so they aren't weakly typed.
	n.ID, n.hasID = m["id"].(string)

	// decode each field on its own so that a single malformed
	// field doesn't discard the others.
	for k, v := range m {
		if v == nil || k == "-" || k == "id" {
			continue
		}
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &n,
		})
		if err != nil {
			continue
		}
		_ = dec.Decode(map[string]any{k: v})
	}

	n.ContinueOnFail = m["continueOnFail"] == true
	n.OnError = m["onError"]

	return n
}

// Has returns true if the key was present on the node object,
// even if its value was null.
func (n *Node) Has(key string) bool {
	return n.present[key]
}

// HasID returns true if the node carries a string id, including "".
func (n *Node) HasID() bool {
	return n.hasID
}

// XY returns the coordinates of the node.
// ok is false unless the position is exactly a two element numeric array.
func (n *Node) XY() (x, y float64, ok bool) {
	pos, isArray := value.Array(n.Position)
	if !isArray || len(pos) != 2 {
		return 0, 0, false
	}
	x, xok := value.Number(pos[0])
	y, yok := value.Number(pos[1])
	if !xok || !yok {
		return 0, 0, false
	}
	return x, y, true
}

// HasErrorHandling returns true if the node exposes explicit
// error handling through continueOnFail or onError.
func (n *Node) HasErrorHandling() bool {
	return n.ContinueOnFail || value.Truthy(n.OnError)
}

// ParametersJSON returns the JSON text of the node parameters.
// ok is false if the node has no parameters key.
func (n *Node) ParametersJSON() (string, bool) {
	if !n.Has("parameters") {
		return "", false
	}
	return value.JSON(n.Parameters), true
}

// Label returns the node name, or a positional label
// for nodes without a name.
func (n *Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return fmt.Sprintf("Node %d", n.Index)
}
