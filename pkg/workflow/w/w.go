// package 'w' contains helper methods for building workflow documents.
// It is used as a convenience method when writing tests for
// flowlint checkers.
package w

import (
	"encoding/json"
	"sort"
)

const (
	Manual  = "n8n-nodes-base.manualTrigger"
	Webhook = "n8n-nodes-base.webhook"
	Start   = "n8n-nodes-base.start"
	HTTP    = "n8n-nodes-base.httpRequest"
	Wait    = "n8n-nodes-base.wait"
	Set     = "n8n-nodes-base.set"
	If      = "n8n-nodes-base.if"
	Code    = "n8n-nodes-base.code"
	Sheets  = "n8n-nodes-base.googleSheets"
	Batches = "n8n-nodes-base.splitInBatches"
)

// N is a node of a test workflow.
type N struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Type           string         `json:"type"`
	TypeVersion    float64        `json:"typeVersion"`
	Position       []float64      `json:"position"`
	Parameters     map[string]any `json:"parameters"`
	ContinueOnFail bool           `json:"continueOnFail,omitempty"`
	OnError        string         `json:"onError,omitempty"`
}

// Node creates a new node with empty parameters.
// Nodes without a position are laid out left-to-right when the
// workflow is built.
func Node(id, name, nodeType string) N {
	return N{ID: id, Name: name, Type: nodeType, TypeVersion: 1, Parameters: map[string]any{}}
}

// With sets a parameter on the node.
//
// Usage:
//
//	w.Node("a", "Fetch", w.HTTP).With("url", "https://example.com")
func (n N) With(key string, value any) N {
	params := map[string]any{}
	for k, v := range n.Parameters {
		params[k] = v
	}
	params[key] = value
	n.Parameters = params
	return n
}

// At sets the position of the node.
func (n N) At(x, y float64) N {
	n.Position = []float64{x, y}
	return n
}

// Handled enables continueOnFail on the node.
func (n N) Handled() N {
	n.ContinueOnFail = true
	return n
}

type target struct {
	Node  string `json:"node"`
	Type  string `json:"type"`
	Index int    `json:"index"`
}

// Builder builds a workflow document.
type Builder struct {
	name        string
	nodes       []N
	connections map[string][]string
}

// New creates a workflow builder with a name.
func New(name string) *Builder {
	return &Builder{name: name, connections: map[string][]string{}}
}

// Add nodes to the workflow.
func (b *Builder) Add(nodes ...N) *Builder {
	b.nodes = append(b.nodes, nodes...)
	return b
}

// Connect the 'main' output of one node to another, by node ID.
func (b *Builder) Connect(from, to string) *Builder {
	b.connections[from] = append(b.connections[from], to)
	return b
}

// Chain connects each node to the next, by node ID.
func (b *Builder) Chain(ids ...string) *Builder {
	for i := 1; i < len(ids); i++ {
		b.Connect(ids[i-1], ids[i])
	}
	return b
}

// Doc returns the document as a generic map, so that tests can remove
// or replace fields before encoding it.
func (b *Builder) Doc() map[string]any {
	nodes := make([]N, len(b.nodes))
	for i, n := range b.nodes {
		if n.Position == nil {
			n.Position = []float64{float64(i) * 250, 300}
		}
		nodes[i] = n
	}

	connections := map[string]any{}
	sources := make([]string, 0, len(b.connections))
	for src := range b.connections {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	for _, src := range sources {
		var targets []target
		for _, t := range b.connections[src] {
			targets = append(targets, target{Node: t, Type: "main"})
		}
		connections[src] = map[string]any{"main": [][]target{targets}}
	}

	return map[string]any{
		"name":        b.name,
		"nodes":       nodes,
		"connections": connections,
	}
}

// JSON encodes the workflow document.
func (b *Builder) JSON() []byte {
	return Encode(b.Doc())
}

// Encode a document value as indented JSON.
func Encode(doc any) []byte {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		panic(err)
	}
	return out
}
