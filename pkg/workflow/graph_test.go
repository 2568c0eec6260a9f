package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/common-fate/flowlint/pkg/dialect/n8n"
)

func mustGraph(t *testing.T, doc string) *Graph {
	t.Helper()
	d, err := Parse([]byte(doc))
	require.NoError(t, err)
	return NewGraph(d, n8n.Dialect)
}

const branching = `{
  "name": "Branching",
  "nodes": [
    {"id": "t", "name": "Trigger", "type": "n8n-nodes-base.manualTrigger"},
    {"id": "if", "name": "Check", "type": "n8n-nodes-base.if"},
    {"id": "a", "name": "Yes", "type": "n8n-nodes-base.set"},
    {"id": "b", "name": "No", "type": "n8n-nodes-base.set"},
    {"id": "c", "name": "Island", "type": "n8n-nodes-base.set"}
  ],
  "connections": {
    "t": {"main": [[{"node": "if"}]]},
    "if": {"main": [[{"node": "a"}], [{"node": "b"}, {"node": "ghost"}]]},
    "nobody": {"main": [[{"node": "a"}]]},
    "bad": "not an object",
    "b": {"main": [[{"node": ""}, {"node": 3}, {"other": "a"}]]}
  }
}`

func TestEdges(t *testing.T) {
	g := mustGraph(t, branching)

	want := []Edge{
		{Source: "t", Port: "main", Branch: 0, Target: "if"},
		{Source: "if", Port: "main", Branch: 0, Target: "a"},
		{Source: "if", Port: "main", Branch: 1, Target: "b"},
		{Source: "if", Port: "main", Branch: 1, Target: "ghost"},
		{Source: "nobody", Port: "main", Branch: 0, Target: "a"},
	}
	assert.Equal(t, want, g.Edges())
	assert.Equal(t, []string{"t", "if", "nobody", "bad", "b"}, g.Sources())
}

func TestEachEdge_Stop(t *testing.T) {
	g := mustGraph(t, branching)

	var got []string
	g.EachEdge(func(e Edge) bool {
		got = append(got, e.Target)
		return len(got) < 2
	})
	assert.Equal(t, []string{"if", "a"}, got)
}

func TestNewGraph(t *testing.T) {
	g := mustGraph(t, branching)

	assert.Len(t, g.Nodes(), 5)
	assert.Equal(t, []string{"t", "if", "a", "b", "c"}, g.IDs())
	assert.True(t, g.Known("a"))
	assert.False(t, g.Known("ghost"))

	// only edges between known nodes are in the graph store.
	am, err := g.G.AdjacencyMap()
	require.NoError(t, err)
	var size int
	for _, targets := range am {
		size += len(targets)
	}
	assert.Equal(t, 3, size)
}

func TestNewGraph_Malformed(t *testing.T) {
	tests := []struct {
		name string
		give string
	}{
		{name: "no nodes", give: `{"name": "x"}`},
		{name: "nodes is an object", give: `{"nodes": {"a": {}}, "connections": {}}`},
		{name: "connections is an array", give: `{"nodes": [], "connections": [1, 2]}`},
		{name: "node is a scalar", give: `{"nodes": ["a", 1, null], "connections": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGraph(t, tt.give)
			assert.Empty(t, g.Edges())
			assert.Empty(t, g.IDs())
			assert.Empty(t, g.Analyses().Dangling())
		})
	}
}
