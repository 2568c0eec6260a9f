package workflow

import (
	"strconv"

	"github.com/common-fate/flowlint/pkg/dialect"
	"github.com/common-fate/flowlint/pkg/node"
	"github.com/common-fate/flowlint/pkg/workflow/value"
	"github.com/dominikbraun/graph"
	"github.com/goccy/go-yaml"
)

// Edge is a directed connection from an output port of a source node
// to a target node. Branch is the index of the parallel output list
// the target appears in.
//
// e.g.
//
//	"connections": {
//	  "A": {
//	    "main": [        <- Port="main"
//	      [              <- Branch=0
//	        {"node": "B"} <- Target="B"
//	      ]
//	    ]
//	  }
//	}
type Edge struct {
	Source string
	Port   string
	Branch int
	Target string
}

type Graph struct {
	Doc     *Document
	Dialect dialect.Dialect

	// G is the underlying graph data structure.
	// It contains one vertex per distinct node ID and only the edges
	// where both endpoints are known nodes. Dangling edges are only
	// visible through EachEdge.
	G graph.Graph[string, string]

	nodes []node.Node
	// byID maps node IDs to every node carrying that ID.
	byID map[string][]*node.Node

	analyses *Analyses
}

// NewGraph builds the workflow graph of a document.
// Absent or malformed 'nodes' and 'connections' fields result
// in an empty graph.
func NewGraph(doc *Document, d dialect.Dialect) *Graph {
	g := &Graph{
		Doc:     doc,
		Dialect: d,
		G:       graph.New(graph.StringHash, graph.Directed()),
		byID:    map[string][]*node.Node{},
	}

	raw, _ := doc.Nodes()
	g.nodes = make([]node.Node, len(raw))
	for i, r := range raw {
		g.nodes[i] = node.Decode(r, i)
	}

	for i := range g.nodes {
		n := &g.nodes[i]
		if !n.HasID() {
			continue
		}
		g.byID[n.ID] = append(g.byID[n.ID], n)

		// it's okay if we've already inserted a vertex for a duplicate ID.
		_ = g.G.AddVertex(n.ID, graph.VertexAttribute("label", n.Label()))
	}

	g.EachEdge(func(e Edge) bool {
		if !g.Known(e.Source) || !g.Known(e.Target) {
			return true
		}
		// edges between the same two nodes on different ports or
		// branches collapse into a single graph edge.
		_ = g.G.AddEdge(e.Source, e.Target,
			graph.EdgeAttribute("label", e.Port+"["+strconv.Itoa(e.Branch)+"]"),
		)
		return true
	})

	g.analyses = newAnalyses(g)

	return g
}

// Nodes returns every node in document order.
func (g *Graph) Nodes() []node.Node {
	return g.nodes
}

// NodesByID returns every node carrying the ID.
func (g *Graph) NodesByID(id string) []*node.Node {
	return g.byID[id]
}

// IDs returns every distinct node ID in order of first appearance.
func (g *Graph) IDs() []string {
	var ids []string
	seen := map[string]bool{}
	for i := range g.nodes {
		n := &g.nodes[i]
		if !n.HasID() || seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		ids = append(ids, n.ID)
	}
	return ids
}

// Known returns true if at least one node carries the ID.
func (g *Graph) Known(id string) bool {
	return len(g.byID[id]) > 0
}

// Sources returns the source keys of the connection mapping
// in document order.
func (g *Graph) Sources() []string {
	conns, _ := g.Doc.Connections()
	sources := make([]string, 0, len(conns))
	for _, item := range conns {
		sources = append(sources, value.Key(item))
	}
	return sources
}

// EachEdge calls fn for every edge in document order: source keys,
// then output ports, then branch lists, then targets within a branch.
// Iteration stops if fn returns false.
//
// Entries which don't have the expected shape are skipped.
// Targets are only considered if their 'node' field is a non-empty string.
func (g *Graph) EachEdge(fn func(e Edge) bool) {
	conns, _ := g.Doc.Connections()
	for _, src := range conns {
		if !walkSource(src, fn) {
			return
		}
	}
}

// walkSource calls fn for every edge of a single connection source.
// It returns false if fn stopped the iteration.
func walkSource(src yaml.MapItem, fn func(e Edge) bool) bool {
	outputs, ok := value.Object(src.Value)
	if !ok {
		return true
	}
	for _, port := range outputs {
		branches, ok := value.Array(port.Value)
		if !ok {
			continue
		}
		for bi, branch := range branches {
			targets, ok := value.Array(branch)
			if !ok {
				continue
			}
			for _, t := range targets {
				v, _ := value.Lookup(t, "node")
				target, ok := v.(string)
				if !ok || target == "" {
					continue
				}
				e := Edge{
					Source: value.Key(src),
					Port:   value.Key(port),
					Branch: bi,
					Target: target,
				}
				if !fn(e) {
					return false
				}
			}
		}
	}
	return true
}

// Edges returns every edge in document order.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	g.EachEdge(func(e Edge) bool {
		edges = append(edges, e)
		return true
	})
	return edges
}

// Analyses returns the derived views over the graph.
func (g *Graph) Analyses() *Analyses {
	return g.analyses
}
