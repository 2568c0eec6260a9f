package workflow

import (
	"sync"

	"github.com/common-fate/flowlint/pkg/workflow/value"
	"github.com/dominikbraun/graph"
)

const (
	EndSource = "source"
	EndTarget = "target"
)

// DanglingRef is a connection endpoint which refers to a node ID
// that no node carries.
type DanglingRef struct {
	ID string
	// End is EndSource or EndTarget.
	End string
}

// Analyses are read-only views derived from a Graph.
// They are computed on first use and shared by every rule,
// so they are safe for concurrent use.
type Analyses struct {
	g *Graph

	once       sync.Once
	duplicates map[string]int
	connected  map[string]bool
	dangling   []DanglingRef
	adjacency  map[string]map[string]bool
	reachable  map[string]bool
}

func newAnalyses(g *Graph) *Analyses {
	return &Analyses{g: g}
}

func (a *Analyses) compute() {
	a.once.Do(func() {
		g := a.g

		// duplicate IDs
		a.duplicates = map[string]int{}
		for id, nodes := range g.byID {
			if len(nodes) > 1 {
				a.duplicates[id] = len(nodes)
			}
		}

		// connected IDs and dangling references.
		// every source key counts as connected, even if it has no targets.
		a.connected = map[string]bool{}
		conns, _ := g.Doc.Connections()
		for _, item := range conns {
			src := value.Key(item)
			a.connected[src] = true
			if !g.Known(src) {
				a.dangling = append(a.dangling, DanglingRef{ID: src, End: EndSource})
			}
			walkSource(item, func(e Edge) bool {
				a.connected[e.Target] = true
				if !g.Known(e.Target) {
					a.dangling = append(a.dangling, DanglingRef{ID: e.Target, End: EndTarget})
				}
				return true
			})
		}

		a.adjacency = buildAdjacency(g)
		a.reachable = buildReachable(g)
	})
}

func buildAdjacency(g *Graph) map[string]map[string]bool {
	adj := map[string]map[string]bool{}
	am, err := g.G.AdjacencyMap()
	if err == nil {
		for src, targets := range am {
			adj[src] = map[string]bool{}
			for target := range targets {
				adj[src][target] = true
			}
		}
		return adj
	}

	// fall back to walking the edges if the graph store failed us.
	g.EachEdge(func(e Edge) bool {
		if !g.Known(e.Source) || !g.Known(e.Target) {
			return true
		}
		if adj[e.Source] == nil {
			adj[e.Source] = map[string]bool{}
		}
		adj[e.Source][e.Target] = true
		return true
	})
	return adj
}

// buildReachable walks the graph breadth-first from every entry node.
func buildReachable(g *Graph) map[string]bool {
	reachable := map[string]bool{}
	for _, n := range g.nodes {
		if !n.HasID() || !g.Dialect.IsEntry(n.Type) || reachable[n.ID] {
			continue
		}
		_ = graph.BFS(g.G, n.ID, func(k string) bool {
			reachable[k] = true
			return false // continue traversal
		})
	}
	return reachable
}

// DuplicateIDs returns the IDs carried by two or more nodes,
// mapped to the number of nodes carrying them.
func (a *Analyses) DuplicateIDs() map[string]int {
	a.compute()
	return a.duplicates
}

// IsDuplicate returns true if the ID is carried by two or more nodes.
func (a *Analyses) IsDuplicate(id string) bool {
	return a.DuplicateIDs()[id] > 1
}

// Connected returns true if the ID is a connection source key or the
// target of any edge. All nodes sharing a connected ID are connected.
func (a *Analyses) Connected(id string) bool {
	a.compute()
	return a.connected[id]
}

// Dangling returns the connection endpoints which refer to unknown
// node IDs, in the order the connections are declared.
func (a *Analyses) Dangling() []DanglingRef {
	a.compute()
	return a.dangling
}

// Adjacent returns true if there is a direct edge from one node to another,
// on any port or branch.
func (a *Analyses) Adjacent(from, to string) bool {
	a.compute()
	return a.adjacency[from][to]
}

// Reachable returns true if the node can be reached from an entry node.
func (a *Analyses) Reachable(id string) bool {
	a.compute()
	return a.reachable[id]
}
