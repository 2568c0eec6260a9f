package rules

import (
	"math"

	"github.com/common-fate/flowlint/pkg/node"
	"github.com/common-fate/flowlint/pkg/workflow"
)

// Metrics are informational measurements of a workflow.
// They are reported alongside the performance checker's diagnostics.
type Metrics struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
	// Complexity is round((nodes*1.5 + edges) / 2).
	Complexity int `json:"complexity"`
	// EstimatedSeconds is a rough estimate of a single execution.
	EstimatedSeconds float64 `json:"estimatedSeconds"`
}

// Measure a workflow.
func (c *Catalog) Measure(g *workflow.Graph) Metrics {
	nodes := len(g.Nodes())
	edges := len(g.Edges())
	return Metrics{
		Nodes:            nodes,
		Edges:            edges,
		Complexity:       int(math.Round((float64(nodes)*1.5 + float64(edges)) / 2)),
		EstimatedSeconds: c.EstimateSeconds(g),
	}
}

// EstimateSeconds sums a fixed cost per node category.
// Wait nodes cost their configured amount.
func (c *Catalog) EstimateSeconds(g *workflow.Graph) float64 {
	var total float64
	for _, n := range g.Nodes() {
		total += c.cost(n)
	}
	return total
}

func (c *Catalog) cost(n node.Node) float64 {
	d := c.dialect
	t := c.thresholds
	switch {
	case d.IsHTTP(n.Type):
		return t.HTTPCost
	case d.IsDatabase(n.Type):
		return t.DatabaseCost
	case d.IsSpreadsheet(n.Type):
		return t.SpreadsheetCost
	case n.Type == d.WaitType:
		if d.WaitSeconds != nil {
			if secs, ok := d.WaitSeconds(n.Parameters); ok {
				return secs
			}
		}
		return t.DefaultWaitCost
	}
	return t.OtherCost
}
