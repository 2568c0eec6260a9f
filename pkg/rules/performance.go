package rules

import (
	"fmt"

	"github.com/common-fate/flowlint/pkg/diag"
	"github.com/common-fate/flowlint/pkg/node"
	"github.com/common-fate/flowlint/pkg/workflow"
)

func (c *Catalog) performance() Checker {
	return Checker{
		Name: Performance,
		Rules: []Rule{
			{Name: "nodes-present", Check: nodesPresent("Cannot analyze performance without nodes")},
			{Name: "sequential-requests", Check: c.sequentialRequests},
			{Name: "rate-limiting", Check: c.rateLimiting},
			{Name: "pagination", Check: c.pagination},
			{Name: "transformations", Check: c.transformations},
			{Name: "execution-time", Check: c.executionTime},
		},
	}
}

// sequentialRequests counts HTTP request nodes which are directly
// connected to the HTTP request node before them in document order.
func (c *Catalog) sequentialRequests(g *workflow.Graph) ([]diag.Diagnostic, error) {
	if _, ok := g.Doc.Connections(); !ok {
		return nil, nil
	}

	var http []node.Node
	for _, n := range g.Nodes() {
		if n.Type == c.dialect.HTTPType {
			http = append(http, n)
		}
	}

	a := g.Analyses()
	var sequential int
	for i := 1; i < len(http); i++ {
		if a.Adjacent(http[i-1].ID, http[i].ID) {
			sequential++
		}
	}

	if sequential == 0 {
		return nil, nil
	}
	return []diag.Diagnostic{{
		Kind:        diag.ParallelRequests,
		Severity:    diag.Medium,
		Message:     fmt.Sprintf("Found %d sequential HTTP requests", sequential),
		Improvement: "Consider making independent requests parallel",
		Hint:        "Use SplitInBatches node to process requests concurrently",
	}}, nil
}

func (c *Catalog) rateLimiting(g *workflow.Graph) ([]diag.Diagnostic, error) {
	var api int
	var limited bool
	for _, n := range g.Nodes() {
		if c.dialect.IsRateLimited(n.Type) {
			api++
		}
		if n.Type == c.dialect.WaitType || c.dialect.HasRateLimitHint(n.Name) {
			limited = true
		}
	}

	if api <= c.thresholds.RateLimitNodes || limited {
		return nil, nil
	}
	return []diag.Diagnostic{{
		Kind:        diag.NoRateLimiting,
		Severity:    diag.High,
		Message:     fmt.Sprintf("%d API calls without rate limiting", api),
		Improvement: "Add rate limiting to avoid API throttling",
		Hint:        "Insert Wait nodes between API calls or use SplitInBatches with delay",
	}}, nil
}

func (c *Catalog) pagination(g *workflow.Graph) ([]diag.Diagnostic, error) {
	var sources int
	var batched bool
	for _, n := range g.Nodes() {
		if c.dialect.IsDataSource(n.Type) {
			sources++
		}
		if (c.dialect.BatchType != "" && n.Type == c.dialect.BatchType) || c.dialect.HasBatchHint(n.Name) {
			batched = true
		}
	}

	if sources <= c.thresholds.PaginationNodes || batched {
		return nil, nil
	}
	return []diag.Diagnostic{{
		Kind:        diag.NoPagination,
		Severity:    diag.Medium,
		Message:     "Large data operations without pagination",
		Improvement: "Add pagination for large datasets",
		Hint:        "Use SplitInBatches node to process data in chunks",
	}}, nil
}

func (c *Catalog) transformations(g *workflow.Graph) ([]diag.Diagnostic, error) {
	var sets int
	for _, n := range g.Nodes() {
		if c.dialect.SetType != "" && n.Type == c.dialect.SetType {
			sets++
		}
	}

	if sets <= c.thresholds.SetNodes {
		return nil, nil
	}
	return []diag.Diagnostic{{
		Kind:        diag.MultipleTransformations,
		Severity:    diag.Low,
		Message:     fmt.Sprintf("%d Set nodes - data transformation could be more efficient", sets),
		Improvement: "Consider combining multiple Set nodes into fewer operations",
		Hint:        "Merge adjacent Set nodes when possible",
	}}, nil
}

func (c *Catalog) executionTime(g *workflow.Graph) ([]diag.Diagnostic, error) {
	est := c.EstimateSeconds(g)
	if est <= c.thresholds.SlowExecution {
		return nil, nil
	}
	return []diag.Diagnostic{{
		Kind:        diag.SlowExecution,
		Severity:    diag.Medium,
		Message:     fmt.Sprintf("Estimated execution time is %.1fs", est),
		Improvement: "Consider optimizing for faster execution",
		Hint:        "Review if all operations are necessary or can be optimized",
	}}, nil
}
