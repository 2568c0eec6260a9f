package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/common-fate/flowlint/pkg/diag"
	"github.com/common-fate/flowlint/pkg/node"
	"github.com/common-fate/flowlint/pkg/workflow"
)

var (
	titleCase = regexp.MustCompile(`^[A-Z][a-z]`)
	lowerCase = regexp.MustCompile(`^[a-z]`)
)

func (c *Catalog) quality() Checker {
	return Checker{
		Name: Quality,
		Rules: []Rule{
			{Name: "nodes-present", Check: nodesPresent("Workflow has no nodes")},
			{Name: "naming", Check: naming},
			{Name: "magic-numbers", Check: c.magicNumbers},
			{Name: "complex-expressions", Check: c.complexExpressions},
			{Name: "error-handling", Check: c.errorHandling},
			{Name: "layout", Check: c.layout},
			{Name: "unused-nodes", Check: c.unusedNodes},
			{Name: "duplication", Check: c.duplication},
		},
	}
}

// nodesPresent reports a document with no node list. The remaining
// quality and performance rules find nothing to report in that case.
func nodesPresent(message string) func(g *workflow.Graph) ([]diag.Diagnostic, error) {
	return func(g *workflow.Graph) ([]diag.Diagnostic, error) {
		if _, ok := g.Doc.Nodes(); ok {
			return nil, nil
		}
		return []diag.Diagnostic{{
			Kind:     diag.NoNodes,
			Severity: diag.Critical,
			Message:  message,
		}}, nil
	}
}

// naming expects every node name to start either in Title Case
// or in lowercase. Unnamed nodes are skipped.
func naming(g *workflow.Graph) ([]diag.Diagnostic, error) {
	for _, n := range g.Nodes() {
		if n.Name == "" {
			continue
		}
		if titleCase.MatchString(n.Name) || lowerCase.MatchString(n.Name) {
			continue
		}
		return []diag.Diagnostic{{
			Kind:     diag.InconsistentNaming,
			Severity: diag.Low,
			Message:  "Node naming is inconsistent (mix of Title Case and lowercase)",
		}}, nil
	}
	return nil, nil
}

func (c *Catalog) magicNumbers(g *workflow.Graph) ([]diag.Diagnostic, error) {
	var out []diag.Diagnostic
	for _, n := range g.Nodes() {
		params, ok := n.ParametersJSON()
		if !ok || !c.magicNumber.MatchString(params) {
			continue
		}
		out = append(out, diag.Diagnostic{
			Kind:     diag.MagicNumber,
			Severity: diag.Low,
			Node:     n.Label(),
			Field:    "parameters",
			Message:  "Node has large numeric values - consider using variables",
			Hint:     "Use {{$env.VARIABLE}} for configuration values",
			Path:     n.Path + ".parameters",
		})
	}
	return out, nil
}

func (c *Catalog) complexExpressions(g *workflow.Graph) ([]diag.Diagnostic, error) {
	var out []diag.Diagnostic
	marker := c.dialect.ExpressionMarker
	for _, n := range g.Nodes() {
		params, ok := n.ParametersJSON()
		if !ok || utf16Len(params) <= c.thresholds.ExpressionLength {
			continue
		}
		count := strings.Count(params, marker)
		if count <= c.thresholds.ExpressionCount {
			continue
		}
		out = append(out, diag.Diagnostic{
			Kind:     diag.ComplexExpressions,
			Severity: diag.Medium,
			Node:     n.Label(),
			Field:    "parameters",
			Message:  fmt.Sprintf("Node has %d expressions - consider simplifying", count),
			Hint:     "Break complex logic into multiple nodes",
			Path:     n.Path + ".parameters",
		})
	}
	return out, nil
}

// utf16Len returns the length of s in UTF-16 code units, the unit
// workflow editors measure text in.
func utf16Len(s string) int {
	var n int
	for _, r := range s {
		n++
		if r > 0xFFFF {
			n++
		}
	}
	return n
}

// errorHandling compares the number of API-like nodes with the number
// of nodes (of any kind) which declare explicit error handling.
func (c *Catalog) errorHandling(g *workflow.Graph) ([]diag.Diagnostic, error) {
	var handled, api int
	for _, n := range g.Nodes() {
		if n.HasErrorHandling() {
			handled++
		}
		if c.dialect.IsAPI(n.Type) {
			api++
		}
	}

	if api == 0 || float64(handled) >= float64(api)*c.thresholds.ErrorHandlingRatio {
		return nil, nil
	}
	return []diag.Diagnostic{{
		Kind:     diag.InsufficientErrorHandling,
		Severity: diag.Medium,
		Message:  fmt.Sprintf("Only %d/%d API nodes have error handling", handled, api),
		Hint:     "Add error handling to API/database nodes",
	}}, nil
}

// layout expects each node to be placed after its predecessor in
// document order, either left-to-right or top-to-bottom, allowing for
// some slack. Pairs where either node has no valid position are skipped.
func (c *Catalog) layout(g *workflow.Graph) ([]diag.Diagnostic, error) {
	nodes := g.Nodes()
	tol := c.thresholds.LayoutTolerance
	for i := 1; i < len(nodes); i++ {
		px, py, prevOK := nodes[i-1].XY()
		x, y, ok := nodes[i].XY()
		if !prevOK || !ok {
			continue
		}
		if x >= px-tol || y >= py-tol {
			continue
		}
		return []diag.Diagnostic{{
			Kind:     diag.DisorganizedLayout,
			Severity: diag.Low,
			Message:  "Node layout could be more organized",
			Hint:     "Arrange nodes in clear left-to-right or top-to-bottom flow",
		}}, nil
	}
	return nil, nil
}

// unusedNodes reports nodes which take part in no connection.
// Entry nodes are exempt, as is any document without a connection mapping.
func (c *Catalog) unusedNodes(g *workflow.Graph) ([]diag.Diagnostic, error) {
	if _, ok := g.Doc.Connections(); !ok {
		return nil, nil
	}

	a := g.Analyses()
	var out []diag.Diagnostic
	for _, n := range g.Nodes() {
		if a.Connected(n.ID) || c.dialect.IsEntry(n.Type) {
			continue
		}
		out = append(out, diag.Diagnostic{
			Kind:     diag.UnusedNode,
			Severity: diag.Medium,
			Node:     n.Label(),
			Message:  "Node is not connected to workflow - is this intentional?",
			Path:     n.Path,
		})
	}
	return out, nil
}

// duplication suggests consolidating node types which appear many times.
// Groups are reported in the order their type first appears.
func (c *Catalog) duplication(g *workflow.Graph) ([]diag.Diagnostic, error) {
	var order []string
	groups := map[string][]node.Node{}
	for _, n := range g.Nodes() {
		if _, ok := groups[n.Type]; !ok {
			order = append(order, n.Type)
		}
		groups[n.Type] = append(groups[n.Type], n)
	}

	var out []diag.Diagnostic
	for _, t := range order {
		count := len(groups[t])
		if count <= c.thresholds.DuplicateTypeCount || c.dialect.IsBranching(t) {
			continue
		}
		out = append(out, diag.Diagnostic{
			Kind:     diag.PossibleDuplication,
			Severity: diag.Low,
			Field:    "type",
			Message:  fmt.Sprintf("Workflow has %d nodes of type %s", count, t),
			Hint:     "Consider consolidating similar operations",
		})
	}
	return out, nil
}
