package rules

import (
	"fmt"

	"github.com/common-fate/flowlint/pkg/diag"
	"github.com/common-fate/flowlint/pkg/node"
	"github.com/common-fate/flowlint/pkg/workflow"
	"github.com/common-fate/flowlint/pkg/workflow/value"
)

func (c *Catalog) structural() Checker {
	return Checker{
		Name: Structural,
		Rules: []Rule{
			{Name: "required-fields", Check: requiredFields},
			{Name: "nodes-array", Check: nodesArray},
			{Name: "node-fields", Check: nodeFields},
			{Name: "node-position", Check: nodePosition},
			{Name: "duplicate-ids", Check: duplicateIDs},
			{Name: "connection-refs", Check: connectionRefs},
		},
	}
}

// requiredFields reports top-level fields which are absent or unset.
func requiredFields(g *workflow.Graph) ([]diag.Diagnostic, error) {
	var out []diag.Diagnostic
	for _, f := range workflow.RequiredFields {
		v, ok := g.Doc.Field(f)
		if ok && value.Truthy(v) {
			continue
		}
		out = append(out, diag.Diagnostic{
			Kind:     diag.MissingField,
			Severity: diag.Critical,
			Field:    f,
			Message:  fmt.Sprintf("Missing required field: %s", f),
		})
	}
	return out, nil
}

func nodesArray(g *workflow.Graph) ([]diag.Diagnostic, error) {
	if _, ok := g.Doc.Nodes(); ok {
		return nil, nil
	}
	d := diag.Diagnostic{
		Kind:     diag.InvalidType,
		Severity: diag.Critical,
		Field:    "nodes",
		Message:  "nodes must be an array",
	}
	if _, present := g.Doc.Field("nodes"); present {
		d.Path = "$.nodes"
	}
	return []diag.Diagnostic{d}, nil
}

// nodeFields reports every required key missing from a node.
// A key which is present with a null value is not missing.
func nodeFields(g *workflow.Graph) ([]diag.Diagnostic, error) {
	var out []diag.Diagnostic
	for _, n := range g.Nodes() {
		for _, f := range node.RequiredFields {
			if n.Has(f) {
				continue
			}
			out = append(out, diag.Diagnostic{
				Kind:     diag.MissingNodeField,
				Severity: diag.High,
				Node:     n.Label(),
				Field:    f,
				Message:  fmt.Sprintf("Node missing required field: %s", f),
				Path:     n.Path,
			})
		}
	}
	return out, nil
}

func nodePosition(g *workflow.Graph) ([]diag.Diagnostic, error) {
	var out []diag.Diagnostic
	for _, n := range g.Nodes() {
		if !value.Truthy(n.Position) {
			// a missing position is reported by nodeFields.
			continue
		}
		if _, _, ok := n.XY(); ok {
			continue
		}
		out = append(out, diag.Diagnostic{
			Kind:     diag.InvalidPosition,
			Severity: diag.Medium,
			Node:     n.Label(),
			Field:    "position",
			Message:  "Node position must be [x, y] array",
			Path:     n.Path + ".position",
		})
	}
	return out, nil
}

// duplicateIDs reports every node which shares its ID with another node.
func duplicateIDs(g *workflow.Graph) ([]diag.Diagnostic, error) {
	a := g.Analyses()
	var out []diag.Diagnostic
	for _, n := range g.Nodes() {
		if !n.HasID() || !a.IsDuplicate(n.ID) {
			continue
		}
		out = append(out, diag.Diagnostic{
			Kind:     diag.DuplicateID,
			Severity: diag.Critical,
			Node:     n.Label(),
			Field:    "id",
			Message:  fmt.Sprintf("Duplicate node ID: %s", n.ID),
			Path:     n.Path + ".id",
		})
	}
	return out, nil
}

// connectionRefs reports connection sources and targets which
// don't refer to any node.
func connectionRefs(g *workflow.Graph) ([]diag.Diagnostic, error) {
	var out []diag.Diagnostic
	for _, ref := range g.Analyses().Dangling() {
		out = append(out, diag.Diagnostic{
			Kind:     diag.InvalidConnection,
			Severity: diag.High,
			Field:    ref.End,
			Message:  fmt.Sprintf("Connection %s node does not exist: %s", ref.End, ref.ID),
		})
	}
	return out, nil
}
