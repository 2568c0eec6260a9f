package flowlint

import (
	"fmt"

	"github.com/common-fate/flowlint/pkg/diag"
	"github.com/common-fate/flowlint/pkg/rules"
	"github.com/common-fate/flowlint/pkg/workflow"
)

// Run every rule of a checker against the graph. Diagnostics are
// returned in rule order.
//
// A rule which fails, by returning an error, panicking or producing a
// diagnostic with an unknown severity, contributes a single
// ANALYSIS_ERROR diagnostic instead of its findings. The other rules
// still run.
func Run(g *workflow.Graph, ch rules.Checker) []diag.Diagnostic {
	out := []diag.Diagnostic{}
	for _, r := range ch.Rules {
		out = append(out, runRule(g, ch.Name, r)...)
	}
	return out
}

func runRule(g *workflow.Graph, checker string, r rules.Rule) (out []diag.Diagnostic) {
	defer func() {
		if rec := recover(); rec != nil {
			out = []diag.Diagnostic{analysisError(checker, r.Name, fmt.Errorf("panic: %v", rec))}
		}
	}()

	diags, err := r.Check(g)
	if err != nil {
		return []diag.Diagnostic{analysisError(checker, r.Name, err)}
	}

	for _, d := range diags {
		if !d.Severity.Valid() {
			err = fmt.Errorf("rule produced %s diagnostic with invalid severity %d", d.Kind, int(d.Severity))
			return []diag.Diagnostic{analysisError(checker, r.Name, err)}
		}
	}
	return diags
}

func analysisError(checker, rule string, err error) diag.Diagnostic {
	return diag.Diagnostic{
		Kind:     diag.AnalysisError,
		Severity: diag.High,
		Field:    rule,
		Message:  fmt.Sprintf("Failed to analyze %s: %s", checker, err),
	}
}
