package flowlint

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/common-fate/flowlint/pkg/dialect"
	"github.com/common-fate/flowlint/pkg/dialect/n8n"
	"github.com/common-fate/flowlint/pkg/diag"
	"github.com/common-fate/flowlint/pkg/rules"
	"github.com/common-fate/flowlint/pkg/workflow"
)

// Load is the name given to the result holding a parse failure.
const Load = "load"

type Linter struct {
	// Dialect is the n8n dialect if not provided.
	Dialect *dialect.Dialect
	// Thresholds are rules.DefaultThresholds() if not provided.
	Thresholds *rules.Thresholds
}

func (l *Linter) dialect() dialect.Dialect {
	if l.Dialect == nil {
		return n8n.Dialect
	}
	return *l.Dialect
}

// Catalog builds the rule catalog the linter uses.
func (l *Linter) Catalog() (*rules.Catalog, error) {
	t := rules.DefaultThresholds()
	if l.Thresholds != nil {
		t = *l.Thresholds
	}
	return rules.New(l.dialect(), t)
}

// Lint a workflow document with the named checkers,
// or with every checker if none are named.
//
// Problems with the document are reported as diagnostics. An error is
// only returned if the linter itself is misconfigured, such as when
// an unknown checker is named.
func (l *Linter) Lint(data []byte, checkers ...string) (*Report, error) {
	c, err := l.Catalog()
	if err != nil {
		return nil, errors.Wrap(err, "building rule catalog")
	}

	if len(checkers) == 0 {
		checkers = rules.Names
	}
	var selected []rules.Checker
	for _, name := range checkers {
		ch, ok := c.Checker(name)
		if !ok {
			return nil, errors.Errorf("unknown checker %q: must be one of %v", name, rules.Names)
		}
		selected = append(selected, ch)
	}

	report := Report{
		Checkers: checkers,
		Source:   data,
	}

	doc, err := workflow.Parse(data)
	if err != nil {
		report.Results = []Result{{
			Checker: Load,
			Diagnostics: []diag.Diagnostic{{
				Kind:     diag.JSONParseError,
				Severity: diag.Critical,
				Message:  fmt.Sprintf("Failed to parse JSON: %s", err),
			}},
		}}
		return &report, nil
	}

	// the graph and its analyses are built once and shared by every rule.
	g := workflow.NewGraph(doc, l.dialect())
	report.Workflow = doc.Name()

	for _, ch := range selected {
		report.Results = append(report.Results, Result{
			Checker:     ch.Name,
			Diagnostics: Run(g, ch),
		})
		if ch.Name == rules.Performance {
			m := c.Measure(g)
			report.Metrics = &m
		}
	}

	return &report, nil
}

// Lint a workflow document using the n8n dialect and default thresholds.
func Lint(data []byte, checkers ...string) (*Report, error) {
	var l Linter
	return l.Lint(data, checkers...)
}
