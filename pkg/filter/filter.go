// Package filter suppresses diagnostics matching CEL expressions.
//
// Expressions are evaluated against the variables kind, severity, node,
// field, message, checker and rank, e.g.
//
//	kind == "MAGIC_NUMBER" && node.startsWith("Legacy")
//	checker == "quality" && rank < 2
//
// rank is the severity as an int, starting at 0 for LOW.
package filter

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/pkg/errors"

	"github.com/common-fate/flowlint/pkg/diag"
)

// Filter is a compiled list of ignore expressions.
// The zero value ignores nothing.
type Filter struct {
	exprs    []string
	programs []cel.Program
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("kind", cel.StringType),
		cel.Variable("severity", cel.StringType),
		cel.Variable("node", cel.StringType),
		cel.Variable("field", cel.StringType),
		cel.Variable("message", cel.StringType),
		cel.Variable("checker", cel.StringType),
		cel.Variable("rank", cel.IntType),
	)
}

// Compile ignore expressions. Every expression must type-check
// to a boolean.
func Compile(exprs ...string) (*Filter, error) {
	env, err := newEnv()
	if err != nil {
		return nil, errors.Wrap(err, "creating CEL environment")
	}

	f := Filter{exprs: exprs}

	for _, e := range exprs {
		ast, issues := env.Compile(e)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("CEL type-check error in %q: %s", e, issues.Err())
		}
		if ast.OutputType() != cel.BoolType {
			return nil, fmt.Errorf("CEL expression %q must return a boolean (returned %s instead)", e, ast.OutputType())
		}

		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("CEL program construction error in %q: %s", e, err)
		}
		f.programs = append(f.programs, prg)
	}

	return &f, nil
}

// Expressions returns the source of the compiled expressions.
func (f *Filter) Expressions() []string {
	return f.exprs
}

// Ignored returns true if any expression matches the diagnostic.
func (f *Filter) Ignored(checker string, d diag.Diagnostic) (bool, error) {
	if f == nil {
		return false, nil
	}

	vars := map[string]any{
		"kind":     string(d.Kind),
		"severity": d.Severity.String(),
		"node":     d.Node,
		"field":    d.Field,
		"message":  d.Message,
		"checker":  checker,
		"rank":     int64(d.Severity),
	}

	for i, prg := range f.programs {
		val, _, err := prg.Eval(vars)
		if err != nil {
			return false, errors.Wrapf(err, "evaluating %q", f.exprs[i])
		}
		match, ok := val.Value().(bool)
		if !ok {
			return false, fmt.Errorf("could not convert CEL to bool: %s", val)
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}

// Apply returns the diagnostics which no expression matches,
// preserving their order.
func (f *Filter) Apply(checker string, diags []diag.Diagnostic) ([]diag.Diagnostic, error) {
	if f == nil || len(f.programs) == 0 {
		return diags, nil
	}

	kept := []diag.Diagnostic{}
	for _, d := range diags {
		ignored, err := f.Ignored(checker, d)
		if err != nil {
			return nil, err
		}
		if !ignored {
			kept = append(kept, d)
		}
	}
	return kept, nil
}
