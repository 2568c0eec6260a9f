// Package diag contains the diagnostic definition
// produced by flowlint checkers.
package diag

import (
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
)

// Kind is a discriminating tag for a diagnostic,
// e.g. "MISSING_FIELD" or "HARDCODED_SECRET".
type Kind string

const (
	JSONParseError Kind = "JSON_PARSE_ERROR"
	AnalysisError  Kind = "ANALYSIS_ERROR"

	MissingField      Kind = "MISSING_FIELD"
	InvalidType       Kind = "INVALID_TYPE"
	MissingNodeField  Kind = "MISSING_NODE_FIELD"
	InvalidPosition   Kind = "INVALID_POSITION"
	DuplicateID       Kind = "DUPLICATE_ID"
	InvalidConnection Kind = "INVALID_CONNECTION"

	HardcodedSecret  Kind = "HARDCODED_SECRET"
	NoEnvVars        Kind = "NO_ENV_VARS"
	CredentialsInURL Kind = "CREDENTIALS_IN_URL"

	NoNodes                   Kind = "NO_NODES"
	InconsistentNaming        Kind = "INCONSISTENT_NAMING"
	MagicNumber               Kind = "MAGIC_NUMBER"
	ComplexExpressions        Kind = "COMPLEX_EXPRESSIONS"
	InsufficientErrorHandling Kind = "INSUFFICIENT_ERROR_HANDLING"
	DisorganizedLayout        Kind = "DISORGANIZED_LAYOUT"
	UnusedNode                Kind = "UNUSED_NODE"
	PossibleDuplication       Kind = "POSSIBLE_DUPLICATION"

	ParallelRequests        Kind = "PARALLEL_REQUESTS"
	NoRateLimiting          Kind = "NO_RATE_LIMITING"
	NoPagination            Kind = "NO_PAGINATION"
	MultipleTransformations Kind = "MULTIPLE_TRANSFORMATIONS"
	SlowExecution           Kind = "SLOW_EXECUTION"
)

// Diagnostic is a single finding. Diagnostics are values and
// are never modified after a rule returns them.
type Diagnostic struct {
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`

	// Node is the name (or a fallback label) of the node the finding is about.
	Node string `json:"node,omitempty"`
	// Field is the document or node field the finding is about.
	Field string `json:"field,omitempty"`

	Message string `json:"message"`
	// Hint is actionable remediation text.
	Hint string `json:"hint,omitempty"`
	// Improvement describes the expected benefit of following the hint.
	Improvement string `json:"improvement,omitempty"`

	// Path is the YAML path of the offending element, such as "$.nodes[2]".
	// Only used to annotate the document source in reports.
	Path string `json:"path,omitempty"`
}

func (d Diagnostic) String() string {
	s := fmt.Sprintf("[%s] %s: %s", d.Severity, d.Kind, d.Message)
	if d.Node != "" {
		s += fmt.Sprintf(" (node: %s)", d.Node)
	}
	return s
}

// Annotate the document source at the diagnostic's path.
func (d Diagnostic) Annotate(source []byte, colored bool) (string, error) {
	if d.Path == "" {
		return "", nil
	}
	path, err := yaml.PathString(d.Path)
	if err != nil {
		return "", err
	}
	out, err := path.AnnotateSource(source, colored)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// SortBySeverity returns a copy of the diagnostics ordered from most
// to least severe. Diagnostics of equal severity keep their order.
func SortBySeverity(diags []Diagnostic) []Diagnostic {
	sorted := make([]Diagnostic, len(diags))
	copy(sorted, diags)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity > sorted[j].Severity
	})
	return sorted
}

// Max returns the highest severity among the diagnostics.
// ok is false when there are no diagnostics.
func Max(diags []Diagnostic) (max Severity, ok bool) {
	for _, d := range diags {
		if !ok || d.Severity > max {
			max = d.Severity
			ok = true
		}
	}
	return max, ok
}
