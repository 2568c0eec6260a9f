// Package dialect contain definitions for flowlint dialects.
// A dialect describes the node vocabulary of a workflow platform:
// which node types start a workflow, which ones call out over HTTP,
// and the markers used for expressions and environment references.
package dialect

import (
	"errors"
	"strings"
)

// Dialect configures how checkers classify nodes.
//
// Fields ending in Type are compared with exact string equality.
// Fields ending in Markers are substrings, matched case-sensitively
// against the node type. Fields ending in Hints are substrings matched
// against the lowercased node name.
type Dialect struct {
	// Name of the dialect, e.g. "n8n".
	Name string

	// EntryTypes are node types which legitimately have no connections,
	// such as manual starts and webhooks.
	EntryTypes []string
	// EntrySuffixes mark additional entry types by suffix,
	// e.g. "Trigger" matches "n8n-nodes-base.scheduleTrigger".
	EntrySuffixes []string

	HTTPType  string // the HTTP request node
	WaitType  string // the node which pauses execution
	SetType   string // the simple field assignment node
	BatchType string // the node which splits items into batches

	// APIMarkers classify API-like nodes for error handling coverage.
	APIMarkers []string
	// RateLimitMarkers classify API-like nodes for the rate limiting check.
	RateLimitMarkers []string
	// HTTPMarkers, DatabaseMarkers and SpreadsheetMarkers price nodes
	// in the execution time estimate.
	HTTPMarkers        []string
	DatabaseMarkers    []string
	SpreadsheetMarkers []string
	// DataSourceMarkers classify bulk data sources for the pagination check.
	DataSourceMarkers []string
	// BranchingMarkers exclude conditional nodes from the duplication check.
	BranchingMarkers []string

	RateLimitHints []string
	BatchHints     []string

	// InterpolationMarker opens an expression, e.g. "{{".
	InterpolationMarker string
	// ExpressionMarker opens an expression-valued parameter, e.g. "={{".
	ExpressionMarker string
	// EnvMarker references an environment variable, e.g. "$env".
	EnvMarker string

	// WaitSeconds returns the configured delay of a wait node from its
	// parameters. ok is false if the parameters do not configure one.
	WaitSeconds func(parameters any) (seconds float64, ok bool)
}

// IsEntry returns true if nodes of the type start a workflow.
func (d *Dialect) IsEntry(nodeType string) bool {
	for _, t := range d.EntryTypes {
		if nodeType == t {
			return true
		}
	}
	for _, s := range d.EntrySuffixes {
		if strings.HasSuffix(nodeType, s) {
			return true
		}
	}
	return false
}

// IsAPI returns true if the node type looks like it calls an API or database.
func (d *Dialect) IsAPI(nodeType string) bool {
	return containsAny(nodeType, d.APIMarkers)
}

// IsRateLimited returns true if the node type should be rate limited.
func (d *Dialect) IsRateLimited(nodeType string) bool {
	return containsAny(nodeType, d.RateLimitMarkers)
}

func (d *Dialect) IsHTTP(nodeType string) bool {
	return containsAny(nodeType, d.HTTPMarkers)
}

func (d *Dialect) IsDatabase(nodeType string) bool {
	return containsAny(nodeType, d.DatabaseMarkers)
}

func (d *Dialect) IsSpreadsheet(nodeType string) bool {
	return containsAny(nodeType, d.SpreadsheetMarkers)
}

func (d *Dialect) IsDataSource(nodeType string) bool {
	return containsAny(nodeType, d.DataSourceMarkers)
}

func (d *Dialect) IsBranching(nodeType string) bool {
	return containsAny(nodeType, d.BranchingMarkers)
}

// HasRateLimitHint returns true if the node name suggests rate limiting.
func (d *Dialect) HasRateLimitHint(name string) bool {
	return containsAny(strings.ToLower(name), d.RateLimitHints)
}

// HasBatchHint returns true if the node name suggests pagination or batching.
func (d *Dialect) HasBatchHint(name string) bool {
	return containsAny(strings.ToLower(name), d.BatchHints)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// Validate the dialect. Checkers assume a valid dialect.
func (d *Dialect) Validate() error {
	if d.HTTPType == "" {
		return errors.New("dialect error: HTTPType must be set")
	}
	if d.WaitType == "" {
		return errors.New("dialect error: WaitType must be set")
	}
	if d.InterpolationMarker == "" || d.ExpressionMarker == "" || d.EnvMarker == "" {
		return errors.New("dialect error: interpolation, expression and env markers must be set")
	}
	if !strings.Contains(d.ExpressionMarker, d.InterpolationMarker) {
		return errors.New("dialect error: the expression marker must contain the interpolation marker")
	}
	// all good if we get here
	return nil
}
