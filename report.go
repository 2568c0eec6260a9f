package flowlint

import (
	"github.com/common-fate/flowlint/pkg/diag"
	"github.com/common-fate/flowlint/pkg/filter"
	"github.com/common-fate/flowlint/pkg/rules"
)

// Result holds the diagnostics of a single checker, in rule order.
type Result struct {
	Checker     string            `json:"checker"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
}

// Report is the outcome of linting one document.
type Report struct {
	// Workflow is the name of the workflow, if it has one.
	Workflow string `json:"workflow,omitempty"`
	// Checkers are the checkers which were requested.
	Checkers []string `json:"checkers"`
	Results  []Result `json:"results"`
	// Metrics are set if the performance checker ran.
	Metrics *rules.Metrics `json:"metrics,omitempty"`
	// Source is the document text, used to annotate diagnostics.
	Source []byte `json:"-"`
}

// Diagnostics returns every diagnostic of the report in result order.
func (r *Report) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, res := range r.Results {
		out = append(out, res.Diagnostics...)
	}
	return out
}

// Filter returns a copy of the report without the diagnostics
// matched by the filter. The report itself is not modified.
func (r *Report) Filter(f *filter.Filter) (*Report, error) {
	out := *r
	out.Results = make([]Result, len(r.Results))
	for i, res := range r.Results {
		kept, err := f.Apply(res.Checker, res.Diagnostics)
		if err != nil {
			return nil, err
		}
		out.Results[i] = Result{Checker: res.Checker, Diagnostics: kept}
	}
	return &out, nil
}
