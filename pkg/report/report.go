// Package report renders lint reports for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/common-fate/flowlint"
	"github.com/common-fate/flowlint/pkg/diag"
	"github.com/common-fate/flowlint/pkg/rules"
)

type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
	JSON     Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{Text, Markdown, JSON}

// ParseFormat parses a format name. An empty name is the text format.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return Text, nil
	}
	for _, f := range Formats {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q: must be one of %v", name, Formats)
}

type Options struct {
	Format Format
	// Color enables terminal colours in the text format.
	Color bool
	// Source annotates text diagnostics with the offending part
	// of the document.
	Source bool
}

// Write renders the report. Diagnostics are displayed from most
// to least severe within each checker.
func Write(w io.Writer, r *flowlint.Report, opts Options) error {
	switch opts.Format {
	case "", Text:
		return writeText(w, r, opts)
	case Markdown:
		return writeMarkdown(w, r)
	case JSON:
		return writeJSON(w, r)
	}
	return fmt.Errorf("unknown format %q", opts.Format)
}

// ExitCode returns 1 if any checker other than the performance checker
// reported a HIGH or CRITICAL diagnostic, and 0 otherwise.
//
// Performance findings are advisory, so a run of only the performance
// checker always exits 0, even if the document could not be parsed.
func ExitCode(r *flowlint.Report) int {
	advisory := len(r.Checkers) > 0
	for _, c := range r.Checkers {
		if c != rules.Performance {
			advisory = false
		}
	}

	for _, res := range r.Results {
		if res.Checker == rules.Performance {
			continue
		}
		if res.Checker == flowlint.Load && advisory {
			continue
		}
		for _, d := range res.Diagnostics {
			if d.Severity.AtLeast(diag.High) {
				return 1
			}
		}
	}
	return 0
}

// Title returns the heading used for a checker's results.
func Title(checker string) string {
	switch checker {
	case rules.Structural:
		return "JSON Structure Validation"
	case rules.Security:
		return "Security Scan"
	case rules.Quality:
		return "Code Quality Analysis"
	case rules.Performance:
		return "Performance Analysis"
	case flowlint.Load:
		return "Workflow Load"
	}
	return checker
}

func passed(checker string) string {
	switch checker {
	case rules.Structural:
		return "JSON structure is valid"
	case rules.Security:
		return "No security issues found"
	case rules.Quality:
		return "Code quality is excellent"
	case rules.Performance:
		return "Performance is good"
	}
	return "No issues found"
}

type jsonReport struct {
	*flowlint.Report
	ExitCode int `json:"exitCode"`
}

func writeJSON(w io.Writer, r *flowlint.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{Report: r, ExitCode: ExitCode(r)})
}
