package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/common-fate/flowlint"
	"github.com/common-fate/flowlint/pkg/diag"
	"github.com/common-fate/flowlint/pkg/rules"
)

type palette struct {
	title    *color.Color
	faint    *color.Color
	ok       *color.Color
	severity map[diag.Severity]*color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		title: color.New(color.Bold),
		faint: color.New(color.Faint),
		ok:    color.New(color.FgGreen),
		severity: map[diag.Severity]*color.Color{
			diag.Critical: color.New(color.FgRed, color.Bold),
			diag.High:     color.New(color.FgRed),
			diag.Medium:   color.New(color.FgYellow),
			diag.Low:      color.New(color.FgCyan),
		},
	}

	all := []*color.Color{p.title, p.faint, p.ok}
	for _, c := range p.severity {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) sev(s diag.Severity) string {
	c, ok := p.severity[s]
	if !ok {
		return s.String()
	}
	return c.Sprintf("%-8s", s)
}

func writeText(w io.Writer, r *flowlint.Report, opts Options) error {
	p := newPalette(opts.Color)
	var b strings.Builder

	if r.Workflow != "" {
		fmt.Fprintf(&b, "%s\n", p.title.Sprint(r.Workflow))
	}

	for _, res := range r.Results {
		fmt.Fprintf(&b, "\n%s\n", p.title.Sprint(Title(res.Checker)))

		if len(res.Diagnostics) == 0 {
			fmt.Fprintf(&b, "  %s\n", p.ok.Sprint(passed(res.Checker)))
		}

		for _, d := range diag.SortBySeverity(res.Diagnostics) {
			fmt.Fprintf(&b, "  %s %s  %s\n", p.sev(d.Severity), d.Kind, d.Message)
			if d.Node != "" {
				fmt.Fprintf(&b, "           %s\n", p.faint.Sprintf("node: %s", d.Node))
			}
			if d.Field != "" {
				fmt.Fprintf(&b, "           %s\n", p.faint.Sprintf("field: %s", d.Field))
			}
			if d.Improvement != "" {
				fmt.Fprintf(&b, "           %s\n", p.faint.Sprintf("improvement: %s", d.Improvement))
			}
			if d.Hint != "" {
				fmt.Fprintf(&b, "           %s\n", p.faint.Sprintf("hint: %s", d.Hint))
			}
			if opts.Source && d.Path != "" {
				// documents which goccy/go-yaml can't address are shown without a source excerpt.
				src, err := d.Annotate(r.Source, opts.Color)
				if err == nil && src != "" {
					fmt.Fprintf(&b, "%s\n", src)
				}
			}
		}

		if res.Checker == rules.Performance && r.Metrics != nil {
			fmt.Fprintf(&b, "  %s\n", p.faint.Sprintf("%d nodes, %d connections, complexity %d/100, estimated %.1fs",
				r.Metrics.Nodes, r.Metrics.Edges, r.Metrics.Complexity, r.Metrics.EstimatedSeconds))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
