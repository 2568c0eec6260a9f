package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/common-fate/flowlint"
	"github.com/common-fate/flowlint/pkg/diag"
	"github.com/common-fate/flowlint/pkg/rules"
)

func writeMarkdown(w io.Writer, r *flowlint.Report) error {
	var b strings.Builder

	for _, res := range r.Results {
		fmt.Fprintf(&b, "\n### %s\n\n", Title(res.Checker))

		if res.Checker == rules.Performance && r.Metrics != nil {
			fmt.Fprintf(&b, "Complexity Score: %d/100\n", r.Metrics.Complexity)
			fmt.Fprintf(&b, "Estimated Execution Time: %.1fs\n\n", r.Metrics.EstimatedSeconds)
		}

		if len(res.Diagnostics) == 0 {
			fmt.Fprintf(&b, "✅ %s\n", passed(res.Checker))
			continue
		}

		fmt.Fprintf(&b, "Found %d issues:\n\n", len(res.Diagnostics))
		for _, d := range diag.SortBySeverity(res.Diagnostics) {
			writeMarkdownItem(&b, res.Checker, d)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeMarkdownItem(b *strings.Builder, checker string, d diag.Diagnostic) {
	fmt.Fprintf(b, "- **%s**: %s\n", d.Severity, d.Message)
	if d.Node != "" {
		fmt.Fprintf(b, "  Node: %s\n", d.Node)
	}
	if d.Field != "" {
		fmt.Fprintf(b, "  Field: %s\n", d.Field)
	}
	if d.Improvement != "" {
		fmt.Fprintf(b, "  Improvement: %s\n", d.Improvement)
	}
	if d.Hint != "" {
		label := "Hint"
		if checker == rules.Security {
			label = "Fix"
		}
		fmt.Fprintf(b, "  %s: %s\n", label, d.Hint)
	}
	b.WriteString("\n")
}
