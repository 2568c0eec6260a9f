package flowlint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/common-fate/flowlint/pkg/diag"
	"github.com/common-fate/flowlint/pkg/rules"
	"github.com/common-fate/flowlint/pkg/workflow/w"
)

func TestLint_ParseError(t *testing.T) {
	tests := []struct {
		name string
		give string
	}{
		{name: "empty", give: ""},
		{name: "malformed", give: `{"name": "x", "nodes": [`},
		{name: "array", give: `[]`},
		{name: "number", give: `42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lint([]byte(tt.give))
			require.NoError(t, err)

			require.Len(t, got.Results, 1)
			assert.Equal(t, Load, got.Results[0].Checker)

			diags := got.Diagnostics()
			require.Len(t, diags, 1)
			assert.Equal(t, diag.JSONParseError, diags[0].Kind)
			assert.Equal(t, diag.Critical, diags[0].Severity)
			assert.Contains(t, diags[0].Message, "Failed to parse JSON: ")
			assert.Nil(t, got.Metrics)
		})
	}
}

func TestLint(t *testing.T) {
	doc := w.New("Sync Users").
		Add(
			w.Node("1", "Start Sync", w.Manual),
			w.Node("2", "Fetch Users", w.HTTP).With("url", "={{$env.USERS_API}}/users").Handled(),
		).
		Chain("1", "2").
		JSON()

	tests := []struct {
		name     string
		checkers []string
		want     []string
		wantErr  string
	}{
		{
			name: "every checker",
			want: rules.Names,
		},
		{
			name:     "some checkers",
			checkers: []string{rules.Security, rules.Structural},
			want:     []string{rules.Security, rules.Structural},
		},
		{
			name:     "unknown checker",
			checkers: []string{"style"},
			wantErr:  `unknown checker "style"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lint(doc, tt.checkers...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			var checkers []string
			for _, res := range got.Results {
				checkers = append(checkers, res.Checker)
				assert.Empty(t, res.Diagnostics, res.Checker)
			}
			assert.Equal(t, tt.want, checkers)
			assert.Equal(t, "Sync Users", got.Workflow)
		})
	}
}

func TestLint_Metrics(t *testing.T) {
	doc := w.New("Metrics").
		Add(w.Node("1", "Start", w.Manual), w.Node("2", "Fetch", w.HTTP)).
		Chain("1", "2").
		JSON()

	got, err := Lint(doc, rules.Structural)
	require.NoError(t, err)
	assert.Nil(t, got.Metrics)

	got, err = Lint(doc, rules.Performance)
	require.NoError(t, err)
	require.NotNil(t, got.Metrics)
	assert.Equal(t, 2, got.Metrics.Nodes)
	assert.Equal(t, 1, got.Metrics.Edges)
	assert.Equal(t, 2, got.Metrics.Complexity)
	assert.InDelta(t, 2.1, got.Metrics.EstimatedSeconds, 0.001)
}

func TestLinter_Dialect(t *testing.T) {
	doc := w.New("Custom").
		Add(
			w.Node("1", "Begin", "acme.begin"),
			w.Node("2", "Work", w.Set),
			w.Node("3", "Finish", w.Set),
		).
		Chain("2", "3").
		JSON()

	unused := func(l Linter) []string {
		r, err := l.Lint(doc, rules.Quality)
		require.NoError(t, err)
		var out []string
		for _, d := range r.Diagnostics() {
			if d.Kind == diag.UnusedNode {
				out = append(out, d.Node)
			}
		}
		return out
	}

	assert.Equal(t, []string{"Begin"}, unused(Linter{}))
	assert.Empty(t, unused(Linter{Dialect: &testDialect}))
}

func TestLinter_Thresholds(t *testing.T) {
	th := rules.DefaultThresholds()
	th.SetNodes = 1
	l := Linter{Thresholds: &th}

	doc := w.New("Sets").
		Add(w.Node("1", "Map", w.Set), w.Node("2", "Map Again", w.Set)).
		Chain("1", "2").
		JSON()

	r, err := l.Lint(doc, rules.Performance)
	require.NoError(t, err)
	assert.Equal(t, []diag.Kind{diag.MultipleTransformations}, kinds(r.Diagnostics()))

	th.MagicNumberDigits = 0
	_, err = l.Lint(doc)
	assert.Error(t, err)
}

func kinds(diags []diag.Diagnostic) []diag.Kind {
	out := []diag.Kind{}
	for _, d := range diags {
		out = append(out, d.Kind)
	}
	return out
}
