package rules

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/common-fate/flowlint/pkg/dialect/n8n"
	"github.com/common-fate/flowlint/pkg/diag"
	"github.com/common-fate/flowlint/pkg/workflow/w"
)

// requests builds a workflow of n chained HTTP request nodes,
// with the ids r0, r1, ...
func requests(b *w.Builder, n int) []string {
	var ids []string
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("r%d", i)
		ids = append(ids, id)
		b.Add(w.Node(id, fmt.Sprintf("Request %d", i), w.HTTP).Handled())
	}
	return ids
}

func TestPerformance_NoNodes(t *testing.T) {
	got := check(t, Performance, []byte(`{"name": "x", "nodes": "none"}`))
	assert.Equal(t, []diag.Diagnostic{
		{Kind: diag.NoNodes, Severity: diag.Critical, Message: "Cannot analyze performance without nodes"},
	}, got)
}

func TestSequentialRequests(t *testing.T) {
	tests := []struct {
		name    string
		give    func() []byte
		wantMsg string
	}{
		{
			name: "chained",
			give: func() []byte {
				b := w.New("Chain")
				b.Chain(requests(b, 3)...)
				return b.JSON()
			},
			wantMsg: "Found 2 sequential HTTP requests",
		},
		{
			name: "separated by a set node",
			give: func() []byte {
				b := w.New("Separated")
				ids := requests(b, 2)
				b.Add(w.Node("s", "Map", w.Set))
				return b.Chain(ids[0], "s", ids[1]).JSON()
			},
		},
		{
			name: "not connected",
			give: func() []byte {
				b := w.New("Loose")
				requests(b, 3)
				return b.JSON()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := check(t, Performance, tt.give())

			var messages []string
			for _, d := range got {
				if d.Kind == diag.ParallelRequests {
					messages = append(messages, d.Message)
				}
			}
			if tt.wantMsg == "" {
				assert.Empty(t, messages)
				return
			}
			assert.Equal(t, []string{tt.wantMsg}, messages)
		})
	}
}

func TestRateLimiting(t *testing.T) {
	tests := []struct {
		name     string
		requests int
		extra    []w.N
		want     int
	}{
		{name: "five requests", requests: 5},
		{name: "six requests", requests: 6, want: 1},
		{name: "six requests and a wait", requests: 6, extra: []w.N{w.Node("wait", "Pause", w.Wait)}},
		{name: "six requests and a throttle", requests: 6, extra: []w.N{w.Node("t", "Throttle Calls", w.Code)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := w.New("Rate")
			requests(b, tt.requests)
			b.Add(tt.extra...)

			got := check(t, Performance, b.JSON())
			require.Equal(t, tt.want, count(got, diag.NoRateLimiting))
			if tt.want > 0 {
				for _, d := range got {
					if d.Kind == diag.NoRateLimiting {
						assert.Equal(t, diag.High, d.Severity)
						assert.Equal(t, "6 API calls without rate limiting", d.Message)
					}
				}
			}
		})
	}
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name string
		give []w.N
		want int
	}{
		{
			name: "two sources",
			give: []w.N{w.Node("a", "Read", w.Sheets), w.Node("b", "Read More", w.Sheets)},
		},
		{
			name: "three sources",
			give: []w.N{w.Node("a", "Read", w.Sheets), w.Node("b", "Query", "n8n-nodes-base.database"), w.Node("c", "Base", "n8n-nodes-base.airtable")},
			want: 1,
		},
		{
			name: "three sources in batches",
			give: []w.N{w.Node("a", "Read", w.Sheets), w.Node("b", "Read", w.Sheets), w.Node("c", "Read", w.Sheets), w.Node("d", "Split", w.Batches)},
		},
		{
			name: "three sources with a paginate hint",
			give: []w.N{w.Node("a", "Read", w.Sheets), w.Node("b", "Read", w.Sheets), w.Node("c", "Paginate Rows", w.Sheets)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := check(t, Performance, w.New("Pages").Add(tt.give...).JSON())
			assert.Equal(t, tt.want, count(got, diag.NoPagination))
		})
	}
}

func TestTransformations(t *testing.T) {
	for _, n := range []int{5, 6} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			b := w.New("Sets")
			for i := 0; i < n; i++ {
				b.Add(w.Node(fmt.Sprintf("s%d", i), "Map", w.Set))
			}
			got := check(t, Performance, b.JSON())
			assert.Equal(t, n > 5, count(got, diag.MultipleTransformations) == 1)
		})
	}
}

func TestExecutionTime(t *testing.T) {
	c, err := New(n8n.Dialect, DefaultThresholds())
	require.NoError(t, err)

	tests := []struct {
		name     string
		requests int
		want     float64
		wantSlow int
	}{
		{name: "three requests and a wait", requests: 3, want: 16},
		{name: "eleven requests and a wait", requests: 11, want: 32, wantSlow: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := w.New("Slow")
			ids := requests(b, tt.requests)
			b.Add(w.Node("wait", "Pause", w.Wait).With("amount", 10))
			b.Chain(append(ids, "wait")...)
			doc := b.JSON()

			assert.InDelta(t, tt.want, c.EstimateSeconds(graph(t, doc)), 0.001)

			got := check(t, Performance, doc)
			assert.Equal(t, tt.wantSlow, count(got, diag.SlowExecution))
		})
	}
}

func TestMeasure(t *testing.T) {
	c, err := New(n8n.Dialect, DefaultThresholds())
	require.NoError(t, err)

	b := w.New("Measure").
		Add(
			w.Node("t", "Start", w.Manual),
			w.Node("a", "Fetch", w.HTTP),
			w.Node("s", "Read", w.Sheets),
			w.Node("p", "Pause", w.Wait),
		).
		Chain("t", "a", "s", "p")

	got := c.Measure(graph(t, b.JSON()))
	assert.Equal(t, 4, got.Nodes)
	assert.Equal(t, 3, got.Edges)
	// round((4*1.5 + 3) / 2)
	assert.Equal(t, 5, got.Complexity)
	// trigger 0.1, http 2, sheets 3, wait without an amount 1
	assert.InDelta(t, 6.1, got.EstimatedSeconds, 0.001)
}
