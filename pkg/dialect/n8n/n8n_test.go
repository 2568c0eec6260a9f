package n8n

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
)

func TestDialect(t *testing.T) {
	assert.NoError(t, Dialect.Validate())
}

func TestWaitSeconds(t *testing.T) {
	tests := []struct {
		name   string
		give   any
		want   float64
		wantOK bool
	}{
		{name: "amount", give: yaml.MapSlice{{Key: "amount", Value: uint64(10)}}, want: 10, wantOK: true},
		{name: "fractional", give: yaml.MapSlice{{Key: "amount", Value: 0.5}}, want: 0.5, wantOK: true},
		{name: "string amount", give: yaml.MapSlice{{Key: "amount", Value: "3"}}, want: 3, wantOK: true},
		{name: "zero", give: yaml.MapSlice{{Key: "amount", Value: uint64(0)}}},
		{name: "not a number", give: yaml.MapSlice{{Key: "amount", Value: "soon"}}},
		{name: "unit only", give: yaml.MapSlice{{Key: "unit", Value: "minutes"}}},
		{name: "no parameters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Dialect.WaitSeconds(tt.give)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
