package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func valid() Dialect {
	return Dialect{
		Name:                "test",
		EntryTypes:          []string{"test.start"},
		EntrySuffixes:       []string{"Trigger"},
		HTTPType:            "test.http",
		WaitType:            "test.wait",
		HTTPMarkers:         []string{"http"},
		RateLimitHints:      []string{"throttle"},
		InterpolationMarker: "{{",
		ExpressionMarker:    "={{",
		EnvMarker:           "$env",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		give    func(d *Dialect)
		wantErr string
	}{
		{
			name: "ok",
			give: func(d *Dialect) {},
		},
		{
			name:    "no http type",
			give:    func(d *Dialect) { d.HTTPType = "" },
			wantErr: "dialect error: HTTPType must be set",
		},
		{
			name:    "no wait type",
			give:    func(d *Dialect) { d.WaitType = "" },
			wantErr: "dialect error: WaitType must be set",
		},
		{
			name:    "no env marker",
			give:    func(d *Dialect) { d.EnvMarker = "" },
			wantErr: "dialect error: interpolation, expression and env markers must be set",
		},
		{
			name:    "mismatched markers",
			give:    func(d *Dialect) { d.ExpressionMarker = "=${" },
			wantErr: "dialect error: the expression marker must contain the interpolation marker",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid()
			tt.give(&d)
			err := d.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestClassify(t *testing.T) {
	d := valid()

	assert.True(t, d.IsEntry("test.start"))
	assert.True(t, d.IsEntry("test.scheduleTrigger"))
	assert.False(t, d.IsEntry("test.http"))
	assert.True(t, d.IsHTTP("test.http"))
	assert.False(t, d.IsDatabase("test.http"))
	assert.True(t, d.HasRateLimitHint("Throttle Requests"))
	assert.False(t, d.HasBatchHint("Throttle Requests"))
}
