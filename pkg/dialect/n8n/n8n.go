// Package n8n contains the n8n dialect of flowlint.
// n8n workflows are exported as JSON documents with
// "nodes" and "connections" fields.
package n8n

import (
	"github.com/mitchellh/mapstructure"

	"github.com/common-fate/flowlint/pkg/dialect"
	"github.com/common-fate/flowlint/pkg/workflow/value"
)

const (
	StartType          = "n8n-nodes-base.start"
	WebhookType        = "n8n-nodes-base.webhook"
	HTTPRequestType    = "n8n-nodes-base.httpRequest"
	WaitType           = "n8n-nodes-base.wait"
	SetType            = "n8n-nodes-base.set"
	SplitInBatchesType = "n8n-nodes-base.splitInBatches"
)

var Dialect = dialect.Dialect{
	Name:          "n8n",
	EntryTypes:    []string{StartType, WebhookType},
	EntrySuffixes: []string{"Trigger"},

	HTTPType:  HTTPRequestType,
	WaitType:  WaitType,
	SetType:   SetType,
	BatchType: SplitInBatchesType,

	APIMarkers:         []string{"http", "api", "database"},
	RateLimitMarkers:   []string{"http", "api"},
	HTTPMarkers:        []string{"http"},
	DatabaseMarkers:    []string{"database"},
	SpreadsheetMarkers: []string{"googleSheets"},
	DataSourceMarkers:  []string{"googleSheets", "database", "airtable"},
	BranchingMarkers:   []string{"if", "switch"},

	RateLimitHints: []string{"rate", "throttle"},
	BatchHints:     []string{"paginate", "batch"},

	InterpolationMarker: "{{",
	ExpressionMarker:    "={{",
	EnvMarker:           "$env",

	WaitSeconds: waitSeconds,
}

// WaitParameters are the parameters of a wait node
// which the execution time estimate reads.
type WaitParameters struct {
	Amount float64 `mapstructure:"amount"`
}

// waitSeconds reads the 'amount' parameter of a wait node.
// A zero or unparseable amount is treated as unset.
func waitSeconds(parameters any) (float64, bool) {
	m, ok := value.ToMap(parameters)
	if !ok {
		return 0, false
	}

	var p WaitParameters
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &p,
	})
	if err != nil {
		return 0, false
	}
	err = dec.Decode(m)
	if err != nil || p.Amount == 0 {
		return 0, false
	}
	return p.Amount, true
}
