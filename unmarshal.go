package flowlint

import (
	"github.com/common-fate/flowlint/pkg/dialect"
	"github.com/common-fate/flowlint/pkg/workflow"
)

// Unmarshal a workflow document into a graph which can be linted or drawn.
func Unmarshal(data []byte, d dialect.Dialect) (*workflow.Graph, error) {
	doc, err := workflow.Parse(data)
	if err != nil {
		return nil, err
	}
	return workflow.NewGraph(doc, d), nil
}
