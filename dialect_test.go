package flowlint

import (
	"github.com/common-fate/flowlint/pkg/dialect"
	"github.com/common-fate/flowlint/pkg/dialect/n8n"
)

// testDialect is a flowlint dialect used
// for internal tests.
//
// It is the n8n dialect with an additional
// 'acme.begin' entry node type.
var testDialect = func() dialect.Dialect {
	d := n8n.Dialect
	d.Name = "test"
	d.EntryTypes = append([]string{"acme.begin"}, n8n.Dialect.EntryTypes...)
	return d
}()
