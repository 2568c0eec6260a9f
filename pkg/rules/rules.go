// Package rules contains the flowlint rule catalog.
//
// Rules are grouped into four checkers: structural, security, quality
// and performance. A rule is a pure function over the workflow graph;
// rules never depend on each other or on evaluation order.
package rules

import (
	"fmt"
	"regexp"

	"github.com/common-fate/flowlint/pkg/dialect"
	"github.com/common-fate/flowlint/pkg/diag"
	"github.com/common-fate/flowlint/pkg/workflow"
)

const (
	Structural  = "structural"
	Security    = "security"
	Quality     = "quality"
	Performance = "performance"
)

// Names of the checkers, in catalog order.
var Names = []string{Structural, Security, Quality, Performance}

// Rule is a single check.
// Check must not perform I/O and must not modify the graph.
type Rule struct {
	Name  string
	Check func(g *workflow.Graph) ([]diag.Diagnostic, error)
}

// Checker is a named group of rules addressing one concern.
type Checker struct {
	Name  string
	Rules []Rule
}

// Catalog builds the checkers for a dialect and thresholds.
type Catalog struct {
	dialect    dialect.Dialect
	thresholds Thresholds

	magicNumber *regexp.Regexp
	secrets     []secretPattern
	urlCreds    *regexp.Regexp
}

// New creates a rule catalog.
func New(d dialect.Dialect, t Thresholds) (*Catalog, error) {
	err := d.Validate()
	if err != nil {
		return nil, err
	}

	err = t.Validate()
	if err != nil {
		return nil, err
	}

	c := Catalog{
		dialect:     d,
		thresholds:  t,
		magicNumber: regexp.MustCompile(fmt.Sprintf(`:\s*\d{%d,}`, t.MagicNumberDigits)),
		secrets:     secretPatterns,
		urlCreds:    credentialsInURL,
	}
	return &c, nil
}

// Thresholds returns the thresholds the catalog was built with.
func (c *Catalog) Thresholds() Thresholds {
	return c.thresholds
}

// Checkers returns every checker in catalog order.
func (c *Catalog) Checkers() []Checker {
	return []Checker{
		c.structural(),
		c.security(),
		c.quality(),
		c.performance(),
	}
}

// Checker returns a checker by name.
func (c *Catalog) Checker(name string) (Checker, bool) {
	for _, ch := range c.Checkers() {
		if ch.Name == name {
			return ch, true
		}
	}
	return Checker{}, false
}
