package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/common-fate/flowlint/pkg/diag"
	"github.com/common-fate/flowlint/pkg/workflow"
)

type secretPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// jsonString matches the contents of a JSON string literal
// of at least n characters.
func jsonString(n int) string {
	return fmt.Sprintf(`((?:[^"\\]|\\.){%d,})`, n)
}

// secretPatterns are checked in order against the JSON text of the
// whole document.
//
// All patterns are RE2, so matching time is linear in the input size.
var secretPatterns = []secretPattern{
	{
		Name:    "API Key",
		Pattern: regexp.MustCompile(`(?i)["'](?:api[_-]?key|apikey)["']:\s*["']` + jsonString(10) + `["']`),
	},
	{
		Name:    "Secret/Password",
		Pattern: regexp.MustCompile(`(?i)["'](?:secret|token|password|passwd|pwd)["']:\s*["']` + jsonString(8) + `["']`),
	},
	{
		Name:    "Access Token",
		Pattern: regexp.MustCompile(`(?i)["'](?:access[_-]?token)["']:\s*["']` + jsonString(10) + `["']`),
	},
	{
		Name:    "OpenAI API Key",
		Pattern: regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`),
	},
	{
		Name:    "Slack Token",
		Pattern: regexp.MustCompile(`xoxb-[0-9]{10,}-[0-9]{10,}-[a-zA-Z0-9]{24,}`),
	},
	{
		Name:    "GitHub Token",
		Pattern: regexp.MustCompile(`ghp_[a-zA-Z0-9]{36}`),
	},
	{
		Name:    "Google API Key",
		Pattern: regexp.MustCompile(`AIza[0-9A-Za-z\-_]{35}`),
	},
}

// credentialsInURL matches URLs with a user:password@ authority.
var credentialsInURL = regexp.MustCompile(`https?://[^:/@\s"]+:[^@/\s"]+@`)

func (c *Catalog) security() Checker {
	return Checker{
		Name: Security,
		Rules: []Rule{
			{Name: "hardcoded-secrets", Check: c.hardcodedSecrets},
			{Name: "env-vars", Check: c.envVars},
			{Name: "credentials-in-url", Check: c.credentialsInURL},
		},
	}
}

// deferred returns true if the text is an expression or an
// environment variable reference rather than a literal.
func (c *Catalog) deferred(s string) bool {
	return strings.Contains(s, c.dialect.InterpolationMarker) || strings.Contains(s, c.dialect.EnvMarker)
}

func (c *Catalog) hardcodedSecrets(g *workflow.Graph) ([]diag.Diagnostic, error) {
	text := g.Doc.Text()

	var out []diag.Diagnostic
	for _, p := range c.secrets {
		for _, match := range p.Pattern.FindAllString(text, -1) {
			if c.deferred(match) {
				continue
			}
			d := diag.Diagnostic{
				Kind:     diag.HardcodedSecret,
				Severity: diag.Critical,
				Message:  fmt.Sprintf("Possible hardcoded %s detected", p.Name),
				Hint:     "Use {{$env.VARIABLE_NAME}} instead",
			}
			// point at the first node the secret appears in, if any.
			for _, n := range g.Nodes() {
				params, ok := n.ParametersJSON()
				if ok && strings.Contains(params, match) {
					d.Node = n.Label()
					d.Path = n.Path
					break
				}
			}
			out = append(out, d)
		}
	}
	return out, nil
}

// envVars advises externalising configuration in workflows which
// never reference an environment variable.
func (c *Catalog) envVars(g *workflow.Graph) ([]diag.Diagnostic, error) {
	nodes, ok := g.Doc.Nodes()
	if !ok || len(nodes) <= c.thresholds.EnvAdvisoryNodes {
		return nil, nil
	}
	if strings.Contains(g.Doc.Text(), c.dialect.EnvMarker) {
		return nil, nil
	}
	return []diag.Diagnostic{{
		Kind:     diag.NoEnvVars,
		Severity: diag.Medium,
		Message:  "Workflow does not use environment variables - consider using them for configuration",
	}}, nil
}

func (c *Catalog) credentialsInURL(g *workflow.Graph) ([]diag.Diagnostic, error) {
	var out []diag.Diagnostic
	for _, n := range g.Nodes() {
		if n.Type != c.dialect.HTTPType {
			continue
		}
		params, ok := n.ParametersJSON()
		if !ok || !c.urlCreds.MatchString(params) {
			continue
		}
		out = append(out, diag.Diagnostic{
			Kind:     diag.CredentialsInURL,
			Severity: diag.Critical,
			Node:     n.Label(),
			Field:    "parameters",
			Message:  "HTTP URL contains embedded credentials - use authentication settings instead",
			Path:     n.Path,
		})
	}
	return out, nil
}
