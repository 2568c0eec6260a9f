package diag

import (
	"fmt"
	"strings"
)

// Severity of a diagnostic. Severities are totally ordered:
// Low < Medium < High < Critical.
type Severity int

const (
	Low Severity = iota
	Medium
	High
	Critical
)

func (s Severity) String() string {
	switch s {
	case Low:
		return "LOW"
	case Medium:
		return "MEDIUM"
	case High:
		return "HIGH"
	case Critical:
		return "CRITICAL"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Valid returns true if the severity is one of the four defined levels.
func (s Severity) Valid() bool {
	return s >= Low && s <= Critical
}

// AtLeast returns true if s is as severe as, or more severe than, o.
func (s Severity) AtLeast(o Severity) bool {
	return s >= o
}

// ParseSeverity parses a severity name such as "high" or "CRITICAL".
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "LOW":
		return Low, nil
	case "MEDIUM":
		return Medium, nil
	case "HIGH":
		return High, nil
	case "CRITICAL":
		return Critical, nil
	}
	return Low, fmt.Errorf("unknown severity %q", name)
}

func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid severity %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	parsed, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
