package model

import (
	"fmt"
	"strings"
)

// Severity is the ordered outcome of a checkpoint: Pass < Warning < Critical.
type Severity int

const (
	SeverityPass Severity = iota
	SeverityWarning
	SeverityCritical
)

var severityNames = [...]string{"pass", "warning", "critical"}

// String returns the lower-case name of the severity.
func (s Severity) String() string {
	if s < SeverityPass || s > SeverityCritical {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

// MarshalText renders the severity by name so reports stay readable.
func (s Severity) MarshalText() ([]byte, error) {
	if s < SeverityPass || s > SeverityCritical {
		return nil, fmt.Errorf("invalid severity %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity converts a name such as "warning" into a Severity.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pass":
		return SeverityPass, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "critical":
		return SeverityCritical, nil
	default:
		return SeverityPass, fmt.Errorf("unknown severity %q", name)
	}
}

// MaxSeverity returns the more severe of a and b.
func MaxSeverity(a, b Severity) Severity {
	if b > a {
		return b
	}
	return a
}
