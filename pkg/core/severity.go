package core

import (
	"fmt"
	"strings"
)

// =============================================================================
// Severity
// =============================================================================

// Severity indicates the importance of a violation.
type Severity int

// Severity levels for violations.
const (
	// SeverityUnset means "use the rule's default severity".
	SeverityUnset Severity = iota
	// SeverityError indicates a standard violation that fails the run.
	SeverityError
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityUnset:
		return ""
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a string to a Severity value.
// The empty string parses as SeverityUnset.
// Returns the severity and true if valid, or SeverityUnset and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return SeverityUnset, true
	case "error":
		return SeverityError, true
	case "warning", "warn":
		return SeverityWarning, true
	default:
		return SeverityUnset, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	sev, ok := ParseSeverity(string(text))
	if !ok {
		return fmt.Errorf("invalid severity %q (want error or warning)", text)
	}
	*s = sev
	return nil
}

// Or returns s, or def when s is unset.
func (s Severity) Or(def Severity) Severity {
	if s == SeverityUnset {
		return def
	}
	return s
}

// =============================================================================
// RuleInfo
// =============================================================================

// RuleInfo provides metadata about a lint rule for documentation/tooling.
// This is a DTO (Data Transfer Object) - it carries data without behavior.
type RuleInfo struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Group           string   `json:"group"`
	Description     string   `json:"description"`
	DefaultSeverity Severity `json:"default_severity"`
	ConfigKeys      []string `json:"config_keys,omitempty"`
	Tokens          []string `json:"tokens,omitempty"`
	Source          string   `json:"source"` // "builtin" or the script path

	// Documentation fields
	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
}
