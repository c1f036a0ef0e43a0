package core

import (
	"fmt"

	"github.com/leapstack-labs/phpstyle/pkg/token"
)

// SourceFile is one input under analysis. Content is owned by the file and every
// token's Text is a slice of it.
type SourceFile struct {
	Path       string
	Content    []byte
	Tokens     []token.Token
	Violations []Violation
}

// HasErrors reports whether any violation has error severity.
func (f *SourceFile) HasErrors() bool {
	for _, v := range f.Violations {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Counts returns the number of error and warning violations.
func (f *SourceFile) Counts() (errors, warnings int) {
	for _, v := range f.Violations {
		switch v.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}

// Violation is a single rule finding attached to a position in a file.
type Violation struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Offset   int      `json:"offset"`
	RuleID   string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// String formats the violation as "file:line:col: severity: message (rule)".
func (v Violation) String() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s (%s)", v.File, v.Line, v.Column, v.Severity, v.Message, v.RuleID)
}
