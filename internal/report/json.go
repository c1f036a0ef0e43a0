package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/leapstack-labs/phpstyle/pkg/core"
)

type jsonReport struct {
	Files   []jsonFile `json:"files"`
	Summary Summary    `json:"summary"`
}

type jsonFile struct {
	Path       string          `json:"path"`
	Violations []jsonViolation `json:"violations"`
}

type jsonViolation struct {
	Line     int           `json:"line"`
	Column   int           `json:"column"`
	Severity core.Severity `json:"severity"`
	Rule     string        `json:"rule"`
	Message  string        `json:"message"`
}

// JSON renders a machine-readable report of every checked file.
type JSON struct {
	report jsonReport
	w      io.Writer
	path   string
}

// NewJSON creates a JSON sink that writes to w on Close.
func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w, report: jsonReport{Files: []jsonFile{}}}
}

// NewJSONFile creates a JSON sink that writes path on Close.
func NewJSONFile(path string) *JSON {
	j := NewJSON(nil)
	j.path = path
	return j
}

// AddFile implements Sink.
func (j *JSON) AddFile(file *core.SourceFile) error {
	jf := jsonFile{Path: file.Path, Violations: make([]jsonViolation, 0, len(file.Violations))}
	for _, v := range file.Violations {
		jf.Violations = append(jf.Violations, jsonViolation{
			Line:     v.Line,
			Column:   v.Column,
			Severity: v.Severity,
			Rule:     v.RuleID,
			Message:  v.Message,
		})
	}
	j.report.Files = append(j.report.Files, jf)
	j.report.Summary.Add(file)
	return nil
}

// Close writes the report.
func (j *JSON) Close() error {
	data, err := json.MarshalIndent(j.report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode json report: %w", err)
	}
	data = append(data, '\n')

	if j.path != "" {
		if err := writeTarget(j.path, data); err != nil {
			return fmt.Errorf("failed to write json report: %w", err)
		}
		return nil
	}
	_, err = j.w.Write(data)
	return err
}
