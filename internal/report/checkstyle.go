package report

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/leapstack-labs/phpstyle/pkg/core"
)

// CheckstyleVersion is written to the root element when no version is given.
const CheckstyleVersion = "1.0.0"

type checkstyleReport struct {
	XMLName xml.Name         `xml:"checkstyle"`
	Version string           `xml:"version,attr"`
	Files   []checkstyleFile `xml:"file"`
}

type checkstyleFile struct {
	Name   string            `xml:"name,attr"`
	Errors []checkstyleError `xml:"error"`
}

type checkstyleError struct {
	Line     int    `xml:"line,attr"`
	Column   int    `xml:"column,attr"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:"message,attr"`
	Source   string `xml:"source,attr"`
}

// Checkstyle renders a checkstyle XML report. Every checked file is listed,
// including files without violations.
type Checkstyle struct {
	report checkstyleReport
	w      io.Writer
	path   string
}

// NewCheckstyle creates a checkstyle sink that writes to w on Close.
func NewCheckstyle(w io.Writer, version string) *Checkstyle {
	if version == "" {
		version = CheckstyleVersion
	}
	return &Checkstyle{w: w, report: checkstyleReport{Version: version}}
}

// NewCheckstyleFile creates a checkstyle sink that writes path on Close.
func NewCheckstyleFile(path, version string) *Checkstyle {
	c := NewCheckstyle(nil, version)
	c.path = path
	return c
}

// AddFile implements Sink.
func (c *Checkstyle) AddFile(file *core.SourceFile) error {
	cf := checkstyleFile{Name: file.Path}
	for _, v := range file.Violations {
		cf.Errors = append(cf.Errors, checkstyleError{
			Line:     v.Line,
			Column:   v.Column,
			Severity: v.Severity.String(),
			Message:  v.Message,
			Source:   "phpstyle." + v.RuleID,
		})
	}
	c.report.Files = append(c.report.Files, cf)
	return nil
}

// Close writes the report.
func (c *Checkstyle) Close() error {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(c.report); err != nil {
		return fmt.Errorf("failed to encode checkstyle report: %w", err)
	}
	buf.WriteByte('\n')

	if c.path != "" {
		if err := writeTarget(c.path, buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write checkstyle report: %w", err)
		}
		return nil
	}
	_, err := c.w.Write(buf.Bytes())
	return err
}
