// Package report writes check results to one or more sinks.
//
// A sink receives every checked file in discovery order through AddFile and
// flushes whatever it buffered on Close. File sinks write their target only on
// Close, so an interrupted run never leaves a half-written report behind.
package report

import (
	"errors"
	"os"

	"github.com/leapstack-labs/phpstyle/pkg/core"
)

// Sink consumes checked files.
type Sink interface {
	AddFile(file *core.SourceFile) error
	Close() error
}

// Summary counts the results of a run.
type Summary struct {
	Files               int `json:"files"`
	FilesWithViolations int `json:"files_with_violations"`
	Errors              int `json:"errors"`
	Warnings            int `json:"warnings"`
}

// Add accumulates the violations of file.
func (s *Summary) Add(file *core.SourceFile) {
	s.Files++
	if len(file.Violations) > 0 {
		s.FilesWithViolations++
	}
	e, w := file.Counts()
	s.Errors += e
	s.Warnings += w
}

// Violations returns the total number of violations.
func (s Summary) Violations() int {
	return s.Errors + s.Warnings
}

type multi []Sink

// Multi returns a sink that forwards to every non-nil sink in order.
// Errors from individual sinks are joined; one failing sink does not stop
// the others.
func Multi(sinks ...Sink) Sink {
	var m multi
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

func (m multi) AddFile(file *core.SourceFile) error {
	var errs []error
	for _, s := range m {
		if err := s.AddFile(file); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// writeTarget writes data to path, replacing it.
func writeTarget(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644) //nolint:gosec // G306: reports are meant to be shared
}
