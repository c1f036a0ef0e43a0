package standard

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/phpstyle/pkg/core"
)

// Definition is the on-disk form of a standard.
//
//	name: ZF2
//	extends: PSR2
//	rules:
//	  - id: line-length
//	    severity: warning
//	    options:
//	      limit: 80
type Definition struct {
	Name        string      `yaml:"name"`
	Extends     string      `yaml:"extends,omitempty"`
	Description string      `yaml:"description,omitempty"`
	Rules       []RuleEntry `yaml:"rules"`
}

// RuleEntry configures one rule inside a Definition. A nil Enabled means enabled.
type RuleEntry struct {
	ID       string         `yaml:"id"`
	Enabled  *bool          `yaml:"enabled,omitempty"`
	Severity string         `yaml:"severity,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"`
}

// ParseDefinition decodes and validates a YAML standard definition.
// Unknown keys are rejected so that typos do not silently disable rules.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks rule ids and severities.
func (d *Definition) Validate() error {
	for i, r := range d.Rules {
		if r.ID == "" {
			return fmt.Errorf("%w: rule #%d has no id", ErrInvalidDefinition, i+1)
		}
		if _, ok := core.ParseSeverity(r.Severity); !ok {
			return fmt.Errorf("%w: rule %q: invalid severity %q", ErrInvalidDefinition, r.ID, r.Severity)
		}
	}
	return nil
}

// RuleConfigs converts the entries to rule configurations. Repeated ids collapse:
// a later entry replaces the earlier one in place.
func (d *Definition) RuleConfigs() []core.RuleConfig {
	configs := make([]core.RuleConfig, 0, len(d.Rules))
	for _, r := range d.Rules {
		sev, _ := core.ParseSeverity(r.Severity)
		configs = append(configs, core.RuleConfig{
			RuleID:   r.ID,
			Enabled:  r.Enabled == nil || *r.Enabled,
			Severity: sev,
			Options:  r.Options,
		})
	}
	return Merge(nil, configs)
}
