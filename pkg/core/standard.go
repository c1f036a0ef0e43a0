package core

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// RuleConfig is one rule entry of a resolved standard.
type RuleConfig struct {
	RuleID   string         `json:"id"`
	Enabled  bool           `json:"enabled"`
	Severity Severity       `json:"severity,omitempty"`
	Options  map[string]any `json:"options,omitempty"`
}

// Standard is a named, ordered set of rule configurations after built-in and user
// definitions have been merged. Rule ids are unique.
type Standard struct {
	Name    string       `json:"name"`
	Extends string       `json:"extends,omitempty"`
	Rules   []RuleConfig `json:"rules"`
}

// Rule returns the configuration for id.
func (s *Standard) Rule(id string) (RuleConfig, bool) {
	for _, rc := range s.Rules {
		if rc.RuleID == id {
			return rc, true
		}
	}
	return RuleConfig{}, false
}

// EnabledRules returns the enabled rule configurations in order.
func (s *Standard) EnabledRules() []RuleConfig {
	out := make([]RuleConfig, 0, len(s.Rules))
	for _, rc := range s.Rules {
		if rc.Enabled {
			out = append(out, rc)
		}
	}
	return out
}

// Fingerprint returns a stable hex SHA-256 of the standard's canonical JSON
// encoding. Two standards with the same fingerprint produce the same violations
// for the same input.
func (s *Standard) Fingerprint() string {
	// encoding/json sorts map keys, so option maps encode deterministically.
	data, err := json.Marshal(s)
	if err != nil {
		data = fmt.Appendf(nil, "%#v", *s)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
