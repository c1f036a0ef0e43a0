package standard

import "github.com/leapstack-labs/phpstyle/pkg/core"

// Merge applies override on top of base and returns a new slice:
// an override entry whose id is already present replaces that entry in place,
// any other entry is appended in override order. Neither input is modified.
func Merge(base, override []core.RuleConfig) []core.RuleConfig {
	out := make([]core.RuleConfig, 0, len(base)+len(override))
	index := make(map[string]int, len(base)+len(override))

	put := func(rc core.RuleConfig) {
		if i, ok := index[rc.RuleID]; ok {
			out[i] = rc
			return
		}
		index[rc.RuleID] = len(out)
		out = append(out, rc)
	}

	for _, rc := range base {
		put(rc)
	}
	for _, rc := range override {
		put(rc)
	}
	return out
}
