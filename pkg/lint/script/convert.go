package script

import (
	"fmt"
	"sort"

	"go.starlark.net/starlark"

	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

// toStarlark converts a decoded option value to a Starlark value.
// Supported types: string, bool, ints, float64, []string, []any, map[string]any.
func toStarlark(v any) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}

	switch val := v.(type) {
	case string:
		return starlark.String(val), nil

	case bool:
		return starlark.Bool(val), nil

	case int:
		return starlark.MakeInt(val), nil

	case int64:
		return starlark.MakeInt64(val), nil

	case uint64:
		return starlark.MakeUint64(val), nil

	case float64:
		return starlark.Float(val), nil

	case []string:
		list := make([]starlark.Value, len(val))
		for i, s := range val {
			list[i] = starlark.String(s)
		}
		return starlark.NewList(list), nil

	case []any:
		list := make([]starlark.Value, len(val))
		for i, item := range val {
			sv, err := toStarlark(item)
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			list[i] = sv
		}
		return starlark.NewList(list), nil

	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		dict := starlark.NewDict(len(val))
		for _, k := range keys {
			sv, err := toStarlark(val[k])
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", k, err)
			}
			if err := dict.SetKey(starlark.String(k), sv); err != nil {
				return nil, fmt.Errorf("dict setkey %q: %w", k, err)
			}
		}
		return dict, nil

	default:
		return nil, fmt.Errorf("unsupported option type: %T", v)
	}
}

// optionsDict converts rule options to a frozen Starlark dict.
func optionsDict(opts map[string]any) (*starlark.Dict, error) {
	if opts == nil {
		opts = map[string]any{}
	}
	v, err := toStarlark(opts)
	if err != nil {
		return nil, err
	}
	dict := v.(*starlark.Dict)
	dict.Freeze()
	return dict, nil
}

// findings converts the value returned by check. None means no findings.
func findings(result starlark.Value, tokens []token.Token, index int) ([]lint.Finding, error) {
	if result == starlark.None {
		return nil, nil
	}
	seq, ok := result.(starlark.Iterable)
	if !ok {
		return nil, fmt.Errorf("check must return a list, got %s", result.Type())
	}

	var out []lint.Finding
	iter := seq.Iterate()
	defer iter.Done()

	var item starlark.Value
	for iter.Next(&item) {
		f, err := finding(item, tokens, index)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func finding(item starlark.Value, tokens []token.Token, index int) (lint.Finding, error) {
	if msg, ok := starlark.AsString(item); ok {
		return lint.Finding{Pos: tokens[index].Pos, Message: msg}, nil
	}

	dict, ok := item.(*starlark.Dict)
	if !ok {
		return lint.Finding{}, fmt.Errorf("finding must be a string or dict, got %s", item.Type())
	}

	v, found, err := dict.Get(starlark.String("message"))
	if err != nil {
		return lint.Finding{}, err
	}
	msg, ok := starlark.AsString(v)
	if !found || !ok {
		return lint.Finding{}, fmt.Errorf("finding dict needs a string \"message\"")
	}

	at := index
	if v, found, err := dict.Get(starlark.String("at")); err != nil {
		return lint.Finding{}, err
	} else if found {
		if at, err = starlark.AsInt32(v); err != nil {
			return lint.Finding{}, fmt.Errorf("finding \"at\": %w", err)
		}
		if at < 0 || at >= len(tokens) {
			return lint.Finding{}, fmt.Errorf("finding \"at\" index %d out of range [0, %d)", at, len(tokens))
		}
	}
	return lint.Finding{Pos: tokens[at].Pos, Message: msg}, nil
}
