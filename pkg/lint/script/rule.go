package script

import (
	"go.starlark.net/starlark"

	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

// rule is a loaded script; instances bind it to one set of options.
type rule struct {
	id       string
	tokens   []token.TokenType
	check    starlark.Callable
	maxSteps uint64
	print    func(*starlark.Thread, string)
}

func (r *rule) instantiate(opts map[string]any) (lint.Rule, error) {
	dict, err := optionsDict(opts)
	if err != nil {
		return nil, err
	}
	return &instance{rule: r, options: dict}, nil
}

type instance struct {
	*rule
	options *starlark.Dict
}

func (in *instance) ID() string                          { return in.id }
func (in *instance) InterestedTokens() []token.TokenType { return in.tokens }

// Check calls the script on a fresh thread. Errors, including an exhausted
// step budget, are returned to the manager.
func (in *instance) Check(tokens []token.Token, index int) ([]lint.Finding, error) {
	thread := &starlark.Thread{Name: in.id, Print: in.print}
	thread.SetMaxExecutionSteps(in.maxSteps)

	args := starlark.Tuple{newTokenList(tokens), starlark.MakeInt(index), in.options}
	result, err := starlark.Call(thread, in.check, args, nil)
	if err != nil {
		return nil, err
	}
	return findings(result, tokens, index)
}
