package files

import (
	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

func init() {
	lint.Register(NoShortOpenTag)
}

var openTagTokens = []token.TokenType{token.OPEN_TAG}

// NoShortOpenTag reports "<?" used instead of "<?php". "<?=" is allowed.
var NoShortOpenTag = lint.Definition{
	ID:              "no-short-open-tag",
	Name:            "files.no_short_open_tag",
	Group:           "files",
	Description:     "PHP code must use the long <?php tag; short <? tags are not allowed.",
	DefaultSeverity: core.SeverityError,
	Tokens:          openTagTokens,
	New:             lint.Static(lint.NewRule("no-short-open-tag", openTagTokens, checkNoShortOpenTag)),

	Rationale: `Short tags depend on the short_open_tag ini setting; with it disabled the
code is printed instead of executed.`,

	BadExample: "<? echo 1;",

	GoodExample: "<?php echo 1;",
}

func checkNoShortOpenTag(tokens []token.Token, i int) ([]lint.Finding, error) {
	if tokens[i].Text != "<?" {
		return nil, nil
	}
	return []lint.Finding{lint.At(tokens[i], `Short PHP opening tag used; expected "<?php" but found "<?"`)}, nil
}
