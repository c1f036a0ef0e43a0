package files

import (
	"strings"

	"github.com/leapstack-labs/phpstyle/pkg/core"
	"github.com/leapstack-labs/phpstyle/pkg/lint"
	"github.com/leapstack-labs/phpstyle/pkg/token"
)

func init() {
	lint.Register(NoBOM)
}

const utf8BOM = "\xef\xbb\xbf"

var bomTokens = []token.TokenType{token.INLINE_HTML}

// NoBOM reports a UTF-8 byte order mark at the start of the file.
var NoBOM = lint.Definition{
	ID:              "no-bom",
	Name:            "files.no_bom",
	Group:           "files",
	Description:     "Files must be UTF-8 without a byte order mark.",
	DefaultSeverity: core.SeverityError,
	Tokens:          bomTokens,
	New:             lint.Static(lint.NewRule("no-bom", bomTokens, checkNoBOM)),

	Rationale: `PHP outputs the BOM bytes before the opening tag, which breaks headers,
sessions and namespace declarations.`,
}

func checkNoBOM(tokens []token.Token, i int) ([]lint.Finding, error) {
	if i != 0 || !strings.HasPrefix(tokens[i].Text, utf8BOM) {
		return nil, nil
	}
	return []lint.Finding{lint.At(tokens[i], "File contains a UTF-8 byte order mark")}, nil
}
