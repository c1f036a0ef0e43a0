package report

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/phpstyle/internal/cli/output"
	"github.com/leapstack-labs/phpstyle/pkg/core"
)

// Console prints violations grouped by file and a summary on Close.
type Console struct {
	r       *output.Renderer
	summary Summary
	byRule  map[ruleKey]int
}

type ruleKey struct {
	rule     string
	severity core.Severity
}

// NewConsole creates a console sink on r.
func NewConsole(r *output.Renderer) *Console {
	return &Console{r: r, byRule: make(map[ruleKey]int)}
}

// AddFile implements Sink. Files without violations print nothing.
func (c *Console) AddFile(file *core.SourceFile) error {
	c.summary.Add(file)
	if len(file.Violations) == 0 {
		return nil
	}

	st := c.r.Styles()
	c.r.Println(st.Path.Render(file.Path))
	for _, v := range file.Violations {
		c.byRule[ruleKey{v.RuleID, v.Severity}]++
		c.r.Printf("  %s  %s  %s  %s\n",
			st.Muted.Render(fmt.Sprintf("%-7s", fmt.Sprintf("%d:%d", v.Line, v.Column))),
			c.severity(v.Severity),
			st.Bold.Render(v.RuleID),
			v.Message,
		)
	}
	c.r.Println("")
	return nil
}

func (c *Console) severity(sev core.Severity) string {
	st := c.r.Styles()
	switch sev {
	case core.SeverityError:
		return st.Error.Render("error  ")
	case core.SeverityWarning:
		return st.Warning.Render("warning")
	default:
		return st.Muted.Render("unknown")
	}
}

// Summary returns the counts accumulated so far.
func (c *Console) Summary() Summary { return c.summary }

// Close prints the per-rule table and the totals line.
func (c *Console) Close() error {
	st := c.r.Styles()
	if c.summary.Violations() == 0 {
		c.r.Success(fmt.Sprintf("No violations in %d files", c.summary.Files))
		return nil
	}

	keys := make([]ruleKey, 0, len(c.byRule))
	for k := range c.byRule {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b ruleKey) int {
		return cmp.Or(
			cmp.Compare(c.byRule[b], c.byRule[a]),
			cmp.Compare(a.rule, b.rule),
			cmp.Compare(a.severity, b.severity),
		)
	})

	title := cases.Title(language.English)
	t := table.NewWriter()
	t.SetOutputMirror(c.r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rule", "Severity", "Count"})
	for _, k := range keys {
		t.AppendRow(table.Row{k.rule, title.String(k.severity.String()), c.byRule[k]})
	}
	t.Render()

	line := fmt.Sprintf("%d errors, %d warnings in %d of %d files",
		c.summary.Errors, c.summary.Warnings, c.summary.FilesWithViolations, c.summary.Files)
	if c.summary.Errors > 0 {
		c.r.Println(st.Error.Render(line))
	} else {
		c.r.Println(st.Warning.Render(line))
	}
	return nil
}
