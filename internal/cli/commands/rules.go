package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/phpstyle/internal/cli/output"
	"github.com/leapstack-labs/phpstyle/pkg/core"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Verbose bool   // Show full documentation
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available rules",
		Long: `List all available rules with their documentation.

Rules are organized by group (e.g., whitespace, naming). Scripted rules from
the rules directory are listed under the "script" group.
Use --verbose to see full documentation including examples.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  phpstyle rules

  # Show details for a specific rule
  phpstyle rules line-length

  # List rules in the whitespace group
  phpstyle rules --group whitespace

  # Show full documentation
  phpstyle rules -V

  # Output as JSON
  phpstyle rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd, output.Mode(opts.Format))
			if err != nil {
				return err
			}
			if len(args) > 0 {
				return showRule(cc, args[0])
			}
			return listRules(cc, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

// allRules returns the registered rules, limited to group when it is set.
func allRules(cc *CommandContext, group string) ([]core.RuleInfo, error) {
	reg, err := cc.Registry()
	if err != nil {
		return nil, err
	}
	defs := reg.All()
	if group != "" {
		defs = reg.ByGroup(group)
	}
	rules := make([]core.RuleInfo, len(defs))
	for i, d := range defs {
		rules[i] = d.Info()
	}
	return rules, nil
}

func listRules(cc *CommandContext, opts *RulesOptions) error {
	rules, err := allRules(cc, opts.Group)
	if err != nil {
		return err
	}

	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Group != rules[j].Group {
			return rules[i].Group < rules[j].Group
		}
		return rules[i].ID < rules[j].ID
	})

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(RulesJSONOutput{Rules: rules, Count: len(rules)})
	case output.ModeMarkdown:
		return listRulesMarkdown(r, rules, opts.Verbose)
	default:
		return listRulesText(r, rules, opts.Verbose)
	}
}

func showRule(cc *CommandContext, ruleID string) error {
	rules, err := allRules(cc, "")
	if err != nil {
		return err
	}

	var rule *core.RuleInfo
	for i := range rules {
		if rules[i].ID == ruleID {
			rule = &rules[i]
			break
		}
	}
	if rule == nil {
		return fmt.Errorf("rule %q not found", ruleID)
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rule)
	case output.ModeMarkdown:
		return showRuleMarkdown(r, rule)
	default:
		return showRuleText(r, rule)
	}
}

// listRulesText outputs rules in styled text format.
func listRulesText(r *output.Renderer, rules []core.RuleInfo, verbose bool) error {
	styles := r.Styles()
	title := cases.Title(language.English)

	r.Println(styles.Header.Render(fmt.Sprintf("Rules (%d)", len(rules))))
	r.Println("")

	currentGroup := ""
	for _, rule := range rules {
		if rule.Group != currentGroup {
			currentGroup = rule.Group
			r.Println(styles.Bold.Render("  " + title.String(currentGroup)))
		}

		r.Printf("    %s  %s - %s\n",
			styles.Code.Render(rule.ID),
			rule.Name,
			getSeverityStyle(styles, rule.DefaultSeverity).Render(rule.DefaultSeverity.String()),
		)

		if verbose {
			r.Println(styles.Muted.Render("        " + rule.Description))
			if rule.Rationale != "" {
				r.Println(styles.Muted.Render("        Why: " + truncateOneLine(rule.Rationale, 80)))
			}
			r.Println("")
		}
	}

	r.Println("")
	r.Println(styles.Muted.Render("Use 'phpstyle rules <rule-id>' for detailed documentation"))
	return nil
}

// listRulesMarkdown outputs rules in markdown format.
func listRulesMarkdown(r *output.Renderer, rules []core.RuleInfo, verbose bool) error {
	title := cases.Title(language.English)
	r.Println("# Rules")
	r.Println("")

	currentGroup := ""
	for _, rule := range rules {
		if rule.Group != currentGroup {
			currentGroup = rule.Group
			r.Println("## " + title.String(currentGroup))
			r.Println("")
		}

		r.Printf("- **%s** - %s (`%s`)\n", rule.ID, rule.Name, rule.DefaultSeverity.String())
		if verbose {
			r.Println("  " + rule.Description)
			if rule.Rationale != "" {
				r.Println("  > " + rule.Rationale)
			}
		}
	}

	r.Println("")
	return nil
}

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Rules []core.RuleInfo `json:"rules"`
	Count int             `json:"count"`
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, rule *core.RuleInfo) error {
	styles := r.Styles()

	r.Println(styles.Header.Render(fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), rule.Group)
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), rule.DefaultSeverity.String())
	r.Printf("  %s: %s\n", styles.Bold.Render("Source"), rule.Source)
	if len(rule.Tokens) > 0 {
		r.Printf("  %s: %s\n", styles.Bold.Render("Tokens"), strings.Join(rule.Tokens, ", "))
	}
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println(styles.Bold.Render("Bad Example"))
		for _, line := range strings.Split(rule.BadExample, "\n") {
			r.Println(styles.Muted.Render("  " + line))
		}
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println(styles.Bold.Render("Good Example"))
		for _, line := range strings.Split(rule.GoodExample, "\n") {
			r.Println(styles.Success.Render("  " + line))
		}
		r.Println("")
	}

	if len(rule.ConfigKeys) > 0 {
		r.Println(styles.Bold.Render("Configuration"))
		r.Printf("  Options: %s\n", strings.Join(rule.ConfigKeys, ", "))
		r.Println("")
	}

	return nil
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, rule *core.RuleInfo) error {
	r.Printf("# %s - %s\n\n", rule.ID, rule.Name)
	r.Printf("**Group:** %s | **Severity:** `%s` | **Source:** %s\n\n", rule.Group, rule.DefaultSeverity.String(), rule.Source)
	r.Println(rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println("## Why This Matters")
		r.Println("")
		r.Println(rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println("## Bad Example")
		r.Println("")
		r.Println("```php")
		r.Println(rule.BadExample)
		r.Println("```")
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println("## Good Example")
		r.Println("")
		r.Println("```php")
		r.Println(rule.GoodExample)
		r.Println("```")
		r.Println("")
	}

	if len(rule.ConfigKeys) > 0 {
		r.Println("## Configuration")
		r.Println("")
		r.Printf("Options: `%s`\n", strings.Join(rule.ConfigKeys, "`, `"))
		r.Println("")
	}

	return nil
}

// Helper functions

func getSeverityStyle(styles *output.Styles, sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return styles.Error
	case core.SeverityWarning:
		return styles.Warning
	default:
		return styles.Muted
	}
}

func truncateOneLine(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
