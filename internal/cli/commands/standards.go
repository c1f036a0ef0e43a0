package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/phpstyle/internal/cli/output"
	"github.com/leapstack-labs/phpstyle/pkg/core"
)

// StandardsOptions holds options for the standards command.
type StandardsOptions struct {
	Format string // Output format
}

// NewStandardsCommand creates the standards command.
func NewStandardsCommand() *cobra.Command {
	opts := &StandardsOptions{}
	cmd := &cobra.Command{
		Use:   "standards [name]",
		Short: "List coding standards or show one resolved",
		Long: `List the available coding standards, or show the resolved rule list of one.

Standards come from the built-in set (PSR1, PSR2, ZF2) and from <Name>.yaml
files in the standards directory. A user file with a built-in name overrides
rules of that standard; a user file with a new name must extend another one.`,
		Example: `  # List standards
  phpstyle standards

  # Show the rules ZF2 resolves to
  phpstyle standards ZF2

  # As JSON
  phpstyle standards ZF2 --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd, output.Mode(opts.Format))
			if err != nil {
				return err
			}
			if len(args) > 0 {
				return showStandard(cc, args[0])
			}
			return listStandards(cc)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")
	return cmd
}

// StandardSummary describes one available standard.
type StandardSummary struct {
	Name        string `json:"name"`
	Extends     string `json:"extends,omitempty"`
	Description string `json:"description,omitempty"`
	Default     bool   `json:"default,omitempty"`
}

func listStandards(cc *CommandContext) error {
	res := cc.Resolver()
	var list []StandardSummary
	for _, name := range res.Names() {
		def, ok, err := res.Definition(name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		list = append(list, StandardSummary{
			Name:        name,
			Extends:     def.Extends,
			Description: strings.Join(strings.Fields(def.Description), " "),
			Default:     name == cc.Cfg.Standard,
		})
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(map[string]any{"standards": list})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Coding Standards"))
		r.Println("")
		for _, s := range list {
			line := "- **" + s.Name + "**"
			if s.Extends != "" {
				line += " (extends " + s.Extends + ")"
			}
			if s.Default {
				line += " *default*"
			}
			if s.Description != "" {
				line += ": " + s.Description
			}
			r.Println(line)
		}
		r.Println("")
		return nil
	}

	st := r.Styles()
	r.Println(st.Header.Render(fmt.Sprintf("Coding Standards (%d)", len(list))))
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Extends", "Description"})
	for _, s := range list {
		name := s.Name
		if s.Default {
			name += " *"
		}
		t.AppendRow(table.Row{name, s.Extends, truncateOneLine(s.Description, 60)})
	}
	t.Render()
	r.Println(st.Muted.Render("* configured standard. Use 'phpstyle standards <name>' for its rules"))
	return nil
}

// resolvedRule is one line of a resolved standard.
type resolvedRule struct {
	ID       string         `json:"id"`
	Enabled  bool           `json:"enabled"`
	Severity core.Severity  `json:"severity"`
	Known    bool           `json:"known"`
	Options  map[string]any `json:"options,omitempty"`
}

func showStandard(cc *CommandContext, name string) error {
	std, err := cc.Resolver().Resolve(name)
	if err != nil {
		return err
	}
	reg, err := cc.Registry()
	if err != nil {
		return err
	}

	rules := make([]resolvedRule, 0, len(std.Rules))
	for _, rc := range std.Rules {
		def, known := reg.Lookup(rc.RuleID)
		rules = append(rules, resolvedRule{
			ID:       rc.RuleID,
			Enabled:  rc.Enabled,
			Severity: rc.Severity.Or(def.DefaultSeverity).Or(core.SeverityWarning),
			Known:    known,
			Options:  rc.Options,
		})
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(map[string]any{
			"name":        std.Name,
			"extends":     std.Extends,
			"fingerprint": std.Fingerprint(),
			"rules":       rules,
		})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, std.Name))
		r.Println("")
		if std.Extends != "" {
			r.Println(output.FormatKeyValue("Extends", std.Extends))
			r.Println("")
		}
		r.Println("| Rule | Enabled | Severity | Options |")
		r.Println("|---|---|---|---|")
		for _, rr := range rules {
			r.Printf("| %s | %t | %s | %s |\n", rr.ID, rr.Enabled, rr.Severity, formatOptions(rr.Options))
		}
		r.Println("")
		return nil
	}

	st := r.Styles()
	title := std.Name
	if std.Extends != "" {
		title += " (extends " + std.Extends + ")"
	}
	r.Println(st.Header.Render(title))
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Rule", "Enabled", "Severity", "Options"})
	for i, rr := range rules {
		id := rr.ID
		if !rr.Known {
			id += " (unknown)"
		}
		enabled := "yes"
		if !rr.Enabled {
			enabled = "no"
		}
		t.AppendRow(table.Row{i + 1, id, enabled, rr.Severity.String(), formatOptions(rr.Options)})
	}
	t.Render()
	return nil
}

// formatOptions renders options as sorted key=value pairs.
func formatOptions(opts map[string]any) string {
	if len(opts) == 0 {
		return ""
	}
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, opts[k])
	}
	return strings.Join(parts, " ")
}
