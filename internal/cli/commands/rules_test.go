package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRules(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestNewRulesCommand(t *testing.T) {
	cmd := NewRulesCommand()

	assert.Equal(t, "rules [rule-id]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Example)

	for _, flag := range []string{"group", "verbose", "format"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRulesCommand_ListAll(t *testing.T) {
	isolate(t)
	out, err := executeRules(t, "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "Rules (18)")
	for _, group := range []string{"Files", "Keywords", "Naming", "Whitespace"} {
		assert.Contains(t, out, group)
	}
	assert.Contains(t, out, "no-tabs")
}

func TestRulesCommand_JSON(t *testing.T) {
	isolate(t)
	out, err := executeRules(t, "--format", "json", "--group", "whitespace")
	require.NoError(t, err)

	var result RulesJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Equal(t, len(result.Rules), result.Count)
	require.NotZero(t, result.Count)
	for _, r := range result.Rules {
		assert.Equal(t, "whitespace", r.Group)
	}
}

func TestRulesCommand_UnknownGroup(t *testing.T) {
	isolate(t)
	out, err := executeRules(t, "--format", "json", "--group", "Whitespace")
	require.NoError(t, err)

	var result RulesJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Zero(t, result.Count, "group names are matched exactly")
	assert.Empty(t, result.Rules)
}

func TestRulesCommand_Scripts(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".phpstyle", "rules", "no-todo.star"), scriptRule)

	out, err := executeRules(t, "--format", "json", "--group", "script")
	require.NoError(t, err)
	var result RulesJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "no-todo", result.Rules[0].ID)
	assert.Equal(t, filepath.Join(dir, ".phpstyle", "rules", "no-todo.star"), result.Rules[0].Source)
}

func TestRulesCommand_Show(t *testing.T) {
	isolate(t)
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr string
	}{
		{
			name: "builtin rule",
			args: []string{"no-tabs", "--format", "text"},
			want: []string{"no-tabs - whitespace.no_tabs", "Group", "whitespace", "Source", "builtin"},
		},
		{
			name: "options listed",
			args: []string{"indentation", "--format", "text"},
			want: []string{"Configuration", "width"},
		},
		{
			name:    "unknown rule",
			args:    []string{"tabs"},
			wantErr: `rule "tabs" not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeRules(t, tt.args...)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestTruncateOneLine(t *testing.T) {
	assert.Equal(t, "a b", truncateOneLine("a\nb", 10))
	assert.Equal(t, "abcdefg...", truncateOneLine("abcdefghijkl", 10))
}
