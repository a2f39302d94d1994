package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execRoot runs the root command with the given args and captures output.
func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GT_HOME", t.TempDir())

	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, BuildInfo{Version: "test"})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootCmd_HelpWithoutArgs(t *testing.T) {
	out, err := execRoot(t)
	require.NoError(t, err)
	assert.Contains(t, out, "gt")
	assert.Contains(t, out, "add")
	assert.Contains(t, out, "commit")
	assert.Contains(t, out, "list")
}

func TestRootCmd_InvalidOutputFormat(t *testing.T) {
	_, err := execRoot(t, "list", "-o", "yaml")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRootCmd_VerboseQuietMutuallyExclusive(t *testing.T) {
	_, err := execRoot(t, "list", "-v", "-q")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRootCmd_UnknownCommand(t *testing.T) {
	_, err := execRoot(t, "push")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRootCmd_Aliases(t *testing.T) {
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{})

	aliases := map[string]string{
		"add":    "a",
		"commit": "c",
		"list":   "l",
	}
	for name, alias := range aliases {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				assert.Contains(t, sub.Aliases, alias, "command %s", name)
				found = true
			}
		}
		assert.True(t, found, "command %s not registered", name)
	}
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "1.2.3 (commit: abc, built: today)",
		formatVersion(BuildInfo{Version: "1.2.3", Commit: "abc", Date: "today"}))
	assert.Equal(t, "dev (commit: none, built: unknown)", formatVersion(BuildInfo{}))
}
