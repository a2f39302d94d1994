package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gittrack/gt/internal/changelog"
	gterrors "github.com/gittrack/gt/internal/errors"
	"github.com/gittrack/gt/internal/git"
	"github.com/gittrack/gt/internal/tui"
)

// addFlags holds the flags for the add command.
type addFlags struct {
	changeType  string
	projectRoot string // used for testing
}

// AddAddCommand adds the add command to the root command.
func AddAddCommand(root *cobra.Command, global *GlobalFlags) {
	flags := &addFlags{}

	cmd := &cobra.Command{
		Use:     "add <description>",
		Aliases: []string{"a"},
		Short:   "Record a change for the next commit",
		Long: `Record a typed change note. Notes accumulate until gt commit collapses
them into a single conventional commit.

Valid types: feature, fix, docs, style, refactor, test, chore (default: feature)

Examples:
  gt add "implement login form"
  gt add "handle empty password" -t fix
  gt a "update readme" -t docs

Exit codes:
  0: Success
  1: General error (IO)
  2: Invalid input (empty description, unknown type)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(commandContext(cmd), cmd.OutOrStdout(), args[0], flags, global)
		},
	}

	cmd.Flags().StringVarP(&flags.changeType, "type", "t", "",
		"change type ("+strings.Join(typeNames(), "|")+")")

	root.AddCommand(cmd)
}

// runAdd executes the add command.
func runAdd(ctx context.Context, w io.Writer, description string, flags *addFlags, global *GlobalFlags) error {
	out := tui.NewOutput(w, global.Output)

	changeType, err := changelog.ParseType(flags.changeType)
	if err != nil {
		wrapped := gterrors.NewExitCode2Error(err)
		out.Error(wrapped)
		return wrapped
	}

	store, err := changelog.NewFileStore(flags.projectRoot)
	if err != nil {
		out.Error(err)
		return err
	}

	change := &changelog.Change{
		Type:        changeType,
		Description: description,
		Files:       capturedFiles(ctx, flags.projectRoot),
	}

	if err := store.Append(ctx, change); err != nil {
		if isValidationError(err) {
			err = gterrors.NewExitCode2Error(err)
		}
		out.Error(err)
		return err
	}

	logger := GetLogger()
	logger.Info().
		Str("id", change.ID).
		Str("type", string(change.Type)).
		Int("files", len(change.Files)).
		Msg("change recorded")

	if global.Output == OutputJSON {
		return out.JSON(change)
	}

	out.Success(fmt.Sprintf("recorded %s change: %s", change.Type, change.Description))
	if len(change.Files) > 0 {
		out.Dim(fmt.Sprintf("  %d file(s) touched", len(change.Files)))
	}
	return nil
}

// capturedFiles returns the working-tree paths currently touched, best
// effort. Outside a repository, or on any git failure, it returns nil; the
// change still gets recorded.
func capturedFiles(ctx context.Context, projectRoot string) []string {
	runner := git.NewCLIRunner(projectRoot, git.WithLogger(GetLogger()))
	if !runner.IsRepository(ctx) {
		return nil
	}
	status, err := runner.Status(ctx)
	if err != nil {
		return nil
	}
	return status.ModifiedFiles()
}

// isValidationError reports whether the error stems from bad user input.
func isValidationError(err error) bool {
	return stderrors.Is(err, gterrors.ErrValidation) || stderrors.Is(err, gterrors.ErrEmptyValue)
}

// typeNames returns the valid change type names in display order.
func typeNames() []string {
	names := make([]string, 0, len(changelog.ValidTypes))
	for _, t := range changelog.ValidTypes {
		names = append(names, string(t))
	}
	return names
}
