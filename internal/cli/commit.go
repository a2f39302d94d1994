package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gittrack/gt/internal/changelog"
	"github.com/gittrack/gt/internal/commit"
	"github.com/gittrack/gt/internal/config"
	"github.com/gittrack/gt/internal/git"
	"github.com/gittrack/gt/internal/tui"
)

// commitFlags holds the flags for the commit command.
type commitFlags struct {
	branch      string
	noPush      bool
	projectRoot string // used for testing
}

// AddCommitCommand adds the commit command to the root command.
func AddCommitCommand(root *cobra.Command, global *GlobalFlags) {
	flags := &commitFlags{}

	cmd := &cobra.Command{
		Use:     "commit",
		Aliases: []string{"c"},
		Short:   "Collapse recorded changes into one commit",
		Long: `Stage everything, commit all recorded changes as one structured message,
and push when auto_push is enabled. Push problems never undo the commit;
they are reported as warnings.

Examples:
  gt commit
  gt commit -b feature/login
  gt c --no-push

Exit codes:
  0: Success (commit recorded, even if the push was skipped)
  1: General error (not a repository, nothing recorded, commit failed)
  2: Invalid input`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommit(commandContext(cmd), cmd.OutOrStdout(), flags, global)
		},
	}

	cmd.Flags().StringVarP(&flags.branch, "branch", "b", "", "target branch (default: configured default_branch)")
	cmd.Flags().BoolVar(&flags.noPush, "no-push", false, "skip the push even when auto_push is enabled")

	root.AddCommand(cmd)
}

// runCommit executes the commit command.
func runCommit(ctx context.Context, w io.Writer, flags *commitFlags, global *GlobalFlags) error {
	out := tui.NewOutput(w, global.Output)
	logger := GetLogger()

	store, err := changelog.NewFileStore(flags.projectRoot)
	if err != nil {
		out.Error(err)
		return err
	}

	cfg, err := config.Load(ctx, flags.projectRoot)
	if err != nil {
		out.Error(err)
		return err
	}

	// A leftover recovery snapshot means a previous run crashed between
	// drain and commit. Surface it; never restore or delete it here.
	if orphaned, oerr := store.OrphanedRecovery(ctx); oerr == nil && len(orphaned) > 0 {
		out.Warning(fmt.Sprintf("found %d change(s) from an interrupted run in %s; inspect or delete the file",
			len(orphaned), store.RecoveryPath()))
	}

	runner := git.NewCLIRunner(flags.projectRoot, git.WithLogger(logger))
	orch := commit.New(store, cfg, runner, commit.WithLogger(logger))

	result, err := orch.Run(ctx, commit.Options{
		Branch: flags.branch,
		NoPush: flags.noPush,
	})
	if err != nil {
		out.Error(err)
		return err
	}

	for _, warning := range result.Warnings {
		out.Warning(warning)
	}

	if global.Output == OutputJSON {
		return out.JSON(result)
	}

	if result.Pushed {
		out.Success(fmt.Sprintf("committed %s and pushed to %s (%d change(s))",
			result.CommitID, result.Branch, result.ChangeCount))
	} else {
		out.Success(fmt.Sprintf("committed %s (%d change(s))", result.CommitID, result.ChangeCount))
	}
	return nil
}
