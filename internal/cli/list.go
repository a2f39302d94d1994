package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/gittrack/gt/internal/changelog"
	"github.com/gittrack/gt/internal/tui"
)

// listFlags holds the flags for the list command.
type listFlags struct {
	projectRoot string // used for testing
}

// AddListCommand adds the list command to the root command.
func AddListCommand(root *cobra.Command, global *GlobalFlags) {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"l"},
		Short:   "Show the changes recorded for the next commit",
		Long: `Show all recorded changes in the order they will appear in the commit
message. An empty changelog is not an error.

Exit codes:
  0: Success (including no changes recorded)
  1: General error (corrupt changelog)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(commandContext(cmd), cmd.OutOrStdout(), flags, global)
		},
	}

	root.AddCommand(cmd)
}

// runList executes the list command.
func runList(ctx context.Context, w io.Writer, flags *listFlags, global *GlobalFlags) error {
	out := tui.NewOutput(w, global.Output)

	store, err := changelog.NewFileStore(flags.projectRoot)
	if err != nil {
		out.Error(err)
		return err
	}

	changes, err := store.All(ctx)
	if err != nil {
		out.Error(err)
		return err
	}

	if global.Output == OutputJSON {
		return out.JSON(changes)
	}

	if len(changes) == 0 {
		out.Info("no changes recorded")
		return nil
	}

	out.Info(fmt.Sprintf("%d pending change(s):", len(changes)))
	for _, c := range changes {
		out.Dim(fmt.Sprintf("  %s  [%s]", c.Timestamp.Local().Format(time.DateTime), c.Type))
		_, _ = fmt.Fprintf(w, "    %s\n", c.Description)
		for _, f := range c.Files {
			out.Dim(fmt.Sprintf("      - %s", f))
		}
	}
	return nil
}
