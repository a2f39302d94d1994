// Package git provides the repository gateway for gt.
// This file defines the Runner interface and its CLI-backed implementation.
package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gittrack/gt/internal/ctxutil"
	gterrors "github.com/gittrack/gt/internal/errors"
)

// Runner abstracts the git operations the commit orchestrator depends on.
// Implementations must be safe to call sequentially from a single goroutine.
type Runner interface {
	// IsRepository reports whether the working directory is inside a git
	// repository (worktrees included).
	IsRepository(ctx context.Context) bool

	// Status returns the parsed working-tree status.
	Status(ctx context.Context) (*Status, error)

	// CurrentBranch returns the checked-out branch name.
	CurrentBranch(ctx context.Context) (string, error)

	// RemoteExists reports whether the named remote is configured.
	RemoteExists(ctx context.Context, remote string) (bool, error)

	// BranchExistsOnRemote reports whether the branch has a ref on the
	// remote. Requires network access.
	BranchExistsOnRemote(ctx context.Context, remote, branch string) (bool, error)

	// CreateRemoteBranch publishes the current HEAD to remote/branch and
	// sets the upstream tracking reference.
	CreateRemoteBranch(ctx context.Context, remote, branch string) error

	// StageAll stages every change in the working tree, untracked files
	// included.
	StageAll(ctx context.Context) error

	// Commit records the staged changes with the given message and returns
	// the short commit hash.
	Commit(ctx context.Context, message string) (string, error)

	// Push pushes the current branch to remote/branch.
	Push(ctx context.Context, remote, branch string) error
}

// CLIRunner implements Runner by shelling out to the git binary.
type CLIRunner struct {
	workDir string
	logger  zerolog.Logger
}

// Compile-time interface check.
var _ Runner = (*CLIRunner)(nil)

// CLIRunnerOption configures a CLIRunner.
type CLIRunnerOption func(*CLIRunner)

// WithLogger sets the logger used for git command tracing.
func WithLogger(logger zerolog.Logger) CLIRunnerOption {
	return func(r *CLIRunner) {
		r.logger = logger
	}
}

// NewCLIRunner creates a CLIRunner operating in workDir. An empty workDir
// means the process working directory.
func NewCLIRunner(workDir string, opts ...CLIRunnerOption) *CLIRunner {
	r := &CLIRunner{
		workDir: workDir,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsRepository reports whether workDir is inside a git repository.
func (r *CLIRunner) IsRepository(ctx context.Context) bool {
	if err := ctxutil.Canceled(ctx); err != nil {
		return false
	}
	_, err := RunCommand(ctx, r.workDir, "rev-parse", "--git-dir")
	return err == nil
}

// Status returns the parsed working-tree status.
func (r *CLIRunner) Status(ctx context.Context) (*Status, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}
	output, err := RunCommand(ctx, r.workDir, "status", "--porcelain", "--branch")
	if err != nil {
		return nil, err
	}
	return parseStatus(output), nil
}

// CurrentBranch returns the checked-out branch name.
func (r *CLIRunner) CurrentBranch(ctx context.Context) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}
	branch, err := RunCommand(ctx, r.workDir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return branch, nil
}

// RemoteExists reports whether the named remote is configured. A missing
// remote is not an error; only unexpected git failures are.
func (r *CLIRunner) RemoteExists(ctx context.Context, remote string) (bool, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return false, err
	}
	if remote == "" {
		return false, fmt.Errorf("remote name %w", gterrors.ErrEmptyValue)
	}

	// get-url exits non-zero when the remote is unknown.
	_, err := RunCommand(ctx, r.workDir, "remote", "get-url", remote)
	if err == nil {
		return true, nil
	}
	lower := strings.ToLower(err.Error())
	if strings.Contains(lower, "no such remote") || strings.Contains(lower, "not found") {
		return false, nil
	}
	return false, err
}

// BranchExistsOnRemote checks for a refs/heads entry on the remote.
func (r *CLIRunner) BranchExistsOnRemote(ctx context.Context, remote, branch string) (bool, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return false, err
	}
	output, err := RunCommand(ctx, r.workDir, "ls-remote", "--heads", remote, branch)
	if err != nil {
		return false, fmt.Errorf("%w: %w", gterrors.ErrBranchCreation, err)
	}
	return output != "", nil
}

// CreateRemoteBranch publishes HEAD to remote/branch with upstream tracking.
func (r *CLIRunner) CreateRemoteBranch(ctx context.Context, remote, branch string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	r.logger.Debug().Str("remote", remote).Str("branch", branch).Msg("creating remote branch")

	refspec := fmt.Sprintf("HEAD:refs/heads/%s", branch)
	if _, err := RunCommand(ctx, r.workDir, "push", "--set-upstream", remote, refspec); err != nil {
		return fmt.Errorf("%w: %w", gterrors.ErrBranchCreation, err)
	}
	return nil
}

// StageAll stages every change in the working tree.
func (r *CLIRunner) StageAll(ctx context.Context) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	if _, err := RunCommand(ctx, r.workDir, "add", "-A"); err != nil {
		return err
	}
	return nil
}

// Commit records the staged changes and returns the short commit hash.
// Returns ErrCommitFailed when git commit rejects the staged state (empty
// index, hook failure).
func (r *CLIRunner) Commit(ctx context.Context, message string) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}
	if message == "" {
		return "", fmt.Errorf("commit message %w", gterrors.ErrEmptyValue)
	}

	if _, err := RunCommand(ctx, r.workDir, "commit", "-m", message, "--cleanup=strip"); err != nil {
		return "", fmt.Errorf("%w: %w", gterrors.ErrCommitFailed, err)
	}

	hash, err := RunCommand(ctx, r.workDir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("%w: %w", gterrors.ErrCommitFailed, err)
	}

	r.logger.Info().Str("commit", hash).Msg("commit recorded")
	return hash, nil
}

// Push pushes the current branch to remote/branch. Failures are classified
// and wrapped with ErrPushFailed; the caller decides whether they are fatal.
func (r *CLIRunner) Push(ctx context.Context, remote, branch string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	r.logger.Debug().Str("remote", remote).Str("branch", branch).Msg("pushing")

	if _, err := RunCommand(ctx, r.workDir, "push", remote, branch); err != nil {
		kind := ClassifyError(err.Error())
		if hint := kind.Hint(); hint != "" {
			return fmt.Errorf("%w (%s): %s: %w", gterrors.ErrPushFailed, kind, hint, err)
		}
		return fmt.Errorf("%w: %w", gterrors.ErrPushFailed, err)
	}
	return nil
}
