package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gterrors "github.com/gittrack/gt/internal/errors"
)

// requireGit skips the test when the git binary is not installed.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

// setupRepo creates an initialized git repository with identity configured.
func setupRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	ctx := context.Background()

	for _, args := range [][]string{
		{"init", "-b", "main"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "Test User"},
	} {
		_, err := RunCommand(ctx, dir, args...)
		require.NoError(t, err)
	}
	return dir
}

// setupRepoWithRemote creates a repository wired to a local bare remote.
func setupRepoWithRemote(t *testing.T) (string, string) {
	t.Helper()
	repo := setupRepo(t)
	remote := t.TempDir()
	ctx := context.Background()

	_, err := RunCommand(ctx, remote, "init", "--bare")
	require.NoError(t, err)
	_, err = RunCommand(ctx, repo, "remote", "add", "origin", remote)
	require.NoError(t, err)
	return repo, remote
}

// writeFile creates a file inside the repository.
func writeFile(t *testing.T, repo, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(repo, name), []byte(content), 0o600))
}

func TestCLIRunner_IsRepository(t *testing.T) {
	requireGit(t)
	ctx := context.Background()

	repo := setupRepo(t)
	assert.True(t, NewCLIRunner(repo).IsRepository(ctx))
	assert.False(t, NewCLIRunner(t.TempDir()).IsRepository(ctx))
}

func TestCLIRunner_StatusAndStageAll(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	repo := setupRepo(t)
	runner := NewCLIRunner(repo)

	writeFile(t, repo, "main.go", "package main\n")

	status, err := runner.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.IsClean())
	assert.Equal(t, []string{"main.go"}, status.Untracked)

	require.NoError(t, runner.StageAll(ctx))

	status, err = runner.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, status.Staged)
}

func TestCLIRunner_Commit(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	repo := setupRepo(t)
	runner := NewCLIRunner(repo)

	writeFile(t, repo, "main.go", "package main\n")
	require.NoError(t, runner.StageAll(ctx))

	hash, err := runner.Commit(ctx, "feat: initial commit")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	status, err := runner.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.IsClean())

	branch, err := runner.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestCLIRunner_CommitNothingStaged(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	repo := setupRepo(t)
	runner := NewCLIRunner(repo)

	_, err := runner.Commit(ctx, "feat: empty")
	require.Error(t, err)
	assert.ErrorIs(t, err, gterrors.ErrCommitFailed)
}

func TestCLIRunner_RemoteExists(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	repo, _ := setupRepoWithRemote(t)
	runner := NewCLIRunner(repo)

	exists, err := runner.RemoteExists(ctx, "origin")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = runner.RemoteExists(ctx, "upstream")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCLIRunner_BranchLifecycle(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	repo, _ := setupRepoWithRemote(t)
	runner := NewCLIRunner(repo)

	writeFile(t, repo, "main.go", "package main\n")
	require.NoError(t, runner.StageAll(ctx))
	_, err := runner.Commit(ctx, "feat: initial commit")
	require.NoError(t, err)

	// The branch does not exist on the remote until published.
	exists, err := runner.BranchExistsOnRemote(ctx, "origin", "main")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, runner.CreateRemoteBranch(ctx, "origin", "main"))

	exists, err = runner.BranchExistsOnRemote(ctx, "origin", "main")
	require.NoError(t, err)
	assert.True(t, exists)

	// A follow-up push of the same state is a no-op, not an error.
	require.NoError(t, runner.Push(ctx, "origin", "main"))
}

func TestCLIRunner_PushWithoutRemote(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	repo := setupRepo(t)
	runner := NewCLIRunner(repo)

	writeFile(t, repo, "main.go", "package main\n")
	require.NoError(t, runner.StageAll(ctx))
	_, err := runner.Commit(ctx, "feat: initial commit")
	require.NoError(t, err)

	err = runner.Push(ctx, "origin", "main")
	require.Error(t, err)
	assert.ErrorIs(t, err, gterrors.ErrPushFailed)
}

func TestRunCommand_FoldsStderr(t *testing.T) {
	requireGit(t)
	ctx := context.Background()

	_, err := RunCommand(ctx, t.TempDir(), "rev-parse", "--git-dir")
	require.Error(t, err)
	assert.ErrorIs(t, err, gterrors.ErrGitOperation)
	assert.Contains(t, err.Error(), "git rev-parse failed")
}
