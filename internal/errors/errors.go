// Package errors provides centralized error handling for gt.
//
// This package defines sentinel errors used for programmatic error
// categorization throughout the application. All error types can be checked
// using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrValidation indicates bad user input (empty description, unknown
	// change type). The command aborts but the process is otherwise healthy.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyChangeLog indicates a commit was requested with no recorded
	// changes. Fatal to the commit command.
	ErrEmptyChangeLog = errors.New("no changes recorded")

	// ErrNotGitRepo indicates the current directory is not inside a git
	// repository. Fatal to the commit command before any mutation.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrConfigCorrupt indicates the config file exists but could not be
	// parsed. The user must fix or delete the file.
	ErrConfigCorrupt = errors.New("config file corrupt")

	// ErrChangeLogCorrupt indicates the persisted changelog file could not
	// be parsed.
	ErrChangeLogCorrupt = errors.New("changelog file corrupt")

	// ErrCommitFailed indicates the underlying git commit failed. Drained
	// changes are reported, not restored.
	ErrCommitFailed = errors.New("commit failed")

	// ErrRemoteMissing indicates the configured remote is not set up.
	// Non-fatal: the commit stands, the push is skipped.
	ErrRemoteMissing = errors.New("remote not configured")

	// ErrBranchCreation indicates the remote branch could not be created.
	// Non-fatal: the commit stands, the push is skipped.
	ErrBranchCreation = errors.New("remote branch creation failed")

	// ErrPushFailed indicates that git push failed (network, auth,
	// non-fast-forward). Non-fatal: the commit is never rolled back.
	ErrPushFailed = errors.New("push failed")

	// ErrGitOperation indicates that a git command failed during execution.
	ErrGitOperation = errors.New("git operation failed")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrInvalidTransition indicates an attempt to make an invalid state
	// transition in the commit orchestrator. This is a programming error.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrUserInputRequired indicates user input is required but not provided.
	// Commands should exit with code 2 when this error is returned.
	ErrUserInputRequired = errors.New("user input required")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
