package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrValidation,
		ErrEmptyChangeLog,
		ErrNotGitRepo,
		ErrConfigCorrupt,
		ErrChangeLogCorrupt,
		ErrCommitFailed,
		ErrRemoteMissing,
		ErrBranchCreation,
		ErrPushFailed,
		ErrGitOperation,
		ErrEmptyValue,
		ErrInvalidTransition,
		ErrInvalidOutputFormat,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a, b)
		}
	}
}

func TestWrapPreservesChain(t *testing.T) {
	wrapped := Wrap(ErrCommitFailed, "during pipeline")
	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, ErrCommitFailed)
	assert.Equal(t, "during pipeline: commit failed", wrapped.Error())

	assert.NoError(t, Wrap(nil, "ignored"))
}

func TestWrapfPreservesChain(t *testing.T) {
	wrapped := Wrapf(ErrPushFailed, "branch %q", "main")
	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, ErrPushFailed)
	assert.Equal(t, `branch "main": push failed`, wrapped.Error())

	assert.NoError(t, Wrapf(nil, "ignored %d", 1))
}

func TestExitCode2Error(t *testing.T) {
	inner := stderrors.New("bad flag")
	err := NewExitCode2Error(inner)

	assert.Equal(t, "bad flag", err.Error())
	assert.True(t, IsExitCode2Error(err))
	assert.ErrorIs(t, err, inner)

	// Survives further wrapping.
	outer := fmt.Errorf("context: %w", err)
	assert.True(t, IsExitCode2Error(outer))

	assert.False(t, IsExitCode2Error(inner))
	assert.False(t, IsExitCode2Error(nil))
}
