// Package commit implements the commit orchestration state machine for gt.
//
// The orchestrator drives one commit invocation end to end: validate the
// repository and changelog, drain the pending changes, synthesize the commit
// message, record the local commit, and optionally publish it. Local commit
// failures are fatal; everything in the push phase degrades to warnings
// because the commit already stands.
package commit

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gittrack/gt/internal/changelog"
	"github.com/gittrack/gt/internal/config"
	"github.com/gittrack/gt/internal/ctxutil"
	gterrors "github.com/gittrack/gt/internal/errors"
	"github.com/gittrack/gt/internal/git"
	"github.com/gittrack/gt/internal/message"
)

// Options configures a single orchestrator run.
type Options struct {
	// Branch overrides the configured default branch when non-empty.
	Branch string

	// NoPush disables the push phase regardless of the auto_push setting.
	NoPush bool
}

// Result describes the outcome of a successful run.
type Result struct {
	// State is the final pipeline state, StateDone on success.
	State State `json:"state"`

	// CommitID is the short hash of the recorded commit.
	CommitID string `json:"commit_id"`

	// Message is the synthesized commit message.
	Message string `json:"message"`

	// Branch is the resolved target branch.
	Branch string `json:"branch"`

	// Pushed reports whether the commit reached the remote.
	Pushed bool `json:"pushed"`

	// ChangeCount is the number of changes collapsed into the commit.
	ChangeCount int `json:"change_count"`

	// Warnings lists non-fatal problems from the push phase.
	Warnings []string `json:"warnings,omitempty"`
}

// Orchestrator wires the changelog store, configuration, and repository
// gateway into the commit pipeline.
type Orchestrator struct {
	store  changelog.Store
	cfg    *config.Config
	runner git.Runner
	logger zerolog.Logger

	state State
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used for pipeline tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// New creates an Orchestrator.
func New(store changelog.Store, cfg *config.Config, runner git.Runner, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:  store,
		cfg:    cfg,
		runner: runner,
		logger: zerolog.Nop(),
		state:  StateStart,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current pipeline state.
func (o *Orchestrator) State() State {
	return o.state
}

// Run executes the commit pipeline once. The returned error is fatal and maps
// to exit code 1; push-phase problems are returned in Result.Warnings with a
// nil error. An Orchestrator is single-use: create a new one per invocation.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}
	if o.state != StateStart {
		return nil, fmt.Errorf("%w: orchestrator already ran", gterrors.ErrInvalidTransition)
	}

	// Step 1: repository check, before anything is mutated.
	if !o.runner.IsRepository(ctx) {
		o.abort()
		return nil, gterrors.ErrNotGitRepo
	}

	// Step 2: refuse to run against an empty changelog.
	pending, err := o.store.All(ctx)
	if err != nil {
		o.abort()
		return nil, err
	}
	if len(pending) == 0 {
		o.abort()
		return nil, gterrors.ErrEmptyChangeLog
	}
	if err := o.advance(StateValidated); err != nil {
		return nil, err
	}

	// Step 3: drain and synthesize. The recovery snapshot written by Drain
	// survives until the commit succeeds.
	changes, err := o.store.Drain(ctx)
	if err != nil {
		o.abort()
		return nil, err
	}

	msg, err := message.Synthesize(changes, o.cfg.TemplateFor)
	if err != nil {
		o.abort()
		return nil, err
	}

	branch := o.cfg.ResolvedBranch(opts.Branch)
	if err := o.advance(StateMessageReady); err != nil {
		return nil, err
	}

	result := &Result{
		Message:     msg,
		Branch:      branch,
		ChangeCount: len(changes),
	}

	// Step 4: stage and commit. Drained changes are reported, not restored;
	// the recovery slot still holds them for manual inspection.
	if err := o.runner.StageAll(ctx); err != nil {
		o.abort()
		return nil, fmt.Errorf("%w: %w", gterrors.ErrCommitFailed, err)
	}

	commitID, err := o.runner.Commit(ctx, msg)
	if err != nil {
		o.abort()
		return nil, err
	}
	result.CommitID = commitID
	if err := o.advance(StateCommitted); err != nil {
		return nil, err
	}

	// The commit stands; the drained changes are consumed for good.
	if err := o.store.ClearRecovery(ctx); err != nil {
		o.logger.Warn().Err(err).Msg("failed to clear recovery snapshot")
		result.Warnings = append(result.Warnings, "recovery snapshot could not be removed: "+err.Error())
	}

	// Steps 5-6: push phase. Nothing past this point can fail the run.
	if o.cfg.ShouldPush(opts.NoPush) {
		o.pushPhase(ctx, result)
	}

	if err := o.advance(StateDone); err != nil {
		return nil, err
	}
	result.State = o.state

	o.logger.Info().
		Str("commit", result.CommitID).
		Str("branch", result.Branch).
		Bool("pushed", result.Pushed).
		Int("changes", result.ChangeCount).
		Msg("commit pipeline finished")

	return result, nil
}

// pushPhase publishes the commit to the configured remote. Every failure
// becomes a warning on the result; the local commit is never rolled back.
func (o *Orchestrator) pushPhase(ctx context.Context, result *Result) {
	remote := o.cfg.ResolvedRemote()

	exists, err := o.runner.RemoteExists(ctx, remote)
	if err != nil {
		o.warn(result, fmt.Errorf("%w: %w", gterrors.ErrRemoteMissing, err))
		return
	}
	if !exists {
		o.warn(result, fmt.Errorf("%w: %q, push skipped", gterrors.ErrRemoteMissing, remote))
		return
	}

	branchExists, err := o.runner.BranchExistsOnRemote(ctx, remote, result.Branch)
	if err != nil {
		o.warn(result, err)
		return
	}

	if !branchExists {
		if err := o.runner.CreateRemoteBranch(ctx, remote, result.Branch); err != nil {
			o.warn(result, err)
			return
		}
	}
	if err := o.advance(StateBranchReady); err != nil {
		o.warn(result, err)
		return
	}

	if err := o.runner.Push(ctx, remote, result.Branch); err != nil {
		o.warn(result, err)
		return
	}
	if err := o.advance(StatePushed); err != nil {
		o.warn(result, err)
		return
	}
	result.Pushed = true
}

// warn records a push-phase failure as a warning on the result.
func (o *Orchestrator) warn(result *Result, err error) {
	o.logger.Warn().Err(err).Msg("push phase degraded")
	result.Warnings = append(result.Warnings, warningText(err))
}

// warningText produces the user-facing warning line for a push-phase error.
func warningText(err error) string {
	switch {
	case errors.Is(err, gterrors.ErrRemoteMissing):
		return err.Error()
	case errors.Is(err, gterrors.ErrBranchCreation):
		return "commit recorded locally, but the remote branch could not be created: " + err.Error()
	case errors.Is(err, gterrors.ErrPushFailed):
		return "commit recorded locally, but the push failed: " + err.Error()
	default:
		return "commit recorded locally, push skipped: " + err.Error()
	}
}
