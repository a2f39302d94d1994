// Package commit implements the commit orchestration state machine for gt.
// This file defines the states and the legal transitions between them.
package commit

import (
	"fmt"

	gterrors "github.com/gittrack/gt/internal/errors"
)

// State identifies a stage of the commit pipeline.
type State string

// Pipeline states, in progression order.
const (
	// StateStart is the initial state before any validation.
	StateStart State = "start"
	// StateValidated means the repository and changelog checks passed.
	StateValidated State = "validated"
	// StateMessageReady means the changelog was drained and the commit
	// message synthesized.
	StateMessageReady State = "message_ready"
	// StateCommitted means the local commit was recorded.
	StateCommitted State = "committed"
	// StateBranchReady means the remote branch exists (or was created).
	StateBranchReady State = "branch_ready"
	// StatePushed means the push to the remote succeeded.
	StatePushed State = "pushed"
	// StateDone is the terminal success state.
	StateDone State = "done"
	// StateAborted is the terminal failure state.
	StateAborted State = "aborted"
)

// transitions lists the legal successor states for each state.
// Committed may jump straight to Done when the push phase is skipped, and
// BranchReady may as well when the push degrades to a warning.
var transitions = map[State][]State{
	StateStart:        {StateValidated, StateAborted},
	StateValidated:    {StateMessageReady, StateAborted},
	StateMessageReady: {StateCommitted, StateAborted},
	StateCommitted:    {StateBranchReady, StateDone},
	StateBranchReady:  {StatePushed, StateDone},
	StatePushed:       {StateDone},
}

// canTransition reports whether moving from one state to the next is legal.
func canTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// advance moves the orchestrator to the next state, guarding against
// programming errors in the pipeline ordering.
func (o *Orchestrator) advance(to State) error {
	if !canTransition(o.state, to) {
		return fmt.Errorf("%w: %s -> %s", gterrors.ErrInvalidTransition, o.state, to)
	}
	o.logger.Debug().Str("from", string(o.state)).Str("to", string(to)).Msg("state transition")
	o.state = to
	return nil
}

// abort moves to the terminal failure state from anywhere.
func (o *Orchestrator) abort() {
	o.logger.Debug().Str("from", string(o.state)).Msg("aborted")
	o.state = StateAborted
}
