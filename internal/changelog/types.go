// Package changelog provides the recorded-change model and its persistence
// for gt. This file defines the Change type and the closed change-type enum.
package changelog

import (
	"fmt"
	"strings"
	"time"

	gterrors "github.com/gittrack/gt/internal/errors"
)

// Type classifies a recorded change for conventional-commit synthesis.
type Type string

// Change type constants. The set is closed: unknown values are rejected at
// record time rather than carried through to message synthesis.
const (
	TypeFeature  Type = "feature"
	TypeFix      Type = "fix"
	TypeDocs     Type = "docs"
	TypeStyle    Type = "style"
	TypeRefactor Type = "refactor"
	TypeTest     Type = "test"
	TypeChore    Type = "chore"
)

// DefaultType is used when the user records a change without a type.
const DefaultType = TypeFeature

// ValidTypes contains all valid change types.
// Use this for validation instead of hardcoding the type strings.
//
//nolint:gochecknoglobals // Read-only list of valid change types
var ValidTypes = []Type{
	TypeFeature,
	TypeFix,
	TypeDocs,
	TypeStyle,
	TypeRefactor,
	TypeTest,
	TypeChore,
}

// IsValid returns true if the type is one of the closed enumerated set.
func (t Type) IsValid() bool {
	for _, v := range ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ParseType normalizes and validates a user-supplied change type.
// An empty string resolves to DefaultType. Unknown values return
// ErrValidation listing the accepted set.
func ParseType(s string) (Type, error) {
	if s == "" {
		return DefaultType, nil
	}
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: unknown change type %q, must be one of %v",
			gterrors.ErrValidation, s, ValidTypes)
	}
	return t, nil
}

// Change is one recorded, not-yet-committed unit of work.
// Once appended to the changelog a Change is immutable until it is consumed
// by a successful commit cycle.
type Change struct {
	// ID uniquely identifies the change (UUID).
	ID string `json:"id"`

	// Timestamp is the creation time in UTC, set at record time.
	Timestamp time.Time `json:"timestamp"`

	// Type is the change classification (feature, fix, docs, ...).
	Type Type `json:"type"`

	// Description is the free-text summary. Never empty.
	Description string `json:"description"`

	// Files holds the working-tree paths touched at record time.
	// Best-effort: empty when gt runs outside a repository.
	Files []string `json:"files,omitempty"`
}

// Validate checks the invariants required before a change is appended.
func (c *Change) Validate() error {
	if strings.TrimSpace(c.Description) == "" {
		return fmt.Errorf("%w: description %w", gterrors.ErrValidation, gterrors.ErrEmptyValue)
	}
	if !c.Type.IsValid() {
		return fmt.Errorf("%w: unknown change type %q", gterrors.ErrValidation, c.Type)
	}
	return nil
}
