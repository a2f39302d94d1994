// Package changelog provides the recorded-change model and its persistence
// for gt. This file implements the JSON-backed store with atomic writes and
// the drain recovery snapshot.
package changelog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/gittrack/gt/internal/clock"
	"github.com/gittrack/gt/internal/constants"
	"github.com/gittrack/gt/internal/ctxutil"
	gterrors "github.com/gittrack/gt/internal/errors"
)

// Directory and file permission constants.
const (
	dirPerm  = 0o750 // Secure directory permissions
	filePerm = 0o600 // Secure file permissions
)

// Store defines the interface for changelog persistence operations.
type Store interface {
	// Append validates the change, assigns its identity and timestamp, and
	// adds it to the end of the persisted changelog.
	Append(ctx context.Context, change *Change) error

	// All returns the full ordered sequence, oldest first. A missing
	// changelog file yields an empty slice, not an error.
	All(ctx context.Context) ([]Change, error)

	// Drain atomically returns and clears all entries. Before the main file
	// is truncated the full snapshot is written to the recovery slot, so a
	// crash between drain and commit leaves a recoverable trace.
	// Returns ErrEmptyChangeLog when nothing is recorded.
	Drain(ctx context.Context) ([]Change, error)

	// ClearRecovery removes the recovery snapshot. Called only after the
	// commit that consumed the drained changes has succeeded.
	ClearRecovery(ctx context.Context) error

	// OrphanedRecovery returns the changes in a leftover recovery snapshot,
	// or nil if the slot is empty. The slot is never cleared implicitly.
	OrphanedRecovery(ctx context.Context) ([]Change, error)
}

// FileStore implements Store using JSON files under the project's .gt
// directory.
type FileStore struct {
	dir   string
	clock clock.Clock
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// WithClock sets the clock used for change timestamps. Intended for tests.
func WithClock(c clock.Clock) FileStoreOption {
	return func(s *FileStore) {
		s.clock = c
	}
}

// NewFileStore creates a FileStore rooted at the given project directory.
// If projectRoot is empty, the current working directory is used.
func NewFileStore(projectRoot string, opts ...FileStoreOption) (*FileStore, error) {
	if projectRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		projectRoot = cwd
	}

	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	s := &FileStore{
		dir:   filepath.Join(absRoot, constants.StateDir),
		clock: clock.RealClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the absolute path to the state directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Append validates the change and adds it to the end of the changelog.
func (s *FileStore) Append(ctx context.Context, change *Change) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	if change == nil {
		return fmt.Errorf("failed to append change: change %w", gterrors.ErrEmptyValue)
	}

	// Assign defaults before validation
	if change.Type == "" {
		change.Type = DefaultType
	}
	if err := change.Validate(); err != nil {
		return err
	}
	if change.ID == "" {
		change.ID = uuid.NewString()
	}
	if change.Timestamp.IsZero() {
		change.Timestamp = s.clock.Now().UTC()
	}

	changes, err := s.load(s.changesPath())
	if err != nil {
		return err
	}

	changes = append(changes, *change)
	if err := s.save(s.changesPath(), changes); err != nil {
		return fmt.Errorf("failed to append change: %w", err)
	}

	return nil
}

// All returns the full ordered sequence of recorded changes, oldest first.
func (s *FileStore) All(ctx context.Context) ([]Change, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}
	return s.load(s.changesPath())
}

// Drain atomically returns and clears all entries.
// The snapshot is written to the recovery slot before the main file is
// truncated; ClearRecovery removes it once the consuming commit succeeds.
func (s *FileStore) Drain(ctx context.Context) ([]Change, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	changes, err := s.load(s.changesPath())
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return nil, gterrors.ErrEmptyChangeLog
	}

	// Recovery snapshot first: a crash after this point leaves a trace.
	if err := s.save(s.RecoveryPath(), changes); err != nil {
		return nil, fmt.Errorf("failed to write recovery snapshot: %w", err)
	}

	if err := s.save(s.changesPath(), []Change{}); err != nil {
		return nil, fmt.Errorf("failed to clear changelog: %w", err)
	}

	return changes, nil
}

// ClearRecovery removes the recovery snapshot after a successful commit.
func (s *FileStore) ClearRecovery(ctx context.Context) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	if err := os.Remove(s.RecoveryPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear recovery snapshot: %w", err)
	}
	return nil
}

// OrphanedRecovery returns changes from a leftover recovery snapshot, or nil.
func (s *FileStore) OrphanedRecovery(ctx context.Context) ([]Change, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}
	changes, err := s.load(s.RecoveryPath())
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return nil, nil
	}
	return changes, nil
}

// changesPath returns the path to the main changelog file.
func (s *FileStore) changesPath() string {
	return filepath.Join(s.dir, constants.ChangesFileName)
}

// RecoveryPath returns the path to the recovery snapshot file.
func (s *FileStore) RecoveryPath() string {
	return filepath.Join(s.dir, constants.RecoveryFileName)
}

// load reads and parses a changelog JSON file.
// A missing file yields an empty slice.
func (s *FileStore) load(path string) ([]Change, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is constructed from trusted base
	if err != nil {
		if os.IsNotExist(err) {
			return []Change{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var changes []Change
	if err := json.Unmarshal(data, &changes); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", gterrors.ErrChangeLogCorrupt, filepath.Base(path), err)
	}
	return changes, nil
}

// save writes the change sequence to path atomically.
func (s *FileStore) save(path string, changes []Change) error {
	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(changes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal changes: %w", err)
	}

	return atomicWrite(path, data)
}

// atomicWrite writes data to a file atomically using write-then-rename.
// The temp file is synced before the rename so a crash never leaves a
// partially written changelog behind.
func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

// Age returns how long ago the change was recorded, relative to now.
func (c *Change) Age(now time.Time) time.Duration {
	return now.Sub(c.Timestamp)
}
