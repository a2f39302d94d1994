// Package constants provides centralized constant values used throughout gt.
// This package is the single source of truth for all shared constants and MUST
// NOT import any other internal packages.
package constants

// File and directory names used by gt for state persistence.
// State lives under a hidden .gt directory in the repository root so that
// recorded changes travel with the project they describe.
const (
	// StateDir is the hidden directory name where gt stores project state.
	StateDir = ".gt"

	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "config.json"

	// ChangesFileName is the name of the JSON file holding recorded changes.
	ChangesFileName = "changes.json"

	// RecoveryFileName is the name of the recovery snapshot written by a
	// drain before the commit is attempted. An orphaned recovery file on
	// startup means a previous run crashed between drain and commit.
	RecoveryFileName = "changes.recovery.json"
)

// Home directory layout (logs and other per-user data).
const (
	// HomeDir is the hidden directory name in the user's home directory.
	HomeDir = ".gt"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// CLILogFileName is the name of the rotating CLI log file.
	// This file is located in ~/.gt/logs/gt.log.
	CLILogFileName = "gt.log"
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the maximum number of rotated files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age in days of rotated files.
	LogMaxAgeDays = 30

	// LogCompress enables gzip compression of rotated files.
	LogCompress = true
)

// Git defaults.
const (
	// DefaultBranch is the branch targeted when none is configured or given.
	DefaultBranch = "main"

	// DefaultRemote is the remote targeted by pushes.
	DefaultRemote = "origin"
)
