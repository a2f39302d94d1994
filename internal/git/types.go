// Package git provides the repository gateway for gt.
// This file defines working-tree status types and parsing.
package git

import "strings"

// Status represents the current state of a git working tree.
type Status struct {
	Staged    []string // Paths staged for commit
	Unstaged  []string // Paths modified but not staged
	Untracked []string // Untracked paths
	Branch    string   // Current branch name
}

// IsClean returns true if the working tree has no changes.
func (s *Status) IsClean() bool {
	return len(s.Staged) == 0 && len(s.Unstaged) == 0 && len(s.Untracked) == 0
}

// ModifiedFiles returns every path the working tree touches, in status order
// with duplicates removed. Used for best-effort affected-files capture.
func (s *Status) ModifiedFiles() []string {
	seen := make(map[string]struct{})
	var files []string
	for _, group := range [][]string{s.Staged, s.Unstaged, s.Untracked} {
		for _, p := range group {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}
	return files
}

// parseStatus parses git status --porcelain --branch output.
func parseStatus(output string) *Status {
	status := &Status{
		Staged:    []string{},
		Unstaged:  []string{},
		Untracked: []string{},
	}

	for _, line := range strings.Split(output, "\n") {
		if len(line) < 2 {
			continue
		}

		// Branch line: ## branch...origin/branch [ahead N]
		if strings.HasPrefix(line, "## ") {
			status.Branch = parseBranchLine(line)
			continue
		}
		if len(line) < 4 {
			continue
		}

		indexStatus := line[0]
		workTreeStatus := line[1]
		path := strings.TrimSpace(line[3:])

		// Renames: XY ORIG -> DEST; record the destination path.
		if idx := strings.Index(path, " -> "); idx != -1 {
			path = path[idx+4:]
		}

		if indexStatus == '?' && workTreeStatus == '?' {
			status.Untracked = append(status.Untracked, path)
			continue
		}
		if indexStatus != ' ' && indexStatus != '?' {
			status.Staged = append(status.Staged, path)
		}
		if workTreeStatus != ' ' && workTreeStatus != '?' {
			status.Unstaged = append(status.Unstaged, path)
		}
	}

	return status
}

// parseBranchLine extracts the local branch name from the ## status line.
func parseBranchLine(line string) string {
	line = strings.TrimPrefix(line, "## ")
	if idx := strings.Index(line, "..."); idx != -1 {
		return line[:idx]
	}
	// "## No commits yet on main" on fresh repositories
	if strings.HasPrefix(line, "No commits yet on ") {
		return strings.TrimPrefix(line, "No commits yet on ")
	}
	return line
}
