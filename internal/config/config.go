// Package config provides configuration management for gt.
//
// Configuration sources are loaded in the following order (highest precedence
// first):
//  1. Environment variables (GT_* prefix)
//  2. Project config (.gt/config.json)
//  3. Built-in defaults
//
// The project config file is auto-created with defaults on first run.
//
// IMPORTANT: This package may import internal/changelog, internal/constants
// and internal/errors, but MUST NOT import other internal packages.
package config

import (
	"fmt"

	"github.com/gittrack/gt/internal/changelog"
	"github.com/gittrack/gt/internal/constants"
)

// Placeholder is the literal token in a commit template that is replaced by
// the change description.
const Placeholder = "{message}"

// Config is the root configuration structure for gt.
type Config struct {
	// DefaultBranch is the branch targeted when no --branch flag is given.
	// Default: "main"
	DefaultBranch string `json:"default_branch" mapstructure:"default_branch"`

	// Remote is the name of the remote repository pushes target.
	// Default: "origin"
	Remote string `json:"remote" mapstructure:"remote"`

	// CommitTemplates maps each change type to a commit-message template
	// containing the {message} placeholder.
	CommitTemplates map[string]string `json:"commit_templates" mapstructure:"commit_templates"`

	// AutoPush enables pushing after a successful commit unless the caller
	// passes --no-push.
	// Default: true
	AutoPush bool `json:"auto_push" mapstructure:"auto_push"`
}

// Default returns the built-in configuration, matching what is persisted on
// first run.
func Default() *Config {
	return &Config{
		DefaultBranch:   constants.DefaultBranch,
		Remote:          constants.DefaultRemote,
		CommitTemplates: defaultTemplates(),
		AutoPush:        true,
	}
}

// defaultTemplates returns the conventional-commit template for every
// enumerated change type.
func defaultTemplates() map[string]string {
	return map[string]string{
		string(changelog.TypeFeature):  "feat: " + Placeholder,
		string(changelog.TypeFix):      "fix: " + Placeholder,
		string(changelog.TypeDocs):     "docs: " + Placeholder,
		string(changelog.TypeStyle):    "style: " + Placeholder,
		string(changelog.TypeRefactor): "refactor: " + Placeholder,
		string(changelog.TypeTest):     "test: " + Placeholder,
		string(changelog.TypeChore):    "chore: " + Placeholder,
	}
}

// TemplateFor returns the configured template for a change type, or the
// generic fallback "<type>: {message}" when the type has no template.
// It never fails: a missing template degrades, it does not crash.
func (c *Config) TemplateFor(t changelog.Type) string {
	if tpl, ok := c.CommitTemplates[string(t)]; ok && tpl != "" {
		return tpl
	}
	return fmt.Sprintf("%s: %s", t, Placeholder)
}

// ResolvedBranch returns the explicit branch if given, else DefaultBranch.
func (c *Config) ResolvedBranch(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if c.DefaultBranch != "" {
		return c.DefaultBranch
	}
	return constants.DefaultBranch
}

// ResolvedRemote returns the configured remote, defaulting to "origin".
func (c *Config) ResolvedRemote() string {
	if c.Remote != "" {
		return c.Remote
	}
	return constants.DefaultRemote
}

// ShouldPush reports whether a push should follow the commit.
func (c *Config) ShouldPush(noPushFlag bool) bool {
	return c.AutoPush && !noPushFlag
}
