package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gittrack/gt/internal/changelog"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "main", cfg.DefaultBranch)
	assert.Equal(t, "origin", cfg.Remote)
	assert.True(t, cfg.AutoPush)
	assert.Len(t, cfg.CommitTemplates, len(changelog.ValidTypes))
	assert.Equal(t, "feat: {message}", cfg.CommitTemplates["feature"])
	assert.Equal(t, "fix: {message}", cfg.CommitTemplates["fix"])
}

func TestConfig_TemplateFor(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *Config
		typ      changelog.Type
		expected string
	}{
		{
			name:     "configured template",
			cfg:      Default(),
			typ:      changelog.TypeFix,
			expected: "fix: {message}",
		},
		{
			name:     "custom template",
			cfg:      &Config{CommitTemplates: map[string]string{"fix": "bugfix({message})"}},
			typ:      changelog.TypeFix,
			expected: "bugfix({message})",
		},
		{
			name:     "missing template falls back",
			cfg:      &Config{CommitTemplates: map[string]string{}},
			typ:      changelog.TypeDocs,
			expected: "docs: {message}",
		},
		{
			name:     "empty template falls back",
			cfg:      &Config{CommitTemplates: map[string]string{"chore": ""}},
			typ:      changelog.TypeChore,
			expected: "chore: {message}",
		},
		{
			name:     "nil map falls back",
			cfg:      &Config{},
			typ:      changelog.TypeTest,
			expected: "test: {message}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.TemplateFor(tt.typ))
		})
	}
}

func TestConfig_ResolvedBranch(t *testing.T) {
	cfg := &Config{DefaultBranch: "develop"}

	assert.Equal(t, "feature/login", cfg.ResolvedBranch("feature/login"))
	assert.Equal(t, "develop", cfg.ResolvedBranch(""))

	empty := &Config{}
	assert.Equal(t, "main", empty.ResolvedBranch(""))
}

func TestConfig_ResolvedRemote(t *testing.T) {
	assert.Equal(t, "upstream", (&Config{Remote: "upstream"}).ResolvedRemote())
	assert.Equal(t, "origin", (&Config{}).ResolvedRemote())
}

func TestConfig_ShouldPush(t *testing.T) {
	tests := []struct {
		name     string
		autoPush bool
		noPush   bool
		expected bool
	}{
		{"auto push enabled", true, false, true},
		{"no-push flag wins", true, true, false},
		{"auto push disabled", false, false, false},
		{"both off", false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{AutoPush: tt.autoPush}
			assert.Equal(t, tt.expected, cfg.ShouldPush(tt.noPush))
		})
	}
}
