package changelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gterrors "github.com/gittrack/gt/internal/errors"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Type
		wantErr  bool
	}{
		{"empty defaults to feature", "", TypeFeature, false},
		{"feature", "feature", TypeFeature, false},
		{"fix", "fix", TypeFix, false},
		{"docs", "docs", TypeDocs, false},
		{"style", "style", TypeStyle, false},
		{"refactor", "refactor", TypeRefactor, false},
		{"test", "test", TypeTest, false},
		{"chore", "chore", TypeChore, false},
		{"uppercase normalized", "FIX", TypeFix, false},
		{"surrounding whitespace", "  docs  ", TypeDocs, false},
		{"unknown type rejected", "feat", "", true},
		{"garbage rejected", "banana", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, gterrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestType_IsValid(t *testing.T) {
	for _, v := range ValidTypes {
		assert.True(t, v.IsValid(), "expected %q to be valid", v)
	}
	assert.False(t, Type("feat").IsValid())
	assert.False(t, Type("").IsValid())
}

func TestChange_Validate(t *testing.T) {
	tests := []struct {
		name    string
		change  Change
		wantErr bool
	}{
		{
			name:   "valid change",
			change: Change{Type: TypeFix, Description: "handle empty password"},
		},
		{
			name:    "empty description",
			change:  Change{Type: TypeFix, Description: ""},
			wantErr: true,
		},
		{
			name:    "whitespace description",
			change:  Change{Type: TypeFix, Description: "   "},
			wantErr: true,
		},
		{
			name:    "unknown type",
			change:  Change{Type: "feat", Description: "something"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.change.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, gterrors.ErrValidation)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestChange_Age(t *testing.T) {
	recorded := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := Change{Timestamp: recorded}
	assert.Equal(t, 90*time.Minute, c.Age(recorded.Add(90*time.Minute)))
}
