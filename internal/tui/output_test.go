package tui

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutput(t *testing.T) {
	var buf bytes.Buffer

	assert.IsType(t, &JSONOutput{}, NewOutput(&buf, "json"))
	assert.IsType(t, &TTYOutput{}, NewOutput(&buf, "text"))
	assert.IsType(t, &TTYOutput{}, NewOutput(&buf, ""))
}

func TestTTYOutput_Messages(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)

	out.Success("committed")
	out.Warning("push skipped")
	out.Error(errors.New("boom"))
	out.Info("3 pending")
	out.Dim("details")

	s := buf.String()
	assert.Contains(t, s, "✓ committed")
	assert.Contains(t, s, "⚠ push skipped")
	assert.Contains(t, s, "✗ boom")
	assert.Contains(t, s, "3 pending")
	assert.Contains(t, s, "details")
}

func TestJSONOutput_SuppressesHumanMessages(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)

	out.Success("committed")
	out.Warning("push skipped")
	out.Info("3 pending")
	out.Dim("details")

	assert.Empty(t, buf.String())
}

func TestJSONOutput_Error(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)

	out.Error(errors.New("boom"))

	var payload map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Equal(t, "boom", payload["error"])
}

func TestOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)

	require.NoError(t, out.JSON(map[string]int{"count": 2}))

	var payload map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Equal(t, 2, payload["count"])
}
