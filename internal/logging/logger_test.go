package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("warn", "text", &buf)
	l.Info("hidden")
	l.Warn("shown", "room", "maze")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "room=maze")
}

func TestJSONWithRunID(t *testing.T) {
	var buf bytes.Buffer
	l, id := WithRunID(NewLogger("info", "json", &buf))
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	l.Info("verified", "passed", 9)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, id, rec["run_id"])
	assert.Equal(t, "verified", rec["msg"])
	assert.EqualValues(t, 9, rec["passed"])
}
