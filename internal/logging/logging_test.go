package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(Config{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Info("fields removed", String("output", "2023/data.json"), Int("removed", 3))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "fields removed", entry["message"])
	assert.Equal(t, "2023/data.json", entry["output"])
	assert.Equal(t, float64(3), entry["removed"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(DefaultConfig(), &buf)
	require.NoError(t, err)

	logger.Warn("could not place line", String("line", "foo 999999"))

	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "could not place line")
	assert.Contains(t, buf.String(), "foo 999999")
}

func TestNewWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(Config{Level: "warn", Format: "console"}, &buf)
	require.NoError(t, err)

	logger.Debug("debug entry")
	logger.Info("info entry")
	logger.Error("error entry")

	assert.NotContains(t, buf.String(), "debug entry")
	assert.NotContains(t, buf.String(), "info entry")
	assert.Contains(t, buf.String(), "error entry")
}

func TestNewWithWriter_BadLevel(t *testing.T) {
	_, err := NewWithWriter(Config{Level: "verbose", Format: "console"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestWith_AddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).With(String("command", "strip"))

	logger.Debug("stripped document", Int("objects", 2))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "stripped document", entry.Message)
	assert.Equal(t, "strip", entry.ContextMap()["command"])
	assert.Equal(t, int64(2), entry.ContextMap()["objects"])
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.NoError(t, Config{Level: "debug", Format: "json"}.Validate())
	assert.Error(t, Config{Level: "info", Format: "text"}.Validate())
	assert.Error(t, Config{Level: "chatty", Format: "json"}.Validate())
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	logger.Info("discarded")
	assert.NoError(t, logger.Sync())
}
