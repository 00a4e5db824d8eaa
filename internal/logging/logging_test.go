package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesclean/internal/config"
)

func TestNew_SplitsLevelsAcrossWriters(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	log, err := New(config.Log{Level: "debug", Format: "json"}, &stdout, &stderr)
	require.NoError(t, err)

	log.Debug().Msg("d")
	log.Info().Msg("Missing values handled.")
	log.Warn().Msg("w")
	log.Error().Msg("boom")

	outLines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, outLines, 3)
	var ev map[string]any
	require.NoError(t, json.Unmarshal([]byte(outLines[1]), &ev))
	assert.Equal(t, "info", ev["level"])
	assert.Equal(t, "Missing values handled.", ev["message"])

	assert.NotContains(t, stdout.String(), "boom")
	assert.Contains(t, stderr.String(), `"message":"boom"`)
	assert.NotContains(t, stderr.String(), "Missing values")
}

func TestNew_LevelFilters(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	log, err := New(config.Log{Level: "warn", Format: "json"}, &stdout, &stderr)
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "shown")
}

func TestNew_ConsoleFormatIsPlainText(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	log, err := New(config.Log{}, &stdout, &stderr)
	require.NoError(t, err)

	log.Info().Msg("Column names standardized.")
	log.Debug().Msg("not at info")

	out := stdout.String()
	assert.Contains(t, out, "Column names standardized.")
	assert.Contains(t, out, "INF")
	assert.NotContains(t, out, "not at info")
	assert.NotContains(t, out, "\x1b[", "colors must be off for non-terminal writers")
}

func TestNew_InvalidSettings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, err := New(config.Log{Level: "loud"}, &buf, &buf)
	assert.Error(t, err)
	_, err = New(config.Log{Format: "xml"}, &buf, &buf)
	assert.Error(t, err)
}
