package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := FromZap(NewZap(&buf, Config{Level: "info"}), "[Syncer]").With("run_id", "r-1")

	l.Log("submitted %d batches", 3)
	require.NoError(t, l.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "[Syncer] submitted 3 batches", entry["msg"])
	assert.Equal(t, "r-1", entry["run_id"])
}

func TestBaseLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := FromZap(NewZap(&buf, Config{Level: "warn"}), "")

	l.Log("hidden")
	l.Warn("shown %s", "warning")
	l.Error("shown %s", "error")
	require.NoError(t, l.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestWithPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := FromZap(NewZap(&buf, Config{}), "[App]").WithPrefix("[Stocks]")

	l.Log("done")
	require.NoError(t, l.Sync())
	assert.Contains(t, buf.String(), "[App] [Stocks] done")
}
