package configs

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerNew(t *testing.T) {
	var buf bytes.Buffer
	logger := Logger{Level: "WARN", Format: "json"}.New(&buf, "dev")

	logger.Info("dropped")
	logger.Warn("kept", "zone", "ZONE_1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "dev", rec["env"])
	assert.Equal(t, "ZONE_1", rec["zone"])
	assert.NotContains(t, rec, "source")
}

func TestLoggerFallsBackToTextAndInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := Logger{Level: "loud", Format: "yaml", AddSource: true}.New(&buf, "")

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "source=")
	assert.NotContains(t, out, "env=")
}
