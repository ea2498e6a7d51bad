package internal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevelsAndComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogLevelInfo).With("cleaner")

	logger.Debug("hidden %d", 1)
	logger.Info("kept %d rows", 4)
	logger.Warn("dropped %d rows", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] [cleaner] kept 4 rows")
	assert.Contains(t, out, "[WARN] [cleaner] dropped 2 rows")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, LogLevelError, ParseLogLevel("ERROR"))
	assert.Equal(t, LogLevelTrace, ParseLogLevel(" TRACE "))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("nonsense"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel(""))
}
