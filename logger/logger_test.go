package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_StructuredProperties(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogger(buf, InfoLevel)

	log.Info("Added target {Target} to {Project}", "IterableExpoRichPush", "HelloWorld")

	assert.Contains(t, buf.String(), "IterableExpoRichPush")
	assert.Contains(t, buf.String(), "HelloWorld")
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name          string
		level         LogLevel
		logFunc       func(Logger)
		shouldContain bool
	}{
		{
			name:          "info level allows warn",
			level:         InfoLevel,
			logFunc:       func(l Logger) { l.Warn("level message") },
			shouldContain: true,
		},
		{
			name:          "info level blocks debug",
			level:         InfoLevel,
			logFunc:       func(l Logger) { l.Debug("level message") },
			shouldContain: false,
		},
		{
			name:          "debug level allows debug",
			level:         DebugLevel,
			logFunc:       func(l Logger) { l.Debug("level message") },
			shouldContain: true,
		},
		{
			name:          "error level blocks warn",
			level:         ErrorLevel,
			logFunc:       func(l Logger) { l.Warn("level message") },
			shouldContain: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.logFunc(NewLogger(buf, tt.level))
			assert.Equal(t, tt.shouldContain, bytes.Contains(buf.Bytes(), []byte("level message")))
		})
	}
}

func TestLogger_ForContext(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogger(buf, InfoLevel).ForContext("Step", "podfile")

	log.Info("Patched {File}", "Podfile")

	assert.Contains(t, buf.String(), "Podfile")
}

func TestNullLogger(t *testing.T) {
	log := NewNullLogger()
	log.Info("discarded {Value}", 1)
	assert.Same(t, log, log.ForContext("k", "v"))
}
