package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerbosity(t *testing.T) {
	testCases := []struct {
		input    string
		expected VerbosityLevel
	}{
		{input: "Verbose", expected: Verbose},
		{input: "info", expected: Info},
		{input: " WARNING ", expected: Warning},
		{input: "error", expected: Error},
		{input: "Off", expected: Off},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			level, err := ParseVerbosity(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, level)
			assert.Equal(t, tc.expected.String(), verbosityNames[level])
		})
	}

	_, err := ParseVerbosity("loud")
	assert.ErrorContains(t, err, "invalid verbosity level 'loud'")
}

func TestNewLogger_FiltersByLevel(t *testing.T) {
	testCases := []struct {
		level       VerbosityLevel
		wantDebug   bool
		wantInfo    bool
		wantWarning bool
		wantError   bool
	}{
		{level: Verbose, wantDebug: true, wantInfo: true, wantWarning: true, wantError: true},
		{level: Info, wantInfo: true, wantWarning: true, wantError: true},
		{level: Warning, wantWarning: true, wantError: true},
		{level: Error, wantError: true},
		{level: Off},
	}
	for _, tc := range testCases {
		t.Run(tc.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(tc.level, &buf)

			logger.Debug("debug-message")
			logger.Info("info-message")
			logger.Warn("warn-message")
			logger.Error("error-message")

			out := buf.String()
			assert.Equal(t, tc.wantDebug, strings.Contains(out, "debug-message"))
			assert.Equal(t, tc.wantInfo, strings.Contains(out, "info-message"))
			assert.Equal(t, tc.wantWarning, strings.Contains(out, "warn-message"))
			assert.Equal(t, tc.wantError, strings.Contains(out, "error-message"))
		})
	}
}

func TestConfigure_SetsDefault(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	Configure(Warning, &buf)
	slog.Info("hidden")
	slog.Warn("shown", "assembly", "App.dll")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "assembly=App.dll")
}
