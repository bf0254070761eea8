package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()

	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		log       func(Logger)
		wantMsgs  []string
	}{
		{
			name:      "debug suppressed at default verbosity",
			verbosity: 0,
			log: func(l Logger) {
				l.Debug("hidden")
				l.Info("shown")
			},
			wantMsgs: []string{"shown"},
		},
		{
			name:      "debug shown at verbosity 1",
			verbosity: 1,
			log: func(l Logger) {
				l.Debug("first")
				l.Warn("second")
			},
			wantMsgs: []string{"first", "second"},
		},
		{
			name:      "error always shown",
			verbosity: 0,
			log: func(l Logger) {
				l.Error("boom")
			},
			wantMsgs: []string{"boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewLogger(Config{Verbosity: tt.verbosity, Output: &buf})
			tt.log(log)

			entries := parseLines(t, &buf)
			require.Len(t, entries, len(tt.wantMsgs))
			for i, want := range tt.wantMsgs {
				assert.Equal(t, want, entries[i]["message"])
			}
		})
	}
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{Output: &buf})

	log.WithFields(Fields{
		"path":     "/home/user/.claude.json",
		"projects": 3,
	}).Info("cleanup complete")

	entries := parseLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "cleanup complete", entries[0]["message"])
	assert.Equal(t, "/home/user/.claude.json", entries[0]["path"])
	assert.Equal(t, float64(3), entries[0]["projects"])
}

func TestLoggerWithFieldsDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{Output: &buf})

	child := log.WithFields(Fields{"component": "sanitize"})
	log.Info("parent")
	child.Info("child")

	entries := parseLines(t, &buf)
	require.Len(t, entries, 2)
	assert.NotContains(t, entries[0], "component")
	assert.Equal(t, "sanitize", entries[1]["component"])
}
