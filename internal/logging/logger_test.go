package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
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

func TestLoggerWritesStructuredEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("Store").SetOutput(&buf)

	logger.InfoWithContext("catalog loaded", map[string]interface{}{"language": "fr"})
	logger.Error("write failed", errors.New("disk full"))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)

	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "Store", entries[0]["component"])
	assert.Equal(t, "fr", entries[0]["language"])
	assert.Equal(t, "catalog loaded", entries[0]["message"])

	assert.Equal(t, "error", entries[1]["level"])
	assert.Equal(t, "disk full", entries[1]["error"])
}

func TestLoggerMinLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("Watcher").SetOutput(&buf).SetMinLevel(LogLevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["message"])
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("Gate").SetOutput(&buf)

	logger.WithContext(map[string]interface{}{"gate": "es"}).Info("entered")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "es", entries[0]["gate"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LogLevelDebug, ParseLevel("debug"))
	assert.Equal(t, LogLevelWarn, ParseLevel("warning"))
	assert.Equal(t, LogLevelInfo, ParseLevel("verbose"))
	assert.Equal(t, LogLevelInfo, ParseLevel(""))
}

func TestErrorReporter(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewErrorReporter(NewLogger("ErrorReporter").SetOutput(&buf))

	var seen []*ErrorReport
	reporter.OnError(func(r *ErrorReport) { seen = append(seen, r) })

	for i := 0; i < 3; i++ {
		reporter.ReportError(ErrorCategoryStorage, ErrorSeverityHigh, "Store", "load failed", errors.New("denied"), map[string]interface{}{"attempt": i})
	}

	require.Len(t, seen, 3)
	assert.False(t, seen[0].Timestamp.IsZero())

	recent := reporter.RecentErrors(2)
	require.Len(t, recent, 2)
	assert.Equal(t, 2, recent[1].Context["attempt"])

	assert.Len(t, reporter.RecentErrors(10), 3)
	assert.Empty(t, reporter.RecentErrors(0))
	assert.Empty(t, reporter.RecentErrors(-1))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 3)
	assert.Equal(t, "storage", entries[0]["category"])
}

func TestErrorReporterMediumSeverityKeepsCause(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewErrorReporter(NewLogger("ErrorReporter").SetOutput(&buf))

	reporter.ReportError(ErrorCategoryCatalog, ErrorSeverityMedium, "GUI", "Lesson catalog is malformed", errors.New("unexpected end of JSON input"), map[string]interface{}{"gate": "es"})

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "warn", entries[0]["level"])
	assert.Equal(t, "unexpected end of JSON input", entries[0]["error"])
	assert.Equal(t, "es", entries[0]["gate"])
}
