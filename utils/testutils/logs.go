package testutils

import (
	"bytes"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/benoitkugler/folayout/logger"
)

// LogsCapture stores the warnings emitted while it is active.
type LogsCapture struct {
	buf      bytes.Buffer
	previous io.Writer
}

// CaptureLogs starts recording the output of [logger.WarningLogger].
// It is meant to be used as
//
//	defer tu.CaptureLogs().AssertNoLogs(t)
func CaptureLogs() *LogsCapture {
	var out LogsCapture
	out.previous = logger.WarningLogger.Writer()
	logger.WarningLogger.SetOutput(&out.buf)
	return &out
}

func (c *LogsCapture) restore() {
	logger.WarningLogger.SetOutput(c.previous)
}

// Logs stops the capture and returns the recorded lines.
func (c *LogsCapture) Logs() []string {
	c.restore()
	var out []string
	for _, line := range strings.Split(c.buf.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// AssertNoLogs stops the capture and fails if any warning was emitted.
func (c *LogsCapture) AssertNoLogs(t *testing.T) {
	t.Helper()
	if logs := c.Logs(); len(logs) != 0 {
		t.Fatalf("expected no logs, got (%d): \n%s", len(logs), strings.Join(logs, "\n"))
	}
}

// CheckContains stops the capture and checks that each log line
// contains the corresponding substring.
func (c *LogsCapture) CheckContains(t *testing.T, substrings ...string) {
	t.Helper()
	logs := c.Logs()
	if len(logs) != len(substrings) {
		t.Fatalf("expected %d logs, got %d: \n%s", len(substrings), len(logs), strings.Join(logs, "\n"))
	}
	for i, s := range substrings {
		if !strings.Contains(logs[i], s) {
			t.Fatalf("log %d: expected %q in %q", i, s, logs[i])
		}
	}
}

// IndentLogger prints with an indentation proportional to the
// nesting depth, which is handy to follow recursive algorithms.
type IndentLogger struct {
	level int
}

func (il *IndentLogger) LineWithIndent(format string, args ...interface{}) {
	log.Printf(strings.Repeat("  ", il.level)+format, args...)
	il.level++
}

func (il *IndentLogger) LineWithDedent(format string, args ...interface{}) {
	il.level--
	if il.level < 0 {
		il.level = 0
	}
	log.Printf(strings.Repeat("  ", il.level)+format, args...)
}

func (il *IndentLogger) Line(format string, args ...interface{}) {
	log.Printf(strings.Repeat("  ", il.level)+format, args...)
}
