package log

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, level Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(level)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(LevelInfo)
	})
	return &buf
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelError, ParseLevel(" ERROR "))
	assert.Equal(t, LevelInfo, ParseLevel("info"))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestInfoFiltersDebug(t *testing.T) {
	buf := capture(t, LevelInfo)

	Debug("hidden")
	Info("committed", "date", "2008-06-15")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[INFO] committed date=2008-06-15")
}

func TestErrorIncludesErr(t *testing.T) {
	buf := capture(t, LevelError)

	Info("hidden")
	Error("load failed", errors.New("boom"), "path", "/tmp/x")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[ERROR] load failed err=boom path=/tmp/x")
}

func TestOddKVDropsTrailingValue(t *testing.T) {
	buf := capture(t, LevelDebug)

	Debug("x", "a", 1, "dangling")

	assert.Contains(t, buf.String(), "[DEBUG] x a=1\n")
}
