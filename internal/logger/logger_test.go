package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuffer(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verbose)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	_ = withBuffer(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := withBuffer(t, true)

	Debug("test message %s", "arg")

	assert.Equal(t, "level=DEBUG msg=\"test message arg\"\n", buf.String())
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := withBuffer(t, false)

	Debug("test message")
	Info("info message")

	assert.Zero(t, buf.Len())
}

func TestWarnAndError_AlwaysWritten(t *testing.T) {
	buf := withBuffer(t, false)

	Warn("careful %d", 1)
	Error("broken")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, `level=WARN msg="careful 1"`, lines[0])
	assert.Equal(t, "level=ERROR msg=broken", lines[1])
}

func TestInfo_WhenVerbose(t *testing.T) {
	buf := withBuffer(t, true)

	Info("saved")

	assert.Equal(t, "level=INFO msg=saved\n", buf.String())
}

func TestSection(t *testing.T) {
	buf := withBuffer(t, true)

	Section("Save")

	assert.Equal(t, "\n=== Save ===\n", buf.String())
}

func TestSection_WhenNotVerbose(t *testing.T) {
	buf := withBuffer(t, false)

	Section("Save")

	assert.Zero(t, buf.Len())
}

func TestLogger_UsesOutput(t *testing.T) {
	buf := withBuffer(t, true)

	Logger().Debug("structured", "page", 2)

	assert.Equal(t, "level=DEBUG msg=structured page=2\n", buf.String())
}
