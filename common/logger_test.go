package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLoggerWritesAboveThreshold(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.log")

	l := NewRunLogger(LogWarning, path)
	l.OpenLog()
	l.Log(LogError, "error line")
	l.Log(LogDebug, "debug line should be suppressed")
	l.CloseLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "error line")
	assert.NotContains(t, content, "debug line")
}

func TestRunLoggerShouldLog(t *testing.T) {
	l := NewRunLogger(LogInfo, "")
	assert.True(t, l.ShouldLog(LogError))
	assert.True(t, l.ShouldLog(LogInfo))
	assert.False(t, l.ShouldLog(LogDebug))
	assert.False(t, l.ShouldLog(LogNone))
}

func TestNopLoggerNeverLogs(t *testing.T) {
	l := NewNopLogger()
	assert.False(t, l.ShouldLog(LogError))
	l.Log(LogError, "discarded")
}
