package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractField(t *testing.T) {
	line := `2026-07-31T12:00:00Z kind=start-copy job=Laptop-->Pendrive path="song.mp3"`
	assert.Equal(t, "start-copy", extractField(line, "kind="))
	assert.Equal(t, `"song.mp3"`, extractField(line, "path="))
	assert.Equal(t, "", extractField(line, "token="))
}

func TestRunJobsListSummarizesCounts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.log")
	content := "t kind=start-copy path=\"a\"\n" +
		"t kind=checksum-ok path=\"a\"\n" +
		"t kind=start-copy path=\"b\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	err := runJobsList(jobsListCmd, []string{path})
	assert.NoError(t, err)
}
