package ste

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debuti/bitslides/common"
)

func TestRemoveEmptyDirsBottomUpPreservesRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0755))

	removeEmptyDirsBottomUp(root, []string{"a/b/song.mp3"}, common.NewNopLogger())

	_, errRoot := os.Stat(root)
	assert.NoError(t, errRoot)
	_, errA := os.Stat(filepath.Join(root, "a"))
	assert.True(t, os.IsNotExist(errA))
}

func TestRemoveEmptyDirsBottomUpKeepsNonEmptyDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "stillhere.txt"), []byte("x"), 0644))

	removeEmptyDirsBottomUp(root, []string{"a/b/song.mp3"}, common.NewNopLogger())

	_, errA := os.Stat(filepath.Join(root, "a"))
	assert.NoError(t, errA)
	_, errB := os.Stat(filepath.Join(root, "a", "b"))
	assert.True(t, os.IsNotExist(errB))
}

func TestCleanStrayWIPFilesRemovesHiddenWipOnly(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".song.mp3.wip"), []byte("partial"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "song.mp3"), []byte("final"), 0644))

	cleanStrayWIPFiles(context.Background(), root, common.NewNopLogger())

	_, wipErr := os.Stat(filepath.Join(root, ".song.mp3.wip"))
	assert.True(t, os.IsNotExist(wipErr))
	_, finalErr := os.Stat(filepath.Join(root, "song.mp3"))
	assert.NoError(t, finalErr)
}
