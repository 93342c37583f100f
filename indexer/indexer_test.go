package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debuti/bitslides/common"
)

func TestIndexEnumeratesSlideDirectories(t *testing.T) {
	volPath := t.TempDir()
	container := filepath.Join(volPath, "Slides")
	require.NoError(t, os.MkdirAll(filepath.Join(container, "Pendrive"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(container, "Backup"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(container, "stray.txt"), []byte("x"), 0644))

	vol := common.Volume{Name: "Laptop", Path: volPath}
	slides, err := Index(context.Background(), vol, "Slides", common.NewNopLogger(), nil)
	require.NoError(t, err)

	names := map[string]bool{}
	for _, s := range slides {
		names[s.Name] = true
	}
	assert.True(t, names["Pendrive"])
	assert.True(t, names["Backup"])
	assert.False(t, names["stray.txt"])
}

func TestIndexReadsSlideRoute(t *testing.T) {
	volPath := t.TempDir()
	container := filepath.Join(volPath, "Slides")
	slideDir := filepath.Join(container, "Pendrive")
	require.NoError(t, os.MkdirAll(slideDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(slideDir, common.SlideMetadataFileName), []byte("route: Backup\n"), 0644))

	vol := common.Volume{Name: "Laptop", Path: volPath}
	slides, err := Index(context.Background(), vol, "Slides", common.NewNopLogger(), nil)
	require.NoError(t, err)

	require.Len(t, slides, 1)
	assert.Equal(t, "Backup", slides[0].Route)
}

func TestIndexAllSkipsUnreadableVolume(t *testing.T) {
	volPath := t.TempDir() // has no Slides container at all

	vol := common.Volume{Name: "Broken", Path: volPath}
	bySrc, err := IndexAll(context.Background(), []common.Volume{vol}, "Slides", common.NewNopLogger(), nil)
	require.NoError(t, err)
	_, ok := bySrc["Broken"]
	assert.False(t, ok)
}
