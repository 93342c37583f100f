package discoverer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debuti/bitslides/common"
)

func mustMkdirAll(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0755))
}

// recordingLogger captures logged messages for assertions, rather than
// discarding them like common.NewNopLogger.
type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) ShouldLog(common.LogLevel) bool { return true }
func (l *recordingLogger) Log(_ common.LogLevel, msg string) {
	l.messages = append(l.messages, msg)
}
func (l *recordingLogger) Panic(err error) { panic(err) }

func TestDiscoverFindsVolumesWithSlidesContainer(t *testing.T) {
	root := t.TempDir()
	mustMkdirAll(t, filepath.Join(root, "Laptop", "Slides"))
	mustMkdirAll(t, filepath.Join(root, "NotAVolume")) // no Slides container

	rs := common.RootSet{Roots: []string{root}, Keyword: "Slides"}
	volumes, err := Discover(context.Background(), rs, common.NewNopLogger(), nil)
	require.NoError(t, err)

	require.Len(t, volumes, 1)
	assert.Equal(t, "Laptop", volumes[0].Name)
	assert.Equal(t, filepath.Join(root, "Laptop"), volumes[0].Path)
}

func TestDiscoverAppliesVolumeMetadataOverride(t *testing.T) {
	root := t.TempDir()
	volDir := filepath.Join(root, "Laptop")
	mustMkdirAll(t, filepath.Join(volDir, "Slides"))
	require.NoError(t, os.WriteFile(filepath.Join(volDir, common.VolumeMetadataFileName), []byte("name: CustomName\n"), 0644))

	rs := common.RootSet{Roots: []string{root}, Keyword: "Slides"}
	volumes, err := Discover(context.Background(), rs, common.NewNopLogger(), nil)
	require.NoError(t, err)

	require.Len(t, volumes, 1)
	assert.Equal(t, "CustomName", volumes[0].Name)
}

func TestDiscoverSkipsDisabledVolume(t *testing.T) {
	root := t.TempDir()
	volDir := filepath.Join(root, "Laptop")
	mustMkdirAll(t, filepath.Join(volDir, "Slides"))
	require.NoError(t, os.WriteFile(filepath.Join(volDir, common.VolumeMetadataFileName), []byte("disabled: true\n"), 0644))

	rs := common.RootSet{Roots: []string{root}, Keyword: "Slides"}
	volumes, err := Discover(context.Background(), rs, common.NewNopLogger(), nil)
	require.NoError(t, err)
	assert.Empty(t, volumes)
}

func TestDiscoverDuplicateNameKeepsFirstOccurrence(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	mustMkdirAll(t, filepath.Join(rootA, "Laptop", "Slides"))
	mustMkdirAll(t, filepath.Join(rootB, "Laptop", "Slides"))

	logger := &recordingLogger{}
	rs := common.RootSet{Roots: []string{rootA, rootB}, Keyword: "Slides"}
	volumes, err := Discover(context.Background(), rs, logger, nil)
	require.NoError(t, err)

	require.Len(t, volumes, 1)
	assert.Equal(t, filepath.Join(rootA, "Laptop"), volumes[0].Path)

	require.Len(t, logger.messages, 1)
	assert.Contains(t, logger.messages[0], common.ErrDuplicateVolumeName.Error())
}
