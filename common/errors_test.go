package common

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageWrapsWithPhaseAndPath(t *testing.T) {
	err := Stage(PhaseDiscovery, "/mnt/a", errors.New("boom"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "discovery")
	assert.Contains(t, err.Error(), "/mnt/a")
}

func TestStageNilIsNil(t *testing.T) {
	assert.Nil(t, Stage(PhaseDiscovery, "/mnt/a", nil))
}

func TestStagedErrorUnwraps(t *testing.T) {
	cause := errors.New("underlying")
	err := Stage(PhaseExecution, "f", cause)
	assert.ErrorIs(t, err, cause)
}

func TestRetryableChecksumMismatch(t *testing.T) {
	assert.True(t, Retryable(ErrChecksumMismatch))
}

func TestRetryableNilIsFalse(t *testing.T) {
	assert.False(t, Retryable(nil))
}

func TestRetryableNotExistErrorIsTerminal(t *testing.T) {
	_, err := os.Open(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.False(t, Retryable(err))
}
