package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevelParseRoundTrip(t *testing.T) {
	for _, want := range []LogLevel{ELogLevel.None(), ELogLevel.Error(), ELogLevel.Warning(), ELogLevel.Info(), ELogLevel.Debug()} {
		var got LogLevel
		require.NoError(t, got.Parse(want.String()))
		assert.Equal(t, want, got)
	}
}

func TestFromVerbosityCount(t *testing.T) {
	assert.Equal(t, ELogLevel.Error(), FromVerbosityCount(0))
	assert.Equal(t, ELogLevel.Warning(), FromVerbosityCount(1))
	assert.Equal(t, ELogLevel.Info(), FromVerbosityCount(2))
	assert.Equal(t, ELogLevel.Debug(), FromVerbosityCount(3))
}

func TestCollisionPolicyParseRoundTrip(t *testing.T) {
	for _, want := range []CollisionPolicy{
		ECollisionPolicy.SkipIfEqualOverwriteIfDifferent(),
		ECollisionPolicy.AlwaysSkip(),
		ECollisionPolicy.AlwaysOverwrite(),
		ECollisionPolicy.Fail(),
	} {
		var got CollisionPolicy
		require.NoError(t, got.Parse(want.String()))
		assert.Equal(t, want, got)
	}
}

func TestFileStateTerminal(t *testing.T) {
	assert.True(t, EFileState.Done().Terminal())
	assert.True(t, EFileState.Skipped().Terminal())
	assert.True(t, EFileState.Failed().Terminal())
	assert.False(t, EFileState.Pending().Terminal())
	assert.False(t, EFileState.Copying().Terminal())
}
