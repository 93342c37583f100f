package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobIDRoundTripsThroughString(t *testing.T) {
	id := NewJobID()
	parsed, err := ParseJobID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestJobIDEmpty(t *testing.T) {
	var id JobID
	assert.True(t, id.IsEmpty())
	assert.False(t, NewJobID().IsEmpty())
}

func TestJobIDJSONRoundTrip(t *testing.T) {
	id := NewJobID()
	data, err := json.Marshal(id)
	require.NoError(t, err)

	var got JobID
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, id, got)
}

func TestTokenStringIncludesOrigin(t *testing.T) {
	tok := NewToken("Laptop")
	assert.Contains(t, tok.String(), "Laptop/")
}
