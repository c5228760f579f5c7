package impl

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSyncID_Shape(t *testing.T) {
	now := time.Date(2025, 5, 20, 8, 30, 0, 0, time.UTC)

	token, err := newSyncID(now)
	require.NoError(t, err)

	parts := strings.SplitN(token, "_", 3)
	require.Len(t, parts, 3)
	assert.Equal(t, "sync", parts[0])
	assert.Equal(t, "1747729800", parts[1])
	// 16 random bytes hex-encoded.
	assert.Len(t, parts[2], 32)
}

func TestNewSyncID_Unique(t *testing.T) {
	now := time.Now()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := newSyncID(now)
		require.NoError(t, err)

		_, dup := seen[token]
		require.False(t, dup, "token collision: %s", token)
		seen[token] = struct{}{}
	}
}
