package tasks_test

import (
	"encoding/json"
	"testing"

	"trivia-arena/internal/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLeaderboardSyncTask_RoundTrip(t *testing.T) {
	// Arrange & Act
	raw, err := tasks.NewLeaderboardSyncTask(42, 1310)

	// Assert
	require.NoError(t, err)
	var payload tasks.LeaderboardSyncPayload
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, uint(42), payload.UserID)
	assert.Equal(t, 1310, payload.Rating)
}

func TestNewRoomReapTask_EmptyPayload(t *testing.T) {
	raw, err := tasks.NewRoomReapTask()

	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}
