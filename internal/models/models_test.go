package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupCrossingsRoundTrip(t *testing.T) {
	hole7 := 7
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	original := []GroupCrossings{
		{
			GroupID: 1,
			TeeTime: start,
			Crossed: true,
			Crossings: []CrossingEvent{
				{Timestamp: start.Add(15 * time.Minute), TimeSeconds: 900, NodeIndex: 42, Hole: &hole7, WrapCount: 0},
				{Timestamp: start.Add(45 * time.Minute), TimeSeconds: 2700, NodeIndex: 118, WrapCount: 1},
			},
		},
		{
			GroupID: 2,
			TeeTime: start.Add(10 * time.Minute),
			Crossed: false,
		},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	// Timestamps serialize as ISO-8601 / RFC 3339
	assert.Contains(t, string(data), "2024-06-01T09:15:00Z")

	var decoded []GroupCrossings
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Len(t, decoded, 2)
	assert.Equal(t, 1, decoded[0].GroupID)
	assert.Equal(t, 2, decoded[1].GroupID)
	assert.True(t, decoded[0].Crossings[0].Timestamp.Equal(original[0].Crossings[0].Timestamp))
	require.NotNil(t, decoded[0].Crossings[0].Hole)
	assert.Equal(t, 7, *decoded[0].Crossings[0].Hole)
	assert.Nil(t, decoded[0].Crossings[1].Hole)
	assert.False(t, decoded[1].Crossed)
}
