package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalDistinguishesAbsentAndNull(t *testing.T) {
	var req UpdateCardRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title": "Renamed", "dueDate": null}`), &req))

	assert.True(t, req.Title.Present)
	assert.False(t, req.Title.Null)
	assert.Equal(t, "Renamed", req.Title.Value)
	assert.True(t, req.Title.Set())

	assert.True(t, req.DueDate.Present)
	assert.True(t, req.DueDate.Null)
	assert.False(t, req.DueDate.Set())

	// Absent fields stay zero.
	assert.False(t, req.Notes.Present)
	assert.False(t, req.Notes.Set())
}

func TestOptionalValueTypes(t *testing.T) {
	var req UpdateCardRequest
	require.NoError(t, json.Unmarshal([]byte(
		`{"dueDate": "2026-01-15T00:00:00Z", "tagIds": ["a", "b"]}`), &req))

	require.True(t, req.DueDate.Set())
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), req.DueDate.Value)

	require.True(t, req.TagIDs.Set())
	assert.Equal(t, []string{"a", "b"}, req.TagIDs.Value)
}

func TestOptionalRejectsMalformedValue(t *testing.T) {
	var req UpdateCardRequest
	err := json.Unmarshal([]byte(`{"dueDate": "not-a-date"}`), &req)
	assert.Error(t, err)
}
