package tasks

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordingArchiveTask(t *testing.T) {
	id := uuid.New()
	task, err := NewRecordingArchiveTask(RecordingArchivePayload{RecordingID: id})
	require.NoError(t, err)

	assert.Equal(t, TypeRecordingArchive, task.Type())

	var payload RecordingArchivePayload
	require.NoError(t, payload.Unmarshal(task.Payload()))
	assert.Equal(t, id, payload.RecordingID)
}

func TestNewRecordingCleanupTask(t *testing.T) {
	task, err := NewRecordingCleanupTask(RecordingCleanupPayload{RetentionDays: 30})
	require.NoError(t, err)

	assert.Equal(t, TypeRecordingCleanup, task.Type())

	var payload RecordingCleanupPayload
	require.NoError(t, payload.Unmarshal(task.Payload()))
	assert.Equal(t, 30, payload.RetentionDays)
}
