package recorder

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqliteDriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqliteDriver.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&Recording{}))
	return db
}

func TestStore_CreateAndGetRecording(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	rec := &Recording{
		URL:       "https://example.com",
		Status:    StatusRecording,
		Template:  "default",
		StartedAt: time.Now(),
	}
	require.NoError(t, store.CreateRecording(ctx, rec))
	assert.NotEqual(t, uuid.Nil, rec.ID)

	got, err := store.GetRecording(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.URL, got.URL)
	assert.Equal(t, StatusRecording, got.Status)
	assert.True(t, got.IsActive())
}

func TestStore_GetRecordingNotFound(t *testing.T) {
	store := NewStore(setupTestDB(t))

	_, err := store.GetRecording(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStore_CompleteRecording(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	rec := &Recording{URL: "https://example.com", Status: StatusRecording, StartedAt: time.Now()}
	require.NoError(t, store.CreateRecording(ctx, rec))

	require.NoError(t, store.CompleteRecording(ctx, rec.ID, "await page.waitForLoadState();", 7))

	got, err := store.GetRecording(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, "await page.waitForLoadState();", got.Script)
	assert.Equal(t, 7, got.EventCount)
	require.NotNil(t, got.StoppedAt)
	assert.True(t, got.Status.IsTerminal())
}

func TestStore_MarkArchived(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	rec := &Recording{URL: "https://example.com", Status: StatusCompleted, StartedAt: time.Now()}
	require.NoError(t, store.CreateRecording(ctx, rec))

	key := "recordings/" + rec.ID.String() + ".spec.js"
	require.NoError(t, store.MarkArchived(ctx, rec.ID, key))

	got, err := store.GetRecording(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusArchived, got.Status)
	require.NotNil(t, got.StorageKey)
	assert.Equal(t, key, *got.StorageKey)
}

func TestStore_ListRecordings(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	for i, status := range []RecordingStatus{StatusCompleted, StatusCompleted, StatusArchived} {
		rec := &Recording{
			URL:       "https://example.com",
			Status:    status,
			StartedAt: time.Now().Add(time.Duration(-i) * time.Hour),
		}
		require.NoError(t, store.CreateRecording(ctx, rec))
	}

	all, err := store.ListRecordings(ctx, nil, nil, nil, 0, 50)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Newest first.
	assert.True(t, !all[0].StartedAt.Before(all[1].StartedAt))

	completed := StatusCompleted
	filtered, err := store.ListRecordings(ctx, &completed, nil, nil, 0, 50)
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	paged, err := store.ListRecordings(ctx, nil, nil, nil, 2, 50)
	require.NoError(t, err)
	assert.Len(t, paged, 1)
}

func TestStore_ListRecordingsTimeRange(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	old := &Recording{URL: "https://old.example.com", Status: StatusArchived, StartedAt: time.Now().Add(-48 * time.Hour)}
	recent := &Recording{URL: "https://new.example.com", Status: StatusArchived, StartedAt: time.Now()}
	require.NoError(t, store.CreateRecording(ctx, old))
	require.NoError(t, store.CreateRecording(ctx, recent))

	cutoff := time.Now().Add(-24 * time.Hour)
	recs, err := store.ListRecordings(ctx, nil, &cutoff, nil, 0, 50)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, recent.ID, recs[0].ID)
}

func TestStore_DeleteRecording(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	rec := &Recording{URL: "https://example.com", Status: StatusCompleted, StartedAt: time.Now()}
	require.NoError(t, store.CreateRecording(ctx, rec))

	require.NoError(t, store.DeleteRecording(ctx, rec.ID))
	assert.ErrorIs(t, store.DeleteRecording(ctx, rec.ID), gorm.ErrRecordNotFound)
}

func TestStore_DeleteArchivedBefore(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	oldStop := time.Now().Add(-72 * time.Hour)
	newStop := time.Now()

	oldRec := &Recording{URL: "https://example.com", Status: StatusArchived, StartedAt: oldStop.Add(-time.Minute), StoppedAt: &oldStop}
	newRec := &Recording{URL: "https://example.com", Status: StatusArchived, StartedAt: newStop.Add(-time.Minute), StoppedAt: &newStop}
	completed := &Recording{URL: "https://example.com", Status: StatusCompleted, StartedAt: oldStop, StoppedAt: &oldStop}
	require.NoError(t, store.CreateRecording(ctx, oldRec))
	require.NoError(t, store.CreateRecording(ctx, newRec))
	require.NoError(t, store.CreateRecording(ctx, completed))

	removed, err := store.DeleteArchivedBefore(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	remaining, err := store.ListRecordings(ctx, nil, nil, nil, 0, 50)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}
