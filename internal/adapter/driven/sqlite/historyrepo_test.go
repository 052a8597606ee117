package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellcomecollection/scala-libs/internal/domain/model"
)

func makeEntry(issue int, commentID int64, action model.UpsertAction, at time.Time) model.HistoryEntry {
	return model.HistoryEntry{
		RepoFullName: "wellcomecollection/scala-libs",
		IssueNumber:  issue,
		CommentID:    commentID,
		Action:       action,
		BodySHA256:   "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		BodyBytes:    3,
		RecordedAt:   at,
	}
}

func TestHistoryRepo_RecordAndListRecent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepo(db)
	ctx := context.Background()

	first := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	second := time.Date(2026, 10, 2, 9, 0, 0, 500, time.UTC)

	require.NoError(t, repo.Record(ctx, makeEntry(7, 1000, model.UpsertActionCreated, first)))
	require.NoError(t, repo.Record(ctx, makeEntry(7, 1000, model.UpsertActionUpdated, second)))

	entries, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, model.UpsertActionUpdated, entries[0].Action)
	assert.True(t, second.Equal(entries[0].RecordedAt))
	assert.Equal(t, model.UpsertActionCreated, entries[1].Action)
	assert.True(t, first.Equal(entries[1].RecordedAt))

	assert.NotZero(t, entries[0].ID)
	assert.Equal(t, "wellcomecollection/scala-libs", entries[0].RepoFullName)
	assert.Equal(t, 7, entries[0].IssueNumber)
	assert.Equal(t, int64(1000), entries[0].CommentID)
	assert.Equal(t, 3, entries[0].BodyBytes)
}

func TestHistoryRepo_ListRecentLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepo(db)
	ctx := context.Background()

	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	for i := range 5 {
		require.NoError(t, repo.Record(ctx, makeEntry(i+1, int64(i+1), model.UpsertActionCreated, base.Add(time.Duration(i)*time.Hour))))
	}

	entries, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 5, entries[0].IssueNumber)
	assert.Equal(t, 4, entries[1].IssueNumber)
}

func TestHistoryRepo_ListRecentEmpty(t *testing.T) {
	db := setupTestDB(t)

	entries, err := NewHistoryRepo(db).ListRecent(context.Background(), 0)

	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestHistoryRepo_RecordDefaultsTimestamp(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepo(db)
	fixed := time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	require.NoError(t, repo.Record(context.Background(), makeEntry(1, 2, model.UpsertActionCreated, time.Time{})))

	entries, err := repo.ListRecent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, fixed.Equal(entries[0].RecordedAt))
}

func TestHistoryRepo_RejectsUnknownAction(t *testing.T) {
	db := setupTestDB(t)

	err := NewHistoryRepo(db).Record(context.Background(), makeEntry(1, 2, model.UpsertAction("deleted"), time.Now()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "wellcomecollection/scala-libs#1")
}

func TestNewDB_FileBackedWithMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := NewDB(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(db.Writer))
	// Second run must be a no-op.
	require.NoError(t, RunMigrations(db.Writer))

	assert.Equal(t, path, db.Path())

	repo := NewHistoryRepo(db)
	require.NoError(t, repo.Record(context.Background(), makeEntry(3, 4, model.UpsertActionUpdated, time.Now())))

	entries, err := repo.ListRecent(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
