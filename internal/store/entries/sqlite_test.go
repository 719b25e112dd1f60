package entries

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/daylog/internal/common"
	"github.com/dmitrijs2005/daylog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE entries (
  id TEXT PRIMARY KEY,
  date_key TEXT NOT NULL,
  created_at INTEGER NOT NULL,
  display_time TEXT NOT NULL DEFAULT '',
  content TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT 'life',
  attachments BLOB NOT NULL DEFAULT '[]',
  sync_state TEXT NOT NULL DEFAULT 'pending'
);
`)
	require.NoError(t, err)

	return db
}

func testEntry(id, dateKey string, createdAt int64, state models.SyncState) *models.Entry {
	return &models.Entry{
		ID:        id,
		DateKey:   dateKey,
		CreatedAt: createdAt,
		Text:      "text for " + id,
		Category:  models.CategoryLife,
		SyncState: state,
	}
}

func TestCreateOrUpdate_InsertAndUpdate(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	e := testEntry("id1", "2024-05-01", 100, models.SyncStatePending)
	e.Attachments = []models.Attachment{
		{ID: "att1", Name: "photo.png", MimeType: "image/png",
			Payload: models.NewInlinePayload([]byte("bytes"), "image/png")},
	}
	require.NoError(t, r.CreateOrUpdate(ctx, e))

	got, err := r.GetByID(ctx, "id1")
	require.NoError(t, err)
	assert.Equal(t, "text for id1", got.Text)
	require.Len(t, got.Attachments, 1)
	assert.True(t, got.Attachments[0].Payload.Inline())
	assert.Equal(t, []byte("bytes"), got.Attachments[0].Payload.Bytes())

	// update on the same id replaces every column
	e2 := testEntry("id1", "2024-05-01", 100, models.SyncStateSynced)
	e2.Text = "edited"
	e2.Attachments = []models.Attachment{
		{ID: "att1", Name: "photo.png", MimeType: "image/png",
			Payload:  models.NewRemotePayload("remote/ref.png"),
			RemoteID: "remote/ref.png"},
	}
	require.NoError(t, r.CreateOrUpdate(ctx, e2))

	got, err = r.GetByID(ctx, "id1")
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)
	assert.Equal(t, models.SyncStateSynced, got.SyncState)
	require.Len(t, got.Attachments, 1)
	assert.False(t, got.Attachments[0].Payload.Inline())
	assert.Equal(t, "remote/ref.png", got.Attachments[0].RemoteID)
}

func TestGetByDate_AscendingOrder(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.CreateOrUpdate(ctx, testEntry("b", "2024-05-01", 200, models.SyncStatePending)))
	require.NoError(t, r.CreateOrUpdate(ctx, testEntry("a", "2024-05-01", 100, models.SyncStatePending)))
	require.NoError(t, r.CreateOrUpdate(ctx, testEntry("c", "2024-05-02", 50, models.SyncStatePending)))

	got, err := r.GetByDate(ctx, "2024-05-01")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestGetAll_NewestFirst(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.CreateOrUpdate(ctx, testEntry("a", "2024-05-01", 100, models.SyncStatePending)))
	require.NoError(t, r.CreateOrUpdate(ctx, testEntry("c", "2024-05-02", 300, models.SyncStatePending)))
	require.NoError(t, r.CreateOrUpdate(ctx, testEntry("b", "2024-05-01", 200, models.SyncStatePending)))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestGetPendingByDate(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.CreateOrUpdate(ctx, testEntry("p", "2024-05-01", 100, models.SyncStatePending)))
	require.NoError(t, r.CreateOrUpdate(ctx, testEntry("e", "2024-05-01", 200, models.SyncStateError)))
	require.NoError(t, r.CreateOrUpdate(ctx, testEntry("s", "2024-05-01", 300, models.SyncStateSynced)))
	require.NoError(t, r.CreateOrUpdate(ctx, testEntry("o", "2024-05-02", 400, models.SyncStatePending)))

	got, err := r.GetPendingByDate(ctx, "2024-05-01")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p", got[0].ID)
	assert.Equal(t, "e", got[1].ID)
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestDeleteByID_SuccessAndNotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.CreateOrUpdate(ctx, testEntry("x", "2024-05-01", 100, models.SyncStatePending)))

	require.NoError(t, r.DeleteByID(ctx, "x"))

	err := r.DeleteByID(ctx, "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
