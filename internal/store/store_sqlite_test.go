package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook-client/internal/config"
	"github.com/daybook-app/daybook-client/internal/logger"
	"github.com/daybook-app/daybook-client/models"
)

// newMemoryStorages opens a fresh in-memory SQLite database with the full
// schema applied, so repository behavior is tested against the real engine.
func newMemoryStorages(t *testing.T) *ClientStorages {
	t.Helper()

	storages, err := NewClientStorages(config.ClientStorage{DB: config.ClientDB{DSN: ":memory:"}}, logger.Nop())
	require.NoError(t, err)

	return storages
}

func testContext() context.Context {
	return logger.Nop().WithContext(context.Background())
}

func queuedRow(userID int64, resource, entityID string, updatedAtMs int64) models.EntityRow {
	return models.EntityRow{
		UserID:           userID,
		Resource:         resource,
		EntityID:         entityID,
		Data:             []byte(`{"id":"` + entityID + `"}`),
		LocalStatus:      models.StatusQueued,
		LocalUpdatedAtMs: updatedAtMs,
	}
}

func pendingMutation(userID int64, resource, entityID string, createdAtMs int64) models.OutboxRow {
	return models.OutboxRow{
		ID:                uuid.NewString(),
		UserID:            userID,
		Resource:          resource,
		Op:                models.OpUpdate,
		EntityID:          entityID,
		ClientUpdatedAtMs: createdAtMs,
		Data:              []byte(`{"id":"` + entityID + `"}`),
		CreatedAtMs:       createdAtMs,
		Status:            models.OutboxPending,
	}
}

func TestEntityRepository_UpsertAndGet(t *testing.T) {
	ctx := testContext()
	storages := newMemoryStorages(t)

	row := queuedRow(1, models.ResourceNote, "note-1", 100)
	require.NoError(t, storages.Entities.Upsert(ctx, row))

	got, err := storages.Entities.Get(ctx, 1, models.ResourceNote, "note-1")
	require.NoError(t, err)
	assert.Equal(t, row.EntityID, got.EntityID)
	assert.Equal(t, models.StatusQueued, got.LocalStatus)
	assert.JSONEq(t, string(row.Data), string(got.Data))
	assert.Nil(t, got.ConflictServer)
	assert.Nil(t, got.ConflictLocal)
}

func TestEntityRepository_Get_NotFound(t *testing.T) {
	ctx := testContext()
	storages := newMemoryStorages(t)

	_, err := storages.Entities.Get(ctx, 1, models.ResourceNote, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestEntityRepository_Upsert_PreservesConflictMarker(t *testing.T) {
	ctx := testContext()
	storages := newMemoryStorages(t)

	require.NoError(t, storages.Entities.Upsert(ctx, queuedRow(1, models.ResourceNote, "note-1", 100)))
	require.NoError(t, storages.Entities.SetConflict(ctx, 1, models.ResourceNote, "note-1",
		[]byte(`{"title":"server"}`), []byte(`{"title":"local"}`)))

	// a pulled server version must not silently resolve the conflict
	require.NoError(t, storages.Entities.Upsert(ctx, models.EntityRow{
		UserID:           1,
		Resource:         models.ResourceNote,
		EntityID:         "note-1",
		Data:             []byte(`{"title":"newer server"}`),
		LocalStatus:      models.StatusClean,
		LocalUpdatedAtMs: 200,
	}))

	got, err := storages.Entities.Get(ctx, 1, models.ResourceNote, "note-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConflict, got.LocalStatus)
	assert.True(t, got.InConflict())
	assert.JSONEq(t, `{"title":"server"}`, string(got.ConflictServer))
	assert.JSONEq(t, `{"title":"local"}`, string(got.ConflictLocal))
	assert.JSONEq(t, `{"title":"newer server"}`, string(got.Data))
	assert.Equal(t, int64(200), got.LocalUpdatedAtMs)
}

func TestEntityRepository_ClearConflict(t *testing.T) {
	ctx := testContext()
	storages := newMemoryStorages(t)

	require.NoError(t, storages.Entities.Upsert(ctx, queuedRow(1, models.ResourceNote, "note-1", 100)))
	require.NoError(t, storages.Entities.SetConflict(ctx, 1, models.ResourceNote, "note-1",
		[]byte(`{"a":1}`), []byte(`{"b":2}`)))
	require.NoError(t, storages.Entities.ClearConflict(ctx, 1, models.ResourceNote, "note-1"))

	got, err := storages.Entities.Get(ctx, 1, models.ResourceNote, "note-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusClean, got.LocalStatus)
	assert.False(t, got.InConflict())
	assert.Nil(t, got.ConflictServer)
	assert.Nil(t, got.ConflictLocal)
}

func TestEntityRepository_SetConflict_MissingRow(t *testing.T) {
	ctx := testContext()
	storages := newMemoryStorages(t)

	err := storages.Entities.SetConflict(ctx, 1, models.ResourceNote, "missing",
		[]byte(`{}`), []byte(`{}`))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestEntityRepository_UpsertBatch_AllRowsLand(t *testing.T) {
	ctx := testContext()
	storages := newMemoryStorages(t)

	rows := []models.EntityRow{
		queuedRow(1, models.ResourceNote, "note-1", 100),
		queuedRow(1, models.ResourceTodoItem, "item-1", 110),
		queuedRow(1, models.ResourceTodoList, "list-1", 120),
	}
	require.NoError(t, storages.Entities.UpsertBatch(ctx, rows))

	all, err := storages.Entities.GetAll(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestEntityRepository_DeleteByUser_LeavesOtherUsersIntact(t *testing.T) {
	ctx := testContext()
	storages := newMemoryStorages(t)

	require.NoError(t, storages.Entities.Upsert(ctx, queuedRow(1, models.ResourceNote, "note-1", 100)))
	require.NoError(t, storages.Entities.Upsert(ctx, queuedRow(2, models.ResourceNote, "note-2", 100)))

	require.NoError(t, storages.Entities.DeleteByUser(ctx, 1))

	gone, err := storages.Entities.GetAll(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := storages.Entities.GetAll(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestOutboxRepository_Enqueue_DeduplicatesPerEntity(t *testing.T) {
	ctx := testContext()
	storages := newMemoryStorages(t)

	first := pendingMutation(1, models.ResourceNote, "note-1", 100)
	first.Data = []byte(`{"title":"A"}`)
	require.NoError(t, storages.Outbox.Enqueue(ctx, first))

	second := pendingMutation(1, models.ResourceNote, "note-1", 200)
	second.Data = []byte(`{"title":"B"}`)
	require.NoError(t, storages.Outbox.Enqueue(ctx, second))

	pending, err := storages.Outbox.ListPending(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
	assert.JSONEq(t, `{"title":"B"}`, string(pending[0].Data))
	assert.Equal(t, int64(200), pending[0].ClientUpdatedAtMs)
}

func TestOutboxRepository_Enqueue_SupersedesBlockedRow(t *testing.T) {
	ctx := testContext()
	storages := newMemoryStorages(t)

	blocked := pendingMutation(1, models.ResourceNote, "note-1", 100)
	require.NoError(t, storages.Outbox.Enqueue(ctx, blocked))
	require.NoError(t, storages.Outbox.MarkBlocked(ctx, blocked.ID, "invalid"))

	fresh := pendingMutation(1, models.ResourceNote, "note-1", 200)
	require.NoError(t, storages.Outbox.Enqueue(ctx, fresh))

	pending, err := storages.Outbox.ListPending(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, fresh.ID, pending[0].ID)
	assert.Equal(t, models.OutboxPending, pending[0].Status)
}

func TestOutboxRepository_ListPending_OldestFirstExcludingBlocked(t *testing.T) {
	ctx := testContext()
	storages := newMemoryStorages(t)

	older := pendingMutation(1, models.ResourceNote, "note-1", 100)
	newer := pendingMutation(1, models.ResourceTodoItem, "item-1", 200)
	blocked := pendingMutation(1, models.ResourceTodoList, "list-1", 50)
	require.NoError(t, storages.Outbox.Enqueue(ctx, older))
	require.NoError(t, storages.Outbox.Enqueue(ctx, newer))
	require.NoError(t, storages.Outbox.Enqueue(ctx, blocked))
	require.NoError(t, storages.Outbox.MarkBlocked(ctx, blocked.ID, "conflict"))

	pending, err := storages.Outbox.ListPending(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, older.ID, pending[0].ID)
	assert.Equal(t, newer.ID, pending[1].ID)
}

func TestOutboxRepository_ListPending_RespectsLimit(t *testing.T) {
	ctx := testContext()
	storages := newMemoryStorages(t)

	for i := 0; i < 5; i++ {
		row := pendingMutation(1, models.ResourceNote, uuid.NewString(), int64(100+i))
		require.NoError(t, storages.Outbox.Enqueue(ctx, row))
	}

	pending, err := storages.Outbox.ListPending(ctx, 1, 3)
	require.NoError(t, err)
	assert.Len(t, pending, 3)
}

func TestOutboxRepository_DeleteRowsAndCountPending(t *testing.T) {
	ctx := testContext()
	storages := newMemoryStorages(t)

	first := pendingMutation(1, models.ResourceNote, "note-1", 100)
	second := pendingMutation(1, models.ResourceNote, "note-2", 110)
	require.NoError(t, storages.Outbox.Enqueue(ctx, first))
	require.NoError(t, storages.Outbox.Enqueue(ctx, second))

	count, err := storages.Outbox.CountPending(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, storages.Outbox.DeleteRows(ctx, []string{first.ID}))

	count, err = storages.Outbox.CountPending(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// deleting nothing is fine
	require.NoError(t, storages.Outbox.DeleteRows(ctx, nil))
}

func TestOutboxRepository_MarkBlocked_RecordsReasonAndLeavesPendingCount(t *testing.T) {
	ctx := testContext()
	storages := newMemoryStorages(t)

	row := pendingMutation(1, models.ResourceNote, "note-1", 100)
	require.NoError(t, storages.Outbox.Enqueue(ctx, row))
	require.NoError(t, storages.Outbox.MarkBlocked(ctx, row.ID, "conflict"))

	count, err := storages.Outbox.CountPending(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestOutboxRepository_MarkBlocked_MissingRow(t *testing.T) {
	ctx := testContext()
	storages := newMemoryStorages(t)

	err := storages.Outbox.MarkBlocked(ctx, uuid.NewString(), "conflict")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOutboxRepository_DeleteRows_LatestWinsAfterConfirm(t *testing.T) {
	ctx := testContext()
	storages := newMemoryStorages(t)

	// edit made while a push of the same entity is in flight: the new row
	// has a different ID, so confirming the old one must not remove it
	inFlight := pendingMutation(1, models.ResourceNote, "note-1", 100)
	require.NoError(t, storages.Outbox.Enqueue(ctx, inFlight))

	replacement := pendingMutation(1, models.ResourceNote, "note-1", 200)
	require.NoError(t, storages.Outbox.Enqueue(ctx, replacement))

	require.NoError(t, storages.Outbox.DeleteRows(ctx, []string{inFlight.ID}))

	pending, err := storages.Outbox.ListPending(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, replacement.ID, pending[0].ID)
}

func TestCursorRepository_GetDefaultsToZero(t *testing.T) {
	ctx := testContext()
	storages := newMemoryStorages(t)

	cursor, err := storages.Cursor.Get(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, cursor)
}

func TestCursorRepository_AdvanceIsMonotonic(t *testing.T) {
	ctx := testContext()
	storages := newMemoryStorages(t)

	require.NoError(t, storages.Cursor.Advance(ctx, 1, 900))

	cursor, err := storages.Cursor.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(900), cursor)

	// smaller and equal values are no-ops
	require.NoError(t, storages.Cursor.Advance(ctx, 1, 500))
	require.NoError(t, storages.Cursor.Advance(ctx, 1, 900))

	cursor, err = storages.Cursor.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(900), cursor)

	require.NoError(t, storages.Cursor.Advance(ctx, 1, 1200))

	cursor, err = storages.Cursor.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), cursor)
}

func TestCursorRepository_IsPerUser(t *testing.T) {
	ctx := testContext()
	storages := newMemoryStorages(t)

	require.NoError(t, storages.Cursor.Advance(ctx, 1, 100))
	require.NoError(t, storages.Cursor.Advance(ctx, 2, 700))

	first, err := storages.Cursor.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), first)

	second, err := storages.Cursor.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(700), second)
}
