package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook-client/models"
)

func Test_buildGetEntityQuery_SQLContainsParts(t *testing.T) {
	query, args, err := buildGetEntityQuery(42, models.ResourceNote, "note-1")
	require.NoError(t, err)

	require.Len(t, args, 3)
	require.ElementsMatch(t, []any{int64(42), models.ResourceNote, "note-1"}, args)

	q := strings.ToLower(query)
	require.Contains(t, q, "select")
	require.Contains(t, q, "from entities")
	require.Contains(t, q, "where")
	require.Contains(t, q, "user_id")
	require.Contains(t, q, "resource")
	require.Contains(t, q, "entity_id")

	// placeholder format should be ? (SQLite)
	require.Contains(t, query, "?")
	require.NotContains(t, query, "$1")
}

func Test_buildGetEntityQuery_SelectsAllExpectedColumns(t *testing.T) {
	query, _, err := buildGetEntityQuery(1, models.ResourceNote, "n")
	require.NoError(t, err)

	q := strings.ToLower(query)
	for _, col := range entityColumns {
		require.Contains(t, q, col)
	}
}

func Test_buildUpsertEntityQuery_PreservesConflictMarker(t *testing.T) {
	row := models.EntityRow{
		UserID:           42,
		Resource:         models.ResourceTodoItem,
		EntityID:         "item-1",
		Data:             []byte(`{"id":"item-1"}`),
		LocalStatus:      models.StatusClean,
		LocalUpdatedAtMs: 100,
	}

	query, args, err := buildUpsertEntityQuery(row)
	require.NoError(t, err)
	require.Len(t, args, 6)

	q := strings.ToLower(query)
	require.Contains(t, q, "insert into entities")
	require.Contains(t, q, "on conflict (user_id, resource, entity_id)")

	// the CASE expression keeps an existing conflict marker in place
	require.Contains(t, q, "case")
	require.Contains(t, q, "'conflict'")
	require.Contains(t, q, "excluded.local_status")
	require.NotContains(t, q, "conflict_server_snapshot = excluded")
}

func Test_buildSetConflictQuery_SetsStatusAndBothSnapshots(t *testing.T) {
	query, args, err := buildSetConflictQuery(7, models.ResourceNote, "n-1", `{"s":1}`, `{"l":2}`)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "update entities")
	require.Contains(t, q, "local_status")
	require.Contains(t, q, "conflict_server_snapshot")
	require.Contains(t, q, "conflict_local_snapshot")

	require.Contains(t, args, string(models.StatusConflict))
	require.Contains(t, args, `{"s":1}`)
	require.Contains(t, args, `{"l":2}`)
}

func Test_buildClearConflictQuery_NullsSnapshots(t *testing.T) {
	query, args, err := buildClearConflictQuery(7, models.ResourceNote, "n-1")
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "update entities")
	require.Contains(t, q, "conflict_server_snapshot")
	require.Contains(t, q, "conflict_local_snapshot")
	require.Contains(t, args, string(models.StatusClean))
}

func Test_buildListPendingQuery_OrdersOldestFirstAndLimits(t *testing.T) {
	query, args, err := buildListPendingQuery(42, 100)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "from outbox")
	require.Contains(t, q, "order by created_at_ms asc, id asc")
	require.Contains(t, q, "limit 100")
	require.Contains(t, args, string(models.OutboxPending))
}

func Test_buildDeleteOutboxRowsQuery_ExpandsIDList(t *testing.T) {
	ids := []string{"a", "b", "c"}

	query, args, err := buildDeleteOutboxRowsQuery(ids)
	require.NoError(t, err)

	require.Len(t, args, 3)
	q := strings.ToLower(query)
	require.Contains(t, q, "delete from outbox")
	require.Contains(t, q, "id in (?,?,?)")
}

func Test_buildMarkBlockedQuery_SetsStatusAndReason(t *testing.T) {
	query, args, err := buildMarkBlockedQuery("row-1", "conflict")
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "update outbox")
	require.Contains(t, q, "status")
	require.Contains(t, q, "last_error")
	require.Contains(t, args, string(models.OutboxBlocked))
	require.Contains(t, args, "conflict")
}

func Test_buildAdvanceCursorQuery_IsMonotonicUpsert(t *testing.T) {
	query, args, err := buildAdvanceCursorQuery(42, 900)
	require.NoError(t, err)

	require.Len(t, args, 2)
	q := strings.ToLower(query)
	require.Contains(t, q, "insert into sync_cursor")
	require.Contains(t, q, "on conflict (user_id)")
	require.Contains(t, q, "max(sync_cursor.cursor, excluded.cursor)")
}
