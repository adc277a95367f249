package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/daybook-app/daybook-client/models"
)

// qb is the shared statement builder. SQLite uses ? placeholders.
var qb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var entityColumns = []string{
	"user_id",
	"resource",
	"entity_id",
	"data",
	"local_status",
	"local_updated_at_ms",
	"conflict_server_snapshot",
	"conflict_local_snapshot",
}

var outboxColumns = []string{
	"id",
	"user_id",
	"resource",
	"op",
	"entity_id",
	"client_updated_at_ms",
	"data",
	"created_at_ms",
	"status",
	"last_error",
}

// upsertEntitySuffix preserves an existing conflict marker: the marker and
// its snapshots can only be changed through SetConflict / ClearConflict.
const upsertEntitySuffix = `ON CONFLICT (user_id, resource, entity_id) DO UPDATE SET
	data = excluded.data,
	local_status = CASE
		WHEN entities.local_status = 'conflict' THEN 'conflict'
		ELSE excluded.local_status
	END,
	local_updated_at_ms = excluded.local_updated_at_ms`

func buildGetEntityQuery(userID int64, resource, entityID string) (string, []any, error) {
	return qb.Select(entityColumns...).
		From("entities").
		Where(sq.Eq{"user_id": userID, "resource": resource, "entity_id": entityID}).
		ToSql()
}

func buildGetAllEntitiesQuery(userID int64) (string, []any, error) {
	return qb.Select(entityColumns...).
		From("entities").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildUpsertEntityQuery(row models.EntityRow) (string, []any, error) {
	return qb.Insert("entities").
		Columns("user_id", "resource", "entity_id", "data", "local_status", "local_updated_at_ms").
		Values(row.UserID, row.Resource, row.EntityID, string(row.Data), string(row.LocalStatus), row.LocalUpdatedAtMs).
		Suffix(upsertEntitySuffix).
		ToSql()
}

func buildSetLocalStatusQuery(userID int64, resource, entityID string, status models.LocalStatus) (string, []any, error) {
	return qb.Update("entities").
		Set("local_status", string(status)).
		Where(sq.Eq{"user_id": userID, "resource": resource, "entity_id": entityID}).
		ToSql()
}

func buildSetConflictQuery(userID int64, resource, entityID string, server, local string) (string, []any, error) {
	return qb.Update("entities").
		Set("local_status", string(models.StatusConflict)).
		Set("conflict_server_snapshot", server).
		Set("conflict_local_snapshot", local).
		Where(sq.Eq{"user_id": userID, "resource": resource, "entity_id": entityID}).
		ToSql()
}

func buildClearConflictQuery(userID int64, resource, entityID string) (string, []any, error) {
	return qb.Update("entities").
		Set("local_status", string(models.StatusClean)).
		Set("conflict_server_snapshot", nil).
		Set("conflict_local_snapshot", nil).
		Where(sq.Eq{"user_id": userID, "resource": resource, "entity_id": entityID}).
		ToSql()
}

func buildDeleteEntitiesByUserQuery(userID int64) (string, []any, error) {
	return qb.Delete("entities").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildDeleteOutboxForEntityQuery(userID int64, resource, entityID string) (string, []any, error) {
	return qb.Delete("outbox").
		Where(sq.Eq{"user_id": userID, "resource": resource, "entity_id": entityID}).
		ToSql()
}

func buildInsertOutboxQuery(row models.OutboxRow, data, lastError any) (string, []any, error) {
	return qb.Insert("outbox").
		Columns(outboxColumns...).
		Values(row.ID, row.UserID, row.Resource, string(row.Op), row.EntityID,
			row.ClientUpdatedAtMs, data, row.CreatedAtMs, string(row.Status), lastError).
		ToSql()
}

func buildListPendingQuery(userID int64, limit int) (string, []any, error) {
	return qb.Select(outboxColumns...).
		From("outbox").
		Where(sq.Eq{"user_id": userID, "status": string(models.OutboxPending)}).
		OrderBy("created_at_ms ASC", "id ASC").
		Limit(uint64(limit)).
		ToSql()
}

func buildDeleteOutboxRowsQuery(ids []string) (string, []any, error) {
	return qb.Delete("outbox").
		Where(sq.Eq{"id": ids}).
		ToSql()
}

func buildMarkBlockedQuery(id, reason string) (string, []any, error) {
	return qb.Update("outbox").
		Set("status", string(models.OutboxBlocked)).
		Set("last_error", reason).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildCountPendingQuery(userID int64) (string, []any, error) {
	return qb.Select("COUNT(*)").
		From("outbox").
		Where(sq.Eq{"user_id": userID, "status": string(models.OutboxPending)}).
		ToSql()
}

func buildGetCursorQuery(userID int64) (string, []any, error) {
	return qb.Select("cursor").
		From("sync_cursor").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// buildAdvanceCursorQuery keeps the cursor monotonic: an upsert with a
// smaller or equal value leaves the stored cursor unchanged.
func buildAdvanceCursorQuery(userID int64, cursor int64) (string, []any, error) {
	return qb.Insert("sync_cursor").
		Columns("user_id", "cursor").
		Values(userID, cursor).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
	cursor = MAX(sync_cursor.cursor, excluded.cursor)`).
		ToSql()
}
