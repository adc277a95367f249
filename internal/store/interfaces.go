package store

import (
	"context"
	"encoding/json"

	"github.com/daybook-app/daybook-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// EntityRepository is the local cache of server entities, partitioned by
// user. One row per (user, resource, entity).
type EntityRepository interface {
	// Get returns the cached row or [ErrNotFound].
	Get(ctx context.Context, userID int64, resource, entityID string) (models.EntityRow, error)

	// GetAll returns every cached row for the user, order unspecified.
	GetAll(ctx context.Context, userID int64) ([]models.EntityRow, error)

	// Upsert writes the row through to the cache. An existing conflict
	// marker on the row is preserved: local_status stays conflict and the
	// stored snapshots are untouched until ClearConflict is called.
	Upsert(ctx context.Context, row models.EntityRow) error

	// UpsertBatch applies all rows in one transaction: all commit or none.
	UpsertBatch(ctx context.Context, rows []models.EntityRow) error

	// SetLocalStatus updates only the local_status column.
	SetLocalStatus(ctx context.Context, userID int64, resource, entityID string, status models.LocalStatus) error

	// SetConflict marks the row as conflicted and stores both snapshots.
	SetConflict(ctx context.Context, userID int64, resource, entityID string, server, local json.RawMessage) error

	// ClearConflict resets the row to clean and nulls both snapshots.
	ClearConflict(ctx context.Context, userID int64, resource, entityID string) error

	// DeleteByUser drops the user's whole cache partition (explicit
	// cache-clear, e.g. on logout).
	DeleteByUser(ctx context.Context, userID int64) error
}

// OutboxRepository is the durable log of not-yet-confirmed local mutations.
type OutboxRepository interface {
	// Enqueue inserts row, first deleting any existing row for the same
	// (user, resource, entity) in the same transaction, so the outbox
	// always holds at most one row per entity and it reflects only the
	// latest intended state.
	Enqueue(ctx context.Context, row models.OutboxRow) error

	// ListPending returns up to limit pending rows for the user, oldest
	// first by created_at_ms. Blocked rows are excluded.
	ListPending(ctx context.Context, userID int64, limit int) ([]models.OutboxRow, error)

	// DeleteRows removes the rows with the given IDs.
	DeleteRows(ctx context.Context, ids []string) error

	// MarkBlocked transitions a row out of the retry path, recording the
	// server's rejection reason. Blocked rows stay until a new mutation
	// for the entity supersedes them.
	MarkBlocked(ctx context.Context, id string, reason string) error

	// CountPending returns the number of pending rows for the user.
	CountPending(ctx context.Context, userID int64) (int, error)
}

// CursorRepository stores the per-user pull cursor.
type CursorRepository interface {
	// Get returns the persisted cursor, zero if the user has none yet.
	Get(ctx context.Context, userID int64) (int64, error)

	// Advance persists cursor if it is greater than the stored value; a
	// smaller or equal cursor is a no-op, so the cursor never regresses.
	Advance(ctx context.Context, userID int64, cursor int64) error
}
