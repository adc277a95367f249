package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/daybook-app/daybook-client/internal/store"
	"github.com/daybook-app/daybook-client/models"
)

// Enqueue implements [SyncEngine]. The cache write and the outbox append are
// the optimistic half of the protocol: they always succeed locally, and the
// next cycle carries the intent to the server.
func (e *syncEngine) Enqueue(ctx context.Context, m models.Mutation) error {
	userID, err := e.boundUser()
	if err != nil {
		return err
	}

	now := e.nowMs()

	cached, err := e.storages.Entities.Get(ctx, userID, m.Resource, m.EntityID)
	switch {
	case err == nil:
		// a fresh mutation supersedes a recorded conflict
		if cached.InConflict() {
			if err = e.storages.Entities.ClearConflict(ctx, userID, m.Resource, m.EntityID); err != nil {
				return fmt.Errorf("clear superseded conflict: %w", err)
			}
		}
	case errors.Is(err, store.ErrNotFound):
		cached = models.EntityRow{}
	default:
		return fmt.Errorf("load cached entity: %w", err)
	}

	data := m.Data
	if len(data) == 0 {
		// delete mutations carry no payload; keep the last cached copy so
		// the row remains renderable until the server confirms
		data = cached.Data
	}
	if len(data) > 0 {
		row := models.EntityRow{
			UserID:           userID,
			Resource:         m.Resource,
			EntityID:         m.EntityID,
			Data:             data,
			LocalStatus:      models.StatusQueued,
			LocalUpdatedAtMs: now,
		}
		if err = e.storages.Entities.Upsert(ctx, row); err != nil {
			return fmt.Errorf("optimistic cache write: %w", err)
		}
	}

	outboxRow := models.OutboxRow{
		ID:                e.ids.Generate(),
		UserID:            userID,
		Resource:          m.Resource,
		Op:                m.Op,
		EntityID:          m.EntityID,
		ClientUpdatedAtMs: now,
		Data:              m.Data,
		CreatedAtMs:       now,
		Status:            models.OutboxPending,
	}
	if err = e.storages.Outbox.Enqueue(ctx, outboxRow); err != nil {
		return fmt.Errorf("enqueue mutation: %w", err)
	}

	e.refreshPending(ctx, userID)
	return nil
}

// ResolveWithServer implements [SyncEngine]. "Use server version": the
// authoritative snapshot replaces the local copy and the marker is cleared.
func (e *syncEngine) ResolveWithServer(ctx context.Context, resource, entityID string) error {
	userID, err := e.boundUser()
	if err != nil {
		return err
	}

	cached, err := e.storages.Entities.Get(ctx, userID, resource, entityID)
	if err != nil {
		return fmt.Errorf("load conflicted entity: %w", err)
	}
	if !cached.InConflict() {
		return fmt.Errorf("%s: %w", entityKey(resource, entityID), ErrNotInConflict)
	}

	server := cached.ConflictServer

	if err = e.storages.Entities.ClearConflict(ctx, userID, resource, entityID); err != nil {
		return fmt.Errorf("clear conflict marker: %w", err)
	}

	row := models.EntityRow{
		UserID:           userID,
		Resource:         resource,
		EntityID:         entityID,
		Data:             server,
		LocalStatus:      models.StatusClean,
		LocalUpdatedAtMs: e.nowMs(),
	}
	if err = e.storages.Entities.Upsert(ctx, row); err != nil {
		return fmt.Errorf("adopt server snapshot: %w", err)
	}

	e.logger.Info().
		Str("func", "syncEngine.ResolveWithServer").
		Str("resource", resource).
		Str("entity_id", entityID).
		Msg("conflict resolved with server version")

	return nil
}
