package service

import (
	"context"
	"fmt"

	"github.com/daybook-app/daybook-client/models"
)

// push sends the pending outbox batch and reconciles every submitted row
// against the server's per-mutation outcome report.
func (e *syncEngine) push(ctx context.Context, userID int64) error {
	rows, err := e.storages.Outbox.ListPending(ctx, userID, e.cfg.PushLimit)
	if err != nil {
		return fmt.Errorf("list pending mutations: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	req := models.PushRequest{Mutations: make([]models.PushMutation, 0, len(rows))}
	for _, row := range rows {
		req.Mutations = append(req.Mutations, models.PushMutation{
			Resource:          row.Resource,
			Op:                row.Op,
			EntityID:          row.EntityID,
			ClientUpdatedAtMs: row.ClientUpdatedAtMs,
			Data:              row.Data,
		})
	}

	resp, err := e.server.Push(ctx, req)
	if err != nil {
		// nothing is known about individual mutations; the whole batch
		// stays pending for the next cycle
		return fmt.Errorf("push batch: %w", err)
	}

	applied := make(map[string]struct{}, len(resp.Applied))
	for _, ref := range resp.Applied {
		applied[entityKey(ref.Resource, ref.EntityID)] = struct{}{}
	}
	rejected := make(map[string]models.RejectedMutation, len(resp.Rejected))
	for _, rej := range resp.Rejected {
		rejected[entityKey(rej.Resource, rej.EntityID)] = rej
	}

	var confirmed []string
	var unaccounted int
	for _, row := range rows {
		key := entityKey(row.Resource, row.EntityID)

		if _, ok := applied[key]; ok {
			if err = e.storages.Entities.SetLocalStatus(ctx, userID, row.Resource, row.EntityID, models.StatusClean); err != nil {
				return fmt.Errorf("mark applied entity clean: %w", err)
			}
			confirmed = append(confirmed, row.ID)
			continue
		}

		if rej, ok := rejected[key]; ok {
			removed, handleErr := e.handleRejection(ctx, userID, row, rej)
			if handleErr != nil {
				return handleErr
			}
			if removed {
				confirmed = append(confirmed, row.ID)
			}
			continue
		}

		// absent from both sets: leave pending and flag the cycle
		unaccounted++
		e.logger.Warn().
			Str("func", "syncEngine.push").
			Str("resource", row.Resource).
			Str("entity_id", row.EntityID).
			Msg("push response did not report an outcome for mutation")
	}

	if err = e.storages.Outbox.DeleteRows(ctx, confirmed); err != nil {
		return fmt.Errorf("delete confirmed outbox rows: %w", err)
	}

	if unaccounted > 0 {
		return fmt.Errorf("%w: %d of %d", ErrUnaccountedMutations, unaccounted, len(rows))
	}
	return nil
}

// handleRejection applies the conflict-tracker rules to one rejected
// mutation. The returned bool reports whether the outbox row should be
// removed (true for recorded conflicts, false for blocked or skipped rows).
func (e *syncEngine) handleRejection(ctx context.Context, userID int64, row models.OutboxRow, rej models.RejectedMutation) (bool, error) {
	if rej.Reason != models.RejectReasonConflict {
		if err := e.storages.Outbox.MarkBlocked(ctx, row.ID, rej.Reason); err != nil {
			return false, fmt.Errorf("block rejected mutation: %w", err)
		}
		return false, nil
	}

	// a conflict marker may only be set from a snapshot that passes schema
	// validation; a malformed payload must not corrupt the cache, so the
	// whole rejection is ignored and the row stays pending
	if _, err := e.snapshots.Parse(ctx, row.Resource, rej.Server); err != nil {
		e.logger.Warn().Err(err).
			Str("func", "syncEngine.handleRejection").
			Str("resource", row.Resource).
			Str("entity_id", row.EntityID).
			Msg("conflict rejection carried an invalid server snapshot, skipping")
		return false, nil
	}

	local := row.Data
	if len(local) == 0 {
		// delete mutations carry no payload; preserve the cached copy as
		// the local side of the conflict pair
		cached, err := e.storages.Entities.Get(ctx, userID, row.Resource, row.EntityID)
		if err == nil {
			local = cached.Data
		}
	}

	if err := e.storages.Entities.SetConflict(ctx, userID, row.Resource, row.EntityID, rej.Server, local); err != nil {
		return false, fmt.Errorf("record conflict: %w", err)
	}

	e.logger.Info().
		Str("func", "syncEngine.handleRejection").
		Str("resource", row.Resource).
		Str("entity_id", row.EntityID).
		Msg("conflict recorded, mutation withdrawn")

	return true, nil
}
