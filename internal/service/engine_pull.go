package service

import (
	"context"
	"fmt"

	"github.com/daybook-app/daybook-client/models"
)

// pull consumes the server change feed from the persisted cursor, applying
// each page transactionally and advancing the cursor only after the page is
// durably cached. Reprocessing a page after a crash is safe: application is
// an idempotent upsert.
func (e *syncEngine) pull(ctx context.Context, userID int64) error {
	cursor, err := e.storages.Cursor.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("load pull cursor: %w", err)
	}

	for page := 0; page < e.cfg.PullMaxPages; page++ {
		resp, err := e.server.Pull(ctx, cursor, e.cfg.PullLimit)
		if err != nil {
			return fmt.Errorf("pull page: %w", err)
		}

		rows := e.collectPageRows(ctx, userID, resp)
		if err = e.storages.Entities.UpsertBatch(ctx, rows); err != nil {
			return fmt.Errorf("apply pull page: %w", err)
		}
		if err = e.storages.Cursor.Advance(ctx, userID, resp.NextCursor); err != nil {
			return fmt.Errorf("advance pull cursor: %w", err)
		}
		cursor = resp.NextCursor

		if !resp.HasMore {
			return nil
		}
	}

	e.logger.Warn().
		Str("func", "syncEngine.pull").
		Int("pages", e.cfg.PullMaxPages).
		Msg("pull page cap reached, remaining changes deferred to next cycle")
	return nil
}

// collectPageRows converts one feed page into cache rows. Records that fail
// schema validation are skipped individually; the rest of the page still
// applies.
func (e *syncEngine) collectPageRows(ctx context.Context, userID int64, resp models.PullResponse) []models.EntityRow {
	var rows []models.EntityRow
	for plural, raws := range resp.Changes {
		resource := models.ResourceFromPlural(plural)
		if resource == "" {
			e.logger.Warn().
				Str("func", "syncEngine.collectPageRows").
				Str("key", plural).
				Msg("change feed carried an unknown resource, skipping")
			continue
		}

		for _, raw := range raws {
			snap, err := e.snapshots.Parse(ctx, resource, raw)
			if err != nil {
				e.logger.Warn().Err(err).
					Str("func", "syncEngine.collectPageRows").
					Str("resource", resource).
					Msg("malformed entity in change feed, skipping")
				continue
			}

			rows = append(rows, models.EntityRow{
				UserID:           userID,
				Resource:         resource,
				EntityID:         snap.EntityID,
				Data:             raw,
				LocalStatus:      models.StatusClean,
				LocalUpdatedAtMs: e.nowMs(),
			})
		}
	}
	return rows
}
