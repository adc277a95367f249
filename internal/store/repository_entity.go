package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/daybook-app/daybook-client/internal/logger"
	"github.com/daybook-app/daybook-client/models"
)

type entityRepository struct {
	*DB
	logger *logger.Logger
}

func NewEntityRepository(db *DB, logger *logger.Logger) EntityRepository {
	return &entityRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *entityRepository) Get(ctx context.Context, userID int64, resource, entityID string) (models.EntityRow, error) {
	query, args, err := buildGetEntityQuery(userID, resource, entityID)
	if err != nil {
		return models.EntityRow{}, fmt.Errorf("%w: build get entity query: %w", ErrStorage, err)
	}

	row, err := scanEntityRow(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.EntityRow{}, fmt.Errorf("entity %s/%s: %w", resource, entityID, ErrNotFound)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "entityRepository.Get").
			Int64("user_id", userID).
			Str("entity_id", entityID).
			Msg("failed to scan entity row")
		return models.EntityRow{}, fmt.Errorf("%w: get entity (entity_id=%s): %w", ErrStorage, entityID, err)
	}

	return row, nil
}

func (r *entityRepository) GetAll(ctx context.Context, userID int64) ([]models.EntityRow, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetAllEntitiesQuery(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: build list entities query: %w", ErrStorage, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.GetAll").
			Int64("user_id", userID).
			Msg("failed to execute query for getting all entities")
		return nil, fmt.Errorf("%w: query all entities: %w", ErrStorage, err)
	}
	defer rows.Close()

	var items []models.EntityRow
	for rows.Next() {
		item, scanErr := scanEntityRow(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "entityRepository.GetAll").
				Int64("user_id", userID).
				Msg("failed to scan entity row")
			return nil, fmt.Errorf("%w: scan entity row: %w", ErrStorage, scanErr)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "entityRepository.GetAll").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: iterate entity rows: %w", ErrStorage, rowsErr)
	}

	return items, nil
}

func (r *entityRepository) Upsert(ctx context.Context, row models.EntityRow) error {
	query, args, err := buildUpsertEntityQuery(row)
	if err != nil {
		return fmt.Errorf("%w: build upsert entity query: %w", ErrStorage, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "entityRepository.Upsert").
			Int64("user_id", row.UserID).
			Str("entity_id", row.EntityID).
			Msg("failed to execute upsert for entity")
		return fmt.Errorf("%w: upsert entity (entity_id=%s): %w", ErrStorage, row.EntityID, err)
	}

	return nil
}

func (r *entityRepository) UpsertBatch(ctx context.Context, rows []models.EntityRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin upsert batch tx: %w", ErrStorage, err)
	}
	defer tx.Rollback()

	for _, row := range rows {
		query, args, buildErr := buildUpsertEntityQuery(row)
		if buildErr != nil {
			return fmt.Errorf("%w: build upsert entity query: %w", ErrStorage, buildErr)
		}
		if _, execErr := tx.ExecContext(ctx, query, args...); execErr != nil {
			logger.FromContext(ctx).Err(execErr).
				Str("func", "entityRepository.UpsertBatch").
				Int64("user_id", row.UserID).
				Str("entity_id", row.EntityID).
				Msg("failed to execute upsert inside batch")
			return fmt.Errorf("%w: upsert entity in batch (entity_id=%s): %w", ErrStorage, row.EntityID, execErr)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit upsert batch: %w", ErrStorage, err)
	}

	return nil
}

func (r *entityRepository) SetLocalStatus(ctx context.Context, userID int64, resource, entityID string, status models.LocalStatus) error {
	query, args, err := buildSetLocalStatusQuery(userID, resource, entityID, status)
	if err != nil {
		return fmt.Errorf("%w: build set local status query: %w", ErrStorage, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: set local status (entity_id=%s): %w", ErrStorage, entityID, err)
	}

	return nil
}

func (r *entityRepository) SetConflict(ctx context.Context, userID int64, resource, entityID string, server, local json.RawMessage) error {
	query, args, err := buildSetConflictQuery(userID, resource, entityID, string(server), string(local))
	if err != nil {
		return fmt.Errorf("%w: build set conflict query: %w", ErrStorage, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "entityRepository.SetConflict").
			Int64("user_id", userID).
			Str("entity_id", entityID).
			Msg("failed to execute set conflict for entity")
		return fmt.Errorf("%w: set conflict (entity_id=%s): %w", ErrStorage, entityID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: set conflict rows affected: %w", ErrStorage, err)
	}
	if affected == 0 {
		return fmt.Errorf("set conflict: entity %s/%s: %w", resource, entityID, ErrNotFound)
	}

	return nil
}

func (r *entityRepository) ClearConflict(ctx context.Context, userID int64, resource, entityID string) error {
	query, args, err := buildClearConflictQuery(userID, resource, entityID)
	if err != nil {
		return fmt.Errorf("%w: build clear conflict query: %w", ErrStorage, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "entityRepository.ClearConflict").
			Int64("user_id", userID).
			Str("entity_id", entityID).
			Msg("failed to execute clear conflict for entity")
		return fmt.Errorf("%w: clear conflict (entity_id=%s): %w", ErrStorage, entityID, err)
	}

	return nil
}

func (r *entityRepository) DeleteByUser(ctx context.Context, userID int64) error {
	query, args, err := buildDeleteEntitiesByUserQuery(userID)
	if err != nil {
		return fmt.Errorf("%w: build delete entities query: %w", ErrStorage, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: delete entities (user_id=%d): %w", ErrStorage, userID, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntityRow(s rowScanner) (models.EntityRow, error) {
	var (
		item           models.EntityRow
		data           string
		status         string
		serverSnapshot sql.NullString
		localSnapshot  sql.NullString
	)

	err := s.Scan(
		&item.UserID,
		&item.Resource,
		&item.EntityID,
		&data,
		&status,
		&item.LocalUpdatedAtMs,
		&serverSnapshot,
		&localSnapshot,
	)
	if err != nil {
		return models.EntityRow{}, err
	}

	item.Data = json.RawMessage(data)
	item.LocalStatus = models.LocalStatus(status)
	if serverSnapshot.Valid {
		item.ConflictServer = json.RawMessage(serverSnapshot.String)
	}
	if localSnapshot.Valid {
		item.ConflictLocal = json.RawMessage(localSnapshot.String)
	}

	return item, nil
}
