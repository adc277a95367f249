package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/daybook-app/daybook-client/internal/logger"
	"github.com/daybook-app/daybook-client/models"
)

type outboxRepository struct {
	*DB
	logger *logger.Logger
}

func NewOutboxRepository(db *DB, logger *logger.Logger) OutboxRepository {
	return &outboxRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *outboxRepository) Enqueue(ctx context.Context, row models.OutboxRow) error {
	log := logger.FromContext(ctx)

	deleteQuery, deleteArgs, err := buildDeleteOutboxForEntityQuery(row.UserID, row.Resource, row.EntityID)
	if err != nil {
		return fmt.Errorf("%w: build delete outbox for entity query: %w", ErrStorage, err)
	}

	var data any
	if row.Data != nil {
		data = string(row.Data)
	}
	var lastError any
	if row.LastError != nil {
		lastError = *row.LastError
	}

	insertQuery, insertArgs, err := buildInsertOutboxQuery(row, data, lastError)
	if err != nil {
		return fmt.Errorf("%w: build insert outbox query: %w", ErrStorage, err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin enqueue tx: %w", ErrStorage, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		log.Err(err).
			Str("func", "outboxRepository.Enqueue").
			Int64("user_id", row.UserID).
			Str("entity_id", row.EntityID).
			Msg("failed to delete superseded outbox rows")
		return fmt.Errorf("%w: delete superseded outbox rows (entity_id=%s): %w", ErrStorage, row.EntityID, err)
	}

	if _, err = tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		log.Err(err).
			Str("func", "outboxRepository.Enqueue").
			Int64("user_id", row.UserID).
			Str("entity_id", row.EntityID).
			Msg("failed to insert outbox row")
		return fmt.Errorf("%w: insert outbox row (entity_id=%s): %w", ErrStorage, row.EntityID, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit enqueue tx: %w", ErrStorage, err)
	}

	return nil
}

func (r *outboxRepository) ListPending(ctx context.Context, userID int64, limit int) ([]models.OutboxRow, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListPendingQuery(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: build list pending query: %w", ErrStorage, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "outboxRepository.ListPending").
			Int64("user_id", userID).
			Msg("failed to execute query for pending outbox rows")
		return nil, fmt.Errorf("%w: query pending outbox rows: %w", ErrStorage, err)
	}
	defer rows.Close()

	var items []models.OutboxRow
	for rows.Next() {
		item, scanErr := scanOutboxRow(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "outboxRepository.ListPending").
				Int64("user_id", userID).
				Msg("failed to scan outbox row")
			return nil, fmt.Errorf("%w: scan outbox row: %w", ErrStorage, scanErr)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "outboxRepository.ListPending").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: iterate outbox rows: %w", ErrStorage, rowsErr)
	}

	return items, nil
}

func (r *outboxRepository) DeleteRows(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := buildDeleteOutboxRowsQuery(ids)
	if err != nil {
		return fmt.Errorf("%w: build delete outbox rows query: %w", ErrStorage, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "outboxRepository.DeleteRows").
			Int("rows", len(ids)).
			Msg("failed to delete confirmed outbox rows")
		return fmt.Errorf("%w: delete outbox rows: %w", ErrStorage, err)
	}

	return nil
}

func (r *outboxRepository) MarkBlocked(ctx context.Context, id string, reason string) error {
	query, args, err := buildMarkBlockedQuery(id, reason)
	if err != nil {
		return fmt.Errorf("%w: build mark blocked query: %w", ErrStorage, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "outboxRepository.MarkBlocked").
			Str("outbox_id", id).
			Msg("failed to mark outbox row blocked")
		return fmt.Errorf("%w: mark outbox row blocked (id=%s): %w", ErrStorage, id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: mark blocked rows affected: %w", ErrStorage, err)
	}
	if affected == 0 {
		return fmt.Errorf("mark blocked: outbox row %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *outboxRepository) CountPending(ctx context.Context, userID int64) (int, error) {
	query, args, err := buildCountPendingQuery(userID)
	if err != nil {
		return 0, fmt.Errorf("%w: build count pending query: %w", ErrStorage, err)
	}

	var count int
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "outboxRepository.CountPending").
			Int64("user_id", userID).
			Msg("failed to count pending outbox rows")
		return 0, fmt.Errorf("%w: count pending outbox rows: %w", ErrStorage, err)
	}

	return count, nil
}

func scanOutboxRow(s rowScanner) (models.OutboxRow, error) {
	var (
		item      models.OutboxRow
		op        string
		data      sql.NullString
		status    string
		lastError sql.NullString
	)

	err := s.Scan(
		&item.ID,
		&item.UserID,
		&item.Resource,
		&op,
		&item.EntityID,
		&item.ClientUpdatedAtMs,
		&data,
		&item.CreatedAtMs,
		&status,
		&lastError,
	)
	if err != nil {
		return models.OutboxRow{}, err
	}

	item.Op = models.Op(op)
	item.Status = models.OutboxStatus(status)
	if data.Valid {
		item.Data = []byte(data.String)
	}
	if lastError.Valid {
		item.LastError = &lastError.String
	}

	return item, nil
}
