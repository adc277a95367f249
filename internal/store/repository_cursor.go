package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/daybook-app/daybook-client/internal/logger"
)

type cursorRepository struct {
	*DB
	logger *logger.Logger
}

func NewCursorRepository(db *DB, logger *logger.Logger) CursorRepository {
	return &cursorRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *cursorRepository) Get(ctx context.Context, userID int64) (int64, error) {
	query, args, err := buildGetCursorQuery(userID)
	if err != nil {
		return 0, fmt.Errorf("%w: build get cursor query: %w", ErrStorage, err)
	}

	var cursor int64
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&cursor)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "cursorRepository.Get").
			Int64("user_id", userID).
			Msg("failed to read sync cursor")
		return 0, fmt.Errorf("%w: get cursor (user_id=%d): %w", ErrStorage, userID, err)
	}

	return cursor, nil
}

func (r *cursorRepository) Advance(ctx context.Context, userID int64, cursor int64) error {
	query, args, err := buildAdvanceCursorQuery(userID, cursor)
	if err != nil {
		return fmt.Errorf("%w: build advance cursor query: %w", ErrStorage, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "cursorRepository.Advance").
			Int64("user_id", userID).
			Int64("cursor", cursor).
			Msg("failed to advance sync cursor")
		return fmt.Errorf("%w: advance cursor (user_id=%d): %w", ErrStorage, userID, err)
	}

	return nil
}
