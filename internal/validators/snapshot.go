package validators

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/daybook-app/daybook-client/models"
)

// snapshotValidator implements [SnapshotValidator] on top of the
// go-playground struct validator and the typed schemas in models.
type snapshotValidator struct {
	validate *validator.Validate
}

func NewSnapshotValidator() SnapshotValidator {
	return &snapshotValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (v *snapshotValidator) Parse(ctx context.Context, resource string, raw json.RawMessage) (models.Snapshot, error) {
	switch resource {
	case models.ResourceNote:
		var note models.Note
		if err := v.decode(ctx, raw, &note); err != nil {
			return models.Snapshot{}, err
		}
		return models.Snapshot{EntityID: note.ID, UpdatedAtMs: note.UpdatedAtMs, Deleted: note.Deleted}, nil

	case models.ResourceTodoItem:
		var item models.TodoItem
		if err := v.decode(ctx, raw, &item); err != nil {
			return models.Snapshot{}, err
		}
		return models.Snapshot{EntityID: item.ID, UpdatedAtMs: item.UpdatedAtMs, Deleted: item.Deleted}, nil

	case models.ResourceTodoList:
		var list models.TodoList
		if err := v.decode(ctx, raw, &list); err != nil {
			return models.Snapshot{}, err
		}
		return models.Snapshot{EntityID: list.ID, UpdatedAtMs: list.UpdatedAtMs, Deleted: list.Deleted}, nil

	default:
		return models.Snapshot{}, fmt.Errorf("%w: %q", ErrUnsupportedResource, resource)
	}
}

// decode unmarshals raw into target and runs struct validation. Unknown JSON
// fields are tolerated so older clients survive server schema additions.
func (v *snapshotValidator) decode(ctx context.Context, raw json.RawMessage, target any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: empty payload", ErrInvalidSnapshot)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	if err := v.validate.StructCtx(ctx, target); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	return nil
}
