package validators

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook-client/models"
)

func TestSnapshotValidator_Parse(t *testing.T) {
	v := NewSnapshotValidator()
	ctx := context.Background()

	tests := []struct {
		name     string
		resource string
		raw      string
		want     models.Snapshot
		wantErr  error
	}{
		{
			name:     "valid note",
			resource: models.ResourceNote,
			raw:      `{"id":"note-1","title":"groceries","body":"milk","updated_at_ms":900}`,
			want:     models.Snapshot{EntityID: "note-1", UpdatedAtMs: 900},
		},
		{
			name:     "note tombstone",
			resource: models.ResourceNote,
			raw:      `{"id":"note-1","updated_at_ms":950,"deleted":true}`,
			want:     models.Snapshot{EntityID: "note-1", UpdatedAtMs: 950, Deleted: true},
		},
		{
			name:     "valid todo item with rule",
			resource: models.ResourceTodoItem,
			raw:      `{"id":"item-1","list_id":"list-1","title":"water plants","rule":"FREQ=WEEKLY","updated_at_ms":100}`,
			want:     models.Snapshot{EntityID: "item-1", UpdatedAtMs: 100},
		},
		{
			name:     "valid todo list",
			resource: models.ResourceTodoList,
			raw:      `{"id":"list-1","name":"home","updated_at_ms":10}`,
			want:     models.Snapshot{EntityID: "list-1", UpdatedAtMs: 10},
		},
		{
			name:     "unknown fields tolerated",
			resource: models.ResourceNote,
			raw:      `{"id":"note-1","updated_at_ms":1,"color":"red"}`,
			want:     models.Snapshot{EntityID: "note-1", UpdatedAtMs: 1},
		},
		{
			name:     "note missing id",
			resource: models.ResourceNote,
			raw:      `{"title":"no id","updated_at_ms":1}`,
			wantErr:  ErrInvalidSnapshot,
		},
		{
			name:     "todo item missing list id",
			resource: models.ResourceTodoItem,
			raw:      `{"id":"item-1","updated_at_ms":1}`,
			wantErr:  ErrInvalidSnapshot,
		},
		{
			name:     "negative timestamp",
			resource: models.ResourceNote,
			raw:      `{"id":"note-1","updated_at_ms":-5}`,
			wantErr:  ErrInvalidSnapshot,
		},
		{
			name:     "malformed json",
			resource: models.ResourceNote,
			raw:      `{"id":`,
			wantErr:  ErrInvalidSnapshot,
		},
		{
			name:     "empty payload",
			resource: models.ResourceNote,
			raw:      ``,
			wantErr:  ErrInvalidSnapshot,
		},
		{
			name:     "unknown resource",
			resource: "calendar_event",
			raw:      `{"id":"x"}`,
			wantErr:  ErrUnsupportedResource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Parse(ctx, tt.resource, json.RawMessage(tt.raw))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
