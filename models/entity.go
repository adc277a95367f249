package models

import "encoding/json"

// Resource tags for the entity types carried by the sync protocol.
const (
	ResourceNote     = "note"
	ResourceTodoItem = "todo_item"
	ResourceTodoList = "todo_list"
)

// LocalStatus describes the sync state of a locally cached entity.
type LocalStatus string

const (
	// StatusClean means the cached copy matches the last known server state.
	StatusClean LocalStatus = "clean"
	// StatusQueued means a local mutation for this entity is waiting in the outbox.
	StatusQueued LocalStatus = "queued"
	// StatusConflict means a push for this entity was rejected because the
	// server holds a newer version; both versions are retained on the row.
	StatusConflict LocalStatus = "conflict"
)

// ResourcePlural maps a resource tag to the plural key used in the pull
// change feed (e.g. "note" -> "notes"). Returns the empty string for an
// unknown resource.
func ResourcePlural(resource string) string {
	switch resource {
	case ResourceNote:
		return "notes"
	case ResourceTodoItem:
		return "todo_items"
	case ResourceTodoList:
		return "todo_lists"
	}
	return ""
}

// ResourceFromPlural is the inverse of [ResourcePlural].
func ResourceFromPlural(plural string) string {
	switch plural {
	case "notes":
		return ResourceNote
	case "todo_items":
		return ResourceTodoItem
	case "todo_lists":
		return ResourceTodoList
	}
	return ""
}

// EntityRow is a locally cached copy of one server entity. Exactly one row
// exists per (user_id, resource, entity_id); the entity payload itself is
// opaque to the sync engine.
type EntityRow struct {
	// UserID is the owner partition key, enabling multi-account caching on
	// one device.
	UserID int64 `json:"user_id"`

	// Resource is the entity type tag (see Resource* constants).
	Resource string `json:"resource"`

	// EntityID is the server-assigned entity identifier.
	EntityID string `json:"entity_id"`

	// Data is the entity's own attributes, stored verbatim.
	Data json.RawMessage `json:"data"`

	// LocalStatus is clean, queued or conflict.
	LocalStatus LocalStatus `json:"local_status"`

	// LocalUpdatedAtMs is the time of the last local cache write, in Unix
	// milliseconds.
	LocalUpdatedAtMs int64 `json:"local_updated_at_ms"`

	// ConflictServer is the authoritative server snapshot, populated only
	// when LocalStatus is conflict.
	ConflictServer json.RawMessage `json:"conflict_server_snapshot,omitempty"`

	// ConflictLocal is the pre-conflict local snapshot retained for a merge
	// UI, populated only when LocalStatus is conflict.
	ConflictLocal json.RawMessage `json:"conflict_local_snapshot,omitempty"`
}

// InConflict reports whether the row carries a conflict marker.
func (e *EntityRow) InConflict() bool {
	return e.LocalStatus == StatusConflict
}
