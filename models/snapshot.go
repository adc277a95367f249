package models

// Snapshot is the resource-independent view of a parsed entity snapshot,
// extracted from the typed schema after validation. The sync engine uses it
// to key cache writes without caring which resource it came from.
type Snapshot struct {
	// EntityID is the identifier carried inside the snapshot payload.
	EntityID string

	// UpdatedAtMs is the server-side modification time in Unix milliseconds.
	UpdatedAtMs int64

	// Deleted marks a tombstone: the entity still flows through the change
	// feed so offline clients learn about the deletion.
	Deleted bool
}
