package models

// SyncStatus is the observable snapshot of sync health consumed by the UI.
// It is rebuilt each session and never persisted.
type SyncStatus struct {
	// Online reflects the last known connectivity state.
	Online bool `json:"online"`

	// Syncing is true while a push-then-pull cycle is in flight.
	Syncing bool `json:"syncing"`

	// Pending is the number of outbox rows waiting to be pushed.
	Pending int `json:"pending"`

	// LastSyncAtMs is the completion time of the last successful cycle, in
	// Unix milliseconds; zero if no cycle has succeeded yet.
	LastSyncAtMs int64 `json:"last_sync_at_ms"`

	// LastError is a human-readable description of the last cycle failure,
	// empty after a successful cycle.
	LastError string `json:"last_error"`
}
