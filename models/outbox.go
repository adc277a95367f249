package models

import "encoding/json"

// Op is the kind of mutation recorded in the outbox.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// OutboxStatus is the lifecycle state of an outbox row.
type OutboxStatus string

const (
	// OutboxPending rows are eligible for the next push batch.
	OutboxPending OutboxStatus = "pending"
	// OutboxBlocked rows were rejected by the server for a non-conflict
	// reason and are excluded from pushing until explicitly re-enqueued.
	OutboxBlocked OutboxStatus = "blocked"
)

// Mutation is a local write intent as produced by the feature layer: one
// operation against one entity. The engine stamps UserID and the client
// logical clock before it is persisted.
type Mutation struct {
	Resource string          `json:"resource"`
	Op       Op              `json:"op"`
	EntityID string          `json:"entity_id"`
	Data     json.RawMessage `json:"data"`
}

// OutboxRow is one durable record of an intended mutation not yet confirmed
// by the server. At most one pending row exists per (user, resource, entity):
// a newer mutation against the same entity replaces the previous pending row.
type OutboxRow struct {
	// ID is a client-generated UUID identifying this row.
	ID string `json:"id"`

	UserID   int64  `json:"user_id"`
	Resource string `json:"resource"`
	Op       Op     `json:"op"`
	EntityID string `json:"entity_id"`

	// ClientUpdatedAtMs is the client-side logical clock used by the server
	// for the optimistic-concurrency comparison.
	ClientUpdatedAtMs int64 `json:"client_updated_at_ms"`

	// Data is the mutation payload; nil for deletes.
	Data json.RawMessage `json:"data,omitempty"`

	CreatedAtMs int64        `json:"created_at_ms"`
	Status      OutboxStatus `json:"status"`

	// LastError records the server's rejection reason when Status is blocked.
	LastError *string `json:"last_error,omitempty"`
}
