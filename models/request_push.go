package models

import "encoding/json"

// PushMutation is the wire form of one outbox row inside a push batch.
type PushMutation struct {
	Resource          string          `json:"resource"`
	Op                Op              `json:"op"`
	EntityID          string          `json:"entity_id"`
	ClientUpdatedAtMs int64           `json:"client_updated_at_ms"`
	Data              json.RawMessage `json:"data,omitempty"`
}

// PushRequest is sent by the client to apply a batch of pending local
// mutations on the server. The server is the arbiter of apply order within
// the batch.
type PushRequest struct {
	Mutations []PushMutation `json:"mutations"`
}

// AppliedRef identifies one mutation the server confirmed as applied.
type AppliedRef struct {
	Resource string `json:"resource"`
	EntityID string `json:"entity_id"`
}

// Rejection reasons returned by the server. Any other value is treated the
// same as RejectReasonInvalid: the mutation is blocked, not retried.
const (
	RejectReasonConflict = "conflict"
	RejectReasonInvalid  = "invalid"
)

// RejectedMutation identifies one mutation the server refused, with the
// reason and, for conflicts, the authoritative server snapshot.
type RejectedMutation struct {
	Resource string `json:"resource"`
	EntityID string `json:"entity_id"`
	Reason   string `json:"reason"`

	// Server is the server's current version of the entity. Populated for
	// conflict rejections; nil otherwise.
	Server json.RawMessage `json:"server,omitempty"`
}

// PushResponse enumerates the per-mutation outcome of a push batch. Every
// submitted mutation must appear in exactly one of the two sets; rows absent
// from both are left pending by the client and retried next cycle.
type PushResponse struct {
	Cursor   int64              `json:"cursor"`
	Applied  []AppliedRef       `json:"applied"`
	Rejected []RejectedMutation `json:"rejected"`
}
