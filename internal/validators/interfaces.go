// Package validators provides schema validation for the entity snapshots
// carried by the sync protocol.
//
// Server data enters the client from two places: change feed pages and the
// server snapshots attached to push rejections. Both are untrusted JSON; a
// snapshot that does not satisfy its resource schema must never reach the
// local cache. [SnapshotValidator] is the single gate for that rule.
package validators

import (
	"context"
	"encoding/json"

	"github.com/daybook-app/daybook-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/snapshot_validator_mock.go -package=mock

// SnapshotValidator parses and validates raw entity snapshots against the
// schema of their resource.
type SnapshotValidator interface {
	// Parse decodes raw as a snapshot of the given resource, validates it,
	// and returns the resource-independent view. Returns
	// [ErrUnsupportedResource] for an unknown resource tag and a wrapped
	// [ErrInvalidSnapshot] when the payload does not satisfy the schema.
	Parse(ctx context.Context, resource string, raw json.RawMessage) (models.Snapshot, error)
}
