// Package service contains the sync engine: the coordinator that drives
// push-then-pull cycles between the local store and the sync server, the
// conflict bookkeeping around push rejections, and the observable status
// published to the UI.
package service

import (
	"context"

	"github.com/daybook-app/daybook-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/sync_engine_mock.go -package=mock

// SyncEngine owns one user session's synchronization state. An engine is
// constructed per authenticated session; independent engines do not share
// state, which keeps multi-account setups and tests straightforward.
type SyncEngine interface {
	// Start binds the engine to userID and launches the background loop:
	// an immediate first cycle, a fixed-interval ticker, and a trigger on
	// every offline-to-online transition. Calling Start on a running
	// engine is a no-op.
	Start(ctx context.Context, userID int64)

	// Stop cancels future triggers and deregisters the connectivity
	// listener, then waits for the loop goroutine to exit. An in-flight
	// cycle is allowed to finish so storage is never left half-applied.
	Stop()

	// SyncNow runs one push-then-pull cycle immediately. If a cycle is
	// already in flight the trigger is dropped and SyncNow returns nil;
	// the ticker retries naturally. If the device is offline the cycle is
	// skipped and status reports online=false. The returned error is also
	// recorded in the published status.
	SyncNow(ctx context.Context) error

	// Enqueue applies a local mutation optimistically: the cache row is
	// updated (clearing a conflict marker it may carry, since a fresh
	// mutation supersedes the conflict) and a pending outbox row replaces
	// any previous row for the same entity. Local writes always succeed
	// regardless of connectivity.
	Enqueue(ctx context.Context, m models.Mutation) error

	// ResolveWithServer resolves a conflicted entity by adopting the
	// stored server snapshot wholesale: the marker is cleared and the
	// cache row is rewritten from the server version. Returns
	// [ErrNotInConflict] if the row carries no marker.
	ResolveWithServer(ctx context.Context, resource, entityID string) error

	// Status returns the current sync status snapshot.
	Status() models.SyncStatus

	// Subscribe registers fn for status updates and synchronously replays
	// the current status, so a late subscriber is never stale. Returns a
	// subscription id.
	Subscribe(fn func(models.SyncStatus)) string

	// Unsubscribe removes a subscription. Unknown ids are ignored.
	Unsubscribe(id string)
}
