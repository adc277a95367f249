// Package adapter provides transport-layer abstractions for communicating with
// the Daybook sync server.
//
// The primary abstraction is [SyncServer], which decouples the sync engine
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPSyncServer]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrUnauthorized] for 401, [ErrUnavailable] for a dead
// backend).
package adapter

import (
	"context"

	"github.com/daybook-app/daybook-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/sync_server_mock.go -package=mock

// SyncServer defines transport-agnostic communication with the Daybook sync
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
type SyncServer interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Push uploads a batch of local mutations in outbox order. The server
	// applies each mutation independently and reports it back exactly once,
	// either in Applied or in Rejected. Returns an error if the request
	// fails as a whole; in that case nothing is known about individual
	// mutations and the caller must treat the batch as not delivered.
	Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error)

	// Pull requests one page of the change feed starting after cursor.
	// limit caps the page size. The response carries the next cursor and
	// whether more pages remain.
	Pull(ctx context.Context, cursor int64, limit int) (models.PullResponse, error)

	// Ping performs a cheap reachability check against the server. A nil
	// return means the server answered; any error means it is unreachable
	// or unhealthy.
	Ping(ctx context.Context) error
}
