// Package netwatch tracks whether the sync server is reachable.
//
// The client has no ambient "online" signal to listen to, so reachability is
// established the only honest way available: by periodically probing the
// server's health endpoint. Subscribers are notified on every transition and
// can trigger work (e.g. an immediate sync) when connectivity returns.
package netwatch

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/network_observer_mock.go -package=mock

// NetworkObserver reports current connectivity and notifies subscribers on
// online/offline transitions.
type NetworkObserver interface {
	// IsOnline returns the result of the most recent probe. Before the
	// first probe completes the observer reports offline.
	IsOnline() bool

	// Subscribe registers fn to be called with the new state on every
	// transition and returns a subscription id for Unsubscribe. fn is
	// called from the observer's goroutine and must not block.
	Subscribe(fn func(online bool)) string

	// Unsubscribe removes the subscription with the given id. Unknown ids
	// are ignored, so it is safe to call twice.
	Unsubscribe(id string)
}

// Pinger is the probe target. The transport adapter satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}
