package service

import "errors"

var (
	// ErrEngineNotStarted is returned by operations that need a bound user
	// session before Start has been called.
	ErrEngineNotStarted = errors.New("sync engine not started")

	// ErrNotInConflict is returned by ResolveWithServer when the target
	// row carries no conflict marker.
	ErrNotInConflict = errors.New("entity is not in conflict")

	// ErrUnaccountedMutations means the push response failed to report an
	// outcome for every submitted mutation. The unaccounted rows stay
	// pending and are resent next cycle.
	ErrUnaccountedMutations = errors.New("push response did not account for every mutation")
)
