package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/daybook-app/daybook-client/internal/adapter"
	"github.com/daybook-app/daybook-client/internal/config"
	"github.com/daybook-app/daybook-client/internal/logger"
	"github.com/daybook-app/daybook-client/internal/netwatch"
	"github.com/daybook-app/daybook-client/internal/store"
	"github.com/daybook-app/daybook-client/internal/utils"
	"github.com/daybook-app/daybook-client/internal/validators"
	"github.com/daybook-app/daybook-client/models"
)

type syncEngine struct {
	storages  *store.ClientStorages
	server    adapter.SyncServer
	network   netwatch.NetworkObserver
	snapshots validators.SnapshotValidator
	cfg       config.ClientSync
	status    *statusPublisher
	ids       *utils.UUIDGenerator
	logger    *logger.Logger

	nowMs func() int64

	mu       sync.Mutex
	started  bool
	userID   int64
	cancel   context.CancelFunc
	netSubID string
	wg       sync.WaitGroup

	// inFlight is the single-flight guard: at most one cycle runs at a
	// time, and a trigger arriving mid-cycle is dropped, not queued.
	inFlight atomic.Bool
}

func NewSyncEngine(
	storages *store.ClientStorages,
	server adapter.SyncServer,
	network netwatch.NetworkObserver,
	snapshots validators.SnapshotValidator,
	cfg config.ClientSync,
	logger *logger.Logger,
) SyncEngine {
	return &syncEngine{
		storages:  storages,
		server:    server,
		network:   network,
		snapshots: snapshots,
		cfg:       cfg,
		status:    newStatusPublisher(),
		ids:       utils.NewUUIDGenerator(),
		logger:    logger,
		nowMs:     func() int64 { return time.Now().UnixMilli() },
	}
}

// Start implements [SyncEngine]. It binds the session to userID, subscribes
// to connectivity transitions, launches the ticker goroutine, and kicks off
// an immediate first cycle.
func (e *syncEngine) Start(ctx context.Context, userID int64) {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return
	}
	e.started = true
	e.userID = userID
	loopCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.netSubID = e.network.Subscribe(func(online bool) {
		if online {
			go func() { _ = e.SyncNow(loopCtx) }()
			return
		}
		e.status.Update(func(s *models.SyncStatus) { s.Online = false })
	})
	e.wg.Add(1)
	e.mu.Unlock()

	e.logger.Info().
		Str("func", "syncEngine.Start").
		Int64("user_id", userID).
		Dur("interval", e.cfg.Interval).
		Msg("sync engine started")

	e.refreshPending(loopCtx, userID)

	go e.run(loopCtx)
	go func() { _ = e.SyncNow(loopCtx) }()
}

// Stop implements [SyncEngine]. Safe to call on a stopped engine.
func (e *syncEngine) Stop() {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return
	}
	e.started = false
	cancel := e.cancel
	netSubID := e.netSubID
	e.mu.Unlock()

	e.network.Unsubscribe(netSubID)
	cancel()
	e.wg.Wait()

	e.logger.Info().Str("func", "syncEngine.Stop").Msg("sync engine stopped")
}

func (e *syncEngine) run(ctx context.Context) {
	defer e.wg.Done()

	t := time.NewTicker(e.cfg.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_ = e.SyncNow(ctx)
		}
	}
}

// SyncNow implements [SyncEngine]. Cycle-level errors are captured into the
// published status and returned; they never escape as panics and never stop
// the loop. The fixed ticker interval is the retry policy.
func (e *syncEngine) SyncNow(ctx context.Context) error {
	e.mu.Lock()
	started := e.started
	userID := e.userID
	e.mu.Unlock()
	if !started {
		return ErrEngineNotStarted
	}

	if !e.inFlight.CompareAndSwap(false, true) {
		return nil
	}
	defer e.inFlight.Store(false)

	if !e.network.IsOnline() {
		e.status.Update(func(s *models.SyncStatus) {
			s.Online = false
			s.Syncing = false
		})
		return nil
	}

	e.status.Update(func(s *models.SyncStatus) {
		s.Online = true
		s.Syncing = true
	})

	err := e.runCycle(ctx, userID)

	pending := e.countPending(ctx, userID)
	if err != nil {
		e.logger.Err(err).
			Str("func", "syncEngine.SyncNow").
			Int64("user_id", userID).
			Msg("sync cycle failed")
		e.status.Update(func(s *models.SyncStatus) {
			s.Syncing = false
			s.Pending = pending
			s.LastError = err.Error()
		})
		return err
	}

	e.status.Update(func(s *models.SyncStatus) {
		s.Syncing = false
		s.Pending = pending
		s.LastSyncAtMs = e.nowMs()
		s.LastError = ""
	})
	return nil
}

// runCycle executes the push phase and then the pull phase. A push failure
// does not skip the pull: the halves are independent and the other side's
// changes are still worth fetching. Both errors are reported together.
func (e *syncEngine) runCycle(ctx context.Context, userID int64) error {
	pushErr := e.push(ctx, userID)
	pullErr := e.pull(ctx, userID)
	return errors.Join(pushErr, pullErr)
}

// Status implements [SyncEngine].
func (e *syncEngine) Status() models.SyncStatus {
	return e.status.Current()
}

// Subscribe implements [SyncEngine].
func (e *syncEngine) Subscribe(fn func(models.SyncStatus)) string {
	return e.status.Subscribe(fn)
}

// Unsubscribe implements [SyncEngine].
func (e *syncEngine) Unsubscribe(id string) {
	e.status.Unsubscribe(id)
}

func (e *syncEngine) countPending(ctx context.Context, userID int64) int {
	pending, err := e.storages.Outbox.CountPending(ctx, userID)
	if err != nil {
		e.logger.Err(err).
			Str("func", "syncEngine.countPending").
			Int64("user_id", userID).
			Msg("failed to count pending outbox rows")
		return e.status.Current().Pending
	}
	return pending
}

func (e *syncEngine) refreshPending(ctx context.Context, userID int64) {
	pending := e.countPending(ctx, userID)
	e.status.Update(func(s *models.SyncStatus) { s.Pending = pending })
}

func (e *syncEngine) boundUser() (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return 0, ErrEngineNotStarted
	}
	return e.userID, nil
}

func entityKey(resource, entityID string) string {
	return fmt.Sprintf("%s/%s", resource, entityID)
}
