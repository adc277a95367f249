package netwatch

import (
	"context"
	"sync"
	"time"

	"github.com/daybook-app/daybook-client/internal/logger"
	"github.com/daybook-app/daybook-client/internal/utils"
)

// ProbeObserver implements [NetworkObserver] by pinging the server on a fixed
// interval. The first probe runs immediately on Start, so the observer
// settles into the real state without waiting a full interval.
type ProbeObserver struct {
	pinger   Pinger
	interval time.Duration
	ids      *utils.UUIDGenerator
	logger   *logger.Logger

	mu      sync.RWMutex
	online  bool
	subs    map[string]func(bool)
	started bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewProbeObserver(pinger Pinger, interval time.Duration, logger *logger.Logger) *ProbeObserver {
	return &ProbeObserver{
		pinger:   pinger,
		interval: interval,
		ids:      utils.NewUUIDGenerator(),
		logger:   logger,
		subs:     make(map[string]func(bool)),
	}
}

// Start launches the probe loop. Calling Start on a running observer is a
// no-op.
func (o *ProbeObserver) Start(ctx context.Context) {
	o.mu.Lock()
	if o.started {
		o.mu.Unlock()
		return
	}
	o.started = true
	ctx, o.cancel = context.WithCancel(ctx)
	o.mu.Unlock()

	o.wg.Add(1)
	go o.run(ctx)
}

// Stop cancels the probe loop and waits for it to exit.
func (o *ProbeObserver) Stop() {
	o.mu.Lock()
	if !o.started {
		o.mu.Unlock()
		return
	}
	o.started = false
	cancel := o.cancel
	o.mu.Unlock()

	cancel()
	o.wg.Wait()
}

func (o *ProbeObserver) IsOnline() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.online
}

func (o *ProbeObserver) Subscribe(fn func(online bool)) string {
	id := o.ids.Generate()

	o.mu.Lock()
	defer o.mu.Unlock()
	o.subs[id] = fn

	return id
}

func (o *ProbeObserver) Unsubscribe(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.subs, id)
}

func (o *ProbeObserver) run(ctx context.Context) {
	defer o.wg.Done()

	o.probe(ctx)

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.probe(ctx)
		}
	}
}

func (o *ProbeObserver) probe(ctx context.Context) {
	err := o.pinger.Ping(ctx)
	if ctx.Err() != nil {
		return
	}

	online := err == nil

	o.mu.Lock()
	if o.online == online {
		o.mu.Unlock()
		return
	}
	o.online = online

	notify := make([]func(bool), 0, len(o.subs))
	for _, fn := range o.subs {
		notify = append(notify, fn)
	}
	o.mu.Unlock()

	o.logger.Info().
		Str("func", "ProbeObserver.probe").
		Bool("online", online).
		Msg("connectivity changed")

	for _, fn := range notify {
		fn(online)
	}
}
