package service

import (
	"sync"

	"github.com/daybook-app/daybook-client/internal/utils"
	"github.com/daybook-app/daybook-client/models"
)

// statusPublisher holds the observable sync status and fans out every change
// to subscribers. Callbacks run synchronously on the mutating goroutine and
// are expected to be cheap; a new subscriber immediately receives the current
// snapshot so it is never stale.
type statusPublisher struct {
	ids *utils.UUIDGenerator

	mu      sync.Mutex
	current models.SyncStatus
	subs    map[string]func(models.SyncStatus)
}

func newStatusPublisher() *statusPublisher {
	return &statusPublisher{
		ids:  utils.NewUUIDGenerator(),
		subs: make(map[string]func(models.SyncStatus)),
	}
}

func (p *statusPublisher) Current() models.SyncStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *statusPublisher) Subscribe(fn func(models.SyncStatus)) string {
	id := p.ids.Generate()

	p.mu.Lock()
	p.subs[id] = fn
	snapshot := p.current
	p.mu.Unlock()

	fn(snapshot)
	return id
}

func (p *statusPublisher) Unsubscribe(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.subs, id)
}

// Update applies mutate to the current status and notifies all subscribers
// with the result.
func (p *statusPublisher) Update(mutate func(*models.SyncStatus)) {
	p.mu.Lock()
	mutate(&p.current)
	snapshot := p.current
	notify := make([]func(models.SyncStatus), 0, len(p.subs))
	for _, fn := range p.subs {
		notify = append(notify, fn)
	}
	p.mu.Unlock()

	for _, fn := range notify {
		fn(snapshot)
	}
}
