package wizard

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"coursehub/backend/storage"
)

// Registry keeps the wizards started over HTTP, keyed by a random id.
// Entries idle for longer than the TTL are dropped; a zero TTL keeps them
// until removed.
type Registry struct {
	mu    sync.RWMutex
	flows map[string]*entry
	ttl   time.Duration
	now   func() time.Time
}

type entry struct {
	flow    Flow
	touched time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		flows: make(map[string]*entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Start registers f and returns its id. Expired wizards are swept first.
func (r *Registry) Start(f Flow) string {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.sweep(now)
	r.flows[id] = &entry{flow: f, touched: now}
	return id
}

// Get returns the wizard and marks it as used.
func (r *Registry) Get(id string) (Flow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	e, ok := r.flows[id]
	if ok && r.expired(e, now) {
		delete(r.flows, id)
		ok = false
	}
	if !ok {
		return nil, fmt.Errorf("wizard %s: %w", id, storage.ErrNotFound)
	}
	e.touched = now
	return e.flow, nil
}

// Remove discards a wizard. Unknown ids report ErrNotFound.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.flows[id]; !ok {
		return fmt.Errorf("wizard %s: %w", id, storage.ErrNotFound)
	}
	delete(r.flows, id)
	return nil
}

func (r *Registry) sweep(now time.Time) {
	for id, e := range r.flows {
		if r.expired(e, now) {
			delete(r.flows, id)
		}
	}
}

func (r *Registry) expired(e *entry, now time.Time) bool {
	return r.ttl > 0 && now.Sub(e.touched) > r.ttl
}
