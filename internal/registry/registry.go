// Package registry owns the process-wide mapping from room code to
// room. It is the single point of concurrency control across rooms:
// create, lookup and remove are atomic with respect to each other, and
// room code collisions are retried rather than clobbering an existing
// room.
package registry

import (
	"context"
	"fmt"
	"time"

	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/perudohq/perudod/internal/game"
)

const createAttempts = 16

// Registry tracks active rooms.
type Registry struct {
	logger   *log.Logger
	clock    quartz.Clock
	generate func() string
	idleTTL  time.Duration

	mu    sync.RWMutex
	rooms map[string]*entry
}

type entry struct {
	room       *game.Room
	lastActive time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithIdleTTL sets how long a room may go untouched before the reaper
// removes it. Zero disables idle reaping.
func WithIdleTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		r.idleTTL = ttl
	}
}

// New creates a registry. generate supplies candidate room codes; a nil
// clock uses the real one.
func New(logger *log.Logger, clock quartz.Clock, generate func() string, opts ...Option) *Registry {
	if clock == nil {
		clock = quartz.NewReal()
	}
	r := &Registry{
		logger:   logger.WithPrefix("registry"),
		clock:    clock,
		generate: generate,
		idleTTL:  30 * time.Minute,
		rooms:    make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create allocates a fresh room code, builds a room for it and inserts
// it, all under the lock so a concurrent lookup can never observe a
// half-created room. Collisions with live rooms are retried.
func (r *Registry) Create(build func(id string) *game.Room) (*game.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i < createAttempts; i++ {
		id := r.generate()
		if _, taken := r.rooms[id]; taken {
			continue
		}
		room := build(id)
		r.rooms[id] = &entry{room: room, lastActive: r.clock.Now()}
		r.logger.Info("Room created", "room", id, "active", len(r.rooms))
		return room, nil
	}
	return nil, fmt.Errorf("could not allocate a room code after %d attempts", createAttempts)
}

// Get looks up a room by code.
func (r *Registry) Get(id string) (*game.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rooms[id]
	if !ok {
		return nil, false
	}
	return e.room, true
}

// Touch records activity on a room so the idle reaper leaves it alone.
func (r *Registry) Touch(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.rooms[id]; ok {
		e.lastActive = r.clock.Now()
	}
}

// Remove drops a room from the registry.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[id]; ok {
		delete(r.rooms, id)
		r.logger.Info("Room removed", "room", id, "active", len(r.rooms))
	}
}

// Len returns the number of active rooms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// Run sweeps abandoned rooms until ctx is cancelled. A room is
// abandoned when it has gone idleTTL without a Touch; this catches
// rooms whose every connection vanished without a clean leave.
func (r *Registry) Run(ctx context.Context) {
	if r.idleTTL <= 0 {
		<-ctx.Done()
		return
	}
	interval := r.idleTTL / 4
	if interval < time.Second {
		interval = time.Second
	}
	waiter := r.clock.TickerFunc(ctx, interval, func() error {
		r.sweep()
		return nil
	}, "registry_reaper")
	_ = waiter.Wait()
}

func (r *Registry) sweep() {
	cutoff := r.clock.Now().Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.rooms {
		if e.lastActive.Before(cutoff) {
			delete(r.rooms, id)
			r.logger.Info("Reaped idle room", "room", id, "idle_since", e.lastActive)
		}
	}
}
