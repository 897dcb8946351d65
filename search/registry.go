// Package search keeps per-client search boxes whose text input is
// debounced before it is applied to the catalog.
package search

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultIdleTTL is how long an untouched session is kept.
const DefaultIdleTTL = 30 * time.Minute

// Registry manages search sessions in memory.
type Registry struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	delay    time.Duration
	ttl      time.Duration
}

func NewRegistry(delay, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	return &Registry{
		sessions: make(map[string]*Session),
		delay:    delay,
		ttl:      ttl,
	}
}

// CleanupIdle closes and forgets sessions idle for longer than the TTL.
func (r *Registry) CleanupIdle() int {
	cutoff := time.Now().Add(-r.ttl)

	r.mu.Lock()
	var idle []*Session
	for id, s := range r.sessions {
		if s.idleSince(cutoff) {
			idle = append(idle, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.close()
	}
	return len(idle)
}

// Create opens a session with an optional initial category.
func (r *Registry) Create(category string) *Session {
	r.CleanupIdle()

	s := newSession(uuid.NewString(), r.delay, category, time.Now())

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		s.close()
	}
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close shuts every session down.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}
