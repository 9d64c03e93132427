package httpapi

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/cyberhygiene/internal/challenge"
)

// DefaultSessionTTL is how long an untouched challenge survives.
const DefaultSessionTTL = 30 * time.Minute

// session pairs a challenge with the lock that serializes its requests.
type session struct {
	mu       sync.Mutex
	c        *challenge.Challenge
	lastUsed time.Time
}

// Registry holds live challenges keyed by ID.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

// NewRegistry creates an empty registry. A ttl of zero disables eviction.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// add registers c and returns its session.
func (r *Registry) add(c *challenge.Challenge) *session {
	s := &session{c: c, lastUsed: r.now()}
	r.mu.Lock()
	r.sessions[c.ID] = s
	r.mu.Unlock()
	return s
}

// get looks up a session and marks it used.
func (r *Registry) get(id string) (*session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if ok {
		s.lastUsed = r.now()
	}
	return s, ok
}

// Remove abandons and drops a session. It reports whether id was known.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.mu.Lock()
		s.c.Abandon()
		s.mu.Unlock()
	}
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many
// were removed.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)

	var stale []*session
	r.mu.Lock()
	for id, s := range r.sessions {
		if s.lastUsed.Before(cutoff) {
			stale = append(stale, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range stale {
		s.mu.Lock()
		s.c.Abandon()
		s.mu.Unlock()
	}
	return len(stale)
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if r.ttl <= 0 || interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(); n > 0 {
				slog.Info("evicted idle challenges", "count", n, "live", r.Len())
			}
		}
	}
}
