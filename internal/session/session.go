// Package session keeps per-browser-session state in memory. Nothing here
// outlives the process: an expired or unknown session starts empty.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"gradjobs/internal/filter"
	"gradjobs/internal/tracker"
)

// Session is one visitor's tracker and filter selection.
type Session struct {
	ID      string
	Tracker *tracker.Store
	Filter  *filter.Selection
	Created time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// LastSeen returns the last time the session was touched.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(t time.Time) {
	s.mu.Lock()
	s.lastSeen = t
	s.mu.Unlock()
}

// NewID returns a fresh session identifier.
func NewID() string { return uuid.NewString() }

// Registry maps session IDs to sessions.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
	opts     []tracker.Option
}

// NewRegistry returns an empty registry. Tracker options are applied to
// every store it creates.
func NewRegistry(opts ...tracker.Option) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		now:      time.Now,
		opts:     opts,
	}
}

// SetClock overrides time.Now for last-seen bookkeeping.
func (r *Registry) SetClock(now func() time.Time) {
	r.mu.Lock()
	r.now = now
	r.mu.Unlock()
}

// Get returns the session for id, creating an empty one if needed, and
// marks it as seen.
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	s, ok := r.sessions[id]
	if !ok {
		s = &Session{
			ID:      id,
			Tracker: tracker.NewStore(r.opts...),
			Filter:  filter.NewSelection(filter.DefaultSegment),
			Created: now,
		}
		r.sessions[id] = s
	}
	s.touch(now)
	return s
}

// Lookup returns an existing session without creating or touching it.
func (r *Registry) Lookup(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Sweep drops sessions idle for longer than idle and returns how many were
// removed.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	removed := 0
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
