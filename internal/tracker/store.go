package tracker

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// TrackedJob links a catalog slug to an application status.
type TrackedJob struct {
	ID          string     `json:"id"`
	JobSlug     string     `json:"jobSlug"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	DateApplied *time.Time `json:"dateApplied,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// Store is one session's tracker. Entries are kept most-recent-first: Add
// prepends. There is at most one entry per slug.
//
// Every operation is total: missing slugs are no-ops, never errors.
type Store struct {
	mu   sync.RWMutex
	jobs []TrackedJob
	now  func() time.Time
	ids  func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs overrides the UUID generator.
func WithIDs(gen func() string) Option {
	return func(s *Store) { s.ids = gen }
}

// NewStore returns an empty tracker.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now: time.Now,
		ids: func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) index(slug string) int {
	for i := range s.jobs {
		if s.jobs[i].JobSlug == slug {
			return i
		}
	}
	return -1
}

// Add starts tracking slug at StatusInterested. If slug is already tracked the
// existing entry is returned with added=false.
func (s *Store) Add(slug string) (job TrackedJob, added bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(slug); i >= 0 {
		return s.jobs[i], false
	}

	job = TrackedJob{
		ID:        s.ids(),
		JobSlug:   slug,
		Status:    StatusInterested,
		CreatedAt: s.now(),
	}
	s.jobs = append([]TrackedJob{job}, s.jobs...)
	return job, true
}

// Remove stops tracking slug. It reports whether an entry was deleted.
func (s *Store) Remove(slug string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(slug)
	if i < 0 {
		return false
	}
	s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
	return true
}

// UpdateStatus moves slug to status.
//
// Moving to applied stamps DateApplied unless it is already set, so bouncing
// between interview stages and applied keeps the original date. Moving to
// interested clears it. Other statuses leave it alone.
func (s *Store) UpdateStatus(slug string, status Status) (prev Status, job TrackedJob, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(slug)
	if i < 0 {
		return "", TrackedJob{}, false
	}

	j := &s.jobs[i]
	prev = j.Status
	j.Status = status
	switch {
	case SetsDateApplied(status):
		if j.DateApplied == nil {
			t := s.now()
			j.DateApplied = &t
		}
	case ClearsDateApplied(status):
		j.DateApplied = nil
	}
	return prev, *j, true
}

// SetNotes replaces the free-text notes on slug.
func (s *Store) SetNotes(slug, notes string) (TrackedJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(slug)
	if i < 0 {
		return TrackedJob{}, false
	}
	s.jobs[i].Notes = notes
	return s.jobs[i], true
}

// Get returns the entry for slug.
func (s *Store) Get(slug string) (TrackedJob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.index(slug); i >= 0 {
		return s.jobs[i], true
	}
	return TrackedJob{}, false
}

// IsTracked reports whether slug has an entry.
func (s *Store) IsTracked(slug string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index(slug) >= 0
}

// List returns a copy of all entries, most recent first.
func (s *Store) List() []TrackedJob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]TrackedJob, len(s.jobs))
	copy(out, s.jobs)
	return out
}

// Len returns the number of tracked jobs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
