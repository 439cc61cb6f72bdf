// Package board contains the job board's business logic.
// It is transport-agnostic: the HTML views, the JSON API and the gRPC server
// all go through Service.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gradjobs/internal/catalog"
	"gradjobs/internal/events"
	"gradjobs/internal/filter"
	"gradjobs/internal/session"
	"gradjobs/internal/tracker"
)

// ─── Types ───────────────────────────────────────────────────────────────────

// Application is a tracked job joined with its catalog posting. Job is nil
// when the slug no longer exists in the catalog.
type Application struct {
	tracker.TrackedJob
	Job *catalog.JobPosting `json:"job,omitempty"`
}

// Listing is the board as one session sees it.
type Listing struct {
	Segment   filter.Segment       `json:"segment"`
	Groups    []filter.GroupState  `json:"groups"`
	Selected  []string             `json:"selected"`
	TagCount  int                  `json:"tagCount"`
	Today     []catalog.JobPosting `json:"today"`
	All       []catalog.JobPosting `json:"all"`
	ByDate    []filter.DateGroup   `json:"byDate"`
	TodayDate catalog.Date         `json:"todayDate"`
}

// ─── Service ─────────────────────────────────────────────────────────────────

// Service encapsulates all board business logic.
type Service struct {
	catalog  *catalog.Catalog
	sessions *session.Registry
	notifier events.Notifier
	now      func() time.Time
}

// NewService returns a configured Service. A nil notifier discards events.
func NewService(cat *catalog.Catalog, sessions *session.Registry, n events.Notifier) *Service {
	if n == nil {
		n = events.Nop{}
	}
	return &Service{catalog: cat, sessions: sessions, notifier: n, now: time.Now}
}

// SetClock overrides time.Now for "today" calculations.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Sessions exposes the registry for housekeeping.
func (s *Service) Sessions() *session.Registry { return s.sessions }

// ─── Catalog ─────────────────────────────────────────────────────────────────

// Jobs returns the whole catalog in order.
func (s *Service) Jobs() []catalog.JobPosting { return s.catalog.List() }

// Job returns one posting or ErrNotFound.
func (s *Service) Job(slug string) (catalog.JobPosting, error) {
	job, ok := s.catalog.Lookup(slug)
	if !ok {
		return catalog.JobPosting{}, ErrNotFound
	}
	return job, nil
}

// ─── Tracker ─────────────────────────────────────────────────────────────────

// Track adds slug to the session's tracker. Tracking an already tracked
// job returns the existing entry and emits nothing.
func (s *Service) Track(ctx context.Context, sessionID, slug string) (*Application, error) {
	if _, ok := s.catalog.Lookup(slug); !ok {
		return nil, ErrNotFound
	}

	job, added := s.sessions.Get(sessionID).Tracker.Add(slug)
	if added {
		s.emit(ctx, events.Event{
			Type:      events.TypeJobTracked,
			SessionID: sessionID,
			JobSlug:   slug,
			To:        string(job.Status),
		})
	}
	return s.join(job), nil
}

// Untrack removes slug from the session's tracker. Untracking an unknown
// slug is a no-op.
func (s *Service) Untrack(ctx context.Context, sessionID, slug string) error {
	if s.sessions.Get(sessionID).Tracker.Remove(slug) {
		s.emit(ctx, events.Event{
			Type:      events.TypeJobUntracked,
			SessionID: sessionID,
			JobSlug:   slug,
		})
	}
	return nil
}

// MoveCard sets the status of a tracked job.
// Returns *ValidationError for an unknown status and ErrNotFound if slug is
// not tracked in this session.
func (s *Service) MoveCard(ctx context.Context, sessionID, slug, newStatus string) (*Application, error) {
	status, err := tracker.ParseStatus(newStatus)
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}

	prev, job, ok := s.sessions.Get(sessionID).Tracker.UpdateStatus(slug, status)
	if !ok {
		return nil, ErrNotFound
	}

	s.emit(ctx, events.Event{
		Type:      events.TypeCardMoved,
		SessionID: sessionID,
		JobSlug:   slug,
		From:      string(prev),
		To:        string(status),
	})
	return s.join(job), nil
}

// SetNotes replaces the free-text notes on a tracked job.
func (s *Service) SetNotes(ctx context.Context, sessionID, slug, notes string) (*Application, error) {
	job, ok := s.sessions.Get(sessionID).Tracker.SetNotes(slug, notes)
	if !ok {
		return nil, ErrNotFound
	}
	s.emit(ctx, events.Event{
		Type:      events.TypeNotesUpdated,
		SessionID: sessionID,
		JobSlug:   slug,
	})
	return s.join(job), nil
}

// Applications lists the session's tracked jobs, most recent first.
func (s *Service) Applications(sessionID string) []Application {
	tracked := s.sessions.Get(sessionID).Tracker.List()
	out := make([]Application, 0, len(tracked))
	for _, t := range tracked {
		out = append(out, *s.join(t))
	}
	return out
}

// IsTracked reports whether slug is in the session's tracker.
func (s *Service) IsTracked(sessionID, slug string) bool {
	return s.sessions.Get(sessionID).Tracker.IsTracked(slug)
}

func (s *Service) join(t tracker.TrackedJob) *Application {
	app := &Application{TrackedJob: t}
	if job, ok := s.catalog.Lookup(t.JobSlug); ok {
		app.Job = &job
	}
	return app
}

// ─── Filters ─────────────────────────────────────────────────────────────────

// Listing computes the session's filtered board.
func (s *Service) Listing(sessionID string) Listing {
	sel := s.sessions.Get(sessionID).Filter
	now := s.now()

	seg := sel.Segment()
	visible := filter.Visible(s.catalog.List(), sel.Set())
	return Listing{
		Segment:   seg,
		Groups:    sel.VisibleGroups(),
		Selected:  sel.Selected(),
		TagCount:  len(filter.TagIDsFor(seg)),
		Today:     filter.TodaysReleases(visible, now),
		All:       visible,
		ByDate:    filter.GroupByReleaseDate(visible),
		TodayDate: catalog.DateOf(now),
	}
}

// SetSegment switches the session's segment, resetting its selection.
func (s *Service) SetSegment(sessionID, segment string) error {
	seg, ok := filter.ParseSegment(segment)
	if !ok {
		return &ValidationError{Msg: fmt.Sprintf("unknown segment %q", segment)}
	}
	s.sessions.Get(sessionID).Filter.SetSegment(seg)
	return nil
}

// ToggleTag flips one tag in the session's selection.
func (s *Service) ToggleTag(sessionID, tag string) error {
	if !s.sessions.Get(sessionID).Filter.ToggleTag(tag) {
		return &ValidationError{Msg: fmt.Sprintf("tag %q is not in the current segment", tag)}
	}
	return nil
}

// ToggleGroup selects or clears a whole group.
func (s *Service) ToggleGroup(sessionID, group string) error {
	if !s.sessions.Get(sessionID).Filter.ToggleGroup(group) {
		return &ValidationError{Msg: fmt.Sprintf("group %q is not in the current segment", group)}
	}
	return nil
}

// SelectAll selects every tag in the session's segment.
func (s *Service) SelectAll(sessionID string) { s.sessions.Get(sessionID).Filter.SelectAll() }

// DeselectAll clears the session's selection.
func (s *Service) DeselectAll(sessionID string) { s.sessions.Get(sessionID).Filter.DeselectAll() }

// ToggleAll flips between everything and nothing selected.
func (s *Service) ToggleAll(sessionID string) { s.sessions.Get(sessionID).Filter.ToggleAll() }

// ─── Digest ──────────────────────────────────────────────────────────────────

// PublishDailyReleases broadcasts the postings that opened today across the
// whole catalog and returns how many there were.
func (s *Service) PublishDailyReleases(ctx context.Context) (int, error) {
	today := filter.TodaysReleases(s.catalog.List(), s.now())
	slugs := make([]string, 0, len(today))
	for _, j := range today {
		slugs = append(slugs, j.Slug)
	}
	err := s.notifier.Notify(ctx, events.Event{
		Type:  events.TypeDailyReleases,
		Count: len(today),
		Slugs: slugs,
		At:    s.now().UTC(),
	})
	if err != nil {
		return len(today), fmt.Errorf("publish daily releases: %w", err)
	}
	return len(today), nil
}

// emit is best-effort: a failed publish never fails the user's action.
func (s *Service) emit(ctx context.Context, ev events.Event) {
	ev.At = s.now().UTC()
	if err := s.notifier.Notify(ctx, ev); err != nil {
		slog.Warn("publish event failed", "type", ev.Type, "session", ev.SessionID, "err", err)
	}
}

// ─── Sentinel errors ─────────────────────────────────────────────────────────

// ErrNotFound is returned for an unknown job or an untracked slug.
var ErrNotFound = errors.New("job not found")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }
