// Package events carries tracker changes out of the board service: to Redis
// pub/sub for other consumers and to the visitor's open WebSocket tabs.
package events

import (
	"context"
	"errors"
	"time"
)

// Event types. Each one is also the Redis channel it is published on.
const (
	TypeJobTracked    = "EVENT_JOB_TRACKED"
	TypeJobUntracked  = "EVENT_JOB_UNTRACKED"
	TypeCardMoved     = "EVENT_CARD_MOVED"
	TypeNotesUpdated  = "EVENT_NOTES_UPDATED"
	TypeDailyReleases = "EVENT_DAILY_RELEASES"
)

// Event is a single tracker or catalog notification.
type Event struct {
	Type      string    `json:"type"`
	SessionID string    `json:"sessionId,omitempty"`
	JobSlug   string    `json:"jobSlug,omitempty"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	Count     int       `json:"count,omitempty"`
	Slugs     []string  `json:"slugs,omitempty"`
	At        time.Time `json:"at"`
}

// Notifier delivers events. An empty SessionID means "everyone".
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Nop discards events.
type Nop struct{}

func (Nop) Notify(context.Context, Event) error { return nil }

// Multi fans an event out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, ev Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
