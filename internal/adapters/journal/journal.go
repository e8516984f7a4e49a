// Package journal keeps a bounded in-memory record of recent engine events
// for admin dashboards. Recording never blocks a mutation; when the buffer
// is full the oldest entry is dropped.
package journal

import (
	"context"
	"sync"
	"time"
)

// Default journal configuration constants.
const (
	defaultCapacity = 1024
)

// Kind names the engine operation an event records.
type Kind string

const (
	KindCompetitionCreated  Kind = "competition_created"
	KindCompetitionUpdated  Kind = "competition_updated"
	KindCompetitionDeleted  Kind = "competition_deleted"
	KindCompetitionArchived Kind = "competition_archived"
	KindSubmissionAccepted  Kind = "submission_accepted"
	KindRatingRecorded      Kind = "rating_recorded"
	KindWinnerDeclared      Kind = "winner_declared"
	KindPaymentUpdated      Kind = "payment_updated"
)

// Event is one journal entry.
type Event struct {
	At            time.Time `json:"at"`
	Kind          Kind      `json:"kind"`
	CompetitionID string    `json:"competition_id"`
	ActorID       string    `json:"actor_id,omitempty"`
	Detail        string    `json:"detail,omitempty"`
}

// Journal provides append and recent-first read access.
type Journal interface {
	// Record appends an event, evicting the oldest when full.
	Record(ctx context.Context, e Event)

	// Recent returns up to n events, newest first.
	Recent(ctx context.Context, n int) []Event

	// Len returns the current number of retained events.
	Len(ctx context.Context) int
}

// InMemoryJournal implements Journal with a fixed-size ring buffer.
type InMemoryJournal struct {
	mu       sync.RWMutex
	buf      []Event
	head     int // next write position
	size     int
	capacity int
}

// NewInMemoryJournal creates a journal with configuration options.
func NewInMemoryJournal(opts ...Option) *InMemoryJournal {
	j := &InMemoryJournal{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(j)
	}
	j.buf = make([]Event, j.capacity)
	return j
}

// Record appends an event, evicting the oldest when full.
func (j *InMemoryJournal) Record(_ context.Context, e Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.buf[j.head] = e
	j.head = (j.head + 1) % j.capacity
	if j.size < j.capacity {
		j.size++
	}
}

// Recent returns up to n events, newest first.
func (j *InMemoryJournal) Recent(_ context.Context, n int) []Event {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if n <= 0 || j.size == 0 {
		return nil
	}
	if n > j.size {
		n = j.size
	}
	out := make([]Event, 0, n)
	for i := 1; i <= n; i++ {
		idx := (j.head - i + j.capacity*2) % j.capacity
		out = append(out, j.buf[idx])
	}
	return out
}

// Len returns the current number of retained events.
func (j *InMemoryJournal) Len(_ context.Context) int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.size
}
