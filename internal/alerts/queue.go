// Package alerts implements the bounded inbox of active alerts that
// operators watch.
package alerts

import (
	"sync"
	"time"

	"github.com/lighthouse-ops/riskwatch/internal/models"
)

// MaxEntries bounds the queue: only the 5 most recent alerts are kept
const MaxEntries = 5

// Entry is one queued alert. Seq is a monotonic identity used for
// dismissal; the queue owns entries, callers get copies.
type Entry struct {
	Seq        uint64            `json:"seq"`
	Event      models.AlertEvent `json:"event"`
	ReceivedAt time.Time         `json:"received_at"`
}

// Queue is a bounded, newest-first alert inbox. Push and Dismiss are
// safe to interleave: the stream pushes from its own goroutine while
// handlers read and dismiss.
type Queue struct {
	mu      sync.Mutex
	nextSeq uint64
	entries []Entry
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push prepends the event and truncates to the MaxEntries most recent.
// Entries evicted past the bound are dropped silently.
func (q *Queue) Push(ev models.AlertEvent) Entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextSeq++
	entry := Entry{Seq: q.nextSeq, Event: ev, ReceivedAt: time.Now()}
	q.entries = append([]Entry{entry}, q.entries...)
	if len(q.entries) > MaxEntries {
		q.entries = q.entries[:MaxEntries]
	}
	return entry
}

// Dismiss removes the entry with the given sequence. Dismissing an
// entry that was already evicted or dismissed is a no-op; that guards
// the race between auto-eviction and a manual dismiss.
func (q *Queue) Dismiss(seq uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, e := range q.entries {
		if e.Seq == seq {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return
		}
	}
}

// Peek returns a copy of the entries, newest first
func (q *Queue) Peek() []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Entry, len(q.entries))
	copy(out, q.entries)
	return out
}

// Len returns the number of queued entries
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}
