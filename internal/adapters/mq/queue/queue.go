// Package queue orders detected events for single-file playback.
//
// Entries are kept sorted by category priority (stable for equal
// priorities) and deduplicated against the seen-event ledger at enqueue
// time. Marking happens on accept, before the animation plays, so a
// crash or reload mid-animation does not replay the event. Both the
// score detector and per-record classification feed this queue, which
// is why the ledger check lives here and not only at the producers.
package queue

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ruanlop/placarlive/internal/domain/classify"
	"github.com/ruanlop/placarlive/pkg/metrics"
)

const defaultCapacity = 256

// Entry is one queued animation.
type Entry struct {
	Category classify.Category
	Identity string
}

// Ledger is the seen-event set the queue deduplicates against.
type Ledger interface {
	Prune(now time.Time)
	HasSeen(id string) bool
	MarkSeen(id string, now time.Time)
}

// Queue is the priority-ordered animation queue.
type Queue struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int
	ledger   Ledger
	notify   chan struct{}
	closed   bool
	now      func() time.Time
}

// Option applies a configuration option to the Queue.
type Option func(*Queue)

// WithCapacity bounds the queue. Overflow entries are dropped and
// counted; a bounded backlog is preferable to replaying stale play.
func WithCapacity(capacity int) Option {
	return func(q *Queue) {
		if capacity > 0 {
			q.capacity = capacity
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) {
		if now != nil {
			q.now = now
		}
	}
}

// New creates a Queue deduplicating against ledger.
func New(ledger Ledger, opts ...Option) *Queue {
	q := &Queue{
		capacity: defaultCapacity,
		ledger:   ledger,
		notify:   make(chan struct{}, 1),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	metrics.UpdateQueueDepth(0)
	return q
}

// Enqueue inserts e in priority order. Returns false when the identity
// was already seen, the queue is full, or the queue is closed. On
// accept the identity is marked seen and persisted immediately.
func (q *Queue) Enqueue(ctx context.Context, e Entry) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		metrics.RecordQueueDropped()
		return false
	}

	now := q.now()
	q.ledger.Prune(now)
	if q.ledger.HasSeen(e.Identity) {
		metrics.RecordDuplicateDropped()
		return false
	}
	if len(q.entries) >= q.capacity {
		metrics.RecordQueueDropped()
		return false
	}

	q.ledger.MarkSeen(e.Identity, now)

	// Stable insert: after the last entry of equal priority.
	pri := e.Category.Priority()
	idx := sort.Search(len(q.entries), func(i int) bool {
		return q.entries[i].Category.Priority() > pri
	})
	q.entries = append(q.entries, Entry{})
	copy(q.entries[idx+1:], q.entries[idx:])
	q.entries[idx] = e

	metrics.UpdateQueueDepth(len(q.entries))
	select {
	case q.notify <- struct{}{}:
	default:
	}
	return true
}

// Pop removes and returns the most urgent entry.
func (q *Queue) Pop() (Entry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return Entry{}, false
	}
	e := q.entries[0]
	q.entries = q.entries[1:]
	metrics.UpdateQueueDepth(len(q.entries))
	return e, true
}

// Wait returns a channel signalled whenever an entry is accepted.
func (q *Queue) Wait() <-chan struct{} {
	return q.notify
}

// Len returns the number of queued entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Close rejects further enqueues. Queued entries can still be popped.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}

// IsClosed reports whether the queue has been closed.
func (q *Queue) IsClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
