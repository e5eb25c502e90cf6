// Package ledger tracks which event identities were already shown.
//
// Entries expire after a short window (pruned before every insertion
// check) so the set stays bounded over a long-running match. A longer
// window applies once when restoring the persisted set at startup, so a
// page reload within a session does not replay notifications.
package ledger

import (
	"time"
)

// Store persists the seen-set between runs. Implementations must
// degrade to an empty map on read failure and swallow write failures;
// persistence is best-effort and never fatal.
type Store interface {
	LoadSeen() map[string]time.Time
	SaveSeen(seen map[string]time.Time)
}

// Ledger is the in-memory seen-set with expiry. Not safe for concurrent
// use on its own; the animation queue serializes access.
type Ledger struct {
	seen       map[string]time.Time // identity -> first seen
	maxAge     time.Duration        // insertion-time prune window
	loadMaxAge time.Duration        // startup prune window
	store      Store
}

// New builds a Ledger with the given options. Call Load to restore the
// persisted set.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		seen:       make(map[string]time.Time),
		maxAge:     defaultMaxAge,
		loadMaxAge: defaultLoadMaxAge,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load restores the persisted seen-set, dropping entries older than the
// startup window. A missing or corrupt store yields an empty ledger.
func (l *Ledger) Load(now time.Time) {
	if l.store == nil {
		return
	}
	restored := l.store.LoadSeen()
	for id, firstSeen := range restored {
		if now.Sub(firstSeen) <= l.loadMaxAge {
			l.seen[id] = firstSeen
		}
	}
}

// HasSeen reports whether id was already shown.
func (l *Ledger) HasSeen(id string) bool {
	_, ok := l.seen[id]
	return ok
}

// MarkSeen records id and persists the set immediately, so a reload
// mid-animation does not replay the event.
func (l *Ledger) MarkSeen(id string, now time.Time) {
	l.seen[id] = now
	l.persist()
}

// Prune drops entries older than the insertion window. Callers run it
// before every insertion check.
func (l *Ledger) Prune(now time.Time) {
	pruned := false
	for id, firstSeen := range l.seen {
		if now.Sub(firstSeen) > l.maxAge {
			delete(l.seen, id)
			pruned = true
		}
	}
	if pruned {
		l.persist()
	}
}

// Size returns the number of tracked identities.
func (l *Ledger) Size() int {
	return len(l.seen)
}

func (l *Ledger) persist() {
	if l.store == nil {
		return
	}
	snapshot := make(map[string]time.Time, len(l.seen))
	for id, firstSeen := range l.seen {
		snapshot[id] = firstSeen
	}
	l.store.SaveSeen(snapshot)
}
