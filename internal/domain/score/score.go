// Package score detects scoreboard changes between polls.
//
// The detector keeps one baseline per match identity. When the identity
// changes (a new fixture), the baseline resets without emitting so an
// already-in-progress score on first load is not announced as a goal. A
// cooldown suppresses duplicate notifications when rapid re-polls report
// the same transition.
package score

import (
	"strings"
	"time"

	"github.com/ruanlop/placarlive/internal/domain/model"
)

const defaultCooldown = 8 * time.Second

// Baseline is the persisted per-match score state.
type Baseline struct {
	MatchID     string
	Home        int
	Away        int
	LastTrigger time.Time
}

// Store persists the baseline between runs. Read failures must degrade
// to "no baseline"; writes are best-effort.
type Store interface {
	LoadScore() (Baseline, bool)
	SaveScore(b Baseline)
}

// MatchKey derives the fixture identity from team names and date.
func MatchKey(homeName, awayName, date string) string {
	norm := func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return norm(homeName) + "|" + norm(awayName) + "|" + norm(date)
}

// Detector tracks the last known score for the monitored match.
type Detector struct {
	baseline Baseline
	cooldown time.Duration
	store    Store
}

// Option applies a configuration option to the Detector.
type Option func(*Detector)

// WithCooldown sets the minimum gap between emitted score changes.
func WithCooldown(d time.Duration) Option {
	return func(det *Detector) {
		if d > 0 {
			det.cooldown = d
		}
	}
}

// WithStore sets the persistence backend. The persisted baseline is
// restored on construction, so a restart mid-match keeps its context.
func WithStore(store Store) Option {
	return func(det *Detector) {
		det.store = store
	}
}

// New builds a Detector, restoring any persisted baseline.
func New(opts ...Option) *Detector {
	d := &Detector{cooldown: defaultCooldown}
	for _, opt := range opts {
		opt(d)
	}
	if d.store != nil {
		if b, ok := d.store.LoadScore(); ok {
			d.baseline = b
		}
	}
	return d
}

// Check compares the polled score against the baseline.
//
// A changed match identity resets the baseline silently. An unchanged
// score emits nothing. A changed score emits once and then arms the
// cooldown; changes landing inside the cooldown are suppressed without
// touching the baseline, so a genuine change survives to the next poll.
func (d *Detector) Check(matchID string, home, away int, now time.Time) (model.ScoreChange, bool) {
	if matchID != d.baseline.MatchID {
		d.baseline = Baseline{MatchID: matchID, Home: home, Away: away}
		d.persist()
		return model.ScoreChange{}, false
	}

	if home == d.baseline.Home && away == d.baseline.Away {
		return model.ScoreChange{}, false
	}

	if !d.baseline.LastTrigger.IsZero() && now.Sub(d.baseline.LastTrigger) <= d.cooldown {
		return model.ScoreChange{}, false
	}

	d.baseline.Home = home
	d.baseline.Away = away
	d.baseline.LastTrigger = now
	d.persist()

	return model.ScoreChange{
		MatchID:   matchID,
		HomeScore: home,
		AwayScore: away,
		At:        now,
	}, true
}

// Baseline returns a copy of the current baseline, mostly for stats.
func (d *Detector) Baseline() Baseline {
	return d.baseline
}

func (d *Detector) persist() {
	if d.store != nil {
		d.store.SaveScore(d.baseline)
	}
}
