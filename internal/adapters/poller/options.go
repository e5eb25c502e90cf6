package poller

import (
	"time"

	"github.com/ruanlop/placarlive/pkg/logger"
)

// Option applies a configuration option to the Poller.
type Option func(*Poller)

// WithIntervals sets the per-phase poll intervals. Non-positive fields
// keep their defaults.
func WithIntervals(iv Intervals) Option {
	return func(p *Poller) {
		if iv.Idle > 0 {
			p.intervals.Idle = iv.Idle
		}
		if iv.PreMatch > 0 {
			p.intervals.PreMatch = iv.PreMatch
		}
		if iv.Live > 0 {
			p.intervals.Live = iv.Live
		}
	}
}

// WithPreMatchWindow sets how close a kickoff must be for the pre-match
// cadence.
func WithPreMatchWindow(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.preMatchWindow = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) {
		if now != nil {
			p.now = now
		}
	}
}
