// Package poller drives the adaptive fetch loop.
package poller

import (
	"time"

	"github.com/ruanlop/placarlive/internal/adapters/feed"
)

// Phase is the poller's adaptive mode. Each phase has a fixed interval.
type Phase string

// Poller phases.
const (
	PhaseIdle     Phase = "idle"
	PhasePreMatch Phase = "pre_match"
	PhaseLive     Phase = "live"
	PhaseBackoff  Phase = "error_backoff"
)

// AllPhases lists every phase, for metrics labeling.
var AllPhases = []string{
	string(PhaseIdle), string(PhasePreMatch), string(PhaseLive), string(PhaseBackoff),
}

// Default per-phase intervals and the pre-match window.
const (
	defaultIdleInterval     = 60 * time.Second
	defaultPreMatchInterval = 15 * time.Second
	defaultLiveInterval     = 5 * time.Second
	defaultPreMatchWindow   = 30 * time.Minute
)

// Intervals holds the per-phase poll intervals. Backoff shares the idle
// cadence.
type Intervals struct {
	Idle     time.Duration
	PreMatch time.Duration
	Live     time.Duration
}

// For returns the interval for a phase.
func (iv Intervals) For(p Phase) time.Duration {
	switch p {
	case PhaseLive:
		return iv.Live
	case PhasePreMatch:
		return iv.PreMatch
	default:
		return iv.Idle
	}
}

// Plan computes the phase implied by a decoded payload. Pure, so the
// transition rules are testable without timers.
//
// Rules, in order: a live payload is live; an agenda payload with a
// kickoff inside the window is pre-match; any other agenda is idle;
// errors and unrecognized shapes back off.
func Plan(p feed.Payload, now time.Time, preMatchWindow time.Duration) Phase {
	switch p.Kind {
	case feed.KindLive:
		return PhaseLive
	case feed.KindAgenda:
		if !p.Kickoff.IsZero() && p.Kickoff.Sub(now) <= preMatchWindow {
			return PhasePreMatch
		}
		return PhaseIdle
	default:
		return PhaseBackoff
	}
}
