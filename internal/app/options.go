package service

import (
	"time"

	animqueue "github.com/ruanlop/placarlive/internal/adapters/mq/player"
	"github.com/ruanlop/placarlive/internal/adapters/poller"
	"github.com/ruanlop/placarlive/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFeedURL sets the poll endpoint. Required.
func WithFeedURL(url string) Option {
	return func(s *Service) {
		s.feedURL = url
	}
}

// WithStorePath sets the local state file. Empty disables persistence.
func WithStorePath(path string) Option {
	return func(s *Service) {
		s.storePath = path
	}
}

// WithFetchTimeout sets the per-request poll timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithIntervals sets the per-phase poll intervals.
func WithIntervals(iv poller.Intervals) Option {
	return func(s *Service) {
		s.intervals = iv
	}
}

// WithPreMatchWindow sets the kickoff proximity for pre-match cadence.
func WithPreMatchWindow(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.preMatchWindow = d
		}
	}
}

// WithScoreCooldown sets the minimum gap between score notifications.
func WithScoreCooldown(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.scoreCooldown = d
		}
	}
}

// WithLedgerWindows sets the insertion and startup expiry windows.
func WithLedgerWindows(maxAge, loadMaxAge time.Duration) Option {
	return func(s *Service) {
		if maxAge > 0 {
			s.ledgerMaxAge = maxAge
		}
		if loadMaxAge > 0 {
			s.ledgerLoadAge = loadMaxAge
		}
	}
}

// WithAnimationTiming sets the on-screen duration and settle delay.
func WithAnimationTiming(duration, settle time.Duration) Option {
	return func(s *Service) {
		if duration > 0 {
			s.animDuration = duration
		}
		if settle >= 0 {
			s.settleDelay = settle
		}
	}
}

// WithQueueCapacity bounds the animation queue.
func WithQueueCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.queueCapacity = capacity
		}
	}
}

// WithAnimator replaces the default log-based animator.
func WithAnimator(a animqueue.Animator) Option {
	return func(s *Service) {
		if a != nil {
			s.animator = a
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
