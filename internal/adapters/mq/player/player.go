// Package player drains the animation queue one entry at a time.
//
// At most one animation is ever on screen. After handing an entry to
// the animator the player holds for the animation duration plus a
// settle delay before dequeuing again; that await is the only ordering
// guarantee beyond the queue's priority order. When the queue empties
// the player sleeps until the next enqueue signal.
package player

import (
	"context"
	"fmt"
	"time"

	"github.com/ruanlop/placarlive/internal/adapters/mq/queue"
	"github.com/ruanlop/placarlive/pkg/logger"
	"github.com/ruanlop/placarlive/pkg/metrics"
)

// Default playback pacing.
const (
	defaultDuration    = 4 * time.Second
	defaultSettleDelay = 500 * time.Millisecond

	shutdownTimeout = 5 * time.Second
)

// Animator presents one notification. It must return promptly; pacing
// is the player's job.
type Animator interface {
	Play(ctx context.Context, e queue.Entry)
}

// Queue is the consuming side of the animation queue.
type Queue interface {
	Pop() (queue.Entry, bool)
	Wait() <-chan struct{}
}

// Player is the single playback loop.
type Player struct {
	queue    Queue
	animator Animator

	duration time.Duration
	settle   time.Duration

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the Player.
type Option func(*Player)

// WithDuration sets how long one animation is considered on screen.
func WithDuration(d time.Duration) Option {
	return func(p *Player) {
		if d > 0 {
			p.duration = d
		}
	}
}

// WithSettleDelay sets the quiet gap after each animation.
func WithSettleDelay(d time.Duration) Option {
	return func(p *Player) {
		if d >= 0 {
			p.settle = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Player) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Player draining q into animator.
func New(q Queue, animator Animator, opts ...Option) *Player {
	p := &Player{
		queue:    q,
		animator: animator,
		duration: defaultDuration,
		settle:   defaultSettleDelay,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("player")
	}
	return p
}

// Run loops until ctx is canceled or Shutdown is called.
func (p *Player) Run(ctx context.Context) {
	defer close(p.done)

	for {
		e, ok := p.queue.Pop()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-p.shutdown:
				return
			case <-p.queue.Wait():
				continue
			}
		}

		p.logger.Debug(ctx, "playing animation",
			logger.String("category", string(e.Category)),
			logger.String("identity", e.Identity))
		p.animator.Play(ctx, e)
		metrics.RecordAnimationPlayed(string(e.Category))

		if !p.hold(ctx, p.duration+p.settle) {
			return
		}
	}
}

// hold waits out the animation and settle window. Returns false when
// the player should exit instead.
func (p *Player) hold(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-p.shutdown:
		return false
	case <-timer.C:
		return true
	}
}

// Shutdown stops the loop and waits for the current animation hold to
// be abandoned.
func (p *Player) Shutdown(ctx context.Context) error {
	select {
	case <-p.shutdown:
	default:
		close(p.shutdown)
	}

	waitCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	select {
	case <-p.done:
		return nil
	case <-waitCtx.Done():
		return fmt.Errorf("player shutdown timed out: %w", waitCtx.Err())
	}
}
