package poller

import (
	"context"
	"sync"
	"time"

	"github.com/ruanlop/placarlive/internal/adapters/feed"
	"github.com/ruanlop/placarlive/pkg/logger"
	"github.com/ruanlop/placarlive/pkg/metrics"
)

// Fetcher obtains the next payload.
type Fetcher interface {
	Fetch(ctx context.Context) (feed.Payload, error)
}

// Sink consumes poll results. Both methods run on the poll goroutine,
// so one payload's pipeline finishes before the next poll can start.
type Sink interface {
	// HandlePayload processes one decoded payload.
	HandlePayload(ctx context.Context, p feed.Payload)

	// HandlePollError is invoked when a poll fails outright. The poller
	// keeps going; the sink decides how to degrade its output.
	HandlePollError(ctx context.Context, err error)
}

// Poller polls the feed on an interval that adapts to match phase.
//
// The timer is single-shot per cycle: it is rearmed only after the
// sink has consumed the payload, so pipeline runs never overlap. There
// is no eager first tick; every phase waits one full interval before
// its first poll, including at start.
type Poller struct {
	fetcher Fetcher
	sink    Sink

	intervals      Intervals
	preMatchWindow time.Duration

	mu          sync.Mutex
	phase       Phase
	transitions int64
	started     bool

	stopCh chan struct{}
	doneCh chan struct{}

	logger logger.Logger
	now    func() time.Time
}

// New creates a Poller in the idle phase.
func New(fetcher Fetcher, sink Sink, opts ...Option) *Poller {
	p := &Poller{
		fetcher: fetcher,
		sink:    sink,
		intervals: Intervals{
			Idle:     defaultIdleInterval,
			PreMatch: defaultPreMatchInterval,
			Live:     defaultLiveInterval,
		},
		preMatchWindow: defaultPreMatchWindow,
		phase:          PhaseIdle,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("poller")
	}
	return p
}

// Start launches the poll loop. Subsequent calls are no-ops.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true
	metrics.UpdateCurrentPhase(string(p.phase), AllPhases)
	go p.run(ctx)
}

// Stop terminates the loop and waits for the in-progress cycle.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	select {
	case <-p.stopCh:
	default:
		close(p.stopCh)
	}
	<-p.doneCh
}

// Phase returns the current phase.
func (p *Poller) Phase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase
}

// Transitions returns the number of genuine phase transitions so far.
// A cycle that recomputes the same phase does not count.
func (p *Poller) Transitions() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.transitions
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.doneCh)

	timer := time.NewTimer(p.intervals.For(p.Phase()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-timer.C:
			next := p.poll(ctx)
			p.advance(next)
			// Rearming after the pipeline ran keeps cycles serialized.
			timer.Reset(p.intervals.For(next))
		}
	}
}

// poll runs one fetch+pipeline cycle and returns the implied phase.
func (p *Poller) poll(ctx context.Context) Phase {
	current := p.Phase()
	start := p.now()

	payload, err := p.fetcher.Fetch(ctx)
	metrics.RecordPollLatency(float64(p.now().Sub(start).Milliseconds()))
	if err != nil {
		metrics.RecordPoll(string(current), "fetch_error")
		p.logger.Warn(ctx, "poll failed", logger.Error(err))
		p.sink.HandlePollError(ctx, err)
		return PhaseBackoff
	}

	metrics.RecordPoll(string(current), payload.Kind.String())
	p.sink.HandlePayload(ctx, payload)
	return Plan(payload, p.now(), p.preMatchWindow)
}

// advance applies a phase change. Same-phase results are a no-op so the
// cadence is not disturbed every cycle.
func (p *Poller) advance(next Phase) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if next == p.phase {
		return
	}
	p.logger.Info(context.Background(), "phase transition",
		logger.String("from", string(p.phase)), logger.String("to", string(next)))
	p.phase = next
	p.transitions++
	metrics.RecordPhaseTransition(string(next))
	metrics.UpdateCurrentPhase(string(next), AllPhases)
}
