// Package service owns the live-match pipeline behind the HTTP API.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ruanlop/placarlive/internal/adapters/feed"
	animqueue "github.com/ruanlop/placarlive/internal/adapters/mq/player"
	eventqueue "github.com/ruanlop/placarlive/internal/adapters/mq/queue"
	"github.com/ruanlop/placarlive/internal/adapters/poller"
	"github.com/ruanlop/placarlive/internal/adapters/storage"
	"github.com/ruanlop/placarlive/internal/domain/classify"
	"github.com/ruanlop/placarlive/internal/domain/identity"
	"github.com/ruanlop/placarlive/internal/domain/ledger"
	"github.com/ruanlop/placarlive/internal/domain/model"
	"github.com/ruanlop/placarlive/internal/domain/score"
	"github.com/ruanlop/placarlive/internal/render"
	"github.com/ruanlop/placarlive/pkg/logger"
	"github.com/ruanlop/placarlive/pkg/metrics"
)

// Service wires the poller, detection pipeline, animation queue and
// render layer. It is the poller's Sink, so the whole
// classify→dedupe→enqueue pipeline for one payload runs on the poll
// goroutine before the next cycle is armed.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    *storage.Store
	ledger   *ledger.Ledger
	detector *score.Detector
	queue    *eventqueue.Queue
	player   *animqueue.Player
	poll     *poller.Poller
	animator animqueue.Animator

	// Configuration
	feedURL        string
	storePath      string
	fetchTimeout   time.Duration
	intervals      poller.Intervals
	preMatchWindow time.Duration
	scoreCooldown  time.Duration
	ledgerMaxAge   time.Duration
	ledgerLoadAge  time.Duration
	animDuration   time.Duration
	settleDelay    time.Duration
	queueCapacity  int

	// State
	display render.DisplayModel
	started bool

	logger logger.Logger
	now    func() time.Time
}

// New constructs a Service. Call Start before use.
func New(opts ...Option) *Service {
	s := &Service{
		settleDelay: -1, // distinguish "unset" from an explicit zero
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes all components and launches the poll and playback
// loops. Safe to call once; later calls are no-ops.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.feedURL == "" {
		return ErrNoFeedURL
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.animator == nil {
		s.animator = &logAnimator{logger: s.logger.Named("animator")}
	}

	var ledgerOpts []ledger.Option
	var scoreOpts []score.Option
	if s.ledgerMaxAge > 0 {
		ledgerOpts = append(ledgerOpts, ledger.WithMaxAge(s.ledgerMaxAge))
	}
	if s.ledgerLoadAge > 0 {
		ledgerOpts = append(ledgerOpts, ledger.WithLoadMaxAge(s.ledgerLoadAge))
	}
	if s.scoreCooldown > 0 {
		scoreOpts = append(scoreOpts, score.WithCooldown(s.scoreCooldown))
	}
	if s.storePath != "" {
		s.store = storage.New(s.storePath, storage.WithLogger(s.logger.Named("storage")))
		ledgerOpts = append(ledgerOpts, ledger.WithStore(s.store))
		scoreOpts = append(scoreOpts, score.WithStore(s.store))
	}

	s.ledger = ledger.New(ledgerOpts...)
	s.ledger.Load(s.now())
	s.detector = score.New(scoreOpts...)

	var queueOpts []eventqueue.Option
	if s.queueCapacity > 0 {
		queueOpts = append(queueOpts, eventqueue.WithCapacity(s.queueCapacity))
	}
	s.queue = eventqueue.New(s.ledger, queueOpts...)

	var playerOpts []animqueue.Option
	if s.animDuration > 0 {
		playerOpts = append(playerOpts, animqueue.WithDuration(s.animDuration))
	}
	if s.settleDelay >= 0 {
		playerOpts = append(playerOpts, animqueue.WithSettleDelay(s.settleDelay))
	}
	playerOpts = append(playerOpts, animqueue.WithLogger(s.logger.Named("player")))
	s.player = animqueue.New(s.queue, s.animator, playerOpts...)

	var clientOpts []feed.ClientOption
	if s.fetchTimeout > 0 {
		clientOpts = append(clientOpts, feed.WithTimeout(s.fetchTimeout))
	}
	client := feed.NewClient(s.feedURL, clientOpts...)

	pollerOpts := []poller.Option{
		poller.WithIntervals(s.intervals),
		poller.WithLogger(s.logger.Named("poller")),
	}
	if s.preMatchWindow > 0 {
		pollerOpts = append(pollerOpts, poller.WithPreMatchWindow(s.preMatchWindow))
	}
	s.poll = poller.New(client, s, pollerOpts...)

	s.display = render.Waiting(time.Time{}, string(poller.PhaseIdle), s.now())

	go s.player.Run(ctx)
	s.poll.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "live-match service started",
		logger.String("feed_url", s.feedURL),
		logger.String("store_path", s.storePath))
	return nil
}

// Stop shuts the loops down. The queue is closed first so nothing new
// is accepted while the player drains its current hold.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.poll.Stop()
	s.queue.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.player.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "player shutdown", logger.Error(err))
	}
}

// HandlePayload implements poller.Sink. One payload's detection
// pipeline runs here atomically with respect to other cycles.
func (s *Service) HandlePayload(ctx context.Context, p feed.Payload) {
	now := s.now()

	switch p.Kind {
	case feed.KindLive:
		s.processLive(ctx, p.Snapshot, now)
	case feed.KindAgenda:
		s.setDisplay(render.Waiting(p.Kickoff, p.Kind.String(), now))
	default:
		s.setDisplay(render.Waiting(time.Time{}, p.Kind.String(), now))
	}
}

// HandlePollError implements poller.Sink. The feed stays up in its
// idle-fallback state; polling continues at the backoff cadence.
func (s *Service) HandlePollError(ctx context.Context, err error) {
	s.setDisplay(render.Waiting(time.Time{}, string(poller.PhaseIdle), s.now()))
}

func (s *Service) processLive(ctx context.Context, snap model.MatchSnapshot, now time.Time) {
	sb := snap.Scoreboard
	matchID := score.MatchKey(sb.HomeName, sb.AwayName, snap.Info.Date)

	if change, ok := s.detector.Check(matchID, sb.HomeScore, sb.AwayScore, now); ok {
		metrics.RecordScoreChange()
		s.queue.Enqueue(ctx, eventqueue.Entry{
			Category: classify.Goal,
			Identity: scoreChangeIdentity(change),
		})
	} else if sb.HomeScore != s.detector.Baseline().Home || sb.AwayScore != s.detector.Baseline().Away {
		metrics.RecordScoreSuppressed()
	}

	for _, rec := range snap.Commentary {
		cl := classify.Record(rec)
		metrics.RecordEventClassified(string(cl.Category))
		if !cl.Animates {
			continue
		}
		s.queue.Enqueue(ctx, eventqueue.Entry{
			Category: cl.Category,
			Identity: identity.Compute(rec.Minute, rec.Description, string(cl.Category)),
		})
	}

	metrics.UpdateLedgerSize(s.ledger.Size())
	s.setDisplay(render.Snapshot(snap, feed.KindLive.String(), now))
}

// scoreChangeIdentity keys the notification on the resulting scoreline,
// so re-polls reporting the same transition collapse in the ledger.
func scoreChangeIdentity(c model.ScoreChange) string {
	desc := fmt.Sprintf("placar %s %d a %d", c.MatchID, c.HomeScore, c.AwayScore)
	return identity.Compute("", desc, string(classify.Goal))
}

// Snapshot returns the latest display model.
func (s *Service) Snapshot() render.DisplayModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.display
}

// ForceAnimation enqueues a debug notification for the given category.
// The identity is minted fresh so forced plays never collide with real
// events in the ledger.
func (s *Service) ForceAnimation(ctx context.Context, category string) error {
	c := classify.Category(strings.ToLower(strings.TrimSpace(category)))
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return ErrNotStarted
	}
	s.queue.Enqueue(ctx, eventqueue.Entry{
		Category: c,
		Identity: "debug-" + uuid.NewString(),
	})
	return nil
}

// GetStats reports operational counters for the /stats endpoint. The
// handlers are reachable before Start succeeds, so a not-yet-started
// service reports zero counters instead of touching nil components.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	updatedAt := s.display.UpdatedAt
	started := s.started
	s.mu.RUnlock()

	if !started {
		return map[string]interface{}{
			"queueLength": 0,
			"ledgerSize":  0,
			"updatedAt":   updatedAt,
		}
	}

	stats := map[string]interface{}{
		"queueLength": s.queue.Len(),
		"ledgerSize":  s.ledger.Size(),
		"updatedAt":   updatedAt,
	}
	if s.poll != nil {
		stats["phase"] = string(s.poll.Phase())
		stats["phaseTransitions"] = s.poll.Transitions()
	}
	if b := s.detector.Baseline(); b.MatchID != "" {
		stats["matchID"] = b.MatchID
		stats["score"] = fmt.Sprintf("%d-%d", b.Home, b.Away)
	}
	return stats
}

func (s *Service) setDisplay(d render.DisplayModel) {
	s.mu.Lock()
	s.display = d
	s.mu.Unlock()
}

// logAnimator is the default Animator: it surfaces each notification in
// the service log. The page-facing surface polls /snapshot; playback
// here is about pacing and dedup, not transport.
type logAnimator struct {
	logger logger.Logger
}

func (a *logAnimator) Play(ctx context.Context, e eventqueue.Entry) {
	a.logger.Info(ctx, "notification",
		logger.String("category", string(e.Category)),
		logger.String("identity", e.Identity))
}
