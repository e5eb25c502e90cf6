// Package metrics provides Prometheus metrics for the live-match poller.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace string
	subsystem string
	buckets   []float64
	registry  prometheus.Registerer

	// Polling metrics
	polls            *prometheus.CounterVec // by phase and outcome
	pollLatency      prometheus.Histogram
	phaseTransitions *prometheus.CounterVec
	currentPhase     *prometheus.GaugeVec

	// Event pipeline metrics
	eventsClassified  *prometheus.CounterVec
	duplicatesDropped prometheus.Counter
	scoreChanges      prometheus.Counter
	scoreSuppressed   prometheus.Counter

	// Animation queue metrics
	queueDepth       prometheus.Gauge
	queueDropped     prometheus.Counter
	animationsPlayed *prometheus.CounterVec
	ledgerSize       prometheus.Gauge

	// Storage metrics
	storageErrors *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithRegistry sets the Prometheus registerer used for all metrics.
func WithRegistry(r prometheus.Registerer) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.buckets = buckets
		}
	}
}

// NewManager creates a metrics manager and registers all metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "placarlive",
		subsystem: "core",
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initialize()
	return m
}

func (m *Manager) initialize() {
	auto := promauto.With(m.registry)

	m.polls = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "polls_total",
		Help:      "Total poll attempts by phase and outcome",
	}, []string{"phase", "outcome"})

	m.pollLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "poll_latency_milliseconds",
		Help:      "Histogram of poll fetch+decode latency in milliseconds",
		Buckets:   m.buckets,
	})

	m.phaseTransitions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "phase_transitions_total",
		Help:      "Total genuine poller phase transitions by target phase",
	}, []string{"phase"})

	m.currentPhase = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "current_phase",
		Help:      "1 for the poller's current phase, 0 otherwise",
	}, []string{"phase"})

	m.eventsClassified = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_classified_total",
		Help:      "Total commentary records classified, by category",
	}, []string{"category"})

	m.duplicatesDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_duplicate_total",
		Help:      "Total events dropped at enqueue because the identity was already seen",
	})

	m.scoreChanges = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_changes_total",
		Help:      "Total score-change notifications emitted",
	})

	m.scoreSuppressed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_changes_suppressed_total",
		Help:      "Total score changes suppressed by the cooldown window",
	})

	m.queueDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "animation_queue_depth",
		Help:      "Current number of queued animations",
	})

	m.queueDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "animation_queue_dropped_total",
		Help:      "Total enqueue attempts rejected (full or closed queue)",
	})

	m.animationsPlayed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "animations_played_total",
		Help:      "Total animations played, by category",
	}, []string{"category"})

	m.ledgerSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ledger_size",
		Help:      "Current number of identities in the seen-event ledger",
	})

	m.storageErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "storage_errors_total",
		Help:      "Total local storage failures by operation (all recovered)",
	}, []string{"op"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.buckets,
	}, []string{"endpoint", "method", "status_code"})
}

// Global manager on a custom registry, so default Go collectors do not
// pollute the scrape output.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton metrics registry
var globalManager *Manager                    //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Polling helpers.

// RecordPoll counts one poll attempt with its phase and outcome
// (live, agenda, error, unknown, fetch_error).
func RecordPoll(phase, outcome string) {
	globalManager.polls.WithLabelValues(phase, outcome).Inc()
}

// RecordPollLatency records fetch+decode latency in milliseconds.
func RecordPollLatency(latencyMs float64) {
	globalManager.pollLatency.Observe(latencyMs)
}

// RecordPhaseTransition counts a genuine phase transition.
func RecordPhaseTransition(phase string) {
	globalManager.phaseTransitions.WithLabelValues(phase).Inc()
}

// UpdateCurrentPhase marks phase as current and clears the others.
func UpdateCurrentPhase(phase string, all []string) {
	for _, p := range all {
		v := 0.0
		if p == phase {
			v = 1.0
		}
		globalManager.currentPhase.WithLabelValues(p).Set(v)
	}
}

// Event pipeline helpers.

// RecordEventClassified counts one classified commentary record.
func RecordEventClassified(category string) {
	globalManager.eventsClassified.WithLabelValues(category).Inc()
}

// RecordDuplicateDropped counts an enqueue rejected by the ledger.
func RecordDuplicateDropped() {
	globalManager.duplicatesDropped.Inc()
}

// RecordScoreChange counts an emitted score-change notification.
func RecordScoreChange() {
	globalManager.scoreChanges.Inc()
}

// RecordScoreSuppressed counts a score change held back by the cooldown.
func RecordScoreSuppressed() {
	globalManager.scoreSuppressed.Inc()
}

// Queue helpers.

// UpdateQueueDepth sets the current animation queue depth.
func UpdateQueueDepth(depth int) {
	globalManager.queueDepth.Set(float64(depth))
}

// RecordQueueDropped counts a rejected enqueue (full or closed queue).
func RecordQueueDropped() {
	globalManager.queueDropped.Inc()
}

// RecordAnimationPlayed counts one played animation.
func RecordAnimationPlayed(category string) {
	globalManager.animationsPlayed.WithLabelValues(category).Inc()
}

// UpdateLedgerSize sets the current ledger size.
func UpdateLedgerSize(size int) {
	globalManager.ledgerSize.Set(float64(size))
}

// RecordStorageError counts a recovered local storage failure.
func RecordStorageError(op string) {
	globalManager.storageErrors.WithLabelValues(op).Inc()
}

// HTTP helpers.

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}
