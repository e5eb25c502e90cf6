// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file and env vars.
// - External errors are wrapped via this package's error helpers.
package config

// Config contains process configuration. Durations are expressed in
// their natural unit to keep the YAML/env surface flat.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// FeedURL is the poll endpoint serving the live-match JSON.
	FeedURL string `koanf:"feed_url"`

	// StorePath is the local state file (ledger + score baseline).
	StorePath string `koanf:"store_path"`

	// FetchTimeoutMS caps one poll request.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// Poll cadence per phase, in seconds. Error backoff shares the
	// idle cadence.
	IdleIntervalSec     int `koanf:"idle_interval_sec"`
	PreMatchIntervalSec int `koanf:"pre_match_interval_sec"`
	LiveIntervalSec     int `koanf:"live_interval_sec"`

	// PreMatchWindowMin is how close a kickoff must be, in minutes,
	// before the poller speeds up to the pre-match cadence.
	PreMatchWindowMin int `koanf:"pre_match_window_min"`

	// ScoreCooldownMS is the minimum gap between two score-change
	// notifications for the same match.
	ScoreCooldownMS int `koanf:"score_cooldown_ms"`

	// Ledger expiry: entries older than LedgerMaxAgeMin are pruned
	// before each insertion check; LedgerLoadMaxAgeHr applies once
	// when restoring the persisted set at startup.
	LedgerMaxAgeMin    int `koanf:"ledger_max_age_min"`
	LedgerLoadMaxAgeHr int `koanf:"ledger_load_max_age_hr"`

	// Animation pacing, in milliseconds.
	AnimationDurationMS int `koanf:"animation_duration_ms"`
	SettleDelayMS       int `koanf:"settle_delay_ms"`

	// QueueCapacity bounds the animation queue.
	QueueCapacity int `koanf:"queue_capacity"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		FeedURL:             "",
		StorePath:           "placarlive-state.json",
		FetchTimeoutMS:      10_000,
		IdleIntervalSec:     60,
		PreMatchIntervalSec: 15,
		LiveIntervalSec:     5,
		PreMatchWindowMin:   30,
		ScoreCooldownMS:     8_000,
		LedgerMaxAgeMin:     30,
		LedgerLoadMaxAgeHr:  2,
		AnimationDurationMS: 4_000,
		SettleDelayMS:       500,
		QueueCapacity:       256,
	}
}
