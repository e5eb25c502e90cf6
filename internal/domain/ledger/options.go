package ledger

import "time"

// Default expiry windows.
const (
	defaultMaxAge     = 30 * time.Minute
	defaultLoadMaxAge = 2 * time.Hour
)

// Option applies a configuration option to the Ledger.
type Option func(*Ledger)

// WithMaxAge sets the insertion-time prune window.
func WithMaxAge(age time.Duration) Option {
	return func(l *Ledger) {
		if age > 0 {
			l.maxAge = age
		}
	}
}

// WithLoadMaxAge sets the startup prune window applied by Load.
func WithLoadMaxAge(age time.Duration) Option {
	return func(l *Ledger) {
		if age > 0 {
			l.loadMaxAge = age
		}
	}
}

// WithStore sets the persistence backend.
func WithStore(store Store) Option {
	return func(l *Ledger) {
		l.store = store
	}
}
