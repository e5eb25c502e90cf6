package service

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from
// callers.
var (
	ErrNoFeedURL       = errors.New("feed url not configured")
	ErrUnknownCategory = errors.New("unknown animation category")
	ErrNotStarted      = errors.New("service not started")
)
