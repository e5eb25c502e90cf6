package feed

import "errors"

// Sentinel kinds for feed errors.
var (
	ErrBadStatus = errors.New("unexpected response status")
)
