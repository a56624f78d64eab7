package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrBackpressure = errors.New("backpressure")
	ErrNotStarted   = errors.New("service not started")
	ErrDuplicateRun = errors.New("duplicate run id")
)
