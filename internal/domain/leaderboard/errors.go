package leaderboard

import "errors"

// Sentinel kinds for leaderboard errors.
var (
	ErrInvalidQuery  = errors.New("invalid leaderboard query")
	ErrLimitExceeded = errors.New("leaderboard limit exceeded")
)
