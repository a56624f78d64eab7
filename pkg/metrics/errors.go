package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrNoTextfilePath = errors.New("metrics textfile path is empty")
	ErrExportFailed   = errors.New("metrics export failed")
)
