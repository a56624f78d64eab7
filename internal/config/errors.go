package config

import "errors"

var (
	// ErrInvalidConfig reports a value outside its allowed range or set.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig reports an unreadable config file or environment.
	ErrLoadConfig = errors.New("load config failed")
)
