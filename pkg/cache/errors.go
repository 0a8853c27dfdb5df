package cache

import "errors"

var (
	ErrMiss          = errors.New("cache.miss")
	ErrUnavailable   = errors.New("cache.unavailable")
	ErrUnknownDriver = errors.New("cache.unknown_driver")
)
