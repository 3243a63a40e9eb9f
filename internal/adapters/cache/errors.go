package cache

import "errors"

// Sentinel kinds for cache errors.
var (
	ErrCacheRead  = errors.New("cache read failed")
	ErrCacheWrite = errors.New("cache write failed")
)
