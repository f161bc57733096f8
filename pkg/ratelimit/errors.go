package ratelimit

import "errors"

var (
	ErrInvalidLimit    = errors.New("ratelimit.invalid_limit")
	ErrInvalidInterval = errors.New("ratelimit.invalid_interval")
	ErrKeyRequired     = errors.New("ratelimit.key_required")
	ErrStoreRequired   = errors.New("ratelimit.store_required")
)
