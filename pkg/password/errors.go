package password

import "errors"

var (
	ErrEmptyPassword    = errors.New("password.empty")
	ErrPasswordTooLong  = errors.New("password.too_long")
	ErrUnknownAlgorithm = errors.New("password.unknown_algorithm")
	ErrInvalidConfig    = errors.New("password.invalid_config")
	ErrMalformedHash    = errors.New("password.malformed_hash")
)
