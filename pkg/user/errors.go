package user

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrUnknownField       = errors.New("unknown user field")
	ErrInvalidFieldValue  = errors.New("invalid user field value")
	ErrInvalidPredicate   = errors.New("invalid user predicate")
	ErrStorageUnavailable = errors.New("user storage unavailable")
)
