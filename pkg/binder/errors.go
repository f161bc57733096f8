package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("binder: unsupported media type")
	ErrInvalidJSON          = errors.New("binder: invalid JSON")
	ErrInvalidForm          = errors.New("binder: invalid form data")
	ErrInvalidTarget        = errors.New("binder: target must be a non-nil pointer to struct")
)
