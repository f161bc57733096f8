package app

import "errors"

var ErrInvalidConfig = errors.New("app: invalid config")
