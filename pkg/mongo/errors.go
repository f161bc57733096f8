package mongo

import "errors"

var (
	ErrMissingURL    = errors.New("mongo.missing_url")
	ErrConnectFailed = errors.New("mongo.connect_failed")
	ErrPingFailed    = errors.New("mongo.ping_failed")
)
