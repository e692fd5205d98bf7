package redis

import "errors"

var (
	ErrEmptyConnectionURL           = errors.New("redis: empty connection url")
	ErrFailedToParseRedisConnString = errors.New("redis: failed to parse connection url")
	ErrRedisNotReady                = errors.New("redis: not ready within the connect timeout")
	ErrHealthcheckFailed            = errors.New("redis: healthcheck failed")
	ErrNotFound                     = errors.New("redis: key not found")
)
