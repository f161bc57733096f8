// Package redis connects to Redis with go-redis/v9.
//
// Connect retries the initial ping with exponential backoff and Healthcheck
// returns a check for the HTTP health endpoint. The session package's
// RedisBackend takes the resulting client.
package redis
